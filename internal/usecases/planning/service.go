package planning

import (
	"fmt"

	"github.com/campaignops/marketing-ops-api/infrastructure/repository"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/internal/usecases/deriving"
	"github.com/campaignops/marketing-ops-api/internal/usecases/routing"
	"github.com/campaignops/marketing-ops-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// CampaignPlanner manages the campaign planning table. Derived metrics are
// computed on every read from the routing settings in force for the campaign
// date, never persisted.
type CampaignPlanner interface {
	GetCampaign(id string) (*domain.CampaignWithMetrics, error)
	ListCampaigns(filters *domain.CampaignFilters) ([]*domain.CampaignWithMetrics, error)
	SaveCampaign(campaign *domain.CampaignRecord) (*domain.CampaignWithMetrics, []domain.ValidationError, error)
	DeleteCampaign(id string) error
}

type Service struct {
	campaignRepo repository.CampaignRepository
	settings     routing.SettingsService
}

func NewService(campaignRepo repository.CampaignRepository, settings routing.SettingsService) CampaignPlanner {
	return &Service{
		campaignRepo: campaignRepo,
		settings:     settings,
	}
}

func (s *Service) GetCampaign(id string) (*domain.CampaignWithMetrics, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, nil
	}

	return s.withMetrics(campaign)
}

func (s *Service) ListCampaigns(filters *domain.CampaignFilters) ([]*domain.CampaignWithMetrics, error) {
	campaigns, err := s.campaignRepo.List(filters)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.CampaignWithMetrics, 0, len(campaigns))

	for _, campaign := range campaigns {
		enriched, err := s.withMetrics(campaign)
		if err != nil {
			return nil, err
		}

		result = append(result, enriched)
	}

	return result, nil
}

// SaveCampaign validates and persists a campaign, returning it with metrics
// derived at the rate in force for its date. A non-empty validation list
// means nothing was saved.
func (s *Service) SaveCampaign(campaign *domain.CampaignRecord) (*domain.CampaignWithMetrics, []domain.ValidationError, error) {
	if errs := ValidateCampaign(campaign); len(errs) > 0 {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaign.ID,
			"errors":      len(errs),
		}).Warn("planning: campaign rejected by validation")
		return nil, errs, nil
	}

	if campaign.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, nil, err
		}
		campaign.ID = id
	}

	if err := s.campaignRepo.SaveOrUpdate(campaign); err != nil {
		return nil, nil, err
	}

	enriched, err := s.withMetrics(campaign)
	if err != nil {
		return nil, nil, err
	}

	return enriched, nil, nil
}

func (s *Service) DeleteCampaign(id string) error {
	return s.campaignRepo.Delete(id)
}

func (s *Service) withMetrics(campaign *domain.CampaignRecord) (*domain.CampaignWithMetrics, error) {
	rate, err := s.settings.RateForDate(campaign.Date)
	if err != nil {
		return nil, err
	}

	return &domain.CampaignWithMetrics{
		CampaignRecord: *campaign,
		Metrics:        deriving.ForCampaign(campaign, rate),
	}, nil
}

// ValidateCampaign checks the raw inputs. Derived values are not validated
// here since they are recomputed from these inputs.
func ValidateCampaign(campaign *domain.CampaignRecord) []domain.ValidationError {
	errs := make([]domain.ValidationError, 0)

	if campaign.Name == "" {
		errs = append(errs, domain.ValidationError{
			Field:   "name",
			Message: "is required",
		})
	}

	numberFields := map[string]float64{
		"price":  campaign.Price,
		"qty":    float64(campaign.Qty),
		"v_sent": float64(campaign.VSent),
	}
	for field, value := range numberFields {
		if value < 0 {
			errs = append(errs, domain.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be non-negative, got %v", value),
			})
		}
	}

	return errs
}
