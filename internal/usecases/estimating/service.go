package estimating

import (
	"fmt"

	"github.com/campaignops/marketing-ops-api/infrastructure/repository"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// EffortService manages the effort rule set and resolves estimates against it.
type EffortService interface {
	ListRules() ([]*domain.EffortRule, error)
	SaveRule(rule *domain.EffortRule) (*domain.EffortRule, []domain.ValidationError, error)
	DeleteRule(id string) error
	Resolve(ctx domain.EffortContext) (*domain.EffortEstimate, bool, error)
}

type Service struct {
	repo repository.EffortRuleRepository
	opts MatchOptions
}

func NewService(repo repository.EffortRuleRepository, opts MatchOptions) EffortService {
	return &Service{
		repo: repo,
		opts: opts,
	}
}

func (s *Service) ListRules() ([]*domain.EffortRule, error) {
	return s.repo.List()
}

// SaveRule validates and persists a rule. Validation problems are returned
// as a list; nothing is saved unless the list is empty.
func (s *Service) SaveRule(rule *domain.EffortRule) (*domain.EffortRule, []domain.ValidationError, error) {
	existing, err := s.repo.List()
	if err != nil {
		return nil, nil, err
	}

	if errs := ValidateRule(rule, existing); len(errs) > 0 {
		logrus.WithFields(logrus.Fields{
			"rule_id": rule.ID,
			"errors":  len(errs),
		}).Warn("estimating: rule rejected by validation")
		return nil, errs, nil
	}

	if rule.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, nil, err
		}
		rule.ID = id
	}

	if err := s.repo.SaveOrUpdate(rule); err != nil {
		return nil, nil, err
	}

	return rule, nil, nil
}

func (s *Service) DeleteRule(id string) error {
	return s.repo.Delete(id)
}

// Resolve loads the current rule set and resolves an estimate for the
// context. The boolean mirrors the resolver's no-match signal.
func (s *Service) Resolve(ctx domain.EffortContext) (*domain.EffortEstimate, bool, error) {
	rules, err := s.repo.List()
	if err != nil {
		return nil, false, err
	}

	snapshot := make([]domain.EffortRule, 0, len(rules))
	for _, r := range rules {
		snapshot = append(snapshot, *r)
	}

	estimate, ok := ResolveEffort(ctx, snapshot, s.opts)
	return estimate, ok, nil
}

// ValidateRule checks hour fields, the prep mode and priority uniqueness.
// Duplicate priorities are rejected here rather than silently resolved by
// declaration order at match time.
func ValidateRule(rule *domain.EffortRule, existing []*domain.EffortRule) []domain.ValidationError {
	errs := make([]domain.ValidationError, 0)

	hourFields := map[string]float64{
		"hours_master_template": rule.HoursMasterTemplate,
		"hours_translations":    rule.HoursTranslations,
		"hours_copywriting":     rule.HoursCopywriting,
		"hours_assets":          rule.HoursAssets,
		"hours_revisions":       rule.HoursRevisions,
		"hours_build":           rule.HoursBuild,
		"hours_prep":            rule.HoursPrep,
		"hours_prep_percent":    rule.HoursPrepPercent,
	}
	for field, value := range hourFields {
		if value < 0 {
			errs = append(errs, domain.ValidationError{
				Field:   field,
				Message: "must be non-negative",
			})
		}
	}

	if rule.PrepMode != domain.PrepModeFixed && rule.PrepMode != domain.PrepModePercent {
		errs = append(errs, domain.ValidationError{
			Field:   "prep_mode",
			Message: fmt.Sprintf("must be %q or %q", domain.PrepModeFixed, domain.PrepModePercent),
		})
	}

	for _, other := range existing {
		if other.ID == rule.ID {
			continue
		}
		if other.Priority == rule.Priority {
			errs = append(errs, domain.ValidationError{
				Field:   "priority",
				Message: fmt.Sprintf("priority %d is already used by rule %s", rule.Priority, other.ID),
			})
			break
		}
	}

	return errs
}
