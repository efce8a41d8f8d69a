package planning

import (
	"testing"
	"time"

	"github.com/campaignops/marketing-ops-api/infrastructure/repository/mocks"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	routingmocks "github.com/campaignops/marketing-ops-api/internal/usecases/routing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSaveCampaignDerivesMetricsAtRateForDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockSettings := routingmocks.NewMockSettingsService(ctrl)

	service := NewService(mockCampaignRepo, mockSettings)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	campaign := &domain.CampaignRecord{
		ID:    "CMP001",
		Name:  "Spring Promo FR",
		Price: 2.50,
		Qty:   1000,
		VSent: 50000,
		Date:  &date,
	}

	mockCampaignRepo.EXPECT().
		SaveOrUpdate(campaign).
		Return(nil)

	mockSettings.EXPECT().
		RateForDate(&date).
		Return(0.18, nil)

	saved, validationErrs, err := service.SaveCampaign(campaign)
	require.NoError(t, err)
	require.Empty(t, validationErrs)
	require.NotNil(t, saved)

	assert.Equal(t, 9.00, saved.Metrics.RoutingCosts)
	assert.Equal(t, 2500.00, saved.Metrics.Turnover)
	assert.Equal(t, 2491.00, saved.Metrics.Margin)
	assert.Equal(t, 50.00, saved.Metrics.Ecpm)
	require.NotNil(t, saved.Metrics.MarginPct)
	assert.Equal(t, 0.9964, *saved.Metrics.MarginPct)
}

func TestSaveCampaignRejectsInvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockSettings := routingmocks.NewMockSettingsService(ctrl)

	service := NewService(mockCampaignRepo, mockSettings)

	// No repository call expected: validation fails before any write.
	saved, validationErrs, err := service.SaveCampaign(&domain.CampaignRecord{
		Name:  "",
		Price: -1,
	})
	require.NoError(t, err)
	assert.Nil(t, saved)

	fields := make([]string, 0, len(validationErrs))
	for _, ve := range validationErrs {
		fields = append(fields, ve.Field)
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "price")
}

func TestSaveCampaignGeneratesIDWhenMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockSettings := routingmocks.NewMockSettingsService(ctrl)

	service := NewService(mockCampaignRepo, mockSettings)

	campaign := &domain.CampaignRecord{
		Name:  "Untitled",
		Price: 1.0,
		Qty:   10,
		VSent: 100,
	}

	mockCampaignRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		DoAndReturn(func(c *domain.CampaignRecord) error {
			assert.NotEmpty(t, c.ID)
			return nil
		})

	mockSettings.EXPECT().
		RateForDate(gomock.Nil()).
		Return(0.0, nil)

	saved, validationErrs, err := service.SaveCampaign(campaign)
	require.NoError(t, err)
	require.Empty(t, validationErrs)
	assert.NotEmpty(t, saved.ID)
}

func TestGetCampaignNotFoundReturnsNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockSettings := routingmocks.NewMockSettingsService(ctrl)

	service := NewService(mockCampaignRepo, mockSettings)

	mockCampaignRepo.EXPECT().
		GetByID("missing").
		Return(nil, nil)

	campaign, err := service.GetCampaign("missing")
	require.NoError(t, err)
	assert.Nil(t, campaign)
}

func TestListCampaignsEnrichesEveryRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockSettings := routingmocks.NewMockSettingsService(ctrl)

	service := NewService(mockCampaignRepo, mockSettings)

	inPeriod := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	outside := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	mockCampaignRepo.EXPECT().
		List(gomock.Nil()).
		Return([]*domain.CampaignRecord{
			{ID: "A", Name: "A", Price: 1, Qty: 100, VSent: 1000, Date: &inPeriod},
			{ID: "B", Name: "B", Price: 1, Qty: 100, VSent: 1000, Date: &outside},
		}, nil)

	// Each campaign is priced at the rate in force for its own date.
	mockSettings.EXPECT().RateForDate(&inPeriod).Return(0.20, nil)
	mockSettings.EXPECT().RateForDate(&outside).Return(0.18, nil)

	campaigns, err := service.ListCampaigns(nil)
	require.NoError(t, err)
	require.Len(t, campaigns, 2)

	assert.Equal(t, 0.20, campaigns[0].Metrics.RoutingCosts)
	assert.Equal(t, 0.18, campaigns[1].Metrics.RoutingCosts)
}
