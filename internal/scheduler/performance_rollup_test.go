package scheduler

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

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestPerformanceRollupService_foldCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockPerformanceRepo := mocks.NewMockPerformanceRepository(ctrl)
	mockSettings := routingmocks.NewMockSettingsService(ctrl)

	service := &PerformanceRollupService{
		campaignRepo:    mockCampaignRepo,
		performanceRepo: mockPerformanceRepo,
		settings:        mockSettings,
	}

	march10 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	march11 := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		campaigns []*domain.CampaignRecord
		setup     func()
		validate  func(t *testing.T, result []domain.PerformanceRecord)
	}{
		{
			name: "campaigns sharing day and dimensions fold into one fact",
			campaigns: []*domain.CampaignRecord{
				{ID: "A", Database: "db1", Partner: "p1", Geo: "FR", Price: 1, Qty: 100, VSent: 10000, Date: &march10},
				{ID: "B", Database: "db1", Partner: "p1", Geo: "FR", Price: 2, Qty: 50, VSent: 5000, Date: &march10},
			},
			setup: func() {
				mockSettings.EXPECT().
					RateForDate(&march10).
					Return(0.20, nil).
					Times(2)
			},
			validate: func(t *testing.T, result []domain.PerformanceRecord) {
				require.Len(t, result, 1)

				fact := result[0]
				assert.Equal(t, "2025-03-10|db1|p1|fr", fact.ID)
				// 100*1 + 50*2
				assert.Equal(t, 200.0, fact.Turnover)
				// (10000/1000)*0.20 + (5000/1000)*0.20
				assert.Equal(t, 3.0, fact.RoutingCosts)
				assert.Equal(t, 197.0, fact.Margin)
				assert.Equal(t, 15000, fact.VSent)
				assert.Equal(t, 150, fact.Qty)
			},
		},
		{
			name: "different dimensions stay separate and come out sorted",
			campaigns: []*domain.CampaignRecord{
				{ID: "A", Database: "db2", Partner: "p1", Geo: "FR", Price: 1, Qty: 10, VSent: 1000, Date: &march11},
				{ID: "B", Database: "db1", Partner: "p1", Geo: "FR", Price: 1, Qty: 10, VSent: 1000, Date: &march11},
			},
			setup: func() {
				mockSettings.EXPECT().
					RateForDate(&march11).
					Return(0.18, nil).
					Times(2)
			},
			validate: func(t *testing.T, result []domain.PerformanceRecord) {
				require.Len(t, result, 2)
				assert.Equal(t, "2025-03-11|db1|p1|fr", result[0].ID)
				assert.Equal(t, "2025-03-11|db2|p1|fr", result[1].ID)
			},
		},
		{
			name: "campaigns without a date are skipped",
			campaigns: []*domain.CampaignRecord{
				{ID: "A", Database: "db1", Price: 1, Qty: 10, VSent: 1000, Date: nil},
			},
			setup: func() {},
			validate: func(t *testing.T, result []domain.PerformanceRecord) {
				assert.Empty(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			result, err := service.foldCampaigns(tt.campaigns)
			require.NoError(t, err)

			tt.validate(t, result)
		})
	}
}

func TestFactKeyNormalizesCasing(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t,
		factKey(date, "DB1", "Partner", "FR"),
		factKey(date, "db1", "partner", "fr"),
	)
}
