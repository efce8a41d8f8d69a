package reporting

import (
	"testing"
	"time"

	"github.com/campaignops/marketing-ops-api/infrastructure/repository/mocks"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTrendFetchesSpanCoveringBothRanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPerfRepo := mocks.NewMockPerformanceRepository(ctrl)
	service := NewService(mockPerfRepo)

	current := domain.DateRange{Start: day(2025, 3, 8), End: day(2025, 3, 14)}

	// Default previous range is the week before; the fetch must start there.
	mockPerfRepo.EXPECT().
		GetByDateRange(day(2025, 3, 1), day(2025, 3, 14)).
		Return([]domain.PerformanceRecord{
			{ID: "1", Date: day(2025, 3, 10), Database: "db1", Turnover: 1200},
			{ID: "2", Date: day(2025, 3, 3), Database: "db1", Turnover: 1000},
		}, nil)

	series, err := service.Trend(domain.ResolutionDay, current, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, series)

	assert.Equal(t, day(2025, 3, 1), series.Previous.Start)
	assert.Equal(t, day(2025, 3, 7), series.Previous.End)
	require.Len(t, series.Groups, 1)
	assert.Equal(t, "All", series.Groups[0].Label)

	// 2025-03-10 is the third day of the current week; its shifted previous
	// counterpart is 2025-03-03.
	points := series.Groups[0].Points
	require.Len(t, points, 7)
	assert.Equal(t, 1200.0, points[2].Current.Turnover)
	assert.Equal(t, 1000.0, points[2].Previous.Turnover)
	assert.Equal(t, 200.0, points[2].Deltas.Turnover.Absolute)
	require.NotNil(t, points[2].Deltas.Turnover.Percent)
	assert.Equal(t, 0.2, *points[2].Deltas.Turnover.Percent)
}

func TestTrendExplicitPreviousRangeWidensFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPerfRepo := mocks.NewMockPerformanceRepository(ctrl)
	service := NewService(mockPerfRepo)

	current := domain.DateRange{Start: day(2025, 6, 1), End: day(2025, 6, 30)}
	previous := domain.DateRange{Start: day(2024, 6, 1), End: day(2024, 6, 30)}

	mockPerfRepo.EXPECT().
		GetByDateRange(day(2024, 6, 1), day(2025, 6, 30)).
		Return([]domain.PerformanceRecord{}, nil)

	series, err := service.Trend(domain.ResolutionMonth, current, &previous, nil)
	require.NoError(t, err)
	assert.Equal(t, previous, series.Previous)
}

func TestForecastProjectsRunRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPerfRepo := mocks.NewMockPerformanceRepository(ctrl)
	service := NewService(mockPerfRepo)

	period := domain.ForecastPeriod{
		Label: "March 2025",
		Start: day(2025, 3, 1),
		End:   day(2025, 3, 31),
		Now:   day(2025, 3, 10),
	}

	records := make([]domain.PerformanceRecord, 0, 10)
	for i := 0; i < 10; i++ {
		records = append(records, domain.PerformanceRecord{
			ID:       "r",
			Date:     day(2025, 3, 1+i),
			Turnover: 100,
		})
	}

	mockPerfRepo.EXPECT().
		GetByDateRange(period.Start, period.End).
		Return(records, nil)

	insight, err := service.Forecast(period, "turnover")
	require.NoError(t, err)
	require.NotNil(t, insight)

	assert.Equal(t, 1000.0, insight.Actual)
	assert.Equal(t, 3100.0, insight.Projected)
	assert.Equal(t, 21, insight.RemainingDays)
}

func TestForecastDegenerateInputReturnsNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPerfRepo := mocks.NewMockPerformanceRepository(ctrl)
	service := NewService(mockPerfRepo)

	// Now before the period start: nothing observed yet.
	period := domain.ForecastPeriod{
		Label: "April 2025",
		Start: day(2025, 4, 1),
		End:   day(2025, 4, 30),
		Now:   day(2025, 3, 20),
	}

	mockPerfRepo.EXPECT().
		GetByDateRange(period.Start, period.End).
		Return([]domain.PerformanceRecord{}, nil)

	insight, err := service.Forecast(period, "turnover")
	require.NoError(t, err)
	assert.Nil(t, insight)
}
