package trending

import (
	"testing"
	"time"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perfOn(date time.Time, turnover float64) domain.PerformanceRecord {
	return domain.PerformanceRecord{Date: date, Database: "db1", Turnover: turnover}
}

func TestBuildForecastLinearRunRate(t *testing.T) {
	period := domain.ForecastPeriod{
		Label: "March 2025",
		Start: day(2025, 3, 1),
		End:   day(2025, 3, 31),
		Now:   day(2025, 3, 10),
	}

	// 100 per day over the 10 elapsed days.
	records := make([]domain.PerformanceRecord, 0, 10)
	for d := 1; d <= 10; d++ {
		records = append(records, perfOn(day(2025, 3, d), 100))
	}

	insight := BuildForecast(records, period, MetricTurnover)
	require.NotNil(t, insight)

	assert.Equal(t, "March 2025", insight.Label)
	assert.Equal(t, day(2025, 3, 31), insight.EndDate)
	assert.Equal(t, 1000.0, insight.Actual)
	assert.Equal(t, 100.0, insight.RunRate)
	assert.Equal(t, 3100.0, insight.Projected)
	assert.Equal(t, 21, insight.RemainingDays)

	// Perfectly flat actuals: zero variance, the band collapses onto the
	// projection.
	assert.Equal(t, 3100.0, insight.BandLow)
	assert.Equal(t, 3100.0, insight.BandHigh)
}

func TestBuildForecastBandWidensWithVariance(t *testing.T) {
	period := domain.ForecastPeriod{
		Label: "March 2025",
		Start: day(2025, 3, 1),
		End:   day(2025, 3, 31),
		Now:   day(2025, 3, 10),
	}

	records := []domain.PerformanceRecord{}
	for d := 1; d <= 10; d++ {
		value := 50.0
		if d%2 == 0 {
			value = 150.0
		}
		records = append(records, perfOn(day(2025, 3, d), value))
	}

	insight := BuildForecast(records, period, MetricTurnover)
	require.NotNil(t, insight)

	assert.Equal(t, 100.0, insight.RunRate)
	assert.Less(t, insight.BandLow, insight.Projected)
	assert.Greater(t, insight.BandHigh, insight.Projected)
	// The band is symmetric around the projection.
	assert.InDelta(t, insight.Projected-insight.BandLow, insight.BandHigh-insight.Projected, 0.01)
}

func TestBuildForecastReturnsNilOnDegenerateInput(t *testing.T) {
	period := domain.ForecastPeriod{
		Start: day(2025, 3, 1),
		End:   day(2025, 3, 31),
		Now:   day(2025, 3, 10),
	}

	t.Run("no applicable records", func(t *testing.T) {
		records := []domain.PerformanceRecord{perfOn(day(2025, 1, 5), 100)}
		assert.Nil(t, BuildForecast(records, period, MetricTurnover))
	})

	t.Run("period not started yet", func(t *testing.T) {
		future := domain.ForecastPeriod{
			Start: day(2025, 4, 1),
			End:   day(2025, 4, 30),
			Now:   day(2025, 3, 10),
		}
		records := []domain.PerformanceRecord{perfOn(day(2025, 4, 1), 100)}
		assert.Nil(t, BuildForecast(records, future, MetricTurnover))
	})

	t.Run("inverted period", func(t *testing.T) {
		inverted := domain.ForecastPeriod{
			Start: day(2025, 4, 30),
			End:   day(2025, 4, 1),
			Now:   day(2025, 5, 10),
		}
		assert.Nil(t, BuildForecast(nil, inverted, MetricTurnover))
	})
}

func TestBuildForecastSingleDayUsesFallbackBand(t *testing.T) {
	period := domain.ForecastPeriod{
		Label: "March 2025",
		Start: day(2025, 3, 1),
		End:   day(2025, 3, 31),
		Now:   day(2025, 3, 1),
	}

	records := []domain.PerformanceRecord{perfOn(day(2025, 3, 1), 100)}

	insight := BuildForecast(records, period, MetricTurnover)
	require.NotNil(t, insight)

	assert.Equal(t, 100.0, insight.RunRate)
	assert.Equal(t, 3100.0, insight.Projected)
	// One observed day: ±10% fallback band.
	assert.Equal(t, 2790.0, insight.BandLow)
	assert.Equal(t, 3410.0, insight.BandHigh)
}

func TestBuildForecastCompletedPeriodProjectsActual(t *testing.T) {
	period := domain.ForecastPeriod{
		Label: "February 2025",
		Start: day(2025, 2, 1),
		End:   day(2025, 2, 28),
		Now:   day(2025, 3, 15),
	}

	records := make([]domain.PerformanceRecord, 0, 28)
	for d := 1; d <= 28; d++ {
		records = append(records, perfOn(day(2025, 2, d), 10))
	}

	insight := BuildForecast(records, period, MetricTurnover)
	require.NotNil(t, insight)

	assert.Equal(t, 280.0, insight.Actual)
	assert.Equal(t, 280.0, insight.Projected)
	assert.Equal(t, 0, insight.RemainingDays)
	assert.Equal(t, 280.0, insight.BandLow)
	assert.Equal(t, 280.0, insight.BandHigh)
}
