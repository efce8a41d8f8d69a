package trending

import (
	"testing"
	"time"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(date time.Time, database string, turnover float64) domain.PerformanceRecord {
	return domain.PerformanceRecord{
		Date:     date,
		Database: database,
		Turnover: turnover,
		Margin:   turnover * 0.9,
		VSent:    1000,
		Qty:      100,
	}
}

func TestBuildTrendDailyDeltas(t *testing.T) {
	current := domain.DateRange{Start: day(2025, 2, 1), End: day(2025, 2, 2)}

	records := []domain.PerformanceRecord{
		record(day(2025, 2, 1), "db1", 1200),
		// Previous period (shifted back by the 2-day duration): Jan 30-31.
		record(day(2025, 1, 30), "db1", 1000),
	}

	series := BuildTrend(records, domain.ResolutionDay, current, nil, nil)

	require.Len(t, series.Groups, 1)
	points := series.Groups[0].Points
	require.Len(t, points, 2)

	first := points[0]
	assert.Equal(t, "2025-02-01", first.Key)
	assert.Equal(t, 1200.0, first.Current.Turnover)
	assert.Equal(t, 1000.0, first.Previous.Turnover)
	assert.Equal(t, 200.0, first.Deltas.Turnover.Absolute)
	require.NotNil(t, first.Deltas.Turnover.Percent)
	assert.Equal(t, 0.2, *first.Deltas.Turnover.Percent)

	// Second bucket has no previous data: percent is undefined, not zero.
	second := points[1]
	assert.Equal(t, 0.0, second.Current.Turnover)
	assert.Nil(t, second.Deltas.Turnover.Percent)
}

func TestBuildTrendZeroPreviousLeavesPercentUndefined(t *testing.T) {
	current := domain.DateRange{Start: day(2025, 2, 1), End: day(2025, 2, 1)}

	records := []domain.PerformanceRecord{
		record(day(2025, 2, 1), "db1", 500),
	}

	series := BuildTrend(records, domain.ResolutionDay, current, nil, nil)

	require.Len(t, series.Groups, 1)
	require.Len(t, series.Groups[0].Points, 1)
	d := series.Groups[0].Points[0].Deltas.Turnover
	assert.Equal(t, 500.0, d.Absolute)
	assert.Nil(t, d.Percent)
}

func TestBuildTrendDefaultPreviousRangeIsShiftedDuration(t *testing.T) {
	// 30-day current range: previous must be the preceding 30 days, not the
	// prior calendar month.
	current := domain.DateRange{Start: day(2025, 3, 2), End: day(2025, 3, 31)}

	series := BuildTrend(nil, domain.ResolutionDay, current, nil, nil)

	assert.Equal(t, day(2025, 1, 31), series.Previous.Start)
	assert.Equal(t, day(2025, 3, 1), series.Previous.End)
}

func TestBuildTrendExplicitPreviousRange(t *testing.T) {
	current := domain.DateRange{Start: day(2025, 2, 1), End: day(2025, 2, 28)}
	previous := domain.DateRange{Start: day(2024, 2, 1), End: day(2024, 2, 29)}

	series := BuildTrend(nil, domain.ResolutionDay, current, &previous, nil)

	assert.Equal(t, previous, series.Previous)
}

func TestBuildTrendMonthlyBuckets(t *testing.T) {
	current := domain.DateRange{Start: day(2025, 1, 1), End: day(2025, 3, 31)}

	records := []domain.PerformanceRecord{
		record(day(2025, 1, 10), "db1", 100),
		record(day(2025, 1, 20), "db1", 50),
		record(day(2025, 3, 5), "db1", 75),
	}

	series := BuildTrend(records, domain.ResolutionMonth, current, nil, nil)

	require.Len(t, series.Groups, 1)
	points := series.Groups[0].Points
	require.Len(t, points, 3)

	assert.Equal(t, "2025-01", points[0].Key)
	assert.Equal(t, 150.0, points[0].Current.Turnover)
	assert.Equal(t, "2025-02", points[1].Key)
	assert.Equal(t, 0.0, points[1].Current.Turnover)
	assert.Equal(t, "2025-03", points[2].Key)
	assert.Equal(t, 75.0, points[2].Current.Turnover)
}

func TestBuildTrendTopNIsDeterministic(t *testing.T) {
	current := domain.DateRange{Start: day(2025, 2, 1), End: day(2025, 2, 28)}

	records := []domain.PerformanceRecord{
		record(day(2025, 2, 1), "C", 50),
		record(day(2025, 2, 2), "B", 100),
		record(day(2025, 2, 3), "A", 100),
	}

	opts := &Options{GroupBy: "database", TopN: 2}

	// A and B tie on total; the tie breaks by label ascending, every time.
	for i := 0; i < 5; i++ {
		series := BuildTrend(records, domain.ResolutionDay, current, nil, opts)
		require.Len(t, series.Groups, 2)
		assert.Equal(t, "A", series.Groups[0].Label)
		assert.Equal(t, "B", series.Groups[1].Label)
	}
}

func TestBuildTrendOthersFold(t *testing.T) {
	current := domain.DateRange{Start: day(2025, 2, 1), End: day(2025, 2, 28)}

	records := []domain.PerformanceRecord{
		record(day(2025, 2, 1), "big", 1000),
		record(day(2025, 2, 2), "small1", 10),
		record(day(2025, 2, 3), "small2", 20),
	}

	withOthers := BuildTrend(records, domain.ResolutionDay, current, nil, &Options{
		GroupBy: "database", TopN: 1, IncludeOthers: true,
	})
	require.Len(t, withOthers.Groups, 2)
	assert.Equal(t, "big", withOthers.Groups[0].Label)
	assert.Equal(t, OthersLabel, withOthers.Groups[1].Label)
	assert.Equal(t, 30.0, withOthers.Groups[1].Total)

	withoutOthers := BuildTrend(records, domain.ResolutionDay, current, nil, &Options{
		GroupBy: "database", TopN: 1,
	})
	require.Len(t, withoutOthers.Groups, 1)
	assert.Equal(t, "big", withoutOthers.Groups[0].Label)
}

func TestBuildTrendDoesNotMutateRecords(t *testing.T) {
	current := domain.DateRange{Start: day(2025, 2, 1), End: day(2025, 2, 2)}
	records := []domain.PerformanceRecord{
		record(day(2025, 2, 1), "db1", 100),
		record(day(2025, 2, 2), "db2", 200),
	}
	snapshot := make([]domain.PerformanceRecord, len(records))
	copy(snapshot, records)

	BuildTrend(records, domain.ResolutionDay, current, nil, &Options{GroupBy: "database", TopN: 1})

	assert.Equal(t, snapshot, records)
}
