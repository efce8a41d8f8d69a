package trending

import (
	"math"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/pkg/utils"
)

// Band model: the projection is a linear run-rate extrapolation, and the
// confidence band is projected ± z * stddev(daily actuals) * sqrt(remaining
// days), with z = 1.96 (a ~95% interval under a normal daily-noise
// assumption). With fewer than two observed days there is no variance to
// measure and the band falls back to ±10% of the projection.
const (
	bandZScore       = 1.96
	fallbackBandPct  = 0.10
	minObservedDays  = 2
)

// BuildForecast projects the selected metric for an in-progress period from
// its daily actuals. Returns nil when the period has not started as of
// period.Now or when there are no applicable records — a degenerate
// forecast is never produced and elapsed days is never zero in a division.
func BuildForecast(records []domain.PerformanceRecord, period domain.ForecastPeriod, metric string) *domain.ForecastInsight {
	if metric == "" {
		metric = MetricTurnover
	}

	start := utils.TruncateToDay(period.Start)
	end := utils.TruncateToDay(period.End)
	now := utils.TruncateToDay(period.Now)

	if now.Before(start) || end.Before(start) {
		return nil
	}

	observedEnd := now
	if observedEnd.After(end) {
		observedEnd = end
	}
	observed := domain.DateRange{Start: start, End: observedEnd}

	elapsedDays := observed.Days()
	totalDays := domain.DateRange{Start: start, End: end}.Days()
	if elapsedDays == 0 || totalDays == 0 {
		return nil
	}

	// Daily totals over the observed window; days without records count as
	// zero, they are real days of the period.
	dailyTotals := make([]float64, elapsedDays)
	seen := false
	for _, r := range records {
		if !inRange(r.Date, observed) {
			continue
		}
		idx := int(utils.TruncateToDay(r.Date).Sub(start).Hours() / 24)
		dailyTotals[idx] += metricValue(r, metric)
		seen = true
	}

	if !seen {
		return nil
	}

	actual := 0.0
	for _, v := range dailyTotals {
		actual += v
	}

	runRate := actual / float64(elapsedDays)
	projected := utils.RoundWithTwoDecimalPlace(runRate * float64(totalDays))
	remainingDays := totalDays - elapsedDays

	band := fallbackBandPct * projected
	if elapsedDays >= minObservedDays {
		band = bandZScore * stddev(dailyTotals) * math.Sqrt(float64(remainingDays))
	}
	band = abs(band)

	return &domain.ForecastInsight{
		Label:         period.Label,
		EndDate:       end,
		Projected:     projected,
		Actual:        utils.RoundWithTwoDecimalPlace(actual),
		RemainingDays: remainingDays,
		RunRate:       utils.RoundWithTwoDecimalPlace(runRate),
		BandLow:       utils.RoundWithTwoDecimalPlace(projected - band),
		BandHigh:      utils.RoundWithTwoDecimalPlace(projected + band),
	}
}

// stddev is the sample standard deviation of the observed daily totals.
func stddev(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= n

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= n - 1

	return math.Sqrt(variance)
}
