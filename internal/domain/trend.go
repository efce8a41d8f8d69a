package domain

import "time"

// Resolution is the bucket size used by trend aggregation.
type Resolution string

const (
	ResolutionDay   Resolution = "day"
	ResolutionWeek  Resolution = "week"
	ResolutionMonth Resolution = "month"
)

// DateRange is an inclusive day-granularity interval.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days in the range, inclusive.
func (r DateRange) Days() int {
	start := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, r.Start.Location())
	end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, r.End.Location())
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// MetricSnapshot aggregates the financial metrics of one bucket.
// Ecpm is re-derived from the aggregated sums, not averaged.
type MetricSnapshot struct {
	Turnover     float64 `json:"turnover"`
	Margin       float64 `json:"margin"`
	RoutingCosts float64 `json:"routing_costs"`
	Ecpm         float64 `json:"ecpm"`
	VSent        int     `json:"v_sent"`
	Qty          int     `json:"qty"`
}

// MetricDelta is a current-vs-previous comparison for one metric. Percent is
// nil when the previous value is zero: the ratio is undefined.
type MetricDelta struct {
	Absolute float64  `json:"absolute"`
	Percent  *float64 `json:"percent"`
}

// TrendDeltas carries the per-metric comparisons of one bucket.
type TrendDeltas struct {
	Turnover     MetricDelta `json:"turnover"`
	Margin       MetricDelta `json:"margin"`
	RoutingCosts MetricDelta `json:"routing_costs"`
	VSent        MetricDelta `json:"v_sent"`
}

// TrendPoint is one time bucket with its current snapshot, the time-shifted
// previous-period snapshot for the same bucket offset, and their deltas.
type TrendPoint struct {
	Key      string         `json:"key"`
	Label    string         `json:"label"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Current  MetricSnapshot `json:"current"`
	Previous MetricSnapshot `json:"previous"`
	Deltas   TrendDeltas    `json:"deltas"`
}

// TrendGroup is a named series, one per grouping dimension value (or the
// folded "Others" aggregate).
type TrendGroup struct {
	Label  string       `json:"label"`
	Total  float64      `json:"total"`
	Points []TrendPoint `json:"points"`
}

// TrendSeries is the full result of a trend aggregation.
type TrendSeries struct {
	Resolution Resolution  `json:"resolution"`
	Current    DateRange   `json:"current"`
	Previous   DateRange   `json:"previous"`
	Groups     []TrendGroup `json:"groups"`
}

// ForecastPeriod describes an in-progress period to project, evaluated as of
// Now (injected for reproducibility).
type ForecastPeriod struct {
	Label string
	Start time.Time
	End   time.Time
	Now   time.Time
}

// ForecastInsight is a linear run-rate projection for an in-progress period,
// with a confidence band derived from observed daily variance.
type ForecastInsight struct {
	Label         string    `json:"label"`
	EndDate       time.Time `json:"end_date"`
	Projected     float64   `json:"projected"`
	Actual        float64   `json:"actual"`
	RemainingDays int       `json:"remaining_days"`
	RunRate       float64   `json:"run_rate"`
	BandLow       float64   `json:"band_low"`
	BandHigh      float64   `json:"band_high"`
}
