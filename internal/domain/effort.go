package domain

import "time"

// PrepMode selects how an effort rule's preparation hours are computed.
type PrepMode string

const (
	// PrepModeFixed uses HoursPrep as stored.
	PrepModeFixed PrepMode = "fixed"
	// PrepModePercent derives prep hours as a percentage of the base hours.
	// The stored percentage itself is never overwritten.
	PrepModePercent PrepMode = "percent"
)

// EffortRule maps a campaign context to estimated production hours. Empty
// brand/scope and empty touchpoint/market sets are wildcards that match any
// value. Touchpoints and Markets are stored raw; the resolver parses them
// (commas, and additionally whitespace for markets).
type EffortRule struct {
	ID          string   `json:"id"`
	Priority    int      `json:"priority"`
	Brand       string   `json:"brand"`
	Scope       string   `json:"scope"`
	Touchpoints string   `json:"touchpoints"`
	Markets     string   `json:"markets"`

	HoursMasterTemplate float64 `json:"hours_master_template"`
	HoursTranslations   float64 `json:"hours_translations"`
	HoursCopywriting    float64 `json:"hours_copywriting"`
	HoursAssets         float64 `json:"hours_assets"`
	HoursRevisions      float64 `json:"hours_revisions"`
	HoursBuild          float64 `json:"hours_build"`

	PrepMode         PrepMode `json:"prep_mode"`
	HoursPrep        float64  `json:"hours_prep"`
	HoursPrepPercent float64  `json:"hours_prep_percent"`

	Active bool `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffortContext is the query side of rule matching.
type EffortContext struct {
	Brand      string `json:"brand"`
	Scope      string `json:"scope"`
	Touchpoint string `json:"touchpoint"`
	Market     string `json:"market"`
}

// EffortEstimate is the outcome of a successful rule match. A matched rule
// with all-zero hours is a valid estimate; "no matching rule" is signalled
// separately by the resolver, never collapsed into a zero estimate.
type EffortEstimate struct {
	Rule       *EffortRule `json:"rule"`
	BaseHours  float64     `json:"base_hours"`
	PrepHours  float64     `json:"prep_hours"`
	TotalHours float64     `json:"total_hours"`
}
