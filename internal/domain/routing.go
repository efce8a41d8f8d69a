package domain

import "time"

// RoutingRatePeriod is a date-ranged override of the default routing rate.
// A nil From means an open start, a nil To means an open end; both bounds
// are inclusive at day granularity.
type RoutingRatePeriod struct {
	ID    string     `json:"id"`
	From  *time.Time `json:"from"`
	To    *time.Time `json:"to"`
	Rate  float64    `json:"rate"`
	Label *string    `json:"label,omitempty"`
}

// RoutingSettings is the single shared routing configuration: one default
// rate plus non-overlapping override periods. There is exactly one settings
// row; it is updated in place by admins and read by everyone.
type RoutingSettings struct {
	DefaultRate float64             `json:"default_rate"`
	Periods     []RoutingRatePeriod `json:"periods"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ValidationError is a user-facing pre-save validation failure. Validators
// collect every problem into a list so the UI can show all of them at once.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
