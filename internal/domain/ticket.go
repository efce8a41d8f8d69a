package domain

import "time"

// Ticket statuses
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusDone       = "done"
)

// Ticket is a CRM production request. EstimatedHours is stamped from the
// effort rule set when the ticket is created or reclassified; nil means no
// rule matched, which is distinct from an estimate of zero hours.
type Ticket struct {
	ID         string   `json:"id"`
	Ref        string   `json:"ref"`
	Subject    string   `json:"subject"`
	Brand      string   `json:"brand"`
	Scope      string   `json:"scope"`
	Touchpoint string   `json:"touchpoint"`
	Market     string   `json:"market"`
	Status     string   `json:"status"`

	EstimatedHours *float64 `json:"estimated_hours"`
	EffortRuleID   *string  `json:"effort_rule_id"`

	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateTicketRequest carries a partial ticket update.
type UpdateTicketRequest struct {
	ID         string  `json:"id"`
	Subject    *string `json:"subject"`
	Brand      *string `json:"brand"`
	Scope      *string `json:"scope"`
	Touchpoint *string `json:"touchpoint"`
	Market     *string `json:"market"`
	Status     *string `json:"status"`
}
