package domain

import "time"

// PerformanceRecord is one persisted performance fact row: the financial
// outcome of a campaign/day, dimensioned for grouping in reports.
type PerformanceRecord struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Database string    `json:"database"`
	Partner  string    `json:"partner"`
	Geo      string    `json:"geo"`

	Turnover     float64 `json:"turnover"`
	Margin       float64 `json:"margin"`
	RoutingCosts float64 `json:"routing_costs"`
	VSent        int     `json:"v_sent"`
	Qty          int     `json:"qty"`
}
