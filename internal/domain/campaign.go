package domain

import "time"

// CampaignRecord is a planned messaging campaign as persisted. Derived
// financial values are never stored here; they are recomputed on read from
// the current routing settings.
type CampaignRecord struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Brand    string     `json:"brand"`
	Database string     `json:"database"`
	Partner  string     `json:"partner"`
	Geo      string     `json:"geo"`
	Price    float64    `json:"price"`
	Qty      int        `json:"qty"`
	VSent    int        `json:"v_sent"`
	Date     *time.Time `json:"date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DerivedMetrics holds the financial metrics computed from a campaign's raw
// inputs. MarginPct is nil when turnover is zero: the ratio is undefined and
// the frontend renders it as "—", never as "0%".
type DerivedMetrics struct {
	RoutingCosts float64  `json:"routing_costs"`
	Turnover     float64  `json:"turnover"`
	Margin       float64  `json:"margin"`
	Ecpm         float64  `json:"ecpm"`
	MarginPct    *float64 `json:"margin_pct"`
}

// CampaignWithMetrics pairs a stored campaign with its freshly derived metrics.
type CampaignWithMetrics struct {
	CampaignRecord
	Metrics DerivedMetrics `json:"metrics"`
}

// CampaignFilters narrows campaign listings by date range.
type CampaignFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Brand     *string
	Database  *string
}
