package routing

import (
	"time"

	"github.com/campaignops/marketing-ops-api/internal/domain"
)

// SettingsService is the config-store interface for the shared routing
// settings: read a snapshot, validate-then-save an update, or subscribe to
// changes. Resolution itself stays in the pure functions, which take the
// snapshot as a parameter.
type SettingsService interface {
	Get() (*domain.RoutingSettings, error)
	Update(settings domain.RoutingSettings) []domain.ValidationError
	Subscribe(fn func(domain.RoutingSettings))
	RateForDate(date *time.Time) (float64, error)
}
