package routing

import (
	"sync"
	"time"

	"github.com/campaignops/marketing-ops-api/infrastructure/repository"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Service owns the single shared routing settings object. Updates are
// validate-then-save; subscribers are notified after a successful save so
// dependent views can re-derive their numbers.
type Service struct {
	repo repository.RoutingSettingsRepository

	mu          sync.Mutex
	subscribers []func(domain.RoutingSettings)
}

func NewService(repo repository.RoutingSettingsRepository) *Service {
	return &Service{repo: repo}
}

// Get returns the current settings snapshot.
func (s *Service) Get() (*domain.RoutingSettings, error) {
	settings, err := s.repo.Get()
	if err != nil {
		logrus.WithError(err).Error("routing: failed to load settings")
		return nil, err
	}

	return settings, nil
}

// Update validates the incoming settings and persists them when clean. All
// validation problems are returned together so the UI can show the full
// list; a non-empty result means nothing was saved.
func (s *Service) Update(settings domain.RoutingSettings) []domain.ValidationError {
	if errs := ValidateSettings(settings); len(errs) > 0 {
		logrus.WithFields(logrus.Fields{
			"errors": len(errs),
		}).Warn("routing: settings update rejected by validation")
		return errs
	}

	if err := s.repo.Save(&settings); err != nil {
		logrus.WithError(err).Error("routing: failed to persist settings")
		return []domain.ValidationError{{Message: "failed to persist routing settings"}}
	}

	s.notify(settings)

	return nil
}

// Subscribe registers a callback invoked after every successful update.
func (s *Service) Subscribe(fn func(domain.RoutingSettings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Service) notify(settings domain.RoutingSettings) {
	s.mu.Lock()
	subscribers := make([]func(domain.RoutingSettings), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(settings)
	}
}

// RateForDate resolves the effective rate for a date against the current
// settings snapshot.
func (s *Service) RateForDate(date *time.Time) (float64, error) {
	settings, err := s.repo.Get()
	if err != nil {
		return 0, err
	}

	return ResolveRate(date, *settings), nil
}
