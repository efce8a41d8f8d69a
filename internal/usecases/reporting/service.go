package reporting

import (
	"github.com/campaignops/marketing-ops-api/infrastructure/repository"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/internal/usecases/trending"
	"github.com/sirupsen/logrus"
)

// ReportService builds trend and forecast views over the performance facts.
// Aggregation itself lives in the pure functions of the trending package;
// this service only loads the snapshot they need.
type ReportService interface {
	Trend(resolution domain.Resolution, current domain.DateRange, previous *domain.DateRange, opts *trending.Options) (*domain.TrendSeries, error)
	Forecast(period domain.ForecastPeriod, metric string) (*domain.ForecastInsight, error)
}

type Service struct {
	performanceRepo repository.PerformanceRepository
}

func NewService(performanceRepo repository.PerformanceRepository) ReportService {
	return &Service{
		performanceRepo: performanceRepo,
	}
}

func (s *Service) Trend(
	resolution domain.Resolution,
	current domain.DateRange,
	previous *domain.DateRange,
	opts *trending.Options,
) (*domain.TrendSeries, error) {
	prev := trending.PreviousRange(current, previous)

	// One fetch spanning both ranges; the aggregation filters per range.
	start := current.Start
	if prev.Start.Before(start) {
		start = prev.Start
	}
	end := current.End
	if prev.End.After(end) {
		end = prev.End
	}

	records, err := s.performanceRepo.GetByDateRange(start, end)
	if err != nil {
		logrus.WithError(err).Error("reporting: failed to load performance facts")
		return nil, err
	}

	series := trending.BuildTrend(records, resolution, current, &prev, opts)
	return &series, nil
}

func (s *Service) Forecast(period domain.ForecastPeriod, metric string) (*domain.ForecastInsight, error) {
	records, err := s.performanceRepo.GetByDateRange(period.Start, period.End)
	if err != nil {
		logrus.WithError(err).Error("reporting: failed to load performance facts")
		return nil, err
	}

	return trending.BuildForecast(records, period, metric), nil
}
