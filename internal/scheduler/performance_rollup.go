// Package scheduler holds the background jobs of the API.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/campaignops/marketing-ops-api/infrastructure/repository"
	"github.com/campaignops/marketing-ops-api/internal/config"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/internal/usecases/deriving"
	"github.com/campaignops/marketing-ops-api/internal/usecases/routing"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

type PerformanceRollupConfig struct {
	CronSchedule string
	LookbackDays int
	Enabled      bool
}

// PerformanceRollupService folds planned campaigns into daily performance
// facts so the reporting queries never touch the planning table. Facts are
// keyed deterministically, so replaying a window is idempotent.
type PerformanceRollupService struct {
	scheduler           *gocron.Scheduler
	campaignRepo        repository.CampaignRepository
	performanceRepo     repository.PerformanceRepository
	settings            routing.SettingsService
	config              PerformanceRollupConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewPerformanceRollupService(
	campaignRepo repository.CampaignRepository,
	performanceRepo repository.PerformanceRepository,
	settings routing.SettingsService,
	cfg *config.Config,
) *PerformanceRollupService {
	rollupConfig := PerformanceRollupConfig{
		CronSchedule: cfg.PerformanceSync.CronSchedule,
		LookbackDays: cfg.PerformanceSync.LookbackDays,
		Enabled:      cfg.PerformanceSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": rollupConfig.CronSchedule,
		"lookback_days": rollupConfig.LookbackDays,
	}).Info("Performance roll-up scheduler configuration loaded")

	return &PerformanceRollupService{
		scheduler:       scheduler,
		campaignRepo:    campaignRepo,
		performanceRepo: performanceRepo,
		settings:        settings,
		config:          rollupConfig,
	}
}

func (s *PerformanceRollupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Performance roll-up cron disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Starting performance roll-up cron")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunRollup(); err != nil {
			logrus.WithError(err).Error("Performance roll-up failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule performance roll-up: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping performance roll-up cron")
		s.scheduler.Stop()
	}()

	return nil
}

// RunRollup folds the lookback window of campaigns into performance facts.
func (s *PerformanceRollupService) RunRollup() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Performance roll-up already running")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.Info("Starting performance roll-up")

	end := time.Now()
	start := end.AddDate(0, 0, -s.config.LookbackDays)

	campaigns, err := s.campaignRepo.List(&domain.CampaignFilters{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		logrus.WithError(err).Error("Performance roll-up: failed to list campaigns")
		return err
	}

	records, err := s.foldCampaigns(campaigns)
	if err != nil {
		return err
	}

	if err := s.performanceRepo.SaveOrUpdate(records); err != nil {
		logrus.WithError(err).Error("Performance roll-up: failed to save facts")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"campaigns": len(campaigns),
		"facts":     len(records),
	}).Info("Performance roll-up completed")

	return nil
}

// foldCampaigns groups campaigns by day and dimensions, derives each
// campaign's metrics at the rate in force for its date and sums them into one
// fact per group. Campaigns without a date are skipped.
func (s *PerformanceRollupService) foldCampaigns(campaigns []*domain.CampaignRecord) ([]domain.PerformanceRecord, error) {
	facts := make(map[string]*domain.PerformanceRecord)

	for _, campaign := range campaigns {
		if campaign.Date == nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaign.ID,
			}).Warn("Performance roll-up: campaign without date skipped")
			continue
		}

		rate, err := s.settings.RateForDate(campaign.Date)
		if err != nil {
			return nil, err
		}

		metrics := deriving.ForCampaign(campaign, rate)

		key := factKey(*campaign.Date, campaign.Database, campaign.Partner, campaign.Geo)

		fact, exists := facts[key]
		if !exists {
			date := campaign.Date
			fact = &domain.PerformanceRecord{
				ID:       key,
				Date:     time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
				Database: campaign.Database,
				Partner:  campaign.Partner,
				Geo:      campaign.Geo,
			}
			facts[key] = fact
		}

		fact.Turnover += metrics.Turnover
		fact.Margin += metrics.Margin
		fact.RoutingCosts += metrics.RoutingCosts
		fact.VSent += campaign.VSent
		fact.Qty += campaign.Qty
	}

	records := make([]domain.PerformanceRecord, 0, len(facts))
	for _, fact := range facts {
		records = append(records, *fact)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})

	return records, nil
}

// factKey is the deterministic fact row identity. Dimension values are
// lowercased so casing drift upstream does not split a group.
func factKey(date time.Time, database, partner, geo string) string {
	return fmt.Sprintf(
		"%s|%s|%s|%s",
		date.Format(time.DateOnly),
		strings.ToLower(database),
		strings.ToLower(partner),
		strings.ToLower(geo),
	)
}

// TriggerManualSync starts a roll-up outside the schedule.
func (s *PerformanceRollupService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Performance roll-up already in progress, ignoring manual request")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Starting manual performance roll-up")
	go s.RunRollup()
}

// GetStatus returns the current scheduler state.
func (s *PerformanceRollupService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"lookback_days":          s.config.LookbackDays,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
