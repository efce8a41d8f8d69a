package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/campaignops/marketing-ops-api/infrastructure/database/postgres"
	"github.com/campaignops/marketing-ops-api/infrastructure/repository"
	"github.com/campaignops/marketing-ops-api/internal/api"
	"github.com/campaignops/marketing-ops-api/internal/config"
	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/internal/scheduler"
	"github.com/campaignops/marketing-ops-api/internal/usecases/authenticating"
	"github.com/campaignops/marketing-ops-api/internal/usecases/estimating"
	"github.com/campaignops/marketing-ops-api/internal/usecases/planning"
	"github.com/campaignops/marketing-ops-api/internal/usecases/reporting"
	"github.com/campaignops/marketing-ops-api/internal/usecases/routing"
	"github.com/campaignops/marketing-ops-api/internal/usecases/ticketing"
	"github.com/sirupsen/logrus"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid log level: %s, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Log level set to: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	routingSettingsRepo := repository.NewRoutingSettingsRepository(pgConn)
	effortRuleRepo := repository.NewEffortRuleRepository(pgConn)
	ticketRepo := repository.NewTicketRepository(pgConn)
	performanceRepo := repository.NewPerformanceRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	settingsService := routing.NewService(routingSettingsRepo)
	seedRoutingSettings(settingsService, cfg)

	planner := planning.NewService(campaignRepo, settingsService)

	effortService := estimating.NewService(effortRuleRepo, estimating.MatchOptions{
		CaseInsensitive: cfg.Effort.CaseInsensitiveMatch,
	})

	ticketService := ticketing.NewService(ticketRepo, effortService)
	reportService := reporting.NewService(performanceRepo)

	rollupService := scheduler.NewPerformanceRollupService(
		campaignRepo,
		performanceRepo,
		settingsService,
		cfg,
	)

	if cfg.PerformanceSync.Enabled {
		if err := rollupService.Start(ctx); err != nil {
			logrus.WithError(err).Error("Error starting the performance roll-up scheduler")
		} else {
			logrus.Info("Performance roll-up scheduler started")
		}

		// Persisted facts embed the routing rate, so a settings change makes
		// the lookback window stale until it is re-folded.
		settingsService.Subscribe(func(domain.RoutingSettings) {
			logrus.Info("Routing settings changed, re-running performance roll-up")
			rollupService.TriggerManualSync()
		})
	} else {
		logrus.Info("Performance roll-up scheduler disabled by configuration")
	}

	server, err := api.New(
		cfg,
		planner,
		settingsService,
		effortService,
		ticketService,
		reportService,
		authenticator,
		rollupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// seedRoutingSettings writes the configured default rate when the database
// has no settings row yet, so rate resolution works before the first manual
// update.
func seedRoutingSettings(settingsService routing.SettingsService, cfg *config.Config) {
	settings, err := settingsService.Get()
	if err != nil {
		logrus.WithError(err).Warn("Could not load routing settings on startup")
		return
	}

	if !settings.UpdatedAt.IsZero() || len(settings.Periods) > 0 {
		return
	}

	if errs := settingsService.Update(domain.RoutingSettings{
		DefaultRate: cfg.Routing.DefaultRate,
	}); len(errs) > 0 {
		logrus.WithFields(logrus.Fields{
			"errors": len(errs),
		}).Warn("Could not seed routing settings")
		return
	}

	logrus.WithFields(logrus.Fields{
		"default_rate": cfg.Routing.DefaultRate,
	}).Info("Routing settings seeded from configuration")
}

// configureLogger sets the log format and working directory
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn opens and verifies the database connection
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Error connecting to PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Error pinging PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
