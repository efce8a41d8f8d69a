package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campaignops/marketing-ops-api/internal/api/handler"
	"github.com/campaignops/marketing-ops-api/internal/api/handler/router"
	"github.com/campaignops/marketing-ops-api/internal/config"
	"github.com/campaignops/marketing-ops-api/internal/scheduler"
	"github.com/campaignops/marketing-ops-api/internal/usecases/authenticating"
	"github.com/campaignops/marketing-ops-api/internal/usecases/estimating"
	"github.com/campaignops/marketing-ops-api/internal/usecases/planning"
	"github.com/campaignops/marketing-ops-api/internal/usecases/reporting"
	"github.com/campaignops/marketing-ops-api/internal/usecases/routing"
	"github.com/campaignops/marketing-ops-api/internal/usecases/ticketing"
	"github.com/campaignops/marketing-ops-api/pkg/middleware"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	planner planning.CampaignPlanner,
	settingsService routing.SettingsService,
	effortService estimating.EffortService,
	ticketService ticketing.TicketService,
	reportService reporting.ReportService,
	authenticator authenticating.Authenticator,
	rollupService *scheduler.PerformanceRollupService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		PerformanceRollupService: rollupService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.User(authenticator)...),
		router.WithRoutes(handler.Campaigns(planner)...),
		router.WithRoutes(handler.RoutingSettings(settingsService)...),
		router.WithRoutes(handler.EffortRules(effortService)...),
		router.WithRoutes(handler.Tickets(ticketService)...),
		router.WithRoutes(handler.Reports(reportService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Error while running the server")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Interrupt signal received")
	case <-ctx.Done():
		logrus.Info("Application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Error during server shutdown")
		return err
	}

	logrus.Info("Server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("HTTP server shut down")
	return nil
}
