package handler

import (
	"net/http"

	"github.com/campaignops/marketing-ops-api/internal/domain"
	"github.com/campaignops/marketing-ops-api/internal/scheduler"
	"github.com/campaignops/marketing-ops-api/pkg/apiErrors"
	"github.com/campaignops/marketing-ops-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

const (
	CronJobTypePerformance = "performance"
	CronJobTypeAll         = "all"
)

// CronJobServices holds the schedulers that can be triggered manually.
type CronJobServices struct {
	PerformanceRollupService *scheduler.PerformanceRollupService
}

// RunCronJob triggers a cron job outside its schedule. Admin only.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Only administrators can run cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Cron job type not specified", nil)
			return
		}

		switch cronType {
		case CronJobTypePerformance, CronJobTypeAll:
			if services.PerformanceRollupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Performance roll-up service not available", nil)
				return
			}
			services.PerformanceRollupService.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid cron job type. Accepted values: performance, all", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Cron job started",
			"type":    cronType,
		})
	}
}

// GetCronStatus returns the state of the cron jobs. Admin only.
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Only administrators can check cron job status", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"performance": services.PerformanceRollupService.GetStatus(),
		})
	}
}
