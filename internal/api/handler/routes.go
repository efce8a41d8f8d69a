package handler

import (
	"net/http"

	"github.com/campaignops/marketing-ops-api/internal/api/handler/router"
	"github.com/campaignops/marketing-ops-api/internal/usecases/authenticating"
	"github.com/campaignops/marketing-ops-api/internal/usecases/estimating"
	"github.com/campaignops/marketing-ops-api/internal/usecases/planning"
	"github.com/campaignops/marketing-ops-api/internal/usecases/reporting"
	"github.com/campaignops/marketing-ops-api/internal/usecases/routing"
	"github.com/campaignops/marketing-ops-api/internal/usecases/ticketing"
	"github.com/campaignops/marketing-ops-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Campaigns(service planning.CampaignPlanner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodPost,
			Handler:     SaveCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id",
			Method:      http.MethodGet,
			Handler:     GetCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id",
			Method:      http.MethodPut,
			Handler:     SaveCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func RoutingSettings(service routing.SettingsService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/routing/settings",
			Method:      http.MethodGet,
			Handler:     GetRoutingSettings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/routing/settings",
			Method:      http.MethodPut,
			Handler:     UpdateRoutingSettings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/routing/settings/validate",
			Method:      http.MethodPost,
			Handler:     ValidateRoutingSettings(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/routing/rate",
			Method:      http.MethodGet,
			Handler:     GetRoutingRate(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func EffortRules(service estimating.EffortService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/effort/rules",
			Method:      http.MethodGet,
			Handler:     ListEffortRules(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/effort/rules",
			Method:      http.MethodPost,
			Handler:     SaveEffortRule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/effort/rules/:id",
			Method:      http.MethodPut,
			Handler:     SaveEffortRule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/effort/rules/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteEffortRule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/effort/resolve",
			Method:      http.MethodPost,
			Handler:     ResolveEffort(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Tickets(service ticketing.TicketService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/tickets",
			Method:      http.MethodGet,
			Handler:     ListTickets(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/tickets",
			Method:      http.MethodPost,
			Handler:     CreateTicket(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/tickets/:id",
			Method:      http.MethodGet,
			Handler:     GetTicket(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/tickets/:id",
			Method:      http.MethodPut,
			Handler:     UpdateTicket(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/tickets/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteTicket(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Reports(service reporting.ReportService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/trend",
			Method:      http.MethodGet,
			Handler:     GetTrendReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/forecast",
			Method:      http.MethodGet,
			Handler:     GetForecastReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
