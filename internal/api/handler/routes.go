package handler

import (
	"net/http"

	"github.com/vfg2006/adsflow-api/internal/api/handler/router"
	"github.com/vfg2006/adsflow-api/internal/appstate"
	"github.com/vfg2006/adsflow-api/internal/usecases/agenting"
	"github.com/vfg2006/adsflow-api/internal/usecases/authenticating"
	"github.com/vfg2006/adsflow-api/internal/usecases/credentialing"
	"github.com/vfg2006/adsflow-api/internal/usecases/linking"
	"github.com/vfg2006/adsflow-api/internal/usecases/sessioning"
	"github.com/vfg2006/adsflow-api/internal/usecases/syncing"
	"github.com/vfg2006/adsflow-api/pkg/middleware"
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

func Authentication(service authenticating.Authenticator, sessionService sessioning.SessionService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service, sessionService),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Clients(service authenticating.Authenticator, sessionService sessioning.SessionService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients",
			Method:      http.MethodGet,
			Handler:     ListClients(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/clients",
			Method:      http.MethodPost,
			Handler:     CreateClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodGet,
			Handler:     GetClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodPut,
			Handler:     UpdateClient(service, sessionService),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
	}
}

func Credential(service credentialing.CredentialService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/settings/credential",
			Method:      http.MethodGet,
			Handler:     GetCredential(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/settings/credential",
			Method:      http.MethodPut,
			Handler:     SetCredential(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/settings/credential/test",
			Method:      http.MethodPost,
			Handler:     TestCredential(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
	}
}

func Discovery(service linking.LinkService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts",
			Method:      http.MethodGet,
			Handler:     ListAdAccounts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/accounts/sync",
			Method:      http.MethodGet,
			Handler:     SyncAdAccounts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/adAccount/:id/campaigns",
			Method:      http.MethodGet,
			Handler:     DiscoverCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/clients/:id/links/toggle",
			Method:      http.MethodPost,
			Handler:     ToggleLink(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
	}
}

func Dashboard(
	state *appstate.State,
	sessionService sessioning.SessionService,
	syncer syncing.DashboardSyncer,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(state, sessionService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/sync",
			Method:      http.MethodPost,
			Handler:     SyncDashboard(syncer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/session/view",
			Method:      http.MethodPut,
			Handler:     SetView(state),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/session/locale",
			Method:      http.MethodPut,
			Handler:     SetLocale(state),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Session(sessionService sessioning.SessionService, syncer syncing.DashboardSyncer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/session/impersonate/:id",
			Method:      http.MethodPost,
			Handler:     Impersonate(sessionService, syncer),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/session/impersonate",
			Method:      http.MethodDelete,
			Handler:     StopImpersonation(sessionService, syncer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Agent(service agenting.AgentService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/agent/messages",
			Method:      http.MethodPost,
			Handler:     PostAgentMessage(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/agent/messages",
			Method:      http.MethodGet,
			Handler:     GetAgentHistory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/agent/messages",
			Method:      http.MethodDelete,
			Handler:     ResetAgent(service),
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
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
	}
}
