package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/internal/appstate"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"github.com/vfg2006/adsflow-api/internal/usecases/sessioning"
	"github.com/vfg2006/adsflow-api/internal/usecases/syncing"
	"github.com/vfg2006/adsflow-api/pkg/apiErrors"
)

type DashboardResponse struct {
	Campaigns     []*domain.Campaign     `json:"campaigns"`
	DailySeries   []domain.DailyStat     `json:"daily_series"`
	KPIs          *domain.DashboardKPIs  `json:"kpis"`
	CurrentView   string                 `json:"current_view"`
	Locale        string                 `json:"locale"`
	Impersonating bool                   `json:"impersonating"`
	ActiveClient  *ClientResponse        `json:"active_client,omitempty"`
}

type SetViewRequest struct {
	View string `json:"view"`
}

type SetLocaleRequest struct {
	Locale string `json:"locale"`
}

// GetDashboard retorna o retrato corrente do dashboard da sessão
func GetDashboard(state *appstate.State, sessionService sessioning.SessionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		campaigns, series, kpis := state.Dashboard()

		response := DashboardResponse{
			Campaigns:     campaigns,
			DailySeries:   series,
			KPIs:          kpis,
			CurrentView:   state.CurrentView(),
			Locale:        state.Locale(),
			Impersonating: sessionService.IsImpersonating(),
		}

		if active := state.ActiveClient(); active != nil {
			response.ActiveClient = clientResponse(active)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// SyncDashboard dispara uma sincronização imediata para a sessão ativa
func SyncDashboard(syncer syncing.DashboardSyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SyncDashboard")

		if err := syncer.SyncActive(); err != nil {
			logrus.WithError(err).Error("Erro ao sincronizar dashboard")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao sincronizar dashboard", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "synced"})
	})
}

// SetView altera a view corrente da sessão
func SetView(state *appstate.State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req SetViewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if !domain.IsValidView(req.View) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "View desconhecida", map[string]any{
				"view": req.View,
			})
			return
		}

		state.SetCurrentView(req.View)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"current_view": req.View})
	})
}

// SetLocale altera o idioma da sessão
func SetLocale(state *appstate.State) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req SetLocaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if req.Locale != domain.LocaleFR && req.Locale != domain.LocaleAR {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Idioma não suportado", map[string]any{
				"locale": req.Locale,
			})
			return
		}

		state.SetLocale(req.Locale)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"locale": req.Locale})
	})
}
