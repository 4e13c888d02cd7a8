package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/internal/usecases/sessioning"
	"github.com/vfg2006/adsflow-api/internal/usecases/syncing"
	"github.com/vfg2006/adsflow-api/pkg/apiErrors"
)

// Impersonate assume a identidade de um cliente e ressincroniza o dashboard
func Impersonate(sessionService sessioning.SessionService, syncer syncing.DashboardSyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - Impersonate")

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clientID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cliente é obrigatório", nil)
			return
		}

		client, err := sessionService.Impersonate(clientID)
		if err != nil {
			handleSessionError(w, err)
			return
		}

		if err := syncer.Sync(client); err != nil {
			logrus.WithError(err).Warn("Erro ao ressincronizar dashboard após impersonação")
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(clientResponse(client)); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// StopImpersonation restaura o operador original
func StopImpersonation(sessionService sessioning.SessionService, syncer syncing.DashboardSyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - StopImpersonation")

		operator, err := sessionService.StopImpersonation()
		if err != nil {
			handleSessionError(w, err)
			return
		}

		if err := syncer.Sync(operator); err != nil {
			logrus.WithError(err).Warn("Erro ao ressincronizar dashboard após encerrar impersonação")
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(clientResponse(operator)); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// handleSessionError trata erros da sessão e da impersonação
func handleSessionError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, sessioning.ErrNestedImpersonation):
		apiErrors.WriteError(w, apiErrors.ErrNestedImpersonation, "Já existe uma impersonação ativa", nil)

	case errors.Is(err, sessioning.ErrNoImpersonation):
		apiErrors.WriteError(w, apiErrors.ErrNoImpersonation, "Nenhuma impersonação ativa", nil)

	case errors.Is(err, sessioning.ErrClientNotFound):
		apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", nil)

	case errors.Is(err, sessioning.ErrNoActiveSession):
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Nenhuma sessão ativa", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno de sessão", nil)
	}
}
