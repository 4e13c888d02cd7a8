package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"github.com/vfg2006/adsflow-api/internal/usecases/authenticating"
	"github.com/vfg2006/adsflow-api/internal/usecases/sessioning"
	"github.com/vfg2006/adsflow-api/pkg/apiErrors"
	"github.com/vfg2006/adsflow-api/pkg/middleware"
)

type LoginRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

func Login(service authenticating.Authenticator, sessionService sessioning.SessionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		// Decodificar o corpo da requisição
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.Login(req.Email, req.Secret)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		client, err := service.FindByCredentials(req.Email, req.Secret)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		// O login assume a sessão com a view padrão do papel
		if _, err := sessionService.Activate(client.ID); err != nil {
			logrus.WithError(err).Error("Erro ao ativar sessão após login")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar sessão", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"token":  token,
			"client": clientResponse(client),
		})
	}
}

// GetMe retorna as informações do cliente autenticado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyClient).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Cliente não autenticado", nil)
			return
		}

		client := service.GetClient(claims.ClientID)
		if client == nil {
			apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(clientResponse(client)); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// handleLoginError trata erros específicos de login e retorna a resposta apropriada
func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), map[string]any{
			"client_id": authErr.ClientID,
		})
		return
	}

	switch {
	case errors.Is(err, authenticating.ErrInvalidCredentials):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)

	case errors.Is(err, authenticating.ErrClientNotFound):
		apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao realizar login", nil)
	}
}
