package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/internal/usecases/credentialing"
	"github.com/vfg2006/adsflow-api/pkg/apiErrors"
)

type SetCredentialRequest struct {
	Token string `json:"token"`
}

type CredentialResponse struct {
	MaskedToken string `json:"masked_token"`
	Valid       bool   `json:"valid"`
}

// maskToken preserva apenas os últimos 4 caracteres da credencial
func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}

func GetCredential(service credentialing.CredentialService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(CredentialResponse{
			MaskedToken: maskToken(service.Get()),
			Valid:       service.IsValid(),
		})
	})
}

func SetCredential(service credentialing.CredentialService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SetCredential")

		var req SetCredentialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := service.Set(req.Token); err != nil {
			logrus.WithError(err).Error("Erro ao gravar credencial")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao persistir credencial", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(CredentialResponse{
			MaskedToken: maskToken(req.Token),
			Valid:       credentialing.IsValidToken(req.Token),
		})
	})
}

// TestCredential valida a credencial contra a plataforma de anúncios. A
// resposta é sempre 200: a falha vem no corpo.
func TestCredential(service credentialing.CredentialService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - TestCredential")

		result := service.Test()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
