package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/internal/usecases/linking"
	"github.com/vfg2006/adsflow-api/pkg/apiErrors"
)

type ToggleLinkRequest struct {
	CampaignID string `json:"campaign_id"`
}

// SyncAdAccounts atualiza o cache de contas de anúncio acessíveis
func SyncAdAccounts(service linking.LinkService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SyncAdAccounts")

		accounts, err := service.SyncAccounts()
		if err != nil {
			handleDiscoveryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(accounts); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// ListAdAccounts retorna o cache corrente de contas de anúncio
func ListAdAccounts(service linking.LinkService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(service.StagedAccounts()); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// DiscoverCampaigns busca as campanhas de uma conta e as prepara como
// candidatas a vínculo
func DiscoverCampaigns(service linking.LinkService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DiscoverCampaigns")

		accountRef := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountRef == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Referência da conta é obrigatória", nil)
			return
		}

		campaigns, err := service.DiscoverCampaigns(accountRef)
		if err != nil {
			handleDiscoveryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(campaigns); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// ToggleLink alterna o vínculo do cliente com uma campanha candidata
func ToggleLink(service linking.LinkService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ToggleLink")

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clientID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cliente é obrigatório", nil)
			return
		}

		var req ToggleLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if req.CampaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha é obrigatório", nil)
			return
		}

		client, err := service.ToggleLink(clientID, req.CampaignID)
		if err != nil {
			handleDiscoveryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(clientResponse(client)); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// handleDiscoveryError trata erros do fluxo de descoberta
func handleDiscoveryError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, linking.ErrInvalidCredential):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentialKey, "Credencial da plataforma ausente ou incompleta", nil)

	case errors.Is(err, linking.ErrClientNotFound):
		apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", nil)

	case errors.Is(err, linking.ErrNoStagedAccount), errors.Is(err, linking.ErrCampaignNotStaged):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao consultar a plataforma de anúncios", nil)
	}
}
