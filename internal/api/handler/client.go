package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"github.com/vfg2006/adsflow-api/internal/usecases/authenticating"
	"github.com/vfg2006/adsflow-api/internal/usecases/sessioning"
	"github.com/vfg2006/adsflow-api/pkg/apiErrors"
)

type CreateClientRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

// ClientResponse é a representação do cliente exposta pela API, sem o hash
// da senha
type ClientResponse struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	RoleID    int                    `json:"role_id"`
	Links     []*domain.CampaignLink `json:"links"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func clientResponse(client *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		RoleID:    client.RoleID,
		Links:     client.Links,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

func CreateClient(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateClient")

		var req CreateClientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		client, err := service.CreateClient(req.Name, req.Email, req.Secret)
		if err != nil {
			handleClientError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(clientResponse(client)); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func ListClients(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clients := service.ListClients()

		response := make([]*ClientResponse, 0, len(clients))
		for _, client := range clients {
			response = append(response, clientResponse(client))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func GetClient(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cliente é obrigatório", nil)
			return
		}

		client := service.GetClient(id)
		if client == nil {
			apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", map[string]any{
				"client_id": id,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(clientResponse(client)); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func UpdateClient(service authenticating.Authenticator, sessionService sessioning.SessionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateClient")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cliente é obrigatório", nil)
			return
		}

		var updateRequest domain.UpdateClientRequest
		if err := json.NewDecoder(r.Body).Decode(&updateRequest); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		// Garante que o ID da URL seja usado
		updateRequest.ID = id

		if err := service.UpdateClient(&updateRequest); err != nil {
			handleClientError(w, err)
			return
		}

		client := service.GetClient(id)
		if client == nil {
			apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", nil)
			return
		}

		// A sessão ativa enxerga a edição imediatamente
		sessionService.RefreshIdentity(client)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(clientResponse(client)); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// handleClientError trata erros do cadastro de clientes
func handleClientError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), map[string]any{
			"client_id": authErr.ClientID,
		})
		return
	}

	switch {
	case errors.Is(err, authenticating.ErrClientExists):
		apiErrors.WriteError(w, apiErrors.ErrClientAlreadyExists, "Email já cadastrado", nil)

	case errors.Is(err, authenticating.ErrClientNotFound):
		apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", nil)

	case errors.Is(err, authenticating.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Dados obrigatórios ausentes", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar cliente", nil)
	}
}
