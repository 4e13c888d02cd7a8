package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"github.com/vfg2006/adsflow-api/internal/usecases/agenting"
	"github.com/vfg2006/adsflow-api/pkg/apiErrors"
)

type AgentMessageRequest struct {
	Message string `json:"message"`
}

type AgentHistoryResponse struct {
	Status  string               `json:"status"`
	History []domain.ChatMessage `json:"history"`
}

// PostAgentMessage envia uma mensagem ao assistente e retorna o histórico
// atualizado
func PostAgentMessage(service agenting.AgentService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - PostAgentMessage")

		var req AgentMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		history, err := service.Ask(req.Message)
		if err != nil {
			handleAgentError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(AgentHistoryResponse{
			Status:  service.Status(),
			History: history,
		}); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetAgentHistory retorna o histórico corrente da conversa
func GetAgentHistory(service agenting.AgentService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(AgentHistoryResponse{
			Status:  service.Status(),
			History: service.History(),
		}); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// ResetAgent descarta o histórico da conversa
func ResetAgent(service agenting.AgentService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		service.Reset()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": service.Status()})
	})
}

// handleAgentError trata erros do assistente
func handleAgentError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, agenting.ErrAgentBusy):
		apiErrors.WriteError(w, apiErrors.ErrAgentBusy, "O assistente já está processando uma mensagem", nil)

	case errors.Is(err, agenting.ErrEmptyMessage):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Mensagem é obrigatória", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do assistente", nil)
	}
}
