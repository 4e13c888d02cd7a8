package agenting

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/infrastructure/integrator/openai"
	"github.com/vfg2006/adsflow-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/adsflow-api/internal/appstate"
	"github.com/vfg2006/adsflow-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrAgentBusy    = errors.New("o assistente já está processando uma mensagem")
	ErrEmptyMessage = errors.New("mensagem vazia")
)

// navigateToTool é a única ferramenta exposta ao modelo
const navigateToTool = "navigateTo"

const degradedReplyFR = "Désolé, je rencontre un problème technique. Veuillez réessayer dans un instant."
const degradedReplyAR = "عذراً، أواجه مشكلة تقنية. يرجى المحاولة مرة أخرى بعد قليل."

type AgentService interface {
	Ask(userMessage string) ([]domain.ChatMessage, error)
	History() []domain.ChatMessage
	Status() string
	Reset()
}

// Service conduz o ciclo do assistente: IDLE -> SCANNING -> TYPING -> IDLE.
// Apenas uma mensagem é processada por vez.
type Service struct {
	mu      sync.Mutex
	status  string
	history []domain.ChatMessage

	state     *appstate.State
	reasoning openai.ReasoningIntegrator
}

func NewService(state *appstate.State, reasoning openai.ReasoningIntegrator) AgentService {
	return &Service{
		status:    domain.AgentStatusIdle,
		history:   make([]domain.ChatMessage, 0),
		state:     state,
		reasoning: reasoning,
	}
}

func (s *Service) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Service) History() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]domain.ChatMessage, len(s.history))
	copy(history, s.history)
	return history
}

// Reset descarta o histórico da conversa
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == domain.AgentStatusIdle {
		s.history = make([]domain.ChatMessage, 0)
	}
}

// Ask processa a mensagem do usuário e retorna o histórico atualizado.
// Mensagens recebidas enquanto outra está em processamento são rejeitadas.
func (s *Service) Ask(userMessage string) ([]domain.ChatMessage, error) {
	userMessage = strings.TrimSpace(userMessage)
	if userMessage == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.status != domain.AgentStatusIdle {
		s.mu.Unlock()
		return nil, ErrAgentBusy
	}
	s.status = domain.AgentStatusScanning
	s.history = append(s.history, domain.ChatMessage{
		Role:      "user",
		Content:   userMessage,
		CreatedAt: time.Now(),
	})
	s.mu.Unlock()

	// O assistente sempre volta a IDLE, mesmo em falha
	defer func() {
		s.mu.Lock()
		s.status = domain.AgentStatusIdle
		s.mu.Unlock()
	}()

	systemPrompt := s.buildSystemPrompt()

	s.mu.Lock()
	messages := toModelMessages(s.history)
	s.mu.Unlock()

	response, err := s.reasoning.Converse(systemPrompt, messages, []openaiclient.Tool{navigateTool()})

	// TYPING só depois que o modelo respondeu
	s.mu.Lock()
	s.status = domain.AgentStatusTyping
	s.mu.Unlock()

	if err != nil {
		logrus.WithError(err).Error("agent: falha ao consultar o modelo")
		s.appendModelMessage(s.degradedReply())
		return s.History(), nil
	}

	if len(response.ToolCalls) > 0 {
		for _, call := range response.ToolCalls {
			s.applyToolCall(call)
		}
	} else if strings.TrimSpace(response.Content) != "" {
		s.appendModelMessage(response.Content)
	}

	return s.History(), nil
}

// buildSystemPrompt monta o prompt com o retrato do estado corrente da
// aplicação: KPIs, campanhas visíveis, view e idioma
func (s *Service) buildSystemPrompt() string {
	campaigns, _, kpis := s.state.Dashboard()

	type campaignSnapshot struct {
		Name  string  `json:"name"`
		ROAS  float64 `json:"roas"`
		Spend float64 `json:"spend"`
	}

	snapshotCampaigns := make([]campaignSnapshot, 0, len(campaigns))
	for _, campaign := range campaigns {
		snapshotCampaigns = append(snapshotCampaigns, campaignSnapshot{
			Name:  campaign.Name,
			ROAS:  campaign.ROAS,
			Spend: campaign.Spend,
		})
	}

	snapshot, err := json.MarshalToString(map[string]any{
		"kpis":         kpis,
		"campaigns":    snapshotCampaigns,
		"current_view": s.state.CurrentView(),
		"lang":         s.state.Locale(),
	})
	if err != nil {
		logrus.WithError(err).Warn("agent: falha ao serializar retrato do estado")
		snapshot = "{}"
	}

	return fmt.Sprintf(
		"Você é o assistente da plataforma de performance de anúncios. "+
			"Responda sempre no idioma da sessão (lang). "+
			"Use a ferramenta navigateTo quando o usuário pedir para mudar de tela. "+
			"Estado atual da aplicação: %s",
		snapshot,
	)
}

// applyToolCall executa a chamada de ferramenta e registra a confirmação no
// histórico
func (s *Service) applyToolCall(call openaiclient.ToolCall) {
	if call.Function.Name != navigateToTool {
		logrus.WithField("tool", call.Function.Name).Warn("agent: ferramenta desconhecida ignorada")
		return
	}

	var args struct {
		ViewName string `json:"viewName"`
	}
	if err := json.UnmarshalFromString(call.Function.Arguments, &args); err != nil {
		logrus.WithError(err).Warn("agent: argumentos inválidos de navigateTo")
		return
	}

	if !domain.IsValidView(args.ViewName) {
		logrus.WithField("view", args.ViewName).Warn("agent: view desconhecida ignorada")
		return
	}

	s.state.SetCurrentView(args.ViewName)

	s.appendModelMessage(s.navigationConfirmation(args.ViewName))

	logrus.WithField("view", args.ViewName).Info("agent: navegação executada pelo assistente")
}

func (s *Service) navigationConfirmation(view string) string {
	if s.state.Locale() == domain.LocaleAR {
		return fmt.Sprintf("تم الانتقال إلى %s.", view)
	}
	return fmt.Sprintf("Très bien, j'affiche la vue %s.", view)
}

func (s *Service) degradedReply() string {
	if s.state.Locale() == domain.LocaleAR {
		return degradedReplyAR
	}
	return degradedReplyFR
}

func (s *Service) appendModelMessage(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, domain.ChatMessage{
		Role:      "model",
		Content:   content,
		CreatedAt: time.Now(),
	})
}

// toModelMessages converte o histórico interno para o formato da API de chat
func toModelMessages(history []domain.ChatMessage) []openaiclient.Message {
	messages := make([]openaiclient.Message, 0, len(history))
	for _, message := range history {
		role := "user"
		if message.Role == "model" {
			role = "assistant"
		}
		messages = append(messages, openaiclient.Message{
			Role:    role,
			Content: message.Content,
		})
	}
	return messages
}

func navigateTool() openaiclient.Tool {
	return openaiclient.Tool{
		Type: "function",
		Function: openaiclient.ToolFunction{
			Name:        navigateToTool,
			Description: "Navega a interface para a view pedida pelo usuário",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"viewName": map[string]any{
						"type": "string",
						"enum": []string{
							domain.ViewDashboard,
							domain.ViewCampaigns,
							domain.ViewAdmin,
							domain.ViewAdminDashboard,
							domain.ViewAdminSettings,
						},
					},
				},
				"required": []string{"viewName"},
			},
		},
	}
}
