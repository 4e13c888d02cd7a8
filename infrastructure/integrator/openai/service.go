package openai

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/adsflow-api/internal/config"
)

type ReasoningIntegrator interface {
	Converse(systemPrompt string, history []openaiclient.Message, tools []openaiclient.Tool) (openaiclient.Message, error)
}

type Service struct {
	cfg    *config.Config
	Client openaiclient.Client
}

func New(cfg *config.Config, client openaiclient.Client) ReasoningIntegrator {
	return &Service{
		cfg:    cfg,
		Client: client,
	}
}

// Converse envia o histórico precedido do prompt de sistema e retorna a
// resposta do modelo, que pode conter chamadas de ferramenta
func (s *Service) Converse(systemPrompt string, history []openaiclient.Message, tools []openaiclient.Tool) (openaiclient.Message, error) {
	messages := make([]openaiclient.Message, 0, len(history)+1)
	messages = append(messages, openaiclient.Message{
		Role:    "system",
		Content: systemPrompt,
	})
	messages = append(messages, history...)

	response, err := s.Client.ChatWithTools(messages, tools)
	if err != nil {
		logrus.WithError(err).Error("reasoning: falha ao consultar o modelo")
		return openaiclient.Message{}, errors.Wrap(err, "converse")
	}

	return response, nil
}
