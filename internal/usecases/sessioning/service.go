package sessioning

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/internal/appstate"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"github.com/vfg2006/adsflow-api/internal/usecases/authenticating"
)

var (
	ErrNestedImpersonation = errors.New("já existe uma impersonação ativa")
	ErrNoImpersonation     = errors.New("nenhuma impersonação ativa")
	ErrClientNotFound      = errors.New("cliente não encontrado")
	ErrNoActiveSession     = errors.New("nenhuma sessão ativa")
)

type SessionService interface {
	Activate(clientID string) (*domain.Client, error)
	Impersonate(clientID string) (*domain.Client, error)
	StopImpersonation() (*domain.Client, error)
	IsImpersonating() bool
	RefreshIdentity(client *domain.Client)
}

type Service struct {
	state         *appstate.State
	authenticator authenticating.Authenticator
}

func NewService(state *appstate.State, authenticator authenticating.Authenticator) SessionService {
	return &Service{
		state:         state,
		authenticator: authenticator,
	}
}

// Activate torna o cliente a identidade ativa da sessão, com a view padrão
// do seu papel
func (s *Service) Activate(clientID string) (*domain.Client, error) {
	client := s.authenticator.GetClient(clientID)
	if client == nil {
		return nil, ErrClientNotFound
	}

	s.state.SetActiveClient(client)
	s.state.SetOriginalOperator(nil)

	if client.RoleID == domain.RoleOperator {
		s.state.SetCurrentView(domain.ViewAdminDashboard)
	} else {
		s.state.SetCurrentView(domain.ViewDashboard)
	}

	return client, nil
}

// Impersonate assume a identidade de um cliente, lembrando o operador
// original. Impersonação aninhada é rejeitada.
func (s *Service) Impersonate(clientID string) (*domain.Client, error) {
	if s.state.OriginalOperator() != nil {
		return nil, ErrNestedImpersonation
	}

	operator := s.state.ActiveClient()
	if operator == nil {
		return nil, ErrNoActiveSession
	}

	target := s.authenticator.GetClient(clientID)
	if target == nil {
		return nil, ErrClientNotFound
	}

	s.state.SetOriginalOperator(operator)
	s.state.SetActiveClient(target)
	s.state.SetCurrentView(domain.ViewDashboard)

	logrus.WithFields(logrus.Fields{
		"operator_id": operator.ID,
		"client_id":   target.ID,
	}).Info("Impersonação iniciada")

	return target, nil
}

// StopImpersonation restaura o operador original e limpa a impersonação
func (s *Service) StopImpersonation() (*domain.Client, error) {
	operator := s.state.OriginalOperator()
	if operator == nil {
		return nil, ErrNoImpersonation
	}

	s.state.SetActiveClient(operator)
	s.state.SetOriginalOperator(nil)
	s.state.SetCurrentView(domain.ViewAdmin)

	logrus.WithField("operator_id", operator.ID).Info("Impersonação encerrada")

	return operator, nil
}

func (s *Service) IsImpersonating() bool {
	return s.state.OriginalOperator() != nil
}

// RefreshIdentity atualiza a identidade ativa quando o cliente editado é o
// mesmo da sessão corrente, inclusive sob impersonação
func (s *Service) RefreshIdentity(client *domain.Client) {
	active := s.state.ActiveClient()
	if active != nil && active.ID == client.ID {
		s.state.SetActiveClient(client)
	}

	original := s.state.OriginalOperator()
	if original != nil && original.ID == client.ID {
		s.state.SetOriginalOperator(client)
	}
}
