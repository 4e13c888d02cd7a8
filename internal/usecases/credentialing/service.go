package credentialing

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/infrastructure/integrator/meta"
	"github.com/vfg2006/adsflow-api/infrastructure/repository"
)

// minTokenLength é o limite abaixo do qual a credencial é considerada
// incompleta, sem consultar a API
const minTokenLength = 30

type TestResult struct {
	Connected bool   `json:"connected"`
	Label     string `json:"label,omitempty"`
	Message   string `json:"message"`
}

type CredentialService interface {
	Get() string
	Set(token string) error
	IsValid() bool
	Test() *TestResult
}

type Service struct {
	mu           sync.RWMutex
	token        string
	settingsRepo repository.SettingsRepository
	metaService  meta.MetaIntegrator
}

func NewService(settingsRepo repository.SettingsRepository, metaService meta.MetaIntegrator) (CredentialService, error) {
	token, err := settingsRepo.Get(repository.KeyCredential)
	if err != nil {
		return nil, err
	}

	if token != "" {
		logrus.Info("Credencial da plataforma de anúncios carregada do armazenamento")
	}

	return &Service{
		token:        token,
		settingsRepo: settingsRepo,
		metaService:  metaService,
	}, nil
}

func (s *Service) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set grava a credencial em memória e a persiste imediatamente. A troca em
// memória não é revertida quando a persistência falha.
func (s *Service) Set(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.settingsRepo.Set(repository.KeyCredential, token); err != nil {
		logrus.WithError(err).Error("Erro ao persistir credencial")
		return err
	}

	return nil
}

// IsValid aplica a heurística de formato da credencial, sem tocar a API
func (s *Service) IsValid() bool {
	return IsValidToken(s.Get())
}

// IsValidToken é a verificação pura de formato usada em toda a aplicação
func IsValidToken(token string) bool {
	return len(token) > minTokenLength
}

// Test consulta a API para validar a credencial. Falhas são respostas
// negativas, nunca erros.
func (s *Service) Test() *TestResult {
	token := s.Get()

	if !IsValidToken(token) {
		return &TestResult{
			Connected: false,
			Message:   "Credencial ausente ou incompleta",
		}
	}

	identity, err := s.metaService.TestCredential(token)
	if err != nil {
		logrus.WithError(err).Warn("Teste de credencial falhou na API")
		return &TestResult{
			Connected: false,
			Message:   "Credencial rejeitada pela plataforma de anúncios",
		}
	}

	return &TestResult{
		Connected: true,
		Label:     identity.Name,
		Message:   "Conexão estabelecida com sucesso",
	}
}
