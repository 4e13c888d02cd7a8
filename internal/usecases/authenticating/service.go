package authenticating

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/infrastructure/repository"
	"github.com/vfg2006/adsflow-api/internal/config"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"github.com/vfg2006/adsflow-api/pkg/apiErrors"
	"github.com/vfg2006/adsflow-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Authenticator interface {
	CreateClient(name, email, secret string) (*domain.Client, error)
	ListClients() []*domain.Client
	GetClient(clientID string) *domain.Client
	UpdateClient(request *domain.UpdateClientRequest) error
	ReplaceClient(client *domain.Client) error
	FindByCredentials(email, secret string) (*domain.Client, error)
	Login(email, secret string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// Service mantém o cadastro de clientes em memória, espelhado de forma
// síncrona no armazenamento durável
type Service struct {
	mu           sync.RWMutex
	clients      []*domain.Client
	settingsRepo repository.SettingsRepository
	cfg          *config.Config
}

func NewService(settingsRepo repository.SettingsRepository, cfg *config.Config) (Authenticator, error) {
	s := &Service{
		clients:      make([]*domain.Client, 0),
		settingsRepo: settingsRepo,
		cfg:          cfg,
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// load restaura o cadastro persistido
func (s *Service) load() error {
	raw, err := s.settingsRepo.Get(repository.KeyClients)
	if err != nil {
		return err
	}

	if raw == "" {
		return nil
	}

	var clients []*domain.Client
	if err := json.UnmarshalFromString(raw, &clients); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar cadastro de clientes persistido")
		return err
	}

	s.clients = clients
	logrus.Infof("%d clientes carregados do armazenamento", len(clients))

	return nil
}

// persist espelha o cadastro no armazenamento durável. Deve ser chamada com
// o lock de escrita em posse do chamador.
func (s *Service) persist() error {
	raw, err := json.MarshalToString(s.clients)
	if err != nil {
		return err
	}

	if err := s.settingsRepo.Set(repository.KeyClients, raw); err != nil {
		logrus.WithError(err).Error("Erro ao persistir cadastro de clientes")
		return NewAuthError(ErrPersistence, apiErrors.ErrDatabaseOperation, "Falha ao gravar cadastro de clientes")
	}

	return nil
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) CreateClient(name, email, secret string) (*domain.Client, error) {
	if name == "" || email == "" || secret == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome, email e senha são obrigatórios")
	}

	email = handleEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Email é único, sem diferenciar maiúsculas de minúsculas
	for _, existing := range s.clients {
		if handleEmail(existing.Email) == email {
			return nil, NewAuthError(ErrClientExists, apiErrors.ErrClientAlreadyExists, "Email já cadastrado")
		}
	}

	clientID, err := utils.GenerateID()
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Falha ao gerar identificador único para cliente")
	}

	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	client := &domain.Client{
		ID:         clientID,
		Name:       name,
		Email:      email,
		SecretHash: string(hashedSecret),
		RoleID:     domain.RoleTenant,
		Links:      make([]*domain.CampaignLink, 0),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.clients = append(s.clients, client)

	if err := s.persist(); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *Service) ListClients() []*domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clients := make([]*domain.Client, len(s.clients))
	copy(clients, s.clients)
	return clients
}

func (s *Service) GetClient(clientID string) *domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, client := range s.clients {
		if client.ID == clientID {
			return client
		}
	}
	return nil
}

func (s *Service) UpdateClient(request *domain.UpdateClientRequest) error {
	if request.ID == "" {
		return NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "ID é obrigatório")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var client *domain.Client
	for _, existing := range s.clients {
		if existing.ID == request.ID {
			client = existing
			break
		}
	}

	if client == nil {
		return NewClientAuthError(ErrClientNotFound, apiErrors.ErrClientNotFound, request.ID, "Cliente não encontrado")
	}

	if request.Name != nil {
		client.Name = *request.Name
	}

	if request.Email != nil {
		client.Email = handleEmail(*request.Email)
	}

	if request.RoleID != nil {
		client.RoleID = *request.RoleID
	}

	client.UpdatedAt = time.Now()

	return s.persist()
}

// ReplaceClient substitui o cliente com o mesmo ID, ou o acrescenta quando
// ainda não existe
func (s *Service) ReplaceClient(client *domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client.UpdatedAt = time.Now()

	for i, existing := range s.clients {
		if existing.ID == client.ID {
			s.clients[i] = client
			if err := s.persist(); err != nil {
				s.clients[i] = existing
				return err
			}
			return nil
		}
	}

	s.clients = append(s.clients, client)
	if err := s.persist(); err != nil {
		s.clients = s.clients[:len(s.clients)-1]
		return err
	}
	return nil
}

// FindByCredentials retorna o primeiro cliente cujo email e senha conferem
func (s *Service) FindByCredentials(email, secret string) (*domain.Client, error) {
	if email == "" || secret == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, client := range s.clients {
		if handleEmail(client.Email) != email {
			continue
		}

		if err := bcrypt.CompareHashAndPassword([]byte(client.SecretHash), []byte(secret)); err != nil {
			return nil, NewClientAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, client.ID, "Senha incorreta")
		}

		return client, nil
	}

	return nil, NewAuthError(ErrClientNotFound, apiErrors.ErrClientNotFound, "Cliente não encontrado")
}

func (s *Service) Login(email, secret string) (string, error) {
	client, err := s.FindByCredentials(email, secret)
	if err != nil {
		return "", err
	}

	token, err := generateJWT(client, s.cfg.SecretKey)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func generateJWT(client *domain.Client, secretKey string) (string, error) {
	claims := domain.Claims{
		ClientID:    client.ID,
		ClientName:  client.Name,
		ClientEmail: client.Email,
		ClientRole:  client.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
