package linking

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/infrastructure/integrator/meta"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"github.com/vfg2006/adsflow-api/internal/usecases/authenticating"
	"github.com/vfg2006/adsflow-api/internal/usecases/credentialing"
	"github.com/vfg2006/adsflow-api/internal/usecases/sessioning"
	"github.com/vfg2006/adsflow-api/internal/usecases/syncing"
)

var (
	ErrInvalidCredential = errors.New("credencial da plataforma ausente ou incompleta")
	ErrNoStagedAccount   = errors.New("nenhuma conta em descoberta")
	ErrClientNotFound    = errors.New("cliente não encontrado")
	ErrCampaignNotStaged = errors.New("campanha não está entre as candidatas descobertas")
)

type LinkService interface {
	SyncAccounts() ([]*domain.AdAccount, error)
	DiscoverCampaigns(accountRef string) ([]*domain.Campaign, error)
	ToggleLink(clientID, campaignID string) (*domain.Client, error)
	StagedAccounts() []*domain.AdAccount
	StagedCampaigns() []*domain.Campaign
}

// Service conduz o fluxo de descoberta: contas, depois campanhas de uma
// conta, depois vínculo campanha a campanha
type Service struct {
	mu sync.RWMutex

	accounts  []*domain.AdAccount
	stagedRef string
	staged    []*domain.Campaign

	credentialService credentialing.CredentialService
	metaService       meta.MetaIntegrator
	authenticator     authenticating.Authenticator
	sessionService    sessioning.SessionService
	syncer            syncing.DashboardSyncer
}

func NewService(
	credentialService credentialing.CredentialService,
	metaService meta.MetaIntegrator,
	authenticator authenticating.Authenticator,
	sessionService sessioning.SessionService,
	syncer syncing.DashboardSyncer,
) LinkService {
	return &Service{
		accounts:          make([]*domain.AdAccount, 0),
		staged:            make([]*domain.Campaign, 0),
		credentialService: credentialService,
		metaService:       metaService,
		authenticator:     authenticator,
		sessionService:    sessionService,
		syncer:            syncer,
	}
}

// SyncAccounts atualiza o cache de contas de anúncio acessíveis pela
// credencial corrente
func (s *Service) SyncAccounts() ([]*domain.AdAccount, error) {
	if !s.credentialService.IsValid() {
		return nil, ErrInvalidCredential
	}

	accounts, err := s.metaService.ListAdAccounts(s.credentialService.Get())
	if err != nil {
		logrus.WithError(err).Error("discovery: falha ao listar contas de anúncio")
		return nil, err
	}

	s.mu.Lock()
	s.accounts = accounts
	s.mu.Unlock()

	logrus.WithField("accounts", len(accounts)).Info("discovery: contas de anúncio atualizadas")

	return accounts, nil
}

// DiscoverCampaigns busca as campanhas de uma conta e as deixa preparadas
// como candidatas a vínculo. Em caso de falha o estado anterior permanece
// intacto.
func (s *Service) DiscoverCampaigns(accountRef string) ([]*domain.Campaign, error) {
	if !s.credentialService.IsValid() {
		return nil, ErrInvalidCredential
	}

	normalizedRef := meta.NormalizeAccountRef(accountRef)

	campaigns, err := s.metaService.GetCampaignsByAccountRef(s.credentialService.Get(), normalizedRef)
	if err != nil {
		logrus.WithError(err).WithField("account_ref", normalizedRef).
			Error("discovery: falha ao buscar campanhas da conta")
		return nil, err
	}

	s.mu.Lock()
	s.stagedRef = normalizedRef
	s.staged = campaigns
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"account_ref": normalizedRef,
		"campaigns":   len(campaigns),
	}).Info("discovery: campanhas candidatas preparadas")

	return campaigns, nil
}

// ToggleLink inverte o vínculo do cliente com a campanha: remove quando já
// existe, acrescenta a partir das candidatas quando não existe. A operação é
// involutiva.
func (s *Service) ToggleLink(clientID, campaignID string) (*domain.Client, error) {
	current := s.authenticator.GetClient(clientID)
	if current == nil {
		return nil, ErrClientNotFound
	}

	// O registro compartilhado só muda depois da persistência, por isso o
	// novo conjunto de vínculos é montado em uma cópia do cliente
	edited := *current

	if current.HasLink(campaignID) {
		links := make([]*domain.CampaignLink, 0, len(current.Links)-1)
		for _, link := range current.Links {
			if link.CampaignID != campaignID {
				links = append(links, link)
			}
		}
		edited.Links = links
	} else {
		s.mu.RLock()
		stagedRef := s.stagedRef
		var candidate *domain.Campaign
		for _, campaign := range s.staged {
			if campaign.ID == campaignID {
				candidate = campaign
				break
			}
		}
		s.mu.RUnlock()

		if stagedRef == "" {
			return nil, ErrNoStagedAccount
		}

		if candidate == nil {
			return nil, ErrCampaignNotStaged
		}

		links := make([]*domain.CampaignLink, 0, len(current.Links)+1)
		links = append(links, current.Links...)
		links = append(links, &domain.CampaignLink{
			AdAccountRef: stagedRef,
			CampaignID:   candidate.ID,
			CampaignName: candidate.Name,
		})
		edited.Links = links
	}

	if err := s.authenticator.ReplaceClient(&edited); err != nil {
		return nil, err
	}

	// A sessão ativa enxerga a mudança imediatamente
	s.sessionService.RefreshIdentity(&edited)

	if err := s.syncer.SyncActive(); err != nil {
		logrus.WithError(err).Warn("discovery: falha ao ressincronizar dashboard após vínculo")
	}

	logrus.WithFields(logrus.Fields{
		"client_id":   edited.ID,
		"campaign_id": campaignID,
		"links":       len(edited.Links),
	}).Info("discovery: vínculo de campanha alternado")

	return &edited, nil
}

func (s *Service) StagedAccounts() []*domain.AdAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]*domain.AdAccount, len(s.accounts))
	copy(accounts, s.accounts)
	return accounts
}

func (s *Service) StagedCampaigns() []*domain.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()

	campaigns := make([]*domain.Campaign, len(s.staged))
	copy(campaigns, s.staged)
	return campaigns
}
