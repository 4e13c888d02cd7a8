package linking

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metamocks "github.com/vfg2006/adsflow-api/infrastructure/integrator/meta/mocks"
	repomocks "github.com/vfg2006/adsflow-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adsflow-api/internal/appstate"
	"github.com/vfg2006/adsflow-api/internal/config"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"github.com/vfg2006/adsflow-api/internal/usecases/authenticating"
	"github.com/vfg2006/adsflow-api/internal/usecases/credentialing"
	"github.com/vfg2006/adsflow-api/internal/usecases/sessioning"
	"github.com/vfg2006/adsflow-api/internal/usecases/syncing"
	"go.uber.org/mock/gomock"
)

type linkFixture struct {
	service       LinkService
	metaService   *metamocks.MockMetaIntegrator
	authenticator authenticating.Authenticator
	state         *appstate.State
	token         string
	client        *domain.Client
}

func setupLinking(t *testing.T, token string) *linkFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	settingsRepo := repomocks.NewMockSettingsRepository(ctrl)
	settingsRepo.EXPECT().Get("clients").Return("", nil)
	settingsRepo.EXPECT().Get("credential").Return(token, nil)
	settingsRepo.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	authenticator, err := authenticating.NewService(settingsRepo, &config.Config{SecretKey: "chave_de_teste"})
	require.NoError(t, err)

	client, err := authenticator.CreateClient("Cliente A", "cliente.a@example.com", "senha123")
	require.NoError(t, err)

	metaService := metamocks.NewMockMetaIntegrator(ctrl)

	credentialService, err := credentialing.NewService(settingsRepo, metaService)
	require.NoError(t, err)

	state := appstate.New()
	sessionService := sessioning.NewService(state, authenticator)
	syncService := syncing.NewService(state, credentialService, metaService)

	return &linkFixture{
		service:       NewService(credentialService, metaService, authenticator, sessionService, syncService),
		metaService:   metaService,
		authenticator: authenticator,
		state:         state,
		token:         token,
		client:        client,
	}
}

func TestService_SyncAccounts(t *testing.T) {
	t.Run("Credencial inválida é rejeitada sem consultar a API", func(t *testing.T) {
		f := setupLinking(t, "curta")

		_, err := f.service.SyncAccounts()
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("Contas retornadas ficam em cache", func(t *testing.T) {
		f := setupLinking(t, strings.Repeat("x", 40))

		f.metaService.EXPECT().
			ListAdAccounts(f.token).
			Return([]*domain.AdAccount{
				{AccountRef: "act_1", Name: "Conta 1"},
				{AccountRef: "act_2", Name: "Conta 2"},
			}, nil)

		accounts, err := f.service.SyncAccounts()
		require.NoError(t, err)
		assert.Len(t, accounts, 2)
		assert.Len(t, f.service.StagedAccounts(), 2)
	})
}

func TestService_DiscoverCampaigns(t *testing.T) {
	token := strings.Repeat("x", 40)

	t.Run("Campanhas descobertas ficam preparadas com a referência normalizada", func(t *testing.T) {
		f := setupLinking(t, token)

		// A referência sem prefixo é normalizada antes da consulta
		f.metaService.EXPECT().
			GetCampaignsByAccountRef(token, "act_123").
			Return([]*domain.Campaign{
				{ID: "CMP001", Name: "Campanha 1"},
			}, nil)

		campaigns, err := f.service.DiscoverCampaigns("123")
		require.NoError(t, err)
		assert.Len(t, campaigns, 1)
		assert.Len(t, f.service.StagedCampaigns(), 1)
	})

	t.Run("Falha na API não altera as candidatas anteriores", func(t *testing.T) {
		f := setupLinking(t, token)

		f.metaService.EXPECT().
			GetCampaignsByAccountRef(token, "act_1").
			Return([]*domain.Campaign{{ID: "CMP001", Name: "Campanha 1"}}, nil)

		_, err := f.service.DiscoverCampaigns("act_1")
		require.NoError(t, err)

		f.metaService.EXPECT().
			GetCampaignsByAccountRef(token, "act_2").
			Return(nil, errors.New("conta indisponível"))

		_, err = f.service.DiscoverCampaigns("act_2")
		assert.Error(t, err)

		// As candidatas da conta anterior permanecem intactas
		staged := f.service.StagedCampaigns()
		require.Len(t, staged, 1)
		assert.Equal(t, "CMP001", staged[0].ID)
	})
}

func TestService_ToggleLink(t *testing.T) {
	token := strings.Repeat("x", 40)

	t.Run("Alternar duas vezes volta ao estado original", func(t *testing.T) {
		f := setupLinking(t, token)

		f.metaService.EXPECT().
			GetCampaignsByAccountRef(token, "act_1").
			Return([]*domain.Campaign{{ID: "CMP001", Name: "Campanha 1"}}, nil)

		_, err := f.service.DiscoverCampaigns("act_1")
		require.NoError(t, err)

		// Primeira alternância cria o vínculo
		client, err := f.service.ToggleLink(f.client.ID, "CMP001")
		require.NoError(t, err)
		require.Len(t, client.Links, 1)
		assert.Equal(t, "act_1", client.Links[0].AdAccountRef)
		assert.Equal(t, "Campanha 1", client.Links[0].CampaignName)

		// Segunda alternância remove o vínculo
		client, err = f.service.ToggleLink(f.client.ID, "CMP001")
		require.NoError(t, err)
		assert.Empty(t, client.Links)
	})

	t.Run("Vincular campanha fora das candidatas é rejeitado", func(t *testing.T) {
		f := setupLinking(t, token)

		f.metaService.EXPECT().
			GetCampaignsByAccountRef(token, "act_1").
			Return([]*domain.Campaign{{ID: "CMP001", Name: "Campanha 1"}}, nil)

		_, err := f.service.DiscoverCampaigns("act_1")
		require.NoError(t, err)

		_, err = f.service.ToggleLink(f.client.ID, "CMP999")
		assert.ErrorIs(t, err, ErrCampaignNotStaged)
	})

	t.Run("Vincular sem conta em descoberta é rejeitado", func(t *testing.T) {
		f := setupLinking(t, token)

		_, err := f.service.ToggleLink(f.client.ID, "CMP001")
		assert.ErrorIs(t, err, ErrNoStagedAccount)
	})

	t.Run("Cliente inexistente é rejeitado", func(t *testing.T) {
		f := setupLinking(t, token)

		_, err := f.service.ToggleLink("NAO_EXISTE", "CMP001")
		assert.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("Instantâneo anterior do cliente não é mutado pela alternância", func(t *testing.T) {
		f := setupLinking(t, token)

		f.metaService.EXPECT().
			GetCampaignsByAccountRef(token, "act_1").
			Return([]*domain.Campaign{{ID: "CMP001", Name: "Campanha 1"}}, nil)

		_, err := f.service.DiscoverCampaigns("act_1")
		require.NoError(t, err)

		before := f.authenticator.GetClient(f.client.ID)

		client, err := f.service.ToggleLink(f.client.ID, "CMP001")
		require.NoError(t, err)
		require.Len(t, client.Links, 1)

		// O ponteiro obtido antes da alternância permanece com o conjunto antigo
		assert.Empty(t, before.Links)
		assert.Len(t, f.authenticator.GetClient(f.client.ID).Links, 1)
	})

	t.Run("Falha na persistência não altera os vínculos em memória", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		settingsRepo := repomocks.NewMockSettingsRepository(ctrl)
		settingsRepo.EXPECT().Get("clients").Return("", nil)
		settingsRepo.EXPECT().Get("credential").Return(token, nil)
		settingsRepo.EXPECT().Set("clients", gomock.Any()).Return(nil)

		authenticator, err := authenticating.NewService(settingsRepo, &config.Config{SecretKey: "chave_de_teste"})
		require.NoError(t, err)

		client, err := authenticator.CreateClient("Cliente A", "cliente.a@example.com", "senha123")
		require.NoError(t, err)

		metaService := metamocks.NewMockMetaIntegrator(ctrl)

		credentialService, err := credentialing.NewService(settingsRepo, metaService)
		require.NoError(t, err)

		state := appstate.New()
		sessionService := sessioning.NewService(state, authenticator)
		syncService := syncing.NewService(state, credentialService, metaService)
		service := NewService(credentialService, metaService, authenticator, sessionService, syncService)

		metaService.EXPECT().
			GetCampaignsByAccountRef(token, "act_1").
			Return([]*domain.Campaign{{ID: "CMP001", Name: "Campanha 1"}}, nil)

		_, err = service.DiscoverCampaigns("act_1")
		require.NoError(t, err)

		settingsRepo.EXPECT().Set("clients", gomock.Any()).Return(errors.New("banco indisponível"))

		_, err = service.ToggleLink(client.ID, "CMP001")
		require.Error(t, err)

		// O registro segue sem o vínculo
		assert.Empty(t, authenticator.GetClient(client.ID).Links)
	})

	t.Run("Sessão ativa enxerga o vínculo imediatamente", func(t *testing.T) {
		f := setupLinking(t, token)

		f.state.SetActiveClient(f.client)

		f.metaService.EXPECT().
			GetCampaignsByAccountRef(token, "act_1").
			Return([]*domain.Campaign{{ID: "CMP001", Name: "Campanha 1"}}, nil).
			Times(2) // Descoberta e ressincronização do dashboard

		_, err := f.service.DiscoverCampaigns("act_1")
		require.NoError(t, err)

		_, err = f.service.ToggleLink(f.client.ID, "CMP001")
		require.NoError(t, err)

		assert.Len(t, f.state.ActiveClient().Links, 1)

		campaigns, _, _ := f.state.Dashboard()
		require.Len(t, campaigns, 1)
		assert.Equal(t, "CMP001", campaigns[0].ID)
	})
}
