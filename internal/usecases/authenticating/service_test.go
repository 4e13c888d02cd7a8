package authenticating

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/adsflow-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adsflow-api/internal/config"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T, ctrl *gomock.Controller) (Authenticator, *repomocks.MockSettingsRepository) {
	t.Helper()

	settingsRepo := repomocks.NewMockSettingsRepository(ctrl)
	settingsRepo.EXPECT().Get("clients").Return("", nil)

	service, err := NewService(settingsRepo, &config.Config{SecretKey: "chave_de_teste"})
	require.NoError(t, err)

	return service, settingsRepo
}

func TestService_CreateClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, settingsRepo := newTestService(t, ctrl)

	// Cada escrita no cadastro é espelhada no armazenamento
	settingsRepo.EXPECT().Set("clients", gomock.Any()).Return(nil).AnyTimes()

	client, err := service.CreateClient("Cliente A", "Cliente.A@Example.com ", "senha123")
	require.NoError(t, err)

	assert.NotEmpty(t, client.ID)
	assert.Equal(t, "cliente.a@example.com", client.Email)
	assert.Equal(t, domain.RoleTenant, client.RoleID)
	assert.Empty(t, client.Links)
	assert.NotEqual(t, "senha123", client.SecretHash)

	t.Run("Email duplicado é rejeitado sem diferenciar maiúsculas", func(t *testing.T) {
		_, err := service.CreateClient("Outro", "CLIENTE.A@example.com", "outrasenha")
		assert.ErrorIs(t, err, ErrClientExists)
	})

	t.Run("Dados obrigatórios ausentes são rejeitados", func(t *testing.T) {
		_, err := service.CreateClient("", "x@example.com", "senha")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, settingsRepo := newTestService(t, ctrl)
	settingsRepo.EXPECT().Set("clients", gomock.Any()).Return(nil).AnyTimes()

	created, err := service.CreateClient("Cliente B", "cliente.b@example.com", "senha123")
	require.NoError(t, err)

	t.Run("Login com email em outra caixa funciona", func(t *testing.T) {
		token, err := service.Login("CLIENTE.B@EXAMPLE.COM", "senha123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, created.ID, claims.ClientID)
		assert.Equal(t, domain.RoleTenant, claims.ClientRole)
	})

	t.Run("Senha incorreta é rejeitada", func(t *testing.T) {
		_, err := service.Login("cliente.b@example.com", "senha_errada")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Email desconhecido é rejeitado", func(t *testing.T) {
		_, err := service.Login("ninguem@example.com", "senha123")
		assert.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("Token adulterado é rejeitado", func(t *testing.T) {
		_, err := service.ValidateToken("token.invalido.aqui")
		assert.Error(t, err)
	})
}

func TestService_CarregaCadastroPersistido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	persisted := `[{"id":"CLI001","name":"Cliente A","email":"cliente.a@example.com","secret_hash":"$2a$10$hash","role_id":2,"links":[{"ad_account_id":"act_1","campaign_id":"CMP001","campaign_name":"Campanha 1"}]}]`

	settingsRepo := repomocks.NewMockSettingsRepository(ctrl)
	settingsRepo.EXPECT().Get("clients").Return(persisted, nil)

	service, err := NewService(settingsRepo, &config.Config{SecretKey: "chave_de_teste"})
	require.NoError(t, err)

	client := service.GetClient("CLI001")
	require.NotNil(t, client)
	assert.Equal(t, "cliente.a@example.com", client.Email)
	assert.Equal(t, "$2a$10$hash", client.SecretHash)
	require.Len(t, client.Links, 1)
	assert.Equal(t, "CMP001", client.Links[0].CampaignID)
}

func TestService_UpdateClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, settingsRepo := newTestService(t, ctrl)
	settingsRepo.EXPECT().Set("clients", gomock.Any()).Return(nil).AnyTimes()

	created, err := service.CreateClient("Cliente C", "cliente.c@example.com", "senha123")
	require.NoError(t, err)

	newName := "Cliente C Renomeado"
	newRole := domain.RoleOperator
	err = service.UpdateClient(&domain.UpdateClientRequest{
		ID:     created.ID,
		Name:   &newName,
		RoleID: &newRole,
	})
	require.NoError(t, err)

	updated := service.GetClient(created.ID)
	assert.Equal(t, "Cliente C Renomeado", updated.Name)
	assert.Equal(t, domain.RoleOperator, updated.RoleID)

	t.Run("Cliente inexistente retorna erro", func(t *testing.T) {
		err := service.UpdateClient(&domain.UpdateClientRequest{ID: "NAO_EXISTE"})
		assert.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestService_ReplaceClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, settingsRepo := newTestService(t, ctrl)
	settingsRepo.EXPECT().Set("clients", gomock.Any()).Return(nil).AnyTimes()

	created, err := service.CreateClient("Cliente D", "cliente.d@example.com", "senha123")
	require.NoError(t, err)

	created.Links = []*domain.CampaignLink{
		{AdAccountRef: "act_1", CampaignID: "CMP001", CampaignName: "Campanha 1"},
	}

	require.NoError(t, service.ReplaceClient(created))

	stored := service.GetClient(created.ID)
	require.Len(t, stored.Links, 1)
	assert.Equal(t, "CMP001", stored.Links[0].CampaignID)
}

func TestService_ReplaceClient_FalhaNaPersistenciaRestauraCadastro(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, settingsRepo := newTestService(t, ctrl)
	settingsRepo.EXPECT().Set("clients", gomock.Any()).Return(nil)

	created, err := service.CreateClient("Cliente E", "cliente.e@example.com", "senha123")
	require.NoError(t, err)

	edited := *created
	edited.Links = []*domain.CampaignLink{
		{AdAccountRef: "act_1", CampaignID: "CMP001", CampaignName: "Campanha 1"},
	}

	settingsRepo.EXPECT().Set("clients", gomock.Any()).Return(errors.New("banco indisponível"))

	require.Error(t, service.ReplaceClient(&edited))

	// O cadastro volta ao estado anterior à troca
	stored := service.GetClient(created.ID)
	assert.Empty(t, stored.Links)
}
