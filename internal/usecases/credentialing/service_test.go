package credentialing

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/adsflow-api/infrastructure/integrator/meta/domain"
	metamocks "github.com/vfg2006/adsflow-api/infrastructure/integrator/meta/mocks"
	repomocks "github.com/vfg2006/adsflow-api/infrastructure/repository/mocks"
	"go.uber.org/mock/gomock"
)

func TestIsValidToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected bool
	}{
		{
			name:     "Token vazio é inválido",
			token:    "",
			expected: false,
		},
		{
			name:     "Token com exatamente 30 caracteres é inválido",
			token:    strings.Repeat("a", 30),
			expected: false,
		},
		{
			name:     "Token com 31 caracteres é válido",
			token:    strings.Repeat("a", 31),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidToken(tt.token))
		})
	}
}

func TestService_Set_PersisteImediatamente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settingsRepo := repomocks.NewMockSettingsRepository(ctrl)
	settingsRepo.EXPECT().Get("credential").Return("", nil)

	service, err := NewService(settingsRepo, nil)
	require.NoError(t, err)

	token := strings.Repeat("b", 40)
	settingsRepo.EXPECT().Set("credential", token).Return(nil)

	require.NoError(t, service.Set(token))
	assert.Equal(t, token, service.Get())
	assert.True(t, service.IsValid())
}

func TestService_Set_FalhaDePersistenciaNaoReverteMemoria(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settingsRepo := repomocks.NewMockSettingsRepository(ctrl)
	settingsRepo.EXPECT().Get("credential").Return("", nil)

	service, err := NewService(settingsRepo, nil)
	require.NoError(t, err)

	token := strings.Repeat("c", 40)
	settingsRepo.EXPECT().Set("credential", token).Return(errors.New("banco indisponível"))

	err = service.Set(token)
	assert.Error(t, err)

	// A credencial em memória permanece trocada mesmo com a falha
	assert.Equal(t, token, service.Get())
}

func TestService_Test(t *testing.T) {
	validToken := strings.Repeat("d", 40)

	tests := []struct {
		name     string
		token    string
		setup    func(metaService *metamocks.MockMetaIntegrator)
		validate func(t *testing.T, result *TestResult)
	}{
		{
			name:  "Token incompleto - resposta negativa sem consultar a API",
			token: "curta",
			setup: func(metaService *metamocks.MockMetaIntegrator) {},
			validate: func(t *testing.T, result *TestResult) {
				assert.False(t, result.Connected)
				assert.Equal(t, "Credencial ausente ou incompleta", result.Message)
			},
		},
		{
			name:  "API rejeita a credencial - resposta negativa, nunca erro",
			token: validToken,
			setup: func(metaService *metamocks.MockMetaIntegrator) {
				metaService.EXPECT().
					TestCredential(validToken).
					Return(nil, errors.New("invalid oauth token"))
			},
			validate: func(t *testing.T, result *TestResult) {
				assert.False(t, result.Connected)
				assert.Equal(t, "Credencial rejeitada pela plataforma de anúncios", result.Message)
			},
		},
		{
			name:  "Credencial aceita - retorna o nome do perfil conectado",
			token: validToken,
			setup: func(metaService *metamocks.MockMetaIntegrator) {
				metaService.EXPECT().
					TestCredential(validToken).
					Return(&metadomain.Identity{ID: "123", Name: "Agência XYZ"}, nil)
			},
			validate: func(t *testing.T, result *TestResult) {
				assert.True(t, result.Connected)
				assert.Equal(t, "Agência XYZ", result.Label)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			metaService := metamocks.NewMockMetaIntegrator(ctrl)
			tt.setup(metaService)

			settingsRepo := repomocks.NewMockSettingsRepository(ctrl)
			settingsRepo.EXPECT().Get("credential").Return(tt.token, nil)

			service, err := NewService(settingsRepo, metaService)
			require.NoError(t, err)

			tt.validate(t, service.Test())
		})
	}
}
