package syncing

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metamocks "github.com/vfg2006/adsflow-api/infrastructure/integrator/meta/mocks"
	repomocks "github.com/vfg2006/adsflow-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adsflow-api/internal/appstate"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"github.com/vfg2006/adsflow-api/internal/usecases/credentialing"
	"go.uber.org/mock/gomock"
)

var validToken = strings.Repeat("x", 40)

func newCredentialService(t *testing.T, ctrl *gomock.Controller, token string) credentialing.CredentialService {
	t.Helper()

	settingsRepo := repomocks.NewMockSettingsRepository(ctrl)
	settingsRepo.EXPECT().Get("credential").Return(token, nil)

	service, err := credentialing.NewService(settingsRepo, nil)
	require.NoError(t, err)

	return service
}

func clientWithLinks(links ...*domain.CampaignLink) *domain.Client {
	return &domain.Client{
		ID:     "CLI001",
		Name:   "Cliente A",
		Email:  "cliente.a@example.com",
		RoleID: domain.RoleTenant,
		Links:  links,
	}
}

func TestService_Sync(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		client   *domain.Client
		setup    func(metaService *metamocks.MockMetaIntegrator)
		validate func(t *testing.T, state *appstate.State)
	}{
		{
			name:   "Credencial inválida - dashboard vazio com série de 14 dias",
			token:  "curta",
			client: clientWithLinks(&domain.CampaignLink{AdAccountRef: "act_1", CampaignID: "CMP001"}),
			setup:  func(metaService *metamocks.MockMetaIntegrator) {},
			validate: func(t *testing.T, state *appstate.State) {
				campaigns, series, kpis := state.Dashboard()
				assert.Empty(t, campaigns)
				assert.Len(t, series, 14)
				assert.Equal(t, 0.0, kpis.TotalSpend)
				assert.Equal(t, 0.0, kpis.BlendedROAS)
			},
		},
		{
			name:   "Cliente sem vínculos - dashboard vazio",
			token:  validToken,
			client: clientWithLinks(),
			setup:  func(metaService *metamocks.MockMetaIntegrator) {},
			validate: func(t *testing.T, state *appstate.State) {
				campaigns, series, _ := state.Dashboard()
				assert.Empty(t, campaigns)
				assert.Len(t, series, 14)
			},
		},
		{
			name:  "Apenas campanhas vinculadas ficam visíveis e cada conta é consultada uma vez",
			token: validToken,
			client: clientWithLinks(
				&domain.CampaignLink{AdAccountRef: "act_1", CampaignID: "CMP001"},
				&domain.CampaignLink{AdAccountRef: "act_1", CampaignID: "CMP002"},
			),
			setup: func(metaService *metamocks.MockMetaIntegrator) {
				// Dois vínculos na mesma conta geram uma única consulta
				metaService.EXPECT().
					GetCampaignsByAccountRef(validToken, "act_1").
					Return([]*domain.Campaign{
						{ID: "CMP001", Name: "Campanha 1", Spend: 100, Clicks: 50, Conversions: 2},
						{ID: "CMP002", Name: "Campanha 2", Spend: 60, Clicks: 10, Conversions: 1},
						{ID: "CMP999", Name: "Campanha de outro cliente", Spend: 999, Clicks: 999, Conversions: 9},
					}, nil).
					Times(1)
			},
			validate: func(t *testing.T, state *appstate.State) {
				campaigns, _, kpis := state.Dashboard()
				assert.Len(t, campaigns, 2)

				ids := make([]string, 0, len(campaigns))
				for _, campaign := range campaigns {
					ids = append(ids, campaign.ID)
				}
				assert.ElementsMatch(t, []string{"CMP001", "CMP002"}, ids)

				assert.Equal(t, 160.0, kpis.TotalSpend)
				assert.Equal(t, 60, kpis.TotalClicks)
				assert.Equal(t, 3, kpis.TotalConversions)
				// 3 conversões * 65 / 160
				assert.Equal(t, 1.22, kpis.BlendedROAS)
			},
		},
		{
			name:  "Falha em uma conta não derruba a sincronização",
			token: validToken,
			client: clientWithLinks(
				&domain.CampaignLink{AdAccountRef: "act_1", CampaignID: "CMP001"},
				&domain.CampaignLink{AdAccountRef: "act_2", CampaignID: "CMP003"},
			),
			setup: func(metaService *metamocks.MockMetaIntegrator) {
				metaService.EXPECT().
					GetCampaignsByAccountRef(validToken, "act_1").
					Return(nil, errors.New("conta indisponível"))

				metaService.EXPECT().
					GetCampaignsByAccountRef(validToken, "act_2").
					Return([]*domain.Campaign{
						{ID: "CMP003", Name: "Campanha 3", Spend: 40, Clicks: 20, Conversions: 1},
					}, nil)
			},
			validate: func(t *testing.T, state *appstate.State) {
				campaigns, _, kpis := state.Dashboard()
				assert.Len(t, campaigns, 1)
				assert.Equal(t, "CMP003", campaigns[0].ID)
				assert.Equal(t, 40.0, kpis.TotalSpend)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			metaService := metamocks.NewMockMetaIntegrator(ctrl)
			tt.setup(metaService)

			state := appstate.New()
			service := NewService(state, newCredentialService(t, ctrl, tt.token), metaService)

			err := service.Sync(tt.client)
			require.NoError(t, err)

			tt.validate(t, state)
		})
	}
}

func TestService_Sync_DescartaConclusaoAntiga(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	metaService := metamocks.NewMockMetaIntegrator(ctrl)
	metaService.EXPECT().
		GetCampaignsByAccountRef(validToken, "act_1").
		Return([]*domain.Campaign{
			{ID: "CMP001", Name: "Campanha 1", Spend: 100, Clicks: 50, Conversions: 2},
		}, nil)

	state := appstate.New()
	service := NewService(state, newCredentialService(t, ctrl, validToken), metaService)

	client := clientWithLinks(&domain.CampaignLink{AdAccountRef: "act_1", CampaignID: "CMP001"})

	// Uma sincronização antiga ficou pendente antes da corrente
	staleGeneration := state.NextGeneration()

	err := service.Sync(client)
	require.NoError(t, err)

	// A conclusão tardia da sincronização antiga deve ser descartada
	applied := state.CommitDashboard(staleGeneration, nil, nil, &domain.DashboardKPIs{})
	assert.False(t, applied)

	campaigns, _, _ := state.Dashboard()
	assert.Len(t, campaigns, 1)
	assert.Equal(t, "CMP001", campaigns[0].ID)
}

func TestDeriveKPIs(t *testing.T) {
	tests := []struct {
		name      string
		campaigns []*domain.Campaign
		expected  *domain.DashboardKPIs
	}{
		{
			name:      "Sem campanhas - todos os KPIs zerados",
			campaigns: nil,
			expected:  &domain.DashboardKPIs{},
		},
		{
			name: "Agrega totais e deriva ROAS e CPC",
			campaigns: []*domain.Campaign{
				{Spend: 100, Clicks: 50, Conversions: 2},
				{Spend: 100, Clicks: 50, Conversions: 2},
			},
			expected: &domain.DashboardKPIs{
				TotalSpend:       200,
				TotalClicks:      100,
				TotalConversions: 4,
				// 4 * 65 / 200
				BlendedROAS: 1.3,
				// 200 / 100
				AvgCPC: 2,
			},
		},
		{
			name: "Investimento zero não divide por zero",
			campaigns: []*domain.Campaign{
				{Spend: 0, Clicks: 10, Conversions: 1},
			},
			expected: &domain.DashboardKPIs{
				TotalClicks:      10,
				TotalConversions: 1,
				BlendedROAS:      0,
				AvgCPC:           0,
			},
		},
		{
			name: "Cliques zero não divide por zero",
			campaigns: []*domain.Campaign{
				{Spend: 50, Clicks: 0, Conversions: 0},
			},
			expected: &domain.DashboardKPIs{
				TotalSpend:  50,
				BlendedROAS: 0,
				AvgCPC:      0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveKPIs(tt.campaigns))
		})
	}
}

func TestBuildDailySeries(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Sem investimento - série de placeholder zerada", func(t *testing.T) {
		series := buildDailySeries(&domain.DashboardKPIs{}, now)

		assert.Len(t, series, 14)
		assert.Equal(t, "2025-03-02", series[0].Date)
		assert.Equal(t, "2025-03-15", series[13].Date)
		for _, stat := range series {
			assert.Equal(t, 0.0, stat.Spend)
			assert.Equal(t, 0.0, stat.ROAS)
		}
	})

	t.Run("Com investimento - série com valores derivados dos totais", func(t *testing.T) {
		series := buildDailySeries(&domain.DashboardKPIs{TotalSpend: 1400, BlendedROAS: 2}, now)

		assert.Len(t, series, 14)
		total := 0.0
		for _, stat := range series {
			assert.Greater(t, stat.Spend, 0.0)
			total += stat.Spend
		}
		assert.InDelta(t, 1400, total, 200)
	})
}
