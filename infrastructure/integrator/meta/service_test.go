package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/vfg2006/adsflow-api/infrastructure/integrator/meta/domain"
)

func TestNormalizeAccountRef(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		expected string
	}{
		{
			name:     "Referência sem prefixo ganha act_",
			ref:      "123456",
			expected: "act_123456",
		},
		{
			name:     "Referência já prefixada permanece igual",
			ref:      "act_123456",
			expected: "act_123456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAccountRef(tt.ref))
		})
	}
}

func TestStripAccountRef(t *testing.T) {
	assert.Equal(t, "123456", StripAccountRef("act_123456"))
	assert.Equal(t, "123456", StripAccountRef("123456"))
}

func TestService_factoryCampaign(t *testing.T) {
	service := &Service{}

	t.Run("Campanha sem insights mantém métricas zeradas", func(t *testing.T) {
		result := service.factoryCampaign(&metadomain.Campaign{
			ID:     "CMP001",
			Name:   "Campanha 1",
			Status: "ACTIVE",
		}, "act_1")

		assert.Equal(t, "CMP001", result.ID)
		assert.Equal(t, "act_1", result.AdAccountRef)
		assert.Equal(t, 0.0, result.Spend)
		assert.Equal(t, 0.0, result.ROAS)
		assert.Equal(t, 0.0, result.CPC)
	})

	t.Run("Métricas derivadas do primeiro snapshot de insights", func(t *testing.T) {
		result := service.factoryCampaign(&metadomain.Campaign{
			ID:   "CMP002",
			Name: "Campanha 2",
			Insights: &metadomain.InsightsEnvelope{
				Data: []metadomain.CampaignInsight{
					{
						Spend:       "130.00",
						Impressions: "10000",
						Clicks:      "200",
						CTR:         "0.02",
						Actions: []metadomain.Action{
							{ActionType: "link_click", Value: "200"},
							{ActionType: metadomain.PixelPurchaseActionType, Value: "4"},
						},
					},
				},
			},
		}, "act_1")

		assert.Equal(t, 130.0, result.Spend)
		assert.Equal(t, 10000, result.Impressions)
		assert.Equal(t, 200, result.Clicks)
		assert.Equal(t, 4, result.Conversions)
		// CTR da API vem em fração e é exposto em percentual
		assert.Equal(t, 2.0, result.CTR)
		// 130 / 200 cliques
		assert.Equal(t, 0.65, result.CPC)
		// 4 conversões * 65 / 130 de investimento
		assert.Equal(t, 2.0, result.ROAS)
	})

	t.Run("Investimento zero não gera ROAS nem CPC", func(t *testing.T) {
		result := service.factoryCampaign(&metadomain.Campaign{
			ID: "CMP003",
			Insights: &metadomain.InsightsEnvelope{
				Data: []metadomain.CampaignInsight{
					{Spend: "0", Impressions: "100", Clicks: "0", CTR: "0"},
				},
			},
		}, "act_1")

		assert.Equal(t, 0.0, result.ROAS)
		assert.Equal(t, 0.0, result.CPC)
	})
}

func TestCampaignInsight_GetConversions(t *testing.T) {
	tests := []struct {
		name     string
		insight  metadomain.CampaignInsight
		expected int
	}{
		{
			name:     "Sem ações - zero conversões",
			insight:  metadomain.CampaignInsight{},
			expected: 0,
		},
		{
			name: "Apenas a ação de compra via pixel conta",
			insight: metadomain.CampaignInsight{
				Actions: []metadomain.Action{
					{ActionType: "link_click", Value: "50"},
					{ActionType: metadomain.PixelPurchaseActionType, Value: "7"},
				},
			},
			expected: 7,
		},
		{
			name: "Valor não numérico é tratado como zero",
			insight: metadomain.CampaignInsight{
				Actions: []metadomain.Action{
					{ActionType: metadomain.PixelPurchaseActionType, Value: "abc"},
				},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.insight.GetConversions())
		})
	}
}
