package metadomain

import (
	"strconv"

	"github.com/sirupsen/logrus"
)

// PixelPurchaseActionType é a ação que conta como conversão no cálculo de ROAS
const PixelPurchaseActionType = "offsite_conversion.fb_pixel_purchase"

type Campaign struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Status    string            `json:"status"`
	Objective string            `json:"objective"`
	Insights  *InsightsEnvelope `json:"insights"`
}

type InsightsEnvelope struct {
	Data []CampaignInsight `json:"data"`
}

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type CampaignInsight struct {
	Spend       string   `json:"spend"`
	Impressions string   `json:"impressions"`
	Clicks      string   `json:"clicks"`
	CTR         string   `json:"ctr"`
	Actions     []Action `json:"actions"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
}

// FirstInsight retorna o primeiro snapshot de insights da campanha, quando existir
func (c *Campaign) FirstInsight() *CampaignInsight {
	if c.Insights == nil || len(c.Insights.Data) == 0 {
		return nil
	}
	return &c.Insights.Data[0]
}

// GetConversions extrai as conversões de compra via pixel do snapshot
func (i *CampaignInsight) GetConversions() int {
	for idx := range i.Actions {
		action := i.Actions[idx]

		if action.ActionType == PixelPurchaseActionType {
			actionValue, err := strconv.Atoi(action.Value)
			if err != nil {
				logrus.WithError(err).Error("Erro ao converter valor da ação de conversão")
				return 0
			}

			return actionValue
		}
	}

	return 0
}
