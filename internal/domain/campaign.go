package domain

// ConversionValue é o valor monetário atribuído a cada conversão de pixel
// para o cálculo de ROAS.
const ConversionValue = 65.0

type AdAccount struct {
	AccountRef   string `json:"id"`
	Name         string `json:"name"`
	ExternalID   string `json:"account_id"`
	CurrencyCode string `json:"currency"`
}

type Campaign struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	Objective    string  `json:"objective"`
	Spend        float64 `json:"spend"`
	Impressions  int     `json:"impressions"`
	Clicks       int     `json:"clicks"`
	Conversions  int     `json:"conversions"`
	CTR          float64 `json:"ctr"`
	CPC          float64 `json:"cpc"`
	ROAS         float64 `json:"roas"`
	AdAccountRef string  `json:"ad_account_id"`
}

// DailyStat é um ponto da série diária exibida no dashboard
type DailyStat struct {
	Date  string  `json:"date"`
	Spend float64 `json:"spend"`
	ROAS  float64 `json:"roas"`
}

// DashboardKPIs são métricas derivadas das campanhas visíveis, nunca armazenadas
type DashboardKPIs struct {
	TotalSpend       float64 `json:"total_spend"`
	BlendedROAS      float64 `json:"blended_roas"`
	AvgCPC           float64 `json:"avg_cpc"`
	TotalClicks      int     `json:"total_clicks"`
	TotalConversions int     `json:"total_conversions"`
}
