package syncing

import (
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/infrastructure/integrator/meta"
	"github.com/vfg2006/adsflow-api/internal/appstate"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"github.com/vfg2006/adsflow-api/internal/usecases/credentialing"
	"github.com/vfg2006/adsflow-api/pkg/utils"
)

const (
	// Número máximo de contas consultadas simultaneamente
	maxConcurrent = 5

	// Tamanho da série diária exibida no dashboard
	dailySeriesDays = 14
)

type DashboardSyncer interface {
	Sync(client *domain.Client) error
	SyncActive() error
}

type Service struct {
	state             *appstate.State
	credentialService credentialing.CredentialService
	metaService       meta.MetaIntegrator
}

func NewService(
	state *appstate.State,
	credentialService credentialing.CredentialService,
	metaService meta.MetaIntegrator,
) DashboardSyncer {
	return &Service{
		state:             state,
		credentialService: credentialService,
		metaService:       metaService,
	}
}

// SyncActive sincroniza o dashboard da identidade ativa da sessão
func (s *Service) SyncActive() error {
	return s.Sync(s.state.ActiveClient())
}

// Sync reconstrói o dashboard do cliente: busca as campanhas das contas
// vinculadas em paralelo, filtra pelas autorizações e deriva os KPIs.
// Conclusões de sincronizações antigas são descartadas quando uma mais
// recente já começou.
func (s *Service) Sync(client *domain.Client) error {
	generation := s.state.NextGeneration()

	if client == nil || !s.credentialService.IsValid() || len(client.Links) == 0 {
		s.commitEmpty(generation)
		return nil
	}

	token := s.credentialService.Get()

	// Cada conta é consultada apenas uma vez, mesmo com vários vínculos
	accountRefs := distinctAccountRefs(client.Links)

	var (
		mutex        sync.Mutex
		fetchWg      sync.WaitGroup
		allCampaigns []*domain.Campaign
	)

	semaphore := make(chan struct{}, maxConcurrent)

	for _, accountRef := range accountRefs {
		fetchWg.Add(1)

		go func(accountRef string) {
			defer fetchWg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			campaigns, err := s.metaService.GetCampaignsByAccountRef(token, accountRef)
			if err != nil {
				// A falha de uma conta não derruba a sincronização: a conta
				// contribui com uma lista vazia
				logrus.WithError(err).WithField("account_ref", accountRef).
					Warn("sync: falha ao buscar campanhas da conta")
				return
			}

			mutex.Lock()
			allCampaigns = append(allCampaigns, campaigns...)
			mutex.Unlock()
		}(accountRef)
	}

	fetchWg.Wait()

	// Apenas campanhas autorizadas pelos vínculos ficam visíveis
	linkedIDs := client.LinkedCampaignIDs()
	visible := make([]*domain.Campaign, 0, len(allCampaigns))
	for _, campaign := range allCampaigns {
		if linkedIDs[campaign.ID] {
			visible = append(visible, campaign)
		}
	}

	kpis := DeriveKPIs(visible)
	series := buildDailySeries(kpis, time.Now())

	if !s.state.CommitDashboard(generation, visible, series, kpis) {
		logrus.WithField("generation", generation).
			Info("sync: resultado descartado, sincronização mais recente em andamento")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"client_id": client.ID,
		"accounts":  len(accountRefs),
		"campaigns": len(visible),
	}).Info("sync: dashboard atualizado")

	return nil
}

func (s *Service) commitEmpty(generation uint64) {
	kpis := DeriveKPIs(nil)
	s.state.CommitDashboard(generation, make([]*domain.Campaign, 0), placeholderSeries(time.Now()), kpis)
}

func distinctAccountRefs(links []*domain.CampaignLink) []string {
	seen := make(map[string]bool, len(links))
	refs := make([]string, 0, len(links))
	for _, link := range links {
		if seen[link.AdAccountRef] {
			continue
		}
		seen[link.AdAccountRef] = true
		refs = append(refs, link.AdAccountRef)
	}
	return refs
}

// DeriveKPIs agrega as métricas das campanhas visíveis. Função pura.
func DeriveKPIs(campaigns []*domain.Campaign) *domain.DashboardKPIs {
	kpis := &domain.DashboardKPIs{}

	for _, campaign := range campaigns {
		kpis.TotalSpend += campaign.Spend
		kpis.TotalClicks += campaign.Clicks
		kpis.TotalConversions += campaign.Conversions
	}

	if kpis.TotalSpend > 0 {
		kpis.BlendedROAS = utils.RoundWithTwoDecimalPlace(
			float64(kpis.TotalConversions) * domain.ConversionValue / kpis.TotalSpend,
		)
	}

	if kpis.TotalClicks > 0 {
		kpis.AvgCPC = utils.RoundWithTwoDecimalPlace(kpis.TotalSpend / float64(kpis.TotalClicks))
	}

	kpis.TotalSpend = utils.RoundWithTwoDecimalPlace(kpis.TotalSpend)

	return kpis
}

// buildDailySeries gera a série sintética dos últimos 14 dias em torno dos
// totais agregados
func buildDailySeries(kpis *domain.DashboardKPIs, now time.Time) []domain.DailyStat {
	if kpis == nil || kpis.TotalSpend == 0 {
		return placeholderSeries(now)
	}

	avgDailySpend := kpis.TotalSpend / dailySeriesDays

	series := make([]domain.DailyStat, 0, dailySeriesDays)
	for i, date := range utils.LastNDays(dailySeriesDays, now) {
		variation := 1 + 0.25*math.Sin(float64(i))

		series = append(series, domain.DailyStat{
			Date:  date.Format(time.DateOnly),
			Spend: utils.RoundWithTwoDecimalPlace(avgDailySpend * variation),
			ROAS:  utils.RoundWithTwoDecimalPlace(kpis.BlendedROAS * variation),
		})
	}

	return series
}

// placeholderSeries gera a série vazia exibida quando não há campanhas
func placeholderSeries(now time.Time) []domain.DailyStat {
	series := make([]domain.DailyStat, 0, dailySeriesDays)
	for _, date := range utils.LastNDays(dailySeriesDays, now) {
		series = append(series, domain.DailyStat{
			Date:  date.Format(time.DateOnly),
			Spend: 0,
			ROAS:  0,
		})
	}
	return series
}
