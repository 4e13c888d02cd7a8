// Package appstate mantém o estado vivo da aplicação: identidade ativa,
// view corrente, campanhas visíveis e métricas derivadas.
package appstate

import (
	"sync"

	"github.com/vfg2006/adsflow-api/internal/domain"
)

type State struct {
	mu sync.RWMutex

	activeClient     *domain.Client
	originalOperator *domain.Client

	currentView string
	locale      string

	campaigns   []*domain.Campaign
	dailySeries []domain.DailyStat
	kpis        *domain.DashboardKPIs

	// generation identifica a sincronização mais recente; conclusões de
	// sincronizações antigas são descartadas
	generation uint64
}

func New() *State {
	return &State{
		currentView: domain.ViewDashboard,
		locale:      domain.LocaleFR,
	}
}

func (s *State) ActiveClient() *domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeClient
}

func (s *State) SetActiveClient(client *domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeClient = client
}

func (s *State) OriginalOperator() *domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.originalOperator
}

func (s *State) SetOriginalOperator(operator *domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.originalOperator = operator
}

func (s *State) CurrentView() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentView
}

func (s *State) SetCurrentView(view string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentView = view
}

func (s *State) Locale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

func (s *State) SetLocale(locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = locale
}

// Dashboard retorna as campanhas visíveis, a série diária e os KPIs atuais
func (s *State) Dashboard() ([]*domain.Campaign, []domain.DailyStat, *domain.DashboardKPIs) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	campaigns := make([]*domain.Campaign, len(s.campaigns))
	copy(campaigns, s.campaigns)

	series := make([]domain.DailyStat, len(s.dailySeries))
	copy(series, s.dailySeries)

	return campaigns, series, s.kpis
}

// NextGeneration registra o início de uma nova sincronização e retorna o
// token que identifica essa geração
func (s *State) NextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// CommitDashboard aplica o resultado de uma sincronização. Retorna falso
// quando uma sincronização mais recente já foi iniciada e o resultado deve
// ser descartado.
func (s *State) CommitDashboard(
	generation uint64,
	campaigns []*domain.Campaign,
	series []domain.DailyStat,
	kpis *domain.DashboardKPIs,
) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}

	s.campaigns = campaigns
	s.dailySeries = series
	s.kpis = kpis
	return true
}
