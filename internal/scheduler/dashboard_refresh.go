// Package scheduler contém os serviços de agendamento para sincronização de dados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/internal/config"
	"github.com/vfg2006/adsflow-api/internal/usecases/syncing"
)

type DashboardRefreshConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DashboardRefreshService ressincroniza periodicamente o dashboard da sessão
// ativa
type DashboardRefreshService struct {
	scheduler           *gocron.Scheduler
	syncer              syncing.DashboardSyncer
	config              DashboardRefreshConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewDashboardRefreshService(syncer syncing.DashboardSyncer, cfg *config.Config) *DashboardRefreshService {
	refreshConfig := DashboardRefreshConfig{
		CronSchedule: cfg.DashboardRefresh.CronSchedule, // Default: a cada 30 minutos
		SyncEnabled:  cfg.DashboardRefresh.SyncEnabled,  // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
	}).Info("Configuração do agendador de atualização do dashboard carregada")

	return &DashboardRefreshService{
		scheduler: scheduler,
		syncer:    syncer,
		config:    refreshConfig,
	}
}

func (s *DashboardRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de atualização do dashboard desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de atualização do dashboard")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RefreshDashboard(); err != nil {
			logrus.WithError(err).Error("Erro na atualização periódica do dashboard")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do dashboard: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de atualização do dashboard")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshDashboard executa uma rodada de sincronização, evitando rodadas
// concorrentes
func (s *DashboardRefreshService) RefreshDashboard() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Atualização do dashboard já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.Info("Iniciando atualização periódica do dashboard")

	if err := s.syncer.SyncActive(); err != nil {
		logrus.WithError(err).Error("Erro ao ressincronizar dashboard da sessão ativa")
		return err
	}

	logrus.Info("Atualização periódica do dashboard concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma rodada de atualização do dashboard
func (s *DashboardRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do dashboard já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do dashboard")
	go s.RefreshDashboard()
}

// GetStatus retorna o status atual do agendador
func (s *DashboardRefreshService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
