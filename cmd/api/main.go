package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsflow-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsflow-api/infrastructure/integrator/meta"
	"github.com/vfg2006/adsflow-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/adsflow-api/infrastructure/integrator/openai"
	"github.com/vfg2006/adsflow-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/adsflow-api/infrastructure/repository"
	"github.com/vfg2006/adsflow-api/internal/api"
	"github.com/vfg2006/adsflow-api/internal/appstate"
	"github.com/vfg2006/adsflow-api/internal/config"
	"github.com/vfg2006/adsflow-api/internal/scheduler"
	"github.com/vfg2006/adsflow-api/internal/usecases/agenting"
	"github.com/vfg2006/adsflow-api/internal/usecases/authenticating"
	"github.com/vfg2006/adsflow-api/internal/usecases/credentialing"
	"github.com/vfg2006/adsflow-api/internal/usecases/linking"
	"github.com/vfg2006/adsflow-api/internal/usecases/sessioning"
	"github.com/vfg2006/adsflow-api/internal/usecases/syncing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	settingsRepo := repository.NewSettingsRepository(pgConn)
	if err := settingsRepo.EnsureSchema(); err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar o armazenamento de configurações")
	}

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(cfg, metaClient)

	openaiClient := openaiclient.NewClient(cfg)
	reasoningIntegrator := openai.New(cfg, openaiClient)

	authenticator, err := authenticating.NewService(settingsRepo, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar o cadastro de clientes")
	}

	credentialService, err := credentialing.NewService(settingsRepo, metaIntegrator)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar a credencial da plataforma de anúncios")
	}

	state := appstate.New()

	sessionService := sessioning.NewService(state, authenticator)
	syncService := syncing.NewService(state, credentialService, metaIntegrator)
	linkService := linking.NewService(credentialService, metaIntegrator, authenticator, sessionService, syncService)
	agentService := agenting.NewService(state, reasoningIntegrator)

	// Inicializa o agendador de atualização periódica do dashboard
	dashboardRefreshService := scheduler.NewDashboardRefreshService(syncService, cfg)

	if err := dashboardRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do dashboard")
	} else {
		logrus.Info("Agendador de atualização do dashboard iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		state,
		authenticator,
		credentialService,
		linkService,
		sessionService,
		syncService,
		agentService,
		dashboardRefreshService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
