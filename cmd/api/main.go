package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-analytics-api/infrastructure/integrator/provider"
	"github.com/vfg2006/sales-analytics-api/infrastructure/repository"
	"github.com/vfg2006/sales-analytics-api/internal/api"
	"github.com/vfg2006/sales-analytics-api/internal/config"
	"github.com/vfg2006/sales-analytics-api/internal/scheduler"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/authenticating"
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

	userRepo := repository.NewUserRepository(pgConn)
	salesRecordRepo := repository.NewSalesRecordRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	salesProvider := provider.NewClient(cfg)

	analyticsService := analyzing.NewService(cfg, salesRecordRepo, salesProvider)

	// Inicializa o agendador de sincronização de registros de vendas
	salesSyncService := scheduler.NewSalesSyncService(
		salesRecordRepo,
		salesProvider,
		cfg,
	)

	// Inicia o agendador em background
	if err := salesSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de vendas")
	} else {
		logrus.Info("Agendador de sincronização de vendas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		analyticsService,
		authenticator,
		salesSyncService,
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
