// Package scheduler contém os serviços de agendamento para sincronização de dados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-analytics-api/infrastructure/integrator/provider"
	"github.com/vfg2006/sales-analytics-api/infrastructure/repository"
	"github.com/vfg2006/sales-analytics-api/internal/config"
	"github.com/vfg2006/sales-analytics-api/pkg/utils"
)

// SalesSyncConfig representa a configuração do agendador de registros de vendas
type SalesSyncConfig struct {
	CronSchedule        string
	LookbackYears       int
	RequestDelaySeconds int
	SyncEnabled         bool
}

// SalesSyncService gerencia o agendamento e execução da sincronização de
// registros de vendas do provedor para a base local
type SalesSyncService struct {
	scheduler           *gocron.Scheduler
	config              SalesSyncConfig
	recordRepo          repository.SalesRecordRepository
	salesProvider       provider.SalesProvider
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncID          string
}

// NewSalesSyncService cria uma nova instância do serviço de sincronização de vendas
func NewSalesSyncService(
	recordRepo repository.SalesRecordRepository,
	salesProvider provider.SalesProvider,
	appConfig *config.Config,
) *SalesSyncService {
	syncConfig := SalesSyncConfig{
		CronSchedule:        appConfig.SalesSync.CronSchedule,
		LookbackYears:       appConfig.SalesSync.LookbackYears,
		RequestDelaySeconds: appConfig.SalesSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.SalesSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_years":        syncConfig.LookbackYears,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de registros de vendas carregada")

	return &SalesSyncService{
		scheduler:     scheduler,
		config:        syncConfig,
		recordRepo:    recordRepo,
		salesProvider: salesProvider,
		syncRunning:   false,
	}
}

// Start inicia o agendador
func (s *SalesSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de registros de vendas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de registros de vendas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllSalesRecords()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de registros de vendas: %w", err)
	}

	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de registros de vendas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllSalesRecords sincroniza os registros de vendas do período de lookback
func (s *SalesSyncService) syncAllSalesRecords() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de registros de vendas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	syncID, err := utils.GenerateID()
	if err != nil {
		syncID = "unknown"
	}
	s.lastSyncID = syncID

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	endYear := time.Now().Year()
	startYear := endYear - s.config.LookbackYears + 1

	logrus.WithFields(logrus.Fields{
		"sync_id":    syncID,
		"start_year": startYear,
		"end_year":   endYear,
	}).Info("Iniciando sincronização de registros de vendas")

	saved, err := s.processSalesSync(startYear, endYear)
	if err != nil {
		logrus.WithError(err).WithField("sync_id", syncID).Error("Erro ao sincronizar registros de vendas")
		return
	}

	// Remove registros fora da janela de lookback para a base não crescer sem limite
	deleted, err := s.recordRepo.DeleteOlderThan(s.config.LookbackYears)
	if err != nil {
		logrus.WithError(err).WithField("sync_id", syncID).Warn("Erro ao remover registros de vendas antigos")
	} else if deleted > 0 {
		logrus.WithFields(logrus.Fields{
			"sync_id": syncID,
			"deleted": deleted,
		}).Info("Registros de vendas fora da janela de lookback removidos")
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"sync_id":  syncID,
		"duration": duration.String(),
		"records":  saved,
	}).Info("Sincronização de registros de vendas concluída")

	s.lastSyncCompletedAt = time.Now()
}

// processSalesSync busca os registros do provedor ano a ano e grava na base local.
// Retorna a quantidade de registros gravados.
func (s *SalesSyncService) processSalesSync(startYear, endYear int) (int, error) {
	saved := 0

	for year := startYear; year <= endYear; year++ {
		records, err := s.salesProvider.FetchSalesRecords(provider.FetchParams{
			StartYear: year,
			EndYear:   year,
			GroupBy:   "month",
		})
		if err != nil {
			return saved, fmt.Errorf("erro ao buscar registros do ano %d: %w", year, err)
		}

		for i := range records {
			if err := s.recordRepo.SaveOrUpdate(&records[i]); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"category": records[i].Category,
					"year":     records[i].Year,
					"month":    records[i].Month,
				}).Error("Erro ao salvar registro de vendas")
				continue
			}
			saved++
		}

		logrus.WithFields(logrus.Fields{
			"year":    year,
			"records": len(records),
		}).Info("Registros de vendas do ano processados")

		// Aguardar antes da próxima requisição para evitar sobrecarga na API
		if year < endYear && s.config.RequestDelaySeconds > 0 {
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}
	}

	return saved, nil
}

// TriggerManualSync inicia manualmente uma sincronização de registros de vendas
func (s *SalesSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de registros de vendas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de registros de vendas")
	go s.syncAllSalesRecords()
}

// GetStatus retorna o status atual do agendador
func (s *SalesSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_years":    s.config.LookbackYears,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_id":           s.lastSyncID,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
