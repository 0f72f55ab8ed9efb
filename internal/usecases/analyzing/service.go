package analyzing

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-analytics-api/infrastructure/integrator/provider"
	"github.com/vfg2006/sales-analytics-api/infrastructure/repository"
	"github.com/vfg2006/sales-analytics-api/internal/config"
	"github.com/vfg2006/sales-analytics-api/internal/domain"
)

const statusSuccess = "success"

// Quantos anos de histórico entram por padrão quando o filtro não define o intervalo
const defaultYearSpan = 3

// Service implementa a interface Analyzer sobre a base local de registros,
// com o provedor externo e o gerador sintético como origens de contingência.
type Service struct {
	cfg        *config.Config
	recordRepo repository.SalesRecordRepository
	provider   provider.SalesProvider
	fallback   *provider.SyntheticGenerator
}

// NewService cria uma nova instância do serviço de análise
func NewService(
	cfg *config.Config,
	recordRepo repository.SalesRecordRepository,
	salesProvider provider.SalesProvider,
) Analyzer {
	s := &Service{
		cfg:        cfg,
		recordRepo: recordRepo,
		provider:   salesProvider,
	}

	if cfg.Provider.SyntheticFallback {
		s.fallback = provider.NewSyntheticGenerator(cfg.Provider.SyntheticCategories)
	}

	return s
}

// GetShareReport calcula a participação de cada categoria no total da métrica.
// minSharePercent negativo usa o piso de exibição configurado.
func (s *Service) GetShareReport(filters *domain.AnalyticsFilters, minSharePercent float64) (*domain.ShareReport, error) {
	filters = s.normalizeFilters(filters)

	records, err := s.loadRecords(filters)
	if err != nil {
		return nil, err
	}

	if minSharePercent < 0 {
		minSharePercent = s.cfg.Analytics.MinSharePercent
	}

	distribution := ComputeShares(records, filters.Categories, filters.Metric)

	return &domain.ShareReport{
		Status:          statusSuccess,
		Metric:          filters.Metric,
		Distribution:    distribution,
		MarketShare:     ApplyShareFloor(distribution, minSharePercent),
		MinSharePercent: minSharePercent,
	}, nil
}

func (s *Service) GetGrowthReport(filters *domain.AnalyticsFilters) (*domain.GrowthReport, error) {
	filters = s.normalizeFilters(filters)

	records, err := s.loadRecords(filters)
	if err != nil {
		return nil, err
	}

	report := &domain.GrowthReport{
		Status:      statusSuccess,
		Metric:      filters.Metric,
		GrowthRates: ComputeGrowth(records, filters.Categories, filters.Metric),
	}

	if len(report.GrowthRates) > 0 {
		report.FirstYear = report.GrowthRates[0].FirstYear
		report.LastYear = report.GrowthRates[0].LastYear
	}

	return report, nil
}

func (s *Service) GetSeasonalReport(filters *domain.AnalyticsFilters) (*domain.SeasonalReport, error) {
	filters = s.normalizeFilters(filters)

	records, err := s.loadRecords(filters)
	if err != nil {
		return nil, err
	}

	monthly := ComputeSeasonalAverages(records, filters.Categories, filters.Metric)

	return &domain.SeasonalReport{
		Status:  statusSuccess,
		Metric:  filters.Metric,
		Monthly: monthly,
		Peaks:   FindPeakMonths(monthly),
	}, nil
}

func (s *Service) GetPerformanceReport(filters *domain.AnalyticsFilters) (*domain.PerformanceReport, error) {
	filters = s.normalizeFilters(filters)

	records, err := s.loadRecords(filters)
	if err != nil {
		return nil, err
	}

	return &domain.PerformanceReport{
		Status:      statusSuccess,
		Metric:      filters.Metric,
		Performance: ComputePerformance(records, filters.Categories, filters.Metric),
	}, nil
}

func (s *Service) GetAvailablePeriods() (*domain.AvailablePeriods, error) {
	periods, err := s.recordRepo.GetAvailablePeriods()
	if err != nil {
		return nil, err
	}

	// Base vazia com fallback sintético habilitado: reporta o intervalo padrão
	if len(periods.Years) == 0 && s.fallback != nil {
		startYear, endYear := defaultYearRange()
		for year := startYear; year <= endYear; year++ {
			periods.Years = append(periods.Years, year)
		}
		periods.Categories = s.syntheticCategories()
	}

	return periods, nil
}

// loadRecords busca os registros na base local; com a base vazia consulta o
// provedor diretamente e, se ele estiver indisponível, cai para o gerador sintético.
func (s *Service) loadRecords(filters *domain.AnalyticsFilters) ([]domain.SalesRecord, error) {
	records, err := s.recordRepo.ListRecords(filters)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao consultar registros de vendas na base local")
	}

	if len(records) > 0 {
		return records, nil
	}

	records, err = s.provider.FetchSalesRecords(provider.FetchParams{
		Categories: filters.Categories,
		StartYear:  filters.StartYear,
		EndYear:    filters.EndYear,
		GroupBy:    "month",
	})
	if err != nil {
		if s.fallback == nil {
			return nil, err
		}

		logrus.WithError(err).Warn("Provedor de vendas indisponível, usando dados sintéticos")
		return s.fallback.Generate(filters.StartYear, filters.EndYear), nil
	}

	return records, nil
}

// normalizeFilters preenche métrica e intervalo de anos quando ausentes
func (s *Service) normalizeFilters(filters *domain.AnalyticsFilters) *domain.AnalyticsFilters {
	if filters == nil {
		filters = &domain.AnalyticsFilters{}
	}

	if filters.Metric == "" {
		filters.Metric = domain.MetricQuantity
	}

	if filters.StartYear <= 0 || filters.EndYear <= 0 {
		startYear, endYear := defaultYearRange()
		if filters.StartYear <= 0 {
			filters.StartYear = startYear
		}
		if filters.EndYear <= 0 {
			filters.EndYear = endYear
		}
	}

	if filters.EndYear < filters.StartYear {
		filters.StartYear, filters.EndYear = filters.EndYear, filters.StartYear
	}

	return filters
}

func (s *Service) syntheticCategories() []string {
	if s.fallback != nil {
		return s.fallback.Categories()
	}
	return s.cfg.Provider.SyntheticCategories
}

func defaultYearRange() (int, int) {
	endYear := time.Now().Year()
	return endYear - defaultYearSpan + 1, endYear
}
