package analyzing

import (
	"github.com/vfg2006/sales-analytics-api/internal/domain"
)

// Analyzer define a interface dos relatórios analíticos servidos aos dashboards
type Analyzer interface {
	// GetShareReport calcula a participação de cada categoria no total da métrica
	GetShareReport(filters *domain.AnalyticsFilters, minSharePercent float64) (*domain.ShareReport, error)

	// GetGrowthReport calcula as taxas de crescimento por categoria
	GetGrowthReport(filters *domain.AnalyticsFilters) (*domain.GrowthReport, error)

	// GetSeasonalReport calcula as médias mensais e os meses de pico
	GetSeasonalReport(filters *domain.AnalyticsFilters) (*domain.SeasonalReport, error)

	// GetPerformanceReport calcula o score de desempenho consolidado por categoria
	GetPerformanceReport(filters *domain.AnalyticsFilters) (*domain.PerformanceReport, error)

	// GetAvailablePeriods retorna os anos e categorias disponíveis na base
	GetAvailablePeriods() (*domain.AvailablePeriods, error)
}
