package domain

import "fmt"

// Metric identifica a medida usada nas agregações analíticas
type Metric string

const (
	MetricQuantity Metric = "quantity"
	MetricRevenue  Metric = "revenue"
)

// AllCategories é o sentinela de filtro que desativa a seleção por categoria
const AllCategories = "all"

// SalesRecord é o agregado mensal de vendas de uma categoria
type SalesRecord struct {
	Category string  `json:"category"`
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// MetricValue devolve o valor do registro para a métrica pedida
func (r SalesRecord) MetricValue(metric Metric) float64 {
	if metric == MetricRevenue {
		return r.Revenue
	}
	return r.Quantity
}

// ParseMetric valida e converte o nome de uma métrica; vazio assume quantidade
func ParseMetric(value string) (Metric, error) {
	switch value {
	case "", string(MetricQuantity):
		return MetricQuantity, nil
	case string(MetricRevenue):
		return MetricRevenue, nil
	default:
		return "", fmt.Errorf("métrica inválida: %q", value)
	}
}

// AnalyticsFilters delimita os registros considerados pelos relatórios analíticos
type AnalyticsFilters struct {
	Categories []string
	StartYear  int
	EndYear    int
	Metric     Metric
}
