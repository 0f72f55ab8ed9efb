package domain

// ShareEntry é a participação de uma categoria no total da métrica
type ShareEntry struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// ShareReport traz a distribuição completa e o subconjunto de exibição,
// que omite as categorias abaixo do piso percentual configurado.
type ShareReport struct {
	Status          string       `json:"status"`
	Metric          Metric       `json:"metric"`
	Distribution    []ShareEntry `json:"distribution"`
	MarketShare     []ShareEntry `json:"market_share"`
	MinSharePercent float64      `json:"min_share_percent"`
}

// GrowthEntry é a taxa de crescimento de uma categoria entre dois anos de referência
type GrowthEntry struct {
	Category          string  `json:"category"`
	FirstYear         int     `json:"first_year"`
	LastYear          int     `json:"last_year"`
	FirstValue        float64 `json:"first_value"`
	LastValue         float64 `json:"last_value"`
	GrowthRatePercent float64 `json:"growth_rate_percent"`
}

type GrowthReport struct {
	Status      string        `json:"status"`
	Metric      Metric        `json:"metric"`
	FirstYear   int           `json:"first_year"`
	LastYear    int           `json:"last_year"`
	GrowthRates []GrowthEntry `json:"growth_rates"`
}

// SeasonalPoint é a média da métrica em um mês do calendário, agregando todos os anos
type SeasonalPoint struct {
	Month        int     `json:"month"`
	AverageValue float64 `json:"average_value"`
	SampleCount  int     `json:"sample_count"`
}

// PeakMonth é um mês cuja média supera a média geral pelo limiar de sazonalidade
type PeakMonth struct {
	Month      int `json:"month"`
	Percentage int `json:"percentage"`
}

type SeasonalReport struct {
	Status  string          `json:"status"`
	Metric  Metric          `json:"metric"`
	Monthly []SeasonalPoint `json:"monthly"`
	Peaks   []PeakMonth     `json:"peaks"`
}

// PerformanceEntry consolida média, crescimento, consistência e score de uma categoria
type PerformanceEntry struct {
	Category           string  `json:"category"`
	AverageValue       float64 `json:"average_value"`
	GrowthRatePercent  float64 `json:"growth_rate_percent"`
	ConsistencyPercent float64 `json:"consistency_percent"`
	CompositeScore     float64 `json:"composite_score"`
	ScorePercentage    float64 `json:"score_percentage"`
}

type PerformanceReport struct {
	Status      string             `json:"status"`
	Metric      Metric             `json:"metric"`
	Performance []PerformanceEntry `json:"performance"`
}
