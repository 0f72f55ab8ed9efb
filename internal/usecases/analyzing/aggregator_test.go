package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-analytics-api/internal/domain"
)

func record(category string, year, month int, quantity, revenue float64) domain.SalesRecord {
	return domain.SalesRecord{
		Category: category,
		Year:     year,
		Month:    month,
		Quantity: quantity,
		Revenue:  revenue,
	}
}

func TestComputeShares(t *testing.T) {
	tests := []struct {
		name       string
		records    []domain.SalesRecord
		categories []string
		metric     domain.Metric
		validate   func(t *testing.T, entries []domain.ShareEntry)
	}{
		{
			name: "Deve calcular percentuais sobre o total e ordenar por valor decrescente",
			records: []domain.SalesRecord{
				record("Vestuário", 2023, 1, 30, 300),
				record("Eletrônicos", 2023, 1, 60, 600),
				record("Alimentos", 2023, 1, 10, 100),
			},
			metric: domain.MetricQuantity,
			validate: func(t *testing.T, entries []domain.ShareEntry) {
				assert.Len(t, entries, 3)

				assert.Equal(t, "Eletrônicos", entries[0].Name)
				assert.InDelta(t, 60.0, entries[0].Percentage, 1e-6)

				assert.Equal(t, "Vestuário", entries[1].Name)
				assert.InDelta(t, 30.0, entries[1].Percentage, 1e-6)

				assert.Equal(t, "Alimentos", entries[2].Name)
				assert.InDelta(t, 10.0, entries[2].Percentage, 1e-6)

				total := 0.0
				for _, entry := range entries {
					total += entry.Percentage
				}
				assert.InDelta(t, 100.0, total, 1e-6)
			},
		},
		{
			name: "Total zero deve resultar em percentuais zerados, sem divisão por zero",
			records: []domain.SalesRecord{
				record("Eletrônicos", 2023, 1, 0, 0),
				record("Vestuário", 2023, 2, 0, 0),
			},
			metric: domain.MetricQuantity,
			validate: func(t *testing.T, entries []domain.ShareEntry) {
				assert.Len(t, entries, 2)
				for _, entry := range entries {
					assert.Equal(t, 0.0, entry.Percentage)
				}
			},
		},
		{
			name: "Empate de valores deve preservar a ordem de chegada",
			records: []domain.SalesRecord{
				record("Vestuário", 2023, 1, 50, 500),
				record("Eletrônicos", 2023, 1, 50, 500),
			},
			metric: domain.MetricQuantity,
			validate: func(t *testing.T, entries []domain.ShareEntry) {
				assert.Len(t, entries, 2)
				assert.Equal(t, "Vestuário", entries[0].Name)
				assert.Equal(t, "Eletrônicos", entries[1].Name)
			},
		},
		{
			name: "Sentinela all deve desativar o filtro de categorias",
			records: []domain.SalesRecord{
				record("Eletrônicos", 2023, 1, 60, 600),
				record("Vestuário", 2023, 1, 40, 400),
			},
			categories: []string{domain.AllCategories},
			metric:     domain.MetricQuantity,
			validate: func(t *testing.T, entries []domain.ShareEntry) {
				assert.Len(t, entries, 2)
			},
		},
		{
			name: "Filtro de categorias deve restringir a base e recalcular o total",
			records: []domain.SalesRecord{
				record("Eletrônicos", 2023, 1, 60, 600),
				record("Vestuário", 2023, 1, 30, 300),
				record("Alimentos", 2023, 1, 10, 100),
			},
			categories: []string{"Eletrônicos", "Vestuário"},
			metric:     domain.MetricQuantity,
			validate: func(t *testing.T, entries []domain.ShareEntry) {
				assert.Len(t, entries, 2)
				assert.InDelta(t, 60.0/90.0*100, entries[0].Percentage, 1e-6)
				assert.InDelta(t, 30.0/90.0*100, entries[1].Percentage, 1e-6)
			},
		},
		{
			name: "Métrica de receita deve usar o valor monetário dos registros",
			records: []domain.SalesRecord{
				record("Eletrônicos", 2023, 1, 1, 750),
				record("Vestuário", 2023, 1, 99, 250),
			},
			metric: domain.MetricRevenue,
			validate: func(t *testing.T, entries []domain.ShareEntry) {
				assert.Equal(t, "Eletrônicos", entries[0].Name)
				assert.InDelta(t, 75.0, entries[0].Percentage, 1e-6)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := ComputeShares(tt.records, tt.categories, tt.metric)
			tt.validate(t, entries)
		})
	}
}

func TestApplyShareFloor(t *testing.T) {
	entries := []domain.ShareEntry{
		{Name: "Eletrônicos", Value: 60, Percentage: 60},
		{Name: "Vestuário", Value: 37, Percentage: 37},
		{Name: "Alimentos", Value: 3, Percentage: 3},
	}

	display := ApplyShareFloor(entries, 4.0)

	// O piso remove a entrada, mas não redistribui os percentuais restantes
	assert.Len(t, display, 2)
	assert.Equal(t, "Eletrônicos", display[0].Name)
	assert.Equal(t, "Vestuário", display[1].Name)
	assert.InDelta(t, 37.0, display[1].Percentage, 1e-6)
}

func TestComputeGrowth(t *testing.T) {
	tests := []struct {
		name     string
		records  []domain.SalesRecord
		validate func(t *testing.T, entries []domain.GrowthEntry)
	}{
		{
			name: "Um ano de diferença deve usar variação percentual simples",
			records: []domain.SalesRecord{
				record("Eletrônicos", 2022, 1, 100, 1000),
				record("Eletrônicos", 2023, 1, 150, 1500),
			},
			validate: func(t *testing.T, entries []domain.GrowthEntry) {
				assert.Len(t, entries, 1)
				assert.Equal(t, 2022, entries[0].FirstYear)
				assert.Equal(t, 2023, entries[0].LastYear)
				assert.Equal(t, 50.0, entries[0].GrowthRatePercent)
			},
		},
		{
			name: "Mais de um ano de diferença deve usar a taxa composta anual",
			records: []domain.SalesRecord{
				record("Eletrônicos", 2021, 1, 100, 1000),
				record("Eletrônicos", 2023, 1, 144, 1440),
			},
			validate: func(t *testing.T, entries []domain.GrowthEntry) {
				assert.Len(t, entries, 1)
				// (144/100)^(1/2) - 1 = 20% ao ano
				assert.Equal(t, 20.0, entries[0].GrowthRatePercent)
			},
		},
		{
			name: "Um único ano de dados deve resultar em crescimento zero",
			records: []domain.SalesRecord{
				record("Eletrônicos", 2023, 1, 100, 1000),
				record("Eletrônicos", 2023, 6, 120, 1200),
			},
			validate: func(t *testing.T, entries []domain.GrowthEntry) {
				assert.Len(t, entries, 1)
				assert.Equal(t, 2023, entries[0].FirstYear)
				assert.Equal(t, 2023, entries[0].LastYear)
				assert.Equal(t, 0.0, entries[0].GrowthRatePercent)
			},
		},
		{
			name: "Categoria sem valor no primeiro ano compartilhado deve ser omitida",
			records: []domain.SalesRecord{
				record("Eletrônicos", 2022, 1, 100, 1000),
				record("Eletrônicos", 2023, 1, 150, 1500),
				record("Vestuário", 2023, 1, 80, 800),
			},
			validate: func(t *testing.T, entries []domain.GrowthEntry) {
				assert.Len(t, entries, 1)
				assert.Equal(t, "Eletrônicos", entries[0].Category)
			},
		},
		{
			name: "Anos de referência devem ser compartilhados entre as categorias",
			records: []domain.SalesRecord{
				record("Eletrônicos", 2021, 1, 100, 1000),
				record("Eletrônicos", 2023, 1, 144, 1440),
				record("Vestuário", 2021, 1, 50, 500),
				record("Vestuário", 2022, 1, 60, 600),
				record("Vestuário", 2023, 1, 72, 720),
			},
			validate: func(t *testing.T, entries []domain.GrowthEntry) {
				assert.Len(t, entries, 2)
				for _, entry := range entries {
					assert.Equal(t, 2021, entry.FirstYear)
					assert.Equal(t, 2023, entry.LastYear)
					assert.Equal(t, 20.0, entry.GrowthRatePercent)
				}
			},
		},
		{
			name:    "Base vazia deve resultar em lista vazia",
			records: []domain.SalesRecord{},
			validate: func(t *testing.T, entries []domain.GrowthEntry) {
				assert.Empty(t, entries)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := ComputeGrowth(tt.records, nil, domain.MetricQuantity)
			tt.validate(t, entries)
		})
	}
}

func TestComputeGrowth_OrdemDosRegistrosNaoAlteraResultado(t *testing.T) {
	records := []domain.SalesRecord{
		record("Eletrônicos", 2022, 1, 100, 1000),
		record("Vestuário", 2022, 3, 50, 500),
		record("Eletrônicos", 2023, 5, 130, 1300),
		record("Vestuário", 2023, 7, 65, 650),
	}

	reversed := make([]domain.SalesRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		reversed = append(reversed, records[i])
	}

	assert.Equal(t,
		ComputeGrowth(records, nil, domain.MetricQuantity),
		ComputeGrowth(reversed, nil, domain.MetricQuantity),
	)
}

func TestComputeSeasonalAverages(t *testing.T) {
	records := []domain.SalesRecord{
		record("Eletrônicos", 2022, 1, 10, 100),
		record("Eletrônicos", 2023, 1, 20, 200),
		record("Eletrônicos", 2023, 2, 30, 300),
	}

	points := ComputeSeasonalAverages(records, nil, domain.MetricQuantity)

	// Sempre os 12 meses na saída, com média zero para meses sem dados
	assert.Len(t, points, 12)

	assert.Equal(t, 1, points[0].Month)
	assert.InDelta(t, 15.0, points[0].AverageValue, 1e-6)
	assert.Equal(t, 2, points[0].SampleCount)

	assert.Equal(t, 2, points[1].Month)
	assert.InDelta(t, 30.0, points[1].AverageValue, 1e-6)
	assert.Equal(t, 1, points[1].SampleCount)

	for _, point := range points[2:] {
		assert.Equal(t, 0.0, point.AverageValue)
		assert.Equal(t, 0, point.SampleCount)
	}
}

func TestFindPeakMonths(t *testing.T) {
	tests := []struct {
		name     string
		records  []domain.SalesRecord
		validate func(t *testing.T, peaks []domain.PeakMonth)
	}{
		{
			name: "Mês muito acima da média geral deve ser identificado como pico",
			records: func() []domain.SalesRecord {
				records := make([]domain.SalesRecord, 0, 12)
				for month := 1; month <= 11; month++ {
					records = append(records, record("Eletrônicos", 2023, month, 10, 100))
				}
				records = append(records, record("Eletrônicos", 2023, 12, 100, 1000))
				return records
			}(),
			validate: func(t *testing.T, peaks []domain.PeakMonth) {
				// Média geral: (11*10 + 100) / 12 = 17.5; dezembro fica 471% acima
				assert.Len(t, peaks, 1)
				assert.Equal(t, 12, peaks[0].Month)
				assert.Equal(t, 471, peaks[0].Percentage)
			},
		},
		{
			name: "Meses uniformes não devem gerar picos",
			records: func() []domain.SalesRecord {
				records := make([]domain.SalesRecord, 0, 12)
				for month := 1; month <= 12; month++ {
					records = append(records, record("Eletrônicos", 2023, month, 10, 100))
				}
				return records
			}(),
			validate: func(t *testing.T, peaks []domain.PeakMonth) {
				assert.Empty(t, peaks)
			},
		},
		{
			name: "Menos de dois meses com dados não caracteriza sazonalidade",
			records: []domain.SalesRecord{
				record("Eletrônicos", 2023, 12, 100, 1000),
			},
			validate: func(t *testing.T, peaks []domain.PeakMonth) {
				assert.Empty(t, peaks)
			},
		},
		{
			name:    "Base vazia não deve gerar picos",
			records: []domain.SalesRecord{},
			validate: func(t *testing.T, peaks []domain.PeakMonth) {
				assert.Empty(t, peaks)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := ComputeSeasonalAverages(tt.records, nil, domain.MetricQuantity)
			tt.validate(t, FindPeakMonths(points))
		})
	}
}

func TestComputePerformance(t *testing.T) {
	records := []domain.SalesRecord{
		record("Eletrônicos", 2022, 1, 10, 100),
		record("Eletrônicos", 2022, 2, 10, 100),
		record("Eletrônicos", 2022, 3, 10, 100),
		record("Eletrônicos", 2022, 4, 10, 100),
		record("Vestuário", 2022, 1, 20, 200),
		record("Vestuário", 2022, 2, 20, 200),
	}

	entries := ComputePerformance(records, nil, domain.MetricQuantity)

	assert.Len(t, entries, 2)

	// Saída ordenada por categoria
	eletronicos := entries[0]
	vestuario := entries[1]
	assert.Equal(t, "Eletrônicos", eletronicos.Category)
	assert.Equal(t, "Vestuário", vestuario.Category)

	// Vendas constantes: consistência máxima e crescimento zero
	assert.Equal(t, 10.0, eletronicos.AverageValue)
	assert.Equal(t, 0.0, eletronicos.GrowthRatePercent)
	assert.Equal(t, 100.0, eletronicos.ConsistencyPercent)

	// Score composto: média*0.5 + fator de crescimento*0.3 + fator de consistência*0.2
	assert.InDelta(t, 10*0.5+0.5*0.3+1.0*0.2, eletronicos.CompositeScore, 1e-6)
	assert.InDelta(t, 20*0.5+0.5*0.3+1.0*0.2, vestuario.CompositeScore, 1e-6)

	// A melhor categoria define 100% e as demais são proporcionais ao seu score
	assert.Equal(t, 100.0, vestuario.ScorePercentage)
	assert.InDelta(t, 5.35/10.35*100, eletronicos.ScorePercentage, 0.01)
}

func TestComputePerformance_ConsistenciaLimitadaEntreZeroECem(t *testing.T) {
	// Valores muito dispersos: o coeficiente de variação passa de 1 e o
	// resultado bruto seria negativo
	records := []domain.SalesRecord{
		record("Eletrônicos", 2022, 1, 1, 10),
		record("Eletrônicos", 2022, 2, 1, 10),
		record("Eletrônicos", 2022, 3, 1000, 10000),
	}

	entries := ComputePerformance(records, nil, domain.MetricQuantity)

	assert.Len(t, entries, 1)
	assert.GreaterOrEqual(t, entries[0].ConsistencyPercent, 0.0)
	assert.LessOrEqual(t, entries[0].ConsistencyPercent, 100.0)
}

func TestComputePerformance_BaseVazia(t *testing.T) {
	entries := ComputePerformance(nil, nil, domain.MetricQuantity)
	assert.Empty(t, entries)
}
