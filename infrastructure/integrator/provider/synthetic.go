package provider

import (
	"github.com/vfg2006/sales-analytics-api/internal/domain"
)

// Categorias padrão usadas quando a configuração não define nenhuma
var defaultCategories = []string{"Eletrônicos", "Vestuário", "Alimentos", "Móveis", "Esportes"}

// Fatores sazonais por mês (índice 0 = janeiro). Novembro e dezembro concentram
// as vendas de fim de ano; janeiro e fevereiro são os meses mais fracos.
var seasonalFactors = [12]float64{0.8, 0.75, 0.9, 0.95, 1.0, 1.0, 1.05, 1.0, 0.95, 1.05, 1.3, 1.5}

// SyntheticGenerator produz registros de vendas determinísticos para uso quando o
// provedor externo está indisponível. O mesmo intervalo de anos sempre produz os
// mesmos registros, o que mantém os dashboards estáveis entre recargas.
type SyntheticGenerator struct {
	categories []string
}

func NewSyntheticGenerator(categories []string) *SyntheticGenerator {
	if len(categories) == 0 {
		categories = defaultCategories
	}

	return &SyntheticGenerator{categories: categories}
}

// Categories retorna as categorias que o gerador produz
func (g *SyntheticGenerator) Categories() []string {
	return g.categories
}

// Generate produz um registro mensal por categoria para cada mês do intervalo
// [startYear, endYear]. Cada categoria tem volume base, preço médio e taxa de
// crescimento anual próprios, com um ruído determinístico por (categoria, ano, mês).
func (g *SyntheticGenerator) Generate(startYear, endYear int) []domain.SalesRecord {
	if startYear <= 0 || endYear < startYear {
		return []domain.SalesRecord{}
	}

	records := make([]domain.SalesRecord, 0, len(g.categories)*(endYear-startYear+1)*12)
	for idx, category := range g.categories {
		baseQuantity := 400.0 + float64(idx)*150.0
		unitPrice := 50.0 + float64(idx)*35.0
		yearlyGrowth := 1.04 + float64(idx%3)*0.03

		for year := startYear; year <= endYear; year++ {
			growth := 1.0
			for y := startYear; y < year; y++ {
				growth *= yearlyGrowth
			}

			for month := 1; month <= 12; month++ {
				noise := 0.9 + float64(hash(category, year, month)%21)/100.0

				quantity := baseQuantity * seasonalFactors[month-1] * growth * noise

				records = append(records, domain.SalesRecord{
					Category: category,
					Year:     year,
					Month:    month,
					Quantity: float64(int(quantity)),
					Revenue:  float64(int(quantity)) * unitPrice,
				})
			}
		}
	}

	return records
}

// hash gera um valor determinístico por (categoria, ano, mês) para o ruído (FNV-1a)
func hash(category string, year, month int) uint32 {
	h := uint32(2166136261)
	for _, c := range []byte(category) {
		h ^= uint32(c)
		h *= 16777619
	}
	h ^= uint32(year)
	h *= 16777619
	h ^= uint32(month)
	h *= 16777619
	return h
}
