// Package analyzing implementa as agregações analíticas sobre registros de vendas:
// participação por categoria, taxas de crescimento, sazonalidade e score de desempenho.
// Todas as funções são puras e totais: entradas estruturalmente válidas nunca geram erro,
// casos degenerados (total zero, base vazia) resultam em 0% ou listas vazias.
package analyzing

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"github.com/vfg2006/sales-analytics-api/pkg/utils"
)

// Limiar de pico sazonal: um mês é pico quando sua média fica 20% acima da média geral
const peakThreshold = 1.2

// Pesos do score composto de desempenho
const (
	weightAverage     = 0.5
	weightGrowth      = 0.3
	weightConsistency = 0.2
)

// filterRecords restringe os registros às categorias selecionadas.
// Lista vazia ou contendo o sentinela "all" desativa o filtro.
func filterRecords(records []domain.SalesRecord, categories []string) []domain.SalesRecord {
	if len(categories) == 0 {
		return records
	}

	selected := make(map[string]bool, len(categories))
	for _, category := range categories {
		if category == domain.AllCategories {
			return records
		}
		selected[category] = true
	}

	filtered := make([]domain.SalesRecord, 0, len(records))
	for _, record := range records {
		if selected[record.Category] {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

// ComputeShares calcula a participação de cada categoria no total da métrica.
// A saída é ordenada por valor decrescente; empates preservam a ordem de chegada.
func ComputeShares(records []domain.SalesRecord, categories []string, metric domain.Metric) []domain.ShareEntry {
	filtered := filterRecords(records, categories)

	sums := make(map[string]float64)
	order := make([]string, 0)
	for _, record := range filtered {
		if _, ok := sums[record.Category]; !ok {
			order = append(order, record.Category)
		}
		sums[record.Category] += record.MetricValue(metric)
	}

	grandTotal := 0.0
	for _, sum := range sums {
		grandTotal += sum
	}

	entries := make([]domain.ShareEntry, 0, len(order))
	for _, category := range order {
		value := sums[category]

		percentage := 0.0
		if grandTotal > 0 {
			percentage = value / grandTotal * 100
		}

		entries = append(entries, domain.ShareEntry{
			Name:       category,
			Value:      value,
			Percentage: percentage,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})

	return entries
}

// ApplyShareFloor devolve o subconjunto de exibição, removendo as entradas abaixo do piso.
// O percentual de cada entrada permanece calculado sobre o total completo.
func ApplyShareFloor(entries []domain.ShareEntry, minPercent float64) []domain.ShareEntry {
	display := make([]domain.ShareEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Percentage >= minPercent {
			display = append(display, entry)
		}
	}

	return display
}

// ComputeGrowth calcula a taxa de crescimento de cada categoria entre o primeiro e o
// último ano do conjunto filtrado. Os anos de referência são compartilhados entre as
// categorias para que as comparações fiquem alinhadas. Categorias sem valor no primeiro
// ano são omitidas da saída. A saída é ordenada por categoria.
func ComputeGrowth(records []domain.SalesRecord, categories []string, metric domain.Metric) []domain.GrowthEntry {
	filtered := filterRecords(records, categories)
	if len(filtered) == 0 {
		return []domain.GrowthEntry{}
	}

	yearlyByCategory := make(map[string]map[int]float64)
	firstYear, lastYear := 0, 0
	for _, record := range filtered {
		if _, ok := yearlyByCategory[record.Category]; !ok {
			yearlyByCategory[record.Category] = make(map[int]float64)
		}
		yearlyByCategory[record.Category][record.Year] += record.MetricValue(metric)

		if firstYear == 0 || record.Year < firstYear {
			firstYear = record.Year
		}
		if record.Year > lastYear {
			lastYear = record.Year
		}
	}

	order := make([]string, 0, len(yearlyByCategory))
	for category := range yearlyByCategory {
		order = append(order, category)
	}
	sort.Strings(order)

	entries := make([]domain.GrowthEntry, 0, len(order))
	for _, category := range order {
		yearly := yearlyByCategory[category]

		firstValue := yearly[firstYear]
		if firstValue == 0 {
			// Sem valor no primeiro ano não há base de comparação
			continue
		}

		lastValue := yearly[lastYear]

		entries = append(entries, domain.GrowthEntry{
			Category:          category,
			FirstYear:         firstYear,
			LastYear:          lastYear,
			FirstValue:        firstValue,
			LastValue:         lastValue,
			GrowthRatePercent: growthRate(firstValue, lastValue, lastYear-firstYear),
		})
	}

	return entries
}

// growthRate calcula a taxa de crescimento entre dois valores, em percentual.
// Para períodos maiores que um ano aplica a taxa composta anual (CAGR); para um
// ano de diferença (ou nenhum) aplica a variação percentual simples — com anos
// iguais os valores coincidem e o resultado é 0%.
func growthRate(firstValue, lastValue float64, yearDiff int) float64 {
	var rate float64
	if yearDiff > 1 {
		rate = (math.Pow(lastValue/firstValue, 1/float64(yearDiff)) - 1) * 100
	} else {
		rate = (lastValue - firstValue) / firstValue * 100
	}

	return utils.RoundWithOneDecimalPlace(rate)
}

// ComputeSeasonalAverages calcula a média da métrica por mês do calendário,
// agregando todos os anos do conjunto filtrado. A média é por registro
// (soma / quantidade de registros), e não por ano: meses sem dados em algum
// ano não puxam a média para baixo.
func ComputeSeasonalAverages(records []domain.SalesRecord, categories []string, metric domain.Metric) []domain.SeasonalPoint {
	filtered := filterRecords(records, categories)

	var sums [13]float64
	var counts [13]int
	for _, record := range filtered {
		if record.Month < 1 || record.Month > 12 {
			continue
		}
		sums[record.Month] += record.MetricValue(metric)
		counts[record.Month]++
	}

	points := make([]domain.SeasonalPoint, 0, 12)
	for month := 1; month <= 12; month++ {
		average := 0.0
		if counts[month] > 0 {
			average = sums[month] / float64(counts[month])
		}

		points = append(points, domain.SeasonalPoint{
			Month:        month,
			AverageValue: average,
			SampleCount:  counts[month],
		})
	}

	return points
}

// FindPeakMonths identifica os meses de pico: aqueles cuja média mensal fica pelo
// menos 20% acima da média geral dos meses. A saída é ordenada da maior média para
// a menor, com o percentual acima da média geral arredondado para inteiro.
// Com menos de dois meses com dados não há sazonalidade a detectar.
func FindPeakMonths(points []domain.SeasonalPoint) []domain.PeakMonth {
	if len(points) == 0 {
		return []domain.PeakMonth{}
	}

	monthsWithData := 0
	total := 0.0
	for _, point := range points {
		if point.SampleCount > 0 {
			monthsWithData++
		}
		total += point.AverageValue
	}

	if monthsWithData < 2 {
		return []domain.PeakMonth{}
	}

	avgAll := total / float64(len(points))
	if avgAll == 0 {
		return []domain.PeakMonth{}
	}

	peaks := make([]domain.SeasonalPoint, 0)
	for _, point := range points {
		if point.AverageValue >= avgAll*peakThreshold {
			peaks = append(peaks, point)
		}
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].AverageValue > peaks[j].AverageValue
	})

	result := make([]domain.PeakMonth, 0, len(peaks))
	for _, peak := range peaks {
		result = append(result, domain.PeakMonth{
			Month:      peak.Month,
			Percentage: int(math.Round((peak.AverageValue/avgAll - 1) * 100)),
		})
	}

	return result
}

// ComputePerformance calcula o desempenho consolidado de cada categoria: média da
// métrica por registro, taxa de crescimento, consistência (inverso do coeficiente
// de variação) e um score composto normalizado pelo maior score do conjunto.
func ComputePerformance(records []domain.SalesRecord, categories []string, metric domain.Metric) []domain.PerformanceEntry {
	filtered := filterRecords(records, categories)

	valuesByCategory := make(map[string][]float64)
	yearlyByCategory := make(map[string]map[int]float64)
	for _, record := range filtered {
		if _, ok := valuesByCategory[record.Category]; !ok {
			yearlyByCategory[record.Category] = make(map[int]float64)
		}

		value := record.MetricValue(metric)
		valuesByCategory[record.Category] = append(valuesByCategory[record.Category], value)
		yearlyByCategory[record.Category][record.Year] += value
	}

	order := make([]string, 0, len(valuesByCategory))
	for category := range valuesByCategory {
		order = append(order, category)
	}
	sort.Strings(order)

	entries := make([]domain.PerformanceEntry, 0, len(order))
	rawScores := make([]float64, 0, len(order))
	maxScore := 0.0
	for _, category := range order {
		values := valuesByCategory[category]

		mean, _ := stats.Mean(values)

		// Ao contrário do relatório de crescimento, aqui o primeiro e o último ano
		// são os da própria categoria, sem alinhamento entre categorias.
		growth := categoryGrowthRate(yearlyByCategory[category])

		consistency := consistencyPercent(values, mean)

		// O score mistura a média absoluta (não normalizada) com dois fatores na
		// escala [0,1]; o fator de crescimento mapeia [-20%, +20%] em [0,1], sem
		// truncar fora dessa faixa.
		growthFactor := (growth + 20) / 40
		consistencyFactor := consistency / 100
		score := mean*weightAverage + growthFactor*weightGrowth + consistencyFactor*weightConsistency

		if score > maxScore {
			maxScore = score
		}

		rawScores = append(rawScores, score)
		entries = append(entries, domain.PerformanceEntry{
			Category:           category,
			AverageValue:       utils.RoundWithTwoDecimalPlace(mean),
			GrowthRatePercent:  growth,
			ConsistencyPercent: utils.RoundWithTwoDecimalPlace(consistency),
			CompositeScore:     utils.RoundWithTwoDecimalPlace(score),
		})
	}

	for i := range entries {
		scorePercentage := 0.0
		if maxScore > 0 {
			scorePercentage = rawScores[i] / maxScore * 100
		}
		entries[i].ScorePercentage = utils.RoundWithTwoDecimalPlace(scorePercentage)
	}

	return entries
}

// categoryGrowthRate calcula a taxa de crescimento usando o primeiro e o último
// ano presentes na própria categoria. Sem valor no primeiro ano o resultado é 0.
func categoryGrowthRate(yearly map[int]float64) float64 {
	if len(yearly) == 0 {
		return 0
	}

	firstYear, lastYear := 0, 0
	for year := range yearly {
		if firstYear == 0 || year < firstYear {
			firstYear = year
		}
		if year > lastYear {
			lastYear = year
		}
	}

	firstValue := yearly[firstYear]
	if firstValue == 0 {
		return 0
	}

	return growthRate(firstValue, yearly[lastYear], lastYear-firstYear)
}

// consistencyPercent mede a regularidade das vendas como o inverso do coeficiente
// de variação, limitado ao intervalo [0, 100]. Média zero define consistência zero.
func consistencyPercent(values []float64, mean float64) float64 {
	if mean == 0 {
		return 0
	}

	stdDev, err := stats.StandardDeviation(values)
	if err != nil {
		return 0
	}

	return utils.Clamp((1-stdDev/mean)*100, 0, 100)
}
