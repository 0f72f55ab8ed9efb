package handler

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-analytics-api/pkg/log"
	"github.com/vfg2006/sales-analytics-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// parseAnalyticsFilters monta os filtros analíticos a partir dos parâmetros de query:
// categories (lista separada por vírgula), start_year, end_year e metric.
func parseAnalyticsFilters(r *http.Request) (*domain.AnalyticsFilters, error) {
	query := r.URL.Query()

	startYear, err := utils.ParseYear(query.Get("start_year"))
	if err != nil {
		return nil, err
	}

	endYear, err := utils.ParseYear(query.Get("end_year"))
	if err != nil {
		return nil, err
	}

	metric, err := domain.ParseMetric(query.Get("metric"))
	if err != nil {
		return nil, err
	}

	return &domain.AnalyticsFilters{
		Categories: utils.SplitCSV(query.Get("categories")),
		StartYear:  startYear,
		EndYear:    endYear,
		Metric:     metric,
	}, nil
}

// GetShareReport retorna a distribuição de participação das categorias no total da métrica
func GetShareReport(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parseAnalyticsFilters(r)
		if err != nil {
			logger.WithError(err).Warn("analytics: parâmetros de filtro inválidos")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Sem o parâmetro min_share vale o piso de exibição configurado
		minShare := -1.0
		if raw := r.URL.Query().Get("min_share"); raw != "" {
			minShare, err = strconv.ParseFloat(raw, 64)
			if err != nil || minShare < 0 || minShare > 100 {
				logger.WithField("min_share", raw).Warn("analytics: parâmetro min_share inválido")
				http.Error(w, "min_share deve ser um número entre 0 e 100", http.StatusBadRequest)
				return
			}
		}

		report, err := service.GetShareReport(filters, minShare)
		if err != nil {
			logger.WithError(err).Error("analytics: falha ao calcular participação por categoria")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, report)
	})
}

// GetGrowthReport retorna as taxas de crescimento por categoria entre o primeiro e o último ano
func GetGrowthReport(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parseAnalyticsFilters(r)
		if err != nil {
			logger.WithError(err).Warn("analytics: parâmetros de filtro inválidos")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		report, err := service.GetGrowthReport(filters)
		if err != nil {
			logger.WithError(err).Error("analytics: falha ao calcular taxas de crescimento")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, report)
	})
}

// GetSeasonalReport retorna as médias mensais e os meses de pico de vendas
func GetSeasonalReport(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parseAnalyticsFilters(r)
		if err != nil {
			logger.WithError(err).Warn("analytics: parâmetros de filtro inválidos")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		report, err := service.GetSeasonalReport(filters)
		if err != nil {
			logger.WithError(err).Error("analytics: falha ao calcular sazonalidade")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, report)
	})
}

// GetPerformanceReport retorna o score consolidado de desempenho por categoria
func GetPerformanceReport(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parseAnalyticsFilters(r)
		if err != nil {
			logger.WithError(err).Warn("analytics: parâmetros de filtro inválidos")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		report, err := service.GetPerformanceReport(filters)
		if err != nil {
			logger.WithError(err).Error("analytics: falha ao calcular desempenho por categoria")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, report)
	})
}

// GetAvailablePeriods retorna os anos e categorias com dados disponíveis para filtro
func GetAvailablePeriods(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		periods, err := service.GetAvailablePeriods()
		if err != nil {
			logger.WithError(err).Error("analytics: falha ao listar períodos disponíveis")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, periods)
	})
}

func writeJSON(w http.ResponseWriter, logger log.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("analytics: falha ao codificar resposta")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
