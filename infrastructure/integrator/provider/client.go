// Package provider integra a API com o provedor externo de dados de vendas.
package provider

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-analytics-api/internal/config"
	"github.com/vfg2006/sales-analytics-api/internal/domain"
)

// FetchParams são os parâmetros de consulta aceitos pelo endpoint de vendas do provedor
type FetchParams struct {
	Categories []string
	StartYear  int
	EndYear    int
	GroupBy    string
}

// SalesProvider define a interface de obtenção de registros de vendas
type SalesProvider interface {
	FetchSalesRecords(params FetchParams) ([]domain.SalesRecord, error)
}

type Client struct {
	httpClient *http.Client
	cfg        *config.Config
}

func NewClient(cfg *config.Config) SalesProvider {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		},
		cfg: cfg,
	}
}

// salesDataResponse é o envelope retornado pelo provedor. Apenas performance_data
// é consumido; os agregados prontos (market_share, growth_rates) são recalculados
// localmente e por isso ignorados.
type salesDataResponse struct {
	Status          string           `json:"status"`
	PerformanceData []salesRecordRow `json:"performance_data"`
	MarketShare     json.RawMessage  `json:"market_share,omitempty"`
	GrowthRates     json.RawMessage  `json:"growth_rates,omitempty"`
}

type salesRecordRow struct {
	Category string   `json:"category"`
	Year     int      `json:"year"`
	Month    int      `json:"month"`
	Quantity *float64 `json:"quantity"`
	Revenue  *float64 `json:"revenue"`
}

func (c *Client) FetchSalesRecords(params FetchParams) ([]domain.SalesRecord, error) {
	endpoint, err := url.Parse(fmt.Sprintf("%s/sales", strings.TrimSuffix(c.cfg.Provider.URL, "/")))
	if err != nil {
		return nil, fmt.Errorf("URL do provedor inválida: %w", err)
	}

	query := endpoint.Query()
	if params.GroupBy != "" {
		query.Set("group_by", params.GroupBy)
	}
	if len(params.Categories) > 0 {
		query.Set("categories", strings.Join(params.Categories, ","))
	}
	if params.StartYear > 0 {
		query.Set("start_year", strconv.Itoa(params.StartYear))
	}
	if params.EndYear > 0 {
		query.Set("end_year", strconv.Itoa(params.EndYear))
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequest(http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if c.cfg.Provider.AccessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.cfg.Provider.AccessToken))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar o provedor de vendas: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provedor de vendas retornou status %d", resp.StatusCode)
	}

	var response salesDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do provedor: %w", err)
	}

	records := make([]domain.SalesRecord, 0, len(response.PerformanceData))
	discarded := 0
	for _, row := range response.PerformanceData {
		record, ok := row.toSalesRecord()
		if !ok {
			discarded++
			continue
		}
		records = append(records, record)
	}

	if discarded > 0 {
		logrus.WithFields(logrus.Fields{
			"discarded": discarded,
			"total":     len(response.PerformanceData),
		}).Warn("Registros malformados descartados na resposta do provedor")
	}

	return records, nil
}

// toSalesRecord valida e converte uma linha do provedor. Linhas sem categoria,
// fora do calendário ou com métricas negativas/não numéricas são descartadas
// antes de chegar à camada de análise.
func (row salesRecordRow) toSalesRecord() (domain.SalesRecord, bool) {
	if row.Category == "" || row.Year <= 0 || row.Month < 1 || row.Month > 12 {
		return domain.SalesRecord{}, false
	}

	quantity := 0.0
	if row.Quantity != nil {
		quantity = *row.Quantity
	}

	revenue := 0.0
	if row.Revenue != nil {
		revenue = *row.Revenue
	}

	if quantity < 0 || revenue < 0 || math.IsNaN(quantity) || math.IsNaN(revenue) {
		return domain.SalesRecord{}, false
	}

	return domain.SalesRecord{
		Category: row.Category,
		Year:     row.Year,
		Month:    row.Month,
		Quantity: quantity,
		Revenue:  revenue,
	}, true
}
