package analyzing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-analytics-api/infrastructure/integrator/provider"
	providermocks "github.com/vfg2006/sales-analytics-api/infrastructure/integrator/provider/mocks"
	"github.com/vfg2006/sales-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-analytics-api/internal/config"
	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Analytics: config.Analytics{
			MinSharePercent: 4.0,
		},
		Provider: config.Provider{
			SyntheticFallback:   true,
			SyntheticCategories: []string{"Eletrônicos", "Vestuário"},
		},
	}
}

func testFilters() *domain.AnalyticsFilters {
	return &domain.AnalyticsFilters{
		StartYear: 2022,
		EndYear:   2023,
		Metric:    domain.MetricQuantity,
	}
}

func TestService_GetShareReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRecordRepo := mocks.NewMockSalesRecordRepository(ctrl)
	mockProvider := providermocks.NewMockSalesProvider(ctrl)

	service := &Service{
		cfg:        testConfig(),
		recordRepo: mockRecordRepo,
		provider:   mockProvider,
	}

	records := []domain.SalesRecord{
		record("Eletrônicos", 2023, 1, 60, 600),
		record("Vestuário", 2023, 1, 37, 370),
		record("Alimentos", 2023, 1, 3, 30),
	}

	mockRecordRepo.EXPECT().
		ListRecords(gomock.Any()).
		Return(records, nil)

	report, err := service.GetShareReport(testFilters(), -1)

	assert.NoError(t, err)
	assert.Equal(t, "success", report.Status)
	assert.Equal(t, domain.MetricQuantity, report.Metric)
	assert.Equal(t, 4.0, report.MinSharePercent)

	// A distribuição completa mantém todas as categorias
	assert.Len(t, report.Distribution, 3)

	// O piso de exibição remove apenas do subconjunto de market share
	assert.Len(t, report.MarketShare, 2)
	assert.Equal(t, "Eletrônicos", report.MarketShare[0].Name)
	assert.Equal(t, "Vestuário", report.MarketShare[1].Name)
}

func TestService_GetShareReport_PisoExplicitoSobrepoeConfiguracao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRecordRepo := mocks.NewMockSalesRecordRepository(ctrl)
	mockProvider := providermocks.NewMockSalesProvider(ctrl)

	service := &Service{
		cfg:        testConfig(),
		recordRepo: mockRecordRepo,
		provider:   mockProvider,
	}

	records := []domain.SalesRecord{
		record("Eletrônicos", 2023, 1, 60, 600),
		record("Vestuário", 2023, 1, 37, 370),
		record("Alimentos", 2023, 1, 3, 30),
	}

	mockRecordRepo.EXPECT().
		ListRecords(gomock.Any()).
		Return(records, nil)

	report, err := service.GetShareReport(testFilters(), 0)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, report.MinSharePercent)
	assert.Len(t, report.MarketShare, 3)
}

func TestService_LoadRecords_FallbackParaProvedor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRecordRepo := mocks.NewMockSalesRecordRepository(ctrl)
	mockProvider := providermocks.NewMockSalesProvider(ctrl)

	service := &Service{
		cfg:        testConfig(),
		recordRepo: mockRecordRepo,
		provider:   mockProvider,
	}

	// Base local vazia: o serviço consulta o provedor externo
	mockRecordRepo.EXPECT().
		ListRecords(gomock.Any()).
		Return(nil, nil)

	mockProvider.EXPECT().
		FetchSalesRecords(provider.FetchParams{
			StartYear: 2022,
			EndYear:   2023,
			GroupBy:   "month",
		}).
		Return([]domain.SalesRecord{
			record("Eletrônicos", 2022, 1, 100, 1000),
			record("Eletrônicos", 2023, 1, 150, 1500),
		}, nil)

	report, err := service.GetGrowthReport(testFilters())

	assert.NoError(t, err)
	assert.Len(t, report.GrowthRates, 1)
	assert.Equal(t, 2022, report.FirstYear)
	assert.Equal(t, 2023, report.LastYear)
	assert.Equal(t, 50.0, report.GrowthRates[0].GrowthRatePercent)
}

func TestService_LoadRecords_FallbackParaGeradorSintetico(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRecordRepo := mocks.NewMockSalesRecordRepository(ctrl)
	mockProvider := providermocks.NewMockSalesProvider(ctrl)

	cfg := testConfig()
	service := &Service{
		cfg:        cfg,
		recordRepo: mockRecordRepo,
		provider:   mockProvider,
		fallback:   provider.NewSyntheticGenerator(cfg.Provider.SyntheticCategories),
	}

	// Base local com erro e provedor indisponível: entra o gerador sintético
	mockRecordRepo.EXPECT().
		ListRecords(gomock.Any()).
		Return(nil, errors.New("connection refused"))

	mockProvider.EXPECT().
		FetchSalesRecords(gomock.Any()).
		Return(nil, errors.New("timeout"))

	report, err := service.GetSeasonalReport(testFilters())

	assert.NoError(t, err)
	assert.Len(t, report.Monthly, 12)
	for _, point := range report.Monthly {
		assert.Positive(t, point.SampleCount)
	}
}

func TestService_LoadRecords_SemFallbackPropagaErro(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRecordRepo := mocks.NewMockSalesRecordRepository(ctrl)
	mockProvider := providermocks.NewMockSalesProvider(ctrl)

	cfg := testConfig()
	cfg.Provider.SyntheticFallback = false

	service := &Service{
		cfg:        cfg,
		recordRepo: mockRecordRepo,
		provider:   mockProvider,
	}

	mockRecordRepo.EXPECT().
		ListRecords(gomock.Any()).
		Return(nil, nil)

	mockProvider.EXPECT().
		FetchSalesRecords(gomock.Any()).
		Return(nil, errors.New("timeout"))

	_, err := service.GetPerformanceReport(testFilters())

	assert.Error(t, err)
}

func TestService_NormalizeFilters(t *testing.T) {
	service := &Service{cfg: testConfig()}

	tests := []struct {
		name     string
		filters  *domain.AnalyticsFilters
		validate func(t *testing.T, filters *domain.AnalyticsFilters)
	}{
		{
			name:    "Filtros nulos devem receber métrica e intervalo padrão",
			filters: nil,
			validate: func(t *testing.T, filters *domain.AnalyticsFilters) {
				assert.Equal(t, domain.MetricQuantity, filters.Metric)
				assert.Positive(t, filters.StartYear)
				assert.Equal(t, defaultYearSpan-1, filters.EndYear-filters.StartYear)
			},
		},
		{
			name:    "Intervalo invertido deve ser corrigido",
			filters: &domain.AnalyticsFilters{StartYear: 2023, EndYear: 2021, Metric: domain.MetricRevenue},
			validate: func(t *testing.T, filters *domain.AnalyticsFilters) {
				assert.Equal(t, 2021, filters.StartYear)
				assert.Equal(t, 2023, filters.EndYear)
				assert.Equal(t, domain.MetricRevenue, filters.Metric)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, service.normalizeFilters(tt.filters))
		})
	}
}

func TestService_GetAvailablePeriods_BaseVaziaUsaFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRecordRepo := mocks.NewMockSalesRecordRepository(ctrl)

	cfg := testConfig()
	service := &Service{
		cfg:        cfg,
		recordRepo: mockRecordRepo,
		fallback:   provider.NewSyntheticGenerator(cfg.Provider.SyntheticCategories),
	}

	mockRecordRepo.EXPECT().
		GetAvailablePeriods().
		Return(&domain.AvailablePeriods{}, nil)

	periods, err := service.GetAvailablePeriods()

	assert.NoError(t, err)
	assert.Len(t, periods.Years, defaultYearSpan)
	assert.Equal(t, cfg.Provider.SyntheticCategories, periods.Categories)
}
