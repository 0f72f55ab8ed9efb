package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-analytics-api/infrastructure/integrator/provider"
	providermocks "github.com/vfg2006/sales-analytics-api/infrastructure/integrator/provider/mocks"
	"github.com/vfg2006/sales-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestSalesSyncService_processSalesSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRecordRepo := mocks.NewMockSalesRecordRepository(ctrl)
	mockProvider := providermocks.NewMockSalesProvider(ctrl)

	service := &SalesSyncService{
		config:        SalesSyncConfig{LookbackYears: 2},
		recordRepo:    mockRecordRepo,
		salesProvider: mockProvider,
	}

	tests := []struct {
		name     string
		setup    func()
		expected int
		hasError bool
	}{
		{
			name: "Deve buscar e gravar os registros ano a ano",
			setup: func() {
				mockProvider.EXPECT().
					FetchSalesRecords(provider.FetchParams{StartYear: 2022, EndYear: 2022, GroupBy: "month"}).
					Return([]domain.SalesRecord{
						{Category: "Eletrônicos", Year: 2022, Month: 1, Quantity: 100, Revenue: 1000},
						{Category: "Vestuário", Year: 2022, Month: 1, Quantity: 50, Revenue: 500},
					}, nil)

				mockProvider.EXPECT().
					FetchSalesRecords(provider.FetchParams{StartYear: 2023, EndYear: 2023, GroupBy: "month"}).
					Return([]domain.SalesRecord{
						{Category: "Eletrônicos", Year: 2023, Month: 1, Quantity: 120, Revenue: 1200},
					}, nil)

				mockRecordRepo.EXPECT().
					SaveOrUpdate(gomock.Any()).
					Return(nil).
					Times(3)
			},
			expected: 3,
			hasError: false,
		},
		{
			name: "Erro do provedor deve interromper a sincronização",
			setup: func() {
				mockProvider.EXPECT().
					FetchSalesRecords(gomock.Any()).
					Return(nil, errors.New("timeout"))
			},
			expected: 0,
			hasError: true,
		},
		{
			name: "Erro ao gravar um registro não deve interromper os demais",
			setup: func() {
				mockProvider.EXPECT().
					FetchSalesRecords(provider.FetchParams{StartYear: 2022, EndYear: 2022, GroupBy: "month"}).
					Return([]domain.SalesRecord{
						{Category: "Eletrônicos", Year: 2022, Month: 1, Quantity: 100, Revenue: 1000},
						{Category: "Vestuário", Year: 2022, Month: 1, Quantity: 50, Revenue: 500},
					}, nil)

				mockProvider.EXPECT().
					FetchSalesRecords(provider.FetchParams{StartYear: 2023, EndYear: 2023, GroupBy: "month"}).
					Return([]domain.SalesRecord{}, nil)

				gomock.InOrder(
					mockRecordRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(errors.New("constraint violation")),
					mockRecordRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil),
				)
			},
			expected: 1,
			hasError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			saved, err := service.processSalesSync(2022, 2023)

			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, saved)
		})
	}
}

func TestSalesSyncService_GetStatus(t *testing.T) {
	service := &SalesSyncService{
		config: SalesSyncConfig{
			CronSchedule:        "0 3 * * *",
			LookbackYears:       3,
			RequestDelaySeconds: 2,
			SyncEnabled:         true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, 3, status["sync_lookback_years"])
	assert.Equal(t, 2, status["sync_request_delay_s"])
}
