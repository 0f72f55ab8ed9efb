package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-analytics-api/internal/domain"
)

const (
	salesRecordsTable = "sales_records"
)

// SalesRecordRepository armazena os registros mensais de vendas sincronizados do
// provedor, para que os endpoints de análise não dependam do provedor a cada consulta.
type SalesRecordRepository interface {
	SaveOrUpdate(record *domain.SalesRecord) error
	ListRecords(filters *domain.AnalyticsFilters) ([]domain.SalesRecord, error)
	GetAvailablePeriods() (*domain.AvailablePeriods, error)
	DeleteOlderThan(years int) (int64, error)
}

type salesRecordRepository struct {
	conn *postgres.Connection
}

func NewSalesRecordRepository(conn *postgres.Connection) SalesRecordRepository {
	return &salesRecordRepository{
		conn: conn,
	}
}

// SaveOrUpdate grava o retrato mais recente do provedor para a tripla
// (categoria, ano, mês). A soma de duplicatas acontece na camada de análise;
// aqui cada sincronização substitui o valor anterior do mesmo mês.
func (r *salesRecordRepository) SaveOrUpdate(record *domain.SalesRecord) error {
	query := squirrel.StatementBuilder.
		Insert(salesRecordsTable).
		Columns("category", "year", "month", "quantity", "revenue").
		Values(
			record.Category,
			record.Year,
			record.Month,
			record.Quantity,
			record.Revenue,
		).
		Suffix(`
			ON CONFLICT (category, year, month) DO UPDATE SET
				quantity = EXCLUDED.quantity,
				revenue = EXCLUDED.revenue,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *salesRecordRepository) ListRecords(filters *domain.AnalyticsFilters) ([]domain.SalesRecord, error) {
	queryBuilder := squirrel.
		Select("category", "year", "month", "quantity", "revenue").
		From(salesRecordsTable).
		OrderBy("category ASC", "year ASC", "month ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil {
		if len(filters.Categories) > 0 && !containsAll(filters.Categories) {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"category": filters.Categories})
		}
		if filters.StartYear > 0 {
			queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"year": filters.StartYear})
		}
		if filters.EndYear > 0 {
			queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"year": filters.EndYear})
		}
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.SalesRecord, 0)
	for rows.Next() {
		var record domain.SalesRecord
		if err := rows.Scan(
			&record.Category,
			&record.Year,
			&record.Month,
			&record.Quantity,
			&record.Revenue,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de vendas: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *salesRecordRepository) GetAvailablePeriods() (*domain.AvailablePeriods, error) {
	periods := &domain.AvailablePeriods{
		Years:      make([]int, 0),
		Categories: make([]string, 0),
	}

	yearRows, err := r.conn.Query("SELECT DISTINCT year FROM sales_records ORDER BY year ASC")
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar anos disponíveis: %w", err)
	}
	defer yearRows.Close()

	for yearRows.Next() {
		var year int
		if err := yearRows.Scan(&year); err != nil {
			return nil, fmt.Errorf("erro ao escanear ano: %w", err)
		}
		periods.Years = append(periods.Years, year)
	}
	if err = yearRows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de anos: %w", err)
	}

	categoryRows, err := r.conn.Query("SELECT DISTINCT category FROM sales_records ORDER BY category ASC")
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar categorias disponíveis: %w", err)
	}
	defer categoryRows.Close()

	for categoryRows.Next() {
		var category string
		if err := categoryRows.Scan(&category); err != nil {
			return nil, fmt.Errorf("erro ao escanear categoria: %w", err)
		}
		periods.Categories = append(periods.Categories, category)
	}
	if err = categoryRows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de categorias: %w", err)
	}

	return periods, nil
}

func (r *salesRecordRepository) DeleteOlderThan(years int) (int64, error) {
	query, args, err := squirrel.
		Delete(salesRecordsTable).
		Where(squirrel.Expr("year < EXTRACT(YEAR FROM NOW())::int - ?", years)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func containsAll(categories []string) bool {
	for _, category := range categories {
		if category == domain.AllCategories {
			return true
		}
	}
	return false
}
