package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockdesk/invoice-calculation-service/internal/domain"
)

// PostgresSaleRepository implements SaleRepository using PostgreSQL
type PostgresSaleRepository struct {
	db *pgxpool.Pool
}

// NewPostgresSaleRepository creates a new PostgreSQL sale repository
func NewPostgresSaleRepository(db *pgxpool.Pool) *PostgresSaleRepository {
	return &PostgresSaleRepository{
		db: db,
	}
}

// CreateSale saves a new sale snapshot and its computed result
func (r *PostgresSaleRepository) CreateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	record, result, err := marshalSale(sale)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback if not committed

	err = tx.QueryRow(ctx, `
		INSERT INTO sales (date_of_sale, invoice_to, sale_price, record, result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, sale.Record.DateOfSale, sale.Record.InvoiceTo, sale.Record.SalePrice, record, result).Scan(
		&sale.ID, &sale.CreatedAt, &sale.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sale: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return sale, nil
}

// GetSaleByID retrieves a sale by its ID
func (r *PostgresSaleRepository) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	var sale domain.Sale
	var record, result []byte

	err := r.db.QueryRow(ctx, `
		SELECT id, record, result, created_at, updated_at
		FROM sales
		WHERE id = $1
	`, saleID).Scan(&sale.ID, &record, &result, &sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	if err := unmarshalSale(&sale, record, result); err != nil {
		return nil, err
	}

	return &sale, nil
}

// UpdateSale replaces the snapshot and result of an existing sale
func (r *PostgresSaleRepository) UpdateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	record, result, err := marshalSale(sale)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback if not committed

	err = tx.QueryRow(ctx, `
		UPDATE sales
		SET date_of_sale = $1, invoice_to = $2, sale_price = $3, record = $4, result = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING created_at, updated_at
	`, sale.Record.DateOfSale, sale.Record.InvoiceTo, sale.Record.SalePrice, record, result, sale.ID).Scan(
		&sale.CreatedAt, &sale.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return sale, nil
}

// DeleteSale deletes a sale by its ID
func (r *PostgresSaleRepository) DeleteSale(ctx context.Context, saleID string) error {
	commandTag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrSaleNotFound
	}

	return nil
}

// ListSales retrieves sales with optional filters and pagination
func (r *PostgresSaleRepository) ListSales(ctx context.Context, filter domain.SaleFilter) (*domain.PaginatedSales, error) {
	result := &domain.PaginatedSales{
		Data:       []domain.Sale{},
		Pagination: domain.Pagination{},
	}

	// Set default pagination values if not provided
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	// Build query conditions
	conditions := []string{}
	args := []interface{}{}
	argCount := 1

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("date_of_sale <> '' AND date_of_sale >= $%d", argCount))
		args = append(args, filter.StartDate.Format("2006-01-02"))
		argCount++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("date_of_sale <> '' AND date_of_sale <= $%d", argCount))
		args = append(args, filter.EndDate.Format("2006-01-02"))
		argCount++
	}
	if filter.InvoiceTo != "" {
		conditions = append(conditions, fmt.Sprintf("invoice_to = $%d", argCount))
		args = append(args, filter.InvoiceTo)
		argCount++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total items
	var totalItems int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM sales %s`, whereClause)
	err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalItems)
	if err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}

	result.Pagination.TotalItems = totalItems
	result.Pagination.Limit = filter.Limit
	result.Pagination.CurrentPage = filter.Page
	result.Pagination.TotalPages = int(math.Ceil(float64(totalItems) / float64(filter.Limit)))

	if totalItems == 0 {
		return result, nil
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	query := fmt.Sprintf(`
		SELECT id, record, result, created_at, updated_at
		FROM sales
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argCount, argCount+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sale domain.Sale
		var record, calcResult []byte
		if err := rows.Scan(&sale.ID, &record, &calcResult, &sale.CreatedAt, &sale.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		if err := unmarshalSale(&sale, record, calcResult); err != nil {
			return nil, err
		}
		result.Data = append(result.Data, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	return result, nil
}

func marshalSale(sale *domain.Sale) (record, result []byte, err error) {
	record, err = json.Marshal(sale.Record)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal sale record: %w", err)
	}
	result, err = json.Marshal(sale.Result)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal calculation result: %w", err)
	}
	return record, result, nil
}

func unmarshalSale(sale *domain.Sale, record, result []byte) error {
	if err := json.Unmarshal(record, &sale.Record); err != nil {
		return fmt.Errorf("failed to unmarshal sale record: %w", err)
	}
	if err := json.Unmarshal(result, &sale.Result); err != nil {
		return fmt.Errorf("failed to unmarshal calculation result: %w", err)
	}
	return nil
}
