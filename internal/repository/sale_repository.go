package repository

import (
	"context"
	"errors"

	"github.com/stockdesk/invoice-calculation-service/internal/domain"
)

// ErrSaleNotFound is returned when no sale exists for the requested ID.
var ErrSaleNotFound = errors.New("sale not found")

// SaleRepository defines the interface for sale data access operations
type SaleRepository interface {
	CreateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	UpdateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	DeleteSale(ctx context.Context, saleID string) error
	ListSales(ctx context.Context, filter domain.SaleFilter) (*domain.PaginatedSales, error)
}
