package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stockdesk/invoice-calculation-service/internal/cache"
	"github.com/stockdesk/invoice-calculation-service/internal/calculation"
	"github.com/stockdesk/invoice-calculation-service/internal/domain"
	"github.com/stockdesk/invoice-calculation-service/internal/repository"
)

// ErrIncompleteVehicleData is returned when a margin calculation is requested
// for a sale whose purchase cost or sale price was never recorded.
var ErrIncompleteVehicleData = errors.New("vehicle data incomplete")

// SaleServiceError represents an error in the sale service
type SaleServiceError struct {
	Op  string
	Err error
}

func (e *SaleServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *SaleServiceError) Unwrap() error {
	return e.Err
}

// SaleService defines the interface for sale-related business logic
type SaleService interface {
	// Stateless calculations
	Calculate(record *domain.SaleRecord) domain.CalculationResult
	CalculateMargins(input *domain.MarginInput) domain.MarginBreakdown

	// CRUD over stored sales; results are recomputed on every write
	CreateSale(ctx context.Context, record domain.SaleRecord) (*domain.Sale, error)
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	UpdateSale(ctx context.Context, saleID string, record domain.SaleRecord) (*domain.Sale, error)
	DeleteSale(ctx context.Context, saleID string) error
	ListSales(ctx context.Context, filter domain.SaleFilter) (*domain.PaginatedSales, error)

	// Margin view of a stored sale
	GetSaleMargins(ctx context.Context, saleID string) (*domain.MarginBreakdown, error)
}

// SaleServiceImpl implements the SaleService interface
type SaleServiceImpl struct {
	repository repository.SaleRepository
	margins    *cache.Store
}

// NewSaleService creates a new SaleService. The cache holds margin views of
// stored sales; pass nil to disable caching.
func NewSaleService(repo repository.SaleRepository, margins *cache.Store) SaleService {
	return &SaleServiceImpl{
		repository: repo,
		margins:    margins,
	}
}

// Calculate derives every invoice field from a sale snapshot. Pure
// passthrough to the calculation engine; no persistence.
func (s *SaleServiceImpl) Calculate(record *domain.SaleRecord) domain.CalculationResult {
	return calculation.CalculateAll(record)
}

// CalculateMargins derives the margin breakdown from explicit inputs.
func (s *SaleServiceImpl) CalculateMargins(input *domain.MarginInput) domain.MarginBreakdown {
	return calculation.CalculateMargins(input)
}

// CreateSale computes and persists a sale snapshot with its result.
func (s *SaleServiceImpl) CreateSale(ctx context.Context, record domain.SaleRecord) (*domain.Sale, error) {
	sale := &domain.Sale{
		Record: record,
		Result: calculation.CalculateAll(&record),
	}

	created, err := s.repository.CreateSale(ctx, sale)
	if err != nil {
		return nil, &SaleServiceError{Op: "create_sale", Err: err}
	}

	return created, nil
}

// GetSaleByID retrieves a stored sale.
func (s *SaleServiceImpl) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.repository.GetSaleByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return nil, err
		}
		return nil, &SaleServiceError{Op: "get_sale", Err: err}
	}
	return sale, nil
}

// UpdateSale replaces the snapshot of a stored sale and recomputes its result.
func (s *SaleServiceImpl) UpdateSale(ctx context.Context, saleID string, record domain.SaleRecord) (*domain.Sale, error) {
	sale := &domain.Sale{
		ID:     saleID,
		Record: record,
		Result: calculation.CalculateAll(&record),
	}

	updated, err := s.repository.UpdateSale(ctx, sale)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return nil, err
		}
		return nil, &SaleServiceError{Op: "update_sale", Err: err}
	}

	s.invalidateMargins(saleID)
	return updated, nil
}

// DeleteSale removes a stored sale.
func (s *SaleServiceImpl) DeleteSale(ctx context.Context, saleID string) error {
	if err := s.repository.DeleteSale(ctx, saleID); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return err
		}
		return &SaleServiceError{Op: "delete_sale", Err: err}
	}

	s.invalidateMargins(saleID)
	return nil
}

// ListSales retrieves stored sales with filters and pagination.
func (s *SaleServiceImpl) ListSales(ctx context.Context, filter domain.SaleFilter) (*domain.PaginatedSales, error) {
	sales, err := s.repository.ListSales(ctx, filter)
	if err != nil {
		return nil, &SaleServiceError{Op: "list_sales", Err: err}
	}
	return sales, nil
}

// GetSaleMargins returns the margin breakdown for a stored sale. The view is
// cached until the sale is next written.
func (s *SaleServiceImpl) GetSaleMargins(ctx context.Context, saleID string) (*domain.MarginBreakdown, error) {
	cacheKey := marginsCacheKey(saleID)
	if s.margins != nil {
		// Cached as a value; each hit gets its own copy.
		if cached, ok := s.margins.Get(cacheKey); ok {
			breakdown := cached.(domain.MarginBreakdown)
			return &breakdown, nil
		}
	}

	sale, err := s.GetSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	// The calculator degrades missing inputs to zeros; the completeness check
	// is the caller's job, and for stored sales that caller is here.
	if sale.Record.PurchasePrice == 0 || sale.Record.SalePrice == 0 {
		return nil, ErrIncompleteVehicleData
	}

	input := sale.Record.MarginInput()
	breakdown := calculation.CalculateMargins(&input)

	if s.margins != nil {
		s.margins.Set(cacheKey, breakdown)
	}

	return &breakdown, nil
}

func (s *SaleServiceImpl) invalidateMargins(saleID string) {
	if s.margins != nil {
		s.margins.Delete(marginsCacheKey(saleID))
	}
}

func marginsCacheKey(saleID string) string {
	return "margins:" + saleID
}
