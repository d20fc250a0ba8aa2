package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdesk/invoice-calculation-service/internal/cache"
	"github.com/stockdesk/invoice-calculation-service/internal/domain"
	"github.com/stockdesk/invoice-calculation-service/internal/repository"
)

// mockSaleRepository is an in-memory SaleRepository for service tests.
type mockSaleRepository struct {
	sales   map[string]*domain.Sale
	nextID  int
	getHits int
}

func newMockSaleRepository() *mockSaleRepository {
	return &mockSaleRepository{sales: map[string]*domain.Sale{}}
}

func (m *mockSaleRepository) CreateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	m.nextID++
	sale.ID = string(rune('a' + m.nextID - 1))
	sale.CreatedAt = time.Now()
	sale.UpdatedAt = sale.CreatedAt
	stored := *sale
	m.sales[sale.ID] = &stored
	return sale, nil
}

func (m *mockSaleRepository) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	m.getHits++
	sale, ok := m.sales[saleID]
	if !ok {
		return nil, repository.ErrSaleNotFound
	}
	copied := *sale
	return &copied, nil
}

func (m *mockSaleRepository) UpdateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	if _, ok := m.sales[sale.ID]; !ok {
		return nil, repository.ErrSaleNotFound
	}
	sale.UpdatedAt = time.Now()
	stored := *sale
	m.sales[sale.ID] = &stored
	return sale, nil
}

func (m *mockSaleRepository) DeleteSale(ctx context.Context, saleID string) error {
	if _, ok := m.sales[saleID]; !ok {
		return repository.ErrSaleNotFound
	}
	delete(m.sales, saleID)
	return nil
}

func (m *mockSaleRepository) ListSales(ctx context.Context, filter domain.SaleFilter) (*domain.PaginatedSales, error) {
	out := &domain.PaginatedSales{}
	for _, sale := range m.sales {
		out.Data = append(out.Data, *sale)
	}
	out.Pagination = domain.Pagination{
		TotalItems:  len(out.Data),
		TotalPages:  1,
		CurrentPage: 1,
		Limit:       10,
	}
	return out, nil
}

func TestSaleServiceCreateComputesResult(t *testing.T) {
	svc := NewSaleService(newMockSaleRepository(), nil)

	sale, err := svc.CreateSale(context.Background(), domain.SaleRecord{
		SalePrice:           10000,
		DiscountOnSalePrice: 500,
		InvoiceTo:           "Customer",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, sale.ID)
	assert.Equal(t, 9500.0, sale.Result.SalePricePostDiscount)
	assert.Equal(t, 9500.0, sale.Result.SubtotalCustomer)
}

func TestSaleServiceGetNotFound(t *testing.T) {
	svc := NewSaleService(newMockSaleRepository(), nil)

	_, err := svc.GetSaleByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrSaleNotFound)
}

func TestSaleServiceUpdateRecomputes(t *testing.T) {
	repo := newMockSaleRepository()
	svc := NewSaleService(repo, nil)
	ctx := context.Background()

	sale, err := svc.CreateSale(ctx, domain.SaleRecord{SalePrice: 10000})
	require.NoError(t, err)

	updated, err := svc.UpdateSale(ctx, sale.ID, domain.SaleRecord{SalePrice: 10000, DiscountOnSalePrice: 1000})
	require.NoError(t, err)
	assert.Equal(t, 9000.0, updated.Result.SalePricePostDiscount)
}

func TestSaleServiceMargins(t *testing.T) {
	repo := newMockSaleRepository()
	svc := NewSaleService(repo, cache.NewStore(time.Minute))
	ctx := context.Background()

	sale, err := svc.CreateSale(ctx, domain.SaleRecord{
		SalePrice:            10000,
		PurchasePrice:        8000,
		IsCommercialPurchase: true,
		DateOfSale:           "2024-03-15",
		DateOfPurchase:       "2024-01-01",
	})
	require.NoError(t, err)

	margins, err := svc.GetSaleMargins(ctx, sale.ID)
	require.NoError(t, err)
	assert.InDelta(t, 8000.0/6, margins.VatOnPurchase, 1e-9)
	assert.Equal(t, 74, margins.DaysInStock)

	// Second read should come from the cache, not the repository.
	hitsBefore := repo.getHits
	_, err = svc.GetSaleMargins(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, hitsBefore, repo.getHits)
}

func TestSaleServiceMarginsIncompleteData(t *testing.T) {
	svc := NewSaleService(newMockSaleRepository(), nil)
	ctx := context.Background()

	sale, err := svc.CreateSale(ctx, domain.SaleRecord{SalePrice: 10000})
	require.NoError(t, err)

	_, err = svc.GetSaleMargins(ctx, sale.ID)
	assert.ErrorIs(t, err, ErrIncompleteVehicleData)
}

// Mutating a returned breakdown must not leak into the cached copy.
func TestSaleServiceMarginsCachedCopyNotShared(t *testing.T) {
	svc := NewSaleService(newMockSaleRepository(), cache.NewStore(time.Minute))
	ctx := context.Background()

	sale, err := svc.CreateSale(ctx, domain.SaleRecord{SalePrice: 10000, PurchasePrice: 8000})
	require.NoError(t, err)

	first, err := svc.GetSaleMargins(ctx, sale.ID)
	require.NoError(t, err)
	require.Equal(t, 2000.0, first.GrossProfit)
	first.GrossProfit = -1

	second, err := svc.GetSaleMargins(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, second.GrossProfit)
}

func TestSaleServiceMarginsCacheInvalidatedOnUpdate(t *testing.T) {
	repo := newMockSaleRepository()
	svc := NewSaleService(repo, cache.NewStore(time.Minute))
	ctx := context.Background()

	sale, err := svc.CreateSale(ctx, domain.SaleRecord{SalePrice: 10000, PurchasePrice: 8000})
	require.NoError(t, err)

	first, err := svc.GetSaleMargins(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, first.GrossProfit)

	record := sale.Record
	record.PurchasePrice = 9000
	_, err = svc.UpdateSale(ctx, sale.ID, record)
	require.NoError(t, err)

	second, err := svc.GetSaleMargins(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, second.GrossProfit, "stale cached margins after update")
}
