package calculation

import (
	"math"
	"testing"

	"github.com/stockdesk/invoice-calculation-service/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateMarginsVatOnPurchase(t *testing.T) {
	private := CalculateMargins(&domain.MarginInput{PurchasePrice: 8000, SalePrice: 10000})
	if private.VatOnPurchase != 0 {
		t.Errorf("expected no reclaimable VAT on a private purchase, got %v", private.VatOnPurchase)
	}

	commercial := CalculateMargins(&domain.MarginInput{PurchasePrice: 8000, SalePrice: 10000, IsCommercialPurchase: true})
	if !almostEqual(commercial.VatOnPurchase, 8000.0/6) {
		t.Errorf("expected VAT on purchase 8000/6, got %v", commercial.VatOnPurchase)
	}
}

func TestCalculateMarginsProfit(t *testing.T) {
	m := CalculateMargins(&domain.MarginInput{
		PurchasePrice: 8000,
		SalePrice:     10000,
		TotalSpend:    600,
	})

	if m.OutlayOnVehicle != 8600 {
		t.Errorf("expected outlay 8600, got %v", m.OutlayOnVehicle)
	}
	if m.GrossProfit != 1400 {
		t.Errorf("expected gross profit 1400, got %v", m.GrossProfit)
	}
	if !almostEqual(m.VatOnSalePrice, 10000.0/6) {
		t.Errorf("expected VAT on sale price 10000/6, got %v", m.VatOnSalePrice)
	}
	if !almostEqual(m.VatToPay, 10000.0/6) {
		t.Errorf("expected VAT to pay equal to output VAT on a private purchase, got %v", m.VatToPay)
	}
	if !almostEqual(m.NetProfit, 1400-10000.0/6) {
		t.Errorf("expected net profit 1400-10000/6, got %v", m.NetProfit)
	}
	if !almostEqual(m.GrossMarginPercent, 14) {
		t.Errorf("expected gross margin 14%%, got %v", m.GrossMarginPercent)
	}
}

func TestCalculateMarginsZeroSalePrice(t *testing.T) {
	m := CalculateMargins(&domain.MarginInput{PurchasePrice: 8000})

	if math.IsNaN(m.GrossMarginPercent) || math.IsInf(m.GrossMarginPercent, 0) {
		t.Fatalf("gross margin must be finite, got %v", m.GrossMarginPercent)
	}
	if m.GrossMarginPercent != 0 || m.NetMarginPercent != 0 {
		t.Errorf("expected zero margins with zero sale price, got %v and %v",
			m.GrossMarginPercent, m.NetMarginPercent)
	}
}

func TestCalculateMarginsProfitPerDay(t *testing.T) {
	// No dates: daysInStock is 0 but the divisor is floored at 1.
	m := CalculateMargins(&domain.MarginInput{PurchasePrice: 8000, SalePrice: 9000})
	if m.DaysInStock != 0 {
		t.Errorf("expected 0 days in stock, got %d", m.DaysInStock)
	}
	if math.IsNaN(m.ProfitPerDay) || math.IsInf(m.ProfitPerDay, 0) {
		t.Fatalf("profit per day must be finite, got %v", m.ProfitPerDay)
	}
	if !almostEqual(m.ProfitPerDay, m.NetProfit) {
		t.Errorf("expected profit per day to equal net profit over one day, got %v", m.ProfitPerDay)
	}

	m = CalculateMargins(&domain.MarginInput{
		PurchasePrice:  8000,
		SalePrice:      9000,
		DateOfSale:     "2024-03-15",
		DateOfPurchase: "2024-01-01",
	})
	if m.DaysInStock != 74 {
		t.Errorf("expected 74 days in stock, got %d", m.DaysInStock)
	}
	if !almostEqual(m.ProfitPerDay, m.NetProfit/74) {
		t.Errorf("expected profit per day netProfit/74, got %v", m.ProfitPerDay)
	}
}

func TestCalculateMarginsProfitCategory(t *testing.T) {
	tests := []struct {
		name     string
		in       domain.MarginInput
		category string
	}{
		{"clear loss", domain.MarginInput{PurchasePrice: 10000, SalePrice: 9000}, CategoryLoss},
		{"commercial profit", domain.MarginInput{PurchasePrice: 6000, SalePrice: 12000, IsCommercialPurchase: true}, CategoryProfit},
		{"empty input breaks even", domain.MarginInput{}, CategoryBreakEven},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m := CalculateMargins(&tt.in); m.ProfitCategory != tt.category {
				t.Errorf("expected category %q, got %q (net profit %v)", tt.category, m.ProfitCategory, m.NetProfit)
			}
		})
	}
}
