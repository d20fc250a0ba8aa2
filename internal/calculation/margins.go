package calculation

import (
	"math"

	"github.com/stockdesk/invoice-calculation-service/internal/domain"
)

// Profit category labels derived from the sign of net profit.
const (
	CategoryProfit    = "Profit"
	CategoryLoss      = "Loss"
	CategoryBreakEven = "Break Even"
)

// vatFraction recovers the VAT portion of a VAT-inclusive amount at the UK
// standard rate of 20%: price/6.
func vatFraction(amount float64) float64 {
	return amount / 6
}

// CalculateMargins produces the detailed margin and VAT breakdown for a sale.
//
// Input VAT on the purchase itself is only reclaimable when the purchase was
// VAT-qualifying ("commercial"); private and margin-scheme purchases carry
// none. VAT on spend (reconditioning and similar standard-rated costs) is
// reclaimable regardless.
func CalculateMargins(in *domain.MarginInput) domain.MarginBreakdown {
	var m domain.MarginBreakdown

	m.OutlayOnVehicle = in.PurchasePrice + in.TotalSpend

	m.VatOnSpend = vatFraction(in.TotalSpend)
	if in.IsCommercialPurchase {
		m.VatOnPurchase = vatFraction(in.PurchasePrice)
	}
	m.VatOnSalePrice = vatFraction(in.SalePrice)
	m.VatToPay = m.VatOnSalePrice - m.VatOnPurchase

	m.GrossProfit = in.SalePrice - m.OutlayOnVehicle
	m.NetProfit = m.GrossProfit - m.VatToPay

	// Guard the percentages against a zero sale price: report 0, never NaN.
	if in.SalePrice != 0 {
		m.GrossMarginPercent = m.GrossProfit / in.SalePrice * 100
		m.NetMarginPercent = m.NetProfit / in.SalePrice * 100
	}

	m.DaysInStock = CalculateDaysInStock(in.DateOfSale, in.DateOfPurchase)
	m.ProfitPerDay = m.NetProfit / math.Max(float64(m.DaysInStock), 1)

	switch {
	case m.NetProfit > 0:
		m.ProfitCategory = CategoryProfit
	case m.NetProfit < 0:
		m.ProfitCategory = CategoryLoss
	default:
		m.ProfitCategory = CategoryBreakEven
	}

	return m
}
