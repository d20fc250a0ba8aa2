// Package calculation derives every financial field of a vehicle-sale invoice
// from a SaleRecord snapshot: post-discount prices, part-exchange equity,
// deposits, balances and VAT.
//
// Everything here is pure arithmetic. There is no I/O, no state and no error
// path: a missing input is treated as its zero value and the formulas run
// anyway, so identical input always yields identical output.
package calculation

import (
	"math"

	"github.com/stockdesk/invoice-calculation-service/internal/domain"
)

// DepositBlock is the compulsory/outstanding/overpayment triple produced for
// each invoice recipient. Outstanding and overpayment are mutually exclusive:
// at most one of them is non-zero.
type DepositBlock struct {
	Compulsory  float64
	Outstanding float64
	Overpayment float64
}

// PostDiscount applies a discount to a pre-discount amount, clamped at 0 so a
// discount larger than the price never produces a negative figure. Negative
// discounts are not rejected here; callers guard against them at the boundary.
func PostDiscount(pre, discount float64) float64 {
	return math.Max(0, pre-discount)
}

// CalculatePartExchange returns the net equity released by a trade-in: its
// value minus whatever is still owed on it, clamped at 0. Zero unless
// part-exchange is switched on for the sale.
func CalculatePartExchange(rec *domain.SaleRecord) float64 {
	if rec.PartExIncluded != domain.PartExIncludedYes {
		return 0
	}
	return math.Max(0, rec.ValueOfPxVehicle-rec.SettlementAmount)
}

// CalculateFinanceDeposits computes the deposit triple for sales invoiced to a
// finance company. The compulsory deposit recovers everything the finance
// company will not fund: warranty, delivery and the customer-paid add-ons, net
// of the warranty discount. The delivery discount is deliberately not
// subtracted; the asymmetry is long-standing behavior that downstream
// reporting depends on.
func CalculateFinanceDeposits(rec *domain.SaleRecord, warrantyPost, deliveryPost float64) DepositBlock {
	if rec.InvoiceTo != domain.InvoiceToFinanceCompany {
		return DepositBlock{}
	}

	compulsory := warrantyPost + deliveryPost + rec.CustomerAddon1Cost + rec.CustomerAddon2Cost - rec.DiscountOnWarrantyPrice
	totalPaid := rec.DealerDepositPaidCustomer + rec.AmountPaidDepositFinance

	return DepositBlock{
		Compulsory:  compulsory,
		Outstanding: math.Max(0, compulsory-totalPaid),
		Overpayment: math.Max(0, totalPaid-compulsory),
	}
}

// CalculateCustomerDeposits computes the deposit triple for sales invoiced
// directly to the customer. No add-on bundling applies: the compulsory figure
// is simply the dealer-imposed deposit.
func CalculateCustomerDeposits(rec *domain.SaleRecord) DepositBlock {
	if rec.InvoiceTo != domain.InvoiceToCustomer {
		return DepositBlock{}
	}

	compulsory := rec.DealerDeposit
	totalPaid := rec.AmountPaidDepositCustomer

	return DepositBlock{
		Compulsory:  compulsory,
		Outstanding: math.Max(0, compulsory-totalPaid),
		Overpayment: math.Max(0, totalPaid-compulsory),
	}
}

// CalculateAll runs the full derivation for one sale record and returns the
// merged result. It never fails: every sub-calculation degrades to zero/empty
// on missing input.
func CalculateAll(rec *domain.SaleRecord) domain.CalculationResult {
	var res domain.CalculationResult

	res.MonthOfSale, res.QuarterOfSale = CalculateDateFields(rec.DateOfSale)
	res.DaysInStock = CalculateDaysInStock(rec.DateOfSale, rec.DateOfPurchase)

	res.SalePricePostDiscount = PostDiscount(rec.SalePrice, rec.DiscountOnSalePrice)
	res.WarrantyPricePostDiscount = PostDiscount(rec.WarrantyPrice, rec.DiscountOnWarrantyPrice)
	res.DeliveryPricePostDiscount = PostDiscount(rec.DeliveryCost, rec.DiscountOnDeliveryCost)

	res.AmountPaidPartExchange = CalculatePartExchange(rec)

	finance := CalculateFinanceDeposits(rec, res.WarrantyPricePostDiscount, res.DeliveryPricePostDiscount)
	res.CompulsorySaleDepositFinance = finance.Compulsory
	res.OutstandingDepositFinance = finance.Outstanding
	res.OverpaymentsFinance = finance.Overpayment

	customer := CalculateCustomerDeposits(rec)
	res.CompulsorySaleDepositCustomer = customer.Compulsory
	res.OutstandingDepositCustomer = customer.Outstanding
	res.OverpaymentsCustomer = customer.Overpayment

	calculateBalances(rec, &res)

	return res
}

// calculateBalances fills in the balance and totals fields. It depends on the
// post-discount prices, the part-exchange figure and the finance overpayment,
// so it runs last.
func calculateBalances(rec *domain.SaleRecord, res *domain.CalculationResult) {
	totalSaleAmount := res.SalePricePostDiscount +
		res.WarrantyPricePostDiscount +
		res.DeliveryPricePostDiscount +
		rec.FinanceAddonsTotal() +
		rec.CustomerAddonsTotal()

	totalDirectPayments := rec.AmountPaidCard + rec.AmountPaidBacs + rec.AmountPaidCash + res.AmountPaidPartExchange
	totalDepositPayments := rec.AmountPaidDepositFinance + rec.AmountPaidDepositCustomer

	// The amount the finance company must still fund once every direct and
	// deposit payment, and any deposit overpayment, is netted off.
	res.BalanceToFinance = math.Max(0, res.SalePricePostDiscount+
		rec.SettlementAmount+
		rec.FinanceAddonsTotal()-
		res.OverpaymentsFinance-
		totalDirectPayments-
		totalDepositPayments)

	res.PaidFromBalance = totalDirectPayments

	// Finance-side reporting.
	res.SubtotalFinance = totalSaleAmount
	res.BalanceToCustomer = math.Max(0, totalSaleAmount-res.BalanceToFinance)
	res.CustomerBalanceDue = math.Max(0, res.BalanceToCustomer-(totalDirectPayments+totalDepositPayments))
	res.BalanceToFinanceCompany = res.BalanceToFinance

	// Customer-side reporting.
	res.SubtotalCustomer = totalSaleAmount
	res.AmountPaid = totalDirectPayments + totalDepositPayments
	res.RemainingBalance = math.Max(0, res.SubtotalCustomer-res.AmountPaid)

	// Used-vehicle sales are VAT-exempt, so this is a constant no-op today.
	// The field is kept for VAT-qualifying invoice types.
	res.VatCommercial = 0
	res.RemainingBalanceIncVat = res.RemainingBalance + res.VatCommercial
}
