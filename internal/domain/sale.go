package domain

import (
	"encoding/json"
	"time"
)

// Invoice recipient values accepted on a sale record.
const (
	InvoiceToCustomer       = "Customer"
	InvoiceToFinanceCompany = "FinanceCompany"
)

// PartExIncludedYes is the flag value that switches part-exchange handling on.
// The source system stores this as a "Yes"/"No" string rather than a boolean.
const PartExIncludedYes = "Yes"

// DateOnly is a custom type for handling date-only strings from JSON
type DateOnly struct {
	time.Time
}

// UnmarshalJSON implements custom unmarshaling for date-only strings
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	// Handle null/empty dates
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	// Parse date-only format
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON implements custom marshaling for date-only strings
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}

// SaleRecord is a snapshot of every field relevant to one vehicle sale's
// invoice. It is assembled fresh for each calculation; every field is valid at
// its zero value, so an absent input simply contributes nothing to the result.
type SaleRecord struct {
	// Dates, in YYYY-MM-DD form. Empty means "not recorded yet".
	DateOfSale     string `json:"date_of_sale"`
	DateOfPurchase string `json:"date_of_purchase"`

	// Pricing, each with its own discount.
	SalePrice               float64 `json:"sale_price"`
	DiscountOnSalePrice     float64 `json:"discount_on_sale_price"`
	WarrantyPrice           float64 `json:"warranty_price"`
	DiscountOnWarrantyPrice float64 `json:"discount_on_warranty_price"`
	DeliveryCost            float64 `json:"delivery_cost"`
	DiscountOnDeliveryCost  float64 `json:"discount_on_delivery_cost"`

	// Add-ons funded by the finance company and add-ons paid by the customer.
	FinanceAddon1Cost  float64 `json:"finance_addon_1_cost"`
	FinanceAddon2Cost  float64 `json:"finance_addon_2_cost"`
	CustomerAddon1Cost float64 `json:"customer_addon_1_cost"`
	CustomerAddon2Cost float64 `json:"customer_addon_2_cost"`

	// InvoiceTo selects which deposit/balance formulas apply.
	InvoiceTo string `json:"invoice_to"`

	// Part-exchange.
	PartExIncluded   string  `json:"part_ex_included"`
	ValueOfPxVehicle float64 `json:"value_of_px_vehicle"`
	SettlementAmount float64 `json:"settlement_amount"`

	// Deposits.
	DealerDeposit             float64 `json:"dealer_deposit"`
	DealerDepositPaidCustomer float64 `json:"dealer_deposit_paid_customer"`
	AmountPaidDepositFinance  float64 `json:"amount_paid_deposit_finance"`
	AmountPaidDepositCustomer float64 `json:"amount_paid_deposit_customer"`
	DepositDateOfPayment      string  `json:"deposit_date_of_payment"`

	// Direct payments taken against the balance.
	AmountPaidCard float64 `json:"amount_paid_card"`
	AmountPaidBacs float64 `json:"amount_paid_bacs"`
	AmountPaidCash float64 `json:"amount_paid_cash"`

	// Purchase side, used only by the margin calculator.
	PurchasePrice        float64 `json:"purchase_price"`
	TotalSpend           float64 `json:"total_spend"`
	IsCommercialPurchase bool    `json:"is_commercial_purchase"`
}

// MarginInput lifts the margin-relevant fields out of a sale record.
func (s *SaleRecord) MarginInput() MarginInput {
	return MarginInput{
		PurchasePrice:        s.PurchasePrice,
		SalePrice:            s.SalePrice,
		TotalSpend:           s.TotalSpend,
		IsCommercialPurchase: s.IsCommercialPurchase,
		DateOfSale:           s.DateOfSale,
		DateOfPurchase:       s.DateOfPurchase,
	}
}

// FinanceAddonsTotal sums the finance-funded add-on costs.
func (s *SaleRecord) FinanceAddonsTotal() float64 {
	return s.FinanceAddon1Cost + s.FinanceAddon2Cost
}

// CustomerAddonsTotal sums the customer-paid add-on costs.
func (s *SaleRecord) CustomerAddonsTotal() float64 {
	return s.CustomerAddon1Cost + s.CustomerAddon2Cost
}

// CalculationResult holds every derived financial field for one sale. All
// fields are always populated; a calculation over an empty record yields the
// zero value of each field rather than an error.
type CalculationResult struct {
	// Date-derived fields.
	MonthOfSale   string `json:"month_of_sale"`
	QuarterOfSale int    `json:"quarter_of_sale"`
	DaysInStock   int    `json:"days_in_stock"`

	// Post-discount prices.
	SalePricePostDiscount     float64 `json:"sale_price_post_discount"`
	WarrantyPricePostDiscount float64 `json:"warranty_price_post_discount"`
	DeliveryPricePostDiscount float64 `json:"delivery_price_post_discount"`

	// Net part-exchange equity applied as a payment.
	AmountPaidPartExchange float64 `json:"amount_paid_part_exchange"`

	// Finance-company deposit block.
	CompulsorySaleDepositFinance float64 `json:"compulsory_sale_deposit_finance"`
	OutstandingDepositFinance    float64 `json:"outstanding_deposit_finance"`
	OverpaymentsFinance          float64 `json:"overpayments_finance"`

	// Customer deposit block.
	CompulsorySaleDepositCustomer float64 `json:"compulsory_sale_deposit_customer"`
	OutstandingDepositCustomer    float64 `json:"outstanding_deposit_customer"`
	OverpaymentsCustomer          float64 `json:"overpayments_customer"`

	// Balances and totals.
	BalanceToFinance        float64 `json:"balance_to_finance"`
	PaidFromBalance         float64 `json:"paid_from_balance"`
	SubtotalFinance         float64 `json:"subtotal_finance"`
	BalanceToCustomer       float64 `json:"balance_to_customer"`
	CustomerBalanceDue      float64 `json:"customer_balance_due"`
	BalanceToFinanceCompany float64 `json:"balance_to_finance_company"`
	SubtotalCustomer        float64 `json:"subtotal_customer"`
	AmountPaid              float64 `json:"amount_paid"`
	RemainingBalance        float64 `json:"remaining_balance"`
	VatCommercial           float64 `json:"vat_commercial"`
	RemainingBalanceIncVat  float64 `json:"remaining_balance_inc_vat"`
}

// MarginInput carries the fields the margin calculator works from. Purchase
// price and sale price are required by callers (the calculator itself still
// degrades to zeros); spend covers reconditioning and other costs put into the
// vehicle while in stock.
type MarginInput struct {
	PurchasePrice        float64 `json:"purchase_price"`
	SalePrice            float64 `json:"sale_price"`
	TotalSpend           float64 `json:"total_spend"`
	IsCommercialPurchase bool    `json:"is_commercial_purchase"`
	DateOfSale           string  `json:"date_of_sale"`
	DateOfPurchase       string  `json:"date_of_purchase"`
}

// MarginBreakdown is the detailed margin and VAT view of a sale.
type MarginBreakdown struct {
	OutlayOnVehicle float64 `json:"outlay_on_vehicle"`

	VatOnSpend     float64 `json:"vat_on_spend"`
	VatOnPurchase  float64 `json:"vat_on_purchase"`
	VatOnSalePrice float64 `json:"vat_on_sale_price"`
	VatToPay       float64 `json:"vat_to_pay"`

	GrossProfit        float64 `json:"gross_profit"`
	NetProfit          float64 `json:"net_profit"`
	GrossMarginPercent float64 `json:"gross_margin_percent"`
	NetMarginPercent   float64 `json:"net_margin_percent"`

	DaysInStock    int     `json:"days_in_stock"`
	ProfitPerDay   float64 `json:"profit_per_day"`
	ProfitCategory string  `json:"profit_category"`
}

// Sale is a stored sale: the input snapshot together with its computed result.
type Sale struct {
	ID        string            `json:"id"`
	Record    SaleRecord        `json:"record"`
	Result    CalculationResult `json:"result"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// SaleFilter represents filters for querying stored sales
type SaleFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	InvoiceTo string
	Page      int
	Limit     int
}

// Pagination represents pagination metadata
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// PaginatedSales represents a paginated list of stored sales
type PaginatedSales struct {
	Data       []Sale     `json:"data"`
	Pagination Pagination `json:"pagination"`
}
