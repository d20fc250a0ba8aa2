package model

import (
	"encoding/json"

	"github.com/stockdesk/invoice-calculation-service/internal/domain"
	"github.com/stockdesk/invoice-calculation-service/internal/money"
)

// Amount is a monetary field that accepts either a JSON number or a currency
// string ("£1,234.56") on input. Forms historically submit amounts in either
// shape; the calculation engine only ever sees the parsed float64.
type Amount float64

// UnmarshalJSON implements custom unmarshaling for number-or-string amounts
func (a *Amount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		value, err := money.Parse(s)
		if err != nil {
			return err
		}
		*a = Amount(value)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// SaleRecordRequest is the wire form of a sale-record snapshot. Every field is
// optional; absent fields default to zero values per the calculation contract.
type SaleRecordRequest struct {
	DateOfSale     string `json:"date_of_sale"`
	DateOfPurchase string `json:"date_of_purchase"`

	SalePrice               Amount `json:"sale_price"`
	DiscountOnSalePrice     Amount `json:"discount_on_sale_price"`
	WarrantyPrice           Amount `json:"warranty_price"`
	DiscountOnWarrantyPrice Amount `json:"discount_on_warranty_price"`
	DeliveryCost            Amount `json:"delivery_cost"`
	DiscountOnDeliveryCost  Amount `json:"discount_on_delivery_cost"`

	FinanceAddon1Cost  Amount `json:"finance_addon_1_cost"`
	FinanceAddon2Cost  Amount `json:"finance_addon_2_cost"`
	CustomerAddon1Cost Amount `json:"customer_addon_1_cost"`
	CustomerAddon2Cost Amount `json:"customer_addon_2_cost"`

	InvoiceTo string `json:"invoice_to"`

	PartExIncluded   string `json:"part_ex_included"`
	ValueOfPxVehicle Amount `json:"value_of_px_vehicle"`
	SettlementAmount Amount `json:"settlement_amount"`

	DealerDeposit             Amount `json:"dealer_deposit"`
	DealerDepositPaidCustomer Amount `json:"dealer_deposit_paid_customer"`
	AmountPaidDepositFinance  Amount `json:"amount_paid_deposit_finance"`
	AmountPaidDepositCustomer Amount `json:"amount_paid_deposit_customer"`
	DepositDateOfPayment      string `json:"deposit_date_of_payment"`

	AmountPaidCard Amount `json:"amount_paid_card"`
	AmountPaidBacs Amount `json:"amount_paid_bacs"`
	AmountPaidCash Amount `json:"amount_paid_cash"`

	PurchasePrice        Amount `json:"purchase_price"`
	TotalSpend           Amount `json:"total_spend"`
	IsCommercialPurchase bool   `json:"is_commercial_purchase"`
}

// ToDomain converts the request to a domain sale record.
func (r *SaleRecordRequest) ToDomain() domain.SaleRecord {
	return domain.SaleRecord{
		DateOfSale:     r.DateOfSale,
		DateOfPurchase: r.DateOfPurchase,

		SalePrice:               float64(r.SalePrice),
		DiscountOnSalePrice:     float64(r.DiscountOnSalePrice),
		WarrantyPrice:           float64(r.WarrantyPrice),
		DiscountOnWarrantyPrice: float64(r.DiscountOnWarrantyPrice),
		DeliveryCost:            float64(r.DeliveryCost),
		DiscountOnDeliveryCost:  float64(r.DiscountOnDeliveryCost),

		FinanceAddon1Cost:  float64(r.FinanceAddon1Cost),
		FinanceAddon2Cost:  float64(r.FinanceAddon2Cost),
		CustomerAddon1Cost: float64(r.CustomerAddon1Cost),
		CustomerAddon2Cost: float64(r.CustomerAddon2Cost),

		InvoiceTo: r.InvoiceTo,

		PartExIncluded:   r.PartExIncluded,
		ValueOfPxVehicle: float64(r.ValueOfPxVehicle),
		SettlementAmount: float64(r.SettlementAmount),

		DealerDeposit:             float64(r.DealerDeposit),
		DealerDepositPaidCustomer: float64(r.DealerDepositPaidCustomer),
		AmountPaidDepositFinance:  float64(r.AmountPaidDepositFinance),
		AmountPaidDepositCustomer: float64(r.AmountPaidDepositCustomer),
		DepositDateOfPayment:      r.DepositDateOfPayment,

		AmountPaidCard: float64(r.AmountPaidCard),
		AmountPaidBacs: float64(r.AmountPaidBacs),
		AmountPaidCash: float64(r.AmountPaidCash),

		PurchasePrice:        float64(r.PurchasePrice),
		TotalSpend:           float64(r.TotalSpend),
		IsCommercialPurchase: r.IsCommercialPurchase,
	}
}

// Validate checks boundary constraints the calculation engine itself does not
// enforce: no negative amounts or discounts, and a recognised invoice
// recipient when one is given. Returns a field->message map, empty when valid.
func (r *SaleRecordRequest) Validate() map[string]string {
	errors := map[string]string{}

	amounts := map[string]Amount{
		"sale_price":                   r.SalePrice,
		"discount_on_sale_price":       r.DiscountOnSalePrice,
		"warranty_price":               r.WarrantyPrice,
		"discount_on_warranty_price":   r.DiscountOnWarrantyPrice,
		"delivery_cost":                r.DeliveryCost,
		"discount_on_delivery_cost":    r.DiscountOnDeliveryCost,
		"finance_addon_1_cost":         r.FinanceAddon1Cost,
		"finance_addon_2_cost":         r.FinanceAddon2Cost,
		"customer_addon_1_cost":        r.CustomerAddon1Cost,
		"customer_addon_2_cost":        r.CustomerAddon2Cost,
		"value_of_px_vehicle":          r.ValueOfPxVehicle,
		"settlement_amount":            r.SettlementAmount,
		"dealer_deposit":               r.DealerDeposit,
		"dealer_deposit_paid_customer": r.DealerDepositPaidCustomer,
		"amount_paid_deposit_finance":  r.AmountPaidDepositFinance,
		"amount_paid_deposit_customer": r.AmountPaidDepositCustomer,
		"amount_paid_card":             r.AmountPaidCard,
		"amount_paid_bacs":             r.AmountPaidBacs,
		"amount_paid_cash":             r.AmountPaidCash,
		"purchase_price":               r.PurchasePrice,
		"total_spend":                  r.TotalSpend,
	}
	for field, amount := range amounts {
		if amount < 0 {
			errors[field] = "must not be negative"
		}
	}

	if r.InvoiceTo != "" &&
		r.InvoiceTo != domain.InvoiceToCustomer &&
		r.InvoiceTo != domain.InvoiceToFinanceCompany {
		errors["invoice_to"] = "must be Customer or FinanceCompany"
	}

	return errors
}

// MarginRequest is the wire form of a margin-calculation request. Purchase
// price and sale price are pointers so the handler can tell "absent" from
// "zero" and report incomplete vehicle data.
type MarginRequest struct {
	PurchasePrice        *Amount `json:"purchase_price"`
	SalePrice            *Amount `json:"sale_price"`
	TotalSpend           Amount  `json:"total_spend"`
	IsCommercialPurchase bool    `json:"is_commercial_purchase"`
	DateOfSale           string  `json:"date_of_sale"`
	DateOfPurchase       string  `json:"date_of_purchase"`
}

// Complete reports whether the upstream fields required for a margin
// calculation were supplied at all.
func (r *MarginRequest) Complete() bool {
	return r.PurchasePrice != nil && r.SalePrice != nil
}

// Validate rejects negative amounts. Returns a field->message map, empty when
// valid.
func (r *MarginRequest) Validate() map[string]string {
	errors := map[string]string{}

	if r.PurchasePrice != nil && *r.PurchasePrice < 0 {
		errors["purchase_price"] = "must not be negative"
	}
	if r.SalePrice != nil && *r.SalePrice < 0 {
		errors["sale_price"] = "must not be negative"
	}
	if r.TotalSpend < 0 {
		errors["total_spend"] = "must not be negative"
	}

	return errors
}

// ToDomain converts the request to a domain margin input.
func (r *MarginRequest) ToDomain() domain.MarginInput {
	in := domain.MarginInput{
		TotalSpend:           float64(r.TotalSpend),
		IsCommercialPurchase: r.IsCommercialPurchase,
		DateOfSale:           r.DateOfSale,
		DateOfPurchase:       r.DateOfPurchase,
	}
	if r.PurchasePrice != nil {
		in.PurchasePrice = float64(*r.PurchasePrice)
	}
	if r.SalePrice != nil {
		in.SalePrice = float64(*r.SalePrice)
	}
	return in
}

// CalculationResponse wraps a successful calculation
type CalculationResponse struct {
	Success bool                      `json:"success"`
	Result  *domain.CalculationResult `json:"result"`
}

// MarginResponse wraps a successful margin calculation
type MarginResponse struct {
	Success bool                    `json:"success"`
	Margins *domain.MarginBreakdown `json:"margins"`
}

// SaleResponse represents a stored sale
type SaleResponse struct {
	ID        string                    `json:"id"`
	Record    domain.SaleRecord         `json:"record"`
	Result    domain.CalculationResult  `json:"result"`
	CreatedAt string                    `json:"createdAt"`
	UpdatedAt string                    `json:"updatedAt"`
}

// SalesListResponse represents a paginated list of stored sales
type SalesListResponse struct {
	Data       []SaleResponse     `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// VehicleResponse wraps a vehicle lookup result
type VehicleResponse struct {
	Success bool            `json:"success"`
	Vehicle *domain.Vehicle `json:"vehicle"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FromDomainSale converts a stored domain sale to its response form.
func FromDomainSale(sale *domain.Sale) SaleResponse {
	return SaleResponse{
		ID:        sale.ID,
		Record:    sale.Record,
		Result:    sale.Result,
		CreatedAt: sale.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: sale.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
