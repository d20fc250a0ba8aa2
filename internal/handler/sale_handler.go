package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/stockdesk/invoice-calculation-service/internal/model"
	"github.com/stockdesk/invoice-calculation-service/internal/repository"
	"github.com/stockdesk/invoice-calculation-service/internal/service"
)

// SaleHandler handles HTTP requests for invoice calculations and stored sales
type SaleHandler struct {
	saleService service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *SaleHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/invoices/calculate", h.CalculateInvoice)
	router.POST("/v1/invoices/margins", h.CalculateMargins)

	router.POST("/v1/sales", h.CreateSale)
	router.GET("/v1/sales", h.GetSales)
	router.GET("/v1/sales/:saleId", h.GetSaleByID)
	router.PUT("/v1/sales/:saleId", h.UpdateSale)
	router.DELETE("/v1/sales/:saleId", h.DeleteSale)
	router.GET("/v1/sales/:saleId/margins", h.GetSaleMargins)
}

// CalculateInvoice handles the POST /v1/invoices/calculate endpoint
// @Summary Calculate invoice fields
// @Description Derive all invoice financial fields from a sale-record snapshot without persisting anything
// @Tags invoices
// @Accept json
// @Produce json
// @Param record body model.SaleRecordRequest true "Sale record snapshot"
// @Success 200 {object} model.CalculationResponse "Derived fields"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Router /v1/invoices/calculate [post]
func (h *SaleHandler) CalculateInvoice(c *gin.Context) {
	var input model.SaleRecordRequest
	if err := bindJSON(c, &input); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	if validationErrors := input.Validate(); len(validationErrors) > 0 {
		respondBadRequest(c, ErrInvalidInput, newErrorDetails(validationErrors)...)
		return
	}

	record := input.ToDomain()
	result := h.saleService.Calculate(&record)

	respondOK(c, model.CalculationResponse{
		Success: true,
		Result:  &result,
	})
}

// CalculateMargins handles the POST /v1/invoices/margins endpoint
// @Summary Calculate margin breakdown
// @Description Derive the VAT and profit breakdown from purchase cost, sale price and the commercial-purchase flag
// @Tags invoices
// @Accept json
// @Produce json
// @Param input body model.MarginRequest true "Margin inputs"
// @Success 200 {object} model.MarginResponse "Margin breakdown"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 422 {object} model.ErrorResponse "Vehicle data incomplete"
// @Router /v1/invoices/margins [post]
func (h *SaleHandler) CalculateMargins(c *gin.Context) {
	var input model.MarginRequest
	if err := bindJSON(c, &input); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	if validationErrors := input.Validate(); len(validationErrors) > 0 {
		respondBadRequest(c, ErrInvalidInput, newErrorDetails(validationErrors)...)
		return
	}

	if !input.Complete() {
		details := []model.ErrorDetail{}
		if input.PurchasePrice == nil {
			details = append(details, newErrorDetail("purchase_price", "purchase cost is required"))
		}
		if input.SalePrice == nil {
			details = append(details, newErrorDetail("sale_price", "sale price is required"))
		}
		respondUnprocessableEntity(c, ErrIncompleteData, details...)
		return
	}

	marginInput := input.ToDomain()
	margins := h.saleService.CalculateMargins(&marginInput)

	respondOK(c, model.MarginResponse{
		Success: true,
		Margins: &margins,
	})
}

// CreateSale handles the POST /v1/sales endpoint
// @Summary Store a sale
// @Description Persist a sale snapshot together with its computed invoice fields
// @Tags sales
// @Accept json
// @Produce json
// @Param record body model.SaleRecordRequest true "Sale record snapshot"
// @Success 201 {object} model.SaleResponse "Stored sale"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/sales [post]
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var input model.SaleRecordRequest
	if err := bindJSON(c, &input); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	if validationErrors := input.Validate(); len(validationErrors) > 0 {
		respondBadRequest(c, ErrInvalidInput, newErrorDetails(validationErrors)...)
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), input.ToDomain())
	if err != nil {
		logError(c, "create_sale", err)
		respondInternalServerError(c, fmt.Sprintf("Failed to create sale: %v", err))
		return
	}

	respondCreated(c, model.FromDomainSale(sale))
}

// GetSales handles the GET /v1/sales endpoint
// @Summary List stored sales
// @Description Get a paginated list of stored sales with optional filters
// @Tags sales
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param startDate query string false "Sale date lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Sale date upper bound (YYYY-MM-DD)"
// @Param invoiceTo query string false "Invoice recipient filter"
// @Success 200 {object} model.SalesListResponse "List of sales"
// @Failure 400 {object} model.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/sales [get]
func (h *SaleHandler) GetSales(c *gin.Context) {
	filter, err := parseSaleFilter(c)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("query", err.Error()))
		return
	}

	sales, err := h.saleService.ListSales(c.Request.Context(), filter)
	if err != nil {
		logError(c, "list_sales", err)
		respondInternalServerError(c, fmt.Sprintf("Failed to retrieve sales: %v", err))
		return
	}

	data := make([]model.SaleResponse, len(sales.Data))
	for i := range sales.Data {
		data[i] = model.FromDomainSale(&sales.Data[i])
	}

	respondOK(c, model.SalesListResponse{
		Data: data,
		Pagination: model.PaginationResponse{
			TotalItems:  sales.Pagination.TotalItems,
			TotalPages:  sales.Pagination.TotalPages,
			CurrentPage: sales.Pagination.CurrentPage,
			Limit:       sales.Pagination.Limit,
		},
	})
}

// GetSaleByID handles the GET /v1/sales/{saleId} endpoint
// @Summary Get a sale by ID
// @Description Retrieve a stored sale with its computed invoice fields
// @Tags sales
// @Accept json
// @Produce json
// @Param saleId path string true "Sale ID"
// @Success 200 {object} model.SaleResponse "Stored sale"
// @Failure 404 {object} model.ErrorResponse "Sale not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/sales/{saleId} [get]
func (h *SaleHandler) GetSaleByID(c *gin.Context) {
	saleID, err := getPathParam(c, "saleId")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), saleID)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			respondNotFound(c, ErrSaleNotFoundMsg)
			return
		}
		logError(c, "get_sale", err)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, model.FromDomainSale(sale))
}

// UpdateSale handles the PUT /v1/sales/{saleId} endpoint
// @Summary Update a stored sale
// @Description Replace the sale snapshot and recompute its invoice fields
// @Tags sales
// @Accept json
// @Produce json
// @Param saleId path string true "Sale ID"
// @Param record body model.SaleRecordRequest true "Sale record snapshot"
// @Success 200 {object} model.SaleResponse "Updated sale"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 404 {object} model.ErrorResponse "Sale not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/sales/{saleId} [put]
func (h *SaleHandler) UpdateSale(c *gin.Context) {
	saleID, err := getPathParam(c, "saleId")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	var input model.SaleRecordRequest
	if err := bindJSON(c, &input); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	if validationErrors := input.Validate(); len(validationErrors) > 0 {
		respondBadRequest(c, ErrInvalidInput, newErrorDetails(validationErrors)...)
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), saleID, input.ToDomain())
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			respondNotFound(c, ErrSaleNotFoundMsg)
			return
		}
		logError(c, "update_sale", err)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, model.FromDomainSale(sale))
}

// DeleteSale handles the DELETE /v1/sales/{saleId} endpoint
// @Summary Delete a stored sale
// @Tags sales
// @Produce json
// @Param saleId path string true "Sale ID"
// @Success 204 "Sale deleted"
// @Failure 404 {object} model.ErrorResponse "Sale not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/sales/{saleId} [delete]
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	saleID, err := getPathParam(c, "saleId")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), saleID); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			respondNotFound(c, ErrSaleNotFoundMsg)
			return
		}
		logError(c, "delete_sale", err)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondNoContent(c)
}

// GetSaleMargins handles the GET /v1/sales/{saleId}/margins endpoint
// @Summary Margin breakdown for a stored sale
// @Description Compute (or serve from cache) the VAT and profit breakdown of a stored sale
// @Tags sales
// @Produce json
// @Param saleId path string true "Sale ID"
// @Success 200 {object} model.MarginResponse "Margin breakdown"
// @Failure 404 {object} model.ErrorResponse "Sale not found"
// @Failure 422 {object} model.ErrorResponse "Vehicle data incomplete"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/sales/{saleId}/margins [get]
func (h *SaleHandler) GetSaleMargins(c *gin.Context) {
	saleID, err := getPathParam(c, "saleId")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	margins, err := h.saleService.GetSaleMargins(c.Request.Context(), saleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSaleNotFound):
			respondNotFound(c, ErrSaleNotFoundMsg)
		case errors.Is(err, service.ErrIncompleteVehicleData):
			respondUnprocessableEntity(c, ErrIncompleteData)
		default:
			logError(c, "get_sale_margins", err)
			respondInternalServerError(c, ErrInternalServer)
		}
		return
	}

	respondOK(c, model.MarginResponse{
		Success: true,
		Margins: margins,
	})
}
