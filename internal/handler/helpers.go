package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockdesk/invoice-calculation-service/internal/domain"
)

// getPathParam retrieves a path parameter and validates it's not empty
func getPathParam(c *gin.Context, paramName string) (string, error) {
	value := c.Param(paramName)
	if value == "" {
		return "", fmt.Errorf("%s is required", paramName)
	}
	return value, nil
}

// getQueryInt retrieves an integer query parameter with a default value
func getQueryInt(c *gin.Context, paramName string, defaultValue int) (int, error) {
	valueStr := c.Query(paramName)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}

	return value, nil
}

// parseDate parses a date string in YYYY-MM-DD format
func parseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}

	return date, nil
}

// bindJSON binds JSON request body to a struct
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON format: %v", err)
	}
	return nil
}

// parseSaleFilter builds a sale filter from list query parameters
func parseSaleFilter(c *gin.Context) (domain.SaleFilter, error) {
	filter := domain.SaleFilter{}

	page, err := getQueryInt(c, "page", 1)
	if err != nil {
		return filter, err
	}
	limit, err := getQueryInt(c, "limit", 10)
	if err != nil {
		return filter, err
	}
	if page < 1 {
		return filter, fmt.Errorf("page must be greater than 0")
	}
	if limit < 1 || limit > 100 {
		return filter, fmt.Errorf("limit must be between 1 and 100")
	}
	filter.Page = page
	filter.Limit = limit

	if startDate := c.Query("startDate"); startDate != "" {
		parsed, err := parseDate(startDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &parsed
	}
	if endDate := c.Query("endDate"); endDate != "" {
		parsed, err := parseDate(endDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &parsed
	}

	if invoiceTo := c.Query("invoiceTo"); invoiceTo != "" {
		if invoiceTo != domain.InvoiceToCustomer && invoiceTo != domain.InvoiceToFinanceCompany {
			return filter, fmt.Errorf("invoiceTo must be Customer or FinanceCompany")
		}
		filter.InvoiceTo = invoiceTo
	}

	return filter, nil
}
