// Package dvla wraps the DVLA Vehicle Enquiry Service API.
package dvla

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stockdesk/invoice-calculation-service/internal/cache"
	"github.com/stockdesk/invoice-calculation-service/internal/domain"
)

// ErrVehicleNotFound is returned when the registration is unknown to the DVLA.
var ErrVehicleNotFound = errors.New("vehicle not found")

// Client calls the DVLA Vehicle Enquiry Service
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *cache.Store
}

// Config holds configuration for the DVLA client
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Cache   *cache.Store
}

// NewClient creates a new DVLA Vehicle Enquiry client
func NewClient(config *Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		cache: config.Cache,
	}
}

// enquiryRequest is the request payload for the vehicle enquiry endpoint
type enquiryRequest struct {
	RegistrationNumber string `json:"registrationNumber"`
}

// enquiryResponse mirrors the DVLA response payload
type enquiryResponse struct {
	RegistrationNumber       string          `json:"registrationNumber"`
	Make                     string          `json:"make"`
	Colour                   string          `json:"colour"`
	FuelType                 string          `json:"fuelType"`
	EngineCapacity           int             `json:"engineCapacity"`
	YearOfManufacture        int             `json:"yearOfManufacture"`
	TaxStatus                string          `json:"taxStatus"`
	TaxDueDate               domain.DateOnly `json:"taxDueDate"`
	MotStatus                string          `json:"motStatus"`
	MotExpiryDate            domain.DateOnly `json:"motExpiryDate"`
	Co2Emissions             int             `json:"co2Emissions"`
	MarkedForExport          bool            `json:"markedForExport"`
	MonthOfFirstRegistration string          `json:"monthOfFirstRegistration"`
}

// LookupVehicle fetches vehicle details for a registration number. Results are
// cached so repeated lookups for the same plate do not hit the DVLA.
func (c *Client) LookupVehicle(ctx context.Context, registration string) (*domain.Vehicle, error) {
	registration = normalizeRegistration(registration)
	if registration == "" {
		return nil, fmt.Errorf("registration number is required")
	}

	cacheKey := "vehicle:" + registration
	if c.cache != nil {
		// Cached as a value; each hit gets its own copy.
		if cached, ok := c.cache.Get(cacheKey); ok {
			vehicle := cached.(domain.Vehicle)
			return &vehicle, nil
		}
	}

	payload, err := json.Marshal(enquiryRequest{RegistrationNumber: registration})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
	}

	url := fmt.Sprintf("%s/vehicle-enquiry/v1/vehicles", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrVehicleNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("DVLA API returned status %d: %s", resp.StatusCode, string(body))
	}

	var enquiry enquiryResponse
	if err := json.NewDecoder(resp.Body).Decode(&enquiry); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	vehicle := &domain.Vehicle{
		RegistrationNumber: enquiry.RegistrationNumber,
		Make:               enquiry.Make,
		Colour:             enquiry.Colour,
		FuelType:           enquiry.FuelType,
		EngineCapacity:     enquiry.EngineCapacity,
		YearOfManufacture:  enquiry.YearOfManufacture,
		TaxStatus:          enquiry.TaxStatus,
		TaxDueDate:         enquiry.TaxDueDate,
		MotStatus:          enquiry.MotStatus,
		MotExpiryDate:      enquiry.MotExpiryDate,
		Co2Emissions:       enquiry.Co2Emissions,
		MarkedForExport:    enquiry.MarkedForExport,
		MonthOfFirstReg:    enquiry.MonthOfFirstRegistration,
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, *vehicle)
	}

	return vehicle, nil
}

// normalizeRegistration strips spaces and upper-cases a plate so cache keys
// and API requests are consistent.
func normalizeRegistration(registration string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(registration), " ", ""))
}
