package dvla

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdesk/invoice-calculation-service/internal/cache"
	"github.com/stockdesk/invoice-calculation-service/internal/domain"
)

func newTestServer(t *testing.T, hits *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/vehicle-enquiry/v1/vehicles", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

		var req enquiryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.RegistrationNumber == "MISSING1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		json.NewEncoder(w).Encode(enquiryResponse{
			RegistrationNumber: req.RegistrationNumber,
			Make:               "FORD",
			Colour:             "BLUE",
			FuelType:           "PETROL",
			EngineCapacity:     1998,
			YearOfManufacture:  2019,
			TaxStatus:          "Taxed",
			TaxDueDate:         domain.DateOnly{Time: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
			MotStatus:          "Valid",
			MotExpiryDate:      domain.DateOnly{Time: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)},
		})
	}))
}

func TestLookupVehicle(t *testing.T) {
	var hits int
	server := newTestServer(t, &hits)
	defer server.Close()

	client := NewClient(&Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})

	vehicle, err := client.LookupVehicle(context.Background(), "ab19 cde")
	require.NoError(t, err)
	assert.Equal(t, "AB19CDE", vehicle.RegistrationNumber)
	assert.Equal(t, "FORD", vehicle.Make)
	assert.Equal(t, 2019, vehicle.YearOfManufacture)
	assert.Equal(t, "2026-03-01", vehicle.TaxDueDate.Format("2006-01-02"))
	assert.Equal(t, "2026-06-15", vehicle.MotExpiryDate.Format("2006-01-02"))
}

func TestLookupVehicleNotFound(t *testing.T) {
	var hits int
	server := newTestServer(t, &hits)
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, APIKey: "test-key"})

	_, err := client.LookupVehicle(context.Background(), "MISSING1")
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestLookupVehicleEmptyRegistration(t *testing.T) {
	client := NewClient(&Config{BaseURL: "http://localhost", APIKey: "test-key"})

	_, err := client.LookupVehicle(context.Background(), "   ")
	assert.Error(t, err)
}

func TestLookupVehicleUsesCache(t *testing.T) {
	var hits int
	server := newTestServer(t, &hits)
	defer server.Close()

	client := NewClient(&Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Cache:   cache.NewStore(time.Minute),
	})

	_, err := client.LookupVehicle(context.Background(), "AB19CDE")
	require.NoError(t, err)
	// Differently formatted plate, same vehicle.
	_, err = client.LookupVehicle(context.Background(), "ab19 cde")
	require.NoError(t, err)

	assert.Equal(t, 1, hits, "second lookup should be served from cache")
}

// Mutating a returned vehicle must not leak into the cached copy.
func TestLookupVehicleCachedCopyNotShared(t *testing.T) {
	var hits int
	server := newTestServer(t, &hits)
	defer server.Close()

	client := NewClient(&Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Cache:   cache.NewStore(time.Minute),
	})

	first, err := client.LookupVehicle(context.Background(), "AB19CDE")
	require.NoError(t, err)
	first.Make = "VAUXHALL"

	second, err := client.LookupVehicle(context.Background(), "AB19CDE")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
	assert.Equal(t, "FORD", second.Make)
}
