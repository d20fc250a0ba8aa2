package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdesk/invoice-calculation-service/internal/domain"
	"github.com/stockdesk/invoice-calculation-service/internal/dvla"
	"github.com/stockdesk/invoice-calculation-service/internal/model"
)

type stubVehicleLookup struct {
	vehicle *domain.Vehicle
	err     error
}

func (s *stubVehicleLookup) LookupVehicle(ctx context.Context, registration string) (*domain.Vehicle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vehicle, nil
}

func setupVehicleRouter(lookup VehicleLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewVehicleHandler(lookup).RegisterRoutes(router)
	return router
}

func TestGetVehicle(t *testing.T) {
	router := setupVehicleRouter(&stubVehicleLookup{
		vehicle: &domain.Vehicle{RegistrationNumber: "AB19CDE", Make: "FORD", YearOfManufacture: 2019},
	})

	req := httptest.NewRequest("GET", "/v1/vehicles/AB19CDE", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.VehicleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "FORD", resp.Vehicle.Make)
}

func TestGetVehicleNotFound(t *testing.T) {
	router := setupVehicleRouter(&stubVehicleLookup{err: dvla.ErrVehicleNotFound})

	req := httptest.NewRequest("GET", "/v1/vehicles/MISSING1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
