package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/stockdesk/invoice-calculation-service/internal/domain"
	"github.com/stockdesk/invoice-calculation-service/internal/dvla"
	"github.com/stockdesk/invoice-calculation-service/internal/model"
)

// VehicleLookup abstracts the DVLA client for testing
type VehicleLookup interface {
	LookupVehicle(ctx context.Context, registration string) (*domain.Vehicle, error)
}

// VehicleHandler handles HTTP requests for vehicle lookups
type VehicleHandler struct {
	lookup VehicleLookup
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(lookup VehicleLookup) *VehicleHandler {
	return &VehicleHandler{
		lookup: lookup,
	}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *VehicleHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/vehicles/:registration", h.GetVehicle)
}

// GetVehicle handles the GET /v1/vehicles/{registration} endpoint
// @Summary Look up a vehicle by registration
// @Description Fetch vehicle details from the DVLA Vehicle Enquiry Service
// @Tags vehicles
// @Produce json
// @Param registration path string true "Vehicle registration number"
// @Success 200 {object} model.VehicleResponse "Vehicle details"
// @Failure 404 {object} model.ErrorResponse "Vehicle not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/vehicles/{registration} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	registration, err := getPathParam(c, "registration")
	if err != nil {
		respondBadRequest(c, "Registration number is required")
		return
	}

	vehicle, err := h.lookup.LookupVehicle(c.Request.Context(), registration)
	if err != nil {
		if errors.Is(err, dvla.ErrVehicleNotFound) {
			respondNotFound(c, ErrVehicleNotFoundMsg)
			return
		}
		logError(c, "lookup_vehicle", err)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, model.VehicleResponse{
		Success: true,
		Vehicle: vehicle,
	})
}
