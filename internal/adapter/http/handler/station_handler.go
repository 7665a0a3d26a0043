package handler

import (
	"fleet-toll-gateway/internal/adapter/http/dto"
	"fleet-toll-gateway/internal/core/ports"
	"fleet-toll-gateway/pkg/apperror"
	"fleet-toll-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StationHandler handles toll station endpoints.
type StationHandler struct {
	fleetSvc ports.FleetService
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(fleetSvc ports.FleetService) *StationHandler {
	return &StationHandler{fleetSvc: fleetSvc}
}

// Create handles POST /stations.
func (h *StationHandler) Create(c *gin.Context) {
	var req dto.CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	station, err := h.fleetSvc.CreateStation(c.Request.Context(), ports.CreateStationRequest{
		Name:     req.Name,
		Location: req.Location,
		Route:    req.Route,
		Fee:      req.Fee,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, station)
}

// Get handles GET /stations/:station_id.
func (h *StationHandler) Get(c *gin.Context) {
	stationID, err := uuid.Parse(c.Param("station_id"))
	if err != nil {
		response.Error(c, apperror.ErrStationNotFound())
		return
	}

	station, err := h.fleetSvc.GetStation(c.Request.Context(), stationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, station)
}

// List handles GET /stations.
func (h *StationHandler) List(c *gin.Context) {
	stations, err := h.fleetSvc.ListStations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"stations": stations})
}
