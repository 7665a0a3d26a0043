package handler

import (
	"fleet-toll-gateway/internal/adapter/http/dto"
	"fleet-toll-gateway/internal/core/domain"
	"fleet-toll-gateway/internal/core/ports"
	"fleet-toll-gateway/pkg/apperror"
	"fleet-toll-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VehicleHandler handles vehicle registration, balance and history endpoints.
type VehicleHandler struct {
	fleetSvc ports.FleetService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(fleetSvc ports.FleetService) *VehicleHandler {
	return &VehicleHandler{fleetSvc: fleetSvc}
}

// Register handles POST /vehicles.
func (h *VehicleHandler) Register(c *gin.Context) {
	ownerID, ownerEmail, ok := ownerFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	v, err := h.fleetSvc.RegisterVehicle(c.Request.Context(), ports.RegisterVehicleRequest{
		OwnerID:            ownerID,
		OwnerEmail:         ownerEmail,
		RegistrationNumber: req.RegistrationNumber,
		Brand:              req.Brand,
		Model:              req.Model,
		Year:               req.Year,
		Color:              req.Color,
		SerialNumber:       req.SerialNumber,
		InsuranceExpiry:    req.InsuranceExpiry,
		NextTechnicalCheck: req.NextTechnicalCheck,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, v)
}

// Get handles GET /vehicles/:vehicle_id.
func (h *VehicleHandler) Get(c *gin.Context) {
	ownerID, _, ok := ownerFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	vehicleID, err := uuid.Parse(c.Param("vehicle_id"))
	if err != nil {
		response.Error(c, apperror.ErrVehicleNotFound())
		return
	}

	v, err := h.fleetSvc.GetVehicle(c.Request.Context(), ownerID, vehicleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, v)
}

// List handles GET /vehicles.
func (h *VehicleHandler) List(c *gin.Context) {
	ownerID, _, ok := ownerFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	vehicles, err := h.fleetSvc.ListVehicles(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"vehicles": vehicles})
}

// TopUp handles POST /vehicles/:vehicle_id/topup.
func (h *VehicleHandler) TopUp(c *gin.Context) {
	ownerID, _, ok := ownerFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	vehicleID, err := uuid.Parse(c.Param("vehicle_id"))
	if err != nil {
		response.Error(c, apperror.ErrVehicleNotFound())
		return
	}

	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	v, err := h.fleetSvc.TopUpVehicle(c.Request.Context(), ownerID, vehicleID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"message":      "Solde rechargé avec succès",
		"toll_balance": v.TollBalance,
	})
}

// ListTransactions handles GET /vehicles/:vehicle_id/transactions.
// Ownership is checked through the vehicle lookup before the history is
// filtered down to that vehicle.
func (h *VehicleHandler) ListTransactions(c *gin.Context) {
	ownerID, _, ok := ownerFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	vehicleID, err := uuid.Parse(c.Param("vehicle_id"))
	if err != nil {
		response.Error(c, apperror.ErrVehicleNotFound())
		return
	}

	if _, err := h.fleetSvc.GetVehicle(c.Request.Context(), ownerID, vehicleID); err != nil {
		response.Error(c, err)
		return
	}

	all, err := h.fleetSvc.ListTransactions(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	transactions := make([]domain.TollTransaction, 0, len(all))
	for _, t := range all {
		if t.VehicleID == vehicleID {
			transactions = append(transactions, t)
		}
	}

	response.OK(c, gin.H{"transactions": transactions})
}
