package handler

import (
	"io"

	"fleet-toll-gateway/internal/adapter/http/dto"
	"fleet-toll-gateway/internal/adapter/http/middleware"
	"fleet-toll-gateway/internal/core/ports"
	"fleet-toll-gateway/pkg/apperror"
	"fleet-toll-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles toll settlement and payment callback endpoints.
type PaymentHandler struct {
	settlementSvc ports.SettlementService
	reconcilerSvc ports.ReconcilerService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(settlementSvc ports.SettlementService, reconcilerSvc ports.ReconcilerService) *PaymentHandler {
	return &PaymentHandler{settlementSvc: settlementSvc, reconcilerSvc: reconcilerSvc}
}

// PayTollCrypto handles POST /payments/pay-toll/:vehicle_id.
// On success the caller is redirected to the provider checkout page.
func (h *PaymentHandler) PayTollCrypto(c *gin.Context) {
	ownerID, ownerEmail, ok := ownerFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	vehicleID, err := uuid.Parse(c.Param("vehicle_id"))
	if err != nil {
		response.Error(c, apperror.ErrVehicleNotFound())
		return
	}

	result, err := h.settlementSvc.PayTollWithCrypto(c.Request.Context(), ports.CryptoSettlementRequest{
		OwnerID:    ownerID,
		OwnerEmail: ownerEmail,
		VehicleID:  vehicleID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Redirect(c, result.CheckoutURL)
}

// PayTollCard handles POST /vehicles/pay-toll/:vehicle_id/:station_id.
func (h *PaymentHandler) PayTollCard(c *gin.Context) {
	ownerID, ownerEmail, ok := ownerFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	vehicleID, err := uuid.Parse(c.Param("vehicle_id"))
	if err != nil {
		response.Error(c, apperror.ErrVehicleNotFound())
		return
	}
	stationID, err := uuid.Parse(c.Param("station_id"))
	if err != nil {
		response.Error(c, apperror.ErrStationNotFound())
		return
	}

	var req dto.PayTollCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, err := h.settlementSvc.PayTollWithCard(c.Request.Context(), ports.CardSettlementRequest{
		OwnerID:    ownerID,
		OwnerEmail: ownerEmail,
		VehicleID:  vehicleID,
		StationID:  stationID,
		CardToken:  req.CardToken,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PayTollCardResponse{
		Message:       "Paiement du péage effectué avec succès",
		TransactionID: txn.ID.String(),
	})
}

// HandleIPN handles POST /payments/coinpayments/ipn. The signature covers the
// raw body bytes, so the body is read before any parsing happens.
func (h *PaymentHandler) HandleIPN(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.ErrInvalidIPN())
		return
	}

	if _, err := h.reconcilerSvc.HandleIPN(c.Request.Context(), c.GetHeader("HMAC"), body); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.IPNResponse{Status: "success"})
}

// ownerFromContext pulls the authenticated owner identity set by JWTAuth.
func ownerFromContext(c *gin.Context) (uuid.UUID, string, bool) {
	raw, ok := c.Get(middleware.CtxOwnerID)
	if !ok {
		return uuid.Nil, "", false
	}
	ownerID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	email, _ := c.Get(middleware.CtxOwnerEmail)
	ownerEmail, _ := email.(string)
	return ownerID, ownerEmail, true
}
