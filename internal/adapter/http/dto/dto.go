package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayTollCardRequest is the request body for card-based toll settlement.
// The card token comes from the client-side tokenization widget; raw card
// numbers never reach this service.
type PayTollCardRequest struct {
	CardToken string `json:"card_token" binding:"required,max=100,safe_id"`
}

// RegisterVehicleRequest is the request body for vehicle registration.
type RegisterVehicleRequest struct {
	RegistrationNumber string     `json:"registration_number" binding:"required,min=1,max=20"`
	Brand              string     `json:"brand" binding:"required,min=1,max=50"`
	Model              string     `json:"model" binding:"required,min=1,max=50"`
	Year               int        `json:"year" binding:"required,gte=1950,lte=2100"`
	Color              string     `json:"color" binding:"max=30"`
	SerialNumber       string     `json:"serial_number" binding:"required,min=1,max=50"`
	InsuranceExpiry    *time.Time `json:"insurance_expiry,omitempty"`
	NextTechnicalCheck *time.Time `json:"next_technical_check,omitempty"`
}

// TopUpRequest is the request body for a vehicle balance top-up.
// Amount positivity is enforced by the service, which owns the money rules.
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreateStationRequest is the request body for toll station creation.
type CreateStationRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=100"`
	Location string          `json:"location" binding:"required,min=1,max=100"`
	Route    string          `json:"route" binding:"max=100"`
	Fee      decimal.Decimal `json:"fee" binding:"required"`
}

// PayTollCardResponse is the success body for card settlement.
type PayTollCardResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
}

// IPNResponse acknowledges a processed payment notification.
type IPNResponse struct {
	Status string `json:"status"`
}
