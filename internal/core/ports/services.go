package ports

import (
	"context"
	"time"

	"fleet-toll-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Gateway Ports (outbound) ---

// CryptoInvoiceRequest holds the input for a CoinPayments invoice.
type CryptoInvoiceRequest struct {
	Amount     decimal.Decimal
	Currency   domain.Currency
	BuyerEmail string
}

// CryptoInvoice is the gateway's answer to a created invoice.
type CryptoInvoice struct {
	ExternalID  string
	CheckoutURL string
}

// CryptoGateway builds outbound CoinPayments requests and verifies inbound
// IPN authenticity.
type CryptoGateway interface {
	CreateInvoice(ctx context.Context, req CryptoInvoiceRequest) (*CryptoInvoice, error)
	// VerifyIPN recomputes the HMAC over the exact bytes received and compares
	// it with the provided header value in constant time.
	VerifyIPN(payload []byte, providedMAC string) bool
}

// CardChargeRequest holds the input for a synchronous card charge.
type CardChargeRequest struct {
	AmountMinor int64 // smallest currency unit (cents)
	Currency    domain.Currency
	Token       string
	Description string
}

// CardCharge is the processor's answer to a successful charge.
type CardCharge struct {
	ChargeID string
}

// CardGateway delegates to the card processor API.
type CardGateway interface {
	Charge(ctx context.Context, req CardChargeRequest) (*CardCharge, error)
}

// --- Service Ports (business logic) ---

// CardSettlementRequest holds validated input for a card toll settlement.
type CardSettlementRequest struct {
	OwnerID    uuid.UUID
	OwnerEmail string
	VehicleID  uuid.UUID
	StationID  uuid.UUID
	CardToken  string
}

// CryptoSettlementRequest holds validated input for a crypto toll settlement.
type CryptoSettlementRequest struct {
	OwnerID    uuid.UUID
	OwnerEmail string
	VehicleID  uuid.UUID
}

// CryptoSettlementResult pairs the recorded pending transaction with the
// provider checkout URL the caller is redirected to.
type CryptoSettlementResult struct {
	Transaction *domain.TollTransaction
	CheckoutURL string
}

// SettlementService orchestrates the balance-check, debit, record and
// confirm/compensate sequence for both payment paths.
type SettlementService interface {
	PayTollWithCard(ctx context.Context, req CardSettlementRequest) (*domain.TollTransaction, error)
	PayTollWithCrypto(ctx context.Context, req CryptoSettlementRequest) (*CryptoSettlementResult, error)
}

// IPNOutcome describes what a processed callback did.
type IPNOutcome string

const (
	IPNOutcomeCompleted IPNOutcome = "completed"
	IPNOutcomeFailed    IPNOutcome = "failed"
	IPNOutcomeNoop      IPNOutcome = "noop"
)

// IPNResult is the reconciler's answer to a verified callback.
type IPNResult struct {
	TransactionID uuid.UUID
	Outcome       IPNOutcome
}

// ReconcilerService matches asynchronous provider notifications to pending
// transactions and applies their outcome.
type ReconcilerService interface {
	HandleIPN(ctx context.Context, providedMAC string, body []byte) (*IPNResult, error)
}

// --- Fleet management (supporting surface) ---

// RegisterVehicleRequest holds validated input for vehicle registration.
type RegisterVehicleRequest struct {
	OwnerID            uuid.UUID
	OwnerEmail         string
	RegistrationNumber string
	Brand              string
	Model              string
	Year               int
	Color              string
	SerialNumber       string
	InsuranceExpiry    *time.Time
	NextTechnicalCheck *time.Time
}

// CreateStationRequest holds validated input for toll station creation.
type CreateStationRequest struct {
	Name     string
	Location string
	Route    string
	Fee      decimal.Decimal
}

// FleetService covers vehicle/station registration, balance top-up and
// transaction history.
type FleetService interface {
	RegisterVehicle(ctx context.Context, req RegisterVehicleRequest) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, ownerID uuid.UUID) ([]domain.Vehicle, error)
	TopUpVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID, amount decimal.Decimal) (*domain.Vehicle, error)
	ListTransactions(ctx context.Context, ownerID uuid.UUID) ([]domain.TollTransaction, error)
	CreateStation(ctx context.Context, req CreateStationRequest) (*domain.TollStation, error)
	GetStation(ctx context.Context, id uuid.UUID) (*domain.TollStation, error)
	ListStations(ctx context.Context) ([]domain.TollStation, error)
}

// --- Token / notification ---

// TokenClaims holds the parsed JWT claims identifying a vehicle owner.
type TokenClaims struct {
	OwnerID uuid.UUID
	Email   string
}

// TokenService issues and validates the bearer tokens identifying owners.
type TokenService interface {
	Generate(ownerID uuid.UUID, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// Notifier dispatches user-facing email notifications.
type Notifier interface {
	PaymentConfirmation(ctx context.Context, email string, transaction *domain.TollTransaction, stationName string) error
	MaintenanceReminder(ctx context.Context, email string, vehicle *domain.Vehicle) error
}
