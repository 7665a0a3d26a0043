package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency identifies the unit a toll transaction is denominated in.
type Currency string

const (
	CurrencyBTC  Currency = "BTC"
	CurrencyUSDT Currency = "USDT.TRC20"
	CurrencyEUR  Currency = "EUR"
)

// TransactionStatus represents the lifecycle state of a toll transaction.
// The only legal transitions are pending -> completed and pending -> failed.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// TollTransaction records a single toll charge against a vehicle.
// ExternalID is the gateway-assigned identifier and is the join key for
// asynchronous reconciliation; it is unique across the system once set.
type TollTransaction struct {
	ID            uuid.UUID         `json:"id"`
	OwnerID       uuid.UUID         `json:"owner_id"`
	VehicleID     uuid.UUID         `json:"vehicle_id"`
	StationID     *uuid.UUID        `json:"station_id,omitempty"`
	Amount        decimal.Decimal   `json:"amount"`
	Currency      Currency          `json:"currency"`
	Status        TransactionStatus `json:"status"`
	ExternalID    string            `json:"external_id"`
	PaymentMethod string            `json:"payment_method"`
	CreatedAt     time.Time         `json:"created_at"`
}

// IsTerminal returns true if the transaction reached a final state.
func (t *TollTransaction) IsTerminal() bool {
	return t.Status == TransactionStatusCompleted || t.Status == TransactionStatusFailed
}
