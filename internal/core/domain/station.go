package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TollStation represents a toll collection point. The fee is fixed at creation.
type TollStation struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Location  string          `json:"location"`
	Route     string          `json:"route"`
	Fee       decimal.Decimal `json:"fee"`
	CreatedAt time.Time       `json:"created_at"`
}
