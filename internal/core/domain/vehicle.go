package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vehicle represents a registered fleet vehicle with a prepaid toll balance.
// Owner identity lives in the external user service; only the id and the
// notification email are kept here.
type Vehicle struct {
	ID                 uuid.UUID       `json:"id"`
	OwnerID            uuid.UUID       `json:"owner_id"`
	OwnerEmail         string          `json:"-"`
	RegistrationNumber string          `json:"registration_number"`
	Brand              string          `json:"brand"`
	Model              string          `json:"model"`
	Year               int             `json:"year"`
	Color              string          `json:"color"`
	SerialNumber       string          `json:"serial_number"`
	TollBalance        decimal.Decimal `json:"toll_balance"`
	InsuranceExpiry    *time.Time      `json:"insurance_expiry,omitempty"`
	NextTechnicalCheck *time.Time      `json:"next_technical_check,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// CanAfford reports whether the toll balance covers the given fee.
func (v *Vehicle) CanAfford(fee decimal.Decimal) bool {
	return v.TollBalance.GreaterThanOrEqual(fee)
}

// InsuranceExpiringWithin reports whether the insurance expires within d of now.
func (v *Vehicle) InsuranceExpiringWithin(now time.Time, d time.Duration) bool {
	if v.InsuranceExpiry == nil {
		return false
	}
	return !v.InsuranceExpiry.After(now.Add(d))
}

// TechnicalCheckDueWithin reports whether the technical control falls due within d of now.
func (v *Vehicle) TechnicalCheckDueWithin(now time.Time, d time.Duration) bool {
	if v.NextTechnicalCheck == nil {
		return false
	}
	return !v.NextTechnicalCheck.After(now.Add(d))
}
