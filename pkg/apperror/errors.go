package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Toll Settlement (TOLL) ----

// User-facing messages stay in French, matching the rest of the fleet platform.

func ErrInsufficientFunds() *AppError {
	return New("TOLL_001", "Solde insuffisant pour ce péage", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("TOLL_002", "Montant invalide", http.StatusBadRequest)
}

func ErrVehicleNotFound() *AppError {
	return New("TOLL_003", "Véhicule non trouvé", http.StatusNotFound)
}

func ErrStationNotFound() *AppError {
	return New("TOLL_004", "Station de péage non trouvée", http.StatusNotFound)
}

func ErrTransactionNotFound() *AppError {
	return New("TOLL_005", "Transaction non trouvée", http.StatusNotFound)
}

// ---- Payment Gateway (GW) ----

// ErrGateway surfaces an upstream payment-provider failure. The provider
// message is passed through because it is already user-facing.
func ErrGateway(message string) *AppError {
	return New("GW_001", message, http.StatusBadRequest)
}

func ErrGatewayUnavailable(err error) *AppError {
	return Wrap("GW_002", "Le service de paiement est indisponible", http.StatusBadRequest, err)
}

// ---- Security & Authentication (SEC) ----

// ErrInvalidIPN covers every callback-authentication failure. The reason is
// logged server-side but never detailed to the caller.
func ErrInvalidIPN() *AppError {
	return New("SEC_001", "Invalid IPN", http.StatusBadRequest)
}

func ErrInvalidToken() *AppError {
	return New("SEC_002", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("SEC_003", "Accès refusé", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a malformed-input error with a caller-supplied message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
