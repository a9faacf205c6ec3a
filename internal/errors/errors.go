// Package errors provides custom error types for the Pulserisk API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Account errors.
var (
	ErrAccountNotFound = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
)

// Holding errors.
var (
	ErrHoldingNotFound     = &AppError{Code: "HOLDING_NOT_FOUND", Message: "Holding not found", StatusCode: http.StatusNotFound}
	ErrInvalidQuantity     = &AppError{Code: "INVALID_QUANTITY", Message: "Quantity and prices must be valid positive values", StatusCode: http.StatusBadRequest}
	ErrInvalidOptionFields = &AppError{Code: "INVALID_OPTION_FIELDS", Message: "Underlying, strike, and expiry are required for options", StatusCode: http.StatusBadRequest}
)

// Activity and dashboard errors.
var (
	ErrActivityNotFound = &AppError{Code: "ACTIVITY_NOT_FOUND", Message: "Activity not found", StatusCode: http.StatusNotFound}
	ErrInvalidLookback  = &AppError{Code: "INVALID_LOOKBACK", Message: "Unsupported lookback window", StatusCode: http.StatusBadRequest}
	ErrInvalidBenchmark = &AppError{Code: "INVALID_BENCHMARK", Message: "Unknown benchmark", StatusCode: http.StatusBadRequest}
)

// Import errors.
var (
	ErrEmptyImport = &AppError{Code: "EMPTY_IMPORT", Message: "No importable rows found in this file", StatusCode: http.StatusBadRequest}
)

// Quote errors.
var (
	ErrQuoteNotConfigured = &AppError{Code: "QUOTE_NOT_CONFIGURED", Message: "Market data API key not configured", StatusCode: http.StatusBadRequest}
	ErrQuoteProvider      = &AppError{Code: "QUOTE_PROVIDER_ERROR", Message: "Market data provider request failed", StatusCode: http.StatusBadGateway}
	ErrQuoteNotFound      = &AppError{Code: "QUOTE_NOT_FOUND", Message: "No data found for symbol", StatusCode: http.StatusNotFound}
)
