// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Report errors: the whole analysis fails
	ErrInsufficientData = &Error{Code: "INSUFFICIENT_DATA", Message: "insufficient data for analysis"}
	ErrMissingMetadata  = &Error{Code: "MISSING_METADATA", Message: "required scheme metadata missing"}

	// Field errors: a single report field is not available
	ErrInsufficientHistory = &Error{Code: "INSUFFICIENT_HISTORY", Message: "history shorter than horizon"}
	ErrUndefinedReturn     = &Error{Code: "UNDEFINED_RETURN", Message: "return undefined for start value"}
	ErrNoVolatilityData    = &Error{Code: "NO_VOLATILITY_DATA", Message: "fewer than two valid changes"}

	// Provider errors
	ErrSchemeNotFound = &Error{Code: "SCHEME_NOT_FOUND", Message: "scheme not found"}
	ErrInvalidCode    = &Error{Code: "INVALID_CODE", Message: "invalid scheme code"}
	ErrProviderFailed = &Error{Code: "PROVIDER_FAILED", Message: "data provider failed"}

	// Catalog errors
	ErrCatalogUnavailable = &Error{Code: "CATALOG_UNAVAILABLE", Message: "scheme catalog unavailable"}
	ErrInvalidQuery       = &Error{Code: "INVALID_QUERY", Message: "invalid search query"}

	// Cache errors
	ErrCacheMiss = &Error{Code: "CACHE_MISS", Message: "cache entry not found"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)

// IsFieldError reports whether err only degrades a single report field.
func IsFieldError(err error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	switch e.Code {
	case ErrInsufficientHistory.Code, ErrUndefinedReturn.Code, ErrNoVolatilityData.Code:
		return true
	}
	return false
}
