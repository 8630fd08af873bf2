package domain

import (
	"fmt"
	"net/http"
	"time"
)

// Error codes for categorization
const (
	// Client errors (4xx)
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"

	// Server errors (5xx)
	ErrCodeInternal = "INTERNAL_ERROR"
	ErrCodeTimeout  = "TIMEOUT_ERROR"

	// Business logic errors
	ErrCodeSessionNotFound  = "SESSION_NOT_FOUND"
	ErrCodeNavigationFailed = "NAVIGATION_FAILED"
	ErrCodeBrowserError     = "BROWSER_ERROR"
	ErrCodeSessionLimit     = "SESSION_LIMIT_REACHED"
)

// AppError is the base error type for all application errors. The engine core
// never raises one for a per-row autofill failure; AppError exists for the
// service boundary only (bad payloads, dead sessions, browser faults).
type AppError struct {
	// Error code for programmatic handling
	Code string `json:"code"`

	// Human-readable message
	Message string `json:"message"`

	// Detailed description (optional, for developers)
	Details string `json:"details,omitempty"`

	// HTTP status code
	HTTPStatus int `json:"-"`

	// Original error (for error wrapping)
	Cause error `json:"-"`

	// Metadata for additional context
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// Timestamp when error occurred
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for error comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithCause adds the underlying cause
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// NewError creates a new AppError
func NewError(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now().UTC(),
	}
}

func ErrBadRequest(message string) *AppError {
	return NewError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func ErrValidation(message string) *AppError {
	return NewError(ErrCodeValidation, message, http.StatusBadRequest)
}

func ErrSessionNotFound(id string) *AppError {
	return NewError(ErrCodeSessionNotFound, fmt.Sprintf("session not found: %s", id), http.StatusNotFound).
		WithMetadata("session_id", id)
}

func ErrSessionLimit(max int) *AppError {
	return NewError(ErrCodeSessionLimit, "session limit reached", http.StatusConflict).
		WithMetadata("max_sessions", max)
}

func ErrNavigationFailed(url string, cause error) *AppError {
	return NewError(ErrCodeNavigationFailed, fmt.Sprintf("navigation failed: %s", url), http.StatusBadGateway).
		WithCause(cause)
}

func ErrBrowser(message string, cause error) *AppError {
	return NewError(ErrCodeBrowserError, message, http.StatusInternalServerError).
		WithCause(cause)
}

func ErrInternal(message string, cause error) *AppError {
	return NewError(ErrCodeInternal, message, http.StatusInternalServerError).
		WithCause(cause)
}

func ErrRateLimited(retryAfter time.Duration) *AppError {
	return NewError(ErrCodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests).
		WithMetadata("retry_after", retryAfter.String())
}
