// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"
	CodeTimeout  = "TIMEOUT_ERROR"

	// Validation errors (400)
	CodeValidation = "VALIDATION_ERROR"

	// Business rule violations (422)
	CodeInvalidRequestItem        = "INVALID_REQUEST_ITEM"
	CodePolicyFailure             = "TAX_POLICY_FAILURE"
	CodeUnsupportedClassification = "UNSUPPORTED_CLASSIFICATION"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// AppError is the standard error type for the platform.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, line numbers, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidRequestItem is returned when a requested item cannot be invoiced.
// lineNo is 1-based.
func NewInvalidRequestItem(lineNo int, reason string) *AppError {
	return &AppError{
		Code:       CodeInvalidRequestItem,
		Message:    reason,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"lineNo": lineNo},
	}
}

// NewPolicyFailure wraps an error raised while computing tax.
func NewPolicyFailure(cause error) *AppError {
	return &AppError{
		Code:       CodePolicyFailure,
		Message:    "Tax could not be calculated",
		HTTPStatus: http.StatusUnprocessableEntity,
		Err:        cause,
	}
}

// NewUnsupportedClassification is returned by tax policies that have no rule for a classification.
func NewUnsupportedClassification(classification string) *AppError {
	return &AppError{
		Code:       CodeUnsupportedClassification,
		Message:    fmt.Sprintf("no tax rule for classification %s", classification),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"classification": classification},
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewTimeout creates a timeout error (504)
func NewTimeout(operation string, cause error) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    fmt.Sprintf("%s timed out", operation),
		HTTPStatus: http.StatusGatewayTimeout,
		Err:        cause,
	}
}

// NewDatabase wraps a storage failure (500). The cause is logged, never returned to clients.
func NewDatabase(operation string, cause error) *AppError {
	return &AppError{
		Code:       CodeDatabase,
		Message:    "Database error",
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"operation": operation},
		Err:        cause,
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// HasCode checks if the first AppError in the chain carries code.
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

// IsInvalidRequestItem checks if error is CodeInvalidRequestItem
func IsInvalidRequestItem(err error) bool {
	return HasCode(err, CodeInvalidRequestItem)
}

// IsPolicyFailure checks if error is CodePolicyFailure
func IsPolicyFailure(err error) bool {
	return HasCode(err, CodePolicyFailure)
}

// IsDatabase checks if error is CodeDatabase
func IsDatabase(err error) bool {
	return HasCode(err, CodeDatabase)
}
