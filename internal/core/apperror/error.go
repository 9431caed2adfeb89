// Package apperror provides structured error handling for the stock core.
// All business errors must use AppError so callers can branch on codes
// instead of string matching.
package apperror

import (
	"errors"
	"fmt"
)

// Error codes grouped by the failure policy they trigger.
const (
	// Infrastructure errors
	CodeInternal          = "INTERNAL_ERROR"
	CodeDatabase          = "DATABASE_ERROR"
	CodeConnectionFailure = "CONNECTION_FAILURE"

	// Schema compatibility: an optional table or column is absent.
	// Policy: degrade the affected source to empty, continue.
	CodeMissingSchema = "MISSING_SCHEMA"

	// Data quality: a stored quantity or date could not be parsed.
	// Policy: skip the value, continue aggregating.
	CodeMalformedValue = "MALFORMED_VALUE"

	// Validation errors (rejected user edits)
	CodeInvalidInput = "INVALID_INPUT"
)

// AppError is the standard error type for the platform.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field names, raw values, etc.)
	Details map[string]any `json:"details,omitempty"`

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

// NewMissingSchema reports an absent optional table or column.
func NewMissingSchema(table string, columns ...string) *AppError {
	return &AppError{
		Code:    CodeMissingSchema,
		Message: fmt.Sprintf("table %s lacks required columns", table),
		Details: map[string]any{"table": table, "columns": columns},
	}
}

// NewMalformedValue reports a stored value that failed coercion.
func NewMalformedValue(field string, raw any) *AppError {
	return &AppError{
		Code:    CodeMalformedValue,
		Message: fmt.Sprintf("value for %s could not be parsed", field),
		Details: map[string]any{"field": field, "raw": raw},
	}
}

// NewConnectionFailure reports an unreachable store.
func NewConnectionFailure(err error) *AppError {
	return &AppError{
		Code:    CodeConnectionFailure,
		Message: "store is unreachable",
		Err:     err,
	}
}

// NewInvalidInput rejects a user edit. The prior field value must be kept.
func NewInvalidInput(field, message string) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
		Details: map[string]any{"field": field},
	}
}

// NewDatabase wraps a driver-level query error.
func NewDatabase(op string, err error) *AppError {
	return &AppError{
		Code:    CodeDatabase,
		Message: fmt.Sprintf("query failed: %s", op),
		Err:     err,
	}
}

// NewInternal creates an internal error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
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

func hasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsMissingSchema checks if error is CodeMissingSchema
func IsMissingSchema(err error) bool {
	return hasCode(err, CodeMissingSchema)
}

// IsConnectionFailure checks if error is CodeConnectionFailure
func IsConnectionFailure(err error) bool {
	return hasCode(err, CodeConnectionFailure)
}

// IsInvalidInput checks if error is CodeInvalidInput
func IsInvalidInput(err error) bool {
	return hasCode(err, CodeInvalidInput)
}
