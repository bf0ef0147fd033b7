package models

import (
	"errors"
	"fmt"
)

// Error codes exposed to clients
const (
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeInvalidJSON         = "INVALID_JSON"
	CodeInvalidID           = "INVALID_ID"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInvalidReference    = "INVALID_REFERENCE"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeNoData              = "NO_DATA"
	CodeRateLimited         = "RATE_LIMITED"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeInternal            = "INTERNAL_ERROR"
)

// Common error types
var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("operation conflicts with current state")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrConstraint       = errors.New("data violates a database constraint")
	ErrNoData           = errors.New("no data available")
)

// FieldError is a single field-level validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents an application-level error with context
type AppError struct {
	Code    string
	Message string
	Err     error
	Details []FieldError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrInvalidInput creates a single-message input error
func ErrInvalidInput(message string) error {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// ErrValidation creates a validation error carrying every collected field error
func ErrValidation(details []FieldError) error {
	return &AppError{
		Code:    CodeValidationFailed,
		Message: "Validation failed",
		Details: details,
	}
}

// ErrNotFoundWithMsg creates a not found error with custom message
func ErrNotFoundWithMsg(message string) error {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
		Err:     ErrNotFound,
	}
}

// ErrConflictWithMsg creates a conflict error with custom message
func ErrConflictWithMsg(message string) error {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Err:     ErrConflict,
	}
}

// ErrNoDataWithMsg reports an empty result where data was required
func ErrNoDataWithMsg(message string) error {
	return &AppError{
		Code:    CodeNoData,
		Message: message,
		Err:     ErrNoData,
	}
}
