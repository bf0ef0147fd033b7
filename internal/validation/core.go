// Package validation runs declarative field rules over decoded request bodies.
//
// A Validator is a fixed, ordered list of rules. Every rule runs, and every
// error is collected before the request is rejected, so a client sees all
// problems with its payload at once.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

// Rule checks a single field of the payload and reports zero or more errors for it.
type Rule func(p Payload) []models.FieldError

// Validator is an ordered set of field rules for one resource type.
type Validator struct {
	rules []Rule
}

// New creates a validator from rules, which run in the order given.
func New(rules ...Rule) *Validator {
	return &Validator{rules: rules}
}

// Validate runs every rule and returns a VALIDATION_FAILED AppError carrying
// all collected field errors, or nil when the payload is acceptable.
func (v *Validator) Validate(p Payload) error {
	var errs Errors
	for _, rule := range v.rules {
		errs = append(errs, rule(p)...)
	}

	if errs.IsEmpty() {
		return nil
	}
	return models.ErrValidation(errs)
}

// Errors is a collection of field errors.
type Errors []models.FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) IsEmpty() bool {
	return len(e) == 0
}

// Has reports whether any error was recorded for field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field.
func (e Errors) Get(field string) []string {
	var messages []string
	for _, fe := range e {
		if fe.Field == field {
			messages = append(messages, fe.Message)
		}
	}
	return messages
}

// Extract returns the field errors carried by err, or nil if err is not a validation failure.
func Extract(err error) Errors {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == models.CodeValidationFailed {
		return appErr.Details
	}
	return nil
}

func fieldError(field, message string) []models.FieldError {
	return []models.FieldError{{Field: field, Message: message}}
}
