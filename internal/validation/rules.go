package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

// StringCheck inspects a trimmed string and returns a failure message, or "" when it passes.
type StringCheck func(value string) string

var std = validator.New()

// MinLen fails when value has fewer than n characters.
func MinLen(n int, message string) StringCheck {
	return func(value string) string {
		if utf8.RuneCountInString(value) < n {
			return message
		}
		return ""
	}
}

// MaxLen fails when value has more than n characters.
func MaxLen(n int, message string) StringCheck {
	return func(value string) string {
		if utf8.RuneCountInString(value) > n {
			return message
		}
		return ""
	}
}

// Matches fails when value does not match re.
func Matches(re *regexp.Regexp, message string) StringCheck {
	return func(value string) string {
		if !re.MatchString(value) {
			return message
		}
		return ""
	}
}

// Email fails when value is not a syntactically valid address.
func Email(message string) StringCheck {
	return func(value string) string {
		if std.Var(value, "email") != nil {
			return message
		}
		return ""
	}
}

// CalendarDate fails unless value is YYYY-MM-DD or RFC 3339 naming a real day.
func CalendarDate(message string) StringCheck {
	return func(value string) string {
		if _, err := models.ParseDate(value); err != nil {
			return message
		}
		return ""
	}
}

// OneOf fails unless value is one of allowed.
func OneOf(allowed []string, message string) StringCheck {
	return func(value string) string {
		for _, a := range allowed {
			if value == a {
				return ""
			}
		}
		return message
	}
}

// RequiredString reports requiredMsg when field is missing or blank, otherwise
// runs every check on the trimmed value and reports each failure.
func RequiredString(field, requiredMsg string, checks ...StringCheck) Rule {
	return func(p Payload) []models.FieldError {
		if !p.Present(field) {
			return fieldError(field, requiredMsg)
		}
		return runStringChecks(field, p[field], checks)
	}
}

// OptionalString skips missing, null and blank values; otherwise behaves like RequiredString.
func OptionalString(field string, checks ...StringCheck) Rule {
	return func(p Payload) []models.FieldError {
		if !p.Present(field) {
			return nil
		}
		return runStringChecks(field, p[field], checks)
	}
}

func runStringChecks(field string, raw any, checks []StringCheck) []models.FieldError {
	s, ok := raw.(string)
	if !ok {
		return fieldError(field, fmt.Sprintf("%s must be a string, got %s", field, describe(raw)))
	}
	s = strings.TrimSpace(s)

	var errs []models.FieldError
	for _, check := range checks {
		if msg := check(s); msg != "" {
			errs = append(errs, models.FieldError{Field: field, Message: msg})
		}
	}
	return errs
}

// PositiveInt requires an integer >= 1 (JSON number or numeric string).
func PositiveInt(field, message string) Rule {
	return func(p Payload) []models.FieldError {
		if n, ok := p.Int(field); ok && n >= 1 {
			return nil
		}
		return fieldError(field, message)
	}
}

// NonNegativeNumber requires a finite number >= 0 (JSON number or numeric string).
func NonNegativeNumber(field, message string) Rule {
	return func(p Payload) []models.FieldError {
		if f, ok := p.Float(field); ok && f >= 0 {
			return nil
		}
		return fieldError(field, message)
	}
}

// MaxNumber fails when field holds a number above max. Missing and
// non-numeric values are left to the other rules of the field.
func MaxNumber(field string, max float64, message string) Rule {
	return func(p Payload) []models.FieldError {
		if f, ok := p.Float(field); ok && f > max {
			return fieldError(field, message)
		}
		return nil
	}
}

// TagList accepts an optional array of at most maxLen tags from the enumeration.
// Foreign values fail the whole field, naming every offender.
func TagList(field string, maxLen int) Rule {
	return func(p Payload) []models.FieldError {
		raw, ok := p[field]
		if !ok || raw == nil {
			return nil
		}

		arr, ok := raw.([]any)
		if !ok {
			return fieldError(field, "Tags must be an array")
		}
		if len(arr) > maxLen {
			return fieldError(field, fmt.Sprintf("Maximum %d tags allowed", maxLen))
		}

		var invalid []string
		for _, v := range arr {
			s, ok := v.(string)
			if !ok || !models.IsValidTag(s) {
				invalid = append(invalid, fmt.Sprint(v))
			}
		}
		if len(invalid) > 0 {
			return fieldError(field, "Invalid tags: "+strings.Join(invalid, ", "))
		}
		return nil
	}
}

// ParseID validates a path parameter as an integer >= 1.
func ParseID(field, raw, message string) (int64, error) {
	p := Payload{field: raw}
	if errs := PositiveInt(field, message)(p); len(errs) > 0 {
		return 0, models.ErrValidation(errs)
	}
	id, _ := p.Int(field)
	return id, nil
}
