package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
	"github.com/Raymond9734/smallbiz-crm/internal/sanitize"
	"github.com/Raymond9734/smallbiz-crm/internal/validation"
)

const maxBodyBytes = 1 << 20

var errInvalidJSON = &models.AppError{
	Code:    models.CodeInvalidJSON,
	Message: "Invalid JSON format",
}

// decodePayload reads a JSON object body, keeping numbers as json.Number
func decodePayload(w http.ResponseWriter, r *http.Request) (validation.Payload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var p validation.Payload
	if err := dec.Decode(&p); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, models.ErrInvalidInput("Request body too large")
		}
		return nil, errInvalidJSON
	}
	if p == nil {
		return nil, errInvalidJSON
	}
	return p, nil
}

// bind decodes the body, rejects it with every field error v collects, and
// strips markup from each string it carries. The validated payload is never
// seen by handlers before sanitization.
func bind(w http.ResponseWriter, r *http.Request, v *validation.Validator) (validation.Payload, error) {
	p, err := decodePayload(w, r)
	if err != nil {
		return nil, err
	}
	if err := v.Validate(p); err != nil {
		return nil, err
	}
	sanitize.Map(p)
	return p, nil
}

// pathID parses a positive integer URL parameter
func pathID(r *http.Request, param, message string) (int64, error) {
	return validation.ParseID(param, chi.URLParam(r, param), message)
}

// optional maps blank strings left over after sanitization to nil
func optional(s *string, normalize func(string) string) *string {
	if s == nil {
		return nil
	}
	v := *s
	if normalize != nil {
		v = normalize(v)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func customerInput(p validation.Payload) models.CustomerInput {
	input := models.CustomerInput{
		Phone:   optional(p.String("phone"), sanitize.Phone),
		Email:   optional(p.String("email"), sanitize.Email),
		Address: optional(p.String("address"), nil),
		Notes:   optional(p.String("notes"), nil),
		Tags:    []models.Tag{},
	}
	if name := p.String("name"); name != nil {
		input.Name = *name
	}
	for _, t := range p.Strings("tags") {
		input.Tags = append(input.Tags, models.Tag(t))
	}
	return input
}

func orderInput(p validation.Payload) models.OrderInput {
	input := models.OrderInput{
		Items: optional(p.String("items"), nil),
		Notes: optional(p.String("notes"), nil),
	}
	input.CustomerID, _ = p.Int("customer_id")
	input.OrderDate, _ = p.Date("order_date")
	input.TotalAmount, _ = p.Float("total_amount")
	if status := p.String("status"); status != nil {
		input.Status = *status
	}
	return input
}

func followupInput(p validation.Payload) models.FollowupInput {
	input := models.FollowupInput{
		Message: optional(p.String("message"), nil),
	}
	input.CustomerID, _ = p.Int("customer_id")
	input.DueDate, _ = p.Date("due_date")
	return input
}
