package handler

import (
	"net/http"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
	"github.com/Raymond9734/smallbiz-crm/internal/service"
	"github.com/Raymond9734/smallbiz-crm/internal/validation"
)

const invalidIDMessage = "ID must be a positive integer"

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService service.CustomerService
	errors          *ErrorHandler
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService service.CustomerService, errors *ErrorHandler) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		errors:          errors,
	}
}

// ListCustomers handles GET /customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := models.ParsePage(query.Get("limit"), query.Get("offset"))

	result, err := h.customerService.List(r.Context(), page)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondSuccess(w, result)
}

// GetCustomer handles GET /customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", invalidIDMessage)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	customer, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondSuccess(w, customer)
}

// CreateCustomer handles POST /customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	p, err := bind(w, r, validation.Customer)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	customer, err := h.customerService.Create(r.Context(), customerInput(p))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondCreated(w, customer)
}

// UpdateCustomer handles PUT /customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", invalidIDMessage)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	p, err := bind(w, r, validation.Customer)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	customer, err := h.customerService.Update(r.Context(), id, customerInput(p))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondSuccess(w, customer)
}

// DeleteCustomer handles DELETE /customers/{id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", invalidIDMessage)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.customerService.Delete(r.Context(), id); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondSuccess(w, MessageResponse{Message: "Customer deleted"})
}
