package handler

import (
	"net/http"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
	"github.com/Raymond9734/smallbiz-crm/internal/service"
	"github.com/Raymond9734/smallbiz-crm/internal/validation"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orderService service.OrderService
	errors       *ErrorHandler
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService service.OrderService, errors *ErrorHandler) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		errors:       errors,
	}
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := models.ParsePage(query.Get("limit"), query.Get("offset"))

	result, err := h.orderService.List(r.Context(), page)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondSuccess(w, result)
}

// ListCustomerOrders handles GET /orders/customer/{customerId}
func (h *OrderHandler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerId", "Customer ID must be a positive integer")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	orders, err := h.orderService.ListByCustomer(r.Context(), customerID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondSuccess(w, orders)
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	p, err := bind(w, r, validation.Order)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	order, err := h.orderService.Create(r.Context(), orderInput(p))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondCreated(w, order)
}
