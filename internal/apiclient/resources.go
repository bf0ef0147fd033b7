package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

// CustomerRequest is the body for creating or replacing a customer
type CustomerRequest struct {
	Name    string       `json:"name"`
	Phone   *string      `json:"phone,omitempty"`
	Email   *string      `json:"email,omitempty"`
	Address *string      `json:"address,omitempty"`
	Tags    []models.Tag `json:"tags,omitempty"`
	Notes   *string      `json:"notes,omitempty"`
}

// OrderRequest is the body for creating an order. Dates are YYYY-MM-DD.
type OrderRequest struct {
	CustomerID  int64   `json:"customer_id"`
	OrderDate   string  `json:"order_date"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status,omitempty"`
	Items       *string `json:"items,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// FollowupRequest is the body for creating a followup
type FollowupRequest struct {
	CustomerID int64   `json:"customer_id"`
	DueDate    string  `json:"due_date"`
	Message    *string `json:"message,omitempty"`
}

func pageQuery(page models.Page) url.Values {
	q := url.Values{}
	if page.Limit > 0 {
		q.Set("limit", strconv.Itoa(page.Limit))
	}
	if page.Offset > 0 {
		q.Set("offset", strconv.Itoa(page.Offset))
	}
	return q
}

// ListCustomers fetches one page of customers
func (c *Client) ListCustomers(ctx context.Context, page models.Page) (*models.ListResult[*models.Customer], error) {
	var out models.ListResult[*models.Customer]
	if err := c.getJSON(ctx, "/customers", pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCustomer fetches a customer by ID
func (c *Client) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var out models.Customer
	if err := c.getJSON(ctx, fmt.Sprintf("/customers/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCustomer creates a customer
func (c *Client) CreateCustomer(ctx context.Context, req CustomerRequest) (*models.Customer, error) {
	var out models.Customer
	if err := c.sendJSON(ctx, http.MethodPost, "/customers", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCustomer replaces every field of a customer
func (c *Client) UpdateCustomer(ctx context.Context, id int64, req CustomerRequest) (*models.Customer, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var out models.Customer
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/customers/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCustomer deletes a customer with its orders and followups
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/customers/%d", id), nil, nil)
}

// ListOrders fetches one page of orders
func (c *Client) ListOrders(ctx context.Context, page models.Page) (*models.ListResult[*models.Order], error) {
	var out models.ListResult[*models.Order]
	if err := c.getJSON(ctx, "/orders", pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCustomerOrders fetches every order of one customer
func (c *Client) ListCustomerOrders(ctx context.Context, customerID int64) ([]*models.Order, error) {
	if err := checkID(customerID); err != nil {
		return nil, err
	}
	var out []*models.Order
	if err := c.getJSON(ctx, fmt.Sprintf("/orders/customer/%d", customerID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder creates an order
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*models.Order, error) {
	var out models.Order
	if err := c.sendJSON(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFollowups fetches pending followups, earliest due first
func (c *Client) ListFollowups(ctx context.Context) ([]*models.Followup, error) {
	var out []*models.Followup
	if err := c.getJSON(ctx, "/followups", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFollowup creates a followup
func (c *Client) CreateFollowup(ctx context.Context, req FollowupRequest) (*models.Followup, error) {
	var out models.Followup
	if err := c.sendJSON(ctx, http.MethodPost, "/followups", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteFollowup marks a followup completed
func (c *Client) CompleteFollowup(ctx context.Context, id int64) (*models.Followup, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var out models.Followup
	if err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/followups/%d/complete", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportCustomers downloads the customer spreadsheet
func (c *Client) ExportCustomers(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/followups/export", nil, nil)
}
