package models

import (
	"fmt"
	"strings"
	"time"
)

// Order status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Field bounds for orders
const (
	OrderItemsMaxLen = 5000
	OrderNotesMaxLen = 5000
	// OrderTotalMax is the largest value NUMERIC(14, 2) holds.
	OrderTotalMax = 999999999999.99
)

// DateLayout is the calendar date format used on the wire for order and due dates
const DateLayout = "2006-01-02"

// Order represents a customer order. Orders are immutable once created.
type Order struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	OrderDate    Date      `json:"order_date"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	Items        *string   `json:"items"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderInput is the validated and sanitized payload for order creation
type OrderInput struct {
	CustomerID  int64
	OrderDate   time.Time
	TotalAmount float64
	Status      string
	Items       *string
	Notes       *string
}

// IsValidOrderStatus checks if the order status is valid
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Date is a calendar date serialized as YYYY-MM-DD
type Date struct {
	time.Time
}

// MarshalJSON writes the date without a time component
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON accepts YYYY-MM-DD or a full RFC 3339 timestamp
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDate parses a calendar date given as YYYY-MM-DD or RFC 3339
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
