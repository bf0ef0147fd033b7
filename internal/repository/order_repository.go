package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Raymond9734/smallbiz-crm/internal/db"
	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context, page models.Page) ([]*models.Order, int64, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*models.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts an order after confirming, in the same transaction, that its customer exists
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (customer_id, order_date, total_amount, status, items, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return withCustomer(ctx, r.db, order.CustomerID, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(
			ctx,
			query,
			order.CustomerID,
			order.OrderDate.Time,
			order.TotalAmount,
			order.Status,
			order.Items,
			order.Notes,
		).Scan(&order.ID, &order.CreatedAt)

		if err != nil {
			return fmt.Errorf("failed to create order: %w", db.TranslateError(err))
		}
		return nil
	})
}

// List retrieves orders with their customer name, latest order date first
func (r *orderRepository) List(ctx context.Context, page models.Page) ([]*models.Order, int64, error) {
	page.Normalize()

	var totalCount int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT o.id, o.customer_id, c.name, o.order_date, o.total_amount, o.status, o.items, o.notes, o.created_at
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		ORDER BY o.order_date DESC, o.id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		order := &models.Order{}
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.CustomerName,
			&order.OrderDate.Time,
			&order.TotalAmount,
			&order.Status,
			&order.Items,
			&order.Notes,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, totalCount, nil
}

// ListByCustomer retrieves every order of one customer, latest order date first
func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*models.Order, error) {
	query := `
		SELECT id, customer_id, order_date, total_amount, status, items, notes, created_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		order := &models.Order{}
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.OrderDate.Time,
			&order.TotalAmount,
			&order.Status,
			&order.Items,
			&order.Notes,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
