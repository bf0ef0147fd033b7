package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

// withCustomer runs fn inside a transaction that holds a share lock on the
// customer row, so the customer cannot be deleted between the existence check
// and the dependent insert. A missing customer yields a NOT_FOUND error and fn
// is never called.
func withCustomer(ctx context.Context, db *sql.DB, customerID int64, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM customers WHERE id = $1 FOR SHARE`, customerID).Scan(&id)
	if err == sql.ErrNoRows {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", customerID))
	}
	if err != nil {
		return fmt.Errorf("failed to check customer: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
