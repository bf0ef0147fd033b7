package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Raymond9734/smallbiz-crm/internal/db"
	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

// FollowupRepository defines the interface for followup data access
type FollowupRepository interface {
	Create(ctx context.Context, followup *models.Followup) error
	GetByID(ctx context.Context, id int64) (*models.Followup, error)
	ListPending(ctx context.Context) ([]*models.Followup, error)
	// MarkCompleted moves a pending followup to completed. It reports false,
	// without error, when the followup exists but was already completed.
	MarkCompleted(ctx context.Context, id int64) (*models.Followup, bool, error)
}

type followupRepository struct {
	db *sql.DB
}

// NewFollowupRepository creates a new followup repository
func NewFollowupRepository(db *sql.DB) FollowupRepository {
	return &followupRepository{db: db}
}

const followupColumns = `id, customer_id, followup_date, notes, status, completed_at, created_at`

func scanFollowup(row rowScanner) (*models.Followup, error) {
	f := &models.Followup{}
	err := row.Scan(
		&f.ID,
		&f.CustomerID,
		&f.DueDate.Time,
		&f.Message,
		&f.Status,
		&f.CompletedAt,
		&f.CreatedAt,
	)
	return f, err
}

// Create inserts a followup after confirming, in the same transaction, that its customer exists
func (r *followupRepository) Create(ctx context.Context, followup *models.Followup) error {
	query := `
		INSERT INTO followups (customer_id, followup_date, notes, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return withCustomer(ctx, r.db, followup.CustomerID, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(
			ctx,
			query,
			followup.CustomerID,
			followup.DueDate.Time,
			followup.Message,
			followup.Status,
		).Scan(&followup.ID, &followup.CreatedAt)

		if err != nil {
			return fmt.Errorf("failed to create followup: %w", db.TranslateError(err))
		}
		return nil
	})
}

// GetByID retrieves a followup by ID
func (r *followupRepository) GetByID(ctx context.Context, id int64) (*models.Followup, error) {
	query := `SELECT ` + followupColumns + ` FROM followups WHERE id = $1`

	followup, err := scanFollowup(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("followup with ID %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get followup: %w", err)
	}

	return followup, nil
}

// ListPending retrieves pending followups with customer name and phone, earliest due date first
func (r *followupRepository) ListPending(ctx context.Context) ([]*models.Followup, error) {
	query := `
		SELECT f.id, f.customer_id, f.followup_date, f.notes, f.status, f.completed_at, f.created_at,
		       c.name, c.phone
		FROM followups f
		JOIN customers c ON f.customer_id = c.id
		WHERE f.status = $1
		ORDER BY f.followup_date ASC, f.id ASC`

	rows, err := r.db.QueryContext(ctx, query, models.FollowupStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list followups: %w", err)
	}
	defer rows.Close()

	followups := []*models.Followup{}
	for rows.Next() {
		f := &models.Followup{}
		err := rows.Scan(
			&f.ID,
			&f.CustomerID,
			&f.DueDate.Time,
			&f.Message,
			&f.Status,
			&f.CompletedAt,
			&f.CreatedAt,
			&f.CustomerName,
			&f.CustomerPhone,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan followup: %w", err)
		}
		followups = append(followups, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating followups: %w", err)
	}

	return followups, nil
}

// MarkCompleted transitions a pending followup to completed
func (r *followupRepository) MarkCompleted(ctx context.Context, id int64) (*models.Followup, bool, error) {
	query := `
		UPDATE followups
		SET status = $1, completed_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + followupColumns

	followup, err := scanFollowup(r.db.QueryRowContext(ctx, query, models.FollowupStatusCompleted, id, models.FollowupStatusPending))
	if err == nil {
		return followup, true, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("failed to complete followup: %w", err)
	}

	// Nothing pending under this id: either unknown or already completed.
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
