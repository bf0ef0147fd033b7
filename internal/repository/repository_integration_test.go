package repository

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/smallbiz-crm/internal/db"
	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

// openTestDB connects to TEST_DATABASE_URL, applies migrations and empties the tables.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.New(db.Config{DSN: dsn, MaxOpenConns: 5, MaxIdleConns: 1, ConnMaxLifetime: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx, conn.DB, slog.New(slog.NewTextHandler(io.Discard, nil))))
	_, err = conn.ExecContext(ctx, `TRUNCATE followups, orders, customers RESTART IDENTITY`)
	require.NoError(t, err)

	return conn.DB
}

func TestCustomerRepository_Lifecycle(t *testing.T) {
	sqlDB := openTestDB(t)
	ctx := context.Background()
	repo := NewCustomerRepository(sqlDB)

	phone := "0812-3456-7890"
	customer := &models.Customer{Name: "Budi Santoso", Phone: &phone, Tags: []models.Tag{models.TagLangganan}}
	require.NoError(t, repo.Create(ctx, customer))
	assert.NotZero(t, customer.ID)

	got, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", got.Name)
	assert.Equal(t, []models.Tag{models.TagLangganan}, got.Tags)
	assert.Nil(t, got.Email)

	got.Name = "Budi S."
	got.Tags = []models.Tag{}
	require.NoError(t, repo.Update(ctx, got))

	list, total, err := repo.List(ctx, models.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Budi S.", list[0].Name)

	require.NoError(t, repo.Delete(ctx, customer.ID))
	assert.ErrorIs(t, repo.Delete(ctx, customer.ID), models.ErrNotFound)

	_, err = repo.GetByID(ctx, customer.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDependentCreate_MissingCustomer(t *testing.T) {
	sqlDB := openTestDB(t)
	ctx := context.Background()

	orders := NewOrderRepository(sqlDB)
	err := orders.Create(ctx, &models.Order{
		CustomerID:  999999,
		OrderDate:   models.Date{Time: time.Now()},
		TotalAmount: 10,
		Status:      models.OrderStatusPending,
	})
	assert.ErrorIs(t, err, models.ErrNotFound)

	list, err := orders.ListByCustomer(ctx, 999999)
	require.NoError(t, err)
	assert.Empty(t, list)

	followups := NewFollowupRepository(sqlDB)
	err = followups.Create(ctx, &models.Followup{
		CustomerID: 999999,
		DueDate:    models.Date{Time: time.Now()},
		Status:     models.FollowupStatusPending,
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFollowupRepository_MarkCompletedTwice(t *testing.T) {
	sqlDB := openTestDB(t)
	ctx := context.Background()

	customer := &models.Customer{Name: "Siti"}
	require.NoError(t, NewCustomerRepository(sqlDB).Create(ctx, customer))

	repo := NewFollowupRepository(sqlDB)
	followup := &models.Followup{CustomerID: customer.ID, DueDate: models.Date{Time: time.Now()}, Status: models.FollowupStatusPending}
	require.NoError(t, repo.Create(ctx, followup))

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Siti", pending[0].CustomerName)

	first, changed, err := repo.MarkCompleted(ctx, followup.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.FollowupStatusCompleted, first.Status)
	require.NotNil(t, first.CompletedAt)

	second, changed, err := repo.MarkCompleted(ctx, followup.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, first.CompletedAt.Equal(*second.CompletedAt))

	_, _, err = repo.MarkCompleted(ctx, followup.ID+100)
	assert.ErrorIs(t, err, models.ErrNotFound)

	pending, err = repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
