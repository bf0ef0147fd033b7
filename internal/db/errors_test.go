package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantIs   error
	}{
		{"unique violation", &pq.Error{Code: "23505"}, models.CodeConflict, models.ErrConflict},
		{"foreign key violation", &pq.Error{Code: "23503"}, models.CodeInvalidReference, models.ErrInvalidReference},
		{"check violation", &pq.Error{Code: "23514"}, models.CodeConstraintViolation, models.ErrConstraint},
		{"not null violation", &pq.Error{Code: "23502"}, models.CodeConstraintViolation, models.ErrConstraint},
		{"numeric overflow", &pq.Error{Code: "22003"}, models.CodeConstraintViolation, models.ErrConstraint},
		{"value too long", &pq.Error{Code: "22001"}, models.CodeConstraintViolation, models.ErrConstraint},
		{"wrapped unique violation", fmt.Errorf("failed to create: %w", &pq.Error{Code: "23505"}), models.CodeConflict, models.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err)

			var appErr *models.AppError
			require.True(t, errors.As(got, &appErr))
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.ErrorIs(t, got, tt.wantIs)
		})
	}
}

func TestTranslateError_PassThrough(t *testing.T) {
	assert.Nil(t, TranslateError(nil))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, TranslateError(plain))

	syntax := &pq.Error{Code: "42601"}
	assert.Equal(t, error(syntax), TranslateError(syntax))
}
