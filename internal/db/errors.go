package db

import (
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

// PostgreSQL SQLSTATE codes the store may raise on writes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	classIntegrity          = "23"
	classDataException      = "22"
)

// TranslateError converts driver constraint violations and data exceptions
// (numeric overflow, over-long values) into the application's typed errors.
// Anything else is returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	code := string(pqErr.Code)
	switch {
	case code == codeUniqueViolation:
		return &models.AppError{
			Code:    models.CodeConflict,
			Message: "A record with this information already exists",
			Err:     models.ErrConflict,
		}
	case code == codeForeignKeyViolation:
		return &models.AppError{
			Code:    models.CodeInvalidReference,
			Message: "Referenced record does not exist",
			Err:     models.ErrInvalidReference,
		}
	case strings.HasPrefix(code, classIntegrity), strings.HasPrefix(code, classDataException):
		return &models.AppError{
			Code:    models.CodeConstraintViolation,
			Message: "The provided data violates database constraints",
			Err:     models.ErrConstraint,
		}
	default:
		return err
	}
}
