package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/DS1003/blog-moomel-sub001/pkg/apperr"
)

// isUniqueViolation matches the duplicate-key errors of both drivers we run
// against (Postgres in production, SQLite in tests).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// translateDBError maps persistence failures into the app error taxonomy so
// handlers never see raw driver errors.
func translateDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("record not found")
	case isUniqueViolation(err):
		return apperr.Conflict("already exists")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperr.Transient("persistence call timed out")
	default:
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return err
		}
		return apperr.Transient(err.Error())
	}
}
