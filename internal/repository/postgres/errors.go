package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"toolshare-backend/internal/repository"

	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

// mapError turns driver errors into repository sentinels, annotated with the operation.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return &repository.ConstraintError{Sentinel: repository.ErrDuplicate, Constraint: pqErr.Constraint, Cause: err}
		case codeForeignKeyViolation:
			return &repository.ConstraintError{Sentinel: repository.ErrForeignKey, Constraint: pqErr.Constraint, Cause: err}
		case codeCheckViolation, codeNotNullViolation:
			return &repository.ConstraintError{Sentinel: repository.ErrCheckViolation, Constraint: pqErr.Constraint, Cause: err}
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
