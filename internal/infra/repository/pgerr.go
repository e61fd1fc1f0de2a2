package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
)

// PostgreSQL SQLSTATEs that mean another transaction got there first.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgExclusionViolation   = "23P01"
)

func IsConcurrentWrite(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgExclusionViolation:
		return true
	}
	return false
}

// translate maps driver errors onto the booking taxonomy. Anything else is
// returned unchanged for the caller to wrap.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case IsConcurrentWrite(err):
		return &domain.ConflictError{Reason: domain.ConflictConcurrentWrite}
	}
	return err
}
