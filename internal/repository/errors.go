package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/metinatakli/ticketmaster/internal/domain"
)

// toStorageError maps driver errors onto *domain.StorageError so callers can
// branch with errors.Is on the domain sentinels.
func toStorageError(err error) error {
	if err == nil {
		return nil
	}

	var storageErr *domain.StorageError
	if errors.As(err, &storageErr) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &domain.StorageError{
			Code:       pgErr.Code,
			Constraint: pgErr.ConstraintName,
			Message:    pgErr.Message,
			Kind:       classify(pgErr.Code),
			Err:        err,
		}
	}

	return &domain.StorageError{
		Message: err.Error(),
		Err:     err,
	}
}

func classify(code string) error {
	switch {
	case code == pgerrcode.UniqueViolation:
		return domain.ErrDuplicate
	case code == pgerrcode.ForeignKeyViolation:
		return domain.ErrForeignKey
	case code == pgerrcode.SerializationFailure, code == pgerrcode.DeadlockDetected:
		return domain.ErrSerialization
	case pgerrcode.IsConnectionException(code):
		return domain.ErrConnectivity
	case pgerrcode.IsDataException(code), code == pgerrcode.CheckViolation, code == pgerrcode.NotNullViolation:
		return domain.ErrInvalidInput
	default:
		return nil
	}
}
