package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConnectivity      = errors.New("unable to connect to database")
	ErrStorage           = errors.New("statement rejected by database")
	ErrDuplicate         = errors.New("record already exists")
	ErrForeignKey        = errors.New("referenced record does not exist or is still referenced")
	ErrSerialization     = errors.New("concurrent update detected, please retry")
	ErrBookingCancelled  = errors.New("booking is cancelled")
	ErrNoSeatsReserved   = errors.New("booking has no reserved seats")
	ErrSeatCountMismatch = errors.New("number of new seats must match the number of reserved seats")
	ErrSeatNotInShow     = errors.New("seat(s) do not belong to the booking's show")
	ErrSeatOccupied      = errors.New("seat(s) are already reserved")
	ErrSeatPriceMismatch = errors.New("new seats must be priced identically to the reserved seats")
)

// StorageError describes a statement the database rejected. It unwraps to
// ErrStorage and, when the SQLSTATE is recognised, to a more specific
// sentinel such as ErrDuplicate.
type StorageError struct {
	Code       string
	Constraint string
	Message    string
	Kind       error
	Err        error
}

func (e *StorageError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s (%s, constraint %s)", e.Message, e.Code, e.Constraint)
	}

	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}

	return e.Message
}

func (e *StorageError) Unwrap() []error {
	errs := []error{ErrStorage}
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}
