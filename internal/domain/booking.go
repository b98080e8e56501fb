package domain

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingPaid      BookingStatus = "Paid"
	BookingCancelled BookingStatus = "Cancelled"
)

var bookingStatuses = []BookingStatus{BookingPending, BookingPaid, BookingCancelled}

// ParseBookingStatus matches s case-insensitively against the known statuses
// and returns the canonical spelling.
func ParseBookingStatus(s string) (BookingStatus, error) {
	s = strings.TrimSpace(s)

	for _, status := range bookingStatuses {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}

	return "", fmt.Errorf("%w: unknown booking status %q", ErrInvalidInput, s)
}

// ParseNewBookingStatus is ParseBookingStatus restricted to the statuses a
// booking may be created with.
func ParseNewBookingStatus(s string) (BookingStatus, error) {
	status, err := ParseBookingStatus(s)
	if err != nil {
		return "", err
	}

	if !status.AllowedOnCreate() {
		return "", fmt.Errorf("%w: a booking cannot be created as %s", ErrInvalidInput, status)
	}

	return status, nil
}

func (s BookingStatus) AllowedOnCreate() bool {
	return s == BookingPaid || s == BookingPending
}

type Booking struct {
	ID        int
	Status    BookingStatus
	CreatedAt time.Time
	Seats     int
	ShowID    int
	Email     string
}

type NewBooking struct {
	Email  string `validate:"required,email,max=64"`
	Seats  int    `validate:"required,min=1"`
	ShowID int    `validate:"required,min=1"`
	Status string `validate:"required,new_booking_status"`
}

// RemovedShows summarizes RemoveShowsOnDate.
type RemovedShows struct {
	PlaysRemoved      int64
	BookingsCancelled int64
	// TheaterKnown is false when no theater has the given name. Same day
	// bookings are cancelled either way.
	TheaterKnown bool
}
