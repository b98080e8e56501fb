package domain

import "github.com/shopspring/decimal"

// ShowSeat is a cinema seat offered for one show, optionally held by a booking.
type ShowSeat struct {
	ID         int
	ShowID     int
	SeatNumber int
	BookingID  int
	Price      decimal.Decimal
}

type SeatChange struct {
	BookingID  int   `validate:"required,min=1"`
	NewSeatIDs []int `validate:"required,min=1,dive,min=1"`
}
