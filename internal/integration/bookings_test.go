package integration_test

import (
	"context"
	"testing"

	"github.com/metinatakli/ticketmaster/internal/domain"
	"github.com/stretchr/testify/suite"
)

type BookingTestSuite struct {
	BaseSuite
}

func TestBookingSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(BookingTestSuite))
}

func (s *BookingTestSuite) newUser(email string) {
	err := s.service.AddUser(context.Background(), domain.NewUser{
		Email:        email,
		LastName:     "Smith",
		FirstName:    "Ada",
		Phone:        "9515550100",
		PasswordHash: domain.HashPassword("password"),
	})
	s.Require().NoError(err)
}

func (s *BookingTestSuite) TestAddUserRoundTrip() {
	ctx := context.Background()
	s.newUser("ada@example.com")

	user, err := s.service.GetUser(ctx, "ada@example.com")
	s.Require().NoError(err)

	s.Equal(&domain.User{
		Email:        "ada@example.com",
		LastName:     "Smith",
		FirstName:    "Ada",
		Phone:        "9515550100",
		PasswordHash: domain.HashPassword("password"),
	}, user)

	err = s.service.AddUser(ctx, domain.NewUser{
		Email:        "ada@example.com",
		LastName:     "Other",
		FirstName:    "Ada",
		PasswordHash: domain.HashPassword("other"),
	})
	s.ErrorIs(err, domain.ErrDuplicate)

	user, err = s.service.GetUser(ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Equal("Smith", user.LastName)
}

func (s *BookingTestSuite) TestAddUserKeepsPhoneDigits() {
	ctx := context.Background()

	for email, phone := range map[string]string{
		"zero@example.com":    "0123456789",
		"zeroes@example.com":  "0000000042",
		"nophone@example.com": "",
	} {
		err := s.service.AddUser(ctx, domain.NewUser{
			Email:        email,
			LastName:     "Lovelace",
			FirstName:    "Ada",
			Phone:        phone,
			PasswordHash: domain.HashPassword("password"),
		})
		s.Require().NoError(err)

		user, err := s.service.GetUser(ctx, email)
		s.Require().NoError(err)
		s.Equal(phone, user.Phone, email)
	}
}

func (s *BookingTestSuite) TestBookingIdsIncrease() {
	ctx := context.Background()
	last := TestMaxBookingId

	for _, status := range []string{"paid", "Pending", "PAID"} {
		booking, err := s.service.AddBooking(ctx, domain.NewBooking{
			Email:  TestUserEmail,
			Seats:  1,
			ShowID: TestEveningShowId,
			Status: status,
		})
		s.Require().NoError(err)

		s.Greater(booking.ID, last)
		last = booking.ID
	}
}

func (s *BookingTestSuite) TestAddBookingUnknownReferences() {
	ctx := context.Background()

	_, err := s.service.AddBooking(ctx, domain.NewBooking{
		Email: TestUserEmail, Seats: 1, ShowID: 404, Status: "paid",
	})
	s.ErrorIs(err, domain.ErrForeignKey)

	_, err = s.service.AddBooking(ctx, domain.NewBooking{
		Email: "nobody@example.com", Seats: 1, ShowID: TestEveningShowId, Status: "paid",
	})
	s.ErrorIs(err, domain.ErrForeignKey)

	s.Equal(TestMaxBookingId, countRows(s.T(), s.db, `SELECT COUNT(*) FROM bookings`))
}

func (s *BookingTestSuite) TestBookingLifecycle() {
	ctx := context.Background()
	s.newUser("a@x.com")

	booking, err := s.service.AddBooking(ctx, domain.NewBooking{
		Email:  "a@x.com",
		Seats:  2,
		ShowID: TestEveningShowId,
		Status: "pending",
	})
	s.Require().NoError(err)
	s.Equal(domain.BookingPending, booking.Status)
	s.Equal(domain.BookingPending, s.bookingStatus(booking.ID))

	_, err = s.service.CancelPendingBookings(ctx)
	s.Require().NoError(err)
	s.Equal(domain.BookingCancelled, s.bookingStatus(booking.ID))

	_, err = s.service.ClearCancelledBookings(ctx)
	s.Require().NoError(err)

	_, err = s.service.GetBooking(ctx, booking.ID)
	s.ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *BookingTestSuite) TestCancelPendingBookingsIsIdempotent() {
	ctx := context.Background()

	n, err := s.service.CancelPendingBookings(ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	n, err = s.service.CancelPendingBookings(ctx)
	s.Require().NoError(err)
	s.Zero(n)

	s.Equal(domain.BookingPaid, s.bookingStatus(TestPaidBookingId))
	s.Equal(domain.BookingCancelled, s.bookingStatus(TestPendingBookingId))
	s.Equal(domain.BookingCancelled, s.bookingStatus(TestCancelledBookingId))
	s.Equal(domain.BookingCancelled, s.bookingStatus(TestSameDayPendingId))
}

func (s *BookingTestSuite) TestClearCancelledBookingsRemovesOnlyCancelled() {
	ctx := context.Background()

	n, err := s.service.ClearCancelledBookings(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	_, err = s.service.GetBooking(ctx, TestCancelledBookingId)
	s.ErrorIs(err, domain.ErrRecordNotFound)

	s.Equal(domain.BookingPaid, s.bookingStatus(TestPaidBookingId))
	s.Equal(domain.BookingPending, s.bookingStatus(TestPendingBookingId))
	s.Equal(domain.BookingPending, s.bookingStatus(TestSameDayPendingId))

	s.Equal(0, countRows(s.T(), s.db, `SELECT COUNT(*) FROM showseats WHERE ssid = 2 AND bid IS NOT NULL`))
	s.Equal(1, countRows(s.T(), s.db, `SELECT COUNT(*) FROM payments`))

	n, err = s.service.ClearCancelledBookings(ctx)
	s.Require().NoError(err)
	s.Zero(n)
	s.Equal(TestMaxBookingId-1, countRows(s.T(), s.db, `SELECT COUNT(*) FROM bookings`))
}

func (s *BookingTestSuite) TestRemovePayment() {
	ctx := context.Background()

	removed, err := s.service.RemovePayment(ctx, TestPaidBookingId)
	s.Require().NoError(err)
	s.Equal(int64(1), removed)

	s.Equal(domain.BookingCancelled, s.bookingStatus(TestPaidBookingId))
	s.Equal(0, countRows(s.T(), s.db, `SELECT COUNT(*) FROM payments WHERE bid = $1`, TestPaidBookingId))
	s.Equal(1, countRows(s.T(), s.db, `SELECT COUNT(*) FROM payments WHERE bid = $1`, TestCancelledBookingId))

	_, err = s.service.RemovePayment(ctx, 404)
	s.ErrorIs(err, domain.ErrRecordNotFound)
}
