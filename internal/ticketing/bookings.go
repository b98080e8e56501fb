package ticketing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/metinatakli/ticketmaster/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05.999999999"

// bookingFields selects a booking with bdatetime rendered independently of
// the server's DateStyle.
const bookingFields = `bid, status, to_char(bdatetime, 'YYYY-MM-DD HH24:MI:SS.US') AS bdatetime, seats, sid, email`

// AddBooking stores a booking under MAX(bid)+1. The read and the insert share
// one serializable transaction, so two concurrent callers cannot both claim
// the same id; the loser is retried.
func (s *Service) AddBooking(ctx context.Context, newBooking domain.NewBooking) (domain.Booking, error) {
	var booking domain.Booking

	err := s.observe(ctx, "add_booking", func(ctx context.Context) error {
		if err := s.validateInput(newBooking); err != nil {
			return err
		}

		status, err := domain.ParseNewBookingStatus(newBooking.Status)
		if err != nil {
			return err
		}

		err = retrySerializable(ctx, func() error {
			return s.gateway.RunInTx(ctx, domain.TxOptions{Serializable: true}, func(q domain.Querier) error {
				rs, err := q.ExecuteRows(ctx, `SELECT COALESCE(MAX(bid), 0) + 1 AS next_bid FROM bookings`)
				if err != nil {
					return err
				}

				bid, err := rs.ScalarInt()
				if err != nil {
					return err
				}

				query := `
					INSERT INTO bookings (bid, status, bdatetime, seats, sid, email)
					VALUES ($1, $2, CURRENT_TIMESTAMP, $3, $4, $5)
					RETURNING ` + bookingFields

				rs, err = q.ExecuteRows(
					ctx,
					query,
					bid,
					string(status),
					newBooking.Seats,
					newBooking.ShowID,
					newBooking.Email)

				if err != nil {
					return err
				}

				if rs.Len() == 0 {
					return fmt.Errorf("booking %d was not returned after insert", bid)
				}

				booking, err = toBooking(rs.Records[0])
				return err
			})
		})

		if errors.Is(err, domain.ErrForeignKey) {
			return fmt.Errorf("unknown user %s or show %d: %w", newBooking.Email, newBooking.ShowID, err)
		}

		return err
	})

	return booking, err
}

func (s *Service) GetBooking(ctx context.Context, bid int) (domain.Booking, error) {
	query := `
		SELECT ` + bookingFields + `
		FROM bookings
		WHERE bid = $1
	`

	rs, err := s.gateway.ExecuteRows(ctx, query, bid)
	if err != nil {
		return domain.Booking{}, err
	}

	if rs.Len() == 0 {
		return domain.Booking{}, domain.ErrRecordNotFound
	}

	return toBooking(rs.Records[0])
}

// CancelPendingBookings moves every Pending booking to Cancelled and reports
// how many changed. Running it again changes nothing.
func (s *Service) CancelPendingBookings(ctx context.Context) (int64, error) {
	var cancelled int64

	err := s.observe(ctx, "cancel_pending_bookings", func(ctx context.Context) error {
		query := `
			UPDATE bookings
			SET status = $1
			WHERE status = $2
		`

		var err error
		cancelled, err = s.gateway.ExecuteEffect(ctx, query, string(domain.BookingCancelled), string(domain.BookingPending))
		return err
	})

	return cancelled, err
}

// RemovePayment cancels the booking and then deletes its payments. Both
// statements commit together; the delete only matches once the booking is
// Cancelled. It reports how many payments were removed.
func (s *Service) RemovePayment(ctx context.Context, bid int) (int64, error) {
	var removed int64

	err := s.observe(ctx, "remove_payment", func(ctx context.Context) error {
		if bid < 1 {
			return fmt.Errorf("%w: booking id must be greater than zero", domain.ErrInvalidInput)
		}

		return s.gateway.RunInTx(ctx, domain.TxOptions{}, func(q domain.Querier) error {
			query := `
				UPDATE bookings
				SET status = $1
				WHERE bid = $2
			`

			n, err := q.ExecuteEffect(ctx, query, string(domain.BookingCancelled), bid)
			if err != nil {
				return err
			}

			if n == 0 {
				return fmt.Errorf("booking %d: %w", bid, domain.ErrRecordNotFound)
			}

			query = `
				DELETE FROM payments p
				USING bookings b
				WHERE p.bid = $1
					AND b.bid = p.bid
					AND b.status = $2
			`

			removed, err = q.ExecuteEffect(ctx, query, bid, string(domain.BookingCancelled))
			return err
		})
	})

	return removed, err
}

// ClearCancelledBookings deletes every Cancelled booking. Seats they still
// hold are released and their payments deleted first so the foreign keys
// stay satisfied; no other booking is touched.
func (s *Service) ClearCancelledBookings(ctx context.Context) (int64, error) {
	var deleted int64

	err := s.observe(ctx, "clear_cancelled_bookings", func(ctx context.Context) error {
		cancelled := string(domain.BookingCancelled)

		return s.gateway.RunInTx(ctx, domain.TxOptions{}, func(q domain.Querier) error {
			query := `
				UPDATE showseats ss
				SET bid = NULL
				FROM bookings b
				WHERE ss.bid = b.bid
					AND b.status = $1
			`

			_, err := q.ExecuteEffect(ctx, query, cancelled)
			if err != nil {
				return err
			}

			query = `
				DELETE FROM payments p
				USING bookings b
				WHERE p.bid = b.bid
					AND b.status = $1
			`

			_, err = q.ExecuteEffect(ctx, query, cancelled)
			if err != nil {
				return err
			}

			deleted, err = q.ExecuteEffect(ctx, `DELETE FROM bookings WHERE status = $1`, cancelled)
			return err
		})
	})

	return deleted, err
}

func toBooking(record domain.Record) (domain.Booking, error) {
	var (
		booking domain.Booking
		err     error
	)

	booking.ID, err = strconv.Atoi(record["bid"])
	if err != nil {
		return booking, fmt.Errorf("invalid booking id %q: %w", record["bid"], err)
	}

	booking.Status, err = domain.ParseBookingStatus(record["status"])
	if err != nil {
		return booking, err
	}

	booking.CreatedAt, err = time.Parse(timestampLayout, record["bdatetime"])
	if err != nil {
		return booking, fmt.Errorf("invalid booking timestamp %q: %w", record["bdatetime"], err)
	}

	booking.Seats, err = strconv.Atoi(record["seats"])
	if err != nil {
		return booking, fmt.Errorf("invalid seat count %q: %w", record["seats"], err)
	}

	if sid := record["sid"]; sid != domain.NullValue {
		booking.ShowID, err = strconv.Atoi(sid)
		if err != nil {
			return booking, fmt.Errorf("invalid show id %q: %w", sid, err)
		}
	}

	booking.Email = record["email"]

	return booking, nil
}
