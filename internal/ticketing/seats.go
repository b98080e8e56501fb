package ticketing

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/metinatakli/ticketmaster/internal/domain"
	"github.com/shopspring/decimal"
)

// ChangeSeatsForBooking moves a booking onto other seats of the same show.
// The replacement seats must be free, as many as the seats currently held,
// and priced identically as a set. Nothing changes unless every check passes.
func (s *Service) ChangeSeatsForBooking(ctx context.Context, change domain.SeatChange) error {
	return s.observe(ctx, "change_seats_for_booking", func(ctx context.Context) error {
		if err := s.validateInput(change); err != nil {
			return err
		}

		requested := make(map[int]struct{}, len(change.NewSeatIDs))
		for _, id := range change.NewSeatIDs {
			if _, dup := requested[id]; dup {
				return fmt.Errorf("%w: seat %d requested more than once", domain.ErrInvalidInput, id)
			}
			requested[id] = struct{}{}
		}

		return s.gateway.RunInTx(ctx, domain.TxOptions{}, func(q domain.Querier) error {
			booking, err := lockBooking(ctx, q, change.BookingID)
			if err != nil {
				return err
			}

			if booking.Status == domain.BookingCancelled {
				return fmt.Errorf("booking %d: %w", booking.ID, domain.ErrBookingCancelled)
			}

			current, err := reservedSeats(ctx, q, booking.ID)
			if err != nil {
				return err
			}

			if len(current) == 0 || booking.ShowID == 0 {
				return fmt.Errorf("booking %d: %w", booking.ID, domain.ErrNoSeatsReserved)
			}

			if len(current) != len(change.NewSeatIDs) {
				return fmt.Errorf("%w: booking holds %d seat(s), %d given",
					domain.ErrSeatCountMismatch, len(current), len(change.NewSeatIDs))
			}

			offered, err := showSeats(ctx, q, booking.ShowID)
			if err != nil {
				return err
			}

			replacements := make([]domain.ShowSeat, 0, len(change.NewSeatIDs))
			for _, id := range change.NewSeatIDs {
				seat, ok := offered[id]
				if !ok {
					return fmt.Errorf("%w: seat %d", domain.ErrSeatNotInShow, id)
				}

				if !seat.free && seat.BookingID != booking.ID {
					return fmt.Errorf("%w: seat %d", domain.ErrSeatOccupied, id)
				}

				replacements = append(replacements, seat.ShowSeat)
			}

			if !samePrices(current, replacements) {
				return domain.ErrSeatPriceMismatch
			}

			_, err = q.ExecuteEffect(ctx, `UPDATE showseats SET bid = NULL WHERE bid = $1`, booking.ID)
			if err != nil {
				return err
			}

			ids := make([]int32, len(change.NewSeatIDs))
			for i, id := range change.NewSeatIDs {
				ids[i] = int32(id)
			}

			n, err := q.ExecuteEffect(ctx, `UPDATE showseats SET bid = $1 WHERE ssid = ANY($2::int[])`, booking.ID, ids)
			if err != nil {
				return err
			}

			if n != int64(len(ids)) {
				return fmt.Errorf("%w: only %d of %d seats could be assigned", domain.ErrSeatOccupied, n, len(ids))
			}

			return nil
		})
	})
}

// ListBookingSeats lists the seats currently held by a booking.
func (s *Service) ListBookingSeats(ctx context.Context, bid int) (*domain.ResultSet, error) {
	query := `
		SELECT ss.ssid, c.sno, c.stype, ss.price
		FROM showseats ss
		JOIN cinemaseats c ON c.csid = ss.csid
		WHERE ss.bid = $1
		ORDER BY c.sno
	`

	return s.gateway.ExecuteRows(ctx, query, bid)
}

// ListAvailableSeats lists the free seats of the booking's show. Seats left
// behind by cancelled bookings count as free.
func (s *Service) ListAvailableSeats(ctx context.Context, bid int) (*domain.ResultSet, error) {
	query := `
		SELECT ss.ssid, c.sno, c.stype, ss.price
		FROM bookings b
		JOIN showseats ss ON ss.sid = b.sid
		JOIN cinemaseats c ON c.csid = ss.csid
		LEFT JOIN bookings holder ON holder.bid = ss.bid
		WHERE b.bid = $1
			AND (ss.bid IS NULL OR holder.status = $2)
		ORDER BY c.sno
	`

	return s.gateway.ExecuteRows(ctx, query, bid, string(domain.BookingCancelled))
}

type offeredSeat struct {
	domain.ShowSeat
	free bool
}

func lockBooking(ctx context.Context, q domain.Querier, bid int) (domain.Booking, error) {
	query := `
		SELECT ` + bookingFields + `
		FROM bookings
		WHERE bid = $1
		FOR UPDATE
	`

	rs, err := q.ExecuteRows(ctx, query, bid)
	if err != nil {
		return domain.Booking{}, err
	}

	if rs.Len() == 0 {
		return domain.Booking{}, fmt.Errorf("booking %d: %w", bid, domain.ErrRecordNotFound)
	}

	return toBooking(rs.Records[0])
}

func reservedSeats(ctx context.Context, q domain.Querier, bid int) ([]domain.ShowSeat, error) {
	query := `
		SELECT ss.ssid, ss.sid, c.sno, ss.bid, ss.price
		FROM bookings b
		JOIN showseats ss ON ss.bid = b.bid
		JOIN cinemaseats c ON c.csid = ss.csid
		WHERE b.bid = $1
		ORDER BY ss.ssid
		FOR UPDATE OF ss
	`

	rs, err := q.ExecuteRows(ctx, query, bid)
	if err != nil {
		return nil, err
	}

	seats := make([]domain.ShowSeat, 0, rs.Len())
	for _, record := range rs.Records {
		seat, err := toShowSeat(record)
		if err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	return seats, nil
}

func showSeats(ctx context.Context, q domain.Querier, sid int) (map[int]offeredSeat, error) {
	query := `
		SELECT ss.ssid, ss.sid, c.sno, ss.bid, ss.price, holder.status
		FROM showseats ss
		JOIN cinemaseats c ON c.csid = ss.csid
		LEFT JOIN bookings holder ON holder.bid = ss.bid
		WHERE ss.sid = $1
		FOR UPDATE OF ss
	`

	rs, err := q.ExecuteRows(ctx, query, sid)
	if err != nil {
		return nil, err
	}

	seats := make(map[int]offeredSeat, rs.Len())
	for _, record := range rs.Records {
		seat, err := toShowSeat(record)
		if err != nil {
			return nil, err
		}

		free := seat.BookingID == 0 || record["status"] == string(domain.BookingCancelled)
		seats[seat.ID] = offeredSeat{ShowSeat: seat, free: free}
	}

	return seats, nil
}

func toShowSeat(record domain.Record) (domain.ShowSeat, error) {
	var (
		seat domain.ShowSeat
		err  error
	)

	seat.ID, err = strconv.Atoi(record["ssid"])
	if err != nil {
		return seat, fmt.Errorf("invalid show seat id %q: %w", record["ssid"], err)
	}

	seat.ShowID, err = strconv.Atoi(record["sid"])
	if err != nil {
		return seat, fmt.Errorf("invalid show id %q: %w", record["sid"], err)
	}

	seat.SeatNumber, err = strconv.Atoi(record["sno"])
	if err != nil {
		return seat, fmt.Errorf("invalid seat number %q: %w", record["sno"], err)
	}

	if bid := record["bid"]; bid != domain.NullValue {
		seat.BookingID, err = strconv.Atoi(bid)
		if err != nil {
			return seat, fmt.Errorf("invalid booking id %q: %w", bid, err)
		}
	}

	seat.Price, err = decimal.NewFromString(record["price"])
	if err != nil {
		return seat, fmt.Errorf("invalid seat price %q: %w", record["price"], err)
	}

	return seat, nil
}

// samePrices compares the two seat sets' prices as multisets.
func samePrices(a, b []domain.ShowSeat) bool {
	if len(a) != len(b) {
		return false
	}

	pa, pb := sortedPrices(a), sortedPrices(b)
	for i := range pa {
		if !pa[i].Equal(pb[i]) {
			return false
		}
	}

	return true
}

func sortedPrices(seats []domain.ShowSeat) []decimal.Decimal {
	prices := make([]decimal.Decimal, len(seats))
	for i, seat := range seats {
		prices[i] = seat.Price
	}

	sort.Slice(prices, func(i, j int) bool {
		return prices[i].LessThan(prices[j])
	})

	return prices
}
