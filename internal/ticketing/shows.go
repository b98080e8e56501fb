package ticketing

import (
	"context"

	"github.com/metinatakli/ticketmaster/internal/domain"
)

// RemoveShowsOnDate unassigns every show on date from the named theater and
// cancels every booking made on that date, at any theater. Both statements
// commit together. An unknown theater removes no plays but still cancels
// the day's bookings.
func (s *Service) RemoveShowsOnDate(ctx context.Context, date, theater string) (domain.RemovedShows, error) {
	var removed domain.RemovedShows

	err := s.observe(ctx, "remove_shows_on_date", func(ctx context.Context) error {
		day, err := parseDate("Date", date)
		if err != nil {
			return err
		}

		theater, err = requireText("Theater", theater)
		if err != nil {
			return err
		}

		return s.gateway.RunInTx(ctx, domain.TxOptions{}, func(q domain.Querier) error {
			known, err := q.ExecuteCount(ctx, `SELECT 1 FROM theaters WHERE tname = $1`, theater)
			if err != nil {
				return err
			}
			removed.TheaterKnown = known > 0

			query := `
				DELETE FROM plays p
				USING shows s, theaters t
				WHERE s.sdate = $1::date
					AND t.tname = $2
					AND s.sid = p.sid
					AND t.tid = p.tid
			`

			removed.PlaysRemoved, err = q.ExecuteEffect(ctx, query, day, theater)
			if err != nil {
				return err
			}

			query = `
				UPDATE bookings
				SET status = $1
				WHERE bdatetime::date = $2::date
					AND status <> $1
			`

			removed.BookingsCancelled, err = q.ExecuteEffect(ctx, query, string(domain.BookingCancelled), day)
			return err
		})
	})

	return removed, err
}
