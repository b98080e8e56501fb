package ticketing

import (
	"context"
	"errors"
	"fmt"

	"github.com/metinatakli/ticketmaster/internal/domain"
)

// AddMovieShowing inserts a movie, one show of it and the show's theater
// assignment, in that order, in one transaction. Identity counters are only
// advanced after the commit, so a failed attempt reuses the same ids.
func (s *Service) AddMovieShowing(ctx context.Context, showing domain.NewMovieShowing) (domain.MovieShowing, error) {
	var result domain.MovieShowing

	err := s.observe(ctx, "add_movie_showing", func(ctx context.Context) error {
		if err := s.validateInput(showing); err != nil {
			return err
		}

		start, err := parseClock("StartTime", showing.StartTime)
		if err != nil {
			return err
		}

		end, err := parseClock("EndTime", showing.EndTime)
		if err != nil {
			return err
		}

		// An end before the start is a show running past midnight.
		if end.Equal(start) {
			return fmt.Errorf("%w: EndTime must differ from StartTime", domain.ErrInvalidInput)
		}

		err = s.gateway.RunInTx(ctx, domain.TxOptions{}, func(q domain.Querier) error {
			movieID, err := s.identity.Next(ctx, q, domain.IdentityMovie)
			if err != nil {
				return fmt.Errorf("failed to allocate movie id: %w", err)
			}

			query := `
				INSERT INTO movies (mvid, title, rdate, country, description, duration, lang, genre)
				VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8)
			`

			_, err = q.ExecuteEffect(
				ctx,
				query,
				movieID,
				showing.Title,
				showing.ReleaseDate,
				showing.Country,
				nullIfEmpty(showing.Description),
				showing.Duration,
				showing.Language,
				showing.Genre)

			if err != nil {
				return fmt.Errorf("failed to insert movie: %w", err)
			}

			showID, err := s.identity.Next(ctx, q, domain.IdentityShow)
			if err != nil {
				return fmt.Errorf("failed to allocate show id: %w", err)
			}

			query = `
				INSERT INTO shows (sid, mvid, sdate, sttime, edtime)
				VALUES ($1, $2, $3::date, $4::time, $5::time)
			`

			_, err = q.ExecuteEffect(
				ctx,
				query,
				showID,
				movieID,
				showing.ShowDate,
				start.Format(clockLayout),
				end.Format(clockLayout))

			if err != nil {
				return fmt.Errorf("failed to insert show: %w", err)
			}

			_, err = q.ExecuteEffect(ctx, `INSERT INTO plays (sid, tid) VALUES ($1, $2)`, showID, showing.TheaterID)
			if err != nil {
				if errors.Is(err, domain.ErrForeignKey) {
					return fmt.Errorf("theater %d does not exist: %w", showing.TheaterID, err)
				}
				return fmt.Errorf("failed to assign show to theater: %w", err)
			}

			result = domain.MovieShowing{
				MovieID:   movieID,
				ShowID:    showID,
				TheaterID: showing.TheaterID,
			}

			return nil
		})
		if err != nil {
			return err
		}

		s.identity.Advance(domain.IdentityMovie)
		s.identity.Advance(domain.IdentityShow)

		return nil
	})

	return result, err
}
