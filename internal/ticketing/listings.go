package ticketing

import (
	"context"
	"fmt"
	"strings"

	"github.com/metinatakli/ticketmaster/internal/domain"
)

// ListTheatersPlayingShow lists where and when the movie titled title plays.
func (s *Service) ListTheatersPlayingShow(ctx context.Context, title string) (*domain.ResultSet, error) {
	title, err := requireText("Title", title)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT t.tname, s.sdate, s.sttime
		FROM movies m
		JOIN shows s ON s.mvid = m.mvid
		JOIN plays p ON p.sid = s.sid
		JOIN theaters t ON t.tid = p.tid
		WHERE m.title = $1
		ORDER BY s.sdate, s.sttime, t.tname
	`

	return s.list(ctx, "list_theaters_playing_show", query, title)
}

func (s *Service) ListShowsStartingOnTimeAndDate(ctx context.Context, date, clock string) (*domain.ResultSet, error) {
	day, err := parseDate("Date", date)
	if err != nil {
		return nil, err
	}

	start, err := parseClock("Time", clock)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT sid, mvid, sdate, sttime, edtime
		FROM shows
		WHERE sdate = $1::date
			AND sttime = $2::time
		ORDER BY sid
	`

	return s.list(ctx, "list_shows_starting_on_time_and_date", query, day, start.Format(clockLayout))
}

// ListMoviesTitleContainsReleasedAfter matches substr anywhere in the title,
// ignoring case, for movies released in a year strictly after year.
func (s *Service) ListMoviesTitleContainsReleasedAfter(ctx context.Context, substr string, year int) (*domain.ResultSet, error) {
	if strings.TrimSpace(substr) == "" {
		return nil, fmt.Errorf("%w: title fragment is required", domain.ErrInvalidInput)
	}

	query := `
		SELECT mvid, title, rdate
		FROM movies
		WHERE strpos(lower(title), lower($1)) > 0
			AND EXTRACT(YEAR FROM rdate) > $2
		ORDER BY rdate, mvid
	`

	return s.list(ctx, "list_movies_title_contains_released_after", query, substr, year)
}

func (s *Service) ListUsersWithPendingBooking(ctx context.Context) (*domain.ResultSet, error) {
	query := `
		SELECT u.fname, u.lname, u.email
		FROM users u
		JOIN bookings b ON b.email = u.email
		WHERE b.status = $1
		ORDER BY u.email, b.bid
	`

	return s.list(ctx, "list_users_with_pending_booking", query, string(domain.BookingPending))
}

// ListShowInfoAtTheaterInDateRange lists the shows of a movie at a theater
// between from and to, both inclusive.
func (s *Service) ListShowInfoAtTheaterInDateRange(
	ctx context.Context,
	title, theater, from, to string) (*domain.ResultSet, error) {

	title, err := requireText("Title", title)
	if err != nil {
		return nil, err
	}

	theater, err = requireText("Theater", theater)
	if err != nil {
		return nil, err
	}

	first, err := parseDate("From", from)
	if err != nil {
		return nil, err
	}

	last, err := parseDate("To", to)
	if err != nil {
		return nil, err
	}

	// Normalized dates compare correctly as strings.
	if first > last {
		return nil, fmt.Errorf("%w: From must not be after To", domain.ErrInvalidInput)
	}

	query := `
		SELECT m.title, m.duration, s.sdate, s.sttime
		FROM movies m
		JOIN shows s ON s.mvid = m.mvid
		JOIN plays p ON p.sid = s.sid
		JOIN theaters t ON t.tid = p.tid
		WHERE m.title = $1
			AND t.tname = $2
			AND s.sdate BETWEEN $3::date AND $4::date
		ORDER BY s.sdate, s.sttime
	`

	return s.list(ctx, "list_show_info_at_theater_in_date_range", query, title, theater, first, last)
}

// ListBookingInfoForUser lists every seat held by the user's paid bookings.
func (s *Service) ListBookingInfoForUser(ctx context.Context, email string) (*domain.ResultSet, error) {
	email, err := requireText("Email", email)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT m.title, s.sdate, s.sttime, t.tname, c.sno
		FROM bookings b
		JOIN shows s ON s.sid = b.sid
		JOIN movies m ON m.mvid = s.mvid
		JOIN showseats ss ON ss.bid = b.bid
		JOIN cinemaseats c ON c.csid = ss.csid
		JOIN theaters t ON t.tid = c.tid
		WHERE b.email = $1
			AND b.status = $2
		ORDER BY s.sdate, s.sttime, c.sno
	`

	return s.list(ctx, "list_booking_info_for_user", query, email, string(domain.BookingPaid))
}

func (s *Service) list(ctx context.Context, operation, query string, args ...any) (*domain.ResultSet, error) {
	var rs *domain.ResultSet

	err := s.observe(ctx, operation, func(ctx context.Context) error {
		var err error
		rs, err = s.gateway.ExecuteRows(ctx, query, args...)
		return err
	})

	return rs, err
}
