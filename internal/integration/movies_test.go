package integration_test

import (
	"context"
	"testing"

	"github.com/metinatakli/ticketmaster/internal/domain"
	"github.com/metinatakli/ticketmaster/internal/repository"
	"github.com/stretchr/testify/suite"
)

type MovieShowingTestSuite struct {
	BaseSuite
}

func TestMovieShowingSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	for _, strategy := range repository.IdentityStrategies {
		t.Run(strategy, func(t *testing.T) {
			suite.Run(t, &MovieShowingTestSuite{BaseSuite{Strategy: strategy}})
		})
	}
}

func newShowing(theaterId int) domain.NewMovieShowing {
	return domain.NewMovieShowing{
		Title:       "Past Lives",
		ReleaseDate: "2023-06-02",
		Country:     "United States",
		Description: "Two childhood friends reunite.",
		Duration:    106,
		Language:    "ko",
		Genre:       "Drama",
		ShowDate:    "2024-05-03",
		StartTime:   "19:00",
		EndTime:     "20:46",
		TheaterID:   theaterId,
	}
}

func (s *MovieShowingTestSuite) TestAddsMovieShowAndPlay() {
	ctx := context.Background()

	showing, err := s.service.AddMovieShowing(ctx, newShowing(TestTheaterId))
	s.Require().NoError(err)

	s.Greater(showing.MovieID, TestMaxMovieId)
	s.Greater(showing.ShowID, TestMaxShowId)

	s.Equal(1, countRows(s.T(), s.db,
		`SELECT COUNT(*) FROM movies WHERE mvid = $1 AND title = 'Past Lives'`, showing.MovieID))
	s.Equal(1, countRows(s.T(), s.db,
		`SELECT COUNT(*) FROM shows WHERE sid = $1 AND mvid = $2 AND sttime = '19:00:00'`, showing.ShowID, showing.MovieID))
	s.Equal(1, countRows(s.T(), s.db,
		`SELECT COUNT(*) FROM plays WHERE sid = $1 AND tid = $2`, showing.ShowID, TestTheaterId))

	second, err := s.service.AddMovieShowing(ctx, newShowing(TestTheaterId))
	s.Require().NoError(err)
	s.Greater(second.MovieID, showing.MovieID)
	s.Greater(second.ShowID, showing.ShowID)
}

func (s *MovieShowingTestSuite) TestFailedPlayLeavesNoOrphans() {
	ctx := context.Background()

	_, err := s.service.AddMovieShowing(ctx, newShowing(404))
	s.ErrorIs(err, domain.ErrForeignKey)

	s.Equal(TestMaxMovieId, countRows(s.T(), s.db, `SELECT COUNT(*) FROM movies`))
	s.Equal(TestMaxShowId, countRows(s.T(), s.db, `SELECT COUNT(*) FROM shows`))
	s.Equal(0, countRows(s.T(), s.db, `SELECT COUNT(*) FROM movies WHERE title = 'Past Lives'`))

	showing, err := s.service.AddMovieShowing(ctx, newShowing(TestTheaterId))
	s.Require().NoError(err)
	s.Greater(showing.MovieID, TestMaxMovieId)
}

func (s *MovieShowingTestSuite) TestAcceptsShowPastMidnight() {
	input := newShowing(TestTheaterId)
	input.StartTime = "23:00"
	input.EndTime = "01:00"

	showing, err := s.service.AddMovieShowing(context.Background(), input)
	s.Require().NoError(err)

	s.Equal(1, countRows(s.T(), s.db,
		`SELECT COUNT(*) FROM shows WHERE sid = $1 AND sttime = '23:00:00' AND edtime = '01:00:00'`, showing.ShowID))
}

func (s *MovieShowingTestSuite) TestRejectsZeroLengthShow() {
	input := newShowing(TestTheaterId)
	input.EndTime = "19:00:00"

	_, err := s.service.AddMovieShowing(context.Background(), input)
	s.ErrorIs(err, domain.ErrInvalidInput)
	s.Equal(TestMaxMovieId, countRows(s.T(), s.db, `SELECT COUNT(*) FROM movies`))
}
