// Package console implements the interactive ticketmaster menu. It reads one
// line at a time, re-prompts on malformed input and prints query results as
// tab-separated rows.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/ticketmaster/internal/domain"
)

const (
	invalidInput = "Your input is invalid!"
	exitChoice   = 15
)

// Service is the set of ticketing operations the menu dispatches to.
type Service interface {
	AddUser(ctx context.Context, user domain.NewUser) error
	AddBooking(ctx context.Context, booking domain.NewBooking) (domain.Booking, error)
	AddMovieShowing(ctx context.Context, showing domain.NewMovieShowing) (domain.MovieShowing, error)
	CancelPendingBookings(ctx context.Context) (int64, error)
	ChangeSeatsForBooking(ctx context.Context, change domain.SeatChange) error
	ListBookingSeats(ctx context.Context, bid int) (*domain.ResultSet, error)
	ListAvailableSeats(ctx context.Context, bid int) (*domain.ResultSet, error)
	RemovePayment(ctx context.Context, bid int) (int64, error)
	ClearCancelledBookings(ctx context.Context) (int64, error)
	RemoveShowsOnDate(ctx context.Context, date, theater string) (domain.RemovedShows, error)
	ListTheatersPlayingShow(ctx context.Context, title string) (*domain.ResultSet, error)
	ListShowsStartingOnTimeAndDate(ctx context.Context, date, clock string) (*domain.ResultSet, error)
	ListMoviesTitleContainsReleasedAfter(ctx context.Context, substr string, year int) (*domain.ResultSet, error)
	ListUsersWithPendingBooking(ctx context.Context) (*domain.ResultSet, error)
	ListShowInfoAtTheaterInDateRange(ctx context.Context, title, theater, from, to string) (*domain.ResultSet, error)
	ListBookingInfoForUser(ctx context.Context, email string) (*domain.ResultSet, error)
}

type menuEntry struct {
	label  string
	action func(ctx context.Context) error
}

type Menu struct {
	service   Service
	validator *validator.Validate
	in        *bufio.Scanner
	out       io.Writer
	failure   *color.Color
	entries   []menuEntry
}

func NewMenu(service Service, validator *validator.Validate, in io.Reader, out io.Writer) *Menu {
	m := &Menu{
		service:   service,
		validator: validator,
		in:        bufio.NewScanner(in),
		out:       out,
		failure:   color.New(color.FgRed),
	}

	m.entries = []menuEntry{
		{"Add User", m.addUser},
		{"Add Booking", m.addBooking},
		{"Add Movie Showing for an Existing Theater", m.addMovieShowing},
		{"Cancel Pending Bookings", m.cancelPendingBookings},
		{"Change Seats Reserved for a Booking", m.changeSeatsForBooking},
		{"Remove a Payment", m.removePayment},
		{"Clear Cancelled Bookings", m.clearCancelledBookings},
		{"Remove Shows on a Given Date", m.removeShowsOnDate},
		{"List all Theaters in a Cinema Playing a Given Show", m.listTheatersPlayingShow},
		{"List all Shows that Start at a Given Time and Date", m.listShowsStartingOnTimeAndDate},
		{"List Movie Titles Containing a Word Released After a Year", m.listMoviesTitleContainsReleasedAfter},
		{"List the First Name, Last Name, and Email of Users with a Pending Booking", m.listUsersWithPendingBooking},
		{"List the Title, Duration, Date, and Time of Shows Playing a Given Movie at a Given Cinema During a Date Range", m.listShowInfoAtTheaterInDateRange},
		{"List the Movie Title, Show Date & Start Time, Theater Name, and Cinema Seat Number for all Bookings of a Given User", m.listBookingInfoForUser},
	}

	return m
}

// Run shows the menu until the exit entry is chosen or the input ends.
// A failed operation is reported and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()

		choice, err := m.readChoice()
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		if err != nil || choice == exitChoice {
			fmt.Fprintln(m.out, "Bye!")
			return nil
		}

		if choice < 1 || choice > len(m.entries) {
			continue
		}

		err = m.entries[choice-1].action(ctx)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(m.out, "Bye!")
			return nil
		case err != nil:
			m.failure.Fprintf(m.out, "Error: %v\n", err)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "MAIN MENU")
	fmt.Fprintln(m.out, "---------")

	for i, entry := range m.entries {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, entry.label)
	}

	fmt.Fprintf(m.out, "%d. EXIT\n", exitChoice)
}

func (m *Menu) readChoice() (int, error) {
	for {
		line, err := m.readLine("Please make your choice: ")
		if err != nil {
			return 0, err
		}

		choice, err := strconv.Atoi(line)
		if err == nil {
			return choice, nil
		}

		fmt.Fprintln(m.out, invalidInput)
	}
}

// readLine prints prompt and returns the next trimmed input line. It returns
// io.EOF once the input is exhausted.
func (m *Menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)

	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) printResult(rs *domain.ResultSet) {
	if len(rs.Columns) > 0 {
		fmt.Fprintln(m.out, strings.Join(rs.Columns, "\t"))
	}

	for i := range rs.Records {
		fmt.Fprintln(m.out, strings.Join(rs.Values(i), "\t"))
	}

	fmt.Fprintf(m.out, "Total row(s): %d\n", rs.Len())
}
