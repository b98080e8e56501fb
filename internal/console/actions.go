package console

import (
	"context"
	"fmt"

	"github.com/metinatakli/ticketmaster/internal/domain"
)

const (
	defaultTitleWord   = "love"
	defaultReleaseYear = 2010
)

func (m *Menu) addUser(ctx context.Context) error {
	var (
		user domain.NewUser
		err  error
	)

	if user.Email, err = m.readField("Enter email: ", "required,email,max=64"); err != nil {
		return err
	}

	if user.LastName, err = m.readField("Enter last name: ", "required,max=32"); err != nil {
		return err
	}

	if user.FirstName, err = m.readField("Enter first name: ", "required,max=32"); err != nil {
		return err
	}

	if user.Phone, err = m.readField("Enter phone (10 digits, optional): ", "omitempty,numeric,len=10"); err != nil {
		return err
	}

	password, err := m.readField("Enter password: ", "required")
	if err != nil {
		return err
	}

	user.PasswordHash = domain.HashPassword(password)

	if err := m.service.AddUser(ctx, user); err != nil {
		return err
	}

	fmt.Fprintf(m.out, "User %s added.\n", user.Email)
	return nil
}

func (m *Menu) addBooking(ctx context.Context) error {
	var (
		input domain.NewBooking
		err   error
	)

	if input.Email, err = m.readField("Enter email: ", "required,email,max=64"); err != nil {
		return err
	}

	if input.Seats, err = m.readInt("Enter number of seats: ", 1); err != nil {
		return err
	}

	if input.ShowID, err = m.readInt("Enter showing id: ", 1); err != nil {
		return err
	}

	if input.Status, err = m.readStatus(); err != nil {
		return err
	}

	booking, err := m.service.AddBooking(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Booking %d created with status %s.\n", booking.ID, booking.Status)
	return nil
}

func (m *Menu) addMovieShowing(ctx context.Context) error {
	var (
		input domain.NewMovieShowing
		err   error
	)

	if input.Title, err = m.readField("Enter movie title: ", "required,max=128"); err != nil {
		return err
	}

	if input.ReleaseDate, err = m.readDate("Enter release date (yyyy-mm-dd): "); err != nil {
		return err
	}

	if input.Country, err = m.readField("Enter country: ", "required,max=64"); err != nil {
		return err
	}

	if input.Description, err = m.readField("Enter description (optional): ", "max=1024"); err != nil {
		return err
	}

	if input.Duration, err = m.readInt("Enter duration in minutes: ", 1); err != nil {
		return err
	}

	if input.Language, err = m.readField("Enter language code: ", "required,max=32"); err != nil {
		return err
	}

	if input.Genre, err = m.readField("Enter genre: ", "required,max=128"); err != nil {
		return err
	}

	if input.ShowDate, err = m.readDate("Enter show date (yyyy-mm-dd): "); err != nil {
		return err
	}

	if input.StartTime, err = m.readClock("Enter start time (hh:mm:ss): "); err != nil {
		return err
	}

	if input.EndTime, err = m.readClock("Enter end time (hh:mm:ss): "); err != nil {
		return err
	}

	if input.TheaterID, err = m.readInt("Enter theater id: ", 1); err != nil {
		return err
	}

	showing, err := m.service.AddMovieShowing(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Movie %d added with show %d in theater %d.\n", showing.MovieID, showing.ShowID, showing.TheaterID)
	return nil
}

func (m *Menu) cancelPendingBookings(ctx context.Context) error {
	n, err := m.service.CancelPendingBookings(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "%d pending booking(s) cancelled.\n", n)
	return nil
}

func (m *Menu) changeSeatsForBooking(ctx context.Context) error {
	bid, err := m.readInt("Input the booking id: ", 1)
	if err != nil {
		return err
	}

	current, err := m.service.ListBookingSeats(ctx, bid)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Currently reserved seats:")
	m.printResult(current)

	available, err := m.service.ListAvailableSeats(ctx, bid)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Available seats:")
	m.printResult(available)

	ids, err := m.readIDs("Input the new show seat ids, separated by commas: ")
	if err != nil {
		return err
	}

	err = m.service.ChangeSeatsForBooking(ctx, domain.SeatChange{BookingID: bid, NewSeatIDs: ids})
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Seats for booking %d changed.\n", bid)
	return nil
}

func (m *Menu) removePayment(ctx context.Context) error {
	bid, err := m.readInt("Input the booking id: ", 1)
	if err != nil {
		return err
	}

	n, err := m.service.RemovePayment(ctx, bid)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Booking %d cancelled, %d payment(s) removed.\n", bid, n)
	return nil
}

func (m *Menu) clearCancelledBookings(ctx context.Context) error {
	n, err := m.service.ClearCancelledBookings(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "%d cancelled booking(s) removed.\n", n)
	return nil
}

func (m *Menu) removeShowsOnDate(ctx context.Context) error {
	date, err := m.readDate("Input the date that you want the shows removed (yyyy-mm-dd): ")
	if err != nil {
		return err
	}

	theater, err := m.readField("Input the cinema theater where you want the show removed: ", "required,max=32")
	if err != nil {
		return err
	}

	removed, err := m.service.RemoveShowsOnDate(ctx, date, theater)
	if err != nil {
		return err
	}

	if !removed.TheaterKnown {
		fmt.Fprintf(m.out, "No theater named %s.\n", theater)
	}

	fmt.Fprintf(m.out, "%d show(s) removed from %s, %d booking(s) cancelled.\n",
		removed.PlaysRemoved, theater, removed.BookingsCancelled)
	return nil
}

func (m *Menu) listTheatersPlayingShow(ctx context.Context) error {
	title, err := m.readField("Input the movie title: ", "required,max=128")
	if err != nil {
		return err
	}

	return m.print(m.service.ListTheatersPlayingShow(ctx, title))
}

func (m *Menu) listShowsStartingOnTimeAndDate(ctx context.Context) error {
	date, err := m.readDate("Input the date that you are searching for (yyyy-mm-dd): ")
	if err != nil {
		return err
	}

	clock, err := m.readClock("Input the start time that you are searching for (hh:mm:ss): ")
	if err != nil {
		return err
	}

	return m.print(m.service.ListShowsStartingOnTimeAndDate(ctx, date, clock))
}

func (m *Menu) listMoviesTitleContainsReleasedAfter(ctx context.Context) error {
	word, err := m.readLine(fmt.Sprintf("Input a word the title contains [%s]: ", defaultTitleWord))
	if err != nil {
		return err
	}

	if word == "" {
		word = defaultTitleWord
	}

	year, err := m.readIntOr(fmt.Sprintf("Input the year released after [%d]: ", defaultReleaseYear), defaultReleaseYear)
	if err != nil {
		return err
	}

	return m.print(m.service.ListMoviesTitleContainsReleasedAfter(ctx, word, year))
}

func (m *Menu) listUsersWithPendingBooking(ctx context.Context) error {
	return m.print(m.service.ListUsersWithPendingBooking(ctx))
}

func (m *Menu) listShowInfoAtTheaterInDateRange(ctx context.Context) error {
	title, err := m.readField("Input the movie title: ", "required,max=128")
	if err != nil {
		return err
	}

	theater, err := m.readField("Input the cinema theater: ", "required,max=32")
	if err != nil {
		return err
	}

	from, err := m.readDate("Input the first date of the range (yyyy-mm-dd): ")
	if err != nil {
		return err
	}

	to, err := m.readDate("Input the last date of the range (yyyy-mm-dd): ")
	if err != nil {
		return err
	}

	return m.print(m.service.ListShowInfoAtTheaterInDateRange(ctx, title, theater, from, to))
}

func (m *Menu) listBookingInfoForUser(ctx context.Context) error {
	email, err := m.readField("Input the email to search for: ", "required,email,max=64")
	if err != nil {
		return err
	}

	return m.print(m.service.ListBookingInfoForUser(ctx, email))
}

func (m *Menu) print(rs *domain.ResultSet, err error) error {
	if err != nil {
		return err
	}

	m.printResult(rs)
	return nil
}
