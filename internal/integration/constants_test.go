package integration_test

const (
	// Users
	TestUserEmail      = "jane@example.com"
	TestUserFirstName  = "Jane"
	TestUserLastName   = "Doe"
	TestOtherUserEmail = "john@example.com"

	// Theaters
	TestTheaterId        = 1
	TestTheaterName      = "Regal"
	TestOtherTheaterName = "Galaxy"

	// Shows
	TestMorningShowId = 2
	TestEveningShowId = 1
	TestNextDayShowId = 3
	TestShowDate      = "2024-05-01"

	// Bookings
	TestPaidBookingId      = 1
	TestPendingBookingId   = 2
	TestCancelledBookingId = 3
	TestSameDayPendingId   = 4
	TestMaxBookingId       = 4

	// Movies
	TestMaxMovieId = 3
	TestMaxShowId  = 3
)
