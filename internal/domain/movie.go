package domain

// NewMovieShowing holds everything needed to create a movie, one show of it
// and the assignment of that show to an existing theater.
type NewMovieShowing struct {
	Title       string `validate:"required,max=128"`
	ReleaseDate string `validate:"required,datetime=2006-01-02"`
	Country     string `validate:"required,max=64"`
	Description string `validate:"max=1024"`
	Duration    int    `validate:"required,min=1"`
	Language    string `validate:"required,max=32"`
	Genre       string `validate:"required,max=128"`
	ShowDate    string `validate:"required,datetime=2006-01-02"`
	StartTime   string `validate:"required,clock"`
	EndTime     string `validate:"required,clock"`
	TheaterID   int    `validate:"required,min=1"`
}

type MovieShowing struct {
	MovieID   int
	ShowID    int
	TheaterID int
}
