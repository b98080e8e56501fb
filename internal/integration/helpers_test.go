package integration_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticketmaster/internal/domain"
	"github.com/stretchr/testify/require"
)

// fixture holds two theaters of one cinema, three movies with three shows,
// two users, four bookings in every status and the seats and payments that
// reference them. Booking 1 (Paid) holds show seats 1 and 3, the cancelled
// booking 3 still holds seat 2 and has a payment, seat 4 is free.
var fixture = []string{
	`INSERT INTO cities (city_id, city_name, city_state, zip_code) VALUES (1, 'Riverside', 'CA', '92507')`,
	`INSERT INTO cinemas (cid, cname, tnum, city_id) VALUES (1, 'Regal Riverside', 2, 1)`,
	`INSERT INTO theaters (tid, cid, tname, tseats) VALUES (1, 1, 'Regal', 4), (2, 1, 'Galaxy', 4)`,
	`INSERT INTO movies (mvid, title, rdate, country, description, duration, lang, genre) VALUES
		(1, 'Love Actually', '2003-11-14', 'United Kingdom', 'Eight couples.', 135, 'en', 'Romance'),
		(2, 'The Lovely Bones', '2011-01-15', 'United States', NULL, 135, 'en', 'Drama'),
		(3, 'Up', '2009-05-29', 'United States', 'Balloons.', 96, 'en', 'Animation')`,
	`INSERT INTO shows (sid, mvid, sdate, sttime, edtime) VALUES
		(1, 1, '2024-05-01', '18:30', '20:45'),
		(2, 3, '2024-05-01', '10:00', '11:36'),
		(3, 3, '2024-05-02', '10:00', '11:36')`,
	`INSERT INTO plays (sid, tid) VALUES (1, 1), (2, 1), (2, 2), (3, 1)`,
	`INSERT INTO users (email, lname, fname, phone, pwd) VALUES
		('jane@example.com', 'Doe', 'Jane', 5551234567, repeat('a', 64)),
		('john@example.com', 'Roe', 'John', NULL, repeat('b', 64))`,
	`INSERT INTO bookings (bid, status, bdatetime, seats, sid, email) VALUES
		(1, 'Paid', '2024-05-01 09:00:00', 2, 2, 'jane@example.com'),
		(2, 'Pending', '2024-04-30 12:00:00', 1, 1, 'john@example.com'),
		(3, 'Cancelled', '2024-05-01 11:00:00', 1, 2, 'john@example.com'),
		(4, 'Pending', '2024-05-01 08:00:00', 1, 3, 'jane@example.com')`,
	`INSERT INTO cinemaseats (csid, tid, sno, stype) VALUES
		(1, 1, 1, 'Regular'), (2, 1, 2, 'Regular'), (3, 1, 3, 'Premium'), (4, 1, 4, 'Premium'),
		(5, 2, 1, 'Regular')`,
	`INSERT INTO showseats (ssid, sid, csid, bid, price) VALUES
		(1, 2, 1, 1, 9.00),
		(2, 2, 2, 3, 9.00),
		(3, 2, 3, 1, 12.50),
		(4, 2, 4, NULL, 12.50),
		(5, 3, 1, NULL, 9.00),
		(6, 2, 5, NULL, 9.00)`,
	`INSERT INTO payments (pid, bid, pmethod, pdatetime, amount, trid) VALUES
		(1, 1, 'card', '2024-05-01 09:05:00', 21.50, 1001),
		(2, 3, 'card', '2024-05-01 11:05:00', 9.00, 1002)`,
}

func resetDatabase(t testing.TB, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	_, err := db.Exec(ctx, `TRUNCATE payments, showseats, cinemaseats, plays, bookings, shows, movies,
		theaters, cinemas, cities, users CASCADE`)
	require.NoError(t, err)

	for _, stmt := range fixture {
		_, err := db.Exec(ctx, stmt)
		require.NoError(t, err)
	}
}

func countRows(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), query, args...).Scan(&n)
	require.NoError(t, err)

	return n
}

// column returns the values of one column of rs, in row order.
func column(rs *domain.ResultSet, name string) []string {
	values := make([]string, 0, rs.Len())
	for _, record := range rs.Records {
		values = append(values, record[name])
	}

	return values
}
