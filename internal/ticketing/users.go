package ticketing

import (
	"context"
	"errors"
	"fmt"

	"github.com/metinatakli/ticketmaster/internal/domain"
)

func (s *Service) AddUser(ctx context.Context, user domain.NewUser) error {
	return s.observe(ctx, "add_user", func(ctx context.Context) error {
		if err := s.validateInput(user); err != nil {
			return err
		}

		query := `
			INSERT INTO users (email, lname, fname, phone, pwd)
			VALUES ($1, $2, $3, $4, $5)
		`

		_, err := s.gateway.ExecuteEffect(
			ctx,
			query,
			user.Email,
			user.LastName,
			user.FirstName,
			nullIfEmpty(user.Phone),
			user.PasswordHash)

		if errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("user already exists with email %s: %w", user.Email, err)
		}

		return err
	})
}

// GetUser looks a user up by email. Phones are stored as NUMERIC(10,0), so
// they are padded back to ten digits to restore leading zeros.
func (s *Service) GetUser(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT email, lname, fname, lpad(phone::text, 10, '0') AS phone, pwd
		FROM users
		WHERE email = $1
	`

	rs, err := s.gateway.ExecuteRows(ctx, query, email)
	if err != nil {
		return nil, err
	}

	if rs.Len() == 0 {
		return nil, domain.ErrRecordNotFound
	}

	record := rs.Records[0]
	user := &domain.User{
		Email:        record["email"],
		LastName:     record["lname"],
		FirstName:    record["fname"],
		Phone:        record["phone"],
		PasswordHash: record["pwd"],
	}

	if user.Phone == domain.NullValue {
		user.Phone = ""
	}

	return user, nil
}
