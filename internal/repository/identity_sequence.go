package repository

import (
	"context"
	"fmt"

	"github.com/metinatakli/ticketmaster/internal/domain"
)

// SequenceIdentity draws ids from PostgreSQL sequences. Values consumed by a
// rolled back transaction are skipped, never reissued.
type SequenceIdentity struct{}

func NewSequenceIdentity() *SequenceIdentity {
	return &SequenceIdentity{}
}

// Seed moves each sequence past the largest stored id without ever moving
// it backwards.
func (s *SequenceIdentity) Seed(ctx context.Context, q domain.Querier) error {
	for _, kind := range domain.IdentityKinds {
		target, err := targetFor(kind)
		if err != nil {
			return err
		}

		query := fmt.Sprintf(`
			SELECT setval('%[1]s', GREATEST(
				(SELECT COALESCE(MAX(%[2]s), 0) + 1 FROM %[3]s),
				(SELECT CASE WHEN is_called THEN last_value + 1 ELSE last_value END FROM %[1]s)
			), false)`, target.sequence, target.column, target.table)

		_, err = q.ExecuteRows(ctx, query)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *SequenceIdentity) Next(ctx context.Context, q domain.Querier, kind domain.IdentityKind) (int, error) {
	target, err := targetFor(kind)
	if err != nil {
		return 0, err
	}

	rs, err := q.ExecuteRows(ctx, `SELECT nextval($1::regclass)`, target.sequence)
	if err != nil {
		return 0, err
	}

	return rs.ScalarInt()
}

func (s *SequenceIdentity) Advance(domain.IdentityKind) {}
