package repository

import (
	"context"
	"fmt"

	"github.com/metinatakli/ticketmaster/internal/domain"
)

// CounterTableIdentity allocates ids from the id_counters table. The
// increment happens in the caller's transaction, so a rollback returns the
// id and concurrent writers serialize on the counter row.
type CounterTableIdentity struct{}

func NewCounterTableIdentity() *CounterTableIdentity {
	return &CounterTableIdentity{}
}

func (c *CounterTableIdentity) Seed(ctx context.Context, q domain.Querier) error {
	for _, kind := range domain.IdentityKinds {
		target, err := targetFor(kind)
		if err != nil {
			return err
		}

		query := fmt.Sprintf(`
			INSERT INTO id_counters (name, next_value)
			VALUES ($1, (SELECT COALESCE(MAX(%[1]s), 0) + 1 FROM %[2]s))
			ON CONFLICT (name) DO UPDATE
			SET next_value = GREATEST(id_counters.next_value, EXCLUDED.next_value)`,
			target.column, target.table)

		_, err = q.ExecuteEffect(ctx, query, string(kind))
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *CounterTableIdentity) Next(ctx context.Context, q domain.Querier, kind domain.IdentityKind) (int, error) {
	if _, err := targetFor(kind); err != nil {
		return 0, err
	}

	query := `
		UPDATE id_counters
		SET next_value = next_value + 1
		WHERE name = $1
		RETURNING next_value - 1
	`

	rs, err := q.ExecuteRows(ctx, query, string(kind))
	if err != nil {
		return 0, err
	}

	return rs.ScalarInt()
}

func (c *CounterTableIdentity) Advance(domain.IdentityKind) {}
