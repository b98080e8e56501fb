package repository

import (
	"context"
	"fmt"

	"github.com/metinatakli/ticketmaster/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	StrategyMemory   = "memory"
	StrategySequence = "sequence"
	StrategyTable    = "table"
	StrategyRedis    = "redis"
)

var IdentityStrategies = []string{StrategyMemory, StrategySequence, StrategyTable, StrategyRedis}

// identityTarget describes where ids of one kind live. All names are
// constants, never user input.
type identityTarget struct {
	table    string
	column   string
	sequence string
}

var identityTargets = map[domain.IdentityKind]identityTarget{
	domain.IdentityMovie: {table: "movies", column: "mvid", sequence: "movie_id_seq"},
	domain.IdentityShow:  {table: "shows", column: "sid", sequence: "show_id_seq"},
}

func targetFor(kind domain.IdentityKind) (identityTarget, error) {
	target, ok := identityTargets[kind]
	if !ok {
		return identityTarget{}, fmt.Errorf("unknown identity kind %q", kind)
	}

	return target, nil
}

// nextFreeID returns MAX(id)+1 for kind, or 1 on an empty table.
func nextFreeID(ctx context.Context, q domain.Querier, kind domain.IdentityKind) (int, error) {
	target, err := targetFor(kind)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) + 1 FROM %s`, target.column, target.table)

	rs, err := q.ExecuteRows(ctx, query)
	if err != nil {
		return 0, err
	}

	return rs.ScalarInt()
}

// NewIdentityManager builds the manager for strategy and aligns it with the
// ids already present in storage. rdb is only used by the redis strategy.
func NewIdentityManager(
	ctx context.Context,
	strategy string,
	q domain.Querier,
	rdb redis.UniversalClient) (domain.IdentityManager, error) {

	switch strategy {
	case StrategyMemory:
		counter := NewMemoryCounter()
		return counter, counter.Seed(ctx, q)
	case StrategySequence:
		seq := NewSequenceIdentity()
		return seq, seq.Seed(ctx, q)
	case StrategyTable:
		table := NewCounterTableIdentity()
		return table, table.Seed(ctx, q)
	case StrategyRedis:
		if rdb == nil {
			return nil, fmt.Errorf("identity strategy %q requires a redis client", strategy)
		}
		r := NewRedisIdentity(rdb)
		return r, r.Seed(ctx, q)
	default:
		return nil, fmt.Errorf("unknown identity strategy %q", strategy)
	}
}
