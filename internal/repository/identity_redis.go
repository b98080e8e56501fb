package repository

import (
	"context"
	"fmt"

	"github.com/metinatakli/ticketmaster/internal/domain"
	"github.com/redis/go-redis/v9"
)

// raiseFloor sets KEYS[1] to ARGV[1] unless it already holds a larger value.
var raiseFloor = redis.NewScript(`
	local current = tonumber(redis.call("GET", KEYS[1]) or "0")
	local floor = tonumber(ARGV[1])

	if current < floor then
		redis.call("SET", KEYS[1], floor)
		return floor
	end

	return current
`)

// RedisIdentity issues ids with INCR, which is atomic across every process
// sharing the Redis instance. Ids taken by a rolled back workflow are lost.
type RedisIdentity struct {
	rdb redis.UniversalClient
}

func NewRedisIdentity(rdb redis.UniversalClient) *RedisIdentity {
	return &RedisIdentity{rdb: rdb}
}

func identityKey(kind domain.IdentityKind) string {
	return fmt.Sprintf("ticketmaster:id:%s", kind)
}

// Seed makes sure the next INCR returns an id above every stored row.
func (r *RedisIdentity) Seed(ctx context.Context, q domain.Querier) error {
	for _, kind := range domain.IdentityKinds {
		next, err := nextFreeID(ctx, q, kind)
		if err != nil {
			return err
		}

		err = raiseFloor.Run(ctx, r.rdb, []string{identityKey(kind)}, next-1).Err()
		if err != nil {
			return fmt.Errorf("failed to seed %s id counter: %w", kind, err)
		}
	}

	return nil
}

func (r *RedisIdentity) Next(ctx context.Context, _ domain.Querier, kind domain.IdentityKind) (int, error) {
	if _, err := targetFor(kind); err != nil {
		return 0, err
	}

	id, err := r.rdb.Incr(ctx, identityKey(kind)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", kind, err)
	}

	return int(id), nil
}

func (r *RedisIdentity) Advance(domain.IdentityKind) {}
