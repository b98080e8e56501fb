package repository

import (
	"context"

	"github.com/metinatakli/ticketmaster/internal/domain"
)

// MemoryCounter keeps the next movie and show ids in process memory.
//
// It is only correct while this process is the sole writer of the movies and
// shows tables: ids are never checked against storage after Seed, so rows
// inserted by another process or session can collide with issued ids. It is
// not safe for concurrent use. Prefer the sequence or table strategies.
type MemoryCounter struct {
	next map[domain.IdentityKind]int
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		next: map[domain.IdentityKind]int{
			domain.IdentityMovie: 1,
			domain.IdentityShow:  1,
		},
	}
}

// Seed moves every counter above the ids already stored.
func (m *MemoryCounter) Seed(ctx context.Context, q domain.Querier) error {
	for _, kind := range domain.IdentityKinds {
		id, err := nextFreeID(ctx, q, kind)
		if err != nil {
			return err
		}

		if id > m.next[kind] {
			m.next[kind] = id
		}
	}

	return nil
}

// Next returns the current counter value without consuming it.
func (m *MemoryCounter) Next(_ context.Context, _ domain.Querier, kind domain.IdentityKind) (int, error) {
	if _, err := targetFor(kind); err != nil {
		return 0, err
	}

	return m.next[kind], nil
}

func (m *MemoryCounter) NextMovieID() int {
	return m.next[domain.IdentityMovie]
}

func (m *MemoryCounter) NextShowID() int {
	return m.next[domain.IdentityShow]
}

func (m *MemoryCounter) Advance(kind domain.IdentityKind) {
	m.next[kind]++
}
