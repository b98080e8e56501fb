package domain

import "context"

type IdentityKind string

const (
	IdentityMovie IdentityKind = "movie"
	IdentityShow  IdentityKind = "show"
)

var IdentityKinds = []IdentityKind{IdentityMovie, IdentityShow}

// IdentityManager hands out surrogate keys for tables whose ids are not
// generated by the store on insert.
type IdentityManager interface {
	// Next returns the id to use for the next row of kind. q is the
	// transaction the row will be inserted in.
	Next(ctx context.Context, q Querier, kind IdentityKind) (int, error)
	// Advance is called once the transaction that used Next has committed.
	Advance(kind IdentityKind)
}
