package engine

import "context"

// Querier is what the block analysis needs from the engine. Session
// implements it for PostgreSQL; tests implement it with fakes.
type Querier interface {
	// CreateView materializes selectSQL as a named view. The creator is
	// responsible for dropping it when the session ends.
	CreateView(ctx context.Context, name, selectSQL string) error

	// DropView removes a view created earlier in the session. Dropping a
	// view that no longer exists is not an error.
	DropView(ctx context.Context, name string) error

	// BlockIDs returns the distinct physical block identifiers of the
	// rows of relation, optionally restricted by cond (empty cond means
	// every block the relation occupies).
	BlockIDs(ctx context.Context, relation, cond string) ([]int64, error)

	// Columns returns relation's column names in ordinal order. Works
	// for base relations and for views created during the session.
	Columns(ctx context.Context, relation string) ([]string, error)
}
