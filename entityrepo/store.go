package entityrepo

import "context"

// Query carries the qualifiers for the two read primitives. Statement text
// and parameter binding are entirely the store's concern; the repository only
// describes what it wants back.
type Query struct {
	// ID selects a single record. Set for QueryOne only.
	ID string

	// Limit and Offset bound paginated reads. Set for QueryMany only.
	Limit  int
	Offset int

	// OrderBy names the column to sort on; OrderDesc flips the direction.
	OrderBy   string
	OrderDesc bool
}

// Store is the data-access strategy injected into a Repository. It replaces
// the subclass-override pattern: a repository without a store returns
// ErrNotImplemented instead of panicking on an abstract method.
//
// QueryOne returns ErrNotFound when no record matches. Stores add no retry,
// pooling or transaction semantics of their own; whatever the backing engine
// guarantees is what the caller gets.
type Store[T any] interface {
	// QueryMany returns the records selected by q.Limit/q.Offset in
	// q.OrderBy order.
	QueryMany(ctx context.Context, q Query) ([]T, error)

	// QueryOne returns the record with id q.ID, or ErrNotFound.
	QueryOne(ctx context.Context, q Query) (T, error)

	// Insert writes a fully assembled record.
	Insert(ctx context.Context, record T) error

	// Update replaces the stored record with the same id.
	Update(ctx context.Context, record T) error

	// Delete removes the record with the given id. Deleting an id that does
	// not exist is not an error.
	Delete(ctx context.Context, id string) error
}
