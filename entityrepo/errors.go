package entityrepo

import "errors"

var (
	// ErrNotFound reports that no record with the requested id exists.
	// Stores must return it (or wrap it) from QueryOne when the lookup
	// matches no row.
	ErrNotFound = errors.New("entityrepo: record not found")

	// ErrNotImplemented reports that the repository was constructed without
	// a backing store, so the query primitives cannot be executed.
	ErrNotImplemented = errors.New("entityrepo: store not implemented")
)
