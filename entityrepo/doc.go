// Package entityrepo provides a generic CRUD repository with read-through
// caching over one backing collection.
//
// # Overview
//
// A Repository[T] is parameterized over any record type satisfying
// entity.Entity (an id plus two timestamps) and is assembled from three
// injected collaborators:
//
//   - Store[T]: the data-access strategy supplying the query primitives
//   - cache.Service: a get-or-fetch key-value cache with per-horizon expiry
//   - cache.KeySerializer: deterministic cache key construction
//
// The store is injected rather than inherited; constructing a repository
// without one turns every operation into an ErrNotImplemented failure instead
// of an abstract-method panic.
//
// # Caching Behavior
//
// Read paths (List, GetByID) follow a read-through pattern: a hit returns the
// cached value without touching the store, a miss queries the store and
// caches the result. List pages expire on the short horizon (an hour by
// default); single records expire on the long horizon (a day by default).
// Absence is never cached, so a GetByID for a missing id always reaches the
// store.
//
// Cache keys are composite: collection::list::page::limit::sort::order and
// collection::id::identifier. Sort parameters participate in the list key, so
// pages with different orderings never collide.
//
// # Invalidation
//
// Every issued key is recorded in a per-repository key registry. Each write
// (Create, Update, Delete) deletes all registered keys carrying the
// collection prefix. Keys issued by another process, or by another Repository
// instance for the same collection, are not in the registry and simply age
// out at their TTL. That staleness window is inherent to the design; callers
// needing cross-process invalidation should share one cache backend and use
// Service.DeleteByPrefix.
//
// # Consistency Caveats
//
// The repository coordinates nothing across concurrent callers:
//
//   - Update's existence check can be answered by a cached copy, so the merge
//     may start from a stale base. Two racing updates both do
//     read-modify-write with no compare-and-swap; the last store write wins.
//   - Create returns the in-memory assembly, not a re-read, so store-side
//     normalization (column defaults, precision truncation) is not reflected.
//   - A read that was in flight during an invalidation can repopulate the
//     cache with the pre-write value until the TTL expires.
//
// # Errors
//
// ErrNotFound reports a missing id from GetByID and Update. ErrNotImplemented
// reports a missing store. Store and cache errors propagate to the caller
// unchanged; nothing is caught or retried. Cache delete failures during
// invalidation are ignored, since the entry ages out regardless.
package entityrepo
