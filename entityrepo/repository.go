package entityrepo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tarseld/go-entity-repository/cache"
	"github.com/tarseld/go-entity-repository/entity"
)

// qualifier segments for the two read key shapes: collection::list::... and
// collection::id::....
const (
	keyQualifierList = "list"
	keyQualifierID   = "id"
)

// Repository provides create/read/update/delete/list over one backing
// collection, with read-through caching of the read paths. It coordinates
// nothing across concurrent callers: no locking, no transactions, no request
// coalescing. Two writers racing on the same id interleave arbitrarily and
// the last store write wins.
type Repository[T entity.Entity] struct {
	collection string
	store      Store[T]
	cache      cache.Service
	keys       cache.KeySerializer

	// keyRegistry tracks every cache key this repository has issued, so a
	// write can invalidate the collection without the cache backend having
	// to support scans.
	keyRegistry *sync.Map

	now   func() time.Time
	newID func() string
}

// Option customizes a Repository at construction time.
type Option[T entity.Entity] func(*Repository[T])

// WithClock overrides the timestamp source. Tests use it to make
// created_at/updated_at deterministic.
func WithClock[T entity.Entity](now func() time.Time) Option[T] {
	return func(r *Repository[T]) { r.now = now }
}

// WithIDGenerator overrides the identifier source.
func WithIDGenerator[T entity.Entity](newID func() string) Option[T] {
	return func(r *Repository[T]) { r.newID = newID }
}

// New constructs a Repository over the named collection. A nil store is
// allowed; every operation then fails with ErrNotImplemented until a concrete
// store is supplied.
func New[T entity.Entity](collection string, store Store[T], cacheService cache.Service, keys cache.KeySerializer, opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{
		collection:  collection,
		store:       store,
		cache:       cacheService,
		keys:        keys,
		keyRegistry: &sync.Map{},
		now:         time.Now,
		newID:       entity.NewID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Collection returns the backing collection name.
func (r *Repository[T]) Collection() string {
	return r.collection
}

// List returns one page of records. Page, limit and sort all participate in
// the cache key, so two listings that could order differently never share an
// entry. On a cold key concurrent callers are collapsed by the cache backend
// into a single store read.
func (r *Repository[T]) List(ctx context.Context, params ListParams) ([]T, error) {
	if r.store == nil {
		return nil, ErrNotImplemented
	}

	params = params.withDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	key := r.keys.SerializeKey(r.collection, keyQualifierList,
		params.Page, params.Limit, params.SortBy, string(params.SortOrder))
	r.trackKey(key)

	return cache.GetOrFetch(ctx, r.cache, key, cache.HorizonList, func(ctx context.Context) ([]T, error) {
		return r.store.QueryMany(ctx, params.query())
	})
}

// GetByID returns the record with the given id, or ErrNotFound. A hit serves
// the cached copy; a miss queries the store and caches the record on the
// entity horizon. Absence is never cached: every miss for a nonexistent id
// reaches the store again.
func (r *Repository[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	if r.store == nil {
		return zero, ErrNotImplemented
	}

	key := r.keys.SerializeKey(r.collection, keyQualifierID, id)
	r.trackKey(key)

	return cache.GetOrFetch(ctx, r.cache, key, cache.HorizonEntity, func(ctx context.Context) (T, error) {
		return r.store.QueryOne(ctx, Query{ID: id})
	})
}

// Create assigns a fresh id, stamps created_at == updated_at, inserts the
// record and invalidates the collection's cache entries. The returned record
// is the in-memory assembly, not a re-read; if the store normalizes values on
// insert the two representations diverge silently.
//
// Any id or timestamps supplied by the caller are overwritten.
func (r *Repository[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T
	if r.store == nil {
		return zero, ErrNotImplemented
	}

	now := r.now()
	record.SetID(r.newID())
	record.SetCreatedAt(now)
	record.SetUpdatedAt(now)

	if err := r.store.Insert(ctx, record); err != nil {
		return zero, err
	}

	r.invalidateCollection(ctx)
	return record, nil
}

// Update applies a shallow patch to the record with the given id and stamps a
// fresh updated_at. The existence check goes through GetByID, so it can be
// answered by a cached copy that predates a concurrent write; the merge then
// starts from that stale base (documented read-modify-write race, no
// versioning guard). A missing id fails with ErrNotFound before any store
// write.
//
// Patch keys address top-level JSON fields; a nested value replaces the whole
// field that contains it. The id, created_at and updated_at keys are ignored.
func (r *Repository[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var zero T
	if r.store == nil {
		return zero, ErrNotImplemented
	}

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}

	merged, err := mergePatch(existing, patch)
	if err != nil {
		return zero, err
	}
	merged.SetUpdatedAt(r.now())

	if err := r.store.Update(ctx, merged); err != nil {
		return zero, err
	}

	r.invalidateCollection(ctx)
	return merged, nil
}

// Delete removes the record with the given id and invalidates the
// collection's cache entries. There is no existence check; deleting an id
// that was never created succeeds.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	if r.store == nil {
		return ErrNotImplemented
	}

	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidateCollection(ctx)
	return nil
}

// trackKey registers an issued cache key for later invalidation.
func (r *Repository[T]) trackKey(key string) {
	r.keyRegistry.Store(key, struct{}{})
}

// invalidateCollection drops every registered key for this collection.
// Delete failures are not surfaced: the entry will still age out at its TTL,
// and the write path never fails on account of the cache.
func (r *Repository[T]) invalidateCollection(ctx context.Context) {
	prefix := r.collection + cache.KeySeparator

	var keys []string
	r.keyRegistry.Range(func(k, _ any) bool {
		if key, ok := k.(string); ok && strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return true
	})

	for _, key := range keys {
		_ = r.cache.Delete(ctx, key)
		r.keyRegistry.Delete(key)
	}
}
