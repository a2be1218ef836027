package cache

import (
	"context"

	"github.com/tarseld/go-entity-repository/internal/cacheinfra"
)

// Horizon selects which expiry class a cached value belongs to. List pages
// churn with every write, so they live on the short horizon; single entities
// are stable between writes and live on the long one.
//
// The type lives in the adapter package so implementations can share it; the
// alias keeps this package the only import consumers need.
type Horizon = cacheinfra.Horizon

const (
	// HorizonList is the short expiry class used for list pages (~1 hour by default).
	HorizonList = cacheinfra.HorizonList
	// HorizonEntity is the long expiry class used for single records (~24 hours by default).
	HorizonEntity = cacheinfra.HorizonEntity
)

// FetchFn is the function signature Service expects when fetching from the
// source of truth on a cache miss.
type FetchFn[T any] func(ctx context.Context) (T, error)

// Service exposes the read-through caching operations the repository layer
// needs. Implementations must never store a fetch error: absence re-queries
// the backing store on every call.
type Service interface {
	GetOrFetch(ctx context.Context, key string, horizon Horizon, fetchFn any) (any, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// GetOrFetch is the type-safe wrapper around Service.GetOrFetch.
func GetOrFetch[T any](ctx context.Context, service Service, key string, horizon Horizon, fetchFn FetchFn[T]) (T, error) {
	result, err := service.GetOrFetch(ctx, key, horizon, fetchFn)
	if err != nil {
		var zero T
		return zero, err
	}
	if result == nil {
		var zero T
		return zero, nil
	}
	return result.(T), nil
}
