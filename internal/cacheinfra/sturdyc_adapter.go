// Package cacheinfra adapts the sturdyc in-process cache to the cache.Service
// interface. One sturdyc client is kept per expiry horizon so list pages and
// single records can carry different TTLs.
package cacheinfra

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/viccon/sturdyc"
)

// Horizon selects which expiry class a cached value belongs to. The cache
// package aliases this type; use cache.Horizon outside this module.
type Horizon int

const (
	// HorizonList is the short expiry class used for list pages.
	HorizonList Horizon = iota
	// HorizonEntity is the long expiry class used for single records.
	HorizonEntity
)

// String returns the horizon name used in configuration errors.
func (h Horizon) String() string {
	switch h {
	case HorizonList:
		return "list"
	case HorizonEntity:
		return "entity"
	default:
		return "unknown"
	}
}

// Config holds the settings for the sturdyc-backed cache service.
type Config struct {
	// Capacity is the maximum number of entries each horizon's client can
	// store. Must be greater than 0.
	Capacity int

	// NumShards determines the number of shards per client. Higher values
	// improve concurrency at the cost of memory. Must be greater than 0.
	NumShards int

	// ListTTL is the expiry for the list horizon. Must be greater than 0.
	ListTTL time.Duration

	// EntityTTL is the expiry for the entity horizon. Must be greater than 0.
	EntityTTL time.Duration

	// EvictionPercentage is the share of entries evicted when a client
	// reaches capacity. Must be between 1 and 100.
	EvictionPercentage int

	// EvictionInterval sets how often expired entries are collected.
	// Zero uses the sturdyc default.
	EvictionInterval time.Duration

	// EarlyRefresh enables sturdyc's early refresh behaviour for hot keys.
	// Nil disables it.
	EarlyRefresh *EarlyRefreshConfig
}

// EarlyRefreshConfig configures background refresh of entries before expiry.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration
	MaxAsyncRefreshTime time.Duration
	SyncRefreshTime     time.Duration
	RetryBaseDelay      time.Duration
}

// DefaultConfig returns a Config with the default expiry horizons: one hour
// for list pages, twenty-four hours for single records.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          256,
		ListTTL:            time.Hour,
		EntityTTL:          24 * time.Hour,
		EvictionPercentage: 10,
	}
}

// toSturdycOptions maps the config to sturdyc options. Missing-record storage
// is deliberately never enabled: a lookup that finds nothing must hit the
// backing store again on the next call rather than serve a cached absence.
func (c Config) toSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EarlyRefresh != nil {
		options = append(options, sturdyc.WithEarlyRefreshes(
			c.EarlyRefresh.MinAsyncRefreshTime,
			c.EarlyRefresh.MaxAsyncRefreshTime,
			c.EarlyRefresh.SyncRefreshTime,
			c.EarlyRefresh.RetryBaseDelay,
		))
	}

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.ListTTL <= 0 {
		return &ConfigError{Field: "ListTTL", Message: "must be greater than 0"}
	}
	if c.EntityTTL <= 0 {
		return &ConfigError{Field: "EntityTTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	if c.EarlyRefresh != nil {
		if c.EarlyRefresh.MinAsyncRefreshTime < 0 {
			return &ConfigError{Field: "EarlyRefresh.MinAsyncRefreshTime", Message: "must be non-negative"}
		}
		if c.EarlyRefresh.MaxAsyncRefreshTime < 0 {
			return &ConfigError{Field: "EarlyRefresh.MaxAsyncRefreshTime", Message: "must be non-negative"}
		}
		if c.EarlyRefresh.SyncRefreshTime < 0 {
			return &ConfigError{Field: "EarlyRefresh.SyncRefreshTime", Message: "must be non-negative"}
		}
		if c.EarlyRefresh.RetryBaseDelay < 0 {
			return &ConfigError{Field: "EarlyRefresh.RetryBaseDelay", Message: "must be non-negative"}
		}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// sturdycService implements cache.Service over a pair of sturdyc clients,
// one per expiry horizon.
type sturdycService struct {
	list   *sturdyc.Client[any]
	entity *sturdyc.Client[any]
}

// NewSturdycService validates cfg and builds the horizon clients.
func NewSturdycService(cfg Config) (*sturdycService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := cfg.toSturdycOptions()
	return &sturdycService{
		list:   sturdyc.New[any](cfg.Capacity, cfg.NumShards, cfg.ListTTL, cfg.EvictionPercentage, opts...),
		entity: sturdyc.New[any](cfg.Capacity, cfg.NumShards, cfg.EntityTTL, cfg.EvictionPercentage, opts...),
	}, nil
}

func (s *sturdycService) clientFor(horizon Horizon) *sturdyc.Client[any] {
	if horizon == HorizonEntity {
		return s.entity
	}
	return s.list
}

// GetOrFetch implements cache.Service. On a miss it executes fetchFn, stores
// the value under key on the requested horizon and returns it. A fetchFn
// error is returned as-is and nothing is stored for the key.
//
// fetchFn must be a cache.FetchFn[T]: func(context.Context) (T, error).
func (s *sturdycService) GetOrFetch(ctx context.Context, key string, horizon Horizon, fetchFn any) (any, error) {
	if err := validateFetchFn(fetchFn); err != nil {
		return nil, err
	}

	return s.clientFor(horizon).GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return callFetchFn(ctx, fetchFn)
	})
}

// Delete implements cache.Service. The key may live on either horizon, so
// both clients are asked to drop it.
func (s *sturdycService) Delete(ctx context.Context, key string) error {
	s.list.Delete(key)
	s.entity.Delete(key)
	return nil
}

// DeleteByPrefix implements cache.Service. It scans both horizons and drops
// every key starting with prefix.
func (s *sturdycService) DeleteByPrefix(ctx context.Context, prefix string) error {
	for _, client := range []*sturdyc.Client[any]{s.list, s.entity} {
		for _, key := range client.ScanKeys() {
			if strings.HasPrefix(key, prefix) {
				client.Delete(key)
			}
		}
	}
	return nil
}

// validateFetchFn checks that fetchFn has the shape func(context.Context) (T, error)
// before it is handed to sturdyc, where a mismatch would surface as an opaque
// conversion error.
func validateFetchFn(fetchFn any) error {
	if fetchFn == nil {
		return &ConfigError{Field: "fetchFn", Message: "cannot be nil"}
	}

	fnType := reflect.TypeOf(fetchFn)
	if fnType.Kind() != reflect.Func {
		return &ConfigError{Field: "fetchFn", Message: "must be a function"}
	}
	if fnType.NumIn() != 1 || fnType.NumOut() != 2 {
		return &ConfigError{Field: "fetchFn", Message: "must have signature func(context.Context) (T, error)"}
	}

	contextType := reflect.TypeOf((*context.Context)(nil)).Elem()
	if !fnType.In(0).Implements(contextType) {
		return &ConfigError{Field: "fetchFn", Message: "first parameter must be context.Context"}
	}

	errorType := reflect.TypeOf((*error)(nil)).Elem()
	if !fnType.Out(1).Implements(errorType) {
		return &ConfigError{Field: "fetchFn", Message: "second return value must be error"}
	}

	return nil
}

// callFetchFn invokes a pre-validated fetchFn of any value type and widens
// its result to any.
func callFetchFn(ctx context.Context, fetchFn any) (any, error) {
	if fn, ok := fetchFn.(func(context.Context) (any, error)); ok {
		return fn(ctx)
	}

	results := reflect.ValueOf(fetchFn).Call([]reflect.Value{reflect.ValueOf(ctx)})

	var result any
	if v := results[0]; v.IsValid() && v.CanInterface() {
		result = v.Interface()
	}

	var err error
	if v := results[1]; v.IsValid() && !v.IsNil() {
		err = v.Interface().(error)
	}

	return result, err
}
