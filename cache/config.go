package cache

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tarseld/go-entity-repository/internal/cacheinfra"
)

// Config exposes the cache tuning knobs for consumers of the cache package.
type Config struct {
	// Capacity is the maximum number of entries per horizon.
	Capacity int

	// NumShards controls how many shards back each horizon's store.
	NumShards int

	// ListTTL is the expiry for cached list pages.
	ListTTL time.Duration

	// EntityTTL is the expiry for cached single records.
	EntityTTL time.Duration

	// EvictionPercentage is the share of entries evicted when a horizon
	// reaches capacity, between 1 and 100.
	EvictionPercentage int

	// EvictionInterval sets how often expired entries are collected.
	// Zero uses the backend default.
	EvictionInterval time.Duration

	// EarlyRefresh enables background refresh of hot entries before they
	// expire. Nil disables it.
	EarlyRefresh *EarlyRefreshConfig
}

// EarlyRefreshConfig mirrors the underlying sturdyc early refresh options.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration
	MaxAsyncRefreshTime time.Duration
	SyncRefreshTime     time.Duration
	RetryBaseDelay      time.Duration
}

// DefaultConfig returns a Config populated with the default expiry horizons:
// one hour for list pages and twenty-four hours for single records.
func DefaultConfig() Config {
	return fromInternal(cacheinfra.DefaultConfig())
}

// fileConfig is the on-disk YAML schema. Pointer fields distinguish "absent"
// from zero so a file only needs to name the settings it changes.
type fileConfig struct {
	Capacity           *int             `yaml:"capacity,omitempty"`
	NumShards          *int             `yaml:"num_shards,omitempty"`
	ListTTL            *Duration        `yaml:"list_ttl,omitempty"`
	EntityTTL          *Duration        `yaml:"entity_ttl,omitempty"`
	EvictionPercentage *int             `yaml:"eviction_percentage,omitempty"`
	EvictionInterval   *Duration        `yaml:"eviction_interval,omitempty"`
	EarlyRefresh       *fileEarlyConfig `yaml:"early_refresh,omitempty"`
}

type fileEarlyConfig struct {
	MinAsyncRefreshTime Duration `yaml:"min_async_refresh_time"`
	MaxAsyncRefreshTime Duration `yaml:"max_async_refresh_time"`
	SyncRefreshTime     Duration `yaml:"sync_refresh_time"`
	RetryBaseDelay      Duration `yaml:"retry_base_delay"`
}

// Duration wraps time.Duration so YAML files can use "1h" style values.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// LoadConfig reads a YAML config file and overlays it on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read cache config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse cache config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if fc.Capacity != nil {
		cfg.Capacity = *fc.Capacity
	}
	if fc.NumShards != nil {
		cfg.NumShards = *fc.NumShards
	}
	if fc.ListTTL != nil {
		cfg.ListTTL = time.Duration(*fc.ListTTL)
	}
	if fc.EntityTTL != nil {
		cfg.EntityTTL = time.Duration(*fc.EntityTTL)
	}
	if fc.EvictionPercentage != nil {
		cfg.EvictionPercentage = *fc.EvictionPercentage
	}
	if fc.EvictionInterval != nil {
		cfg.EvictionInterval = time.Duration(*fc.EvictionInterval)
	}
	if fc.EarlyRefresh != nil {
		cfg.EarlyRefresh = &EarlyRefreshConfig{
			MinAsyncRefreshTime: time.Duration(fc.EarlyRefresh.MinAsyncRefreshTime),
			MaxAsyncRefreshTime: time.Duration(fc.EarlyRefresh.MaxAsyncRefreshTime),
			SyncRefreshTime:     time.Duration(fc.EarlyRefresh.SyncRefreshTime),
			RetryBaseDelay:      time.Duration(fc.EarlyRefresh.RetryBaseDelay),
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks whether the configuration values are usable.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewService constructs the default cache service implementation from the
// provided configuration.
func NewService(cfg Config) (Service, error) {
	return cacheinfra.NewSturdycService(cfg.toInternal())
}

func (c Config) toInternal() cacheinfra.Config {
	var early *cacheinfra.EarlyRefreshConfig
	if c.EarlyRefresh != nil {
		early = &cacheinfra.EarlyRefreshConfig{
			MinAsyncRefreshTime: c.EarlyRefresh.MinAsyncRefreshTime,
			MaxAsyncRefreshTime: c.EarlyRefresh.MaxAsyncRefreshTime,
			SyncRefreshTime:     c.EarlyRefresh.SyncRefreshTime,
			RetryBaseDelay:      c.EarlyRefresh.RetryBaseDelay,
		}
	}

	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		ListTTL:            c.ListTTL,
		EntityTTL:          c.EntityTTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
		EarlyRefresh:       early,
	}
}

func fromInternal(cfg cacheinfra.Config) Config {
	var early *EarlyRefreshConfig
	if cfg.EarlyRefresh != nil {
		early = &EarlyRefreshConfig{
			MinAsyncRefreshTime: cfg.EarlyRefresh.MinAsyncRefreshTime,
			MaxAsyncRefreshTime: cfg.EarlyRefresh.MaxAsyncRefreshTime,
			SyncRefreshTime:     cfg.EarlyRefresh.SyncRefreshTime,
			RetryBaseDelay:      cfg.EarlyRefresh.RetryBaseDelay,
		}
	}

	return Config{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		ListTTL:            cfg.ListTTL,
		EntityTTL:          cfg.EntityTTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
		EarlyRefresh:       early,
	}
}
