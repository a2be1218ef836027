package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ListTTL != time.Hour {
		t.Errorf("ListTTL = %v, want 1h", cfg.ListTTL)
	}
	if cfg.EntityTTL != 24*time.Hour {
		t.Errorf("EntityTTL = %v, want 24h", cfg.EntityTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := writeConfigFile(t, `
list_ttl: 30m
capacity: 500
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ListTTL != 30*time.Minute {
		t.Errorf("ListTTL = %v, want 30m", cfg.ListTTL)
	}
	if cfg.Capacity != 500 {
		t.Errorf("Capacity = %d, want 500", cfg.Capacity)
	}
	// Untouched fields keep their defaults.
	if cfg.EntityTTL != 24*time.Hour {
		t.Errorf("EntityTTL = %v, want default 24h", cfg.EntityTTL)
	}
}

func TestLoadConfig_EarlyRefresh(t *testing.T) {
	path := writeConfigFile(t, `
early_refresh:
  min_async_refresh_time: 10s
  max_async_refresh_time: 20s
  sync_refresh_time: 30s
  retry_base_delay: 100ms
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.EarlyRefresh == nil {
		t.Fatal("EarlyRefresh = nil, want populated")
	}
	if cfg.EarlyRefresh.RetryBaseDelay != 100*time.Millisecond {
		t.Errorf("RetryBaseDelay = %v, want 100ms", cfg.EarlyRefresh.RetryBaseDelay)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "capacity: [not an int"},
		{"bad duration", "list_ttl: soon"},
		{"invalid after overlay", "capacity: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() accepted invalid input")
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfig() succeeded on a missing file")
	}
}

func TestNewService_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumShards = 0

	if _, err := NewService(cfg); err == nil {
		t.Error("NewService() accepted invalid config")
	}
}
