// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...Option) initializer to build a Config with defaults.
// - Load layers a YAML file and LAUREL_ environment variables on top.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redstonehub/laurel/internal/domain/category"
)

// DefaultStoreBaseURL is the hosted record store.
const DefaultStoreBaseURL = "https://redstone-hub-api.onrender.com"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBaseURL is the root of the remote record store.
	StoreBaseURL string `koanf:"store_base_url"`

	// StoreTimeoutMS bounds a single record store call.
	StoreTimeoutMS int `koanf:"store_timeout_ms"`

	// SnapshotTTLMS is how long a fetched snapshot is served from cache.
	SnapshotTTLMS int `koanf:"snapshot_ttl_ms"`

	// RefreshQueueSize bounds the queue of cache refresh jobs.
	RefreshQueueSize int `koanf:"refresh_queue_size"`

	// RefreshWorkerCount sets the number of refresh workers.
	RefreshWorkerCount int `koanf:"refresh_worker_count"`

	// DedupeSize bounds the number of remembered idempotency keys.
	DedupeSize int `koanf:"dedupe_size"`

	// DedupeWindowMS is how long an idempotency key is remembered.
	DedupeWindowMS int `koanf:"dedupe_window_ms"`

	// RotationThreshold is the group size at which the admin category advances.
	RotationThreshold int `koanf:"rotation_threshold"`

	// CategoryOrder is the admin category rotation order.
	CategoryOrder []string `koanf:"category_order"`

	// PreviewSize caps the winners shown on a month tile.
	PreviewSize int `koanf:"preview_size"`

	// PrefsPath is the YAML file holding admin filter selections.
	// Empty keeps them in memory.
	PrefsPath string `koanf:"prefs_path"`

	// AdminJWTSecret signs admin bearer tokens. Empty disables admin auth.
	AdminJWTSecret string `koanf:"admin_jwt_secret"`
}

// Option customises a Config built by New.
type Option func(*Config)

// WithAddr overrides the listen address.
func WithAddr(addr string) Option {
	return func(c *Config) { c.Addr = addr }
}

// WithStoreBaseURL overrides the record store URL.
func WithStoreBaseURL(u string) Option {
	return func(c *Config) { c.StoreBaseURL = u }
}

// New creates a Config with defaults and applies opts.
func New(opts ...Option) *Config {
	c := &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		StoreBaseURL:       DefaultStoreBaseURL,
		StoreTimeoutMS:     10_000,
		SnapshotTTLMS:      30_000,
		RefreshQueueSize:   64,
		RefreshWorkerCount: 2,
		DedupeSize:         10_000,
		DedupeWindowMS:     600_000,
		RotationThreshold:  category.DefaultThreshold,
		CategoryOrder:      append([]string(nil), category.DefaultOrder...),
		PreviewSize:        4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StoreTimeout returns StoreTimeoutMS as a duration.
func (c *Config) StoreTimeout() time.Duration { return ms(c.StoreTimeoutMS) }

// SnapshotTTL returns SnapshotTTLMS as a duration.
func (c *Config) SnapshotTTL() time.Duration { return ms(c.SnapshotTTLMS) }

// DedupeWindow returns DedupeWindowMS as a duration.
func (c *Config) DedupeWindow() time.Duration { return ms(c.DedupeWindowMS) }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.StoreBaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: store_base_url must be an absolute http(s) URL, got %q", ErrInvalidConfig, c.StoreBaseURL)
	}
	if c.RotationThreshold <= 0 {
		return fmt.Errorf("%w: rotation_threshold must be positive", ErrInvalidConfig)
	}
	if c.PreviewSize <= 0 {
		return fmt.Errorf("%w: preview_size must be positive", ErrInvalidConfig)
	}
	if len(c.CategoryOrder) == 0 {
		return fmt.Errorf("%w: category_order must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	}
	return nil
}
