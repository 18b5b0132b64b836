package repository

import "time"

type settings struct {
	ttl time.Duration
	now func() time.Time
}

// Option applies a configuration option to a SnapshotStore.
type Option func(*settings)

// WithTTL sets how long a committed snapshot is served. Zero never expires.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}
