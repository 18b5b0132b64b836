package service

import (
	"time"

	"github.com/redstonehub/laurel/internal/adapters/prefs"
	"github.com/redstonehub/laurel/internal/domain/category"
	"github.com/redstonehub/laurel/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of refresh workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the refresh queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the number of submission keys remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithDedupeWindow sets how long a submission key blocks a resubmit.
func WithDedupeWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.dedupeWindow = d
		}
	}
}

// WithSnapshotTTL sets how long a fetched listing is served from cache.
func WithSnapshotTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.snapshotTTL = d
		}
	}
}

// WithRotation sets the admin category order and the advance threshold.
func WithRotation(order []string, threshold int) Option {
	return func(s *Service) {
		s.rotation = category.NewRotation(order, threshold)
	}
}

// WithPreviewSize sets the number of winners previewed per month tile.
func WithPreviewSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.previewSize = n
		}
	}
}

// WithPrefs sets where admin filter selections are persisted.
func WithPrefs(p prefs.Store) Option {
	return func(s *Service) {
		if p != nil {
			s.prefs = p
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
