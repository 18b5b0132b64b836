// Package service provides the workflow glue between the record store, the
// award rules and the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	eventqueue "github.com/redstonehub/laurel/internal/adapters/mq/queue"
	workerpool "github.com/redstonehub/laurel/internal/adapters/mq/worker"
	"github.com/redstonehub/laurel/internal/adapters/prefs"
	repository "github.com/redstonehub/laurel/internal/adapters/repository"
	"github.com/redstonehub/laurel/internal/domain/category"
	"github.com/redstonehub/laurel/internal/domain/dedupe"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/validation"
	"github.com/redstonehub/laurel/pkg/logger"
	"github.com/redstonehub/laurel/pkg/metrics"
)

// RecordStore is the remote record store the service reads and writes.
type RecordStore interface {
	ListHof(ctx context.Context, f model.Filters) ([]model.HofRecord, error)
	ListWbc(ctx context.Context, f model.Filters) ([]model.WbcRecord, error)
	CreateHof(ctx context.Context, p model.HofPayload) (model.HofRecord, error)
	CreateWbc(ctx context.Context, p model.WbcPayload) (model.WbcRecord, error)
	UpdateHof(ctx context.Context, id model.RecordID, p model.HofPayload) (model.HofRecord, error)
	UpdateWbc(ctx context.Context, id model.RecordID, p model.WbcPayload) (model.WbcRecord, error)
	UpdatePlacement(ctx context.Context, id model.RecordID, placement *int) (model.HofRecord, error)
	Delete(ctx context.Context, kind model.Kind, id model.RecordID) error
	LookupProfile(ctx context.Context, kind model.Kind, discord string) (*model.Profile, error)
}

// Service implements the API dependencies for both award programs.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     RecordStore
	prefs     prefs.Store
	hof       *repository.SnapshotStore[model.HofRecord]
	wbc       *repository.SnapshotStore[model.WbcRecord]
	flight    singleflight.Group
	deduper   dedupe.Deduper
	validator *validation.Validator
	rotation  category.Rotation
	queue     *eventqueue.InMemoryQueue
	pool      *workerpool.Pool

	// Configuration
	workerCount  int
	queueSize    int
	dedupeSize   int
	dedupeWindow time.Duration
	snapshotTTL  time.Duration
	previewSize  int
	now          func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a Service over store with default configuration.
func New(store RecordStore, opts ...Option) *Service {
	s := &Service{
		store:        store,
		rotation:     category.NewRotation(nil, 0),
		workerCount:  2,
		queueSize:    64,
		dedupeSize:   10000,
		dedupeWindow: 10 * time.Minute,
		snapshotTTL:  30 * time.Second,
		previewSize:  4,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.prefs == nil {
		s.prefs = prefs.NewMemory()
	}
	s.hof = repository.NewSnapshotStore[model.HofRecord](model.KindHof,
		repository.WithTTL(s.snapshotTTL), repository.WithClock(s.now))
	s.wbc = repository.NewSnapshotStore[model.WbcRecord](model.KindWbc,
		repository.WithTTL(s.snapshotTTL), repository.WithClock(s.now))
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
		dedupe.WithWindow(s.dedupeWindow),
		dedupe.WithClock(s.now),
	)
	s.validator = validation.New()

	return s
}

// Start creates the refresh queue and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "award service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Duration("snapshotTTL", s.snapshotTTL),
	)

	return nil
}

// Stop closes the refresh queue and waits for the workers.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	s.logger.Info(ctx, "stopping award service...")
	err := s.pool.Shutdown(ctx)
	s.started = false
	s.logger.Info(ctx, "award service stopped")
	return err
}

// Refresh re-fetches one listing and caches it. It is called by the
// refresh workers.
func (s *Service) Refresh(ctx context.Context, kind model.Kind, f model.Filters) error {
	switch kind {
	case model.KindHof:
		_, err := fetch(ctx, s, s.hof, f, s.store.ListHof)
		return err
	case model.KindWbc:
		_, err := fetch(ctx, s, s.wbc, f, s.store.ListWbc)
		return err
	}
	return ErrUnknownKind
}

// SeenAndRecord reports whether a submission key was already used, and
// records it otherwise. Empty keys are never duplicates.
func (s *Service) SeenAndRecord(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}
	seen := s.deduper.SeenAndRecord(ctx, key)
	if seen {
		metrics.RecordSubmissionDuplicate()
	}
	return seen
}

// Unrecord forgets a submission key so a failed submission can be retried.
func (s *Service) Unrecord(ctx context.Context, key string) {
	if key == "" {
		return
	}
	s.deduper.Unrecord(ctx, key)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":           s.started,
		"workerCount":       s.workerCount,
		"queueSize":         s.queueSize,
		"dedupeSize":        s.dedupeSize,
		"dedupeEntries":     s.deduper.Size(),
		"hofSnapshots":      s.hof.Count(ctx),
		"wbcSnapshots":      s.wbc.Count(ctx),
		"staleCommits":      s.hof.StaleCommits() + s.wbc.StaleCommits(),
		"rotationThreshold": s.rotation.Threshold,
		"previewSize":       s.previewSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["refreshed"] = s.pool.Processed()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// afterWrite drops cached snapshots of kind and schedules a refresh of the
// unfiltered listing and of the listing the write touched.
func (s *Service) afterWrite(ctx context.Context, kind model.Kind, op string, f model.Filters) {
	metrics.RecordAdminWrite(string(kind), op)

	switch kind {
	case model.KindHof:
		s.hof.Invalidate(ctx)
	case model.KindWbc:
		s.wbc.Invalidate(ctx)
	}
	s.flight.Forget(flightKey(kind, model.Filters{}))
	s.flight.Forget(flightKey(kind, f))

	s.mu.RLock()
	q := s.queue
	s.mu.RUnlock()
	if q == nil {
		return
	}
	for _, target := range distinctFilters(model.Filters{}, f) {
		if !q.Enqueue(ctx, eventqueue.Job{Kind: kind, Filters: target, Reason: op}) {
			s.logger.Debug(ctx, "refresh job dropped",
				logger.String("kind", string(kind)),
				logger.String("filters", target.String()),
			)
		}
	}
}

func distinctFilters(fs ...model.Filters) []model.Filters {
	out := make([]model.Filters, 0, len(fs))
	seen := make(map[model.Filters]struct{}, len(fs))
	for _, f := range fs {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
