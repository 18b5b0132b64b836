// Package repository caches record store snapshots between reads.
//
// Every fetch is stamped with a generation taken before the request goes
// out. A snapshot is committed only if its generation is newer than both
// the snapshot already cached for the same filters and the last
// invalidation, so a slow fetch that started before an admin write can
// never overwrite fresher data.
package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/pkg/metrics"
)

// Generation orders fetches of one SnapshotStore.
type Generation uint64

// Snapshot is an immutable list of records fetched at one point in time.
// Callers must not modify Records.
type Snapshot[R any] struct {
	Records    []R
	Generation Generation
	FetchedAt  time.Time
}

// SnapshotStore holds the latest snapshot per listing filter for one
// award program. It is safe for concurrent use.
type SnapshotStore[R any] struct {
	kind model.Kind
	ttl  time.Duration
	now  func() time.Time

	next atomic.Uint64

	mu      sync.RWMutex
	entries map[model.Filters]Snapshot[R]
	barrier Generation
	stale   atomic.Int64
}

// NewSnapshotStore creates an empty store for kind.
func NewSnapshotStore[R any](kind model.Kind, opts ...Option) *SnapshotStore[R] {
	s := settings{ttl: 30 * time.Second, now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return &SnapshotStore[R]{
		kind:    kind,
		ttl:     s.ttl,
		now:     s.now,
		entries: make(map[model.Filters]Snapshot[R]),
	}
}

// Kind returns the program the store caches.
func (s *SnapshotStore[R]) Kind() model.Kind { return s.kind }

// Begin allocates the generation of a fetch about to start.
func (s *SnapshotStore[R]) Begin(_ context.Context) Generation {
	return Generation(s.next.Add(1))
}

// Commit caches records fetched under gen for filters. It returns
// ErrStaleGeneration, and keeps the cached snapshot, when a newer fetch has
// already committed or the cache was invalidated after gen began.
func (s *SnapshotStore[R]) Commit(_ context.Context, f model.Filters, gen Generation, records []R) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen <= s.barrier {
		s.recordStale()
		return ErrStaleGeneration
	}
	if cur, ok := s.entries[f]; ok && cur.Generation >= gen {
		s.recordStale()
		return ErrStaleGeneration
	}
	s.entries[f] = Snapshot[R]{Records: records, Generation: gen, FetchedAt: s.now()}
	metrics.UpdateCacheEntries(len(s.entries))
	if f.IsEmpty() {
		metrics.UpdateSnapshotRecords(string(s.kind), len(records))
	}
	return nil
}

// Get returns the cached snapshot for filters if it has not expired.
func (s *SnapshotStore[R]) Get(_ context.Context, f model.Filters) (Snapshot[R], bool) {
	s.mu.RLock()
	snap, ok := s.entries[f]
	s.mu.RUnlock()
	if !ok || (s.ttl > 0 && s.now().Sub(snap.FetchedAt) >= s.ttl) {
		metrics.RecordCacheMiss(string(s.kind))
		return Snapshot[R]{}, false
	}
	metrics.RecordCacheHit(string(s.kind))
	return snap, true
}

// Invalidate drops every cached snapshot and refuses commits from fetches
// that began before the call.
func (s *SnapshotStore[R]) Invalidate(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.barrier = Generation(s.next.Load())
	clear(s.entries)
	metrics.UpdateCacheEntries(0)
}

// Count returns the number of cached snapshots.
func (s *SnapshotStore[R]) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StaleCommits returns how many fetched snapshots were discarded.
func (s *SnapshotStore[R]) StaleCommits() int64 {
	return s.stale.Load()
}

func (s *SnapshotStore[R]) recordStale() {
	s.stale.Add(1)
	metrics.RecordStaleCommit(string(s.kind))
}
