package service

import (
	"context"
	"errors"

	repository "github.com/redstonehub/laurel/internal/adapters/repository"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/pkg/logger"
)

type listFunc[R any] func(ctx context.Context, f model.Filters) ([]R, error)

func flightKey(kind model.Kind, f model.Filters) string {
	return string(kind) + "|" + f.String()
}

// cached serves a listing from the snapshot cache, collapsing concurrent
// misses for the same filters into one store call.
func cached[R any](ctx context.Context, s *Service, cache *repository.SnapshotStore[R], f model.Filters, list listFunc[R]) ([]R, error) {
	if snap, ok := cache.Get(ctx, f); ok {
		return snap.Records, nil
	}
	v, err, _ := s.flight.Do(flightKey(cache.Kind(), f), func() (any, error) {
		return fetch(ctx, s, cache, f, list)
	})
	if err != nil {
		return nil, err
	}
	return v.([]R), nil
}

// fetch always calls the store and offers the result to the cache. A
// stale result is still returned to the caller that asked for it.
func fetch[R any](ctx context.Context, s *Service, cache *repository.SnapshotStore[R], f model.Filters, list listFunc[R]) ([]R, error) {
	gen := cache.Begin(ctx)
	records, err := list(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := cache.Commit(ctx, f, gen, records); err != nil {
		if !errors.Is(err, repository.ErrStaleGeneration) {
			return nil, err
		}
		s.logger.Debug(ctx, "discarded stale snapshot",
			logger.String("kind", string(cache.Kind())),
			logger.String("filters", f.String()),
		)
	}
	return records, nil
}
