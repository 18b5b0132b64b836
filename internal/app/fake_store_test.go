package service_test

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redstonehub/laurel/internal/domain/model"
)

// fakeStore keeps records in memory and ignores listing filters, like a
// store whose filtering cannot be trusted.
type fakeStore struct {
	mu       sync.Mutex
	hof      []model.HofRecord
	wbc      []model.WbcRecord
	nextID   int
	lists    int
	writes   int
	listErr  error
	writeErr error
	profiles map[string]model.Profile
	clock    time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: make(map[string]model.Profile),
		clock:    time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) id() model.RecordID {
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	return model.RecordID(strconv.Itoa(f.nextID))
}

func (f *fakeStore) ListHof(context.Context, model.Filters) ([]model.HofRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.HofRecord(nil), f.hof...), nil
}

// exactStore filters Hall of Fame listings by raw month and category text,
// like a store that compares strings as given.
type exactStore struct {
	*fakeStore
}

func (e exactStore) ListHof(ctx context.Context, f model.Filters) ([]model.HofRecord, error) {
	all, err := e.fakeStore.ListHof(ctx, f)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, r := range all {
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.Month != "" && r.Month != f.Month {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) firstPlaces() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.hof {
		if r.HasPlacement(1) {
			n++
		}
	}
	return n
}

func (f *fakeStore) ListWbc(context.Context, model.Filters) ([]model.WbcRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.WbcRecord(nil), f.wbc...), nil
}

func (f *fakeStore) CreateHof(_ context.Context, p model.HofPayload) (model.HofRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return model.HofRecord{}, f.writeErr
	}
	f.writes++
	rec := hofFromPayload(f.id(), p)
	rec.CreatedAt = f.clock
	f.hof = append(f.hof, rec)
	return rec, nil
}

func (f *fakeStore) CreateWbc(_ context.Context, p model.WbcPayload) (model.WbcRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return model.WbcRecord{}, f.writeErr
	}
	f.writes++
	rec := wbcFromPayload(f.id(), p)
	rec.CreatedAt = f.clock
	f.wbc = append(f.wbc, rec)
	return rec, nil
}

func (f *fakeStore) UpdateHof(_ context.Context, id model.RecordID, p model.HofPayload) (model.HofRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return model.HofRecord{}, f.writeErr
	}
	f.writes++
	for i := range f.hof {
		if f.hof[i].ID == id {
			rec := hofFromPayload(id, p)
			rec.CreatedAt = f.hof[i].CreatedAt
			f.hof[i] = rec
			return rec, nil
		}
	}
	return model.HofRecord{}, errNotFound
}

func (f *fakeStore) UpdateWbc(_ context.Context, id model.RecordID, p model.WbcPayload) (model.WbcRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return model.WbcRecord{}, f.writeErr
	}
	f.writes++
	for i := range f.wbc {
		if f.wbc[i].ID == id {
			rec := wbcFromPayload(id, p)
			rec.CreatedAt = f.wbc[i].CreatedAt
			f.wbc[i] = rec
			return rec, nil
		}
	}
	return model.WbcRecord{}, errNotFound
}

func (f *fakeStore) UpdatePlacement(_ context.Context, id model.RecordID, p *int) (model.HofRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return model.HofRecord{}, f.writeErr
	}
	f.writes++
	for i := range f.hof {
		if f.hof[i].ID == id {
			f.hof[i].Placement = p
			return f.hof[i], nil
		}
	}
	return model.HofRecord{}, errNotFound
}

func (f *fakeStore) Delete(_ context.Context, kind model.Kind, id model.RecordID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes++
	switch kind {
	case model.KindHof:
		for i := range f.hof {
			if f.hof[i].ID == id {
				f.hof = append(f.hof[:i], f.hof[i+1:]...)
				return nil
			}
		}
	case model.KindWbc:
		for i := range f.wbc {
			if f.wbc[i].ID == id {
				f.wbc = append(f.wbc[:i], f.wbc[i+1:]...)
				return nil
			}
		}
	}
	return errNotFound
}

func (f *fakeStore) LookupProfile(_ context.Context, _ model.Kind, discord string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[discord]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *fakeStore) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func hofFromPayload(id model.RecordID, p model.HofPayload) model.HofRecord {
	return model.HofRecord{
		ID:        id,
		Name:      p.Name,
		Avatar:    p.Avatar,
		Discord:   p.Discord,
		XHandle:   p.XHandle,
		Link:      p.Link,
		Month:     p.Month,
		Year:      p.Year,
		Category:  p.Category,
		Placement: p.Placement,
	}
}

func wbcFromPayload(id model.RecordID, p model.WbcPayload) model.WbcRecord {
	return model.WbcRecord{
		ID:        id,
		Name:      p.Name,
		Avatar:    p.Avatar,
		Discord:   p.Discord,
		XHandle:   p.XHandle,
		Link:      p.Link,
		Month:     p.Month,
		Year:      p.Year,
		DateRange: p.DateRange,
	}
}
