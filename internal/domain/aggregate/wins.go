// Package aggregate builds the read views of both award programs: lifetime
// win tallies, the all-time overview, month previews, listings and person
// profiles. Every function is pure and leaves its input untouched.
package aggregate

import (
	"slices"
	"time"

	"github.com/redstonehub/laurel/internal/domain/identity"
	"github.com/redstonehub/laurel/internal/domain/model"
)

// DefaultPreviewSize bounds a month tile preview when no size is given.
const DefaultPreviewSize = 4

// WinsByPerson counts records per person key. Records without a key are
// skipped.
func WinsByPerson[S identity.Subject](records []S) map[string]int {
	wins := make(map[string]int, len(records))
	for _, r := range records {
		key := identity.KeyOf(r)
		if key == "" {
			continue
		}
		wins[key]++
	}
	return wins
}

// UnfilteredOverview keeps the most recent record of each person and orders
// them by lifetime wins, then newest first. When two records of a person
// share a creation time the first one seen is kept.
func UnfilteredOverview(records []model.HofRecord, wins map[string]int) []model.HofRecord {
	latest := make(map[string]int, len(records))
	out := make([]model.HofRecord, 0, len(records))
	for _, r := range records {
		key := r.PersonKey()
		if key == "" {
			continue
		}
		i, ok := latest[key]
		if !ok {
			latest[key] = len(out)
			out = append(out, r)
			continue
		}
		if unix(r.CreatedAt) > unix(out[i].CreatedAt) {
			out[i] = r
		}
	}
	slices.SortStableFunc(out, func(a, b model.HofRecord) int {
		if wa, wb := wins[a.PersonKey()], wins[b.PersonKey()]; wa != wb {
			return wb - wa
		}
		return compareInt64(unix(b.CreatedAt), unix(a.CreatedAt))
	})
	return out
}

// unix maps an absent creation time to 0 so it sorts as the oldest.
func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
