// Package winner picks the representative record of a month/category
// (Hall of Fame) or month/week (Weekly Best Content) scope and orders
// listings inside a scope.
package winner

import (
	"slices"

	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/placement"
)

// Select returns the featured winner of a month/category scope: the first
// placement-1 record in input order, otherwise the earliest created record
// with the smallest id breaking ties. Records with a creation time beat
// records without one. The bool is false for an empty scope.
func Select(records []model.HofRecord) (model.HofRecord, bool) {
	for _, r := range records {
		if r.HasPlacement(placement.First) {
			return r, true
		}
	}
	if len(records) == 0 {
		return model.HofRecord{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if earlier(r.CreatedAt, r.ID, best.CreatedAt, best.ID) {
			best = r
		}
	}
	return best, true
}

// OrderListing returns the records of a single month ordered for display:
// first place, then ascending placement, then every unplaced record. Equal
// placements and unplaced records are ordered newest first.
func OrderListing(records []model.HofRecord) []model.HofRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, compareListing)
	return out
}

func compareListing(a, b model.HofRecord) int {
	aFirst, bFirst := a.HasPlacement(placement.First), b.HasPlacement(placement.First)
	if aFirst != bFirst {
		if aFirst {
			return -1
		}
		return 1
	}
	aPlaced, bPlaced := a.Placement != nil, b.Placement != nil
	if aPlaced != bPlaced {
		if aPlaced {
			return -1
		}
		return 1
	}
	if aPlaced && *a.Placement != *b.Placement {
		if *a.Placement < *b.Placement {
			return -1
		}
		return 1
	}
	// Newest first.
	return b.CreatedAt.Compare(a.CreatedAt)
}
