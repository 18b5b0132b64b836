// Package placement enforces the single-first-place rule inside a
// (month, category) group of Hall of Fame records.
package placement

import (
	"github.com/redstonehub/laurel/internal/domain/calendar"
	"github.com/redstonehub/laurel/internal/domain/category"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/validation"
)

// First is the placement reserved for a single record per group.
const First = 1

// ReasonFirstTaken is reported when a second first place is requested.
const ReasonFirstTaken = "Placement 1 is already assigned to another winner in this category."

// GroupOf selects the records sharing the month and category slug of the
// given selection. Upstream filtering is ignored; the group is re-derived
// from the records themselves.
func GroupOf(records []model.HofRecord, month string, year int, categoryText string) []model.HofRecord {
	slug := category.Normalize(categoryText)
	out := make([]model.HofRecord, 0, len(records))
	for _, r := range records {
		if category.Normalize(r.Category) != slug {
			continue
		}
		if !calendar.SameMonth(r.Month, month, year) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// HasFirst reports whether any record in group, other than excluding,
// holds first place.
func HasFirst(group []model.HofRecord, excluding model.RecordID) bool {
	for _, r := range group {
		if !excluding.IsZero() && r.ID == excluding {
			continue
		}
		if r.HasPlacement(First) {
			return true
		}
	}
	return false
}

// CanAssignFirst returns false iff candidate is 1 and another record in the
// group already holds 1. excluding identifies the record being edited.
func CanAssignFirst(candidate *int, group []model.HofRecord, excluding model.RecordID) bool {
	if candidate == nil || *candidate != First {
		return true
	}
	return !HasFirst(group, excluding)
}

// ResolveCreate decides the placement of a new record. With no requested
// placement, first place is auto-assigned only when the group has none;
// otherwise the record is created unplaced. The bool reports an auto
// assignment.
func ResolveCreate(requested *int, group []model.HofRecord) (*int, bool, error) {
	if requested == nil {
		if HasFirst(group, "") {
			return nil, false, nil
		}
		first := First
		return &first, true, nil
	}
	if !CanAssignFirst(requested, group, "") {
		return nil, false, validation.NewError(ReasonFirstTaken)
	}
	p := *requested
	return &p, false, nil
}

// ValidateEdit checks an explicitly supplied placement for an existing
// record. Edits never auto-assign.
func ValidateEdit(requested *int, group []model.HofRecord, id model.RecordID) error {
	if !CanAssignFirst(requested, group, id) {
		return validation.NewError(ReasonFirstTaken)
	}
	return nil
}

// FindByID returns the record with the given id.
func FindByID(records []model.HofRecord, id model.RecordID) (model.HofRecord, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return model.HofRecord{}, false
}
