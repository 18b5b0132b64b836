package aggregate

import (
	"slices"

	"github.com/redstonehub/laurel/internal/domain/calendar"
	"github.com/redstonehub/laurel/internal/domain/identity"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/types"
)

// PersonProfile collects every award of the person with the given key.
// Display fields come from the first matching record. The bool is false
// when the person has no awards.
func PersonProfile(all []model.HofRecord, key string) (types.PersonProfile, bool) {
	key = identity.Normalize(key)
	if key == "" {
		return types.PersonProfile{}, false
	}
	var entries []model.HofRecord
	for _, r := range all {
		if r.PersonKey() == key {
			entries = append(entries, r)
		}
	}
	if len(entries) == 0 {
		return types.PersonProfile{}, false
	}
	first := entries[0]
	slices.SortStableFunc(entries, func(a, b model.HofRecord) int {
		return calendar.CompareRecency(a.Month, b.Month)
	})
	return types.PersonProfile{
		Key:     key,
		Name:    first.Name,
		Avatar:  first.Avatar,
		Discord: first.Discord,
		XHandle: first.XHandle,
		Wins:    len(entries),
		Entries: entries,
	}, true
}
