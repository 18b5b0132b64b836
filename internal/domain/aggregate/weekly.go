package aggregate

import (
	"slices"

	"github.com/redstonehub/laurel/internal/domain/calendar"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/types"
	"github.com/redstonehub/laurel/internal/domain/winner"
)

// WbcMonths lists every month with weekly winners, most recent first, one
// winner per week in week order.
func WbcMonths(all []model.WbcRecord, previewSize int) []types.WbcMonth {
	if previewSize <= 0 {
		previewSize = DefaultPreviewSize
	}
	byMonth := winner.WeeksByMonth(all)
	labels := make([]string, 0, len(byMonth))
	for month := range byMonth {
		labels = append(labels, month)
	}
	slices.Sort(labels)
	calendar.SortRecent(labels)

	out := make([]types.WbcMonth, 0, len(labels))
	for _, month := range labels {
		weeks := byMonth[month]
		out = append(out, types.WbcMonth{
			Month:   month,
			Weeks:   weeks,
			Preview: weeks[:min(previewSize, len(weeks))],
		})
	}
	return out
}

// WbcEntry resolves a weekly deep link and counts the person's weekly wins.
func WbcEntry(all []model.WbcRecord, id model.RecordID, month, week string) (types.WbcEntry, bool) {
	r, ok := winner.FindWeek(all, id, month, week)
	if !ok {
		return types.WbcEntry{}, false
	}
	key := r.PersonKey()
	total := 1
	if key != "" {
		total = WinsByPerson(all)[key]
	}
	return types.WbcEntry{Record: r, PersonKey: key, TotalWins: total}, true
}
