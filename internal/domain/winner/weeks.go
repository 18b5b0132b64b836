package winner

import (
	"slices"
	"sync"

	"github.com/redstonehub/laurel/internal/domain/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collator compares week labels letter by letter with locale rules, so
// "Week 10" sorts before "Week 2". A Collator is not safe for concurrent use.
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English)
)

func compareText(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// WeekKey is the label a weekly record is ordered and matched by: the week
// label, falling back to the date range.
func WeekKey(r model.WbcRecord) string {
	if r.WeekLabel != "" {
		return r.WeekLabel
	}
	return r.DateRange
}

// OrderWeeks orders weekly records by week key.
func OrderWeeks(records []model.WbcRecord) []model.WbcRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b model.WbcRecord) int {
		return compareText(WeekKey(a), WeekKey(b))
	})
	return out
}

// Representatives keeps one record per week key: the earliest created,
// smallest id on ties. Input order of first appearance is preserved.
func Representatives(records []model.WbcRecord) []model.WbcRecord {
	index := make(map[string]int, len(records))
	out := make([]model.WbcRecord, 0, len(records))
	for _, r := range records {
		key := WeekKey(r)
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, r)
			continue
		}
		if earlier(r.CreatedAt, r.ID, out[i].CreatedAt, out[i].ID) {
			out[i] = r
		}
	}
	return out
}

// WeeksByMonth groups weekly records by month label, one representative
// per week, each month ordered by week key. Records without a month are
// skipped.
func WeeksByMonth(records []model.WbcRecord) map[string][]model.WbcRecord {
	byMonth := make(map[string][]model.WbcRecord)
	for _, r := range records {
		if r.Month == "" {
			continue
		}
		byMonth[r.Month] = append(byMonth[r.Month], r)
	}
	for month, recs := range byMonth {
		byMonth[month] = OrderWeeks(Representatives(recs))
	}
	return byMonth
}

// FindWeek resolves a deep link: by id first, then by month plus a week
// label or date range.
func FindWeek(records []model.WbcRecord, id model.RecordID, month, week string) (model.WbcRecord, bool) {
	if !id.IsZero() {
		for _, r := range records {
			if r.ID == id {
				return r, true
			}
		}
	}
	if month == "" || week == "" {
		return model.WbcRecord{}, false
	}
	for _, r := range records {
		if r.Month == month && (r.WeekLabel == week || r.DateRange == week) {
			return r, true
		}
	}
	return model.WbcRecord{}, false
}
