package aggregate

import (
	"github.com/redstonehub/laurel/internal/domain/calendar"
	"github.com/redstonehub/laurel/internal/domain/category"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/types"
	"github.com/redstonehub/laurel/internal/domain/winner"
)

// MonthPreview picks the winner of each section of one month, in section
// order, skipping repeats, and keeps at most maxItems of them.
func MonthPreview(recordsInMonth []model.HofRecord, maxItems int) []model.HofRecord {
	if maxItems <= 0 {
		maxItems = DefaultPreviewSize
	}
	bySection := make(map[category.Slug][]model.HofRecord, len(category.Sections))
	for _, r := range recordsInMonth {
		slug := category.Normalize(r.Category)
		bySection[slug] = append(bySection[slug], r)
	}

	out := make([]model.HofRecord, 0, maxItems)
	seen := make(map[string]struct{}, len(category.Sections))
	for _, section := range category.Sections {
		w, ok := winner.Select(bySection[section])
		if !ok {
			continue
		}
		key := previewKey(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w)
		if len(out) >= maxItems {
			break
		}
	}
	return out
}

func previewKey(r model.HofRecord) string {
	if !r.ID.IsZero() {
		return "id:" + r.ID.String()
	}
	return r.Name + "-" + r.Category
}

// MonthTiles lists every month present in records, most recent first, each
// with its section winners.
func MonthTiles(records []model.HofRecord, maxItems int) []types.MonthTile {
	wins := WinsByPerson(records)
	byMonth := make(map[string][]model.HofRecord)
	labels := make([]string, 0)
	for _, r := range records {
		if r.Month == "" {
			continue
		}
		if _, ok := byMonth[r.Month]; !ok {
			labels = append(labels, r.Month)
		}
		byMonth[r.Month] = append(byMonth[r.Month], r)
	}
	calendar.SortRecent(labels)

	tiles := make([]types.MonthTile, 0, len(labels))
	for _, month := range labels {
		preview := MonthPreview(byMonth[month], maxItems)
		items := make([]types.ListingItem, 0, len(preview))
		for _, r := range preview {
			items = append(items, item(r, wins, r.HasPlacement(1)))
		}
		tiles = append(tiles, types.MonthTile{Month: month, Preview: items})
	}
	return tiles
}
