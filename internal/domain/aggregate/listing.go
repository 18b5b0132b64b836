package aggregate

import (
	"strings"

	"github.com/redstonehub/laurel/internal/domain/calendar"
	"github.com/redstonehub/laurel/internal/domain/category"
	"github.com/redstonehub/laurel/internal/domain/model"
	"github.com/redstonehub/laurel/internal/domain/placement"
	"github.com/redstonehub/laurel/internal/domain/types"
	"github.com/redstonehub/laurel/internal/domain/winner"
)

// ListingQuery selects a Hall of Fame listing. An empty Month means every
// month; the overall slug means every category.
type ListingQuery struct {
	Month  string
	Slug   category.Slug
	Search string
}

// Listing filters records by category, month and search text. With a month
// selected the result is in display order and first-place records are
// badged. With neither month nor category it collapses to one card per
// person.
func Listing(all []model.HofRecord, q ListingQuery) types.Listing {
	if q.Slug == "" {
		q.Slug = category.Overall
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	wins := WinsByPerson(all)

	filtered := make([]model.HofRecord, 0, len(all))
	months := make([]string, 0)
	for _, r := range all {
		months = append(months, r.Month)
		if q.Slug != category.Overall && category.Normalize(r.Category) != q.Slug {
			continue
		}
		if q.Month != "" && r.Month != q.Month {
			continue
		}
		if search != "" && !strings.Contains(haystack(r), search) {
			continue
		}
		filtered = append(filtered, r)
	}

	switch {
	case q.Month != "":
		filtered = winner.OrderListing(filtered)
	case q.Slug == category.Overall:
		filtered = UnfilteredOverview(filtered, wins)
	}

	items := make([]types.ListingItem, 0, len(filtered))
	for _, r := range filtered {
		badge := q.Month != "" && r.Month == q.Month && r.HasPlacement(placement.First)
		items = append(items, item(r, wins, badge))
	}
	return types.Listing{
		Month:         q.Month,
		Category:      string(q.Slug),
		CategoryLabel: q.Slug.Label(),
		Query:         q.Search,
		Months:        calendar.Distinct(months),
		Items:         items,
	}
}

// haystack is the lower-cased text a search matches against.
func haystack(r model.HofRecord) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{r.Name, r.Discord, r.XHandle} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func item(r model.HofRecord, wins map[string]int, firstPlace bool) types.ListingItem {
	slug := category.Normalize(r.Category)
	key := r.PersonKey()
	n := wins[key]
	if n == 0 {
		n = 1
	}
	return types.ListingItem{
		Record:        r,
		Slug:          string(slug),
		CategoryLabel: slug.Label(),
		PersonKey:     key,
		Wins:          n,
		FirstPlace:    firstPlace,
	}
}
