// Package types contains the view shapes returned by the public API.
package types

import "github.com/redstonehub/laurel/internal/domain/model"

// ListingItem is one card of a Hall of Fame listing.
type ListingItem struct {
	Record        model.HofRecord `json:"record"`
	Slug          string          `json:"slug"`
	CategoryLabel string          `json:"category_label"`
	PersonKey     string          `json:"person_key"`
	Wins          int             `json:"wins"`
	FirstPlace    bool            `json:"first_place"`
}

// Listing is the Hall of Fame listing for a month/category/search selection.
type Listing struct {
	Month         string        `json:"month,omitempty"`
	Category      string        `json:"category"`
	CategoryLabel string        `json:"category_label"`
	Query         string        `json:"query,omitempty"`
	Months        []string      `json:"months"`
	Items         []ListingItem `json:"items"`
}

// MonthTile is a month with a preview of its section winners.
type MonthTile struct {
	Month   string        `json:"month"`
	Preview []ListingItem `json:"preview"`
}

// PersonProfile is every award of one person.
type PersonProfile struct {
	Key     string            `json:"key"`
	Name    string            `json:"name"`
	Avatar  string            `json:"avatar,omitempty"`
	Discord string            `json:"discord,omitempty"`
	XHandle string            `json:"x_handle,omitempty"`
	Wins    int               `json:"wins"`
	Entries []model.HofRecord `json:"entries"`
}

// WbcMonth is a month with its weekly winners in week order.
type WbcMonth struct {
	Month   string            `json:"month"`
	Weeks   []model.WbcRecord `json:"weeks"`
	Preview []model.WbcRecord `json:"preview"`
}

// WbcEntry is a deep-linked weekly winner.
type WbcEntry struct {
	Record    model.WbcRecord `json:"record"`
	PersonKey string          `json:"person_key"`
	TotalWins int             `json:"total_wins"`
}
