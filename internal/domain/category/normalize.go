// Package category maps free-form category text onto fixed slugs and
// decides when the admin's active category advances.
package category

import "strings"

// Slug is a normalized category identifier.
type Slug string

// Category slugs. Overall doubles as the "all categories" pseudo-slug.
const (
	Written Slug = "written"
	Visual  Slug = "visual"
	Meme    Slug = "meme"
	Other   Slug = "other"
	Overall Slug = "overall"
)

// Sections lists the concrete categories in display order.
var Sections = []Slug{Written, Visual, Meme, Other}

var labels = map[Slug]string{
	Overall: "All",
	Written: "Written content",
	Visual:  "Visual & Art content",
	Meme:    "Meme content",
	Other:   "Other Creative Content",
}

// Normalize maps category text to a slug. Checks run in a fixed order and
// match substrings case-insensitively; anything unmatched is Overall.
func Normalize(raw string) Slug {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "written"):
		return Written
	case strings.Contains(s, "visual"), strings.Contains(s, "art"):
		return Visual
	case strings.Contains(s, "meme"):
		return Meme
	case strings.Contains(s, "other"):
		return Other
	default:
		return Overall
	}
}

// ParseSlug reads a slug from a query parameter. Unknown values are Overall.
func ParseSlug(raw string) Slug {
	s := Slug(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := labels[s]; ok {
		return s
	}
	return Overall
}

// Label returns the display label of a slug.
func (s Slug) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return labels[Overall]
}

// Option pairs a slug with its display label.
type Option struct {
	Slug  Slug   `json:"slug"`
	Label string `json:"label"`
}

// Options lists the overall pseudo-slug followed by every section.
func Options() []Option {
	out := make([]Option, 0, len(Sections)+1)
	out = append(out, Option{Slug: Overall, Label: Overall.Label()})
	for _, s := range Sections {
		out = append(out, Option{Slug: s, Label: s.Label()})
	}
	return out
}
