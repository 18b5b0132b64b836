// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redstonehub/laurel/internal/domain/identity"
)

// Kind selects one of the two award programs.
type Kind string

// Award programs. The value doubles as the record store path segment.
const (
	KindHof Kind = "hof"
	KindWbc Kind = "wbc"
)

// ParseKind maps a path segment to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindHof:
		return KindHof, true
	case KindWbc:
		return KindWbc, true
	}
	return "", false
}

// Label returns the short human name used in messages ("HoF", "WBC").
func (k Kind) Label() string {
	if k == KindWbc {
		return "WBC"
	}
	return "HoF"
}

// RecordID is the opaque identifier assigned by the record store.
// The store emits numbers today; strings are accepted as well.
type RecordID string

// String implements fmt.Stringer.
func (id RecordID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id RecordID) IsZero() bool { return id == "" }

// Less orders ids numerically when both are integers, lexicographically otherwise.
func (id RecordID) Less(other RecordID) bool {
	a, errA := strconv.ParseInt(string(id), 10, 64)
	b, errB := strconv.ParseInt(string(other), 10, 64)
	if errA == nil && errB == nil {
		return a < b
	}
	return id < other
}

// MarshalJSON emits integer ids as JSON numbers to round-trip the store format.
func (id RecordID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON number, string or null.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("record id: %w", err)
		}
		*id = RecordID(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("record id: %w", err)
		}
		*id = RecordID(n.String())
	}
	return nil
}

// HofRecord is one Hall of Fame award as stored remotely.
type HofRecord struct {
	ID        RecordID
	PersonID  string
	Name      string
	Avatar    string
	Discord   string
	XHandle   string
	Link      string
	Month     string
	Year      int
	Category  string
	Placement *int
	CreatedAt time.Time
}

// IdentityFields returns the raw fields the person key is derived from.
func (r HofRecord) IdentityFields() (personID, name string) { return r.PersonID, r.Name }

// PersonKey groups the record with the other awards of the same person.
func (r HofRecord) PersonKey() string { return identity.Resolve(r.PersonID, r.Name) }

// HasPlacement reports whether the record holds exactly the given placement.
func (r HofRecord) HasPlacement(p int) bool { return r.Placement != nil && *r.Placement == p }

// WbcRecord is one Weekly Best Content award as stored remotely.
type WbcRecord struct {
	ID        RecordID
	PersonID  string
	Name      string
	Avatar    string
	Discord   string
	XHandle   string
	Link      string
	Month     string
	Year      int
	WeekLabel string
	DateRange string
	CreatedAt time.Time
}

// IdentityFields returns the raw fields the person key is derived from.
func (r WbcRecord) IdentityFields() (personID, name string) { return r.PersonID, r.Name }

// PersonKey groups the record with the other awards of the same person.
func (r WbcRecord) PersonKey() string { return identity.Resolve(r.PersonID, r.Name) }

// Filters narrows a store listing. The store treats them as advisory.
type Filters struct {
	Month    string `json:"month,omitempty" yaml:"month,omitempty"`
	Year     int    `json:"year,omitempty" yaml:"year,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool { return f.Month == "" && f.Year == 0 && f.Category == "" }

// String renders a stable cache key fragment.
func (f Filters) String() string {
	return fmt.Sprintf("month=%s|year=%d|category=%s", f.Month, f.Year, f.Category)
}

// HofPayload is the create/update body for a Hall of Fame record.
type HofPayload struct {
	Name      string `json:"name"`
	Discord   string `json:"discord"`
	XHandle   string `json:"x_handle"`
	Avatar    string `json:"avatar"`
	Link      string `json:"link"`
	Placement *int   `json:"placement"`
	Category  string `json:"category"`
	Month     string `json:"month"`
	Year      int    `json:"year"`
}

// Trimmed returns a copy with surrounding whitespace removed from text fields.
func (p HofPayload) Trimmed() HofPayload {
	p.Name = strings.TrimSpace(p.Name)
	p.Discord = strings.TrimSpace(p.Discord)
	p.XHandle = strings.TrimSpace(p.XHandle)
	p.Link = strings.TrimSpace(p.Link)
	p.Category = strings.TrimSpace(p.Category)
	p.Month = strings.TrimSpace(p.Month)
	return p
}

// WbcPayload is the create/update body for a Weekly Best Content record.
type WbcPayload struct {
	Name      string `json:"name"`
	Month     string `json:"month"`
	Year      int    `json:"year"`
	DateRange string `json:"date_range"`
	Link      string `json:"link"`
	Discord   string `json:"discord"`
	XHandle   string `json:"x_handle"`
	Avatar    string `json:"avatar"`
}

// Trimmed returns a copy with surrounding whitespace removed from text fields.
func (p WbcPayload) Trimmed() WbcPayload {
	p.Name = strings.TrimSpace(p.Name)
	p.Month = strings.TrimSpace(p.Month)
	p.DateRange = strings.TrimSpace(p.DateRange)
	p.Link = strings.TrimSpace(p.Link)
	p.Discord = strings.TrimSpace(p.Discord)
	p.XHandle = strings.TrimSpace(p.XHandle)
	return p
}

// Profile is the pre-fill data returned by a handle lookup.
type Profile struct {
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	XHandle string `json:"x_handle"`
}

// AdminFilters is the persisted admin selection for one program.
type AdminFilters struct {
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Month    string `json:"month" yaml:"month"`
	Year     int    `json:"year" yaml:"year"`
}

// Filters converts the admin selection into store listing filters.
func (a AdminFilters) Filters() Filters {
	return Filters{Month: a.Month, Year: a.Year, Category: a.Category}
}
