package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// createdAtLayouts are tried in order when decoding created_at.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// hofWire mirrors a Hall of Fame row as exchanged with the store.
type hofWire struct {
	ID        RecordID        `json:"id"`
	PersonID  *string         `json:"person_id,omitempty"`
	Name      string          `json:"name"`
	Avatar    string          `json:"avatar"`
	Discord   string          `json:"discord"`
	XHandle   string          `json:"x_handle"`
	X         string          `json:"x,omitempty"`
	Link      string          `json:"link"`
	Month     string          `json:"month"`
	Year      json.RawMessage `json:"year,omitempty"`
	Category  string          `json:"category"`
	Placement json.RawMessage `json:"placement"`
	CreatedAt *string         `json:"created_at,omitempty"`
}

// wbcWire mirrors a Weekly Best Content row as exchanged with the store.
type wbcWire struct {
	ID        RecordID        `json:"id"`
	PersonID  *string         `json:"person_id,omitempty"`
	Name      string          `json:"name"`
	Avatar    string          `json:"avatar"`
	Discord   string          `json:"discord"`
	XHandle   string          `json:"x_handle"`
	X         string          `json:"x,omitempty"`
	Link      string          `json:"link"`
	Month     string          `json:"month"`
	Year      json.RawMessage `json:"year,omitempty"`
	WeekLabel string          `json:"week_label"`
	DateRange string          `json:"date_range"`
	CreatedAt *string         `json:"created_at,omitempty"`
}

// UnmarshalJSON decodes a store row, tolerating the legacy "x" field and
// placements sent as strings.
func (r *HofRecord) UnmarshalJSON(data []byte) error {
	var w hofWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode hof record: %w", err)
	}
	placement, err := decodeOptionalInt(w.Placement)
	if err != nil {
		return fmt.Errorf("decode hof placement: %w", err)
	}
	year, err := decodeOptionalInt(w.Year)
	if err != nil {
		return fmt.Errorf("decode hof year: %w", err)
	}
	*r = HofRecord{
		ID:        w.ID,
		PersonID:  deref(w.PersonID),
		Name:      w.Name,
		Avatar:    w.Avatar,
		Discord:   w.Discord,
		XHandle:   firstNonEmpty(w.XHandle, w.X),
		Link:      w.Link,
		Month:     w.Month,
		Year:      derefInt(year),
		Category:  w.Category,
		Placement: placement,
		CreatedAt: parseCreatedAt(w.CreatedAt),
	}
	return nil
}

// MarshalJSON encodes the record in the store row format.
func (r HofRecord) MarshalJSON() ([]byte, error) {
	w := hofWire{
		ID:        r.ID,
		PersonID:  optionalString(r.PersonID),
		Name:      r.Name,
		Avatar:    r.Avatar,
		Discord:   r.Discord,
		XHandle:   r.XHandle,
		Link:      r.Link,
		Month:     r.Month,
		Year:      encodeOptionalInt(r.Year),
		Category:  r.Category,
		Placement: json.RawMessage("null"),
		CreatedAt: formatCreatedAt(r.CreatedAt),
	}
	if r.Placement != nil {
		w.Placement = json.RawMessage(strconv.Itoa(*r.Placement))
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a store row, tolerating the legacy "x" field.
func (r *WbcRecord) UnmarshalJSON(data []byte) error {
	var w wbcWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode wbc record: %w", err)
	}
	year, err := decodeOptionalInt(w.Year)
	if err != nil {
		return fmt.Errorf("decode wbc year: %w", err)
	}
	*r = WbcRecord{
		ID:        w.ID,
		PersonID:  deref(w.PersonID),
		Name:      w.Name,
		Avatar:    w.Avatar,
		Discord:   w.Discord,
		XHandle:   firstNonEmpty(w.XHandle, w.X),
		Link:      w.Link,
		Month:     w.Month,
		Year:      derefInt(year),
		WeekLabel: w.WeekLabel,
		DateRange: w.DateRange,
		CreatedAt: parseCreatedAt(w.CreatedAt),
	}
	return nil
}

// MarshalJSON encodes the record in the store row format.
func (r WbcRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(wbcWire{
		ID:        r.ID,
		PersonID:  optionalString(r.PersonID),
		Name:      r.Name,
		Avatar:    r.Avatar,
		Discord:   r.Discord,
		XHandle:   r.XHandle,
		Link:      r.Link,
		Month:     r.Month,
		Year:      encodeOptionalInt(r.Year),
		WeekLabel: r.WeekLabel,
		DateRange: r.DateRange,
		CreatedAt: formatCreatedAt(r.CreatedAt),
	})
}

// decodeOptionalInt reads null, a number, or a numeric string.
func decodeOptionalInt(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
	} else {
		s = string(raw)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	n := int(f)
	return &n, nil
}

func encodeOptionalInt(n int) json.RawMessage {
	if n == 0 {
		return nil
	}
	return json.RawMessage(strconv.Itoa(n))
}

func parseCreatedAt(s *string) time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return time.Time{}
	}
	v := strings.TrimSpace(*s)
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatCreatedAt(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
