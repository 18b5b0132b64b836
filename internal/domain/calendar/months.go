// Package calendar orders month labels such as "November, 2025".
//
// Labels carry a month name and, usually, a year. A single chronological
// comparison is used everywhere: year first (a missing year counts as 0),
// then the calendar position of the month name.
package calendar

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Names lists the calendar months in order.
var Names = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// minYear and maxYear bound what is accepted as a year token.
const (
	minYear = 1000
	maxYear = 9999
)

// Label is a parsed month label.
type Label struct {
	// Year is 0 when the label carries no year.
	Year int
	// Month is the 0-based calendar index, -1 when unrecognized.
	Month int
}

// MonthIndex returns the 0-based calendar position of the label's month
// name, taken from the text before the first comma or space. Unrecognized
// labels return -1.
func MonthIndex(label string) int {
	head := strings.TrimSpace(label)
	if i := strings.IndexAny(head, ", "); i >= 0 {
		head = head[:i]
	}
	for i, name := range Names {
		if strings.EqualFold(head, name) {
			return i
		}
	}
	return -1
}

// Parse extracts the month index and the first four-digit year of a label.
func Parse(label string) Label {
	l := Label{Month: MonthIndex(label)}
	fields := strings.FieldsFunc(label, func(r rune) bool { return r == ',' || r == ' ' })
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err == nil && n >= minYear && n <= maxYear {
			l.Year = n
			break
		}
	}
	return l
}

// Compare orders labels chronologically (ascending) and returns -1, 0 or +1.
func Compare(a, b string) int {
	la, lb := Parse(a), Parse(b)
	if c := cmp.Compare(la.Year, lb.Year); c != 0 {
		return c
	}
	return cmp.Compare(la.Month, lb.Month)
}

// CompareRecency orders the most recent label first.
func CompareRecency(a, b string) int { return Compare(b, a) }

// SortRecent sorts labels most recent first. Equal labels keep their order.
func SortRecent(labels []string) {
	slices.SortStableFunc(labels, CompareRecency)
}

// Distinct returns the non-empty labels of values, most recent first.
func Distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	SortRecent(out)
	return out
}

// SameMonth reports whether label names the given month and year. A label
// without a year matches any year, and year 0 falls back to a year carried
// by month itself before matching any label year. When either side has no
// recognizable month name the trimmed labels are compared case-insensitively.
func SameMonth(label, month string, year int) bool {
	l, m := Parse(label), Parse(month)
	if l.Month < 0 || m.Month < 0 {
		return strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(month))
	}
	if l.Month != m.Month {
		return false
	}
	if year == 0 {
		year = m.Year
	}
	return l.Year == 0 || year == 0 || l.Year == year
}

// MonthName returns the calendar name for a 0-based index, or "".
func MonthName(index int) string {
	if index < 0 || index >= len(Names) {
		return ""
	}
	return Names[index]
}

// Current returns the month name and year of t.
func Current(t time.Time) (string, int) {
	return MonthName(int(t.Month()) - 1), t.Year()
}

// Format renders "Month, Year", or just the month when year is 0.
func Format(month string, year int) string {
	if year == 0 {
		return month
	}
	return month + ", " + strconv.Itoa(year)
}
