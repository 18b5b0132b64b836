// Package identity derives the person key used to group award records.
//
// The key is a heuristic: two people sharing a display name collapse into
// one, and a renamed person without a stable person id splits into two.
// When the store starts emitting a stronger identifier, Resolve should
// prefer it without changing any aggregation contract.
package identity

import "strings"

// Subject is anything carrying the raw identity fields of a record.
type Subject interface {
	IdentityFields() (personID, name string)
}

// Resolve returns the trimmed, lower-cased person id when present, else the
// trimmed, lower-cased display name. Empty when both are empty.
func Resolve(personID, name string) string {
	if key := normalize(personID); key != "" {
		return key
	}
	return normalize(name)
}

// KeyOf resolves the person key of a subject.
func KeyOf(s Subject) string {
	return Resolve(s.IdentityFields())
}

// Normalize canonicalises a key supplied by a caller (for example a URL path
// segment) so it can be compared against resolved keys.
func Normalize(raw string) string { return normalize(raw) }

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
