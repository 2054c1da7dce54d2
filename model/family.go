package model

import "strings"

// Family is a model-family key used to look up per-family rate limits.
type Family string

// Claude model families with published per-family token limits.
const (
	FamilySonnet Family = "sonnet-4"
	FamilyHaiku  Family = "haiku-4"
	FamilyOpus   Family = "opus-4"
)

// DefaultFamily is used when a model identifier matches no known marker.
const DefaultFamily = FamilySonnet

// familyMarkers maps substring markers to families, in match order.
var familyMarkers = []struct {
	marker string
	family Family
}{
	{"sonnet", FamilySonnet},
	{"haiku", FamilyHaiku},
	{"opus", FamilyOpus},
}

// FamilyFor maps a free-text model identifier to its family key.
// Matching is case-insensitive substring search against a small ordered
// marker set; unknown identifiers fall back to DefaultFamily. Examples:
//
//	FamilyFor("claude-sonnet-4-20250514")  // sonnet-4
//	FamilyFor("claude-haiku-4-5-20251001") // haiku-4
//	FamilyFor("claude-opus-4-20250514")    // opus-4
//	FamilyFor("some-future-model")         // sonnet-4 (default)
func FamilyFor(model string) Family {
	lower := strings.ToLower(model)
	for _, m := range familyMarkers {
		if strings.Contains(lower, m.marker) {
			return m.family
		}
	}
	return DefaultFamily
}

// Families returns the fixed set of known family keys, in marker order.
func Families() []Family {
	out := make([]Family, len(familyMarkers))
	for i, m := range familyMarkers {
		out[i] = m.family
	}
	return out
}
