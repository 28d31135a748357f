package constants

import "strings"

type Category string

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Utility       Category = "Utility"
	Entertainment Category = "Entertainment"
)

// DefaultCategory is used whenever classification fails or has no input.
const DefaultCategory = Utility

var allCategories = []Category{Food, Transport, Utility, Entertainment}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// MatchTier reports which fallback tier produced a category match.
type MatchTier int

const (
	MatchExact MatchTier = iota
	MatchSubstring
	MatchNone
)

func (t MatchTier) String() string {
	switch t {
	case MatchExact:
		return "exact"
	case MatchSubstring:
		return "substring"
	default:
		return "none"
	}
}

// Canonicalize maps a raw model answer to a Category. Exact match (after
// trimming whitespace and a trailing period) is tried first, then a
// case-insensitive substring search; anything else falls back to
// DefaultCategory with MatchNone.
func Canonicalize(raw string) (Category, MatchTier) {
	cleaned := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), "."))
	for _, cat := range allCategories {
		if cleaned == string(cat) {
			return cat, MatchExact
		}
	}

	lower := strings.ToLower(raw)
	for _, cat := range allCategories {
		if strings.Contains(lower, strings.ToLower(string(cat))) {
			return cat, MatchSubstring
		}
	}
	return DefaultCategory, MatchNone
}
