package logic

import (
	"strings"

	"multipick/internal/domain"
)

// MatchesFilter checks if an item matches the given filter query. A query
// of "type:dir" or "type:file" filters by kind; anything else is a case
// insensitive substring of the name.
func MatchesFilter(item domain.Item, filterQuery string) bool {
	if filterQuery == "" {
		return true
	}

	query := strings.ToLower(filterQuery)

	if strings.HasPrefix(query, "type:") {
		return MatchesTypeFilter(item, strings.TrimPrefix(query, "type:"))
	}

	return strings.Contains(strings.ToLower(item.Name), query)
}

// MatchesTypeFilter checks if an item is of the named kind
func MatchesTypeFilter(item domain.Item, kind string) bool {
	switch kind {
	case "dir", "directory", "d":
		return item.IsDir
	case "file", "f":
		return !item.IsDir
	case "hidden", "dot":
		return item.IsDotfile()
	default:
		return false
	}
}
