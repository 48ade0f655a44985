package logic

import (
	"sort"
	"strings"

	"multipick/internal/domain"
)

// SortMode represents different sort modes
type SortMode int

const (
	SortByName SortMode = iota
	SortDirsFirst
	SortBySize
	SortByModTime
	sortModeCount
)

func (m SortMode) String() string {
	switch m {
	case SortDirsFirst:
		return "dirs first"
	case SortBySize:
		return "size"
	case SortByModTime:
		return "modified"
	default:
		return "name"
	}
}

// Next cycles to the following sort mode
func (m SortMode) Next() SortMode {
	return (m + 1) % sortModeCount
}

// SortItems sorts items in place according to the given sort mode. Ties
// fall back to the case-insensitive name.
func SortItems(items []domain.Item, mode SortMode) {
	byName := func(a, b domain.Item) bool {
		na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if na != nb {
			return na < nb
		}
		return a.Name < b.Name
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch mode {
		case SortDirsFirst:
			if a.IsDir != b.IsDir {
				return a.IsDir
			}
		case SortBySize:
			if a.Size != b.Size {
				return a.Size > b.Size // Largest first
			}
		case SortByModTime:
			if !a.ModTime.Equal(b.ModTime) {
				return a.ModTime.After(b.ModTime) // Newest first
			}
		}
		return byName(a, b)
	})
}
