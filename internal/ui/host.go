package ui

import (
	"path/filepath"
	"slices"

	"multipick/internal/domain"
	"multipick/internal/selection"
	"multipick/internal/ui/logic"
	"multipick/internal/ui/views"
)

// listHost adapts the directory listing to selection.Host. Item ids are
// absolute paths.
type listHost struct {
	items       []domain.Item
	index       map[selection.ItemID]int
	marked      map[selection.ItemID]bool
	include     string
	showHidden  bool
	filter      string
	sortMode    logic.SortMode
	cancelZones []string
}

func newListHost(include string, showHidden bool, cancelZones []string) *listHost {
	return &listHost{
		index:       make(map[selection.ItemID]int),
		marked:      make(map[selection.ItemID]bool),
		include:     include,
		showHidden:  showHidden,
		cancelZones: cancelZones,
	}
}

// setItems replaces the listing. Marks for paths that disappear are dropped.
func (h *listHost) setItems(items []domain.Item) {
	h.items = slices.Clone(items)
	logic.SortItems(h.items, h.sortMode)
	h.reindex()

	for id := range h.marked {
		if _, ok := h.index[id]; !ok {
			delete(h.marked, id)
		}
	}
}

func (h *listHost) setSort(mode logic.SortMode) {
	h.sortMode = mode
	logic.SortItems(h.items, mode)
	h.reindex()
}

func (h *listHost) reindex() {
	h.index = make(map[selection.ItemID]int, len(h.items))
	for i, item := range h.items {
		h.index[selection.ItemID(item.Path)] = i
	}
}

func (h *listHost) item(id selection.ItemID) (domain.Item, bool) {
	i, ok := h.index[id]
	if !ok {
		return domain.Item{}, false
	}
	return h.items[i], true
}

func (h *listHost) selectable(item domain.Item) bool {
	if h.include == "" {
		return true
	}
	ok, _ := filepath.Match(h.include, item.Name)
	return ok
}

func (h *listHost) shown(item domain.Item) bool {
	return (h.showHidden || !item.IsDotfile()) && logic.MatchesFilter(item, h.filter)
}

// Items implements selection.Host
func (h *listHost) Items() []selection.ItemID {
	ids := make([]selection.ItemID, 0, len(h.items))
	for _, item := range h.items {
		if h.selectable(item) {
			ids = append(ids, selection.ItemID(item.Path))
		}
	}
	return ids
}

// IsVisible implements selection.Host
func (h *listHost) IsVisible(id selection.ItemID) bool {
	item, ok := h.item(id)
	return ok && h.shown(item)
}

// IsInCancelZone implements selection.Host. Targets are views.Hit values.
func (h *listHost) IsInCancelZone(target any) bool {
	hit, ok := target.(views.Hit)
	return ok && slices.Contains(h.cancelZones, hit.Region.String())
}

// MarkSelected implements selection.Host
func (h *listHost) MarkSelected(id selection.ItemID, selected bool) {
	if selected {
		h.marked[id] = true
	} else {
		delete(h.marked, id)
	}
}

// rows returns what is drawn, in order, with the id behind each row
func (h *listHost) rows() ([]views.RowView, []selection.ItemID) {
	var rows []views.RowView
	var ids []selection.ItemID
	for _, item := range h.items {
		if !h.shown(item) {
			continue
		}
		id := selection.ItemID(item.Path)
		rows = append(rows, views.RowView{
			Name:       item.DisplayName(),
			IsDir:      item.IsDir,
			Selected:   h.marked[id],
			Selectable: h.selectable(item),
		})
		ids = append(ids, id)
	}
	return rows, ids
}

// EligiblePaths returns the paths a picker over items would let the user
// select, in listing order
func EligiblePaths(items []domain.Item, include string, showHidden bool) []string {
	h := newListHost(include, showHidden, nil)
	h.setItems(items)

	var out []string
	for _, id := range h.Items() {
		if h.IsVisible(id) {
			out = append(out, string(id))
		}
	}
	return out
}
