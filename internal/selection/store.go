package selection

// Store holds the selected items of one container.
// Ordering always follows the host's item order, never click order.
type Store struct {
	host     Host
	selected map[ItemID]bool
	onChange ChangeFunc
}

// NewStore creates an empty store for host
func NewStore(host Host, onChange ChangeFunc) *Store {
	return &Store{
		host:     host,
		selected: make(map[ItemID]bool),
		onChange: onChange,
	}
}

// SelectableItems returns the eligible (configured and visible) items
func (s *Store) SelectableItems() []ItemID {
	var items []ItemID
	for _, id := range s.host.Items() {
		if s.host.IsVisible(id) {
			items = append(items, id)
		}
	}
	return items
}

// SelectedItems returns the selected items in container order.
// Items the host no longer enumerates are never returned.
func (s *Store) SelectedItems() []ItemID {
	var items []ItemID
	for _, id := range s.host.Items() {
		if s.selected[id] {
			items = append(items, id)
		}
	}
	return items
}

// Count returns the number of selected items
func (s *Store) Count() int {
	return len(s.SelectedItems())
}

// IsSelected reports whether id is selected
func (s *Store) IsSelected(id ItemID) bool {
	return s.selected[id]
}

// Select selects id and reports whether its state changed
func (s *Store) Select(ev *Event, id ItemID, silent bool) bool {
	if id == "" || s.selected[id] {
		return false
	}
	s.selected[id] = true
	s.host.MarkSelected(id, true)
	if !silent {
		s.Notify(ev, []ItemID{id}, nil)
	}
	return true
}

// Deselect deselects id and reports whether its state changed
func (s *Store) Deselect(ev *Event, id ItemID, silent bool) bool {
	if !s.selected[id] {
		return false
	}
	delete(s.selected, id)
	s.host.MarkSelected(id, false)
	if !silent {
		s.Notify(ev, nil, []ItemID{id})
	}
	return true
}

// SelectAll selects every eligible item and returns the ones that changed.
// Hidden items are left alone.
func (s *Store) SelectAll(ev *Event) []ItemID {
	var changed []ItemID
	for _, id := range s.SelectableItems() {
		if s.Select(ev, id, true) {
			changed = append(changed, id)
		}
	}
	s.Notify(ev, changed, nil)
	return changed
}

// Clear deselects everything and returns the items that changed
func (s *Store) Clear(ev *Event, silent bool) []ItemID {
	changed := s.SelectedItems()
	for _, id := range changed {
		delete(s.selected, id)
		s.host.MarkSelected(id, false)
	}
	// Whatever is left refers to items the host already dropped.
	for id := range s.selected {
		delete(s.selected, id)
	}
	if !silent {
		s.Notify(ev, nil, changed)
	}
	return changed
}

// Notify emits a change notification for an operation that ran silently
func (s *Store) Notify(ev *Event, selected, deselected []ItemID) {
	if s.onChange == nil {
		return
	}
	s.onChange(Change{
		Event:      ev,
		Selection:  s.SelectedItems(),
		Selected:   selected,
		Deselected: deselected,
	})
}

// ordered returns the members of set in container order
func (s *Store) ordered(set map[ItemID]bool) []ItemID {
	var items []ItemID
	for _, id := range s.host.Items() {
		if set[id] {
			items = append(items, id)
		}
	}
	return items
}
