package selection

import "log"

// Public method names accepted by Invoke
const (
	MethodSelectAll       = "selectAll"
	MethodClearSelection  = "clearSelection"
	MethodSelectedItems   = "selectedItems"
	MethodSelectableItems = "selectableItems"
)

// Options configures a Container
type Options struct {
	Host     Host
	Document Document     // source of screen-wide releases; nil disables outside clicks
	Globals  GlobalEvents // key and blur source observed by Modifiers
	// Modifiers is shared between containers. Nil means SharedModifiers().
	Modifiers *ModifierTracker
	OnChange  ChangeFunc
}

// Container is one independent multi-selection area
type Container struct {
	host  Host
	mods  *ModifierTracker
	store *Store
	coord *Coordinator
	guard *Guard
}

// New creates a container with an empty selection
func New(opts Options) *Container {
	mods := opts.Modifiers
	if mods == nil {
		mods = SharedModifiers()
	}
	mods.Observe(opts.Globals)

	c := &Container{
		host: opts.Host,
		mods: mods,
	}
	c.store = NewStore(opts.Host, opts.OnChange)
	c.guard = NewGuard(opts.Document, opts.Host.IsInCancelZone, c.clearOutside)
	c.coord = NewCoordinator(c.store, mods, opts.Host, c.guard)
	return c
}

// Press forwards the down half of a gesture on an item
func (c *Container) Press(id ItemID, ev *Event) bool {
	return c.coord.Press(id, ev)
}

// Release forwards the up half of a gesture on an item
func (c *Container) Release(id ItemID, ev *Event) bool {
	return c.coord.Release(id, ev)
}

// SelectAll selects every eligible item and returns those that changed
func (c *Container) SelectAll(ev *Event) []ItemID {
	changed := c.store.SelectAll(ev)
	c.guard.Sync(c.store.Count())
	return changed
}

// ClearSelection deselects everything and returns those that changed.
// A silent clear emits no notification.
func (c *Container) ClearSelection(ev *Event, silent bool) []ItemID {
	changed := c.store.Clear(ev, silent)
	c.coord.forget()
	c.guard.Sync(c.store.Count())
	return changed
}

// SelectedItems returns the selection in container order
func (c *Container) SelectedItems() []ItemID {
	return c.store.SelectedItems()
}

// SelectableItems returns the eligible items in container order
func (c *Container) SelectableItems() []ItemID {
	return c.store.SelectableItems()
}

// IsSelected reports whether id is selected
func (c *Container) IsSelected(id ItemID) bool {
	return c.store.IsSelected(id)
}

// LastClicked returns the current range anchor, or "" if none
func (c *Container) LastClicked() ItemID {
	return c.coord.LastClicked()
}

// Modifiers returns the tracker this container reads
func (c *Container) Modifiers() *ModifierTracker {
	return c.mods
}

// Guard exposes the outside click guard for inspection
func (c *Container) Guard() *Guard {
	return c.guard
}

// Invoke calls a public method by name. Unknown names are a no-op and
// return nil.
func (c *Container) Invoke(method string, ev *Event) []ItemID {
	switch method {
	case MethodSelectAll:
		return c.SelectAll(ev)
	case MethodClearSelection:
		return c.ClearSelection(ev, false)
	case MethodSelectedItems:
		return c.SelectedItems()
	case MethodSelectableItems:
		return c.SelectableItems()
	default:
		log.Printf("selection: ignoring unknown method %q", method)
		return nil
	}
}

// Close detaches the outside click listener
func (c *Container) Close() {
	c.guard.Remove()
}

func (c *Container) clearOutside(ev *Event) {
	c.store.Clear(ev, false)
	c.coord.forget()
}
