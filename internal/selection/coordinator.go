package selection

import "log"

// Coordinator turns press and release events on items into selection changes
type Coordinator struct {
	store *Store
	mods  *ModifierTracker
	host  Host
	guard *Guard

	lastClicked ItemID
	// justSelected per item, written by a press and consumed by the
	// matching release
	pending map[ItemID]bool
}

// NewCoordinator wires a coordinator to its store, tracker and guard.
// guard may be nil when no outside click handling is wanted.
func NewCoordinator(store *Store, mods *ModifierTracker, host Host, guard *Guard) *Coordinator {
	return &Coordinator{
		store:   store,
		mods:    mods,
		host:    host,
		guard:   guard,
		pending: make(map[ItemID]bool),
	}
}

// LastClicked returns the anchor for range operations, or "" if none.
// The item may no longer exist; callers re-validate it on use.
func (c *Coordinator) LastClicked() ItemID {
	return c.lastClicked
}

// Press handles the down half of a gesture on item id. It reports false when
// the event was ignored because it hit the cancel zone.
func (c *Coordinator) Press(id ItemID, ev *Event) bool {
	if id == "" || c.host.IsInCancelZone(ev.target()) {
		return false
	}
	ev.MarkHandled()

	prior := c.store.IsSelected(id)
	// Overwritten on every press, so a press that never saw its release
	// cannot leak into the next gesture.
	c.pending[id] = !prior

	act := decide(c.gesture(PhasePress, !prior, ev))
	c.run(PhasePress, act, id, ev)
	c.syncGuard()
	return true
}

// Release handles the up half of a gesture on item id. It reports false when
// the event was ignored because it hit the cancel zone.
func (c *Coordinator) Release(id ItemID, ev *Event) bool {
	if id == "" || c.host.IsInCancelZone(ev.target()) {
		return false
	}
	ev.MarkHandled()

	// A release ends the gesture, so presses that ended elsewhere are
	// dropped along with this one.
	justSelected := c.pending[id]
	c.forget()

	act := decide(c.gesture(PhaseRelease, !justSelected, ev))
	c.run(PhaseRelease, act, id, ev)
	c.syncGuard()
	return true
}

// forget drops every recorded press
func (c *Coordinator) forget() {
	clear(c.pending)
}

func (c *Coordinator) gesture(phase Phase, armed bool, ev *Event) gesture {
	mods := c.mods.State()
	return gesture{
		phase:     phase,
		armed:     armed,
		rangeHeld: mods.RangeHeld,
		multiHeld: mods.MultiHeld,
		mouse:     ev.isMouse(),
		many:      c.store.Count() > 1,
	}
}

func (c *Coordinator) run(phase Phase, act action, id ItemID, ev *Event) {
	switch act {
	case actNone:
		return
	case actSelect:
		c.store.Select(ev, id, false)
	case actDeselect:
		c.store.Deselect(ev, id, false)
	case actReplace:
		c.replace(id, ev)
	case actRange:
		c.extend(id, ev)
	}
	log.Printf("selection: %s %s on %q (%d selected)", phase, act, id, c.store.Count())
	c.lastClicked = id
}

// replace makes id the only selected item. The clear runs silently and is
// folded into a single notification carrying the net difference.
func (c *Coordinator) replace(id ItemID, ev *Event) {
	before := c.store.SelectedItems()
	c.store.Clear(ev, true)
	c.store.Select(ev, id, true)

	var selected, deselected []ItemID
	wasSelected := false
	for _, prev := range before {
		if prev == id {
			wasSelected = true
			continue
		}
		deselected = append(deselected, prev)
	}
	if !wasSelected {
		selected = []ItemID{id}
	}
	c.store.Notify(ev, selected, deselected)
}

// extend applies the target's opposite state to every item between the last
// clicked item and the target, and to the target itself. Only items whose
// state actually flipped are reported, in one notification.
func (c *Coordinator) extend(id ItemID, ev *Event) {
	deselect := c.store.IsSelected(id)
	span := ResolveRange(c.store.SelectableItems(), c.lastClicked, id)

	flipped := make(map[ItemID]bool, len(span)+1)
	for _, item := range append(span, id) {
		var changed bool
		if deselect {
			changed = c.store.Deselect(ev, item, true)
		} else {
			changed = c.store.Select(ev, item, true)
		}
		if changed {
			flipped[item] = true
		}
	}

	if deselect {
		c.store.Notify(ev, nil, c.store.ordered(flipped))
	} else {
		c.store.Notify(ev, c.store.ordered(flipped), nil)
	}
}

func (c *Coordinator) syncGuard() {
	if c.guard != nil {
		c.guard.Sync(c.store.Count())
	}
}
