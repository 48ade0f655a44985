package selection

// Guard clears the selection when a release lands outside the selectable area.
// It holds at most one document listener, attached only while something is
// selected.
type Guard struct {
	doc          Document
	inCancelZone func(target any) bool
	onOutside    func(ev *Event)

	unsubscribe func()
	armed       bool
}

// NewGuard creates a detached guard. onOutside runs at most once per arming.
func NewGuard(doc Document, inCancelZone func(target any) bool, onOutside func(ev *Event)) *Guard {
	return &Guard{
		doc:          doc,
		inCancelZone: inCancelZone,
		onOutside:    onOutside,
	}
}

// Install attaches the listener if needed and re-arms it
func (g *Guard) Install() {
	if g.doc == nil {
		return
	}
	if g.unsubscribe == nil {
		g.unsubscribe = g.doc.OnRelease(g.handleRelease)
	}
	g.armed = true
}

// Remove detaches the listener
func (g *Guard) Remove() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
	g.armed = false
}

// Sync installs the guard while count is non-zero and removes it otherwise
func (g *Guard) Sync(count int) {
	if count == 0 {
		g.Remove()
		return
	}
	g.Install()
}

// Installed reports whether the document listener is attached
func (g *Guard) Installed() bool {
	return g.unsubscribe != nil
}

// Armed reports whether the next outside release will clear the selection
func (g *Guard) Armed() bool {
	return g.armed
}

func (g *Guard) handleRelease(ev *Event) {
	if !g.armed || ev.Handled() {
		return
	}
	if g.inCancelZone != nil && g.inCancelZone(ev.target()) {
		return
	}
	// Stays attached but inert until an item click re-arms it.
	g.armed = false
	if g.onOutside != nil {
		g.onOutside(ev)
	}
}
