package selection

// ItemID identifies a selectable item within one container.
// The zero value means "no item".
type ItemID string

// Phase is the half of a gesture an event belongs to
type Phase int

const (
	PhasePress Phase = iota
	PhaseRelease
)

func (p Phase) String() string {
	if p == PhaseRelease {
		return "release"
	}
	return "press"
}

// Pointer is the kind of device that produced an event
type Pointer int

const (
	PointerMouse Pointer = iota
	PointerTouch
)

// Event is one pointer event as delivered by the host.
// Target is opaque to this package and only handed back to Host.IsInCancelZone.
type Event struct {
	Phase   Phase
	Pointer Pointer
	Target  any

	handled bool // set once an item click consumed the event
}

// MarkHandled flags the event as consumed by an item click so that the
// document-level outside click listener ignores it.
func (e *Event) MarkHandled() {
	if e != nil {
		e.handled = true
	}
}

// Handled reports whether an item click consumed the event
func (e *Event) Handled() bool {
	return e != nil && e.handled
}

func (e *Event) target() any {
	if e == nil {
		return nil
	}
	return e.Target
}

func (e *Event) isMouse() bool {
	return e == nil || e.Pointer == PointerMouse
}

// Change is the payload of a selection change notification
type Change struct {
	Event      *Event
	Selection  []ItemID // full selection after the change, in container order
	Selected   []ItemID // items that became selected
	Deselected []ItemID // items that became deselected
}

// ChangeFunc receives selection change notifications
type ChangeFunc func(Change)

// Host is the UI layer that owns the items of a container
type Host interface {
	// Items returns every configured item in container order
	Items() []ItemID
	// IsVisible reports whether the item currently counts as eligible
	IsVisible(id ItemID) bool
	// IsInCancelZone reports whether an event target lies within an
	// interactive region that must never trigger selection
	IsInCancelZone(target any) bool
	// MarkSelected applies or removes the visual selected state
	MarkSelected(id ItemID, selected bool)
}

// GlobalEvents delivers process-wide keyboard and focus signals.
// Every subscription returns its unsubscribe function.
type GlobalEvents interface {
	OnKeyTransition(handler func(KeyTransition)) func()
	OnWindowBlur(handler func()) func()
}

// Document delivers release events from anywhere on screen
type Document interface {
	OnRelease(handler func(*Event)) func()
}
