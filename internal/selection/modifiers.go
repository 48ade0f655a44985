package selection

import (
	"runtime"
	"sync"
)

// Key is a keyboard key as far as selection cares
type Key int

const (
	KeyOther Key = iota
	KeyShift
	KeyControl
	KeyMeta
)

func (k Key) String() string {
	switch k {
	case KeyShift:
		return "shift"
	case KeyControl:
		return "ctrl"
	case KeyMeta:
		return "meta"
	default:
		return "other"
	}
}

// KeyTransition is a global key-down or key-up signal
type KeyTransition struct {
	Key  Key
	Down bool
}

// Platform decides which key acts as the multi modifier
type Platform int

const (
	PlatformOther Platform = iota
	PlatformDarwin
)

// DetectPlatform returns the platform the process runs on
func DetectPlatform() Platform {
	if runtime.GOOS == "darwin" {
		return PlatformDarwin
	}
	return PlatformOther
}

// MultiKey returns Cmd (meta) on darwin and Ctrl everywhere else
func (p Platform) MultiKey() Key {
	if p == PlatformDarwin {
		return KeyMeta
	}
	return KeyControl
}

// ModifierState is a snapshot of the held modifiers
type ModifierState struct {
	RangeHeld bool
	MultiHeld bool
}

// Any reports whether either modifier is held
func (s ModifierState) Any() bool {
	return s.RangeHeld || s.MultiHeld
}

// ModifierTracker follows the range (Shift) and multi (Ctrl/Cmd) modifiers.
// One tracker is shared by every container in a process; it is mutated only
// through KeyTransition and WindowBlur and must be used from the event goroutine.
type ModifierTracker struct {
	multiKey Key
	state    ModifierState

	observeOnce sync.Once
}

// NewModifierTracker creates a tracker using multiKey as the multi modifier
func NewModifierTracker(multiKey Key) *ModifierTracker {
	return &ModifierTracker{multiKey: multiKey}
}

var (
	sharedOnce sync.Once
	shared     *ModifierTracker
)

// SharedModifiers returns the process-wide tracker, created on first use
// with the platform's multi key.
func SharedModifiers() *ModifierTracker {
	sharedOnce.Do(func() {
		shared = NewModifierTracker(DetectPlatform().MultiKey())
	})
	return shared
}

// RangeHeld reports whether the range modifier is down
func (t *ModifierTracker) RangeHeld() bool {
	return t.state.RangeHeld
}

// MultiHeld reports whether the multi modifier is down
func (t *ModifierTracker) MultiHeld() bool {
	return t.state.MultiHeld
}

// State returns both modifiers at once
func (t *ModifierTracker) State() ModifierState {
	return t.state
}

// MultiKey returns the key acting as the multi modifier
func (t *ModifierTracker) MultiKey() Key {
	return t.multiKey
}

// KeyTransition records a key going down or up
func (t *ModifierTracker) KeyTransition(kt KeyTransition) {
	if kt.Key == KeyOther {
		return
	}
	switch kt.Key {
	case KeyShift:
		t.state.RangeHeld = kt.Down
	case t.multiKey:
		t.state.MultiHeld = kt.Down
	}
}

// WindowBlur drops the multi modifier. Key-up events are lost when focus moves
// to a native menu or dialog, so the modifier would otherwise stay stuck.
func (t *ModifierTracker) WindowBlur() {
	t.state.MultiHeld = false
}

// Observe subscribes the tracker to src. Only the first call has any effect,
// so creating many containers never installs duplicate handlers.
func (t *ModifierTracker) Observe(src GlobalEvents) {
	if src == nil {
		return
	}
	t.observeOnce.Do(func() {
		src.OnKeyTransition(t.KeyTransition)
		src.OnWindowBlur(t.WindowBlur)
	})
}
