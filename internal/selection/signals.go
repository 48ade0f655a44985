package selection

// Signals is a synchronous in-process source of global key, blur and release
// events. It implements both GlobalEvents and Document; hosts feed it from
// their own event loop.
type Signals struct {
	keys    listeners[KeyTransition]
	blur    listeners[struct{}]
	release listeners[*Event]
}

// NewSignals creates a source with no subscribers
func NewSignals() *Signals {
	return &Signals{}
}

// OnKeyTransition subscribes to key transitions
func (s *Signals) OnKeyTransition(handler func(KeyTransition)) func() {
	return s.keys.add(handler)
}

// OnWindowBlur subscribes to focus loss
func (s *Signals) OnWindowBlur(handler func()) func() {
	return s.blur.add(func(struct{}) { handler() })
}

// OnRelease subscribes to every release on screen
func (s *Signals) OnRelease(handler func(*Event)) func() {
	return s.release.add(handler)
}

// EmitKey delivers a key transition to all subscribers
func (s *Signals) EmitKey(kt KeyTransition) {
	s.keys.emit(kt)
}

// EmitBlur delivers a focus loss to all subscribers
func (s *Signals) EmitBlur() {
	s.blur.emit(struct{}{})
}

// EmitRelease delivers a release to all subscribers. Item handlers must have
// run first so that their handled marker is visible here.
func (s *Signals) EmitRelease(ev *Event) {
	s.release.emit(ev)
}

// ReleaseListeners returns the number of attached release handlers
func (s *Signals) ReleaseListeners() int {
	return len(s.release.order)
}

type listeners[T any] struct {
	next  int
	order []int
	fns   map[int]func(T)
}

func (l *listeners[T]) add(fn func(T)) func() {
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.order = append(l.order, id)

	return func() {
		if _, ok := l.fns[id]; !ok {
			return
		}
		delete(l.fns, id)
		for i, v := range l.order {
			if v == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

func (l *listeners[T]) emit(v T) {
	// Handlers may unsubscribe while we iterate.
	ids := make([]int, len(l.order))
	copy(ids, l.order)
	for _, id := range ids {
		if fn, ok := l.fns[id]; ok {
			fn(v)
		}
	}
}
