package selection

// action is what a press or release does to the selection
type action int

const (
	actNone     action = iota
	actSelect          // select the target alone
	actDeselect        // deselect the target alone
	actRange           // extend or shrink from the last clicked item to the target
	actReplace         // clear, then select the target alone
)

func (a action) String() string {
	switch a {
	case actSelect:
		return "select"
	case actDeselect:
		return "deselect"
	case actRange:
		return "range"
	case actReplace:
		return "replace"
	default:
		return "none"
	}
}

// gesture is everything a transition depends on
type gesture struct {
	phase     Phase
	armed     bool // press: target not yet selected; release: target was not just selected by its press
	rangeHeld bool
	multiHeld bool
	mouse     bool
	many      bool // more than one item selected before the operation
}

// cond matches one gesture field; the zero value matches anything
type cond int8

const (
	condAny cond = iota
	condYes
	condNo
)

func (c cond) match(v bool) bool {
	switch c {
	case condYes:
		return v
	case condNo:
		return !v
	default:
		return true
	}
}

type transition struct {
	phase     Phase
	armed     cond
	rangeHeld cond
	multiHeld cond
	mouse     cond
	many      cond
	act       action
}

// transitions is evaluated top to bottom; the first matching row wins.
//
// A press only acts on an item that is not selected yet. Pressing an already
// selected item defers to the release, so that a drag of several selected
// items is not disturbed by the press. Replacing on release only applies to
// mouse input: touch has no usable modifier chording.
var transitions = []transition{
	{phase: PhasePress, armed: condNo, act: actNone},
	{phase: PhasePress, rangeHeld: condNo, multiHeld: condNo, mouse: condYes, act: actReplace},
	{phase: PhasePress, rangeHeld: condYes, act: actRange},
	{phase: PhasePress, act: actSelect},

	{phase: PhaseRelease, armed: condNo, act: actNone},
	{phase: PhaseRelease, rangeHeld: condNo, multiHeld: condNo, mouse: condYes, many: condYes, act: actReplace},
	{phase: PhaseRelease, rangeHeld: condYes, act: actRange},
	{phase: PhaseRelease, act: actDeselect},
}

func (t transition) matches(g gesture) bool {
	return t.phase == g.phase &&
		t.armed.match(g.armed) &&
		t.rangeHeld.match(g.rangeHeld) &&
		t.multiHeld.match(g.multiHeld) &&
		t.mouse.match(g.mouse) &&
		t.many.match(g.many)
}

func decide(g gesture) action {
	for _, t := range transitions {
		if t.matches(g) {
			return t.act
		}
	}
	return actNone
}
