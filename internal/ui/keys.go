package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the fixed bindings. Selection methods bound in the config
// file are looked up separately.
type keyMap struct {
	Confirm    key.Binding
	Quit       key.Binding
	Back       key.Binding
	Filter     key.Binding
	Hidden     key.Binding
	Sort       key.Binding
	Parent     key.Binding
	Help       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "print selection and exit")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter or quit")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Hidden:     key.NewBinding(key.WithKeys("."), key.WithHelp(".", "toggle dotfiles")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		Parent:     key.NewBinding(key.WithKeys("backspace", "-"), key.WithHelp("-", "parent directory")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		ScrollUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Confirm, k.Quit, k.Back},
		{k.Filter, k.Hidden, k.Sort, k.Parent},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown, k.Help},
	}
}

func (k keyMap) all() []key.Binding {
	var out []key.Binding
	for _, col := range k.FullHelp() {
		out = append(out, col...)
	}
	return out
}
