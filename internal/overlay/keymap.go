package overlay

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the tour's keyboard bindings. It is consulted only while
// a tour is active; an inactive overlay passes every key through to the
// host untouched.
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Skip      key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	Activate  key.Binding
}

// DefaultKeyMap returns the standard tour bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "enter"),
			key.WithHelp("→/enter", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "back"),
		),
		Skip: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "skip tour"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next control"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous control"),
		),
		Activate: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "press control"),
		),
	}
}

// ShortHelp implements help.KeyMap for the tooltip footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Skip, k.FocusNext}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Skip},
		{k.FocusNext, k.FocusPrev, k.Activate},
	}
}
