package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the browser keybindings.
type KeyMap struct {
	Quit key.Binding
	Up   key.Binding
	Down key.Binding

	// Focus switches between the results and favorites panes. While a card
	// is being dragged it also moves the card over the other pane.
	Focus key.Binding

	// Edit starts editing the postcode query.
	Edit key.Binding

	// Submit runs the search, or drops a dragged card on the focused pane.
	Submit key.Binding

	Toggle    key.Binding
	Pick      key.Binding
	Drop      key.Binding
	Cancel    key.Binding
	Clear     key.Binding
	CycleType key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Edit: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "postcode"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search/drop"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "favorite"),
		),
		Pick: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "drag"),
		),
		Drop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "drop outside"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear favorites"),
		),
		CycleType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "type"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Focus, k.Edit, k.CycleType, k.Submit, k.Toggle, k.Pick, k.Drop, k.Cancel, k.Clear, k.Quit}
}
