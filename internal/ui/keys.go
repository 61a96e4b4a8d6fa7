package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"typeahead/internal/ui/components/combobox"
)

// keyMap holds the form-level bindings. The combobox bindings are
// included so the help line shows everything the user can press.
type keyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Accept    key.Binding
	Cancel    key.Binding
	Help      key.Binding
	Quit      key.Binding

	combo combobox.KeyMap
}

func newKeyMap(combo combobox.KeyMap) keyMap {
	return keyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		combo: combo,
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.combo.Down, k.combo.Up, k.combo.Select, k.NextField, k.Cancel, k.Help}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.combo.FullHelp()[0],
		{k.NextField, k.PrevField, k.Accept, k.Cancel},
		{k.Help, k.Quit},
	}
}
