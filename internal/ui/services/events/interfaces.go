package events

import tea "github.com/charmbracelet/bubbletea"

// Listener receives pointer events
type Listener func(tea.MouseMsg)

// PointerBus is the interface components use to watch pointer events
type PointerBus interface {
	Publish(msg tea.MouseMsg)
	Subscribe(listener Listener) func()
}

// NullBus is a no-op implementation of PointerBus
type NullBus struct{}

func (n *NullBus) Publish(msg tea.MouseMsg)           {}
func (n *NullBus) Subscribe(listener Listener) func() { return func() {} }
