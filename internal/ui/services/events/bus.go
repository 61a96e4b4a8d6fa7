package events

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

type entry struct {
	id       uint64
	listener Listener
}

// Bus is a synchronous pointer event bus for UI components.
// It stands in for a document level mouse listener: every mounted
// component subscribes once and sees every press the host publishes.
type Bus struct {
	mu        sync.RWMutex
	listeners []entry
	nextID    uint64
}

// NewBus creates a new pointer bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener and returns its unsubscribe func.
// Calling the returned func more than once is harmless.
func (b *Bus) Subscribe(listener Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, entry{id: id, listener: listener})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		for i, e := range b.listeners {
			if e.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every listener in subscription order on the caller's
// goroutine. Listeners may unsubscribe while being called.
func (b *Bus) Publish(msg tea.MouseMsg) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	for i, e := range b.listeners {
		listeners[i] = e.listener
	}
	b.mu.RUnlock()

	for _, l := range listeners {
		l(msg)
	}
}

// Len returns the number of registered listeners
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
