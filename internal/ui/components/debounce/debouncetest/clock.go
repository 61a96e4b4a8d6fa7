// Package debouncetest provides a manual clock for driving debounced
// inputs in tests.
package debouncetest

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type timer struct {
	due time.Duration
	fn  func(time.Time) tea.Msg
}

// Clock records scheduled ticks so tests control when they fire. Its
// Schedule method satisfies debounce.Scheduler.
type Clock struct {
	now    time.Duration
	timers []timer
}

// Now returns the time elapsed since the clock started
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending returns the number of timers that have not fired
func (c *Clock) Pending() int {
	return len(c.timers)
}

// Schedule records a tick due d from now
func (c *Clock) Schedule(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	c.timers = append(c.timers, timer{due: c.now + d, fn: fn})
	return func() tea.Msg { return nil }
}

// Advance moves the clock to t and returns the messages of every timer
// due by then, in due order
func (c *Clock) Advance(t time.Duration) []tea.Msg {
	sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].due < c.timers[j].due })

	var msgs []tea.Msg
	rest := c.timers[:0]
	for _, tm := range c.timers {
		if tm.due <= t {
			msgs = append(msgs, tm.fn(time.Unix(0, 0).Add(tm.due)))
		} else {
			rest = append(rest, tm)
		}
	}
	c.timers = rest
	c.now = t
	return msgs
}
