// Package debounce provides a text input that reports its contents only
// after typing has paused.
package debounce

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

// DefaultInterval is used when Config.Interval is zero
const DefaultInterval = 300 * time.Millisecond

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Scheduler schedules fn to produce a message after d. tea.Tick is the
// default; tests substitute a fake clock.
type Scheduler func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Config configures a new input
type Config struct {
	Value       string
	Interval    time.Duration
	Placeholder string
	Prompt      string
	Width       int
	CharLimit   int
	Disabled    bool
	Scheduler   Scheduler
}

// Model is a single-line text input with debounced change reporting
type Model struct {
	id    int
	input textinput.Model

	value    string // last authoritative value set by the caller
	interval time.Duration
	disabled bool
	mounted  bool

	seq     int
	pending bool

	x, y int

	after Scheduler

	// OnQueryChanged is called with the settled buffer. When nil a
	// QueryChangedMsg is emitted instead.
	OnQueryChanged func(query string) tea.Cmd
	OnFocus        func() tea.Cmd
	OnBlur         func() tea.Cmd
	// OnKeyDown sees every key before the buffer does. Returning true
	// consumes the key.
	OnKeyDown func(msg tea.KeyMsg) (tea.Cmd, bool)
}

// New creates a mounted input
func New(cfg Config) *Model {
	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.Prompt = cfg.Prompt
	ti.Width = cfg.Width
	ti.CharLimit = cfg.CharLimit
	ti.SetValue(cfg.Value)
	ti.CursorEnd()

	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	after := cfg.Scheduler
	if after == nil {
		after = tea.Tick
	}

	return &Model{
		id:       nextID(),
		input:    ti,
		value:    cfg.Value,
		interval: interval,
		disabled: cfg.Disabled,
		mounted:  true,
		after:    after,
	}
}

// ID returns the unique id of this input
func (m *Model) ID() int {
	return m.id
}

// Buffer returns the text currently shown in the field
func (m *Model) Buffer() string {
	return m.input.Value()
}

// Value returns the last authoritative value
func (m *Model) Value() string {
	return m.value
}

// Interval returns the debounce interval
func (m *Model) Interval() time.Duration {
	return m.interval
}

// Pending reports whether a debounce timer is outstanding
func (m *Model) Pending() bool {
	return m.pending
}

// Focused reports whether the field has focus
func (m *Model) Focused() bool {
	return m.input.Focused()
}

// Disabled reports whether the input ignores interaction
func (m *Model) Disabled() bool {
	return m.disabled
}

// SetValue sets the authoritative value. A different value overwrites the
// buffer and cancels any pending dispatch; the same value is a no-op so
// text the user typed since survives.
func (m *Model) SetValue(v string) {
	if v == m.value {
		return
	}
	m.Overwrite(v)
}

// Overwrite sets both the authoritative value and the buffer
func (m *Model) Overwrite(v string) {
	m.value = v
	m.input.SetValue(v)
	m.input.CursorEnd()
	m.cancel()
}

// SetDisabled enables or disables the input. Disabling cancels any pending
// dispatch and drops focus without reporting a blur.
func (m *Model) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled {
		m.cancel()
		m.input.Blur()
	}
}

// SetWidth sets the visible width of the text area
func (m *Model) SetWidth(w int) {
	m.input.Width = w
}

// Mount marks the input live again after Unmount
func (m *Model) Mount() {
	m.mounted = true
}

// Unmount cancels any pending dispatch. Ticks arriving afterwards are dropped.
func (m *Model) Unmount() {
	m.mounted = false
	m.cancel()
}

// Focus focuses the field. No-op while disabled or already focused.
func (m *Model) Focus() tea.Cmd {
	if m.disabled || m.input.Focused() {
		return nil
	}
	cmd := m.input.Focus()
	if m.OnFocus != nil {
		return tea.Batch(cmd, m.OnFocus())
	}
	return cmd
}

// Blur removes focus. OnBlur is not called while disabled.
func (m *Model) Blur() tea.Cmd {
	if !m.input.Focused() {
		return nil
	}
	m.input.Blur()
	if m.disabled || m.OnBlur == nil {
		return nil
	}
	return m.OnBlur()
}

// SetPosition records where the field is drawn on screen
func (m *Model) SetPosition(x, y int) {
	m.x, m.y = x, y
}

// Contains reports whether a screen cell lies inside the field
func (m *Model) Contains(x, y int) bool {
	if y != m.y {
		return false
	}
	return x >= m.x && x < m.x+m.width()
}

func (m *Model) width() int {
	w := lipgloss.Width(m.input.Prompt)
	if m.input.Width > 0 {
		return w + m.input.Width + 1
	}
	if n := lipgloss.Width(m.View()); n > w {
		return n
	}
	return w + 1
}

// HandleMouse consumes pointer events inside the field. A left press
// refocuses the field unless disabled.
func (m *Model) HandleMouse(msg tea.MouseMsg) (tea.Cmd, bool) {
	if !m.Contains(msg.X, msg.Y) {
		return nil, false
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		return m.Focus(), true
	}
	return nil, true
}

// Update handles keys, debounce ticks and cursor blinks
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.id != m.id || msg.seq != m.seq || !m.pending {
			return nil
		}
		m.pending = false
		if m.disabled || !m.mounted {
			return nil
		}
		return m.dispatch(m.input.Value())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.disabled || !m.input.Focused() {
		return nil
	}

	if m.OnKeyDown != nil {
		if cmd, consumed := m.OnKeyDown(msg); consumed {
			return cmd
		}
	}

	if msg.Type == tea.KeyEnter {
		id, value := m.id, m.input.Value()
		return func() tea.Msg { return SubmitMsg{ID: id, Value: value} }
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return cmd
	}

	m.cancel()
	if m.mounted && m.input.Value() != m.value {
		return tea.Batch(cmd, m.schedule())
	}
	return cmd
}

func (m *Model) schedule() tea.Cmd {
	m.seq++
	m.pending = true
	id, seq := m.id, m.seq
	return m.after(m.interval, func(time.Time) tea.Msg {
		return tickMsg{id: id, seq: seq}
	})
}

// cancel invalidates any outstanding tick
func (m *Model) cancel() {
	if m.pending {
		m.seq++
		m.pending = false
	}
}

func (m *Model) dispatch(query string) tea.Cmd {
	log.Debug().Int("input", m.id).Str("query", query).Msg("debounce: query settled")
	if m.OnQueryChanged != nil {
		return m.OnQueryChanged(query)
	}
	id := m.id
	return func() tea.Msg { return QueryChangedMsg{ID: id, Query: query} }
}

// View renders the field
func (m *Model) View() string {
	return m.input.View()
}
