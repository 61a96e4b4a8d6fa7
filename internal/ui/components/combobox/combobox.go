// Package combobox implements a type-ahead search box: a debounced text
// input over a dropdown of candidates supplied by the caller.
package combobox

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"typeahead/internal/ui/components/debounce"
	"typeahead/internal/ui/services/events"
	"typeahead/internal/ui/services/navigation"
)

// Defaults applied by New for zero Config fields
const (
	DefaultMaxVisible    = 8
	DefaultWidth         = 40
	DefaultNoResultsText = "No results"
	DefaultLoadingText   = "Searching..."
)

// Item is one candidate. The combobox never modifies items.
type Item[K comparable] struct {
	ID      K
	Display string                                 // text committed on selection
	Extra   *orderedmap.OrderedMap[string, string] // optional label -> value pairs
}

// RenderFunc renders one row's content in at most width cells
type RenderFunc[K comparable] func(item Item[K], highlighted bool, width int) string

// Config configures a new combobox
type Config[K comparable] struct {
	Value       string
	Placeholder string
	Prompt      string
	Width       int
	Interval    time.Duration // debounce interval, zero selects the default

	// MaxVisible caps the window. Zero selects DefaultMaxVisible and a
	// negative value yields an always-empty window. SetMaxVisible takes
	// zero literally; call it after New to get an empty window from zero.
	MaxVisible int
	// Height is the number of rows shown before the dropdown scrolls.
	// Zero shows the whole window.
	Height int

	NoResultsText string
	LoadingText   string
	Disabled      bool
	RenderItem    RenderFunc[K]
	Styles        *Styles
	KeyMap        *KeyMap
	Scheduler     debounce.Scheduler
}

// Model is the combobox. It is driven by the host through setters and
// Update, and reports back through OnSearch and OnSelect or, when those
// are nil, through SearchMsg and SelectedMsg.
type Model[K comparable] struct {
	input    *debounce.Model
	state    State
	viewport *navigation.Service
	spinner  spinner.Model

	items      []Item[K]
	loading    bool
	disabled   bool
	maxVisible int
	height     int
	width      int

	prompt        string
	noResultsText string
	loadingText   string
	render        RenderFunc[K]
	styles        *Styles
	keys          KeyMap

	unsubscribe func()
	x, y        int

	OnSearch func(query string) tea.Cmd
	OnSelect func(item Item[K]) tea.Cmd
}

// New creates a closed combobox
func New[K comparable](cfg Config[K]) *Model[K] {
	m := &Model[K]{
		state:         ClosedState(),
		disabled:      cfg.Disabled,
		maxVisible:    cfg.MaxVisible,
		height:        cfg.Height,
		width:         cfg.Width,
		prompt:        cfg.Prompt,
		noResultsText: cfg.NoResultsText,
		loadingText:   cfg.LoadingText,
		styles:        cfg.Styles,
	}
	if m.maxVisible == 0 {
		m.maxVisible = DefaultMaxVisible
	}
	if m.width <= 0 {
		m.width = DefaultWidth
	}
	if m.noResultsText == "" {
		m.noResultsText = DefaultNoResultsText
	}
	if m.loadingText == "" {
		m.loadingText = DefaultLoadingText
	}
	if m.styles == nil {
		m.styles = DefaultStyles()
	}
	m.keys = DefaultKeyMap()
	if cfg.KeyMap != nil {
		m.keys = *cfg.KeyMap
	}
	m.render = cfg.RenderItem
	if m.render == nil {
		m.render = DefaultRenderer[K](m.styles)
	}

	m.input = debounce.New(debounce.Config{
		Value:       cfg.Value,
		Interval:    cfg.Interval,
		Placeholder: cfg.Placeholder,
		Prompt:      cfg.Prompt,
		Disabled:    cfg.Disabled,
		Scheduler:   cfg.Scheduler,
	})
	m.input.SetWidth(m.inputWidth())
	m.input.OnQueryChanged = m.handleQuery
	m.input.OnFocus = m.handleFocus
	m.input.OnBlur = m.handleBlur
	m.input.OnKeyDown = m.handleKeyDown

	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(m.styles.Loading),
	)
	m.viewport = navigation.NewService(m.viewportHeight())
	m.viewport.OnScroll(m.logScroll)

	return m
}

// ID identifies this combobox in emitted messages
func (m *Model[K]) ID() int {
	return m.input.ID()
}

// KeyMap returns the active key bindings
func (m *Model[K]) KeyMap() KeyMap {
	return m.keys
}

// State returns the current state
func (m *Model[K]) State() State {
	return m.state
}

// Phase returns what the dropdown presents
func (m *Model[K]) Phase() Phase {
	return m.state.Phase(m.loading)
}

// Open reports whether the list is open
func (m *Model[K]) Open() bool {
	return m.state.Open()
}

// Cursor returns the highlighted window index or NoCursor
func (m *Model[K]) Cursor() int {
	return m.state.Cursor()
}

// DropdownVisible reports whether the dropdown is drawn. An empty query
// never shows it.
func (m *Model[K]) DropdownVisible() bool {
	return m.state.Open() && m.input.Buffer() != ""
}

// Value returns the text shown in the field
func (m *Model[K]) Value() string {
	return m.input.Buffer()
}

// Items returns the current candidate list
func (m *Model[K]) Items() []Item[K] {
	return m.items
}

// Window returns the prefix of Items that can be shown
func (m *Model[K]) Window() []Item[K] {
	if m.maxVisible <= 0 {
		return nil
	}
	if len(m.items) > m.maxVisible {
		return m.items[:m.maxVisible]
	}
	return m.items
}

// Loading reports whether the caller marked results as loading
func (m *Model[K]) Loading() bool {
	return m.loading
}

// Focused reports whether the field has focus
func (m *Model[K]) Focused() bool {
	return m.input.Focused()
}

// Disabled reports whether the combobox ignores interaction
func (m *Model[K]) Disabled() bool {
	return m.disabled
}

// Viewport returns the first visible window index and the row count shown
func (m *Model[K]) Viewport() (offset, height int) {
	return m.viewport.GetViewportOffset(), m.viewport.GetViewportHeight()
}

// SetValue sets the authoritative display text
func (m *Model[K]) SetValue(v string) {
	m.input.SetValue(v)
}

// SetItems replaces the candidate list
func (m *Model[K]) SetItems(items []Item[K]) {
	m.items = items
	m.syncWindow()
}

// SetLoading sets the loading flag. Turning it on starts the spinner.
func (m *Model[K]) SetLoading(loading bool) tea.Cmd {
	if loading == m.loading {
		return nil
	}
	m.loading = loading
	if loading {
		return m.spinner.Tick
	}
	return nil
}

// SetMaxVisible changes the window cap. Values <= 0, zero included,
// empty the window.
func (m *Model[K]) SetMaxVisible(n int) {
	m.maxVisible = n
	m.viewport.SetViewportHeight(m.viewportHeight())
	m.syncWindow()
}

// SetDisabled enables or disables the combobox. Disabling closes the list.
func (m *Model[K]) SetDisabled(disabled bool) {
	m.disabled = disabled
	m.input.SetDisabled(disabled)
	if disabled {
		m.close()
	}
}

// SetWidth sets the total width in cells
func (m *Model[K]) SetWidth(w int) {
	if w <= 0 {
		w = DefaultWidth
	}
	m.width = w
	m.input.SetWidth(m.inputWidth())
}

// Focus focuses the field and opens the list
func (m *Model[K]) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes focus and closes the list
func (m *Model[K]) Blur() tea.Cmd {
	return m.input.Blur()
}

// Mount subscribes to outside pointer presses. It is a no-op when
// already mounted.
func (m *Model[K]) Mount(bus events.PointerBus) {
	if m.unsubscribe != nil {
		return
	}
	m.input.Mount()
	m.unsubscribe = bus.Subscribe(m.handlePointer)
}

// Unmount releases the pointer subscription and cancels pending searches
func (m *Model[K]) Unmount() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.input.Unmount()
	m.close()
}

// Update handles keys, mouse events, debounce ticks and spinner frames.
// Keys are ignored unless the field is focused.
func (m *Model[K]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.input.Focused() {
			return nil
		}
		return m.input.Update(msg)

	case tea.MouseMsg:
		cmd, _ := m.HandleMouse(msg)
		return cmd

	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}

	return m.input.Update(msg)
}

func (m *Model[K]) handleQuery(query string) tea.Cmd {
	if m.disabled {
		return nil
	}
	if m.input.Focused() {
		m.state = m.state.WithOpen()
		m.syncViewport()
	}
	if m.OnSearch != nil {
		return m.OnSearch(query)
	}
	id := m.ID()
	return func() tea.Msg { return SearchMsg{ID: id, Query: query} }
}

func (m *Model[K]) handleFocus() tea.Cmd {
	m.state = m.state.WithOpen()
	m.syncViewport()
	return nil
}

func (m *Model[K]) handleBlur() tea.Cmd {
	m.close()
	return nil
}

func (m *Model[K]) handleKeyDown(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !m.state.Open() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.close()
		return nil, true

	case key.Matches(msg, m.keys.Down):
		if m.DropdownVisible() {
			m.state = m.state.Next()
			m.syncViewport()
		}
		return nil, true

	case key.Matches(msg, m.keys.Up):
		if m.DropdownVisible() {
			m.state = m.state.Prev()
			m.syncViewport()
		}
		return nil, true

	case key.Matches(msg, m.keys.Select):
		cursor := m.state.Cursor()
		window := m.Window()
		if m.DropdownVisible() && cursor != NoCursor && cursor < len(window) {
			return m.commit(window[cursor]), true
		}
		return nil, true
	}

	return nil, false
}

// handlePointer sees every press the host publishes, including ones
// this combobox will receive itself. Presses outside close the list
// whether or not the field has focus.
func (m *Model[K]) handlePointer(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || !m.state.Open() {
		return
	}
	if m.Contains(msg.X, msg.Y) {
		return
	}
	log.Debug().Int("combobox", m.ID()).Int("x", msg.X).Int("y", msg.Y).Msg("combobox: outside press")
	m.close()
}

func (m *Model[K]) commit(item Item[K]) tea.Cmd {
	log.Debug().Int("combobox", m.ID()).Str("display", item.Display).Msg("combobox: commit")

	m.input.Overwrite(item.Display)

	var cmd tea.Cmd
	if m.OnSelect != nil {
		cmd = m.OnSelect(item)
	} else {
		id := m.ID()
		cmd = func() tea.Msg { return SelectedMsg[K]{ID: id, Item: item} }
	}

	m.close()
	return cmd
}

func (m *Model[K]) close() {
	m.state = m.state.WithClosed()
	m.syncViewport()
}

func (m *Model[K]) syncWindow() {
	m.state = m.state.WithWindow(len(m.Window()))
	m.syncViewport()
}

// syncViewport scrolls the highlighted row into view
func (m *Model[K]) syncViewport() {
	m.viewport.SetRows(m.state.Window())
	if m.state.Cursor() == NoCursor {
		m.viewport.Reset()
		return
	}
	m.viewport.MoveToIndex(m.state.Cursor())
}

func (m *Model[K]) logScroll(e navigation.ViewportChangedEvent) {
	log.Debug().Int("combobox", m.ID()).Int("offset", e.Offset).Int("height", e.Height).Msg("combobox: scroll")
}

func (m *Model[K]) viewportHeight() int {
	if m.height > 0 {
		return m.height
	}
	if m.maxVisible > 0 {
		return m.maxVisible
	}
	return 1
}

func (m *Model[K]) inputWidth() int {
	w := m.width - lipgloss.Width(m.prompt) - 1
	if w < 1 {
		return 1
	}
	return w
}
