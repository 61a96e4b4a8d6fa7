package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"typeahead/internal/config"
	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/ui/components/combobox"
	"typeahead/internal/ui/components/debounce"
	"typeahead/internal/ui/services/events"
	"typeahead/internal/ui/views"
)

// ErrCanceled is returned by Result when the user left without choosing
var ErrCanceled = errors.New("selection canceled")

// focusTarget is the form control holding keyboard focus
type focusTarget int

const (
	focusCombo focusTarget = iota
	focusSubmit
)

// Option customizes a Model
type Option func(*options)

type options struct {
	scheduler debounce.Scheduler
	ready     bool
}

// WithScheduler replaces the debounce timer, mainly for tests
func WithScheduler(s debounce.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithReadyMarker makes the view end with __READY__ for pty tests
func WithReadyMarker(on bool) Option {
	return func(o *options) { o.ready = on }
}

// Model represents the application state
type Model struct {
	bus     eventbus.EventBus
	pointer *events.Bus
	config  *config.Config

	combo    *combobox.Model[string]
	renderer *views.Renderer
	help     help.Model
	keys     keyMap
	pager    *HelpPager

	focus    focusTarget
	seq      uint64
	entries  map[string]domain.Entry // current candidates by ID
	selected *domain.Entry

	status     string
	statusKind views.StatusKind
	catalog    string

	width, height int
	ready         bool
	inPagerMode   bool
	canceled      bool
	done          bool
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, opts ...Option) *Model {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m := &Model{
		bus:      bus,
		pointer:  events.NewBus(),
		config:   cfg,
		renderer: views.NewRenderer(),
		help:     help.New(),
		pager:    NewHelpPager(),
		entries:  make(map[string]domain.Entry),
		ready:    o.ready,
	}

	cc := cfg.Combobox
	ccfg := combobox.Config[string]{
		Placeholder:   cc.Placeholder,
		Prompt:        cc.Prompt,
		Width:         cc.Width,
		Interval:      cc.Debounce(),
		Height:        cc.Height,
		NoResultsText: cc.NoResultsText,
		Scheduler:     o.scheduler,
	}
	if cfg.Source.Kind == config.SourceRepos {
		ccfg.RenderItem = m.renderRepository
	}

	m.combo = combobox.New(ccfg)
	// zero in the file means "no rows", which is the setter's meaning
	m.combo.SetMaxVisible(cc.MaxVisible)
	m.combo.OnSearch = m.onSearch
	m.combo.OnSelect = m.onSelect
	m.combo.Mount(m.pointer)
	m.combo.SetPosition(m.renderer.FieldOrigin())

	m.keys = newKeyMap(m.combo.KeyMap())

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Combobox returns the search box
func (m *Model) Combobox() *combobox.Model[string] {
	return m.combo
}

// Selected returns the committed entry, if any
func (m *Model) Selected() (domain.Entry, bool) {
	if m.selected == nil {
		return domain.Entry{}, false
	}
	return *m.selected, true
}

// Result returns the accepted entry or ErrCanceled
func (m *Model) Result() (domain.Entry, error) {
	if m.canceled || !m.done || m.selected == nil {
		return domain.Entry{}, ErrCanceled
	}
	return *m.selected, nil
}

// Canceled reports whether the user left without accepting
func (m *Model) Canceled() bool {
	return m.canceled
}

// Status returns the status line text
func (m *Model) Status() string {
	return m.status
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.combo.Focus()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.BlurMsg:
		// terminal lost focus
		return m, m.combo.Blur()

	case tea.FocusMsg:
		if m.focus == focusCombo {
			return m, m.combo.Focus()
		}
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case debounce.SubmitMsg:
		if msg.ID == m.combo.ID() {
			return m, m.accept()
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Failed to show help: %v", msg.err), views.StatusError)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	// debounce ticks, spinner frames, cursor blink
	return m, m.combo.Update(msg)
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode || m.done {
		return ""
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	var indicators []string
	if m.catalog != "" {
		indicators = append(indicators, m.catalog)
	}
	return views.ViewState{
		Width:         m.width,
		Title:         "typeahead",
		Indicators:    indicators,
		Label:         m.config.Combobox.Label,
		Field:         m.combo.View(),
		Button:        "Submit",
		ButtonFocused: m.focus == focusSubmit,
		Status:        m.status,
		StatusKind:    m.statusKind,
		Help:          m.help.View(m.keys),
		Ready:         m.ready,
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.cancel()
	case key.Matches(msg, m.keys.Help):
		return m.showHelp()
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		return m.toggleFocus()
	}

	if m.focus == focusSubmit {
		switch {
		case key.Matches(msg, m.keys.Accept):
			return m.accept()
		case key.Matches(msg, m.keys.Cancel):
			return m.cancel()
		}
		return nil
	}

	// Esc closes an open list first; only a second Esc leaves
	if key.Matches(msg, m.keys.Cancel) && !m.combo.Open() {
		return m.cancel()
	}
	return m.combo.Update(msg)
}

// handleMouse publishes presses on the pointer bus before routing them,
// so the combobox sees outside presses it will never receive itself.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	press := msg.Action == tea.MouseActionPress && !tea.MouseEvent(msg).IsWheel()
	// hit-test against the frame the user clicked on
	button := press && msg.Button == tea.MouseButtonLeft && m.onButton(msg.X, msg.Y)
	if press {
		m.pointer.Publish(msg)
	}

	if button {
		blur := m.combo.Blur()
		m.focus = focusSubmit
		return tea.Batch(blur, m.accept())
	}

	cmd := m.combo.Update(msg)
	if press && m.combo.Focused() {
		m.focus = focusCombo
	}
	return cmd
}

func (m *Model) onButton(x, y int) bool {
	x0, y0, x1, y1 := m.renderer.ButtonBounds(m.viewState())
	return x >= x0 && x < x1 && y >= y0 && y < y1
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusCombo {
		m.focus = focusSubmit
		return m.combo.Blur()
	}
	m.focus = focusCombo
	return m.combo.Focus()
}

func (m *Model) onSearch(query string) tea.Cmd {
	if m.selected != nil && m.selected.Display != query {
		m.selected = nil
	}

	m.seq++
	if query == "" {
		// nothing to ask for; in-flight answers are now stale
		m.combo.SetItems(nil)
		return m.combo.SetLoading(false)
	}

	log.Debug().Uint64("seq", m.seq).Str("query", query).Msg("ui: search requested")
	m.bus.Publish(eventbus.SearchRequestedEvent{Seq: m.seq, Query: query})
	return m.combo.SetLoading(true)
}

func (m *Model) onSelect(item combobox.Item[string]) tea.Cmd {
	entry, ok := m.entries[item.ID]
	if !ok {
		entry = domain.Entry{ID: item.ID, Display: item.Display, Extra: item.Extra}
	}
	m.selected = &entry
	m.bus.Publish(eventbus.ItemSelectedEvent{Entry: entry})
	m.setStatus(fmt.Sprintf("Selected %s", entry.Display), views.StatusSuccess)
	return nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SearchCompletedEvent:
		if e.Seq != m.seq {
			log.Debug().Uint64("seq", e.Seq).Uint64("latest", m.seq).Msg("ui: dropping stale results")
			return nil
		}
		m.setItems(e.Entries)
		if m.statusKind == views.StatusError {
			m.setStatus("", views.StatusInfo)
		}
		return m.combo.SetLoading(false)

	case eventbus.SearchFailedEvent:
		if e.Seq != m.seq {
			return nil
		}
		m.setItems(nil)
		m.setStatus(fmt.Sprintf("Search failed: %v", e.Err), views.StatusError)
		return m.combo.SetLoading(false)

	case eventbus.CatalogLoadedEvent:
		m.catalog = fmt.Sprintf("%d items", e.Count)
		return nil

	case eventbus.ErrorEvent:
		if e.Err != nil {
			m.setStatus(fmt.Sprintf("%s: %v", e.Message, e.Err), views.StatusError)
		} else {
			m.setStatus(e.Message, views.StatusError)
		}
		return nil
	}
	return nil
}

func (m *Model) setItems(entries []domain.Entry) {
	m.entries = make(map[string]domain.Entry, len(entries))
	items := make([]combobox.Item[string], 0, len(entries))
	for _, e := range entries {
		m.entries[e.ID] = e
		items = append(items, combobox.Item[string]{ID: e.ID, Display: e.Display, Extra: e.Extra})
	}
	m.combo.SetItems(items)
}

func (m *Model) accept() tea.Cmd {
	// the field may have been edited after the commit without settling
	if m.selected != nil && m.selected.Display != m.combo.Value() {
		m.selected = nil
	}
	if m.selected == nil {
		m.setStatus("Choose an item from the list first", views.StatusWarning)
		return nil
	}
	m.done = true
	return tea.Quit
}

func (m *Model) cancel() tea.Cmd {
	m.canceled = true
	m.done = true
	return tea.Quit
}

// showHelp returns a command that shows the key reference using ov pager
func (m *Model) showHelp() tea.Cmd {
	if !m.pager.Ready() {
		m.setStatus("Help is not available", views.StatusWarning)
		return nil
	}
	content := renderHelpContent(m.keys)
	pager := m.pager
	return func() tea.Msg {
		// Send pause message to stop rendering
		pager.program.Send(pauseRenderingMsg{})

		err := pager.Show(content)

		// Send resume message to restart rendering
		pager.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

func (m *Model) setStatus(text string, kind views.StatusKind) {
	m.status = text
	m.statusKind = kind
}

// renderRepository draws repository candidates with their branch and path
func (m *Model) renderRepository(item combobox.Item[string], highlighted bool, width int) string {
	var branch, path string
	if item.Extra != nil {
		branch, _ = item.Extra.Get("branch")
		path, _ = item.Extra.Get("path")
	}
	rr := views.NewRepositoryRenderer(m.renderer.Styles())
	return rr.RenderRepository(item.Display, branch, path, m.combo.Value(), highlighted, width)
}
