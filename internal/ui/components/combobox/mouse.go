package combobox

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// rowSpan is the screen lines [top, bottom) a window row occupies
type rowSpan struct {
	index  int
	top    int
	bottom int
}

// SetPosition records where the combobox is drawn: the field's first
// cell is at (x, y) and the dropdown starts on the line below.
func (m *Model[K]) SetPosition(x, y int) {
	m.x, m.y = x, y
	m.input.SetPosition(x, y)
}

// Contains reports whether a screen cell lies inside the field or the
// visible dropdown
func (m *Model[K]) Contains(x, y int) bool {
	if m.input.Contains(x, y) {
		return true
	}
	x0, y0, x1, y1, ok := m.dropdownBounds()
	return ok && x >= x0 && x < x1 && y >= y0 && y < y1
}

func (m *Model[K]) dropdownBounds() (x0, y0, x1, y1 int, ok bool) {
	if !m.DropdownVisible() {
		return 0, 0, 0, 0, false
	}
	v := m.dropdownView()
	x0, y0 = m.x, m.y+1
	return x0, y0, x0 + lipgloss.Width(v), y0 + lipgloss.Height(v), true
}

func (m *Model[K]) rowSpans() []rowSpan {
	if !m.DropdownVisible() || m.Phase() != OpenResults {
		return nil
	}

	inner := m.innerWidth()
	window := m.Window()
	start, end := m.viewport.Visible()

	top := m.y + 1 + m.styles.Dropdown.GetBorderTopSize() + m.styles.Dropdown.GetPaddingTop()
	spans := make([]rowSpan, 0, end-start)
	for i := start; i < end; i++ {
		h := lipgloss.Height(m.renderRow(window[i], i == m.state.Cursor(), inner))
		spans = append(spans, rowSpan{index: i, top: top, bottom: top + h})
		top += h
	}
	return spans
}

// rowAt returns the window index drawn at a screen cell, or NoCursor
func (m *Model[K]) rowAt(x, y int) int {
	x0, _, x1, _, ok := m.dropdownBounds()
	if !ok || x < x0 || x >= x1 {
		return NoCursor
	}
	for _, span := range m.rowSpans() {
		if y >= span.top && y < span.bottom {
			return span.index
		}
	}
	return NoCursor
}

// HandleMouse routes a pointer event. Motion over a row highlights it,
// a left press on a row commits it and a press on the field refocuses
// it. It reports whether the event landed on the combobox.
func (m *Model[K]) HandleMouse(msg tea.MouseMsg) (tea.Cmd, bool) {
	if !m.Contains(msg.X, msg.Y) {
		return nil, false
	}
	if m.disabled {
		return nil, true
	}

	if msg.Action == tea.MouseActionPress && m.DropdownVisible() {
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.state = m.state.Next()
			m.syncViewport()
			return nil, true
		case tea.MouseButtonWheelUp:
			m.state = m.state.Prev()
			m.syncViewport()
			return nil, true
		}
	}

	if row := m.rowAt(msg.X, msg.Y); row != NoCursor {
		switch {
		case msg.Action == tea.MouseActionMotion:
			m.state = m.state.Hover(row)
			m.syncViewport()
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			return m.commit(m.Window()[row]), true
		}
		return nil, true
	}

	cmd, _ := m.input.HandleMouse(msg)
	return cmd, true
}
