package combobox

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// JoinExtra joins extra pairs as "label: value" in insertion order
func JoinExtra(extra *orderedmap.OrderedMap[string, string]) string {
	if extra == nil || extra.Len() == 0 {
		return ""
	}
	parts := make([]string, 0, extra.Len())
	for pair := extra.Oldest(); pair != nil; pair = pair.Next() {
		parts = append(parts, pair.Key+": "+pair.Value)
	}
	return strings.Join(parts, " · ")
}

// DefaultRenderer shows the display text followed by the joined extra
// pairs, truncated to the row width
func DefaultRenderer[K comparable](styles *Styles) RenderFunc[K] {
	return func(item Item[K], highlighted bool, width int) string {
		primary := runewidth.Truncate(item.Display, width, "…")
		secondary := JoinExtra(item.Extra)

		room := width - runewidth.StringWidth(primary) - 2
		if secondary == "" || room <= 0 {
			return styles.Primary.Render(primary)
		}
		secondary = runewidth.Truncate(secondary, room, "…")
		return styles.Primary.Render(primary) + "  " + styles.Secondary.Render(secondary)
	}
}

// View renders the field and, when visible, the dropdown below it
func (m *Model[K]) View() string {
	field := m.input.View()
	if m.disabled {
		field = m.styles.InputDisabled.Render(field)
	} else {
		field = m.styles.Input.Render(field)
	}

	if !m.DropdownVisible() {
		return field
	}
	return lipgloss.JoinVertical(lipgloss.Left, field, m.dropdownView())
}

func (m *Model[K]) innerWidth() int {
	w := m.width - m.styles.Dropdown.GetHorizontalFrameSize()
	if w < 1 {
		return 1
	}
	return w
}

func (m *Model[K]) dropdownView() string {
	inner := m.innerWidth()

	var body string
	switch m.Phase() {
	case OpenLoading:
		body = m.spinner.View() + " " + m.styles.Loading.Render(m.loadingText)
	case OpenEmpty:
		body = m.styles.Empty.Render(m.noResultsText)
	case OpenResults:
		body = m.rowsView(inner)
	}

	return m.styles.Dropdown.Width(inner).Render(body)
}

func (m *Model[K]) rowsView(inner int) string {
	window := m.Window()
	start, end := m.viewport.Visible()

	rows := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(window[i], i == m.state.Cursor(), inner))
	}

	if len(window) > m.viewport.GetViewportHeight() {
		rows = append(rows, m.styles.Footer.Render(m.footer(len(window))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model[K]) footer(total int) string {
	if c := m.state.Cursor(); c != NoCursor {
		return fmt.Sprintf("%d of %d", c+1, total)
	}
	return fmt.Sprintf("%d items", total)
}

func (m *Model[K]) renderRow(item Item[K], highlighted bool, inner int) string {
	style := m.styles.Row
	if highlighted {
		style = m.styles.Selected
	}
	return style.Width(inner).Render(m.render(item, highlighted, inner))
}
