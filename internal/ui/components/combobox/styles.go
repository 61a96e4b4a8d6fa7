package combobox

import "github.com/charmbracelet/lipgloss"

// Styles contains the style definitions for the combobox
type Styles struct {
	Input         lipgloss.Style
	InputDisabled lipgloss.Style
	Dropdown      lipgloss.Style
	Row           lipgloss.Style
	Selected      lipgloss.Style
	Primary       lipgloss.Style
	Secondary     lipgloss.Style
	Empty         lipgloss.Style
	Loading       lipgloss.Style
	Footer        lipgloss.Style
}

// DefaultStyles returns the default palette
func DefaultStyles() *Styles {
	return &Styles{
		Input:         lipgloss.NewStyle(),
		InputDisabled: lipgloss.NewStyle().Faint(true),
		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		Row:       lipgloss.NewStyle(),
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Primary:   lipgloss.NewStyle(),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Loading:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
