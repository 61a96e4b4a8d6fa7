package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Label         lipgloss.Style
	Dim           lipgloss.Style
	Indicator     lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Ready         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Label:         lipgloss.NewStyle().Bold(true),
		Dim:           lipgloss.NewStyle().Faint(true),
		Indicator:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Help:          lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Button: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")),
		ButtonFocused: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("99")),
		Ready: lipgloss.NewStyle().Faint(true),
	}
}

// StatusStyle returns the style for a status kind
func (s *Styles) StatusStyle(kind StatusKind) lipgloss.Style {
	switch kind {
	case StatusError:
		return s.StatusError
	case StatusWarning:
		return s.StatusWarning
	case StatusSuccess:
		return s.StatusSuccess
	default:
		return s.Status
	}
}

// GetBranchColor returns the appropriate color for a git branch
func GetBranchColor(branchName string) string {
	switch branchName {
	case "main", "master":
		return "78" // green
	case "develop", "dev":
		return "33" // blue
	default:
		if branchName == "" || branchName == "HEAD" {
			return "203" // red (detached HEAD or error)
		}
		return "214" // yellow for feature branches
	}
}
