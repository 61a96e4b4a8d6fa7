package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpSection is one titled group of bindings in the full help
type helpSection struct {
	title    string
	bindings []key.Binding
}

// renderHelpContent renders the full key reference shown in the pager
func renderHelpContent(k keyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	full := k.FullHelp()
	sections := []helpSection{
		{title: "Search Box", bindings: full[0]},
		{title: "Form", bindings: full[1]},
		{title: "Other", bindings: full[2]},
	}

	keyWidth := 0
	for _, s := range sections {
		for _, b := range s.bindings {
			keyWidth = max(keyWidth, lipgloss.Width(b.Help().Key))
		}
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("Typeahead Help"))
	help.WriteString("\n")

	for i, s := range sections {
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, b := range s.bindings {
			h := b.Help()
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(h.Key)+2)
			help.WriteString(fmt.Sprintf("  %s%s%s\n", keyStyle.Render(h.Key), pad, descStyle.Render(h.Desc)))
		}
		if i < len(sections)-1 {
			help.WriteString("\n")
		}
	}

	filterStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString("\n")
	help.WriteString(filterStyle.Render("  Mouse: click a row to choose it, wheel to move, click outside to close"))

	return help.String()
}

// HelpPager shows text in the ov pager while the program is suspended
type HelpPager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpPager creates a new help pager
func NewHelpPager() *HelpPager {
	return &HelpPager{}
}

// SetProgram sets the program reference for terminal management
func (h *HelpPager) SetProgram(p *tea.Program) {
	h.program = p
}

// Ready reports whether a program is attached
func (h *HelpPager) Ready() bool {
	return h != nil && h.program != nil
}

// Show shows content using ov pager
func (h *HelpPager) Show(content string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
