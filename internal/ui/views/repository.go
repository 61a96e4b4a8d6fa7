package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// RepositoryRenderer renders repository candidates as
// "name (branch)  path"
type RepositoryRenderer struct {
	styles *Styles
}

// NewRepositoryRenderer creates a new repository renderer
func NewRepositoryRenderer(styles *Styles) *RepositoryRenderer {
	return &RepositoryRenderer{styles: styles}
}

// RenderRepository renders one repository row in at most width cells.
// The part of the name matching query is highlighted.
func (r *RepositoryRenderer) RenderRepository(name, branch, path, query string, isSelected bool, width int) string {
	bgColor := ""
	if isSelected {
		bgColor = "238"
	}
	base := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))

	name = runewidth.Truncate(name, width, "…")
	used := runewidth.StringWidth(name)

	var parts []string
	parts = append(parts, r.highlightMatch(name, query,
		base.Foreground(lipgloss.Color("226")), base))

	branchText := " (" + r.formatBranchName(branch) + ")"
	if used+runewidth.StringWidth(branchText) <= width {
		branchStyle := base.Foreground(lipgloss.Color(GetBranchColor(branch)))
		parts = append(parts, base.Render(" ("), branchStyle.Render(r.formatBranchName(branch)), base.Render(")"))
		used += runewidth.StringWidth(branchText)
	}

	if room := width - used - 2; path != "" && room > 0 {
		parts = append(parts, base.Render("  "), r.styles.Dim.Render(runewidth.Truncate(path, room, "…")))
	}

	return strings.Join(parts, "")
}

// formatBranchName formats a branch name for display
func (r *RepositoryRenderer) formatBranchName(branch string) string {
	if branch == "" {
		return "no branch"
	}
	// Truncate long branch names
	if len(branch) > 30 {
		return branch[:27] + "..."
	}
	return branch
}

// highlightMatch highlights matching text within a string
func (r *RepositoryRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	if query == "" {
		return normalStyle.Render(text)
	}

	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 || len(lowerText) != len(text) {
		return normalStyle.Render(text)
	}

	// Split the text into parts
	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}
	return strings.Join(result, "")
}
