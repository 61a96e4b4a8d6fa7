package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusKind selects the status line color
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// ViewState is everything the renderer needs for one frame
type ViewState struct {
	Width         int
	Title         string
	Indicators    []string
	Label         string
	Field         string // rendered combobox
	Button        string
	ButtonFocused bool
	Status        string
	StatusKind    StatusKind
	Help          string
	Ready         bool
}

// Renderer lays out the form
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.titleLine(state))
	content.WriteString("\n")
	content.WriteString(r.styles.Label.Render(state.Label))
	content.WriteString("\n")
	content.WriteString(state.Field)
	content.WriteString("\n\n")
	content.WriteString(r.button(state))
	content.WriteString("\n\n")

	if state.Status != "" {
		content.WriteString(r.styles.StatusStyle(state.StatusKind).Render(state.Status))
	}
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.Help))

	if state.Ready {
		content.WriteString("\n")
		content.WriteString(r.styles.Ready.Render("__READY__"))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) button(state ViewState) string {
	if state.ButtonFocused {
		return r.styles.ButtonFocused.Render(state.Button)
	}
	return r.styles.Button.Render(state.Button)
}

// titleLine renders the title with the indicators right-aligned
func (r *Renderer) titleLine(state ViewState) string {
	logo := r.styles.Title.Render(state.Title)
	if len(state.Indicators) == 0 {
		return logo
	}

	rightContent := r.styles.Indicator.Render(strings.Join(state.Indicators, " | "))

	// Title carries a bottom margin; align against its first line only
	logoLine := strings.SplitN(logo, "\n", 2)
	logoWidth := lipgloss.Width(logoLine[0])
	rightWidth := lipgloss.Width(rightContent)

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	availableWidth := termWidth - r.styles.Main.GetHorizontalFrameSize()
	paddingWidth := availableWidth - logoWidth - rightWidth

	var first string
	if paddingWidth > 0 {
		first = fmt.Sprintf("%s%s%s", logoLine[0], strings.Repeat(" ", paddingWidth), rightContent)
	} else {
		first = fmt.Sprintf("%s  %s", logoLine[0], rightContent)
	}
	if len(logoLine) == 2 {
		return first + "\n" + logoLine[1]
	}
	return first
}

// FieldOrigin returns the screen cell where the combobox field starts
func (r *Renderer) FieldOrigin() (x, y int) {
	x = r.styles.Main.GetPaddingLeft()
	y = r.styles.Main.GetPaddingTop() +
		lipgloss.Height(r.styles.Title.Render("x")) +
		lipgloss.Height(r.styles.Label.Render("x"))
	return x, y
}

// ButtonBounds returns the screen rectangle [x0, x1) x [y0, y1) of the
// submit button given the rendered field
func (r *Renderer) ButtonBounds(state ViewState) (x0, y0, x1, y1 int) {
	fx, fy := r.FieldOrigin()
	b := r.button(state)
	x0 = fx
	y0 = fy + lipgloss.Height(state.Field) + 1
	return x0, y0, x0 + lipgloss.Width(b), y0 + lipgloss.Height(b)
}
