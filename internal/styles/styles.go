// Package styles defines the presentation styles for tnm's terminal
// output. Color usage is an explicit value resolved once and threaded
// into the presentation layer; the core packages never touch it.
package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	colorCyan   = lipgloss.Color("12")
	colorYellow = lipgloss.Color("11")
	colorGreen  = lipgloss.Color("10")
	colorRed    = lipgloss.Color("9")
	colorGray   = lipgloss.Color("8")
)

// Styles renders the different kinds of output tnm produces. Every
// field is a plain string transformer so callers stay independent of
// the styling library.
type Styles struct {
	Banner    func(string) string
	Heading   func(string) string
	GroupName func(string) string
	Path      func(string) string
	Notice    func(string) string
	Success   func(string) string
	Error     func(string) string
	Dim       func(string) string
	Prompt    func(string) string
}

// New builds the style set. With color disabled every transformer is
// the identity function.
func New(colorEnabled bool) Styles {
	if !colorEnabled {
		identity := func(s string) string { return s }
		return Styles{
			Banner:    identity,
			Heading:   identity,
			GroupName: identity,
			Path:      identity,
			Notice:    identity,
			Success:   identity,
			Error:     identity,
			Dim:       identity,
			Prompt:    identity,
		}
	}

	banner := lipgloss.NewStyle().Foreground(colorCyan)
	heading := lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	group := lipgloss.NewStyle().Foreground(colorGreen)
	path := lipgloss.NewStyle().Foreground(colorGray)
	notice := lipgloss.NewStyle().Foreground(colorYellow)
	success := lipgloss.NewStyle().Foreground(colorGreen)
	errStyle := lipgloss.NewStyle().Foreground(colorRed)
	dim := lipgloss.NewStyle().Foreground(colorGray)
	prompt := lipgloss.NewStyle().Foreground(colorYellow).Bold(true)

	render := func(style lipgloss.Style) func(string) string {
		return func(s string) string { return style.Render(s) }
	}
	return Styles{
		Banner:    render(banner),
		Heading:   render(heading),
		GroupName: render(group),
		Path:      render(path),
		Notice:    render(notice),
		Success:   render(success),
		Error:     render(errStyle),
		Dim:       render(dim),
		Prompt:    render(prompt),
	}
}

// ColorEnabled resolves a color mode ("auto", "always", "never") into
// a concrete decision. Auto means stdout is a terminal and the
// environment does not opt out via NO_COLOR.
func ColorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd())) && !termenv.EnvNoColor()
	}
}
