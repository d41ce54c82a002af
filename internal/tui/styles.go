package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Styles groups every style the calculator view uses.
type Styles struct {
	Frame       lipgloss.Style
	Previous    lipgloss.Style
	Current     lipgloss.Style
	Title       lipgloss.Style
	Entry       lipgloss.Style
	Selected    lipgloss.Style
	Timestamp   lipgloss.Style
	Empty       lipgloss.Style
	Dialog      lipgloss.Style
	AlertDialog lipgloss.Style
	Help        lipgloss.Style
	ScrollThumb lipgloss.Style
	ScrollTrack lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		Previous:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Current:     lipgloss.NewStyle().Bold(true),
		Title:       lipgloss.NewStyle().Bold(true).Underline(true),
		Entry:       lipgloss.NewStyle(),
		Selected:    lipgloss.NewStyle().Reverse(true),
		Timestamp:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Empty:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
		Dialog:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 1),
		AlertDialog: lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("196")).Padding(0, 1),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ScrollThumb: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		ScrollTrack: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

// ApplyColorMode sets lipgloss's colour profile for mode. "never" strips
// colour and "always" forces 256 colours. "auto" strips colour when NO_COLOR
// is set or out is not a terminal.
func ApplyColorMode(mode string, out io.Writer) {
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	default:
		if termenv.EnvNoColor() || !isTerminal(out) {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
