package formatter

import (
	"github.com/alexanderramin/crux/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired UI palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CircuitSwatch renders the ● indicator in the circuit's palette
// color. Gradients render both halves; unknown keys render dim.
func CircuitSwatch(key domain.ColorKey) string {
	opt, ok := domain.ColorOptions[key]
	if !ok {
		return StyleDim.Render("●")
	}
	if opt.Gradient {
		left := lipgloss.NewStyle().Foreground(lipgloss.Color(opt.Hex[0]))
		right := lipgloss.NewStyle().Foreground(lipgloss.Color(opt.Hex[1]))
		return left.Render("◤") + right.Render("◢")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(opt.Hex[0])).Render("●")
}

// StatusStyle returns the style used for a problem status.
func StatusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusFlashed:
		return StyleYellow
	case domain.StatusSent:
		return StyleGreen
	case domain.StatusProject:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StatusGlyph returns a single-character marker for a status: "*" for
// flashed, "x" for sent, "~" for project, "." for unattempted.
func StatusGlyph(s domain.Status) string {
	switch s {
	case domain.StatusFlashed:
		return "*"
	case domain.StatusSent:
		return "x"
	case domain.StatusProject:
		return "~"
	default:
		return "."
	}
}
