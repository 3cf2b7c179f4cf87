package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/crux/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// cruxHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func cruxHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirm asks a yes/no question interactively. When stdin is not a
// terminal there is nobody to ask, so it returns an error telling the
// caller to pass --yes.
func confirm(title string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false, fmt.Errorf("confirmation required; re-run with --yes")
	}

	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(cruxHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
