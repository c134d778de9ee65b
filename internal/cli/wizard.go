package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/plancad/internal/cli/formatter"
	"github.com/alexanderramin/plancad/internal/domain"
)

// plancadHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func plancadHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

var unitOptions = []huh.Option[string]{
	huh.NewOption("Millimeters (mm)", string(domain.UnitsMillimeter)),
	huh.NewOption("Centimeters (cm)", string(domain.UnitsCentimeter)),
	huh.NewOption("Meters (m)", string(domain.UnitsMeter)),
}

// newDrawingForm asks for the name and units of a new drawing.
func newDrawingForm(name, units *string) *huh.Form {
	if *units == "" {
		*units = string(domain.UnitsMillimeter)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Drawing name").
				Placeholder("Untitled Drawing").
				CharLimit(120).
				Value(name),
			huh.NewSelect[string]().
				Title("Units").
				Options(unitOptions...).
				Value(units),
		),
	).WithTheme(plancadHuhTheme()).WithShowHelp(false)
}
