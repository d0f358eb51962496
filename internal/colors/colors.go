package colors

import "github.com/charmbracelet/lipgloss"

type ColorPalette struct {
	Title   lipgloss.Color
	Account lipgloss.Color
	Domain  lipgloss.Color
	Label   lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color
}

func DefaultColorPalette() ColorPalette {
	return ColorPalette{
		Title:   lipgloss.Color("12"),
		Account: lipgloss.Color("11"),
		Domain:  lipgloss.Color("14"),
		Label:   lipgloss.Color("10"),
		Error:   lipgloss.Color("9"),
		Muted:   lipgloss.Color("8"),
	}
}
