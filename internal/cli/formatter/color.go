package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by tables, the wizard theme and the plan viewer.
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

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
)

var styleBold = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)

// ImportanceStyle colors an importance level: high red, medium yellow, low
// green.
func ImportanceStyle(i domain.Importance) lipgloss.Style {
	switch i {
	case domain.ImportanceHigh:
		return StyleRed
	case domain.ImportanceMedium:
		return StyleYellow
	case domain.ImportanceLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// FeasibilityIndicator returns "● FEASIBLE" or "● INFEASIBLE" in color.
func FeasibilityIndicator(feasible bool) string {
	if feasible {
		return StyleGreen.Render("● FEASIBLE")
	}
	return StyleRed.Render("● INFEASIBLE")
}

// Header renders an upper-cased section title with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return styleBold.Render(text)
}
