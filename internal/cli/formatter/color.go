package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/muesli/termenv"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
)

// Gruvbox-inspired color palette.
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
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SetColor turns ANSI styling on or off for every renderer in the package.
// Off is used when stdout is not a terminal.
func SetColor(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.TrueColor)
		text.EnableColors()
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
	text.DisableColors()
}

// ConfidenceStyle returns the style for an estimate confidence level.
func ConfidenceStyle(c domain.Confidence) lipgloss.Style {
	switch c {
	case domain.ConfidenceHigh:
		return StyleGreen
	case domain.ConfidenceMedium:
		return StyleYellow
	case domain.ConfidenceLow:
		return StyleRed
	default:
		return StyleDim
	}
}

// ConfidenceBadge renders e.g. "● HIGH".
func ConfidenceBadge(c domain.Confidence) string {
	if c == "" {
		return StyleDim.Render("● UNKNOWN")
	}
	return ConfidenceStyle(c).Render("● " + strings.ToUpper(string(c)))
}

// StatusPill returns a colored indicator for a work item status.
func StatusPill(status domain.WorkItemStatus) string {
	switch status {
	case domain.StatusTodo:
		return StyleBlue.Render("○ Todo")
	case domain.StatusInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.StatusReview:
		return StylePurple.Render("◐ Review")
	case domain.StatusBlocked:
		return StyleRed.Render("■ Blocked")
	case domain.StatusDone, domain.StatusClosed:
		return StyleDim.Render("✔ Done")
	case domain.StatusCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
