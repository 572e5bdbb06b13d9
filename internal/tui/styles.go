package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mockround/mockround/internal/notify"
)

const (
	primaryColor   = "#7C3AED" // Purple
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
	textColor      = "#E5E7EB"
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// QuestionStyle renders the question being asked.
	QuestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(textColor)).
			Bold(true)

	// SelectedStyle highlights selected items in primary color.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// StatusBarStyle provides styling for the status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 2)
)

var bannerColors = map[notify.Severity]string{
	notify.SeverityInfo:    primaryColor,
	notify.SeveritySuccess: secondaryColor,
	notify.SeverityError:   errorColor,
}

// RenderBanner draws a notification as a full-width colored bar.
func RenderBanner(n notify.Notification, width int) string {
	color, ok := bannerColors[n.Severity]
	if !ok {
		color = primaryColor
	}
	style := bannerStyle.Background(lipgloss.Color(color))
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(n.Text)
}

// TimerStyle colors the countdown by how much time is left.
func TimerStyle(remaining int) lipgloss.Style {
	switch {
	case remaining <= 60:
		return ErrorStyle.Bold(true)
	case remaining <= 300:
		return WarningStyle.Bold(true)
	default:
		return SuccessStyle.Bold(true)
	}
}
