// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mockround/mockround/internal/notify"
)

// Common key binding constants.
const (
	KeyCtrlC = "ctrl+c"
	KeyTab   = "tab"
	KeyEnter = "enter"
	KeyEsc   = "esc"
	KeyUp    = "up"
	KeyDown  = "down"
	KeyLeft  = "left"
	KeyRight = "right"
)

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the TUI program with the given model in alternate screen mode.
// Changes to the notification slot are delivered to the program as
// NotificationChangedMsg so the banner redraws when a post expires.
func Run(m tea.Model, notes *notify.Service) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if notes != nil {
		notes.OnChange(func() { p.Send(NotificationChangedMsg{}) })
		defer notes.OnChange(nil)
	}
	_, err := p.Run()
	return err
}
