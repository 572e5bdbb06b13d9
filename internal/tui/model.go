package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/mockround/mockround/internal/config"
)

// Model holds the state shared by every page.
type Model struct {
	Cfg    *config.Config
	UserID string

	Width  int
	Height int

	CtrlCPending bool
}

// NewModel creates a Model for cfg.
func NewModel(cfg *config.Config) *Model {
	return &Model{
		Cfg:    cfg,
		UserID: cfg.UserID,
		Width:  80,
		Height: 24,
	}
}

// NewSpinner returns the spinner shown while a page waits on the service.
func NewSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(primaryColor))
	return s
}
