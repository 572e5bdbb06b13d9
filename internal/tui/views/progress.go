package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mockround/mockround/internal/nav"
	"github.com/mockround/mockround/internal/tui"
)

// ProgressModel summarises a session that ran out of time.
type ProgressModel struct {
	payload nav.SessionPayload
	bar     progress.Model
	width   int
	height  int
}

// NewProgressModel shows the counts carried by payload.
func NewProgressModel(payload nav.SessionPayload, width, height int) ProgressModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = boxWidth(width, maxHomeWidth) - 10
	return ProgressModel{payload: payload, bar: bar, width: width, height: height}
}

// Update handles messages for the progress view.
func (m ProgressModel) Update(msg tea.Msg) (ProgressModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEnter, "r":
			if m.payload.SessionID == "" {
				return m, nil
			}
			p := m.payload
			return m, func() tea.Msg {
				return tui.NavigateMsg{Page: nav.PageReport, Payload: p}
			}
		case tui.KeyEsc, "q":
			return m, func() tea.Msg { return tui.GoHomeMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = boxWidth(m.width, maxHomeWidth) - 10
	}
	return m, nil
}

// View renders the progress view.
func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Session progress"))
	b.WriteString("\n\n")
	b.WriteString(tui.WarningStyle.Render("Time ran out before the interview finished."))
	b.WriteString("\n\n")

	pct := 0.0
	if m.payload.Total > 0 {
		pct = float64(m.payload.Answered) / float64(m.payload.Total)
	}
	b.WriteString(fmt.Sprintf("Answered %d of %d questions\n", m.payload.Answered, m.payload.Total))
	b.WriteString(m.bar.ViewAs(pct))
	b.WriteString("\n\n")

	if m.payload.SessionID != "" {
		b.WriteString(tui.DimStyle.Render("Session " + m.payload.SessionID))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Enter: view report · Esc: Home"))
	} else {
		b.WriteString(tui.DimStyle.Render("Esc: Home"))
	}

	return tui.BoxStyle.Width(boxWidth(m.width, maxHomeWidth)).Render(b.String())
}
