package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/tui"
)

const maxReportWidth = 100

// ReportModel shows the report for a finished session.
type ReportModel struct {
	sessionID string
	report    *exchange.Report
	err       error

	spin     spinner.Model
	viewport viewport.Model
	width    int
	height   int
}

// NewReportModel starts in the loading state for sessionID.
func NewReportModel(sessionID string, width, height int) ReportModel {
	m := ReportModel{
		sessionID: sessionID,
		spin:      tui.NewSpinner(),
		width:     width,
		height:    height,
	}
	m.viewport = viewport.New(boxWidth(width, maxReportWidth)-6, reportHeight(height))
	return m
}

// Init starts the loading spinner.
func (m ReportModel) Init() tea.Cmd {
	return m.spin.Tick
}

// SessionID is the session whose report is shown.
func (m ReportModel) SessionID() string { return m.sessionID }

// Update handles messages for the report view.
func (m ReportModel) Update(msg tea.Msg) (ReportModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tui.ReportLoadedMsg:
		if msg.SessionID != m.sessionID {
			return m, nil
		}
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		rep := msg.Report
		m.report = &rep
		m.viewport.SetContent(renderTranscript(rep, m.viewport.Width))
		return m, nil

	case spinner.TickMsg:
		if m.report == nil && m.err == nil {
			m.spin, cmd = m.spin.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = boxWidth(m.width, maxReportWidth) - 6
		m.viewport.Height = reportHeight(m.height)
		if m.report != nil {
			m.viewport.SetContent(renderTranscript(*m.report, m.viewport.Width))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEsc, "q", tui.KeyEnter:
			return m, func() tea.Msg { return tui.GoHomeMsg{} }
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the report view.
func (m ReportModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Interview report"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(tui.ErrorStyle.Render("Could not load the report: " + exchange.Reason(m.err)))
	case m.report == nil:
		b.WriteString(m.spin.View() + " Loading report...")
	default:
		r := m.report
		b.WriteString(fmt.Sprintf("%s · %s · %s\n", sessionTypeLabel(r.SessionType), r.Difficulty, r.Status))
		b.WriteString(fmt.Sprintf("Questions asked %d · Answers given %d · Completion %.2f%%\n\n",
			r.QuestionsAsked, r.AnswersGiven, r.CompletionRate))
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("↑↓ scroll · Esc: Home"))

	return tui.BoxStyle.Width(boxWidth(m.width, maxReportWidth)).Render(b.String())
}

func renderTranscript(r exchange.Report, width int) string {
	if len(r.Transcript) == 0 {
		return tui.DimStyle.Render("No questions were asked.")
	}
	wrap := lipgloss.NewStyle().Width(width)
	var b strings.Builder
	for _, e := range r.Transcript {
		label := tui.SelectedStyle.Render("Interviewer")
		if e.Role == "user" {
			label = tui.SuccessStyle.Render("You")
		}
		b.WriteString(label)
		if !e.Timestamp.IsZero() {
			b.WriteString(tui.DimStyle.Render("  " + e.Timestamp.Local().Format("15:04:05")))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(e.Content))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func sessionTypeLabel(t string) string {
	switch t {
	case "hr_interview":
		return "HR interview"
	case "technical_interview":
		return "Technical interview"
	default:
		return t
	}
}

func reportHeight(h int) int {
	if h-14 < 5 {
		return 5
	}
	return h - 14
}
