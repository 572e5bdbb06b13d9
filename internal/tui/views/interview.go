package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mockround/mockround/internal/countdown"
	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/interview"
	"github.com/mockround/mockround/internal/tui"
)

// ============================================================================
// InterviewModel
// ============================================================================

// maxInterviewWidth is the maximum width for the interview box.
const maxInterviewWidth = 100

// SessionView is the read-only face of a running session that the
// interview page renders.
type SessionView interface {
	State() interview.State
	Kind() interview.Kind
	Session() (interview.Session, bool)
	Question() (exchange.Question, bool)
	Ordinal() int
	Total() int
	Answered() int
	Answer() string
	Evaluation() *exchange.Evaluation
	Remaining() int
	Failure() string
}

// InterviewModel is the view model for the interview and HR interview pages.
type InterviewModel struct {
	session SessionView

	input     textarea.Model
	bar       progress.Model
	spin      spinner.Model
	shown     int
	showHints bool

	escPending bool
	width      int
	height     int
}

// NewInterviewModel creates an InterviewModel rendering s.
func NewInterviewModel(s SessionView, width, height int) InterviewModel {
	ta := textarea.New()
	ta.Placeholder = "Type your answer here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 8000
	ta.SetHeight(6)
	ta.Focus()

	m := InterviewModel{
		session: s,
		input:   ta,
		bar:     progress.New(progress.WithDefaultGradient()),
		spin:    tui.NewSpinner(),
		shown:   -1,
		width:   width,
		height:  height,
	}
	m.resize()
	return m
}

// Init starts the cursor blink and the loading spinner.
func (m InterviewModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spin.Tick)
}

// Value is the answer text currently typed.
func (m InterviewModel) Value() string {
	return m.input.Value()
}

// Sync refreshes the input after the session moved on. A new question
// replaces the input with the session's kept answer, which is empty after
// a successful submit.
func (m *InterviewModel) Sync() {
	if m.session == nil {
		return
	}
	if ord := m.session.Ordinal(); ord != m.shown {
		m.shown = ord
		m.showHints = false
		m.input.SetValue(m.session.Answer())
	}
}

// Update handles messages for the interview view.
func (m InterviewModel) Update(msg tea.Msg) (InterviewModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tui.EscResetMsg:
		m.escPending = false
		return m, nil

	case spinner.TickMsg:
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		keys := tui.DefaultKeyMap
		switch {
		case key.Matches(msg, keys.Submit):
			text := m.input.Value()
			return m, func() tea.Msg { return tui.SubmitAnswerMsg{Text: text} }

		case key.Matches(msg, keys.Skip):
			return m, func() tea.Msg { return tui.SkipQuestionMsg{} }

		case key.Matches(msg, keys.Hints):
			m.showHints = !m.showHints
			return m, nil

		case key.Matches(msg, keys.Escape):
			if m.escPending {
				return m, func() tea.Msg { return tui.GoHomeMsg{} }
			}
			m.escPending = true
			return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.EscResetMsg{}
			})
		}
		if m.session != nil && m.session.State() == interview.StateAwaitingAnswer {
			m.input, cmd = m.input.Update(msg)
		}
		return m, cmd
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *InterviewModel) resize() {
	w := boxWidth(m.width, maxInterviewWidth) - 6
	m.input.SetWidth(w)
	m.bar.Width = w / 2
}

// View renders the interview view.
func (m InterviewModel) View() string {
	if m.session == nil {
		return ""
	}
	var b strings.Builder
	s := m.session

	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch s.State() {
	case interview.StateIdle, interview.StateInitializing:
		b.WriteString(m.spin.View() + " Setting up your session...")

	case interview.StateErrored:
		b.WriteString(tui.ErrorStyle.Render("Could not start the interview: " + s.Failure()))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Redirecting..."))

	case interview.StateCompleted:
		b.WriteString(tui.SuccessStyle.Render("Interview complete!"))
		b.WriteString("\n\n")
		b.WriteString(m.spin.View() + " Preparing your report...")

	case interview.StateExpired:
		b.WriteString(tui.WarningStyle.Render("Time's up!"))

	default:
		b.WriteString(m.questionBlock())
	}

	b.WriteString("\n\n")
	b.WriteString(m.footer())

	return tui.BoxStyle.Width(boxWidth(m.width, maxInterviewWidth)).Render(b.String())
}

func (m InterviewModel) header() string {
	s := m.session
	title := kindLabel(s.Kind()) + " interview"
	if sess, ok := s.Session(); ok && s.Kind() == interview.KindTechnical {
		title += " · " + string(sess.Difficulty)
	}

	total := s.Total()
	pct := 0.0
	if total > 0 {
		pct = float64(s.Answered()) / float64(total)
	}
	counter := fmt.Sprintf("Question %d of %d", max(s.Ordinal(), 1), total)
	timer := tui.TimerStyle(s.Remaining()).Render("⏱ " + countdown.Format(s.Remaining()))

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		tui.TitleStyle.Render(title),
		"   ",
		timer,
	)
	return top + "\n" + counter + "  " + m.bar.ViewAs(pct)
}

func (m InterviewModel) questionBlock() string {
	var b strings.Builder
	s := m.session

	q, ok := s.Question()
	if !ok {
		return m.spin.View() + " Loading question..."
	}

	b.WriteString(tui.QuestionStyle.Render(q.Text))
	b.WriteString("\n")
	if meta := questionMeta(q); meta != "" {
		b.WriteString(tui.DimStyle.Render(meta))
		b.WriteString("\n")
	}
	if m.showHints && len(q.HintPoints) > 0 {
		b.WriteString("\n")
		for _, h := range q.HintPoints {
			b.WriteString(tui.DimStyle.Render("  • " + h))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())

	if s.State() == interview.StateSubmitting {
		b.WriteString("\n")
		b.WriteString(m.spin.View() + " Submitting your answer...")
	}
	if ev := s.Evaluation(); ev != nil {
		b.WriteString("\n\n")
		b.WriteString(renderEvaluation(ev))
	}
	return b.String()
}

func questionMeta(q exchange.Question) string {
	var parts []string
	if q.Category != "" {
		parts = append(parts, q.Category)
	}
	if q.Difficulty != "" {
		parts = append(parts, q.Difficulty)
	}
	if q.Purpose != "" {
		parts = append(parts, q.Purpose)
	}
	return strings.Join(parts, " · ")
}

func renderEvaluation(ev *exchange.Evaluation) string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Feedback on your last answer"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Relevance %d/100 · Communication %d/100\n", ev.RelevanceScore, ev.CommunicationScore))
	for _, k := range ev.KeyStrengths {
		b.WriteString(tui.SuccessStyle.Render("  + " + k))
		b.WriteString("\n")
	}
	for _, a := range ev.ImprovementAreas {
		b.WriteString(tui.WarningStyle.Render("  - " + a))
		b.WriteString("\n")
	}
	if ev.Feedback != "" {
		b.WriteString(tui.DimStyle.Render(ev.Feedback))
	}
	return b.String()
}

func (m InterviewModel) footer() string {
	keys := tui.DefaultKeyMap
	hints := tui.DimStyle.Render(tui.HelpLine(keys.Submit, keys.Skip, keys.Hints))
	if m.escPending {
		return hints + " · " + tui.WarningStyle.Render("Press Esc again to leave the interview")
	}
	return hints + " · " + tui.DimStyle.Render("Esc: Home")
}
