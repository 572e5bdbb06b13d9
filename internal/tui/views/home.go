// Package views provides TUI view components for the mockround application.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mockround/mockround/internal/config"
	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/interview"
	"github.com/mockround/mockround/internal/nav"
	"github.com/mockround/mockround/internal/questions"
	"github.com/mockround/mockround/internal/tui"
)

// ============================================================================
// HomeModel
// ============================================================================

const maxHomeWidth = 80

type homeField int

const (
	fieldKind homeField = iota
	fieldDifficulty
	fieldDuration
	fieldTopics
	fieldStart
	fieldCount
)

var (
	kindChoices       = []interview.Kind{interview.KindTechnical, interview.KindHR}
	difficultyChoices = []exchange.Level{exchange.LevelEasy, exchange.LevelMedium, exchange.LevelHard}
	durationChoices   = []int{15, 30, 45, 60}
)

// HomeModel is the session setup form.
type HomeModel struct {
	cfg *config.Config

	focus       homeField
	kind        int
	difficulty  int
	duration    int
	topicCursor int
	topics      map[string]bool

	resume      *exchange.Resume
	resumeKnown bool
	Err         error

	width  int
	height int
}

// NewHomeModel creates the setup form with defaults from cfg.
func NewHomeModel(cfg *config.Config, width, height int) HomeModel {
	m := HomeModel{
		cfg:      cfg,
		duration: 1,
		topics:   make(map[string]bool),
		width:    width,
		height:   height,
	}
	for i, d := range difficultyChoices {
		if string(d) == cfg.Interview.Difficulty {
			m.difficulty = i
		}
	}
	for i, mins := range durationChoices {
		if mins*60 == cfg.Interview.DurationSeconds {
			m.duration = i
		}
	}
	for _, t := range cfg.Interview.Topics {
		m.topics[t] = true
	}
	return m
}

// SetResume records the user's resume status for display.
func (m *HomeModel) SetResume(r *exchange.Resume) {
	m.resume = r
	m.resumeKnown = true
}

// Config builds the session configuration from the form.
func (m HomeModel) Config() interview.Config {
	kind := kindChoices[m.kind]
	cfg := interview.Config{
		Kind:            kind,
		Difficulty:      difficultyChoices[m.difficulty],
		DurationSeconds: durationChoices[m.duration] * 60,
		TotalQuestions:  m.cfg.Interview.TotalQuestions,
	}
	if kind == interview.KindHR {
		cfg.TotalQuestions = m.cfg.Interview.HRTotalQuestions
		return cfg
	}
	cfg.Topics = []string{}
	for _, t := range questions.Topics {
		if m.topics[t] {
			cfg.Topics = append(cfg.Topics, t)
		}
	}
	return cfg
}

func (m HomeModel) hr() bool { return kindChoices[m.kind] == interview.KindHR }

// Init returns the initial command for the home view.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the home view.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		keys := tui.DefaultKeyMap
		switch {
		case key.Matches(msg, keys.Up):
			m.moveFocus(-1)
		case key.Matches(msg, keys.Down):
			m.moveFocus(1)
		case key.Matches(msg, keys.Left):
			m.change(-1)
		case key.Matches(msg, keys.Right):
			m.change(1)
		case msg.String() == " ":
			if m.focus == fieldTopics {
				t := questions.Topics[m.topicCursor]
				m.topics[t] = !m.topics[t]
			}
		case key.Matches(msg, keys.Upload):
			return m, func() tea.Msg {
				return tui.NavigateMsg{Page: nav.PageResumeUpload}
			}
		case key.Matches(msg, keys.Enter):
			cfg := m.Config()
			return m, func() tea.Msg {
				return tui.StartInterviewMsg{Config: cfg}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *HomeModel) moveFocus(delta int) {
	for {
		m.focus = (m.focus + homeField(delta) + fieldCount) % fieldCount
		if !m.hr() || (m.focus != fieldDifficulty && m.focus != fieldTopics) {
			return
		}
	}
}

func (m *HomeModel) change(delta int) {
	wrap := func(i, n int) int { return (i + delta + n) % n }
	switch m.focus {
	case fieldKind:
		m.kind = wrap(m.kind, len(kindChoices))
	case fieldDifficulty:
		m.difficulty = wrap(m.difficulty, len(difficultyChoices))
	case fieldDuration:
		m.duration = wrap(m.duration, len(durationChoices))
	case fieldTopics:
		m.topicCursor = wrap(m.topicCursor, len(questions.Topics))
	}
}

// View renders the home view.
func (m HomeModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("mockround · practice interviews"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(tui.ErrorStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n\n")
	}

	kinds := make([]string, len(kindChoices))
	for i, k := range kindChoices {
		kinds[i] = kindLabel(k)
	}
	levels := make([]string, len(difficultyChoices))
	for i, d := range difficultyChoices {
		levels[i] = string(d)
	}
	durations := make([]string, len(durationChoices))
	for i, d := range durationChoices {
		durations[i] = fmt.Sprintf("%d min", d)
	}

	b.WriteString(m.row(fieldKind, "Interview", choiceLine(kinds, m.kind)))
	if m.hr() {
		b.WriteString(m.row(fieldDifficulty, "Difficulty", tui.DimStyle.Render("medium (fixed for HR)")))
	} else {
		b.WriteString(m.row(fieldDifficulty, "Difficulty", choiceLine(levels, m.difficulty)))
	}
	b.WriteString(m.row(fieldDuration, "Duration", choiceLine(durations, m.duration)))
	if m.hr() {
		b.WriteString(m.row(fieldTopics, "Topics", tui.DimStyle.Render("based on your resume")))
	} else {
		b.WriteString(m.row(fieldTopics, "Topics", m.topicLine()))
	}
	b.WriteString("\n")

	start := "  Start interview"
	if m.focus == fieldStart {
		start = tui.SelectedStyle.Render("❯ Start interview")
	}
	b.WriteString(start)
	b.WriteString("\n\n")

	switch {
	case !m.resumeKnown:
		b.WriteString(tui.DimStyle.Render("Checking for a resume..."))
	case m.resume == nil:
		b.WriteString(tui.WarningStyle.Render("No resume on file. Press Ctrl+U to upload one."))
	default:
		label := m.resume.JobRole
		if label == "" {
			label = m.resume.ResumeID
		}
		b.WriteString(tui.SuccessStyle.Render("Resume on file: " + label))
	}
	b.WriteString("\n\n")

	keys := tui.DefaultKeyMap
	b.WriteString(tui.DimStyle.Render("↑↓ field · ←→ change · space toggle topic · " +
		tui.HelpLine(keys.Enter, keys.Upload, keys.CtrlC)))

	return tui.BoxStyle.Width(boxWidth(m.width, maxHomeWidth)).Render(b.String())
}

func (m HomeModel) row(f homeField, label, value string) string {
	cursor := "  "
	name := lipgloss.NewStyle().Width(12).Render(label)
	if m.focus == f {
		cursor = "❯ "
		name = tui.SelectedStyle.Width(12).Render(label)
	}
	return cursor + name + value + "\n"
}

func (m HomeModel) topicLine() string {
	parts := make([]string, len(questions.Topics))
	for i, t := range questions.Topics {
		box := "[ ]"
		if m.topics[t] {
			box = "[x]"
		}
		item := box + " " + t
		if m.focus == fieldTopics && i == m.topicCursor {
			item = tui.SelectedStyle.Render(item)
		}
		parts[i] = item
	}
	hint := ""
	if len(m.Config().Topics) == 0 {
		hint = tui.DimStyle.Render("  (none selected: all topics)")
	}
	return strings.Join(parts, "  ") + hint
}

func choiceLine(choices []string, selected int) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		if i == selected {
			parts[i] = tui.SelectedStyle.Render("‹" + c + "›")
		} else {
			parts[i] = tui.DimStyle.Render(" " + c + " ")
		}
	}
	return strings.Join(parts, " ")
}

func kindLabel(k interview.Kind) string {
	if k == interview.KindHR {
		return "HR"
	}
	return "Technical"
}

func boxWidth(width, max int) int {
	w := width - 4
	if w > max {
		w = max
	}
	if w < 20 {
		w = 20
	}
	return w
}
