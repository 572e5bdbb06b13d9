package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/tui"
)

// ResumeUploadModel collects a resume file path and job details.
type ResumeUploadModel struct {
	inputs    []textinput.Model
	focus     int
	uploading bool
	done      *exchange.Resume
	Err       error
	reason    string

	width  int
	height int
}

const (
	inputPath = iota
	inputRole
	inputDescription
)

// NewResumeUploadModel creates the upload form. reason explains why the
// user landed here, and may be empty.
func NewResumeUploadModel(reason string, width, height int) ResumeUploadModel {
	mk := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Width = boxWidth(width, maxHomeWidth) - 10
		return ti
	}
	inputs := []textinput.Model{
		mk("path/to/resume.txt", 1024),
		mk("Job role (optional)", 200),
		mk("Job description (optional)", 4000),
	}
	inputs[inputPath].Focus()

	return ResumeUploadModel{inputs: inputs, reason: reason, width: width, height: height}
}

// Init starts the cursor blink.
func (m ResumeUploadModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the upload view.
func (m ResumeUploadModel) Update(msg tea.Msg) (ResumeUploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.ResumeUploadedMsg:
		m.uploading = false
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Err = nil
		res := msg.Resume
		m.done = &res
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = boxWidth(m.width, maxHomeWidth) - 10
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEsc:
			return m, func() tea.Msg { return tui.GoHomeMsg{} }
		case tui.KeyTab, tui.KeyDown:
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", tui.KeyUp:
			return m, m.setFocus(m.focus - 1)
		case tui.KeyEnter:
			if m.done != nil {
				return m, func() tea.Msg { return tui.GoHomeMsg{} }
			}
			if m.uploading {
				return m, nil
			}
			path := strings.TrimSpace(m.inputs[inputPath].Value())
			if path == "" {
				return m, m.setFocus(inputPath)
			}
			m.uploading = true
			m.Err = nil
			req := tui.UploadResumeMsg{
				Path:           path,
				JobRole:        m.inputs[inputRole].Value(),
				JobDescription: m.inputs[inputDescription].Value(),
			}
			return m, func() tea.Msg { return req }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *ResumeUploadModel) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	m.focus = (i + n) % n
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	return m.inputs[m.focus].Focus()
}

// View renders the upload view.
func (m ResumeUploadModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Upload your resume"))
	b.WriteString("\n\n")
	if m.reason != "" {
		b.WriteString(tui.WarningStyle.Render(m.reason))
		b.WriteString("\n\n")
	}

	labels := []string{"Resume file", "Job role", "Job description"}
	for i, in := range m.inputs {
		label := labels[i]
		if i == m.focus {
			label = tui.SelectedStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.done != nil:
		b.WriteString(tui.SuccessStyle.Render("Resume uploaded. Press Enter to return home."))
	case m.uploading:
		b.WriteString(tui.DimStyle.Render("Uploading..."))
	case m.Err != nil:
		b.WriteString(tui.ErrorStyle.Render("Upload failed: " + exchange.Reason(m.Err)))
	}
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("Tab next field · Enter upload · Esc: Home"))

	return tui.BoxStyle.Width(boxWidth(m.width, maxHomeWidth)).Render(b.String())
}
