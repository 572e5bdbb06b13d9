package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mockround/mockround/internal/interview"
	"github.com/mockround/mockround/internal/nav"
	"github.com/mockround/mockround/internal/notify"
	"github.com/mockround/mockround/internal/tui"
	"github.com/mockround/mockround/internal/tui/commands"
	"github.com/mockround/mockround/internal/tui/views"
)

// page is one entry of the navigation table.
type page struct {
	enter  func(a *App, payload any) tea.Cmd
	update func(a *App, msg tea.Msg) tea.Cmd
	view   func(a *App) string
	leave  func(a *App)
}

var pages map[nav.Page]page

func init() {
	pages = map[nav.Page]page{
		nav.PageHome:         {enter: (*App).enterHome, update: (*App).updateHome, view: (*App).viewHome},
		nav.PageInterview:    {enter: (*App).enterInterview, update: (*App).updateInterview, view: (*App).viewInterview, leave: (*App).leaveInterview},
		nav.PageHRInterview:  {enter: (*App).enterInterview, update: (*App).updateInterview, view: (*App).viewInterview, leave: (*App).leaveInterview},
		nav.PageResumeUpload: {enter: (*App).enterUpload, update: (*App).updateUpload, view: (*App).viewUpload},
		nav.PageProgress:     {enter: (*App).enterProgress, update: (*App).updateProgress, view: (*App).viewProgress},
		nav.PageReport:       {enter: (*App).enterReport, update: (*App).updateReport, view: (*App).viewReport},
	}
}

// ============================================================================
// Home
// ============================================================================

func (a *App) enterHome(any) tea.Cmd {
	a.homeView.Err = nil
	return commands.CheckResumeCmd(a.backend, a.model.UserID, a.model.Cfg.APITimeout())
}

func (a *App) updateHome(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.homeView, cmd = a.homeView.Update(msg)
	return cmd
}

func (a *App) viewHome() string { return a.homeView.View() }

// ============================================================================
// Interview
// ============================================================================

func (a *App) enterInterview(payload any) tea.Cmd {
	cfg, ok := payload.(interview.Config)
	if !ok {
		cfg = a.homeView.Config()
	}
	if a.current == nav.PageHRInterview {
		cfg.Kind = interview.KindHR
	} else {
		cfg.Kind = interview.KindTechnical
	}

	a.manager = interview.NewManager(a.backend, a.notes, a.nav,
		interview.WithCallTimeout(a.model.Cfg.APITimeout()),
		interview.WithRedirectDelay(a.model.Cfg.RedirectDelay()),
		interview.WithEventSink(a.opts.Events),
		interview.WithLogger(a.opts.Logger),
		interview.WithTickInterval(a.opts.TickInterval),
	)
	a.interviewView = views.NewInterviewModel(a.manager, a.model.Width, a.model.Height)
	start := a.manager.Initialize(a.model.UserID, cfg)
	a.interviewView.Sync()
	return tea.Batch(a.interviewView.Init(), start)
}

func (a *App) updateInterview(msg tea.Msg) tea.Cmd {
	if a.manager == nil {
		return nil
	}
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tui.SubmitAnswerMsg:
		cmd, _ := a.manager.SubmitAnswer(msg.Text)
		cmds = append(cmds, cmd)

	case tui.SkipQuestionMsg:
		cmd, err := a.manager.RequestNextQuestion()
		if err != nil {
			a.notes.Post("Cannot skip right now.", notify.SeverityInfo)
		}
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		a.interviewView, cmd = a.interviewView.Update(msg)
		cmds = append(cmds, cmd)
		if _, ok := msg.(tea.KeyMsg); ok {
			a.manager.SetAnswer(a.interviewView.Value())
		}
	}

	a.interviewView.Sync()
	return tea.Batch(cmds...)
}

func (a *App) viewInterview() string { return a.interviewView.View() }

func (a *App) leaveInterview() {
	if a.manager != nil {
		a.manager.Teardown()
		a.manager = nil
	}
}

// ============================================================================
// Resume upload
// ============================================================================

func (a *App) enterUpload(payload any) tea.Cmd {
	reason, _ := payload.(string)
	if reason == "" && a.resume == nil {
		reason = "A resume is required before starting an interview."
	}
	a.uploadView = views.NewResumeUploadModel(reason, a.model.Width, a.model.Height)
	return a.uploadView.Init()
}

func (a *App) updateUpload(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.uploadView, cmd = a.uploadView.Update(msg)
	return cmd
}

func (a *App) viewUpload() string { return a.uploadView.View() }

// ============================================================================
// Progress
// ============================================================================

func (a *App) enterProgress(payload any) tea.Cmd {
	p, _ := payload.(nav.SessionPayload)
	a.progressView = views.NewProgressModel(p, a.model.Width, a.model.Height)
	return nil
}

func (a *App) updateProgress(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.progressView, cmd = a.progressView.Update(msg)
	return cmd
}

func (a *App) viewProgress() string { return a.progressView.View() }

// ============================================================================
// Report
// ============================================================================

func (a *App) enterReport(payload any) tea.Cmd {
	var id string
	switch p := payload.(type) {
	case nav.SessionPayload:
		id = p.SessionID
	case string:
		id = p
	}
	a.reportView = views.NewReportModel(id, a.model.Width, a.model.Height)
	if id == "" {
		return func() tea.Msg { return tui.GoHomeMsg{} }
	}
	return tea.Batch(
		a.reportView.Init(),
		commands.FetchReportCmd(a.backend, id, a.model.Cfg.APITimeout()),
	)
}

func (a *App) updateReport(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.reportView, cmd = a.reportView.Update(msg)
	return cmd
}

func (a *App) viewReport() string { return a.reportView.View() }
