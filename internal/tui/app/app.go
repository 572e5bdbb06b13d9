// Package app provides the main TUI application that wires all views together.
package app

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mockround/mockround/internal/config"
	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/interview"
	"github.com/mockround/mockround/internal/nav"
	"github.com/mockround/mockround/internal/notify"
	"github.com/mockround/mockround/internal/tui"
	"github.com/mockround/mockround/internal/tui/commands"
	"github.com/mockround/mockround/internal/tui/views"
)

// maxPageHops bounds how many navigations a single update may chain.
const maxPageHops = 4

// Backend is everything the app calls on the question service.
type Backend interface {
	interview.Exchange
	commands.Backend
}

// Options carries the optional collaborators of an App.
type Options struct {
	Events       interview.EventSink
	Logger       *slog.Logger
	TickInterval time.Duration
}

// App is the main TUI application that wires all views together.
type App struct {
	model   *tui.Model
	backend Backend
	notes   *notify.Service
	nav     *nav.Controller
	opts    Options

	current nav.Page
	seen    uint64

	manager *interview.Manager
	resume  *exchange.Resume

	// View models
	homeView      views.HomeModel
	interviewView views.InterviewModel
	progressView  views.ProgressModel
	reportView    views.ReportModel
	uploadView    views.ResumeUploadModel
}

// New creates a new App with the given configuration. A nil notes gets a
// service with the configured TTL.
func New(cfg *config.Config, backend Backend, notes *notify.Service, opts Options) *App {
	model := tui.NewModel(cfg)
	if notes == nil {
		notes = notify.NewService(cfg.NotificationTTL())
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &App{
		model:    model,
		backend:  backend,
		notes:    notes,
		nav:      nav.New(),
		opts:     opts,
		homeView: views.NewHomeModel(cfg, model.Width, model.Height),
	}
}

// Page is the page currently shown.
func (a *App) Page() nav.Page { return a.current }

// Manager is the running session's manager, or nil outside an interview.
func (a *App) Manager() *interview.Manager { return a.manager }

// Init shows the home page.
func (a *App) Init() tea.Cmd {
	a.current = nav.PageHome
	a.seen = a.nav.Version()
	return pages[nav.PageHome].enter(a, nil)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		return a, a.updatePage(msg)

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.model.CtrlCPending {
				a.leave()
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case tui.NotificationChangedMsg:
		return a, nil

	case tui.GoHomeMsg:
		a.nav.Navigate(nav.PageHome, nil)
		return a, a.syncPage()

	case tui.NavigateMsg:
		a.nav.Navigate(msg.Page, msg.Payload)
		return a, a.syncPage()

	case tui.StartInterviewMsg:
		page := nav.PageInterview
		if msg.Config.Kind == interview.KindHR {
			page = nav.PageHRInterview
		}
		a.nav.Navigate(page, msg.Config)
		return a, a.syncPage()

	case tui.ResumeStatusMsg:
		if msg.Err != nil {
			a.opts.Logger.Warn("resume lookup failed", slog.String("error", msg.Err.Error()))
			return a, nil
		}
		a.resume = msg.Resume
		a.homeView.SetResume(msg.Resume)
		return a, nil

	case tui.UploadResumeMsg:
		return a, commands.UploadResumeCmd(a.backend, a.model.UserID, msg, a.model.Cfg.APITimeout())

	case tui.ResumeUploadedMsg:
		if msg.Err == nil {
			res := msg.Resume
			a.resume = &res
			a.homeView.SetResume(&res)
			a.notes.Post("Resume uploaded.", notify.SeveritySuccess)
		}
	}

	if a.manager != nil {
		cmds = append(cmds, a.manager.Update(msg))
	}
	cmds = append(cmds, a.updatePage(msg), a.syncPage())
	return a, tea.Batch(cmds...)
}

func (a *App) updatePage(msg tea.Msg) tea.Cmd {
	pg, ok := pages[a.current]
	if !ok || pg.update == nil {
		return nil
	}
	return pg.update(a, msg)
}

// syncPage mounts the page the controller points at when it changed since
// the last mount. Leaving an interview page tears its session down.
func (a *App) syncPage() tea.Cmd {
	var cmds []tea.Cmd
	for hop := 0; hop < maxPageHops && a.nav.Version() != a.seen; hop++ {
		a.seen = a.nav.Version()
		a.leave()
		p, payload := a.nav.Current()
		a.current = p
		a.opts.Logger.Debug("page", slog.String("page", string(p)))
		cmds = append(cmds, pages[p].enter(a, payload))
	}
	return tea.Batch(cmds...)
}

func (a *App) leave() {
	if pg, ok := pages[a.current]; ok && pg.leave != nil {
		pg.leave(a)
	}
}

// View renders the current page with the notification banner above it.
func (a *App) View() string {
	content := "Unknown page"
	if pg, ok := pages[a.current]; ok {
		content = pg.view(a)
	}
	if a.model.CtrlCPending {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "",
			tui.WarningStyle.Render("Press Ctrl+C again to exit"))
	}

	height := a.model.Height
	var banner string
	if n, ok := a.notes.Current(); ok {
		banner = tui.RenderBanner(n, a.model.Width)
		height -= lipgloss.Height(banner)
	}

	body := lipgloss.Place(a.model.Width, max(height, 0), lipgloss.Center, lipgloss.Center, content)
	if banner == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, banner, body)
}
