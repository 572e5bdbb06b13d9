package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mockround/mockround/internal/countdown"
	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/log"
	"github.com/mockround/mockround/internal/nav"
	"github.com/mockround/mockround/internal/notify"
	"github.com/mockround/mockround/internal/questions"
)

// Default timings.
const (
	DefaultCallTimeout   = 30 * time.Second
	DefaultRedirectDelay = 2 * time.Second
)

// Option configures a Manager.
type Option func(*Manager)

// WithCallTimeout bounds every exchange call.
func WithCallTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.callTimeout = d
		}
	}
}

// WithTickInterval sets the countdown tick period.
func WithTickInterval(d time.Duration) Option {
	return func(m *Manager) { m.timer = countdown.New(d) }
}

// WithRedirectDelay sets how long an initialization failure stays on screen
// before returning home.
func WithRedirectDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.redirectDelay = d
		}
	}
}

// WithEventSink records lifecycle events to sink.
func WithEventSink(sink EventSink) Option {
	return func(m *Manager) {
		if sink != nil {
			m.events = sink
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// generations issues result tokens that are unique across every Manager in
// the process, so a late result from a torn-down manager never matches its
// successor.
var generations atomic.Uint64

func nextGen() uint64 { return generations.Add(1) }

// Manager owns one interview session from creation to its terminal state.
type Manager struct {
	exchange  Exchange
	notifier  notify.Poster
	navigator Navigator
	events    EventSink
	logger    *slog.Logger
	timer     *countdown.Timer

	callTimeout   time.Duration
	redirectDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	gen    uint64

	state      State
	torndown   bool
	pending    bool
	userID     string
	cfg        Config
	session    *Session
	question   *exchange.Question
	ordinal    int
	answered   int
	answer     string
	evaluation *exchange.Evaluation
	history    []string
	failure    string
	started    time.Time
}

// NewManager returns an idle manager.
func NewManager(x Exchange, n notify.Poster, nv Navigator, opts ...Option) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		exchange:      x,
		notifier:      n,
		navigator:     nv,
		events:        discardSink{},
		logger:        slog.New(slog.DiscardHandler),
		timer:         countdown.New(countdown.DefaultInterval),
		callTimeout:   DefaultCallTimeout,
		redirectDelay: DefaultRedirectDelay,
		ctx:           ctx,
		cancel:        cancel,
		gen:           nextGen(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize creates the session and requests the first question. It is a
// no-op unless the manager is Idle, so overlapping calls create at most one
// session.
func (m *Manager) Initialize(userID string, cfg Config) tea.Cmd {
	if m.state != StateIdle || m.torndown {
		return nil
	}

	m.cfg = cfg.withDefaults()
	m.userID = strings.TrimSpace(userID)
	m.state = StateInitializing
	m.started = time.Now()
	m.record(log.LogEvent{
		Event:      log.EventSessionStarted,
		Kind:       string(m.cfg.Kind),
		Difficulty: string(m.cfg.Difficulty),
		Total:      m.cfg.TotalQuestions,
	})

	if m.userID == "" {
		return m.failInit(errors.New("no user is signed in"))
	}

	gen := m.gen
	cfg = m.cfg
	uid := m.userID
	x := m.exchange
	if cfg.Kind == KindHR {
		return m.call(func(ctx context.Context) tea.Msg {
			resume, err := x.LatestResume(ctx, uid)
			if err != nil {
				return sessionCreatedMsg{gen: gen, err: err}
			}
			jd := cfg.JobDescription
			if jd == "" {
				jd = resume.JobDescription
			}
			ref, err := x.CreateHRSession(ctx, exchange.CreateHRSessionRequest{
				UserID:         uid,
				ResumeID:       resume.ResumeID,
				JobDescription: jd,
			})
			if err == nil && ref.ResumeID == "" {
				ref.ResumeID = resume.ResumeID
			}
			return sessionCreatedMsg{gen: gen, ref: ref, err: err}
		})
	}
	return m.call(func(ctx context.Context) tea.Msg {
		ref, err := x.CreateSession(ctx, exchange.CreateSessionRequest{
			UserID:     uid,
			Difficulty: cfg.Difficulty,
			Duration:   cfg.DurationSeconds,
			Topics:     cfg.Topics,
		})
		return sessionCreatedMsg{gen: gen, ref: ref, err: err}
	})
}

// RequestNextQuestion fetches the question after the displayed one. It is
// valid right after the session is created, or while awaiting an answer with
// nothing in flight and questions left.
func (m *Manager) RequestNextQuestion() (tea.Cmd, error) {
	if m.torndown || m.pending || m.session == nil {
		return nil, ErrInvalidState
	}
	if m.state != StateAwaitingAnswer && m.state != StateInitializing {
		return nil, ErrInvalidState
	}
	if m.ordinal >= m.session.TotalQuestions {
		return nil, ErrInvalidState
	}
	return m.requestQuestion(), nil
}

// SetAnswer records the in-progress answer text.
func (m *Manager) SetAnswer(text string) {
	if m.state == StateAwaitingAnswer {
		m.answer = text
	}
}

// SubmitAnswer submits text as the answer to the displayed question. Empty
// answers and submissions outside AwaitingAnswer are rejected locally with a
// notification and no state change.
func (m *Manager) SubmitAnswer(text string) (tea.Cmd, error) {
	if m.torndown || m.state != StateAwaitingAnswer || m.pending || m.question == nil {
		msg := "Please wait for the current question before submitting."
		if m.state == StateSubmitting {
			msg = "Your previous answer is still being submitted."
		} else if m.state.Terminal() {
			msg = "This interview has ended."
		}
		m.post(msg, notify.SeverityInfo)
		return nil, ErrInvalidState
	}
	if strings.TrimSpace(text) == "" {
		m.post("Please type an answer before submitting.", notify.SeverityInfo)
		return nil, ErrEmptyAnswer
	}

	m.answer = text
	m.evaluation = nil
	m.state = StateSubmitting
	m.pending = true

	gen := m.gen
	ordinal := m.ordinal
	req := exchange.SubmitAnswerRequest{
		SessionID: m.session.ID,
		Question:  m.question.Text,
		Answer:    text,
	}
	if m.session.Kind == KindHR {
		req.MessageID = m.question.MessageID
	}
	x := m.exchange
	return m.call(func(ctx context.Context) tea.Msg {
		res, err := x.SubmitAnswer(ctx, req)
		return answerMsg{gen: gen, ordinal: ordinal, res: res, err: err}
	}), nil
}

// Update applies the result of an earlier command. Messages not meant for
// the manager, and results from a previous generation, are ignored.
func (m *Manager) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case countdown.TickMsg:
		if m.torndown {
			return nil
		}
		expired, next := m.timer.Tick(msg)
		if expired {
			return m.expire()
		}
		return next
	case sessionCreatedMsg:
		if m.stale(msg.gen) {
			return nil
		}
		return m.handleSessionCreated(msg)
	case questionMsg:
		if m.stale(msg.gen) {
			return nil
		}
		return m.handleQuestion(msg)
	case answerMsg:
		if m.stale(msg.gen) {
			return nil
		}
		return m.handleAnswer(msg)
	case finalizedMsg:
		if m.stale(msg.gen) {
			return nil
		}
		return m.handleFinalized(msg)
	case redirectMsg:
		if m.stale(msg.gen) {
			return nil
		}
		m.navigator.Navigate(msg.page, msg.payload)
	}
	return nil
}

// Teardown stops the countdown and invalidates everything in flight. It is
// safe to call more than once.
func (m *Manager) Teardown() {
	if m.torndown {
		return
	}
	m.torndown = true
	m.gen = nextGen()
	m.timer.Stop()
	m.cancel()
	m.pending = false
	if !m.state.Terminal() && m.state != StateIdle {
		m.record(log.LogEvent{Event: log.EventSessionTeardown, Ordinal: m.ordinal, Remaining: m.timer.Remaining()})
	}
}

func (m *Manager) handleSessionCreated(msg sessionCreatedMsg) tea.Cmd {
	if m.state != StateInitializing || m.session != nil {
		return nil
	}
	if msg.err != nil {
		return m.failInit(msg.err)
	}

	m.session = &Session{
		ID:              msg.ref.SessionID,
		ResumeID:        msg.ref.ResumeID,
		Kind:            m.cfg.Kind,
		Difficulty:      m.cfg.Difficulty,
		DurationSeconds: m.cfg.DurationSeconds,
		Topics:          m.cfg.Topics,
		TotalQuestions:  m.cfg.TotalQuestions,
	}
	m.record(log.LogEvent{
		Event:      log.EventSessionCreated,
		Kind:       string(m.session.Kind),
		Difficulty: string(m.session.Difficulty),
		Total:      m.session.TotalQuestions,
		DurationMs: time.Since(m.started).Milliseconds(),
	})
	m.logger.Info("session created",
		slog.String("session", m.session.ID),
		slog.String("kind", string(m.session.Kind)),
	)
	return m.requestQuestion()
}

func (m *Manager) failInit(err error) tea.Cmd {
	m.state = StateErrored
	m.failure = exchange.Reason(err)
	m.post(m.failure, notify.SeverityError)
	m.record(log.LogEvent{Event: log.EventSessionErrored, Kind: string(m.cfg.Kind), Error: err.Error()})
	m.logger.Warn("session initialization failed", slog.String("error", err.Error()))

	if errors.Is(err, exchange.ErrNoResume) {
		m.navigator.Navigate(nav.PageResumeUpload, nil)
		return nil
	}
	gen := m.gen
	return tea.Tick(m.redirectDelay, func(time.Time) tea.Msg {
		return redirectMsg{gen: gen, page: nav.PageHome}
	})
}

func (m *Manager) requestQuestion() tea.Cmd {
	m.pending = true
	gen := m.gen
	ordinal := m.ordinal + 1
	s := m.session
	prev := append([]string{}, m.history...)
	x := m.exchange

	if s.Kind == KindHR {
		return m.call(func(ctx context.Context) tea.Msg {
			q, err := x.GenerateHRQuestion(ctx, exchange.GenerateHRQuestionRequest{
				SessionID:         s.ID,
				ResumeID:          s.ResumeID,
				PreviousQuestions: prev,
			})
			return questionMsg{gen: gen, ordinal: ordinal, q: q, err: err}
		})
	}
	topic := ""
	if len(s.Topics) > 0 {
		topic = s.Topics[0]
	}
	return m.call(func(ctx context.Context) tea.Msg {
		q, err := x.GenerateQuestion(ctx, exchange.GenerateQuestionRequest{
			SessionID:         s.ID,
			ResumeID:          s.ResumeID,
			PreviousQuestions: prev,
			CurrentTopic:      topic,
		})
		return questionMsg{gen: gen, ordinal: ordinal, q: q, err: err}
	})
}

func (m *Manager) handleQuestion(msg questionMsg) tea.Cmd {
	if !m.pending || msg.ordinal != m.ordinal+1 {
		return nil
	}
	if m.state != StateInitializing && m.state != StateAwaitingAnswer {
		return nil
	}

	q := msg.q
	if msg.err != nil || strings.TrimSpace(q.Text) == "" {
		reason := "empty question"
		if msg.err != nil {
			reason = exchange.Reason(msg.err)
		}
		q = fallbackQuestion(m.session.Kind, msg.ordinal)
		m.post(fmt.Sprintf("Could not load a new question (%s). Showing a practice question instead.", reason), notify.SeverityError)
		m.record(log.LogEvent{Event: log.EventFallbackQuestion, Ordinal: msg.ordinal, Question: q.Text, Reason: reason})
	} else {
		m.record(log.LogEvent{Event: log.EventQuestionServed, Ordinal: msg.ordinal, Question: q.Text})
	}
	q.Number = msg.ordinal

	first := m.state == StateInitializing
	if msg.ordinal != m.ordinal {
		m.answer = ""
	}
	m.question = &q
	m.ordinal = msg.ordinal
	m.history = append(m.history, q.Text)
	m.pending = false
	m.state = StateAwaitingAnswer

	if first {
		return m.timer.Start(m.session.DurationSeconds)
	}
	return nil
}

func (m *Manager) handleAnswer(msg answerMsg) tea.Cmd {
	if m.state != StateSubmitting || msg.ordinal != m.ordinal {
		return nil
	}
	m.pending = false

	err := msg.err
	if err == nil && !msg.res.Accepted {
		err = errors.New("answer was not accepted")
	}
	if err != nil {
		m.state = StateAwaitingAnswer
		reason := exchange.Reason(err)
		m.post(fmt.Sprintf("Could not submit your answer: %s. Your answer was kept, try again.", reason), notify.SeverityError)
		m.record(log.LogEvent{Event: log.EventAnswerFailed, Ordinal: m.ordinal, Reason: reason})
		return nil
	}

	m.answered++
	m.answer = ""
	m.evaluation = msg.res.Evaluation
	m.record(log.LogEvent{Event: log.EventAnswerSubmitted, Ordinal: m.ordinal, Remaining: m.timer.Remaining()})

	if m.ordinal < m.session.TotalQuestions {
		m.state = StateAwaitingAnswer
		return m.requestQuestion()
	}

	m.state = StateCompleted
	m.timer.Stop()
	m.pending = true
	m.record(log.LogEvent{Event: log.EventSessionCompleted, Ordinal: m.ordinal, Total: m.session.TotalQuestions})
	m.post("Interview complete! Preparing your report.", notify.SeverityInfo)

	gen := m.gen
	id := m.session.ID
	x := m.exchange
	return m.call(func(ctx context.Context) tea.Msg {
		return finalizedMsg{gen: gen, err: x.FinalizeSession(ctx, id)}
	})
}

func (m *Manager) handleFinalized(msg finalizedMsg) tea.Cmd {
	if m.state != StateCompleted {
		return nil
	}
	m.pending = false
	if msg.err != nil {
		m.logger.Warn("finalize session failed",
			slog.String("session", m.session.ID),
			slog.String("error", msg.err.Error()),
		)
	}
	m.navigator.Navigate(nav.PageReport, nav.SessionPayload{
		SessionID: m.session.ID,
		Answered:  m.answered,
		Total:     m.session.TotalQuestions,
	})
	return nil
}

// expire preempts whatever is in flight.
func (m *Manager) expire() tea.Cmd {
	if m.state.Terminal() {
		return nil
	}
	m.state = StateExpired
	m.gen = nextGen()
	m.cancel()
	m.pending = false
	m.post("Time's up!", notify.SeverityInfo)
	m.record(log.LogEvent{Event: log.EventTimerExpired, Ordinal: m.ordinal, Total: m.session.TotalQuestions})

	m.navigator.Navigate(expiryPage[m.session.Kind], nav.SessionPayload{
		SessionID: m.session.ID,
		Answered:  m.answered,
		Total:     m.session.TotalQuestions,
	})
	return nil
}

// call runs fn off the Update loop with a per-call deadline derived from the
// manager's context, which Teardown and expiry cancel.
func (m *Manager) call(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	base := m.ctx
	timeout := m.callTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()
		return fn(ctx)
	}
}

func (m *Manager) stale(gen uint64) bool {
	return m.torndown || gen != m.gen
}

func (m *Manager) post(text string, sev notify.Severity) {
	if m.notifier != nil {
		m.notifier.Post(text, sev)
	}
}

func (m *Manager) record(e log.LogEvent) {
	if m.session != nil && e.SessionID == "" {
		e.SessionID = m.session.ID
	}
	if err := m.events.Append(e); err != nil {
		m.logger.Warn("append event failed", slog.String("event", e.Event), slog.String("error", err.Error()))
	}
}

func fallbackQuestion(kind Kind, ordinal int) exchange.Question {
	it := questions.Fallback(kind == KindHR, ordinal)
	return exchange.Question{
		Text:       it.Text,
		Category:   it.Category,
		Difficulty: it.Difficulty,
		HintPoints: it.HintPoints,
		Purpose:    it.Purpose,
	}
}

// State returns the lifecycle state.
func (m *Manager) State() State { return m.state }

// Kind returns the configured session kind.
func (m *Manager) Kind() Kind { return m.cfg.Kind }

// Session returns the created session, if any.
func (m *Manager) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Question returns the displayed question, if any.
func (m *Manager) Question() (exchange.Question, bool) {
	if m.question == nil {
		return exchange.Question{}, false
	}
	return *m.question, true
}

// Ordinal is the 1-based number of the displayed question, 0 before the first.
func (m *Manager) Ordinal() int { return m.ordinal }

// Total is the session's question budget.
func (m *Manager) Total() int {
	if m.session != nil {
		return m.session.TotalQuestions
	}
	return m.cfg.TotalQuestions
}

// Answered counts accepted answers.
func (m *Manager) Answered() int { return m.answered }

// Answer returns the in-progress answer text.
func (m *Manager) Answer() string { return m.answer }

// Evaluation returns the scoring of the last accepted answer, if the service
// supplied one.
func (m *Manager) Evaluation() *exchange.Evaluation { return m.evaluation }

// History lists the texts of every question served so far.
func (m *Manager) History() []string { return append([]string(nil), m.history...) }

// Remaining returns the seconds left on the countdown.
func (m *Manager) Remaining() int { return m.timer.Remaining() }

// Pending reports whether an exchange call is in flight.
func (m *Manager) Pending() bool { return m.pending }

// Failure is the reason initialization failed, if it did.
func (m *Manager) Failure() string { return m.failure }
