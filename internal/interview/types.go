// Package interview implements the session lifecycle manager: it creates a
// session, serves questions, submits answers and races all of it against the
// session countdown.
//
// A Manager is not safe for concurrent use. Every method, including Update,
// must be called from the Bubble Tea Update loop; asynchronous work is
// returned as tea.Cmd values whose results come back through Update.
package interview

import (
	"context"
	"errors"

	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/log"
	"github.com/mockround/mockround/internal/nav"
	"github.com/mockround/mockround/internal/questions"
)

// Errors returned by the manager's synchronous checks.
var (
	ErrInvalidState = errors.New("operation not allowed in current state")
	ErrEmptyAnswer  = errors.New("answer is empty")
)

// State is the lifecycle state of a session.
type State int

// Lifecycle states. Completed, Errored and Expired are terminal.
const (
	StateIdle State = iota
	StateInitializing
	StateAwaitingAnswer
	StateSubmitting
	StateCompleted
	StateErrored
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	case StateErrored:
		return "errored"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateErrored || s == StateExpired
}

// Kind selects the technical or HR variant.
type Kind string

// Session kinds.
const (
	KindTechnical Kind = "technical"
	KindHR        Kind = "hr"
)

// Default session shape.
const (
	DefaultDurationSeconds = 30 * 60
	DefaultTotalQuestions  = 10
	DefaultHRQuestions     = 8
)

// expiryPage is where each kind of session goes when its time runs out.
var expiryPage = map[Kind]nav.Page{
	KindTechnical: nav.PageProgress,
	KindHR:        nav.PageHome,
}

// Config is what the user chose on the setup form.
type Config struct {
	Kind            Kind
	Difficulty      exchange.Level
	DurationSeconds int
	Topics          []string
	TotalQuestions  int
	JobDescription  string
}

func (c Config) withDefaults() Config {
	if c.Kind != KindHR {
		c.Kind = KindTechnical
	}
	if c.Difficulty == "" {
		c.Difficulty = exchange.LevelMedium
	}
	if c.Kind == KindHR {
		c.Difficulty = exchange.LevelMedium
		c.Topics = append([]string(nil), questions.HRTopics...)
	}
	if c.DurationSeconds <= 0 {
		c.DurationSeconds = DefaultDurationSeconds
	}
	if c.TotalQuestions <= 0 {
		c.TotalQuestions = DefaultTotalQuestions
		if c.Kind == KindHR {
			c.TotalQuestions = DefaultHRQuestions
		}
	}
	c.Topics = append([]string(nil), c.Topics...)
	return c
}

// Session is one created interview attempt.
type Session struct {
	ID              string
	ResumeID        string
	Kind            Kind
	Difficulty      exchange.Level
	DurationSeconds int
	Topics          []string
	TotalQuestions  int
}

// Exchange is the subset of the exchange client the manager calls.
type Exchange interface {
	LatestResume(ctx context.Context, userID string) (exchange.Resume, error)
	CreateSession(ctx context.Context, req exchange.CreateSessionRequest) (exchange.SessionRef, error)
	CreateHRSession(ctx context.Context, req exchange.CreateHRSessionRequest) (exchange.SessionRef, error)
	GenerateQuestion(ctx context.Context, req exchange.GenerateQuestionRequest) (exchange.Question, error)
	GenerateHRQuestion(ctx context.Context, req exchange.GenerateHRQuestionRequest) (exchange.Question, error)
	SubmitAnswer(ctx context.Context, req exchange.SubmitAnswerRequest) (exchange.SubmitResult, error)
	FinalizeSession(ctx context.Context, sessionID string) error
}

// Navigator receives page transitions.
type Navigator interface {
	Navigate(p nav.Page, payload any) nav.Page
}

// EventSink records lifecycle events.
type EventSink interface {
	Append(event log.LogEvent) error
}

type discardSink struct{}

func (discardSink) Append(log.LogEvent) error { return nil }
