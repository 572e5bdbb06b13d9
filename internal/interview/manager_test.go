package interview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockround/mockround/internal/countdown"
	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/log"
	"github.com/mockround/mockround/internal/nav"
	"github.com/mockround/mockround/internal/notify"
	"github.com/mockround/mockround/internal/questions"
)

// --- fakes ---

type fakeExchange struct {
	mu sync.Mutex

	ref         exchange.SessionRef
	createErr   error
	resume      exchange.Resume
	resumeErr   error
	questionFn  func(n int) (exchange.Question, error)
	submitFn    func(n int) (exchange.SubmitResult, error)
	blockSubmit bool

	creates     int
	questions   int
	submits     int
	finalizes   int
	createReq   exchange.CreateSessionRequest
	hrCreateReq exchange.CreateHRSessionRequest
	questionReq exchange.GenerateQuestionRequest
	submitReq   exchange.SubmitAnswerRequest
}

func newFakeExchange() *fakeExchange {
	return &fakeExchange{
		ref:    exchange.SessionRef{SessionID: "S1", ResumeID: "R1"},
		resume: exchange.Resume{ResumeID: "R1", JobDescription: "Backend engineer"},
	}
}

func (f *fakeExchange) LatestResume(ctx context.Context, userID string) (exchange.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resume, f.resumeErr
}

func (f *fakeExchange) CreateSession(ctx context.Context, req exchange.CreateSessionRequest) (exchange.SessionRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.createReq = req
	if f.createErr != nil {
		return exchange.SessionRef{}, f.createErr
	}
	return f.ref, nil
}

func (f *fakeExchange) CreateHRSession(ctx context.Context, req exchange.CreateHRSessionRequest) (exchange.SessionRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.hrCreateReq = req
	if f.createErr != nil {
		return exchange.SessionRef{}, f.createErr
	}
	return f.ref, nil
}

func (f *fakeExchange) nextQuestion() (exchange.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.questions++
	if f.questionFn != nil {
		return f.questionFn(f.questions)
	}
	return exchange.Question{
		Text:      fmt.Sprintf("Q%d", f.questions),
		Category:  "General",
		MessageID: fmt.Sprintf("m-%d", f.questions),
	}, nil
}

func (f *fakeExchange) GenerateQuestion(ctx context.Context, req exchange.GenerateQuestionRequest) (exchange.Question, error) {
	f.mu.Lock()
	f.questionReq = req
	f.mu.Unlock()
	return f.nextQuestion()
}

func (f *fakeExchange) GenerateHRQuestion(ctx context.Context, req exchange.GenerateHRQuestionRequest) (exchange.Question, error) {
	return f.nextQuestion()
}

func (f *fakeExchange) SubmitAnswer(ctx context.Context, req exchange.SubmitAnswerRequest) (exchange.SubmitResult, error) {
	f.mu.Lock()
	f.submits++
	f.submitReq = req
	n := f.submits
	block := f.blockSubmit
	fn := f.submitFn
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return exchange.SubmitResult{Accepted: true}, nil
	}
	if fn != nil {
		return fn(n)
	}
	return exchange.SubmitResult{Accepted: true}, nil
}

func (f *fakeExchange) FinalizeSession(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalizes++
	return nil
}

type posted struct {
	text string
	sev  notify.Severity
}

type fakeNotifier struct {
	posts []posted
}

func (f *fakeNotifier) Post(text string, sev notify.Severity) notify.Notification {
	f.posts = append(f.posts, posted{text: text, sev: sev})
	return notify.Notification{ID: uint64(len(f.posts)), Text: text, Severity: sev}
}

type navigation struct {
	page    nav.Page
	payload any
}

type fakeNavigator struct {
	calls []navigation
}

func (f *fakeNavigator) Navigate(p nav.Page, payload any) nav.Page {
	f.calls = append(f.calls, navigation{page: p, payload: payload})
	return p
}

func (f *fakeNavigator) last() navigation {
	if len(f.calls) == 0 {
		return navigation{}
	}
	return f.calls[len(f.calls)-1]
}

type fakeSink struct {
	events []log.LogEvent
}

func (f *fakeSink) Append(e log.LogEvent) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeSink) names() []string {
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Event)
	}
	return out
}

// --- helpers ---

type harness struct {
	m   *Manager
	x   *fakeExchange
	n   *fakeNotifier
	nav *fakeNavigator
	ev  *fakeSink
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{x: newFakeExchange(), n: &fakeNotifier{}, nav: &fakeNavigator{}, ev: &fakeSink{}}
	h.m = NewManager(h.x, h.n, h.nav,
		WithTickInterval(time.Millisecond),
		WithRedirectDelay(time.Millisecond),
		WithCallTimeout(time.Second),
		WithEventSink(h.ev),
	)
	t.Cleanup(h.m.Teardown)
	return h
}

// drive runs cmd and feeds every resulting message back into the manager.
// Countdown ticks are collected and returned so tests control time.
func drive(m *Manager, cmd tea.Cmd) []countdown.TickMsg {
	var ticks []countdown.TickMsg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case countdown.TickMsg:
			ticks = append(ticks, msg)
		default:
			queue = append(queue, m.Update(msg))
		}
	}
	return ticks
}

func start(t *testing.T, h *harness, cfg Config) []countdown.TickMsg {
	t.Helper()
	cmd := h.m.Initialize("user-1", cfg)
	require.NotNil(t, cmd)
	return drive(h.m, cmd)
}

func (h *harness) postsOf(sev notify.Severity) []posted {
	var out []posted
	for _, p := range h.n.posts {
		if p.sev == sev {
			out = append(out, p)
		}
	}
	return out
}

// --- tests ---

func TestInitializeRequestsFirstQuestion(t *testing.T) {
	h := newHarness(t)

	ticks := start(t, h, Config{Difficulty: exchange.LevelMedium, DurationSeconds: 30, Topics: []string{}})

	assert.Equal(t, StateAwaitingAnswer, h.m.State())
	s, ok := h.m.Session()
	require.True(t, ok)
	assert.Equal(t, "S1", s.ID)
	assert.Equal(t, "R1", s.ResumeID)
	assert.Equal(t, 1, h.m.Ordinal())
	assert.Equal(t, 1, h.x.questions)
	assert.Equal(t, 30, h.m.Remaining())
	assert.Len(t, ticks, 1, "countdown starts with the first question")

	assert.Equal(t, "user-1", h.x.createReq.UserID)
	assert.Equal(t, exchange.LevelMedium, h.x.createReq.Difficulty)
	assert.Equal(t, 30, h.x.createReq.Duration)
	assert.Empty(t, h.x.createReq.Topics)
	assert.Equal(t, "S1", h.x.questionReq.SessionID)
	assert.Equal(t, "", h.x.questionReq.CurrentTopic)

	q, ok := h.m.Question()
	require.True(t, ok)
	assert.Equal(t, "Q1", q.Text)
	assert.Equal(t, 1, q.Number)
	assert.Equal(t, []string{log.EventSessionStarted, log.EventSessionCreated, log.EventQuestionServed}, h.ev.names())
}

func TestTenAnswersCompleteAndRouteToReport(t *testing.T) {
	h := newHarness(t)
	start(t, h, Config{TotalQuestions: 10, Topics: []string{"Databases", "Networking"}})
	assert.Equal(t, "Databases", h.x.questionReq.CurrentTopic)

	ordinals := []int{h.m.Ordinal()}
	for i := 1; i <= 10; i++ {
		h.m.SetAnswer(fmt.Sprintf("answer %d", i))
		cmd, err := h.m.SubmitAnswer(h.m.Answer())
		require.NoError(t, err)
		assert.Equal(t, StateSubmitting, h.m.State())
		drive(h.m, cmd)
		if i < 10 {
			ordinals = append(ordinals, h.m.Ordinal())
			assert.Equal(t, "", h.m.Answer())
		}
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ordinals)
	assert.Equal(t, StateCompleted, h.m.State())
	assert.Equal(t, 10, h.m.Answered())
	assert.Equal(t, 1, h.x.finalizes)
	assert.Equal(t, 10, h.x.submits)
	assert.False(t, h.m.Pending())

	last := h.nav.last()
	assert.Equal(t, nav.PageReport, last.page)
	assert.Equal(t, nav.SessionPayload{SessionID: "S1", Answered: 10, Total: 10}, last.payload)
	assert.Empty(t, h.postsOf(notify.SeverityError))
}

func TestNoResumeRedirectsToUpload(t *testing.T) {
	h := newHarness(t)
	h.x.createErr = &exchange.Error{
		Op:     "create session",
		Kind:   exchange.KindDomain,
		Status: 404,
		Reason: "No resume found for user",
	}

	start(t, h, Config{})

	assert.Equal(t, StateErrored, h.m.State())
	_, ok := h.m.Session()
	assert.False(t, ok)
	require.Len(t, h.n.posts, 1)
	assert.Equal(t, "No resume found for user", h.n.posts[0].text)
	assert.Equal(t, notify.SeverityError, h.n.posts[0].sev)
	require.Len(t, h.nav.calls, 1)
	assert.Equal(t, nav.PageResumeUpload, h.nav.calls[0].page)
}

func TestOtherInitFailureReturnsHomeAfterDelay(t *testing.T) {
	h := newHarness(t)
	h.x.createErr = &exchange.Error{Op: "create session", Kind: exchange.KindTransport, Reason: "could not reach server"}

	start(t, h, Config{})

	assert.Equal(t, StateErrored, h.m.State())
	assert.Equal(t, "could not reach server", h.m.Failure())
	require.Len(t, h.n.posts, 1)
	require.Len(t, h.nav.calls, 1)
	assert.Equal(t, nav.PageHome, h.nav.calls[0].page)
}

func TestRedirectDroppedAfterTeardown(t *testing.T) {
	h := newHarness(t)
	h.x.createErr = errors.New("boom")

	msg := h.m.Initialize("user-1", Config{})()
	redirect := h.m.Update(msg)
	require.NotNil(t, redirect)

	h.m.Teardown()
	h.m.Update(redirect())
	assert.Empty(t, h.nav.calls)
}

func TestMissingUserFailsWithoutNetwork(t *testing.T) {
	h := newHarness(t)
	drive(h.m, h.m.Initialize("  ", Config{}))

	assert.Equal(t, StateErrored, h.m.State())
	assert.Equal(t, 0, h.x.creates)
	require.Len(t, h.n.posts, 1)
	assert.Equal(t, nav.PageHome, h.nav.last().page)
}

func TestCountdownExpiryFiresOnce(t *testing.T) {
	h := newHarness(t)
	ticks := start(t, h, Config{DurationSeconds: 5})
	require.Len(t, ticks, 1)

	tick := ticks[0]
	for i := 0; i < 5; i++ {
		next := h.m.Update(tick)
		if i < 4 {
			require.NotNil(t, next)
			tick = next().(countdown.TickMsg)
		} else {
			assert.Nil(t, next)
		}
	}
	for i := 0; i < 3; i++ {
		assert.Nil(t, h.m.Update(tick))
	}

	assert.Equal(t, StateExpired, h.m.State())
	assert.Equal(t, 0, h.m.Remaining())

	var timesUp int
	for _, p := range h.n.posts {
		if p.text == "Time's up!" {
			timesUp++
			assert.Equal(t, notify.SeverityInfo, p.sev)
		}
	}
	assert.Equal(t, 1, timesUp)

	require.Len(t, h.nav.calls, 1)
	assert.Equal(t, nav.PageProgress, h.nav.calls[0].page)
	assert.NotEqual(t, nav.PageInterview, h.nav.calls[0].page)
	assert.Equal(t, nav.SessionPayload{SessionID: "S1", Total: DefaultTotalQuestions}, h.nav.calls[0].payload)
}

func TestHRExpiryGoesHome(t *testing.T) {
	h := newHarness(t)
	ticks := start(t, h, Config{Kind: KindHR, DurationSeconds: 1})
	require.Len(t, ticks, 1)

	h.m.Update(ticks[0])
	assert.Equal(t, StateExpired, h.m.State())
	assert.Equal(t, nav.PageHome, h.nav.last().page)
}

func TestLateAnswerAfterExpiryIsDiscarded(t *testing.T) {
	h := newHarness(t)
	h.x.blockSubmit = true
	ticks := start(t, h, Config{DurationSeconds: 1})
	require.Len(t, ticks, 1)

	cmd, err := h.m.SubmitAnswer("almost there")
	require.NoError(t, err)

	result := make(chan tea.Msg, 1)
	go func() { result <- cmd() }()

	h.m.Update(ticks[0])
	require.Equal(t, StateExpired, h.m.State())

	select {
	case msg := <-result:
		assert.Nil(t, h.m.Update(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("submit call was not cancelled by expiry")
	}

	assert.Equal(t, StateExpired, h.m.State())
	assert.Equal(t, 0, h.m.Answered())
	assert.Equal(t, 1, h.m.Ordinal())
	assert.Equal(t, "almost there", h.m.Answer())
	assert.Equal(t, 1, h.x.questions)
}

func TestEmptyAnswerRejectedLocally(t *testing.T) {
	h := newHarness(t)
	start(t, h, Config{})

	for _, text := range []string{"", "   ", "\n\t"} {
		cmd, err := h.m.SubmitAnswer(text)
		assert.Nil(t, cmd)
		assert.ErrorIs(t, err, ErrEmptyAnswer)
	}

	assert.Equal(t, 0, h.x.submits)
	assert.Equal(t, 1, h.m.Ordinal())
	assert.Equal(t, StateAwaitingAnswer, h.m.State())
	assert.Len(t, h.postsOf(notify.SeverityInfo), 3)
}

func TestSubmitRejectedWhileSubmitting(t *testing.T) {
	h := newHarness(t)
	start(t, h, Config{})

	cmd, err := h.m.SubmitAnswer("first")
	require.NoError(t, err)
	require.NotNil(t, cmd)

	again, err := h.m.SubmitAnswer("second")
	assert.Nil(t, again)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = h.m.RequestNextQuestion()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestQuestionFailureUsesFallback(t *testing.T) {
	h := newHarness(t)
	h.x.questionFn = func(n int) (exchange.Question, error) {
		return exchange.Question{}, &exchange.Error{Op: "generate question", Kind: exchange.KindTransport, Reason: "request timed out"}
	}

	start(t, h, Config{})

	q, ok := h.m.Question()
	require.True(t, ok)
	assert.Equal(t, questions.Fallback(false, 1).Text, q.Text)
	assert.Equal(t, 1, q.Number)
	assert.Equal(t, StateAwaitingAnswer, h.m.State())

	errs := h.postsOf(notify.SeverityError)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].text, "request timed out")
	assert.Contains(t, h.ev.names(), log.EventFallbackQuestion)
}

func TestMalformedQuestionUsesFallbackForOrdinal(t *testing.T) {
	h := newHarness(t)
	h.x.questionFn = func(n int) (exchange.Question, error) {
		if n == 2 {
			return exchange.Question{Text: "  "}, nil
		}
		return exchange.Question{Text: fmt.Sprintf("Q%d", n)}, nil
	}
	start(t, h, Config{Kind: KindHR})

	cmd, err := h.m.SubmitAnswer("I like teams")
	require.NoError(t, err)
	drive(h.m, cmd)

	q, _ := h.m.Question()
	assert.Equal(t, 2, h.m.Ordinal())
	assert.Equal(t, questions.Fallback(true, 2).Text, q.Text)
	assert.NotEmpty(t, q.Purpose)
	assert.Len(t, h.postsOf(notify.SeverityError), 1)
}

func TestSubmitFailurePreservesAnswer(t *testing.T) {
	h := newHarness(t)
	h.x.submitFn = func(n int) (exchange.SubmitResult, error) {
		if n == 1 {
			return exchange.SubmitResult{}, &exchange.Error{Op: "submit answer", Kind: exchange.KindTransport, Reason: "could not reach server"}
		}
		return exchange.SubmitResult{Accepted: true}, nil
	}
	start(t, h, Config{})

	cmd, err := h.m.SubmitAnswer("my answer")
	require.NoError(t, err)
	drive(h.m, cmd)

	assert.Equal(t, StateAwaitingAnswer, h.m.State())
	assert.Equal(t, "my answer", h.m.Answer())
	assert.Equal(t, 1, h.m.Ordinal())
	require.Len(t, h.postsOf(notify.SeverityError), 1)

	cmd, err = h.m.SubmitAnswer(h.m.Answer())
	require.NoError(t, err)
	drive(h.m, cmd)
	assert.Equal(t, 2, h.m.Ordinal())
	assert.Equal(t, "", h.m.Answer())
}

func TestRejectedAnswerTreatedAsFailure(t *testing.T) {
	h := newHarness(t)
	h.x.submitFn = func(int) (exchange.SubmitResult, error) {
		return exchange.SubmitResult{Accepted: false}, nil
	}
	start(t, h, Config{})

	cmd, err := h.m.SubmitAnswer("answer")
	require.NoError(t, err)
	drive(h.m, cmd)

	assert.Equal(t, StateAwaitingAnswer, h.m.State())
	assert.Equal(t, 1, h.m.Ordinal())
	assert.Equal(t, "answer", h.m.Answer())
}

func TestDuplicateInitializeIsNoop(t *testing.T) {
	h := newHarness(t)

	first := h.m.Initialize("user-1", Config{})
	second := h.m.Initialize("user-1", Config{})
	require.NotNil(t, first)
	assert.Nil(t, second)

	drive(h.m, first)
	assert.Nil(t, h.m.Initialize("user-1", Config{}))
	assert.Equal(t, 1, h.x.creates)
}

func TestHRSessionUsesResumeAndMessageID(t *testing.T) {
	h := newHarness(t)
	h.x.ref = exchange.SessionRef{SessionID: "H1"}
	h.x.submitFn = func(int) (exchange.SubmitResult, error) {
		return exchange.SubmitResult{
			Accepted: true,
			Evaluation: &exchange.Evaluation{
				RelevanceScore:     75,
				CommunicationScore: 70,
				Feedback:           "Good attempt.",
			},
		}, nil
	}

	start(t, h, Config{Kind: KindHR})

	s, ok := h.m.Session()
	require.True(t, ok)
	assert.Equal(t, "R1", s.ResumeID)
	assert.Equal(t, exchange.LevelMedium, s.Difficulty)
	assert.Equal(t, DefaultHRQuestions, s.TotalQuestions)
	assert.Equal(t, "R1", h.x.hrCreateReq.ResumeID)
	assert.Equal(t, "Backend engineer", h.x.hrCreateReq.JobDescription)

	cmd, err := h.m.SubmitAnswer("Because I enjoy it")
	require.NoError(t, err)
	drive(h.m, cmd)

	assert.Equal(t, "m-1", h.x.submitReq.MessageID)
	require.NotNil(t, h.m.Evaluation())
	assert.Equal(t, 75, h.m.Evaluation().RelevanceScore)
	assert.Equal(t, 2, h.m.Ordinal())
}

func TestHRNoResumeOnLookup(t *testing.T) {
	h := newHarness(t)
	h.x.resumeErr = &exchange.Error{Op: "fetch resume", Kind: exchange.KindDomain, Status: 404, Reason: "No resume found for user"}

	start(t, h, Config{Kind: KindHR})

	assert.Equal(t, 0, h.x.creates)
	assert.Equal(t, nav.PageResumeUpload, h.nav.last().page)
}

func TestTechnicalSubmitOmitsMessageID(t *testing.T) {
	h := newHarness(t)
	start(t, h, Config{})

	cmd, err := h.m.SubmitAnswer("answer")
	require.NoError(t, err)
	drive(h.m, cmd)
	assert.Equal(t, "", h.x.submitReq.MessageID)
	assert.Equal(t, "Q1", h.x.submitReq.Question)
}

func TestTeardownDiscardsInFlightQuestion(t *testing.T) {
	h := newHarness(t)

	created := h.m.Initialize("user-1", Config{})()
	questionCmd := h.m.Update(created)
	require.NotNil(t, questionCmd)

	h.m.Teardown()
	assert.Nil(t, h.m.Update(questionCmd()))

	_, ok := h.m.Question()
	assert.False(t, ok)
	assert.Equal(t, 0, h.m.Ordinal())
	assert.False(t, h.m.Pending())
	assert.Contains(t, h.ev.names(), log.EventSessionTeardown)

	// A tick from before teardown must not restart anything.
	assert.Nil(t, h.m.Update(countdown.TickMsg{Gen: 1}))
}

func TestFreshManagerIgnoresResultsOfTornDownOne(t *testing.T) {
	old := newHarness(t)
	created := old.m.Initialize("user-1", Config{DurationSeconds: 30})()
	oldTicks := drive(old.m, old.m.Update(created))
	require.Len(t, oldTicks, 1)
	old.m.Teardown()

	h := newHarness(t)
	h.x.ref = exchange.SessionRef{SessionID: "S2", ResumeID: "R2"}
	cmd := h.m.Initialize("user-1", Config{DurationSeconds: 30})
	require.NotNil(t, cmd)

	// The old session's creation lands while the new one is still initializing.
	assert.Nil(t, h.m.Update(created))
	_, ok := h.m.Session()
	assert.False(t, ok)
	assert.Equal(t, StateInitializing, h.m.State())

	ticks := drive(h.m, cmd)
	require.Len(t, ticks, 1)
	s, ok := h.m.Session()
	require.True(t, ok)
	assert.Equal(t, "S2", s.ID)
	assert.Equal(t, 1, h.m.Ordinal())

	assert.Nil(t, h.m.Update(oldTicks[0]))
	assert.Equal(t, 30, h.m.Remaining())
	assert.Equal(t, StateAwaitingAnswer, h.m.State())

	h.m.Update(ticks[0])
	assert.Equal(t, 29, h.m.Remaining())
}

func TestSkipClearsDraftAnswer(t *testing.T) {
	h := newHarness(t)
	start(t, h, Config{})

	h.m.SetAnswer("half a thought")
	require.Equal(t, "half a thought", h.m.Answer())

	cmd, err := h.m.RequestNextQuestion()
	require.NoError(t, err)
	drive(h.m, cmd)

	assert.Equal(t, 2, h.m.Ordinal())
	assert.Equal(t, "", h.m.Answer())
	q, ok := h.m.Question()
	require.True(t, ok)
	assert.Equal(t, "Q2", q.Text)
}

func TestRequestNextQuestionSkipsAndRespectsTotal(t *testing.T) {
	h := newHarness(t)
	start(t, h, Config{TotalQuestions: 2})

	cmd, err := h.m.RequestNextQuestion()
	require.NoError(t, err)

	_, err = h.m.RequestNextQuestion()
	assert.ErrorIs(t, err, ErrInvalidState, "one call in flight at a time")

	drive(h.m, cmd)
	assert.Equal(t, 2, h.m.Ordinal())
	assert.Equal(t, []string{"Q1", "Q2"}, h.m.History())

	_, err = h.m.RequestNextQuestion()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestHistoryFeedsPreviousQuestions(t *testing.T) {
	h := newHarness(t)
	start(t, h, Config{})

	cmd, err := h.m.SubmitAnswer("a1")
	require.NoError(t, err)
	drive(h.m, cmd)

	assert.Equal(t, []string{"Q1"}, h.x.questionReq.PreviousQuestions)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting_answer", StateAwaitingAnswer.String())
	assert.True(t, StateExpired.Terminal())
	assert.False(t, StateSubmitting.Terminal())
}
