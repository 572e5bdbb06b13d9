package backend

import (
	"errors"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/questions"
	"github.com/mockround/mockround/internal/session"
)

// Reasons the client recognises.
const (
	reasonNoResume         = "No resume found for user"
	reasonResumeNotFound   = "Resume not found"
	reasonSessionNotFound  = "Session not found"
	reasonSessionOrResume  = "Session or resume not found"
	reasonSessionCompleted = "Session already completed"
)

// hrEvaluation is attached to every accepted HR answer.
func hrEvaluation() *exchange.Evaluation {
	return &exchange.Evaluation{
		RelevanceScore:     75,
		CommunicationScore: 70,
		KeyStrengths:       []string{"Answer provided", "Relevant to question"},
		ImprovementAreas:   []string{"Could be more detailed", "Add specific examples"},
		Feedback:           "Good attempt. Try to provide more specific examples using the STAR method (Situation, Task, Action, Result).",
	}
}

func (s *Server) uploadResume(w http.ResponseWriter, r *http.Request) {
	var req exchange.UploadResumeRequest
	if !s.decode(w, r, &req) {
		return
	}
	text := s.plain(req.RawText)
	if text == "" {
		writeError(w, http.StatusBadRequest, "invalid request: rawText is required")
		return
	}

	res, err := s.store.CreateResume(r.Context(), req.UserID, s.plain(req.JobRole), s.plain(req.JobDescription), text)
	if err != nil {
		s.internal(w, r, "create resume", err)
		return
	}
	writeJSON(w, http.StatusCreated, toResume(res))
}

func (s *Server) latestResume(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "invalid request: userId is required")
		return
	}
	res, err := s.store.LatestResume(r.Context(), userID)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, reasonNoResume)
		return
	}
	if err != nil {
		s.internal(w, r, "latest resume", err)
		return
	}
	writeJSON(w, http.StatusOK, toResume(res))
}

func (s *Server) atsReport(w http.ResponseWriter, r *http.Request) {
	var req exchange.ATSRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.store.GetResume(r.Context(), req.ResumeID)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, reasonResumeNotFound)
		return
	}
	if err != nil {
		s.internal(w, r, "get resume", err)
		return
	}

	jd := s.plain(req.JobDescription)
	if jd == "" {
		jd = res.JobDescription
	}
	if jd == "" {
		writeError(w, http.StatusBadRequest, "invalid request: jobDescription is required")
		return
	}

	rep := s.ats.Analyze(r.Context(), res.RawText, jd)
	rep.ResumeID = res.ID
	s.metrics.RecordATSReport(rep.Source)
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req exchange.CreateSessionRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.store.LatestResume(r.Context(), req.UserID)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, reasonNoResume)
		return
	}
	if err != nil {
		s.internal(w, r, "latest resume", err)
		return
	}

	sess := &session.Session{
		UserID:          req.UserID,
		ResumeID:        res.ID,
		Kind:            session.KindTechnical,
		Difficulty:      string(req.Difficulty),
		DurationSeconds: req.Duration,
		Topics:          req.Topics,
		JobDescription:  res.JobDescription,
	}
	if err := s.store.CreateSession(r.Context(), sess); err != nil {
		s.internal(w, r, "create session", err)
		return
	}
	s.metrics.RecordSessionCreated(session.KindTechnical)
	writeJSON(w, http.StatusCreated, exchange.SessionRef{SessionID: sess.ID, ResumeID: res.ID})
}

func (s *Server) createHRSession(w http.ResponseWriter, r *http.Request) {
	var req exchange.CreateHRSessionRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.store.GetResume(r.Context(), req.ResumeID)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, reasonResumeNotFound)
		return
	}
	if err != nil {
		s.internal(w, r, "get resume", err)
		return
	}

	jd := s.plain(req.JobDescription)
	if jd == "" {
		jd = res.JobDescription
	}
	sess := &session.Session{
		UserID:         req.UserID,
		ResumeID:       res.ID,
		Kind:           session.KindHR,
		Difficulty:     string(exchange.LevelMedium),
		Topics:         questions.HRTopics,
		JobDescription: jd,
	}
	if err := s.store.CreateSession(r.Context(), sess); err != nil {
		s.internal(w, r, "create hr session", err)
		return
	}
	s.metrics.RecordSessionCreated(session.KindHR)
	writeJSON(w, http.StatusCreated, exchange.SessionRef{SessionID: sess.ID, ResumeID: res.ID})
}

func (s *Server) generateQuestion(w http.ResponseWriter, r *http.Request) {
	var req exchange.GenerateQuestionRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess, ok := s.activeSession(w, r, req.SessionID)
	if !ok {
		return
	}

	topic := req.CurrentTopic
	if topic == "" && len(sess.Topics) > 0 {
		topic = sess.Topics[0]
	}
	pool := questions.Remaining(questions.Technical(topic, sess.Difficulty), req.PreviousQuestions)
	if len(pool) == 0 {
		pool = questions.Remaining(questions.Technical("", sess.Difficulty), req.PreviousQuestions)
	}
	if len(pool) == 0 {
		pool = questions.Technical("", sess.Difficulty)
	}
	if len(pool) == 0 {
		pool = questions.Technical("", string(exchange.LevelMedium))
	}

	s.serve(w, r, sess.ID, pick(pool, len(req.PreviousQuestions)), SourceBank)
}

func (s *Server) generateHRQuestion(w http.ResponseWriter, r *http.Request) {
	var req exchange.GenerateHRQuestionRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess, err := s.store.GetSession(r.Context(), req.SessionID)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		s.internal(w, r, "get session", err)
		return
	}
	res, rerr := s.store.GetResume(r.Context(), req.ResumeID)
	if rerr != nil && !errors.Is(rerr, session.ErrNotFound) {
		s.internal(w, r, "get resume", rerr)
		return
	}
	if sess == nil || res == nil {
		writeError(w, http.StatusNotFound, reasonSessionOrResume)
		return
	}
	if sess.Status == session.StatusCompleted {
		writeError(w, http.StatusConflict, reasonSessionCompleted)
		return
	}

	items, source := s.hr.Questions(r.Context(), sess.ID, res.RawText, sess.JobDescription)
	pool := questions.Remaining(items, req.PreviousQuestions)
	if len(pool) == 0 {
		pool = questions.HRCommon
		source = SourceCommon
	}

	s.serve(w, r, sess.ID, pick(pool, len(req.PreviousQuestions)), source)
}

// serve records the question as an ai message and writes the envelope.
func (s *Server) serve(w http.ResponseWriter, r *http.Request, sessionID string, it questions.Item, source string) {
	msg, err := s.store.AddMessage(r.Context(), sessionID, session.RoleAI, it.Text)
	if err != nil {
		s.internal(w, r, "store question", err)
		return
	}
	s.metrics.RecordQuestionServed(source)
	writeJSON(w, http.StatusOK, exchange.QuestionEnvelope{
		Question: &exchange.Question{
			Text:       it.Text,
			Category:   it.Category,
			Difficulty: it.Difficulty,
			HintPoints: it.HintPoints,
			Purpose:    it.Purpose,
		},
		MessageID: msg.ID,
	})
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req exchange.SubmitAnswerRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess, ok := s.activeSession(w, r, req.SessionID)
	if !ok {
		return
	}

	answer := s.plain(req.Answer)
	if answer == "" {
		writeError(w, http.StatusBadRequest, "invalid request: answer is empty")
		return
	}
	if _, err := s.store.AddMessage(r.Context(), sess.ID, session.RoleUser, answer); err != nil {
		s.internal(w, r, "store answer", err)
		return
	}
	s.metrics.RecordAnswerSubmitted()

	res := exchange.SubmitResult{Accepted: true}
	if sess.Kind == session.KindHR {
		res.Evaluation = hrEvaluation()
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) finalize(w http.ResponseWriter, r *http.Request) {
	var req exchange.SessionIDRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.store.CompleteSession(r.Context(), req.SessionID)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, reasonSessionNotFound)
		return
	}
	if err != nil {
		s.internal(w, r, "complete session", err)
		return
	}
	if f, ok := s.hr.(interface{ Forget(string) }); ok {
		f.Forget(req.SessionID)
	}
	s.logger.InfoContext(r.Context(), "session finalized", slog.String("session", req.SessionID))
	writeJSON(w, http.StatusOK, exchange.Ack{Accepted: true})
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	var req exchange.SessionIDRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess, err := s.store.GetSession(r.Context(), req.SessionID)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, reasonSessionNotFound)
		return
	}
	if err != nil {
		s.internal(w, r, "get session", err)
		return
	}
	sum, err := s.store.Summarize(r.Context(), sess.ID)
	if err != nil {
		s.internal(w, r, "summarize session", err)
		return
	}
	msgs, err := s.store.Messages(r.Context(), sess.ID)
	if err != nil {
		s.internal(w, r, "list messages", err)
		return
	}

	transcript := make([]exchange.TranscriptEntry, 0, len(msgs))
	for _, m := range msgs {
		transcript = append(transcript, exchange.TranscriptEntry{Role: m.Role, Content: m.Content, Timestamp: m.Timestamp})
	}
	sessionType := "technical_interview"
	if sess.Kind == session.KindHR {
		sessionType = "hr_interview"
	}
	writeJSON(w, http.StatusOK, exchange.Report{
		SessionID:      sess.ID,
		SessionType:    sessionType,
		Difficulty:     sess.Difficulty,
		QuestionsAsked: sum.QuestionsAsked,
		AnswersGiven:   sum.AnswersGiven,
		CompletionRate: sum.CompletionRate(),
		Status:         sess.Status,
		Transcript:     transcript,
	})
}

// activeSession loads a session that can still take questions and answers.
// On failure it has already written the response.
func (s *Server) activeSession(w http.ResponseWriter, r *http.Request, id string) (*session.Session, bool) {
	sess, err := s.store.GetSession(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, reasonSessionNotFound)
		return nil, false
	}
	if err != nil {
		s.internal(w, r, "get session", err)
		return nil, false
	}
	if sess.Status == session.StatusCompleted {
		writeError(w, http.StatusConflict, reasonSessionCompleted)
		return nil, false
	}
	return sess, true
}

// plain strips markup from user text and keeps it readable.
func (s *Server) plain(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

func pick(pool []questions.Item, asked int) questions.Item {
	return pool[asked%len(pool)]
}

func toResume(r *session.Resume) exchange.Resume {
	return exchange.Resume{
		ResumeID:       r.ID,
		UserID:         r.UserID,
		JobRole:        r.JobRole,
		JobDescription: r.JobDescription,
	}
}
