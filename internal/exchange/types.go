// Package exchange is the request/response boundary with the question
// generation service. The wire types here are shared with the reference
// backend so both sides agree on one contract.
package exchange

import (
	"fmt"
	"strings"
	"time"
)

// Level is the interview difficulty.
type Level string

// Difficulty levels.
const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
)

// ParseLevel converts user input into a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelEasy:
		return LevelEasy, nil
	case LevelMedium:
		return LevelMedium, nil
	case LevelHard:
		return LevelHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
	}
}

// Question is one served prompt. Number and MessageID are filled in from the
// surrounding envelope and the session, not from the question object itself.
type Question struct {
	Text       string   `json:"text" validate:"required"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty,omitempty"`
	HintPoints []string `json:"hintPoints,omitempty"`
	Purpose    string   `json:"purpose,omitempty"`

	Number    int    `json:"-"`
	MessageID string `json:"-"`
}

// Evaluation is the optional scoring attached to an HR answer.
type Evaluation struct {
	RelevanceScore     int      `json:"relevanceScore"`
	CommunicationScore int      `json:"communicationScore"`
	KeyStrengths       []string `json:"keyStrengths,omitempty"`
	ImprovementAreas   []string `json:"improvementAreas,omitempty"`
	Feedback           string   `json:"feedback"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Reason string `json:"reason"`
}

// CreateSessionRequest creates a technical session.
type CreateSessionRequest struct {
	UserID     string   `json:"userId" validate:"required"`
	Difficulty Level    `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Duration   int      `json:"duration" validate:"gt=0"`
	Topics     []string `json:"topics"`
}

// CreateHRSessionRequest creates an HR session.
type CreateHRSessionRequest struct {
	UserID         string `json:"userId" validate:"required"`
	ResumeID       string `json:"resumeId" validate:"required"`
	JobDescription string `json:"jobDescription"`
}

// SessionRef identifies a created session.
type SessionRef struct {
	SessionID string `json:"sessionId" validate:"required"`
	ResumeID  string `json:"resumeId"`
}

// GenerateQuestionRequest asks for the next technical question.
type GenerateQuestionRequest struct {
	SessionID         string   `json:"sessionId" validate:"required"`
	ResumeID          string   `json:"resumeId"`
	PreviousQuestions []string `json:"previousQuestions"`
	CurrentTopic      string   `json:"currentTopic"`
}

// GenerateHRQuestionRequest asks for the next HR question.
type GenerateHRQuestionRequest struct {
	SessionID         string   `json:"sessionId" validate:"required"`
	ResumeID          string   `json:"resumeId" validate:"required"`
	PreviousQuestions []string `json:"previousQuestions"`
}

// QuestionEnvelope is the success body of both question endpoints.
type QuestionEnvelope struct {
	Question  *Question `json:"question" validate:"required"`
	MessageID string    `json:"messageId"`
}

// SubmitAnswerRequest submits the answer to the displayed question.
type SubmitAnswerRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Question  string `json:"question" validate:"required"`
	Answer    string `json:"answer" validate:"required"`
	MessageID string `json:"messageId,omitempty"`
}

// SubmitResult is the success body of the submit endpoint.
type SubmitResult struct {
	Accepted   bool        `json:"accepted"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

// SessionIDRequest is the body of finalize and report calls.
type SessionIDRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// Ack is the body of finalize.
type Ack struct {
	Accepted bool `json:"accepted"`
}

// TranscriptEntry is one question/answer pair in a report.
type TranscriptEntry struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Report summarises a finished session.
type Report struct {
	SessionID      string            `json:"sessionId" validate:"required"`
	SessionType    string            `json:"sessionType"`
	Difficulty     string            `json:"difficulty"`
	QuestionsAsked int               `json:"questionsAsked"`
	AnswersGiven   int               `json:"answersGiven"`
	CompletionRate float64           `json:"completionRate"`
	Status         string            `json:"status"`
	Transcript     []TranscriptEntry `json:"transcript"`
}

// Resume is the profile reference consumed when creating sessions.
type Resume struct {
	ResumeID       string `json:"resumeId" validate:"required"`
	UserID         string `json:"userId"`
	JobRole        string `json:"jobRole,omitempty"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// UploadResumeRequest stores resume text for a user.
type UploadResumeRequest struct {
	UserID         string `json:"userId" validate:"required"`
	JobRole        string `json:"jobRole"`
	JobDescription string `json:"jobDescription"`
	RawText        string `json:"rawText" validate:"required"`
}

// ATSRequest asks for a resume to be scored against a job description. An
// empty JobDescription uses the one stored with the resume.
type ATSRequest struct {
	ResumeID       string `json:"resumeId" validate:"required"`
	JobDescription string `json:"jobDescription"`
}

// ATSReport is an applicant-tracking style match of a resume to a job.
type ATSReport struct {
	ResumeID        string   `json:"resumeId"`
	MatchScore      int      `json:"matchScore" validate:"gte=0,lte=100"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`
	Source          string   `json:"source,omitempty"`
}
