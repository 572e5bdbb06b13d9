// Package session provides SQLite-backed persistence for the reference
// backend: resumes, interview sessions and their message transcripts.
package session

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("not found")

// Session statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Session kinds.
const (
	KindTechnical = "technical"
	KindHR        = "hr"
)

// Message roles.
const (
	RoleAI   = "ai"
	RoleUser = "user"
)

// Resume is uploaded profile text.
type Resume struct {
	ID             string
	UserID         string
	JobRole        string
	JobDescription string
	RawText        string
	UploadedAt     time.Time
}

// Session is one interview attempt.
type Session struct {
	ID              string
	UserID          string
	ResumeID        string
	Kind            string
	Difficulty      string
	DurationSeconds int
	Topics          []string
	JobDescription  string
	Status          string
	StartTime       time.Time
	EndTime         *time.Time
}

// Message is one question or answer within a session.
type Message struct {
	ID        string
	SessionID string
	Role      string
	Content   string
	Timestamp time.Time
}

// Summary counts the messages of a session.
type Summary struct {
	QuestionsAsked int
	AnswersGiven   int
}

// CompletionRate is answers over questions as a percentage rounded to two
// decimals, or 0 when nothing was asked.
func (s Summary) CompletionRate() float64 {
	if s.QuestionsAsked == 0 {
		return 0
	}
	rate := float64(s.AnswersGiven) / float64(s.QuestionsAsked) * 100
	return float64(int64(rate*100+0.5)) / 100
}
