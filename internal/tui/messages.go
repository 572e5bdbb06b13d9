package tui

import (
	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/interview"
	"github.com/mockround/mockround/internal/nav"
)

// ============================================================================
// Navigation Messages
// ============================================================================

// GoHomeMsg returns to the home page, abandoning any running session.
type GoHomeMsg struct{}

// NavigateMsg moves to an arbitrary page.
type NavigateMsg struct {
	Page    nav.Page
	Payload any
}

// StartInterviewMsg is sent when the setup form is submitted.
type StartInterviewMsg struct {
	Config interview.Config
}

// ============================================================================
// Interview Messages
// ============================================================================

// SubmitAnswerMsg asks to submit the typed answer.
type SubmitAnswerMsg struct {
	Text string
}

// SkipQuestionMsg asks for the next question without answering.
type SkipQuestionMsg struct{}

// ============================================================================
// Backend Results
// ============================================================================

// ReportLoadedMsg carries a fetched session report.
type ReportLoadedMsg struct {
	SessionID string
	Report    exchange.Report
	Err       error
}

// UploadResumeMsg asks to upload the resume at Path.
type UploadResumeMsg struct {
	Path           string
	JobRole        string
	JobDescription string
}

// ResumeUploadedMsg reports the result of a resume upload.
type ResumeUploadedMsg struct {
	Resume exchange.Resume
	Err    error
}

// ResumeStatusMsg reports whether the user already has a resume on file.
type ResumeStatusMsg struct {
	Resume *exchange.Resume
	Err    error
}

// ============================================================================
// UI Control Messages
// ============================================================================

// NotificationChangedMsg is delivered whenever the notification slot
// changes, including when a notification expires on its own.
type NotificationChangedMsg struct{}

// CtrlCResetMsg resets the Ctrl+C confirmation state after timeout.
type CtrlCResetMsg struct{}

// EscResetMsg resets the Esc confirmation state after timeout.
type EscResetMsg struct{}
