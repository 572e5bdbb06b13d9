// Package report renders finished interview sessions for the terminal and
// for the saved report files under .mockround/reports/.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/log"
)

// Summary is a backend report plus what the local event log knows about the
// same session.
type Summary struct {
	exchange.Report
	Duration   time.Duration
	Served     int
	Unanswered int
	Fallbacks  int
	Outcome    string
}

// Build joins a backend report with the session's local events. Missing or
// partial events leave the derived fields zero.
func Build(r exchange.Report, events []log.LogEvent) Summary {
	s := Summary{Report: r}
	if len(events) == 0 {
		return s
	}
	s.Duration = computeDuration(events)
	answered := 0
	for _, e := range events {
		switch e.Event {
		case log.EventFallbackQuestion:
			s.Fallbacks++
			s.Served++
		case log.EventQuestionServed:
			s.Served++
		case log.EventAnswerSubmitted:
			answered++
		case log.EventSessionCompleted:
			s.Outcome = "completed"
		case log.EventTimerExpired:
			s.Outcome = "time ran out"
		case log.EventSessionErrored:
			s.Outcome = "failed"
		}
	}
	if s.Served > answered {
		s.Unanswered = s.Served - answered
	}
	return s
}

// FormatReport produces a terminal-friendly summary with the transcript.
func FormatReport(s Summary) string {
	var b strings.Builder

	kind := "Technical interview"
	if s.SessionType == "hr_interview" {
		kind = "HR interview"
	}
	fmt.Fprintf(&b, "%s %s\n", kind, s.SessionID)
	fmt.Fprintf(&b, "Difficulty: %s\n", s.Difficulty)
	fmt.Fprintf(&b, "Status:     %s\n", s.Status)
	if s.Outcome != "" {
		fmt.Fprintf(&b, "Outcome:    %s\n", s.Outcome)
	}
	fmt.Fprintf(&b, "Questions:  %d asked, %d answered (%.2f%%)\n", s.QuestionsAsked, s.AnswersGiven, s.CompletionRate)
	if s.Unanswered > 0 {
		fmt.Fprintf(&b, "Unanswered: %d of %d served\n", s.Unanswered, s.Served)
	}
	if s.Fallbacks > 0 {
		fmt.Fprintf(&b, "Offline:    %d questions served locally\n", s.Fallbacks)
	}
	if s.Duration > 0 {
		fmt.Fprintf(&b, "Duration:   %s\n", formatDuration(s.Duration))
	}

	if len(s.Transcript) == 0 {
		return b.String()
	}
	b.WriteString("\n")
	for _, e := range s.Transcript {
		who := "Q"
		if e.Role == "user" {
			who = "A"
		}
		fmt.Fprintf(&b, "%s: %s\n", who, e.Content)
		if who == "A" {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// WriteReport writes the formatted summary to
// {dir}/.mockround/reports/{session}.md and returns the path.
func WriteReport(dir string, s Summary) (string, error) {
	if s.SessionID == "" {
		return "", fmt.Errorf("writing report: missing session id")
	}
	reportsDir := filepath.Join(dir, ".mockround", "reports")
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}

	path := filepath.Join(reportsDir, s.SessionID+".md")
	if err := os.WriteFile(path, []byte(FormatReport(s)), 0644); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}
	return path, nil
}

// computeDuration measures from the first session_started or session_created
// event to the terminal event, falling back to the last event seen. Events
// filtered by session id start at session_created, since session_started is
// written before the backend assigns an id.
func computeDuration(events []log.LogEvent) time.Duration {
	var start, end time.Time
	for _, e := range events {
		if start.IsZero() && (e.Event == log.EventSessionStarted || e.Event == log.EventSessionCreated) {
			start = e.Time
		}
		if !e.Time.IsZero() {
			end = e.Time
		}
		if e.Event == log.EventSessionCompleted || e.Event == log.EventTimerExpired || e.Event == log.EventSessionErrored {
			break
		}
	}
	if start.IsZero() || end.IsZero() {
		return 0
	}
	if d := end.Sub(start); d > 0 {
		return d
	}
	return 0
}

// formatDuration renders durations like "5m 32s" or "1h 12m 5s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
