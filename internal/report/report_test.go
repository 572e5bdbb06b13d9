package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/log"
)

func sampleReport() exchange.Report {
	return exchange.Report{
		SessionID:      "s-1",
		SessionType:    "hr_interview",
		Difficulty:     "medium",
		QuestionsAsked: 3,
		AnswersGiven:   1,
		CompletionRate: 33.33,
		Status:         "completed",
		Transcript: []exchange.TranscriptEntry{
			{Role: "ai", Content: "Tell me about yourself."},
			{Role: "user", Content: "I build services."},
		},
	}
}

func TestBuildFromEvents(t *testing.T) {
	t0 := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	events := []log.LogEvent{
		{Time: t0, Event: log.EventSessionStarted},
		{Time: t0.Add(time.Second), Event: log.EventQuestionServed, Ordinal: 1},
		{Time: t0.Add(time.Minute), Event: log.EventAnswerSubmitted, Ordinal: 1},
		{Time: t0.Add(time.Minute), Event: log.EventFallbackQuestion, Ordinal: 2},
		{Time: t0.Add(2 * time.Minute), Event: log.EventQuestionServed, Ordinal: 3},
		{Time: t0.Add(5*time.Minute + 32*time.Second), Event: log.EventTimerExpired},
		{Time: t0.Add(6 * time.Minute), Event: log.EventSessionTeardown},
	}

	s := Build(sampleReport(), events)
	assert.Equal(t, 3, s.Served)
	assert.Equal(t, 2, s.Unanswered)
	assert.Equal(t, 1, s.Fallbacks)
	assert.Equal(t, "time ran out", s.Outcome)
	assert.Equal(t, 5*time.Minute+32*time.Second, s.Duration)
}

func TestBuildWithoutEvents(t *testing.T) {
	s := Build(sampleReport(), nil)
	assert.Zero(t, s.Duration)
	assert.Empty(t, s.Outcome)

	out := FormatReport(s)
	assert.Contains(t, out, "HR interview s-1")
	assert.Contains(t, out, "3 asked, 1 answered (33.33%)")
	assert.Contains(t, out, "Q: Tell me about yourself.")
	assert.Contains(t, out, "A: I build services.")
	assert.NotContains(t, out, "Duration:")
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteReport(dir, Build(sampleReport(), nil))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".mockround", "reports", "s-1.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Status:     completed")

	_, err = WriteReport(dir, Summary{})
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "< 1s"},
		{42 * time.Second, "42s"},
		{5*time.Minute + 32*time.Second, "5m 32s"},
		{time.Hour + 12*time.Minute + 5*time.Second, "1h 12m 5s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}
