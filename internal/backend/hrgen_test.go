package backend

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockround/mockround/internal/questions"
)

func TestParseHRQuestionsSkipsBlank(t *testing.T) {
	items, err := parseHRQuestions(`{"hr_questions":[{"question":"  "},{"question":"Why us?","purpose":"motivation"}]}`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Why us?", items[0].Text)
	assert.Equal(t, "motivation", items[0].Purpose)

	_, err = parseHRQuestions(`{"hr_questions":[]}`)
	assert.Error(t, err)
	_, err = parseHRQuestions(`not json`)
	assert.Error(t, err)
}

func TestGeminiHRCachesAndForgets(t *testing.T) {
	llm := &fakeLLM{reply: `{"hr_questions":[{"question":"Q1"}]}`}
	g := NewGeminiHR(llm, nil).(*GeminiHR)

	items, src := g.Questions(context.Background(), "s1", "resume", "")
	assert.Equal(t, SourceGemini, src)
	require.Len(t, items, 1)
	g.Questions(context.Background(), "s1", "resume", "")
	assert.Equal(t, 1, llm.Calls())

	g.Forget("s1")
	g.Questions(context.Background(), "s1", "resume", "")
	assert.Equal(t, 2, llm.Calls())
}

func TestNilClientServesFixedList(t *testing.T) {
	items, src := NewGeminiHR(nil, nil).Questions(context.Background(), "s", "", "")
	assert.Equal(t, SourceFallback, src)
	assert.Equal(t, questions.HRFallback, items)
}

func TestHRPromptTruncatesResume(t *testing.T) {
	p := hrPrompt(strings.Repeat("x", maxResumeChars+100), "")
	assert.NotContains(t, p, strings.Repeat("x", maxResumeChars+1))
	assert.Contains(t, p, "General professional role")
}

func TestTruncateRunesKeepsValidUTF8(t *testing.T) {
	for _, s := range []string{
		strings.Repeat("é", maxResumeChars),
		strings.Repeat("日本", maxResumeChars),
		"x" + strings.Repeat("🙂", maxResumeChars),
	} {
		got := truncateRunes(s, maxResumeChars)
		assert.True(t, utf8.ValidString(got))
		assert.LessOrEqual(t, len(got), maxResumeChars)
		assert.Greater(t, len(got), maxResumeChars-utf8.UTFMax)
	}
	assert.Equal(t, "short", truncateRunes("short", maxResumeChars))

	p := hrPrompt(strings.Repeat("é", maxResumeChars), "")
	assert.True(t, utf8.ValidString(p))
}

func TestGeminiHREvictsExpiredSessions(t *testing.T) {
	llm := &fakeLLM{reply: `{"hr_questions":[{"question":"Q1"}]}`}
	g := NewGeminiHR(llm, nil).(*GeminiHR)
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }

	g.Questions(context.Background(), "abandoned", "resume", "")
	g.Questions(context.Background(), "s2", "resume", "")
	assert.Equal(t, 2, g.Cached())

	now = now.Add(hrCacheTTL + time.Minute)
	g.Questions(context.Background(), "s3", "resume", "")
	assert.Equal(t, 1, g.Cached(), "expired sessions are dropped")
	assert.Equal(t, 3, llm.Calls())

	g.Questions(context.Background(), "abandoned", "resume", "")
	assert.Equal(t, 4, llm.Calls(), "an expired session regenerates")
}
