package backend

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseATSClampsAndCaps(t *testing.T) {
	rep, err := parseATS("```json\n" + `{"match_score": 140, "missing_keywords": ["Go", " ", "Kafka", "gRPC", "SQL", "K8s", "AWS"], "suggestions": ["Quantify impact"]}` + "\n```")
	require.NoError(t, err)
	assert.Equal(t, 100, rep.MatchScore)
	assert.Equal(t, []string{"Go", "Kafka", "gRPC", "SQL", "K8s"}, rep.MissingKeywords)
	assert.Equal(t, []string{"Quantify impact"}, rep.Suggestions)

	rep, err = parseATS(`{"match_score": -3}`)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.MatchScore)
	assert.NotNil(t, rep.MissingKeywords)
	assert.Empty(t, rep.Suggestions)

	_, err = parseATS(`{"missing_keywords": ["Go"]}`)
	assert.Error(t, err)
	_, err = parseATS(`not json`)
	assert.Error(t, err)
}

func TestGeminiATSReport(t *testing.T) {
	llm := &fakeLLM{reply: `{"match_score": 72, "missing_keywords": ["Kubernetes"], "suggestions": ["Mention on-call work"]}`}
	rep := NewATS(llm, nil).Analyze(context.Background(), "resume", "jd")
	assert.Equal(t, 72, rep.MatchScore)
	assert.Equal(t, []string{"Kubernetes"}, rep.MissingKeywords)
	assert.Equal(t, SourceGemini, rep.Source)
	assert.Equal(t, 1, llm.Calls())
}

func TestGeminiATSFailuresScoreZero(t *testing.T) {
	rep := NewATS(&fakeLLM{err: errors.New("quota")}, nil).Analyze(context.Background(), "resume", "jd")
	assert.Equal(t, 0, rep.MatchScore)
	assert.Equal(t, []string{"AI Processing Failed"}, rep.MissingKeywords)
	assert.Equal(t, SourceFallback, rep.Source)

	rep = NewATS(&fakeLLM{reply: "sorry"}, nil).Analyze(context.Background(), "resume", "jd")
	assert.Equal(t, 0, rep.MatchScore)
	assert.Equal(t, []string{"Internal Analysis Error"}, rep.MissingKeywords)
	assert.Equal(t, SourceFallback, rep.Source)
}

func TestNilClientATSUnavailable(t *testing.T) {
	rep := NewATS(nil, nil).Analyze(context.Background(), "resume", "jd")
	assert.Equal(t, 0, rep.MatchScore)
	assert.Equal(t, []string{"AI Service Unavailable"}, rep.MissingKeywords)
	assert.Equal(t, SourceFallback, rep.Source)
}

func TestATSPromptTruncatesBothInputs(t *testing.T) {
	p := atsPrompt(strings.Repeat("é", maxResumeChars), strings.Repeat("y", maxResumeChars+50))
	assert.True(t, utf8.ValidString(p))
	assert.NotContains(t, p, strings.Repeat("y", maxResumeChars+1))
}
