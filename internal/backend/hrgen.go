package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mockround/mockround/internal/llm"
	"github.com/mockround/mockround/internal/questions"
)

const maxResumeChars = 4000

// hrCacheTTL bounds how long a generated list is kept for a session that is
// never finalized.
const hrCacheTTL = 3 * time.Hour

// HRGenerator produces the HR question list for a session.
type HRGenerator interface {
	Questions(ctx context.Context, sessionID, resumeText, jobDescription string) ([]questions.Item, string)
}

// staticHR always serves the fixed fallback list.
type staticHR struct{}

func (staticHR) Questions(context.Context, string, string, string) ([]questions.Item, string) {
	return questions.HRFallback, SourceFallback
}

// GeminiHR asks Gemini for questions personalised to the resume and caches
// the list per session until Forget or hrCacheTTL. Any failure falls back to
// the fixed list.
type GeminiHR struct {
	client llm.Client
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	cache map[string]hrCacheEntry
}

type hrCacheEntry struct {
	items   []questions.Item
	expires time.Time
}

// NewGeminiHR wraps client. A nil client yields the fixed list only.
func NewGeminiHR(client llm.Client, logger *slog.Logger) HRGenerator {
	if client == nil {
		return staticHR{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GeminiHR{client: client, logger: logger, now: time.Now, cache: make(map[string]hrCacheEntry)}
}

type hrQuestionList struct {
	HRQuestions []struct {
		Question   string `json:"question"`
		Category   string `json:"category"`
		Purpose    string `json:"purpose"`
		Difficulty string `json:"difficulty"`
	} `json:"hr_questions"`
	FocusAreas []string `json:"focus_areas"`
}

// Questions returns the session's HR question list.
func (g *GeminiHR) Questions(ctx context.Context, sessionID, resumeText, jobDescription string) ([]questions.Item, string) {
	now := g.now()
	g.mu.Lock()
	g.evictLocked(now)
	cached, ok := g.cache[sessionID]
	g.mu.Unlock()
	if ok {
		return cached.items, SourceGemini
	}

	raw, err := g.client.GenerateJSON(ctx, hrPrompt(resumeText, jobDescription))
	if err != nil {
		g.logger.Warn("hr question generation failed", slog.String("error", err.Error()))
		return questions.HRFallback, SourceFallback
	}
	items, err := parseHRQuestions(raw)
	if err != nil {
		g.logger.Warn("hr question response unusable", slog.String("error", err.Error()))
		return questions.HRFallback, SourceFallback
	}

	g.mu.Lock()
	g.cache[sessionID] = hrCacheEntry{items: items, expires: now.Add(hrCacheTTL)}
	g.mu.Unlock()
	return items, SourceGemini
}

// Cached returns the number of sessions holding a generated list.
func (g *GeminiHR) Cached() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.cache)
}

func (g *GeminiHR) evictLocked(now time.Time) {
	for id, e := range g.cache {
		if now.After(e.expires) {
			delete(g.cache, id)
		}
	}
}

// Forget drops the cached list for a finished session.
func (g *GeminiHR) Forget(sessionID string) {
	g.mu.Lock()
	delete(g.cache, sessionID)
	g.mu.Unlock()
}

func parseHRQuestions(raw string) ([]questions.Item, error) {
	var list hrQuestionList
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &list); err != nil {
		return nil, fmt.Errorf("decode hr questions: %w", err)
	}
	var items []questions.Item
	for _, q := range list.HRQuestions {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}
		items = append(items, questions.Item{
			Text:       text,
			Category:   q.Category,
			Purpose:    q.Purpose,
			Difficulty: q.Difficulty,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no questions in response")
	}
	return items, nil
}

// truncateRunes cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func hrPrompt(resumeText, jobDescription string) string {
	resumeText = truncateRunes(resumeText, maxResumeChars)
	if strings.TrimSpace(jobDescription) == "" {
		jobDescription = "General professional role"
	}
	return fmt.Sprintf(`Analyze this resume and generate 8 personalized HR interview questions covering:
self-introduction and background, company knowledge and motivation, career goals,
behavioral and situational questions, and the achievements, extracurricular activities
and positions of responsibility the resume mentions.

RESUME TEXT:
%s

JOB DESCRIPTION:
%s

Return ONLY a JSON object with this structure:
{
  "hr_questions": [
    {
      "question": "the question text",
      "category": "introduction|company_knowledge|career_goals|behavioral|achievements|extracurricular",
      "purpose": "brief explanation of what this question assesses",
      "difficulty": "easy|medium|hard"
    }
  ],
  "focus_areas": ["area1", "area2", "area3"]
}`, resumeText, jobDescription)
}
