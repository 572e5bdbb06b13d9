package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/llm"
)

const maxATSItems = 5

// ATSAnalyzer scores a resume against a job description.
type ATSAnalyzer interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) exchange.ATSReport
}

// unavailableATS is served when no Gemini key is configured.
type unavailableATS struct{}

func (unavailableATS) Analyze(context.Context, string, string) exchange.ATSReport {
	return exchange.ATSReport{
		MissingKeywords: []string{"AI Service Unavailable"},
		Suggestions:     []string{"Set GEMINI_API_KEY on the server to enable resume analysis."},
		Source:          SourceFallback,
	}
}

// GeminiATS asks Gemini for the match. Failures produce a zero-score report
// naming the failure rather than an error.
type GeminiATS struct {
	client llm.Client
	logger *slog.Logger
}

// NewATS wraps client. A nil client yields the unavailable report only.
func NewATS(client llm.Client, logger *slog.Logger) ATSAnalyzer {
	if client == nil {
		return unavailableATS{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GeminiATS{client: client, logger: logger}
}

type atsResponse struct {
	MatchScore      *int     `json:"match_score"`
	MissingKeywords []string `json:"missing_keywords"`
	Suggestions     []string `json:"suggestions"`
}

// Analyze returns the report for one resume and job description.
func (g *GeminiATS) Analyze(ctx context.Context, resumeText, jobDescription string) exchange.ATSReport {
	raw, err := g.client.GenerateJSON(ctx, atsPrompt(resumeText, jobDescription))
	if err != nil {
		g.logger.Warn("ats analysis failed", slog.String("error", err.Error()))
		return exchange.ATSReport{
			MissingKeywords: []string{"AI Processing Failed"},
			Suggestions:     []string{"The model could not generate a report. Try again later."},
			Source:          SourceFallback,
		}
	}
	rep, err := parseATS(raw)
	if err != nil {
		g.logger.Warn("ats response unusable", slog.String("error", err.Error()))
		return exchange.ATSReport{
			MissingKeywords: []string{"Internal Analysis Error"},
			Suggestions:     []string{"The model returned a report the server could not read."},
			Source:          SourceFallback,
		}
	}
	rep.Source = SourceGemini
	return rep
}

func parseATS(raw string) (exchange.ATSReport, error) {
	var r atsResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &r); err != nil {
		return exchange.ATSReport{}, fmt.Errorf("decode ats report: %w", err)
	}
	if r.MatchScore == nil {
		return exchange.ATSReport{}, fmt.Errorf("ats report has no match_score")
	}
	score := min(max(*r.MatchScore, 0), 100)
	return exchange.ATSReport{
		MatchScore:      score,
		MissingKeywords: firstNonBlank(r.MissingKeywords, maxATSItems),
		Suggestions:     firstNonBlank(r.Suggestions, maxATSItems),
	}, nil
}

// firstNonBlank returns up to n trimmed, non-empty entries.
func firstNonBlank(items []string, n int) []string {
	out := []string{}
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

func atsPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an expert ATS (Applicant Tracking System) and career coach.
Analyze the RESUME against the JOB DESCRIPTION.

RESUME:
---
%s
---

JOB DESCRIPTION:
---
%s
---

Return ONLY a JSON object with this structure:
{
  "match_score": 0,
  "missing_keywords": ["keyword"],
  "suggestions": ["suggestion"]
}
match_score is an integer from 0 to 100. missing_keywords lists up to 5 critical skills from
the job description that are missing or underrepresented in the resume. suggestions lists up
to 5 actionable changes that close those gaps, favouring quantified achievements.`,
		truncateRunes(resumeText, maxResumeChars), truncateRunes(jobDescription, maxResumeChars))
}
