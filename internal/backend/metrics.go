package backend

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Question sources recorded in metrics.
const (
	SourceBank     = "bank"
	SourceGemini   = "gemini"
	SourceFallback = "fallback"
	SourceCommon   = "common"
)

// Collector holds the backend's Prometheus metrics.
type Collector struct {
	sessionsCreated  *prometheus.CounterVec
	questionsServed  *prometheus.CounterVec
	answersSubmitted prometheus.Counter
	atsReports       *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sessionsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockround_sessions_created_total",
			Help: "Interview sessions created, by kind.",
		}, []string{"kind"}),
		questionsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockround_questions_served_total",
			Help: "Questions served, by source.",
		}, []string{"source"}),
		answersSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mockround_answers_submitted_total",
			Help: "Answers accepted.",
		}),
		atsReports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockround_ats_reports_total",
			Help: "ATS reports returned, by source.",
		}, []string{"source"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockround_http_requests_total",
			Help: "HTTP responses, by status code.",
		}, []string{"status"}),
	}

	reg.MustRegister(c.sessionsCreated, c.questionsServed, c.answersSubmitted, c.atsReports, c.httpRequests)
	return c
}

// RecordSessionCreated counts a new session of the given kind.
func (c *Collector) RecordSessionCreated(kind string) {
	c.sessionsCreated.WithLabelValues(kind).Inc()
}

// RecordQuestionServed counts a served question.
func (c *Collector) RecordQuestionServed(source string) {
	c.questionsServed.WithLabelValues(source).Inc()
}

// RecordAnswerSubmitted counts an accepted answer.
func (c *Collector) RecordAnswerSubmitted() {
	c.answersSubmitted.Inc()
}

// RecordATSReport counts an ATS report.
func (c *Collector) RecordATSReport(source string) {
	c.atsReports.WithLabelValues(source).Inc()
}

// RecordHTTPStatus counts one response.
func (c *Collector) RecordHTTPStatus(code int) {
	c.httpRequests.WithLabelValues(strconv.Itoa(code)).Inc()
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
