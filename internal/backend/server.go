// Package backend is the reference question service served by
// `mockround serve`. It implements the HTTP/JSON contract of package
// exchange on top of the SQLite store.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/session"
)

const maxBodyBytes = 1 << 20

// Store is the persistence the server needs.
type Store interface {
	CreateResume(ctx context.Context, userID, jobRole, jobDescription, rawText string) (*session.Resume, error)
	GetResume(ctx context.Context, id string) (*session.Resume, error)
	LatestResume(ctx context.Context, userID string) (*session.Resume, error)
	CreateSession(ctx context.Context, sess *session.Session) error
	GetSession(ctx context.Context, id string) (*session.Session, error)
	CompleteSession(ctx context.Context, id string) error
	AddMessage(ctx context.Context, sessionID, role, content string) (*session.Message, error)
	Messages(ctx context.Context, sessionID string) ([]session.Message, error)
	Summarize(ctx context.Context, sessionID string) (session.Summary, error)
	Ping(ctx context.Context) error
}

// Deps are the server's collaborators. Only Store is required.
type Deps struct {
	Store       Store
	HR          HRGenerator
	ATS         ATSAnalyzer
	Metrics     *Collector
	Gatherer    prometheus.Gatherer
	RateLimiter *RateLimiter
	Logger      *slog.Logger
}

// Server handles the question service API.
type Server struct {
	store    Store
	hr       HRGenerator
	ats      ATSAnalyzer
	metrics  *Collector
	gatherer prometheus.Gatherer
	limiter  *RateLimiter
	logger   *slog.Logger
	validate *validator.Validate
	policy   *bluemonday.Policy
}

// NewServer builds a Server. A missing metrics collector gets its own registry.
func NewServer(d Deps) *Server {
	s := &Server{
		store:    d.Store,
		hr:       d.HR,
		ats:      d.ATS,
		metrics:  d.Metrics,
		gatherer: d.Gatherer,
		limiter:  d.RateLimiter,
		logger:   d.Logger,
		validate: validator.New(),
		policy:   bluemonday.StrictPolicy(),
	}
	if s.hr == nil {
		s.hr = staticHR{}
	}
	if s.ats == nil {
		s.ats = unavailableATS{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		reg := prometheus.NewRegistry()
		s.metrics = NewCollector(reg)
		s.gatherer = reg
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	s.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return s
}

// Handler returns the router with its middleware stack:
//
//	RequestID → Recoverer → requestLogger → rate limit → routes
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(s.logger, s.metrics))

	r.Get("/healthz", s.health)
	r.Handle("/metrics", MetricsHandler(s.gatherer))

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Middleware)
		}

		r.Post("/resumes", s.uploadResume)
		r.Get("/resumes/latest", s.latestResume)
		r.Post("/resumes/ats", s.atsReport)

		r.Route("/interview", func(r chi.Router) {
			r.Post("/sessions", s.createSession)
			r.Post("/questions", s.generateQuestion)
			r.Post("/answers", s.submitAnswer)
			r.Post("/finalize", s.finalize)
			r.Post("/report", s.report)
		})

		r.Route("/hr-interview", func(r chi.Router) {
			r.Post("/sessions", s.createHRSession)
			r.Post("/questions", s.generateHRQuestion)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a JSON body into dst and validates it. On failure it has
// already written the 400 response.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationReason(err))
		return false
	}
	return true
}

func (s *Server) internal(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.ErrorContext(r.Context(), op+" failed", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func validationReason(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "invalid request"
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return "invalid request: " + strings.Join(parts, ", ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, exchange.ErrorResponse{Reason: reason})
}
