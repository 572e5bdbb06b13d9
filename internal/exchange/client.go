package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const maxResponseBytes = 1 << 20

// Client talks to the question generation service over HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	validate   *validator.Validate
}

// NewClient creates a client rooted at baseURL. A nil httpClient gets a
// 30 second timeout; a nil logger discards output.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		validate:   validator.New(),
	}
}

// CreateSession creates a technical session.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (SessionRef, error) {
	if req.Topics == nil {
		req.Topics = []string{}
	}
	var ref SessionRef
	err := c.do(ctx, "create session", http.MethodPost, "/interview/sessions", nil, req, &ref)
	return ref, err
}

// CreateHRSession creates an HR session bound to a resume.
func (c *Client) CreateHRSession(ctx context.Context, req CreateHRSessionRequest) (SessionRef, error) {
	var ref SessionRef
	err := c.do(ctx, "create hr session", http.MethodPost, "/hr-interview/sessions", nil, req, &ref)
	return ref, err
}

// GenerateQuestion asks for the next technical question.
func (c *Client) GenerateQuestion(ctx context.Context, req GenerateQuestionRequest) (Question, error) {
	if req.PreviousQuestions == nil {
		req.PreviousQuestions = []string{}
	}
	return c.question(ctx, "generate question", "/interview/questions", req)
}

// GenerateHRQuestion asks for the next HR question.
func (c *Client) GenerateHRQuestion(ctx context.Context, req GenerateHRQuestionRequest) (Question, error) {
	if req.PreviousQuestions == nil {
		req.PreviousQuestions = []string{}
	}
	return c.question(ctx, "generate hr question", "/hr-interview/questions", req)
}

func (c *Client) question(ctx context.Context, op, path string, body any) (Question, error) {
	var env QuestionEnvelope
	if err := c.do(ctx, op, http.MethodPost, path, nil, body, &env); err != nil {
		return Question{}, err
	}
	q := *env.Question
	q.MessageID = env.MessageID
	return q, nil
}

// SubmitAnswer submits the answer to the displayed question.
func (c *Client) SubmitAnswer(ctx context.Context, req SubmitAnswerRequest) (SubmitResult, error) {
	var res SubmitResult
	err := c.do(ctx, "submit answer", http.MethodPost, "/interview/answers", nil, req, &res)
	return res, err
}

// FinalizeSession marks a session completed on the service.
func (c *Client) FinalizeSession(ctx context.Context, sessionID string) error {
	var ack Ack
	return c.do(ctx, "finalize session", http.MethodPost, "/interview/finalize", nil, SessionIDRequest{SessionID: sessionID}, &ack)
}

// FetchReport retrieves the summary of a session.
func (c *Client) FetchReport(ctx context.Context, sessionID string) (Report, error) {
	var rep Report
	err := c.do(ctx, "fetch report", http.MethodPost, "/interview/report", nil, SessionIDRequest{SessionID: sessionID}, &rep)
	return rep, err
}

// LatestResume returns the most recent resume on file for userID. A missing
// resume matches ErrNoResume.
func (c *Client) LatestResume(ctx context.Context, userID string) (Resume, error) {
	var r Resume
	q := url.Values{"userId": []string{userID}}
	err := c.do(ctx, "fetch resume", http.MethodGet, "/resumes/latest", q, nil, &r)
	return r, err
}

// UploadResume stores resume text and returns the created reference.
func (c *Client) UploadResume(ctx context.Context, req UploadResumeRequest) (Resume, error) {
	var r Resume
	err := c.do(ctx, "upload resume", http.MethodPost, "/resumes", nil, req, &r)
	return r, err
}

// ATSReport scores a stored resume against a job description.
func (c *Client) ATSReport(ctx context.Context, req ATSRequest) (ATSReport, error) {
	var rep ATSReport
	err := c.do(ctx, "ats report", http.MethodPost, "/resumes/ats", nil, req, &rep)
	return rep, err
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Kind: KindMalformed, Reason: "could not encode request", Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Reason: "could not build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("exchange call failed",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return &Error{Op: op, Kind: KindTransport, Reason: transportReason(ctx, err), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Status: resp.StatusCode, Reason: "could not read response", Err: err}
	}

	c.logger.Debug("exchange call",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var er ErrorResponse
		reason := http.StatusText(resp.StatusCode)
		if json.Unmarshal(data, &er) == nil && er.Reason != "" {
			reason = er.Reason
		}
		c.logger.Info("exchange call rejected",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
			slog.String("reason", reason),
		)
		return &Error{Op: op, Kind: KindDomain, Status: resp.StatusCode, Reason: reason}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Kind: KindMalformed, Status: resp.StatusCode, Reason: "unexpected response from server", Err: err}
	}
	if err := c.validate.Struct(out); err != nil {
		return &Error{Op: op, Kind: KindMalformed, Status: resp.StatusCode, Reason: "incomplete response from server", Err: err}
	}
	return nil
}

func transportReason(ctx context.Context, err error) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "request timed out"
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return "request cancelled"
	}
	return fmt.Sprintf("could not reach server: %v", unwrapURLError(err))
}

func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err
	}
	return err
}
