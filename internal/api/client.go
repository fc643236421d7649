// Package api is the HTTP client for the Fluentwave backend. It owns
// the wire formats, translates payloads into engine types, and wraps
// failures into the retryable/permanent taxonomy the screens act on.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/fluentwave/fluentwave/internal/progress"
	"github.com/fluentwave/fluentwave/internal/quiz"
)

// maxBodySize bounds response reads; quiz payloads are small.
const maxBodySize = 4 << 20

// Client talks to the Fluentwave backend.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	retry   RetryConfig
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRetryConfig overrides the submission retry policy.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// New creates a Client for the given base URL (no trailing slash).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		retry:   DefaultRetryConfig(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetToken attaches the bearer credential used on authorized requests.
func (c *Client) SetToken(token string) { c.token = token }

// Login exchanges credentials for a token and the learner profile.
func (c *Client) Login(ctx context.Context, email, password string) (string, *Profile, error) {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/api/users/login", body, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, &resp.Data, nil
}

// Register creates an account and logs it in, in one round trip.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, *Profile, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, "register", http.MethodPost, "/api/users/register", body, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, &resp.Data, nil
}

// FetchLessons returns every section with its lessons. Lesson sorting
// and unlock computation happen in the progress package; the wire
// order is passed through untouched.
func (c *Client) FetchLessons(ctx context.Context) ([]progress.Section, error) {
	var dtos []sectionDTO
	if err := c.do(ctx, "fetch lessons", http.MethodGet, "/api/lessons", nil, &dtos); err != nil {
		return nil, err
	}
	sections := make([]progress.Section, 0, len(dtos))
	for _, d := range dtos {
		sections = append(sections, d.toSection())
	}
	return sections, nil
}

// FetchProfile returns the learner's profile, including progress
// records and total XP. Requires a token.
func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	var env profileEnvelope
	if err := c.do(ctx, "fetch profile", http.MethodGet, "/api/users/profile", nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// FetchLeaderboard returns users ranked by total XP.
func (c *Client) FetchLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	var env leaderboardEnvelope
	if err := c.do(ctx, "fetch leaderboard", http.MethodGet, "/api/users/leaderboard", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// FetchQuiz returns the quiz definition for quizID. The payload is
// schema-validated before decoding; questions keep their served order
// (sequencing is the engine's job).
func (c *Client) FetchQuiz(ctx context.Context, quizID string) (*quiz.Quiz, error) {
	const op = "fetch quiz"
	raw, err := c.doRaw(ctx, op, http.MethodGet, "/api/quiz-completion/"+quizID, nil)
	if err != nil {
		return nil, err
	}
	if err := validateQuizPayload(raw); err != nil {
		return nil, &PayloadError{Op: op, Err: err}
	}

	var dto quizDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, &PayloadError{Op: op, Err: err}
	}
	q, err := dto.toQuiz()
	if err != nil {
		return nil, &PayloadError{Op: op, Err: err}
	}
	return q, nil
}

// SubmitCompletion sends a quiz completion record and returns the XP
// award. Transient failures are retried with backoff; the caller's
// submission journal guarantees at-most-once semantics per session, so
// retrying here cannot double-credit.
func (c *Client) SubmitCompletion(ctx context.Context, userID, quizID string, rec *quiz.CompletionRecord) (*CompletionResult, error) {
	body := submitRequest{
		UserID:         userID,
		LessonID:       rec.LessonID,
		Score:          rec.Score,
		TotalQuestions: rec.Total,
	}

	var result CompletionResult
	err := withRetry(ctx, c.retry, func(ctx context.Context) error {
		return c.do(ctx, "submit completion", http.MethodPost,
			"/api/quiz-completion/"+quizID+"/complete", body, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// do performs a request and decodes the 2xx response body into out.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	raw, err := c.doRaw(ctx, op, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &PayloadError{Op: op, Err: err}
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, op, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Op:         op,
			Code:       resp.StatusCode,
			Message:    errorMessage(raw),
			RetryAfter: retryAfter(resp),
		}
	}

	return raw, nil
}

// errorMessage pulls the backend's error string out of a failure body.
func errorMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
