// Package api is the HTTP client of the remote notes API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cristianoliveira/notes-dash/internal/auth"
	"github.com/cristianoliveira/notes-dash/internal/logging"
	"github.com/cristianoliveira/notes-dash/internal/note"
	"github.com/cristianoliveira/notes-dash/internal/version"
	"github.com/google/uuid"
)

// DefaultTimeout bounds every request unless overridden.
const DefaultTimeout = 10 * time.Second

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// ErrNotFound matches a 404 response.
var ErrNotFound = errors.New("api: not found")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the server's error text, when it sent one.
	Message   string
	RequestID string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// Is lets errors.Is match StatusError against ErrNotFound and auth.ErrUnauthorized.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case auth.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// Client calls the notes API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     logging.Logger
	requestID  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends token as a bearer credential.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		requestID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.With("component", "api")
	}
	return c
}

type noteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ListNotes returns the caller's notes, most recent first.
func (c *Client) ListNotes(ctx context.Context) ([]note.Note, error) {
	var notes []note.Note
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []note.Note{}
	}
	return notes, nil
}

// CreateNote creates a note; the server assigns its id.
func (c *Client) CreateNote(ctx context.Context, title, body string) (note.Note, error) {
	var created note.Note
	err := c.do(ctx, http.MethodPost, "/api/notes", noteRequest{Title: title, Body: body}, &created)
	return created, err
}

// UpdateNote replaces the title and body of note id.
func (c *Client) UpdateNote(ctx context.Context, id note.ID, title, body string) (note.Note, error) {
	var updated note.Note
	err := c.do(ctx, http.MethodPut, notePath(id), noteRequest{Title: title, Body: body}, &updated)
	return updated, err
}

// DeleteNote deletes note id.
func (c *Client) DeleteNote(ctx context.Context, id note.ID) error {
	return c.do(ctx, http.MethodDelete, notePath(id), nil, nil)
}

// CurrentUser returns the identity the token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (auth.User, error) {
	var user auth.User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user)
	return user, err
}

func notePath(id note.ID) string {
	return "/api/notes/" + url.PathEscape(id.String())
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	reqID := c.requestID()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("request done", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", reqID, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
			RequestID:  reqID,
		}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage reads {"error": "..."} or falls back to the raw body.
func errorMessage(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 4096))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(data))
}
