package gateway

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

	"doc-research-fe/internal/dto"
	"doc-research-fe/internal/pkg/logger"
)

// Every backend failure surfaces as one of these. Controllers map them to
// user-facing messages; anything wrapped in ErrUnknown is also logged.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUnauthorized       = errors.New("token rejected")
	ErrConnection         = errors.New("could not connect to backend")
	ErrUnknown            = errors.New("unknown error")
)

// Backend is everything the services need from the document service.
type Backend interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) error
	ListDocuments(ctx context.Context, token string) ([]dto.Document, error)
	GenerateSummary(ctx context.Context, token, documentId string) (string, error)
	InitializeEmbeddings(ctx context.Context, token, documentId string) error
	AskQuestion(ctx context.Context, token, documentId, query string) (string, error)
	GenerateReport(ctx context.Context, token, documentId, query string) (string, error)
	SaveSessionHistory(ctx context.Context, token, documentId string, history []dto.ChatMessage) error
	SaveResearchNote(ctx context.Context, token, documentId, note string) error
	FetchResearchNotes(ctx context.Context, token, documentId string) ([]string, error)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client

	loginRetries   int
	loginRetryWait time.Duration

	log logger.ILogger
}

var _ Backend = &Client{}

type Option func(*Client)

// WithLoginRetry overrides the login retry policy. Only the login call is
// ever retried; everything else fails fast.
func WithLoginRetry(attempts int, wait time.Duration) Option {
	return func(c *Client) {
		c.loginRetries = attempts
		c.loginRetryWait = wait
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.HTTP = h }
}

func NewClient(baseURL string, log logger.ILogger, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 60 * time.Second,
		},
		loginRetries:   5,
		loginRetryWait: 5 * time.Second,
		log:            log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// postJSON sends a JSON body and returns status plus raw response bytes.
// A transport-level failure comes back wrapped in ErrConnection.
func (c *Client) postJSON(ctx context.Context, path, token string, payload interface{}) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req, token)
	return c.send(req)
}

func (c *Client) get(ctx context.Context, path, token string, query url.Values) (int, []byte, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	c.setAuth(req, token)
	return c.send(req)
}

func (c *Client) setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) send(req *http.Request) (int, []byte, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return resp.StatusCode, body, nil
}

// detail extracts the backend's error envelope, falling back to a stub.
func detail(body []byte) string {
	var d dto.ErrorDetail
	if err := json.Unmarshal(body, &d); err == nil && d.Detail != "" {
		return d.Detail
	}
	return "unknown error"
}

// unknown logs and wraps an unexpected status or parse failure.
func (c *Client) unknown(op string, status int, body []byte) error {
	c.log.Error("gateway", "unexpected backend response", map[string]interface{}{
		"operation": op,
		"status":    status,
		"detail":    detail(body),
	})
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, op)
	}
	return fmt.Errorf("%w: %s returned status %d", ErrUnknown, op, status)
}
