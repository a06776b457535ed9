// Package mem0 talks to the Mem0 cloud memory platform and exposes it to the
// chat agent as a set of function tools.
package mem0

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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL = "https://api.mem0.ai"
	DefaultTimeout = 60 * time.Second

	memoriesPath = "/v1/memories/"
	searchPath   = "/v1/memories/search/"
)

var ErrMissingAPIKey = errors.New("mem0 api key is empty")

// APIError is returned when Mem0 answers with a non-2xx status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mem0 request failed with status %d: %s", e.StatusCode, e.Body)
}

// Scope identifies whose memories an operation touches
type Scope struct {
	AgentID string
	UserID  string
}

func (s Scope) query() url.Values {
	q := url.Values{}
	if s.AgentID != "" {
		q.Set("agent_id", s.AgentID)
	}
	if s.UserID != "" {
		q.Set("user_id", s.UserID)
	}
	return q
}

// ClientConfig configures a Client. Zero values select the defaults
type ClientConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is a minimal Mem0 platform REST client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a Mem0 client
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid mem0 base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log.With().Str("component", "mem0").Logger(),
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type addRequest struct {
	Messages []message      `json:"messages"`
	AgentID  string         `json:"agent_id,omitempty"`
	UserID   string         `json:"user_id,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type searchRequest struct {
	Query   string `json:"query"`
	AgentID string `json:"agent_id,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// Add stores content as a user message in the scope
func (c *Client) Add(ctx context.Context, content string, scope Scope, metadata map[string]any) (any, error) {
	body := addRequest{
		Messages: []message{{Role: "user", Content: content}},
		AgentID:  scope.AgentID,
		UserID:   scope.UserID,
		Metadata: metadata,
	}
	return c.do(ctx, http.MethodPost, memoriesPath, nil, body)
}

// GetAll lists every memory in the scope
func (c *Client) GetAll(ctx context.Context, scope Scope) (any, error) {
	return c.do(ctx, http.MethodGet, memoriesPath, scope.query(), nil)
}

// Search runs a semantic search over the memories in the scope. A limit <= 0 uses the service default
func (c *Client) Search(ctx context.Context, query string, scope Scope, limit int) (any, error) {
	body := searchRequest{
		Query:   query,
		AgentID: scope.AgentID,
		UserID:  scope.UserID,
		Limit:   limit,
	}
	return c.do(ctx, http.MethodPost, searchPath, nil, body)
}

// DeleteAll removes every memory in the scope
func (c *Client) DeleteAll(ctx context.Context, scope Scope) (any, error) {
	return c.do(ctx, http.MethodDelete, memoriesPath, scope.query(), nil)
}

// do sends one request and decodes the JSON answer without imposing a shape on it
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (any, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mem0 request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("mem0 request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return result, nil
}
