package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnauthorized is returned when the backend rejects the stored
// credential. The token has already been purged and the session-expired
// handler invoked by the time callers see this error.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a structured failure surfaced by the backend.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return e.Detail
}

// TokenStore persists the bearer token between sessions.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// Client talks to the RecipeRadar backend. It translates between the
// store's entity shapes (camelCase) and the backend's wire shapes
// (snake_case), attaches bearer authentication, and normalizes HTTP
// failures. It holds no entity state of its own.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenStore
	logger         *logrus.Logger
	sessionExpired func()
}

// NewClient creates a backend client rooted at baseURL.
func NewClient(baseURL string, tokens TokenStore, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
		logger:     logger,
	}
}

// OnSessionExpired registers the handler invoked whenever any call fails
// with 401. The token is purged before the handler runs, so every expired
// session anywhere produces one consistent sign-out transition.
func (c *Client) OnSessionExpired(fn func()) {
	c.sessionExpired = fn
}

// do performs one JSON request. A stored token is attached as a bearer
// Authorization header; absent tokens leave the header off. out may be
// nil for endpoints whose response body is discarded.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("failed to read stored token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.tokens.ClearToken(); err != nil {
			c.logger.Warnf("Failed to clear token after 401: %v", err)
		}
		if c.sessionExpired != nil {
			c.sessionExpired()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp, "Request failed")
	}

	if out == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorFromResponse extracts the backend's structured detail message,
// falling back to fallback when the body is not parseable.
func (c *Client) errorFromResponse(resp *http.Response, fallback string) error {
	apiErr := &Error{StatusCode: resp.StatusCode, Detail: fallback}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}
