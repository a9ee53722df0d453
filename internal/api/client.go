// Package api is the REST client for the hospital backend.
//
// All authenticated requests carry a bearer credential supplied by a token
// source. A 401 on a request that carried a token is reported to the
// configured unauthorized hook before the error is returned; requests that
// carried no token (the login flow) never trigger the hook.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource func() string

// UnauthorizedHook is invoked when an authenticated request is rejected with
// 401. It receives the token the failing request carried so the session
// layer can clear it exactly once under concurrent failures.
type UnauthorizedHook func(failedToken string)

// Client is the hospital backend API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	tokenSource    TokenSource
	onUnauthorized UnauthorizedHook
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// SetTokenSource installs the bearer token supplier.
func (c *Client) SetTokenSource(src TokenSource) {
	c.tokenSource = src
}

// SetUnauthorizedHook installs the 401 handler.
func (c *Client) SetUnauthorizedHook(hook UnauthorizedHook) {
	c.onUnauthorized = hook
}

// Error is an API error response carrying the backend's status and message.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
}

// Unauthorized reports whether the backend rejected the credential.
func (e *Error) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// Forbidden reports whether the backend denied the action for this user.
func (e *Error) Forbidden() bool { return e.StatusCode == http.StatusForbidden }

// errorResponse is the backend's error body shape.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRequest performs one HTTP request with authentication and request
// tracing headers. Idempotent GETs get at most one transparent retry on
// transport failure or a 5xx.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	token := ""
	if c.tokenSource != nil {
		token = c.tokenSource()
	}

	resp, err := c.send(ctx, method, path, query, payload, token)
	if err != nil || (method == http.MethodGet && resp.StatusCode >= 500) {
		if method != http.MethodGet || ctx.Err() != nil {
			return resp, err
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		resp, err = c.send(ctx, method, path, query, payload, token)
	}
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" && c.onUnauthorized != nil {
		c.onUnauthorized(token)
	}

	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (*http.Response, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	return resp, nil
}

// parseResponse decodes the response body into target, or returns an *Error
// for a non-2xx status.
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		apiErr := &Error{StatusCode: resp.StatusCode}
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Message != "" {
				apiErr.Message = errResp.Message
			} else if errResp.Error != "" {
				apiErr.Message = errResp.Error
			}
		}
		if apiErr.Message == "" && len(body) > 0 {
			apiErr.Message = string(body)
		}
		return apiErr
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
