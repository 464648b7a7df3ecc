// Package adminclient talks to the satellite admin HTTP API on behalf of
// operation handlers. The auth token is configured on the client and may be
// overridden per request through the context.
package adminclient

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
)

// DefaultMaxResponseBytes caps how much of a response body Do reads.
const DefaultMaxResponseBytes int64 = 1 << 20

var (
	// ErrUnauthorized is returned when the admin API rejects the token.
	ErrUnauthorized = errors.New("adminclient: unauthorized")
	// ErrResponseTooLarge is returned when a response body exceeds the
	// configured limit.
	ErrResponseTooLarge = errors.New("adminclient: response too large")
)

// APIError carries a non-2xx response from the admin API.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("adminclient: status %d", e.Status)
	}
	return fmt.Sprintf("adminclient: status %d: %s", e.Status, e.Message)
}

// Client is a small JSON client bound to one admin API base URL.
type Client struct {
	URL string

	token      string
	httpClient *http.Client
	userAgent  string
	maxBody    int64
}

// Option configures a Client.
type Option func(*Client)

// New validates baseURL and applies options.
func New(baseURL string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("adminclient: parse base url: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("adminclient: invalid base URL %q", baseURL)
	}

	c := &Client{
		URL:        strings.TrimRight(parsed.String(), "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "go-opsform",
		maxBody:    DefaultMaxResponseBytes,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// WithAuthToken sets the default token sent in the Authorization header.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxResponseBytes overrides DefaultMaxResponseBytes.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

type tokenKey struct{}

// ContextWithToken attaches a token that takes precedence over the client
// default for requests made with ctx.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token stored by ContextWithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

func (c *Client) tokenFor(ctx context.Context) string {
	if token, ok := TokenFromContext(ctx); ok {
		return token
	}
	return c.token
}

// Do sends body as JSON and decodes a JSON object response. An empty
// response body yields a nil map.
func (c *Client) Do(ctx context.Context, method, path string, body any) (map[string]any, error) {
	if c == nil {
		return nil, errors.New("adminclient: client is nil")
	}
	target := c.URL + "/" + strings.TrimLeft(path, "/")

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("adminclient: encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("adminclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token := c.tokenFor(ctx); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adminclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("adminclient: read response: %w", err)
	}
	if int64(len(raw)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s %s exceeds %d bytes", ErrResponseTooLarge, method, path, c.maxBody)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: %s %s", ErrUnauthorized, method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp.StatusCode, raw)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("adminclient: decode response: %w", err)
	}
	return out, nil
}

func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}
	var payload struct {
		Error   string              `json:"error"`
		Message string              `json:"message"`
		Detail  string              `json:"detail"`
		Fields  map[string][]string `json:"fields"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}
	switch {
	case payload.Error != "":
		apiErr.Message = payload.Error
	case payload.Message != "":
		apiErr.Message = payload.Message
	case payload.Detail != "":
		apiErr.Message = payload.Detail
	default:
		apiErr.Message = http.StatusText(status)
	}
	apiErr.Fields = payload.Fields
	return apiErr
}
