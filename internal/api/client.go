// Package api is the typed client for the content lifecycle backend. It
// resolves tenant identity once, attaches it to every request as a header, and
// normalizes transport, HTTP and response-shape failures into a single error
// kind. It performs no retries and no caching; governance state is always
// fetched fresh.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantHeader carries the tenant slug. It is the sole tenant-scoping
// mechanism; the server never infers a tenant from a content id.
const TenantHeader = "X-Tenant-Slug"

// Fallback values so the client is usable with zero configuration in a local
// dev setting.
const (
	DefaultBaseURL = "http://127.0.0.1:8001"
	DefaultTenant  = "default"
	DefaultTimeout = 10 * time.Second
)

// Config holds connection settings for New.
type Config struct {
	BaseURL string
	Tenant  string
	Timeout time.Duration
}

// Client issues tenant-scoped requests against the backend.
type Client struct {
	baseURL    string
	tenant     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Tests use this; it also
// lets callers supply their own transport-level timeout policy.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger attaches a logger for per-request debug lines.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New builds a Client, falling back to documented defaults for any unset field.
func New(cfg Config, opts ...Option) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	tenant := strings.TrimSpace(cfg.Tenant)
	if tenant == "" {
		tenant = DefaultTenant
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tenant:     tenant,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tenant returns the slug this client scopes every request to.
func (c *Client) Tenant() string { return c.tenant }

// call issues one request and decodes a 2xx JSON body into out (which may be
// nil when the caller discards the body). Every failure mode comes back as a
// *Error: transport failures with Status 0, non-2xx responses with the
// extracted detail, and undecodable 2xx bodies as shape failures.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set(TenantHeader, c.tenant)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &Error{Status: 0, Detail: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Detail: "read response: " + err.Error()}
	}

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Detail: extractDetail(resp.StatusCode, respBody)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Status: resp.StatusCode, Detail: "unexpected response shape: " + err.Error()}
	}
	return nil
}
