package unleashed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/erp/exporter/internal/domain/export"
)

// maxResponseSize caps response bodies read from the API (10MB).
const maxResponseSize = 10 * 1024 * 1024

// Client is the signed Unleashed API client. It performs single-page GET
// requests with a fixed timeout and no retries; retry policy belongs to the
// caller. After each completed HTTP exchange it records the resolved status
// code and effective URL for provenance capture.
type Client struct {
	config     *Config
	httpClient *http.Client

	mu             sync.Mutex
	lastStatusCode *int
	lastURL        string
}

// NewClient creates a client for the given configuration.
func NewClient(config *Config) *Client {
	timeout := 30
	if config != nil && config.TimeoutSeconds > 0 {
		timeout = config.TimeoutSeconds
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// IsConfigured reports whether the client can issue signed requests.
func (c *Client) IsConfigured() bool {
	return c.config.IsConfigured()
}

// LastStatusCode returns the HTTP status of the most recent exchange, or nil
// if no request has completed yet.
func (c *Client) LastStatusCode() *int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastStatusCode
}

// LastURL returns the effective (post-redirect) URL of the most recent
// exchange.
func (c *Client) LastURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastURL
}

// CanonicalQuery builds the canonical query string: parameters sorted by key
// and URL-encoded, with multi-valued keys expanded in order. This is the
// exact byte sequence that gets signed, so it must be reproducible from the
// parameter mapping regardless of insertion order. url.Values.Encode sorts by
// key, which gives exactly that.
func CanonicalQuery(params url.Values) string {
	if len(params) == 0 {
		return ""
	}
	return params.Encode()
}

// Get issues a signed GET against base_url+path and returns the decoded JSON
// document. Numeric values decode as json.Number so that re-serializing the
// document for audit storage preserves the upstream digits.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (map[string]any, error) {
	if !c.config.IsConfigured() {
		return nil, fmt.Errorf("%w: missing base URL, credentials, or client type", export.ErrNotConfigured)
	}

	query := CanonicalQuery(params)

	requestURL := strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	if query != "" {
		requestURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("unleashed: build request: %w", err)
	}

	// The signature covers the unsigned query string, not the full URL.
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-auth-id", c.config.APIID)
	req.Header.Set("api-auth-signature", c.config.Sign(query))
	req.Header.Set("client-type", c.config.ClientType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", export.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", export.ErrUpstreamUnavailable, err)
	}

	c.record(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &export.UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", export.ErrInvalidResponse, err)
	}
	return doc, nil
}

// record captures the audit side-effect state of a completed exchange.
func (c *Client) record(resp *http.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	status := resp.StatusCode
	c.lastStatusCode = &status
	if resp.Request != nil && resp.Request.URL != nil {
		c.lastURL = resp.Request.URL.String()
	}
}
