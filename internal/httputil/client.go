// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 16 << 20

// StatusError reports a non-2xx response that survived retries.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.Code)
}

// Client issues GET requests with a fixed User-Agent, a per-request
// timeout and retry on 429/5xx.
type Client struct {
	HTTP       *http.Client
	UserAgent  string
	MaxRetries int
	Log        zerolog.Logger
}

// NewClient builds a Client from the shared HTTP settings.
func NewClient(cfg types.HTTPConfig, log zerolog.Logger) *Client {
	return &Client{
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		Log:        log,
	}
}

// WithoutRetries returns a copy of c that sends every request once. Callers
// with their own attempt loop use it so retries do not multiply.
func (c *Client) WithoutRetries() *Client {
	cp := *c
	cp.MaxRetries = NoRetries
	return &cp
}

// Get fetches url and returns the response body. Any non-2xx status is
// returned as a *StatusError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := DoWithRetry(ctx, c.HTTP, req, c.MaxRetries, c.Log)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return body, nil
}

// GetJSON fetches url and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}
