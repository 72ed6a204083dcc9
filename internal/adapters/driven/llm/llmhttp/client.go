// Package llmhttp is the JSON-over-HTTP transport shared by the openai and
// ollama chat adapters. It classifies failures so the synthesizer's retry
// loop can tell a busy provider from a rejected request.
package llmhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
)

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 4 << 10

// StatusError is returned for any non-200 reply.
// It matches driven.ErrTransient for 429 and 5xx.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Provider, e.Code)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Code, e.Body)
}

// Is reports whether target is driven.ErrTransient and the status is retryable.
func (e *StatusError) Is(target error) bool {
	return target == driven.ErrTransient && Retryable(e.Code)
}

// Retryable reports whether an HTTP status is worth another attempt.
func Retryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// Client posts JSON bodies to one provider's base URL.
type Client struct {
	provider string
	baseURL  string
	http     *http.Client
	header   http.Header
}

// New returns a client whose requests carry header and time out after timeout.
func New(provider, baseURL string, timeout time.Duration, header http.Header) *Client {
	if header == nil {
		header = http.Header{}
	}
	return &Client{
		provider: provider,
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		header:   header,
	}
}

// BaseURL is the prefix every request path is joined to.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout is the per-request deadline of the underlying http.Client.
func (c *Client) Timeout() time.Duration { return c.http.Timeout }

// PostJSON sends in as the body of a POST to path and decodes a 200 reply into out.
// Transport failures wrap driven.ErrTransient.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", c.provider, err)
	}
	resp, err := c.do(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.provider, err)
	}
	return nil
}

// Probe issues a GET to path and succeeds only on 200.
func (c *Client) Probe(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodGet, path, http.NoBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", c.provider, err)
	}
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", c.provider, driven.ErrTransient, err)
	}
	return resp, nil
}

func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Provider: c.provider,
		Code:     resp.StatusCode,
		Body:     string(bytes.TrimSpace(body)),
	}
}
