// internal/common/http/client.go
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError is returned for a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the server may succeed on a later attempt.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Client is an HTTP client with retry on transient statuses.
type Client struct {
	httpClient  *http.Client
	maxRetries  int
	baseBackoff time.Duration
}

// NewClient creates a client with a per-request timeout.
func NewClient(timeout time.Duration, maxRetries int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries:  maxRetries,
		baseBackoff: 100 * time.Millisecond,
	}
}

// NewClientWithHTTP wraps an existing *http.Client, e.g. an httptest server client.
func NewClientWithHTTP(hc *http.Client, maxRetries int) *Client {
	return &Client{httpClient: hc, maxRetries: maxRetries, baseBackoff: 100 * time.Millisecond}
}

// Do sends req once, without retries.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// DoWithRetry sends the request built by newReq, retrying transport errors,
// 5xx and 429 with exponential backoff. newReq is called once per attempt so
// the body can be replayed. The caller closes the returned body.
func (c *Client) DoWithRetry(ctx context.Context, newReq func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * c.baseBackoff
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := newReq(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		if !statusErr.Retryable() {
			return nil, statusErr
		}
		lastErr = statusErr
	}

	return nil, fmt.Errorf("no successful response after %d attempts: %w", c.maxRetries+1, lastErr)
}
