// Package request wraps outbound HTTP to the places providers. Requests to
// the same provider run sequentially through a per-host worker so a burst of
// page views cannot fan out into a burst of provider calls, and a failing
// provider is slowed down by exponential backoff instead of being hammered.
package request

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const defaultUserAgent = "huangye-directory/1.0 (business directory; contact via site form)"

// Client handles HTTP requests with per-provider serialization and backoff.
type Client struct {
	httpClient *http.Client
	backoff    *ProviderBackoff

	mu     sync.Mutex // Protects queues map
	queues map[string]chan job
}

// job represents a queued request.
type job struct {
	req      *http.Request
	respChan chan jobResult
}

type jobResult struct {
	body        []byte
	contentType string
	err         error
}

// New creates a new Client.
func New(timeout time.Duration, backoff *ProviderBackoff) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		backoff:    backoff,
		queues:     make(map[string]chan job),
	}
}

// Get performs a GET request and returns the response body.
func (c *Client) Get(ctx context.Context, u string) ([]byte, error) {
	body, _, err := c.GetWithContentType(ctx, u)
	return body, err
}

// GetWithContentType performs a GET request and returns the response body
// and its Content-Type. Used for binary photo downloads.
func (c *Client) GetWithContentType(ctx context.Context, u string) ([]byte, string, error) {
	parsedURL, err := url.Parse(u)
	if err != nil {
		return nil, "", fmt.Errorf("invalid url: %w", err)
	}
	provider := parsedURL.Host

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	respChan := make(chan jobResult, 1)
	c.dispatch(provider, job{req: req, respChan: respChan})

	select {
	case <-ctx.Done():
		return nil, "", ctx.Err()
	case res := <-respChan:
		return res.body, res.contentType, res.err
	}
}

// dispatch sends the job to the provider's queue, creating the queue/worker
// if needed.
func (c *Client) dispatch(provider string, j job) {
	c.mu.Lock()
	q, ok := c.queues[provider]
	if !ok {
		q = make(chan job, 100)
		c.queues[provider] = q
		go c.worker(provider, q)
	}
	c.mu.Unlock()

	// Blocks if the queue is full, throttling the caller.
	select {
	case q <- j:
	case <-j.req.Context().Done():
		j.respChan <- jobResult{err: j.req.Context().Err()}
	}
}

// worker processes requests for a specific provider sequentially.
func (c *Client) worker(provider string, q <-chan job) {
	for j := range q {
		if j.req.Context().Err() != nil {
			slog.Warn("job dropped from queue (context expired)", "provider", provider, "error", j.req.Context().Err())
			j.respChan <- jobResult{err: j.req.Context().Err()}
			continue
		}

		if c.backoff != nil {
			c.backoff.Wait(provider)
		}

		body, contentType, err := c.execute(j.req)
		if c.backoff != nil {
			if err != nil {
				c.backoff.RecordFailure(provider)
			} else {
				c.backoff.RecordSuccess(provider)
			}
		}

		j.respChan <- jobResult{body: body, contentType: contentType, err: err}

		// Hardcoded safety gap to keep under provider rate limits
		time.Sleep(100 * time.Millisecond)
	}
}

func (c *Client) execute(req *http.Request) ([]byte, string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	return body, resp.Header.Get("Content-Type"), nil
}
