package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"espejo-admin/internal/metrics"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultAttempts  = 3
	DefaultBaseDelay = 500 * time.Millisecond
)

// Client is the single chokepoint for calls to the restaurant backend.
// Every request carries JSON headers, runs under a per-attempt timeout and
// is retried with exponential backoff when the failure is retriable.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	attempts  int
	baseDelay time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }
func WithAttempts(n int) Option { return func(c *Client) { c.attempts = n } }
func WithBaseDelay(d time.Duration) Option { return func(c *Client) { c.baseDelay = d } }
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		http:      &http.Client{},
		timeout:   DefaultTimeout,
		attempts:  DefaultAttempts,
		baseDelay: DefaultBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.attempts < 1 {
		c.attempts = 1
	}
	return c
}

// Request performs method path against the backend and decodes the 2xx
// response body into out (when out is non-nil). Non-2xx statuses, timeouts
// and connection failures return an *Error.
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var lastErr *Error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			metrics.RetriesTotal.Inc()
			delay := c.baseDelay * (1 << (attempt - 1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		done, err := c.attempt(ctx, method, path, payload, out)
		if done {
			if err != nil {
				metrics.RequestsTotal.WithLabelValues(method, "error").Inc()
			} else {
				metrics.RequestsTotal.WithLabelValues(method, "success").Inc()
			}
			return err
		}

		lastErr = err.(*Error)
		log.Printf("Warning: %s %s failed (attempt %d/%d): %v", method, path, attempt+1, c.attempts, lastErr)
	}

	metrics.RequestsTotal.WithLabelValues(method, "error").Inc()
	return lastErr
}

// attempt runs a single try. done is false only when the failure is
// retriable and the caller should back off and go again.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, out any) (done bool, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, reader)
	if err != nil {
		return true, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The parent context ending is the caller's cancellation, not a
		// transport failure.
		if ctx.Err() != nil {
			return true, ctx.Err()
		}
		apiErr := &Error{Kind: KindNetwork, Message: err.Error()}
		if errors.Is(err, context.DeadlineExceeded) {
			apiErr = &Error{Kind: KindTimeout, Message: fmt.Sprintf("request timed out after %s", c.timeout)}
		}
		return false, apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &Error{Kind: KindNetwork, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Kind:    KindHTTP,
			Status:  resp.StatusCode,
			Message: serverMessage(raw, resp.StatusCode),
			Data:    raw,
		}
		return !apiErr.Retriable(), apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return true, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return true, nil
}

// serverMessage prefers the backend's own message field over a generic
// status line.
func serverMessage(raw []byte, status int) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return http.StatusText(status)
}
