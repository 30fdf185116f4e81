// Package client is the HTTP client for the waitlist API. It implements the
// backend interfaces the form coordinator and counter consume.
package client

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"time"

	"github.com/courselaunch/waitlist-server/internal/domain"
	"github.com/courselaunch/waitlist-server/internal/errors"
)

const (
	defaultTimeout = 10 * time.Second

	retryAttempts  = 3
	retryBaseDelay = time.Second
)

// Client talks to the waitlist API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// NewWithHTTPClient creates a client using a caller-provided http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

// envelope mirrors the server response wrapper with a typed Data field.
type envelope[T any] struct {
	Data    T                 `json:"data"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details"`
	Success bool              `json:"success"`
}

// SubmitInterest sends a submission. Not retried: a duplicate-email
// rejection on a retry would mask a success that already landed.
func (c *Client) SubmitInterest(ctx context.Context, sub domain.Submission) (*domain.Submission, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/waitlist", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit interest: %w", err)
	}
	defer resp.Body.Close()

	var env envelope[domain.Submission]
	if err := json.UnmarshalRead(resp.Body, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return nil, envelopeError(resp.StatusCode, env.Code, env.Error, env.Details)
	}
	return &env.Data, nil
}

// SubmissionCount fetches the current signup count, retrying transient
// failures with exponential backoff.
func (c *Client) SubmissionCount(ctx context.Context) (int64, error) {
	var count int64
	err := c.doWithRetry(ctx, func() (retryable bool, err error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/waitlist/count", nil)
		if err != nil {
			return false, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return true, fmt.Errorf("fetch count: %w", err)
		}
		defer resp.Body.Close()

		var env envelope[struct {
			Count int64 `json:"count"`
		}]
		if err := json.UnmarshalRead(resp.Body, &env); err != nil {
			return retryableStatus(resp.StatusCode), fmt.Errorf("decode response: %w", err)
		}
		if !env.Success {
			return retryableStatus(resp.StatusCode), envelopeError(resp.StatusCode, env.Code, env.Error, nil)
		}
		count = env.Data.Count
		return false, nil
	})
	return count, err
}

// RecordEvent sends an analytics event. Best-effort: callers typically
// ignore the error.
func (c *Client) RecordEvent(ctx context.Context, evt domain.Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/events", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("record event: status %d", resp.StatusCode)
	}
	return nil
}

// Ping probes the health endpoint with a HEAD request.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping: status %d", resp.StatusCode)
	}
	return nil
}

// doWithRetry runs fn up to retryAttempts times, backing off exponentially
// between attempts. fn reports whether its failure is worth retrying.
func (c *Client) doWithRetry(ctx context.Context, fn func() (retryable bool, err error)) error {
	var lastErr error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay * (1 << (attempt - 1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		retryable, err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return lastErr
}

// retryableStatus reports whether a response status indicates a transient
// failure.
func retryableStatus(status int) bool {
	return status == http.StatusRequestTimeout ||
		status == http.StatusTooManyRequests ||
		status >= 500
}

// envelopeError converts a failure envelope back into a domain error so
// callers can use errors.Is the same way they would server-side.
func envelopeError(status int, code, message string, details map[string]string) error {
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	switch errors.Code(code) {
	case errors.CodeAlreadyExists:
		return errors.AlreadyExists(message)
	case errors.CodeValidation:
		if details != nil {
			return errors.ValidationWithDetails(message, details)
		}
		return errors.Validation(message)
	case errors.CodeRateLimited:
		return errors.RateLimited(message)
	case errors.CodeNotFound:
		return errors.NotFound(message)
	default:
		if status >= 500 {
			return errors.Internal(message)
		}
		return errors.New(message)
	}
}
