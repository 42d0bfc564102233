package retryhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// Client is an HTTP client with bounded retries and exponential backoff.
// It is provider-agnostic; provider-specific parsing lives in the services
// that own a Client.
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a Client, applying defaults for unset Config fields.
func NewClient(config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxRetries <= NoRetries {
		config.MaxRetries = 0
	} else if config.MaxRetries == 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	if config.MaxRetryDelay <= 0 {
		config.MaxRetryDelay = DefaultMaxRetryDelay
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// Do executes the request, retrying transient failures (429, 5xx, transport
// errors) up to MaxRetries additional attempts. The returned error is always
// a *Error whose Retryable flag reflects the last attempt's classification.
func (c *Client) Do(ctx context.Context, request Request) (*Response, error) {
	fullURL, err := c.buildURL(request)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid request url: %v", err), Retryable: false}
	}

	var lastErr *Error
	attempts := 0
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(c.config.RetryDelay, c.config.MaxRetryDelay, attempt-1)
			logrus.WithFields(logrus.Fields{
				"method":  request.Method,
				"url":     fullURL,
				"attempt": attempt,
				"delay":   delay.String(),
			}).Warn("retrying request after transient failure")
			if err := sleep(ctx, delay); err != nil {
				return nil, &Error{Message: fmt.Sprintf("backoff interrupted: %v", err), Retryable: false}
			}
		}

		attempts++
		resp, reqErr := c.attempt(ctx, request.Method, fullURL, request.Body, request.Headers)
		if reqErr == nil {
			return resp, nil
		}

		lastErr = reqErr
		if !reqErr.Retryable {
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"method":   request.Method,
		"url":      fullURL,
		"attempts": attempts,
		"status":   lastErr.Status,
	}).Errorf("request failed: %s", lastErr.Message)
	return nil, lastErr
}

// attempt performs a single HTTP round trip.
func (c *Client) attempt(ctx context.Context, method, fullURL string, body any, headers map[string]string) (*Response, *Error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("failed to marshal request body: %v", err), Retryable: false}
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to create request: %v", err), Retryable: false}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response received: connection refused, timeout, DNS failure.
		return nil, &Error{Message: fmt.Sprintf("request failed: %v", err), Retryable: true}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read response body: %v", err), Retryable: true}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Message:    fmt.Sprintf("upstream returned %s", resp.Status),
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       string(data),
			Retryable:  retryableStatus(resp.StatusCode),
		}
	}

	return &Response{
		Data:       data,
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Headers:    resp.Header,
	}, nil
}

func (c *Client) buildURL(request Request) (string, error) {
	u, err := url.Parse(c.config.BaseURL + request.Path)
	if err != nil {
		return "", err
	}
	if len(request.Query) > 0 {
		q := u.Query()
		for k, v := range request.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// sleep waits for the given delay without blocking the scheduler, returning
// early if the context is canceled.
func sleep(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
