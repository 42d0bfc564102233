package retryhttp

import (
	"fmt"
	"net/http"
	"time"
)

// Default values applied by NewClient when the corresponding Config field is zero.
const (
	DefaultTimeout       = 8 * time.Second
	DefaultMaxRetries    = 3
	DefaultRetryDelay    = 250 * time.Millisecond
	DefaultMaxRetryDelay = 4 * time.Second
)

// NoRetries disables retries entirely. A zero MaxRetries means "use the
// default", so a single-attempt client needs this explicit value.
const NoRetries = -1

// Config configures a Client. One Client is constructed per upstream provider.
type Config struct {
	// BaseURL is prepended to every request path
	BaseURL string
	// Timeout bounds a single attempt, not the whole retry sequence
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after the first one.
	// Zero falls back to DefaultMaxRetries; pass NoRetries for a
	// single-attempt client.
	MaxRetries int
	// RetryDelay is the backoff delay before the first retry
	RetryDelay time.Duration
	// MaxRetryDelay caps the exponential backoff
	MaxRetryDelay time.Duration
	// Headers are set on every request (auth, user agent, ...)
	Headers map[string]string
}

// Request describes one HTTP call against the configured base URL.
type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Body    any
	Headers map[string]string
}

// Response is the successful result of Client.Do.
type Response struct {
	Data       []byte
	Status     int
	StatusText string
	Headers    http.Header
}

// Error is returned by Client.Do instead of a raw transport error so callers
// can branch on retryability without inspecting transport internals.
type Error struct {
	Message    string
	Status     int
	StatusText string
	Body       string
	Retryable  bool
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("http error: status %d %s: %s", e.Status, e.StatusText, e.Message)
	}
	return fmt.Sprintf("http error: %s", e.Message)
}

// retryableStatus reports whether an upstream status code is worth retrying.
// 429 and all 5xx are considered transient.
func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// backoffDelay returns the delay before retry attempt n (0-indexed):
// min(retryDelay * 2^n, maxRetryDelay). No jitter is applied; callers that
// need desynchronization have to add it themselves.
func backoffDelay(retryDelay, maxRetryDelay time.Duration, attempt int) time.Duration {
	delay := retryDelay << uint(attempt)
	if delay > maxRetryDelay || delay <= 0 {
		return maxRetryDelay
	}
	return delay
}
