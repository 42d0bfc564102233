package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Config defines the rate limit applied to one provider.
type Config struct {
	// MaxRequests is the number of requests allowed in the window
	MaxRequests int
	// Window is the sliding window length
	Window time.Duration
	// KeyPrefix namespaces identifiers per provider in the counter store
	KeyPrefix string
}

// Result contains the outcome of a single rate limit check. It is produced
// fresh on every check and never persisted beyond the underlying counter store.
type Result struct {
	// Allowed reports whether the request may proceed
	Allowed bool
	// Remaining is the number of requests left in the current window
	Remaining int
	// ResetAt is when the current window ends
	ResetAt time.Time
	// Total is the count observed in the window, including this request
	Total int
}

// Error is returned by Consume when admission is denied.
type Error struct {
	// RetryAfter is how long the caller should wait before retrying
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// Limiter defines the interface for rate limiting implementations.
//
// Check and Consume are deliberately separate operations: Check signals denial
// through Result.Allowed so status surfaces can render it, while Consume fails
// with *Error so gatekeeping call sites get enforcement.
type Limiter interface {
	// Check records the attempt and returns rate limit info, never denying via error
	Check(ctx context.Context, identifier string) (Result, error)
	// Consume calls Check and fails with *Error when the request is denied
	Consume(ctx context.Context, identifier string) (Result, error)
	// Reset drops the identifier's window entirely
	Reset(ctx context.Context, identifier string) error
}
