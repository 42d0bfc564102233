package ratelimit

import "context"

// Handler is an operation gated by a rate limiter.
type Handler[T any] func(ctx context.Context) (T, error)

// Guard wraps a handler so every invocation must pass the limiter first.
// Denials surface as the limiter's *Error; the wrapped handler is never
// invoked for a denied request. This replaces implicit call interception
// with explicit composition at the call site.
func Guard[T any](limiter Limiter, identifier string, next Handler[T]) Handler[T] {
	return func(ctx context.Context) (T, error) {
		if _, err := limiter.Consume(ctx, identifier); err != nil {
			var zero T
			return zero, err
		}
		return next(ctx)
	}
}
