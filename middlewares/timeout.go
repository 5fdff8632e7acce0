package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/fnhttp/internal"
)

// DefaultTimeout is used when Timeout gets a non-positive duration.
const DefaultTimeout = 30 * time.Second

// Timeout answers 503 when the function does not return in time.
// The function keeps running in the background; long operations should
// use GetTimeoutContext, which is canceled at the deadline.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (any, error) {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			type outcome struct {
				result any
				err    error
			}
			done := make(chan outcome, 1)
			go func() {
				result, err := next(c)
				done <- outcome{result: result, err: err}
			}()

			select {
			case out := <-done:
				return out.result, out.err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", "timeout", timeout.String())
					return nil, internal.ErrServiceUnavailable("request timeout",
						internal.WithError(&TimeoutError{Duration: timeout}))
				}
				return nil, ctx.Err()
			}
		}
	}
}

type timeoutContextKey struct{}

// GetTimeoutContext returns the deadline-bound context set by Timeout,
// or the request context.
func GetTimeoutContext(c internal.Context) context.Context {
	if v, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return v
	}
	return c.Context()
}
