// Package middlewares provides function middleware for fnhttp applications.
//
// Middleware runs after cookies, session and parameters are prepared and
// validated, so it sees the same Context as the function it wraps.
//
// # Request ID
//
// RequestID reuses X-Request-ID or X-Correlation-ID from the request or
// generates a uuid, and echoes it in the response. Pair it with
// RequestIDExtractor to tag every log record:
//
//	app := fnhttp.New(
//		fnhttp.WithLogger("api", middlewares.RequestIDExtractor()),
//		fnhttp.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts a panic into a 500 response. The client gets the status
// text; an ErrorHandler can reach the panic through AsPanicError:
//
//	fnhttp.WithErrorHandler(func(c fnhttp.Context, err error) error {
//		if pe, ok := middlewares.AsPanicError(err); ok {
//			report(pe.Value, pe.Stack)
//		}
//		return err
//	})
//
// # Timeout
//
// Timeout answers 503 with {"error":{"message":"request timeout"}} when the
// function runs too long. The function is not stopped; use
// GetTimeoutContext for cancellation.
//
//	fnhttp.WithMiddleware(middlewares.Timeout(10 * time.Second))
//
// List middleware in the order it should run: Recover first, then
// RequestID, then the rest.
package middlewares
