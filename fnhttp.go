package fnhttp

import (
	"github.com/dmitrymomot/fnhttp/internal"
	"github.com/dmitrymomot/fnhttp/pkg/logger"
	"github.com/dmitrymomot/fnhttp/pkg/session"
)

type (
	// App serves functions over HTTP. It is immutable after New.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context is the per-request view handed to functions and middleware.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is a business function. See the package documentation
	// for how its result is turned into a response.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware

	// ErrorHandler receives errors returned by functions.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures the health endpoints.
	HealthOption = internal.HealthOption

	// ContextExtractor adds a request-scoped attribute to log records.
	ContextExtractor = logger.ContextExtractor

	// ResponseWriter tracks the response state and flushes pending cookies.
	ResponseWriter = internal.ResponseWriter

	// HTTPError is an error with a response status.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Session is the session of one request.
	Session = session.Session
)

// New creates an application. It panics when the cookie, session or
// validation configuration is invalid.
//
//	app := fnhttp.New(
//		fnhttp.WithFunc(http.MethodPost, "/", func(c fnhttp.Context) (any, error) {
//			return c.Params(), nil
//		}),
//	)
//
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Errors

// NewHTTPError creates an HTTPError. An empty message becomes the status text.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches the cause of an HTTPError. It is logged, never sent.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

var (
	ErrBadRequest         = internal.ErrBadRequest
	ErrUnauthorized       = internal.ErrUnauthorized
	ErrForbidden          = internal.ErrForbidden
	ErrNotFound           = internal.ErrNotFound
	ErrInternal           = internal.ErrInternal
	ErrServiceUnavailable = internal.ErrServiceUnavailable
)

// StatusOf returns the response status for err.
func StatusOf(err error) int {
	return internal.StatusOf(err)
}

// AsHTTPError returns the first HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Helpers

// ContextValue returns a typed value stored with Context.Set.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// ParamAs returns a top-level parameter converted to T.
//
//	limit, ok := fnhttp.ParamAs[int](c, "limit")
func ParamAs[T string | int | int64 | float64 | bool](c Context, key string) (T, bool) {
	return internal.ParamAs[T](c, key)
}

// ParamOr is ParamAs with a fallback.
func ParamOr[T string | int | int64 | float64 | bool](c Context, key string, def T) T {
	return internal.ParamOr(c, key, def)
}

// SessionValue returns a typed session value. It fails with
// session.ErrNotFound when the key is missing or sessions are off.
func SessionValue[T any](c Context, key string) (T, error) {
	return session.Value[T](c.Session(), key)
}

// SessionValueOr is SessionValue with a fallback.
func SessionValueOr[T any](c Context, key string, def T) T {
	return session.ValueOr(c.Session(), key, def)
}
