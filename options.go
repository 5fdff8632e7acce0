package fnhttp

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/fnhttp/internal"
	"github.com/dmitrymomot/fnhttp/pkg/cookie"
	"github.com/dmitrymomot/fnhttp/pkg/health"
	"github.com/dmitrymomot/fnhttp/pkg/params"
	"github.com/dmitrymomot/fnhttp/pkg/session"
	"github.com/dmitrymomot/fnhttp/pkg/validator"
)

// WithLogger creates a JSON logger tagged with a component name.
// Extractors add request-scoped values such as the request ID.
//
//	fnhttp.WithLogger("api", middlewares.RequestIDExtractor())
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully configured logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithCookie sets the cookie attributes. Setting cfg.Session enables
// encrypted sessions.
func WithCookie(cfg cookie.Config) Option {
	return internal.WithCookie(cfg)
}

// WithSessionCodec enables sessions with a custom codec.
//
//	store := cache.NewRedis[*params.Object](client, nil, cache.WithPrefix("session"))
//	fnhttp.WithSessionCodec(session.NewStoreCodec(store))
func WithSessionCodec(codec session.Codec) Option {
	return internal.WithSessionCodec(codec)
}

// WithValidator validates params, cookies and session before every function.
func WithValidator(cfg validator.Config) Option {
	return internal.WithValidator(cfg)
}

// WithParamsOptions configures parameter extraction.
func WithParamsOptions(opts ...params.Option) Option {
	return internal.WithParamsOptions(opts...)
}

// WithMiddleware adds middleware around every function.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHTTPMiddleware adds net/http middleware in front of the router.
func WithHTTPMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return internal.WithHTTPMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithFunc mounts a single function on method and path.
func WithFunc(method, path string, fn HandlerFunc, mw ...Middleware) Option {
	return internal.WithFunc(method, path, fn, mw...)
}

// WithErrorHandler sets the handler for errors returned by functions.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets the 404 function.
func WithNotFoundHandler(fn HandlerFunc) Option {
	return internal.WithNotFoundHandler(fn)
}

// WithMethodNotAllowedHandler sets the 405 function.
func WithMethodNotAllowedHandler(fn HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(fn)
}

// WithHealthChecks enables /health/live and /health/ready.
//
//	fnhttp.WithHealthChecks(
//		fnhttp.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}
