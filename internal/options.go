package internal

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/fnhttp/pkg/cookie"
	"github.com/dmitrymomot/fnhttp/pkg/health"
	"github.com/dmitrymomot/fnhttp/pkg/logger"
	"github.com/dmitrymomot/fnhttp/pkg/params"
	"github.com/dmitrymomot/fnhttp/pkg/session"
	"github.com/dmitrymomot/fnhttp/pkg/validator"
)

// Option configures the application.
type Option func(*App)

// WithLogger builds a JSON logger tagged with a component name.
//
//	fnhttp.WithLogger("api", middlewares.RequestIDExtractor())
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.MustNew(logger.Config{}, extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully configured logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookie replaces the default cookie attributes. Setting cfg.Session
// enables sessions with the default encrypted codec.
//
//	cfg := cookie.DefaultConfig()
//	cfg.Session = &session.Config{Key: "sid", Secret: os.Getenv("SESSION_SECRET")}
//	fnhttp.WithCookie(cfg)
func WithCookie(cfg cookie.Config) Option {
	return func(a *App) {
		a.cookieConfig = cfg
	}
}

// WithSessionCodec enables sessions with a custom codec, such as
// session.StoreCodec. The session cookie name comes from the cookie
// config, "key" by default.
func WithSessionCodec(codec session.Codec) Option {
	return func(a *App) {
		a.sessionCodec = codec
	}
}

// WithValidator validates params, cookies and session of every function
// before it runs.
func WithValidator(cfg validator.Config) Option {
	return func(a *App) {
		a.validatorConfig = &cfg
	}
}

// WithParamsOptions configures parameter extraction, e.g. the body limit
// or a sanitizer.
//
//	fnhttp.WithParamsOptions(params.WithSanitizer(sanitizer.StripHTML))
func WithParamsOptions(opts ...params.Option) Option {
	return func(a *App) {
		a.paramsOptions = append(a.paramsOptions, opts...)
	}
}

// WithMiddleware adds middleware around every function.
// The first middleware listed runs first.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHTTPMiddleware adds net/http middleware in front of the router.
func WithHTTPMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(a *App) {
		a.httpMiddlewares = append(a.httpMiddlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithFunc mounts a single function.
//
//	fnhttp.WithFunc(http.MethodPost, "/", func(c fnhttp.Context) (any, error) {
//		n, _ := c.Param("n")
//		return n.(float64) + 1, nil
//	})
func WithFunc(method, path string, fn HandlerFunc, mw ...Middleware) Option {
	return func(a *App) {
		a.funcs = append(a.funcs, funcRoute{method: method, path: path, fn: fn, mw: mw})
	}
}

// WithErrorHandler sets the handler for errors returned by functions.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets the 404 function. It runs without validation.
func WithNotFoundHandler(fn HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = fn
	}
}

// WithMethodNotAllowedHandler sets the 405 function. It runs without validation.
func WithMethodNotAllowedHandler(fn HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = fn
	}
}

type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures the health endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath overrides "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath overrides "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
//
//	fnhttp.WithReadinessCheck("redis", redis.Healthcheck(client))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		c.checks[name] = fn
	}
}

// WithHealthChecks enables the liveness and readiness endpoints.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}
