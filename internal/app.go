package internal

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/dmitrymomot/fnhttp/pkg/cookie"
	"github.com/dmitrymomot/fnhttp/pkg/health"
	"github.com/dmitrymomot/fnhttp/pkg/logger"
	"github.com/dmitrymomot/fnhttp/pkg/params"
	"github.com/dmitrymomot/fnhttp/pkg/session"
	"github.com/dmitrymomot/fnhttp/pkg/validator"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

const contentTypeJSON = "application/json; charset=utf-8"

// App serves functions over HTTP. It is immutable after New.
type App struct {
	router                  chi.Router
	logger                  *slog.Logger
	cookies                 *cookie.Codec
	validator               *validator.Validator
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig

	cookieConfig    cookie.Config
	sessionCodec    session.Codec
	validatorConfig *validator.Config
	paramsOptions   []params.Option
	middlewares     []Middleware
	httpMiddlewares []func(http.Handler) http.Handler
	handlers        []Handler
	funcs           []funcRoute
}

type funcRoute struct {
	method string
	path   string
	fn     HandlerFunc
	mw     []Middleware
}

// New creates an App. It panics when the cookie, session or validation
// configuration is invalid.
//
//	app := fnhttp.New(
//		fnhttp.WithValidator(validator.Config{Params: schema}),
//		fnhttp.WithFunc(http.MethodPost, "/greet", greet),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:       chi.NewRouter(),
		logger:       logger.NewNope(),
		cookieConfig: cookie.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}

	codecOpts := []cookie.CodecOption{cookie.WithLogger(a.logger)}
	if a.sessionCodec != nil {
		if a.cookieConfig.Session == nil {
			cfg := session.DefaultConfig()
			a.cookieConfig.Session = &cfg
		}
		codecOpts = append(codecOpts, cookie.WithSessionCodec(a.sessionCodec))
	}
	cookies, err := cookie.New(a.cookieConfig, codecOpts...)
	if err != nil {
		panic(fmt.Sprintf("cookie: %v", err))
	}
	a.cookies = cookies

	if a.validatorConfig != nil {
		v, err := validator.New(*a.validatorConfig, validator.WithLogger(a.logger))
		if err != nil {
			panic(fmt.Sprintf("validator: %v", err))
		}
		a.validator = v
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP makes App an http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run serves on addr and blocks until SIGINT/SIGTERM, then shuts down
// gracefully and runs the shutdown hooks.
//
//	err := app.Run(":8080", fnhttp.Logger(log), fnhttp.ShutdownHook(redis.Shutdown(client)))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}
	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

func (a *App) setupRoutes() {
	for _, mw := range a.httpMiddlewares {
		a.router.Use(mw)
	}

	if a.notFoundHandler != nil {
		a.router.NotFound(a.serve(a.chain(a.notFoundHandler), false))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.serve(a.chain(a.methodNotAllowedHandler), false))
	}

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, f := range a.funcs {
		r.Handle(f.method, f.path, f.fn, f.mw...)
	}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// chain applies app middleware around route middleware around fn.
// The first middleware in the list runs first.
func (a *App) chain(fn HandlerFunc, mw ...Middleware) HandlerFunc {
	all := slices.Concat(a.middlewares, mw)
	for _, m := range slices.Backward(all) {
		fn = m(fn)
	}
	return fn
}

// serve runs the request pipeline around fn:
// cookies and session, parameters, validation, fn, session save, response.
func (a *App) serve(fn HandlerFunc, validate bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(logger.ContextWithAttrs(r.Context(),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		))
		rw := NewResponseWriter(w)
		store := a.cookies.FromRequest(r)
		c := newContext(rw, r, a.logger, store)
		rw.OnBeforeWrite(func() {
			for name, value := range store.Headers() {
				rw.Header().Add(name, value)
			}
		})

		var result any
		err := a.prepare(c, validate)
		if err == nil {
			result, err = fn(c)
		}

		if err == nil && !c.Written() && store.Session() != nil {
			if saveErr := store.SaveSession(c.Context()); saveErr != nil {
				err = ErrInternal("", WithError(saveErr))
			}
		}

		a.respond(c, result, err)
	}
}

// prepare extracts and validates the parameters.
func (a *App) prepare(c *requestContext, validate bool) error {
	bag, err := params.FromRequest(c.request, a.paramsOptions...)
	if err != nil {
		return err
	}
	c.params = bag

	if !validate || a.validator == nil {
		return nil
	}

	in := validator.Input{Params: bag, Cookie: c.cookies.Bag()}
	if s := c.cookies.Session(); s != nil {
		in.Session = s.Bag()
	}
	report, err := a.validator.Validate(in)
	c.report = report
	return err
}

func (a *App) respond(c *requestContext, result any, err error) {
	if c.Written() {
		if err != nil {
			c.LogError("error after response started", slog.Any("error", err))
		}
		return
	}

	if err != nil && a.errorHandler != nil {
		err = a.errorHandler(c, err)
		if c.Written() {
			return
		}
	}

	if err != nil {
		status := StatusOf(err)
		if status >= http.StatusInternalServerError {
			c.LogError("request failed", slog.Int("status", status), slog.Any("error", err))
		} else {
			c.LogDebug("request rejected", slog.Int("status", status), slog.String("error", err.Error()))
		}
		c.response.Header().Set("Content-Type", contentTypeJSON)
		c.writeJSON(status, errorBody{Error: errorMessage{Message: messageOf(err)}})
		return
	}

	switch {
	case c.hasBody:
		c.writeBody(c.statusOr(http.StatusOK), c.body)
	case result == nil:
		c.response.WriteHeader(c.statusOr(http.StatusCreated))
	default:
		c.writeJSON(c.statusOr(http.StatusOK), dataBody{Data: result})
	}
}

type dataBody struct {
	Data any `json:"data"`
}

type errorMessage struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error errorMessage `json:"error"`
}

func (c *requestContext) statusOr(def int) int {
	if c.status > 0 {
		return c.status
	}
	return def
}

func (c *requestContext) writeBody(status int, body any) {
	switch b := body.(type) {
	case nil:
		c.response.WriteHeader(status)
	case string:
		c.writeRaw(status, []byte(b))
	case []byte:
		c.writeRaw(status, b)
	default:
		c.writeJSON(status, b)
	}
}

func (c *requestContext) writeJSON(status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.LogError("failed to encode response", slog.Any("error", err))
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorBody{Error: errorMessage{Message: http.StatusText(status)}})
	}
	if c.response.Header().Get("Content-Type") == "" {
		c.response.Header().Set("Content-Type", contentTypeJSON)
	}
	c.writeRaw(status, data)
}

func (c *requestContext) writeRaw(status int, data []byte) {
	c.response.WriteHeader(status)
	if _, err := c.response.Write(data); err != nil {
		c.LogDebug("failed to write response", slog.Any("error", err))
	}
}
