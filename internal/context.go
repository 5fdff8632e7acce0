package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/fnhttp/pkg/cookie"
	"github.com/dmitrymomot/fnhttp/pkg/params"
	"github.com/dmitrymomot/fnhttp/pkg/session"
	"github.com/dmitrymomot/fnhttp/pkg/validator"
)

// Context is the per-request view handed to functions and middleware.
// It implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the response writer. Writing to it directly skips
	// response shaping; cookies written before that point are still sent.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Params returns the validated parameter bag: a *params.Object for JSON
	// objects and query strings, otherwise the decoded JSON value or the
	// raw body string.
	Params() any

	// Param returns a top-level parameter. It reports false when the bag
	// is not an object or the key is missing.
	Param(key string) (any, bool)

	// URLParam returns a route parameter such as {id}.
	URLParam(name string) string

	// Report returns the advisories and stripped keys of validation.
	Report() validator.Report

	// Cookie returns the cookie store of the request.
	Cookie() *cookie.Store

	// Session returns the request session, or nil when sessions are off.
	Session() *session.Session

	// Headers returns the request headers.
	Headers() http.Header

	// Header returns a request header value.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// SetStatusCode overrides the response status.
	SetStatusCode(code int)

	// SetContentType sets the Content-Type response header. Short names
	// (plain, html, xml, csv, css, javascript, json, jsonp) are expanded;
	// other values are used as is. The charset defaults to utf-8.
	SetContentType(typ string, charset ...string)

	// SetBody replaces the response body. Strings and byte slices are
	// written as is, other values are encoded as JSON.
	SetBody(body any)

	// Written reports whether the response has started.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key, value any)

	// Get returns a value from the request context, or nil.
	Get(key any) any
}

type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	logger   *slog.Logger
	cookies  *cookie.Store
	params   any
	report   validator.Report

	status  int
	body    any
	hasBody bool
}

func newContext(w *ResponseWriter, r *http.Request, log *slog.Logger, cookies *cookie.Store) *requestContext {
	return &requestContext{
		request:  r,
		response: w,
		logger:   log,
		cookies:  cookies,
		params:   params.NewObject(),
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Params() any {
	return c.params
}

func (c *requestContext) Param(key string) (any, bool) {
	obj, ok := c.params.(*params.Object)
	if !ok {
		return nil, false
	}
	return obj.Get(key)
}

func (c *requestContext) URLParam(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Report() validator.Report {
	return c.report
}

func (c *requestContext) Cookie() *cookie.Store {
	return c.cookies
}

func (c *requestContext) Session() *session.Session {
	return c.cookies.Session()
}

func (c *requestContext) Headers() http.Header {
	return c.request.Header
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) SetStatusCode(code int) {
	c.status = code
}

func (c *requestContext) SetContentType(typ string, charset ...string) {
	c.response.Header().Set("Content-Type", contentType(typ, charset...))
}

func (c *requestContext) SetBody(body any) {
	c.body = body
	c.hasBody = true
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}
