package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router is the interface handlers use to declare routes.
type Router interface {
	GET(path string, fn HandlerFunc, mw ...Middleware)
	POST(path string, fn HandlerFunc, mw ...Middleware)
	PUT(path string, fn HandlerFunc, mw ...Middleware)
	PATCH(path string, fn HandlerFunc, mw ...Middleware)
	DELETE(path string, fn HandlerFunc, mw ...Middleware)

	// Handle registers fn for an arbitrary method.
	Handle(method, path string, fn HandlerFunc, mw ...Middleware)

	// Route creates a group sharing a path prefix.
	Route(pattern string, fn func(r Router))

	// Mount attaches a plain http.Handler. It bypasses the function pipeline.
	Mount(pattern string, h http.Handler)
}

type routerAdapter struct {
	router chi.Router
	app    *App
}

func (r *routerAdapter) GET(path string, fn HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodGet, path, fn, mw...)
}

func (r *routerAdapter) POST(path string, fn HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodPost, path, fn, mw...)
}

func (r *routerAdapter) PUT(path string, fn HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodPut, path, fn, mw...)
}

func (r *routerAdapter) PATCH(path string, fn HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodPatch, path, fn, mw...)
}

func (r *routerAdapter) DELETE(path string, fn HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodDelete, path, fn, mw...)
}

func (r *routerAdapter) Handle(method, path string, fn HandlerFunc, mw ...Middleware) {
	r.router.Method(method, path, r.wrap(fn, mw...))
}

func (r *routerAdapter) Route(pattern string, fn func(Router)) {
	r.router.Route(pattern, func(cr chi.Router) {
		fn(&routerAdapter{router: cr, app: r.app})
	})
}

func (r *routerAdapter) Mount(pattern string, h http.Handler) {
	r.router.Mount(pattern, h)
}

func (r *routerAdapter) wrap(fn HandlerFunc, mw ...Middleware) http.HandlerFunc {
	return r.app.serve(r.app.chain(fn, mw...), true)
}
