package internal

// HandlerFunc is a business function. The returned value becomes the
// response body:
//   - an error: status from StatusOf, body {"error":{"message":"..."}}
//   - nil: 201 without a body
//   - anything else: 200 with body {"data": value}
//
// A status or body set on the Context takes precedence over the defaults.
type HandlerFunc func(c Context) (any, error)

// Handler declares routes on a router.
//
//	type Users struct{ repo *Repo }
//
//	func (h *Users) Routes(r fnhttp.Router) {
//		r.POST("/users", h.create)
//	}
type Handler interface {
	Routes(r Router)
}

// Middleware wraps a HandlerFunc. Middleware runs after parameters are
// validated and sees the same Context as the function.
//
//	func Auth(next fnhttp.HandlerFunc) fnhttp.HandlerFunc {
//		return func(c fnhttp.Context) (any, error) {
//			if _, ok := c.Session().Get("user_id"); !ok {
//				return nil, fnhttp.ErrUnauthorized("")
//			}
//			return next(c)
//		}
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler receives errors returned by functions, middleware and the
// request pipeline. It may write a response, set a status and body on the
// Context, or return an error to fall back to the default error body.
type ErrorHandler func(c Context, err error) error
