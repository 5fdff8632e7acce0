// Package cookie reads the Cookie request header and builds the Set-Cookie
// response header of a request, optionally carrying a session.
//
// A Codec holds the configuration and is shared. Each request gets its own
// Store from Invoke or FromRequest:
//
//	codec, err := cookie.New(cookie.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		store := codec.FromRequest(r)
//		theme, ok := store.Read("theme")
//		store.Write("theme", "dark", cookie.WithMaxAge(3600))
//		if v, ok := store.SetCookie(); ok {
//			w.Header().Set("Set-Cookie", v)
//		}
//	}
//
// # Format
//
// Written cookies always follow the same attribute order:
//
//	name=value;[max-age=N;|expires=DATE;]path=P;[domain=D;][Secure;][HttpOnly;]
//
// The defaults are path "/", max-age one year, Secure and HttpOnly. Unset
// Config fields keep them; use Off and NoExpiry to switch them off. Options
// passed to Write override them for that call only. Delete writes an empty
// value that expired in 1970. Values are percent-encoded like JavaScript's
// encodeURIComponent. A Store keeps a single pending Set-Cookie header, so
// only the last write of a request reaches the client.
//
// # Sessions
//
// With Config.Session set, Invoke decodes the session cookie right away and
// Store.Session returns it. SaveSession writes the cookie back only when the
// session changed. Sessions use session.SecureCodec unless another codec is
// passed with WithSessionCodec:
//
//	cfg := cookie.DefaultConfig()
//	cfg.Session = &session.Config{Key: "sid", Secret: os.Getenv("SESSION_SECRET")}
//	codec, err := cookie.New(cfg)
package cookie
