package cookie

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/fnhttp/pkg/logger"
	"github.com/dmitrymomot/fnhttp/pkg/params"
	"github.com/dmitrymomot/fnhttp/pkg/session"
)

// HeaderSetCookie is the pending response header written by Store.
const HeaderSetCookie = "Set-Cookie"

// Errors.
var (
	ErrNotFound      = errors.New("cookie: not found")
	ErrNoSession     = errors.New("cookie: session not configured")
	ErrSessionConfig = errors.New("cookie: invalid session config")
)

// Codec holds the cookie configuration shared by all requests.
// It is safe for concurrent use.
type Codec struct {
	cfg          Config
	sessionCodec session.Codec
	logger       *slog.Logger
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithSessionCodec sets the codec of the session cookie.
// Without it a SecureCodec is built from Config.Session.
func WithSessionCodec(c session.Codec) CodecOption {
	return func(cd *Codec) {
		cd.sessionCodec = c
	}
}

// WithLogger sets the logger passed to sessions.
func WithLogger(l *slog.Logger) CodecOption {
	return func(cd *Codec) {
		if l != nil {
			cd.logger = l
		}
	}
}

// New creates a Codec. Unset fields of cfg take their defaults.
func New(cfg Config, opts ...CodecOption) (*Codec, error) {
	cfg = cfg.withDefaults()
	c := &Codec{
		cfg:    cfg,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.Session != nil && c.sessionCodec == nil {
		sc, err := session.NewSecureCodec(*cfg.Session)
		if err != nil {
			return nil, errors.Join(ErrSessionConfig, err)
		}
		c.sessionCodec = sc
	}
	return c, nil
}

// Config returns the codec configuration with defaults applied.
func (c *Codec) Config() Config {
	return c.cfg
}

// Invoke creates the per-request store from the raw Cookie header.
// ok is false when the request carried no Cookie header.
// When sessions are enabled the session cookie is decoded right away.
func (c *Codec) Invoke(ctx context.Context, header string, ok bool) *Store {
	s := &Store{
		codec:  c,
		raw:    header,
		hasRaw: ok,
	}
	if c.cfg.Session != nil {
		s.session = session.New(c.cfg.Session.Key, c.sessionCodec, session.WithLogger(c.logger))
		value, found := s.Read(s.session.Key())
		s.session.Load(ctx, value, found)
	}
	return s
}

// FromRequest is Invoke with the request's Cookie headers.
func (c *Codec) FromRequest(r *http.Request) *Store {
	values := r.Header.Values("Cookie")
	return c.Invoke(r.Context(), strings.Join(values, "; "), len(values) > 0)
}

// Store is the cookie state of one request: the parsed inbound cookies
// and the pending Set-Cookie header. It is not safe for concurrent use.
type Store struct {
	codec   *Codec
	raw     string
	hasRaw  bool
	parsed  *params.Object
	session *session.Session
	headers map[string]string
}

// Read returns the URL-decoded value of key.
// Missing keys, empty values and requests without a Cookie header are absent.
func (s *Store) Read(key string) (string, bool) {
	v, ok := s.values().Get(key)
	if !ok {
		return "", false
	}
	str, _ := v.(string)
	return str, true
}

// Value is Read with ErrNotFound for absent keys.
func (s *Store) Value(key string) (string, error) {
	v, ok := s.Read(key)
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Write sets the pending Set-Cookie header and returns value unchanged.
// Only the last write of a request is emitted.
func (s *Store) Write(key, value string, opts ...Option) string {
	s.setCookie(format(key, &value, s.resolve(opts)))
	return value
}

// Delete writes an immediately expiring cookie.
// Numeric lifetimes are replaced by the 1970 expiry date.
func (s *Store) Delete(key string, opts ...Option) {
	s.setCookie(format(key, nil, s.resolve(opts)))
}

// SetCookie returns the pending Set-Cookie header value.
func (s *Store) SetCookie() (string, bool) {
	v, ok := s.headers[HeaderSetCookie]
	return v, ok
}

// Headers returns a copy of the pending response headers.
func (s *Store) Headers() map[string]string {
	out := make(map[string]string, len(s.headers))
	for k, v := range s.headers {
		out[k] = v
	}
	return out
}

// Session returns the request session, or nil when sessions are disabled.
func (s *Store) Session() *session.Session {
	return s.session
}

// SaveSession writes the session cookie when the session changed.
func (s *Store) SaveSession(ctx context.Context) error {
	if s.session == nil {
		return ErrNoSession
	}
	if !s.session.Changed() {
		return nil
	}
	value, err := s.session.Encode(ctx)
	if err != nil {
		return err
	}
	s.Write(s.session.Key(), value)
	return nil
}

// Bag exposes the inbound cookies for validation.
// Deleting a key only hides it from later reads in this request.
func (s *Store) Bag() *params.Object {
	return s.values()
}

func (s *Store) values() *params.Object {
	if s.parsed == nil {
		s.parsed = Parse(s.raw, s.hasRaw)
	}
	return s.parsed
}

func (s *Store) resolve(opts []Option) attributes {
	a := s.codec.cfg.attributes()
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func (s *Store) setCookie(v string) {
	if s.headers == nil {
		s.headers = make(map[string]string, 1)
	}
	s.headers[HeaderSetCookie] = v
}
