package session

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	json "github.com/goccy/go-json"

	"github.com/dmitrymomot/fnhttp/pkg/logger"
	"github.com/dmitrymomot/fnhttp/pkg/params"
)

// Codec turns session content into a cookie value and back.
type Codec interface {
	Encode(ctx context.Context, content *params.Object) (string, error)
	Decode(ctx context.Context, value string) (*params.Object, error)
}

// Session is the structured content of one cookie for the duration of a request.
//
// Content is decoded once by Load. Reads return copies; every update goes
// through Set, Delete or SetContent, which mark the session changed so the
// cookie is written again at response time.
type Session struct {
	key     string
	codec   Codec
	logger  *slog.Logger
	content *params.Object
	loaded  bool
	changed bool

	// exposed is set when Bag handed out a nested value that may be
	// modified in place; Changed then compares against the loaded state.
	exposed  bool
	original []byte
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for decode failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty, unloaded session stored under the cookie key.
func New(key string, codec Codec, opts ...Option) *Session {
	if key == "" {
		key = DefaultKey
	}
	s := &Session{
		key:    key,
		codec:  codec,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load decodes the raw cookie value. It runs once; later calls are ignored.
// An absent or undecodable value leaves the session empty and is not an error.
func (s *Session) Load(ctx context.Context, raw string, ok bool) {
	if s.loaded {
		return
	}
	s.loaded = true
	s.content = params.NewObject()

	if !ok || raw == "" || s.codec == nil {
		return
	}
	content, err := s.codec.Decode(ctx, raw)
	if err != nil {
		s.logger.DebugContext(ctx, "session decode failed",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		return
	}
	if content != nil {
		s.content = content
	}
}

// Key returns the cookie name of the session.
func (s *Session) Key() string {
	return s.key
}

// Content returns a deep copy of the current content.
func (s *Session) Content() *params.Object {
	return s.current().Clone()
}

// Get returns a copy of the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.current().Get(key)
	if !ok {
		return nil, false
	}
	return params.CloneValue(v), true
}

// Set stores a value and marks the session changed.
func (s *Session) Set(key string, v any) {
	s.current().Set(key, params.CloneValue(params.Normalize(v)))
	s.changed = true
}

// Delete removes a key. The session is marked changed only if the key existed.
func (s *Session) Delete(key string) {
	c := s.current()
	if !c.Has(key) {
		return
	}
	c.Delete(key)
	s.changed = true
}

// SetContent replaces the whole content and marks the session changed.
// A nil content clears the session.
func (s *Session) SetContent(content *params.Object) {
	if content == nil {
		content = params.NewObject()
	}
	s.loaded = true
	s.content = content.Clone()
	s.changed = true
}

// Changed reports whether the cookie has to be written again.
func (s *Session) Changed() bool {
	if s.changed {
		return true
	}
	if !s.exposed {
		return false
	}
	now, err := json.Marshal(s.current())
	if err != nil {
		return true
	}
	return !bytes.Equal(now, s.original)
}

// Encode encodes the current content with the session codec.
func (s *Session) Encode(ctx context.Context) (string, error) {
	if s.codec == nil {
		return "", fmt.Errorf("session %q: no codec configured", s.key)
	}
	return s.codec.Encode(ctx, s.current())
}

// Bag exposes the live content for in-place validation.
// Top-level writes mark the session changed; nested values are tracked
// by comparing against the loaded content.
func (s *Session) Bag() *Bag {
	return &Bag{s: s}
}

func (s *Session) current() *params.Object {
	if s.content == nil {
		s.content = params.NewObject()
	}
	return s.content
}

// Bag is a write-through view of a session's content.
type Bag struct {
	s *Session
}

// Get returns the live value stored under key.
func (b *Bag) Get(key string) (any, bool) {
	v, ok := b.s.current().Get(key)
	if !ok {
		return nil, false
	}
	switch v.(type) {
	case *params.Object, []any:
		b.s.expose()
	}
	return v, true
}

// Set stores a value and marks the session changed.
func (b *Bag) Set(key string, v any) {
	b.s.Set(key, v)
}

// Delete removes a key and marks the session changed.
func (b *Bag) Delete(key string) {
	b.s.Delete(key)
}

// Keys returns the top-level keys.
func (b *Bag) Keys() []string {
	return b.s.current().Keys()
}

func (s *Session) expose() {
	if s.exposed {
		return
	}
	data, err := json.Marshal(s.current())
	if err != nil {
		s.changed = true
		return
	}
	s.exposed = true
	s.original = data
}

// Value returns the value under key converted to T.
// Numbers are stored as float64 and objects as *params.Object.
func Value[T any](s *Session, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}

	val, ok := s.Get(key)
	if !ok {
		return zero, ErrNotFound
	}

	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%w for key: %s", ErrTypeMismatch, key)
	}
	return typed, nil
}

// ValueOr returns the value under key, or defaultVal when it is missing
// or has another type.
func ValueOr[T any](s *Session, key string, defaultVal T) T {
	val, err := Value[T](s, key)
	if err != nil {
		return defaultVal
	}
	return val
}
