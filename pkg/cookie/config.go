package cookie

import (
	"strconv"
	"strings"

	"github.com/dmitrymomot/fnhttp/pkg/session"
)

// Config holds the default attributes of written cookies.
// Unset fields take the values of DefaultConfig, so
// Config{Domain: "example.com"} still writes Secure and HttpOnly cookies.
type Config struct {
	Domain   string  `env:"COOKIE_DOMAIN"`
	Path     string  `env:"COOKIE_PATH" envDefault:"/"`
	Expires  Expires `env:"COOKIE_EXPIRES" envDefault:"31536000"`
	Secure   Flag    `env:"COOKIE_SECURE" envDefault:"true"`
	HTTPOnly Flag    `env:"COOKIE_HTTP_ONLY" envDefault:"true"`

	// Session enables the session cookie. Nil disables sessions.
	Session *session.Config
}

// DefaultConfig returns path "/", a one year max-age, Secure and HttpOnly.
func DefaultConfig() Config {
	return Config{
		Path:     "/",
		Expires:  MaxAge(DefaultMaxAge),
		Secure:   On,
		HTTPOnly: On,
	}
}

// withDefaults fills the unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Path == "" {
		c.Path = def.Path
	}
	if c.Expires.IsZero() {
		c.Expires = def.Expires
	}
	if c.Secure == Unset {
		c.Secure = def.Secure
	}
	if c.HTTPOnly == Unset {
		c.HTTPOnly = def.HTTPOnly
	}
	return c
}

// Flag is a cookie attribute switch. The zero value is Unset and
// falls back to the default.
type Flag uint8

const (
	Unset Flag = iota
	On
	Off
)

// FlagOf returns On for true and Off for false.
func FlagOf(b bool) Flag {
	if b {
		return On
	}
	return Off
}

// Bool reports whether the flag is on, using def when it is Unset.
func (f Flag) Bool(def bool) bool {
	switch f {
	case On:
		return true
	case Off:
		return false
	default:
		return def
	}
}

// UnmarshalText accepts the values of strconv.ParseBool. Empty text is Unset.
func (f *Flag) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*f = Unset
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*f = FlagOf(b)
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (f Flag) MarshalText() ([]byte, error) {
	switch f {
	case On:
		return []byte("true"), nil
	case Off:
		return []byte("false"), nil
	default:
		return nil, nil
	}
}

// attributes is the resolved attribute set of one write.
type attributes struct {
	domain   string
	path     string
	expires  Expires
	secure   bool
	httpOnly bool
}

func (c Config) attributes() attributes {
	return attributes{
		domain:   c.Domain,
		path:     c.Path,
		expires:  c.Expires,
		secure:   c.Secure.Bool(true),
		httpOnly: c.HTTPOnly.Bool(true),
	}
}

// Option overrides a configured attribute for a single write.
// An explicit option always wins, including false and empty values.
type Option func(*attributes)

// WithDomain sets the domain attribute.
func WithDomain(domain string) Option {
	return func(a *attributes) {
		a.domain = domain
	}
}

// WithPath sets the path attribute. An empty path is written as "/".
func WithPath(path string) Option {
	return func(a *attributes) {
		a.path = path
	}
}

// WithExpires sets the lifetime.
func WithExpires(e Expires) Option {
	return func(a *attributes) {
		a.expires = e
	}
}

// WithMaxAge sets a relative lifetime in seconds.
func WithMaxAge(seconds int64) Option {
	return WithExpires(MaxAge(seconds))
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(a *attributes) {
		a.secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(a *attributes) {
		a.httpOnly = httpOnly
	}
}
