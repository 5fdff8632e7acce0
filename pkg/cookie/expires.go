package cookie

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DeletedExpires is the expiry date written when a cookie is deleted.
const DeletedExpires = "Thu, 01 Jan 1970 00:00:01 GMT"

// DefaultMaxAge is the default cookie lifetime in seconds (one year).
const DefaultMaxAge = 31536000

type expiresKind uint8

const (
	expiresNone expiresKind = iota
	expiresMaxAge
	expiresDate
	expiresSession
)

// noExpiryText is the text form of NoExpiry.
const noExpiryText = "session"

// Expires is the lifetime of a cookie: relative seconds (max-age) or an
// absolute date (expires). The zero value is unset and takes the default
// lifetime; NoExpiry emits neither attribute.
type Expires struct {
	kind    expiresKind
	seconds int64
	date    string
}

// NoExpiry writes browser-session cookies without max-age or expires.
var NoExpiry = Expires{kind: expiresSession}

// MaxAge returns a relative lifetime written as max-age=N.
func MaxAge(seconds int64) Expires {
	return Expires{kind: expiresMaxAge, seconds: seconds}
}

// ExpiresAt returns an absolute expiry written verbatim as expires=DATE.
func ExpiresAt(date string) Expires {
	return Expires{kind: expiresDate, date: date}
}

// ExpiresTime returns an absolute expiry formatted as an HTTP date.
func ExpiresTime(t time.Time) Expires {
	return ExpiresAt(t.UTC().Format(http.TimeFormat))
}

// IsZero reports whether the lifetime is unset.
func (e Expires) IsZero() bool {
	return e.kind == expiresNone
}

// attribute renders the lifetime attribute including its trailing semicolon.
func (e Expires) attribute() string {
	switch e.kind {
	case expiresMaxAge:
		return "max-age=" + strconv.FormatInt(e.seconds, 10) + ";"
	case expiresDate:
		return "expires=" + e.date + ";"
	default:
		return ""
	}
}

// String returns the seconds or the date.
func (e Expires) String() string {
	switch e.kind {
	case expiresMaxAge:
		return strconv.FormatInt(e.seconds, 10)
	case expiresDate:
		return e.date
	case expiresSession:
		return noExpiryText
	default:
		return ""
	}
}

// UnmarshalText parses an integer as MaxAge, "session" as NoExpiry and
// anything else as ExpiresAt. Empty text yields the zero value.
func (e *Expires) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*e = Expires{}
		return nil
	}
	if s == noExpiryText {
		*e = NoExpiry
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*e = MaxAge(n)
	} else {
		*e = ExpiresAt(s)
	}
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (e Expires) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
