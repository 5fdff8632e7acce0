package params

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultMaxBodySize caps the request body read by FromRequest.
const DefaultMaxBodySize int64 = 4 << 20

type options struct {
	maxBodySize int64
	sanitize    func(string) string
}

// Option configures FromRequest.
type Option func(*options)

// WithMaxBodySize sets the maximum number of body bytes read.
// Non-positive values keep the default.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithSanitizer applies fn to every string value of the extracted bag.
// Keys are left untouched.
func WithSanitizer(fn func(string) string) Option {
	return func(o *options) {
		o.sanitize = fn
	}
}

// FromRequest builds the raw parameter bag of a request.
//
// A body that parses as JSON yields its decoded value; any other non-empty
// body yields the raw string. Without a body the query string is used
// (first value per key, in the order they appear). A request with neither
// yields an empty *Object.
func FromRequest(r *http.Request, opts ...Option) (any, error) {
	o := options{maxBodySize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(&o)
	}

	body, err := readBody(r, o.maxBodySize)
	if err != nil {
		return nil, err
	}

	var bag any
	switch {
	case len(body) > 0:
		if v, err := Decode(body); err == nil {
			bag = v
		} else {
			bag = string(body)
		}
	case r.URL != nil && r.URL.RawQuery != "":
		bag = ParseQuery(r.URL.RawQuery)
	default:
		bag = NewObject()
	}

	if o.sanitize != nil {
		bag = sanitizeValue(bag, o.sanitize)
	}
	return bag, nil
}

// ParseQuery parses a URL query string into an Object,
// keeping the first value of every key in order of appearance.
// Malformed pairs are skipped.
func ParseQuery(raw string) *Object {
	obj := NewObject()
	for pair := range strings.SplitSeq(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil || key == "" || obj.Has(key) {
			continue
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			continue
		}
		obj.Set(key, val)
	}
	return obj
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	defer r.Body.Close()

	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, errors.Join(ErrReadBody, err)
	}
	if int64(len(data)) > limit {
		return nil, ErrBodyTooLarge
	}
	return data, nil
}

func sanitizeValue(v any, fn func(string) string) any {
	switch t := v.(type) {
	case string:
		return fn(t)
	case []any:
		for i, item := range t {
			t[i] = sanitizeValue(item, fn)
		}
		return t
	case *Object:
		for _, k := range t.Keys() {
			item, _ := t.Get(k)
			t.Set(k, sanitizeValue(item, fn))
		}
		return t
	default:
		return v
	}
}
