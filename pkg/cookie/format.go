package cookie

import (
	"net/url"
	"strings"

	"github.com/dmitrymomot/fnhttp/pkg/params"
)

// Parse splits a Cookie header into decoded name/value pairs in header order.
// The first occurrence of a name wins; pairs with an empty name or value are skipped.
func Parse(header string, ok bool) *params.Object {
	out := params.NewObject()
	if !ok || header == "" {
		return out
	}
	for part := range strings.SplitSeq(header, ";") {
		name, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" || out.Has(name) {
			continue
		}
		out.Set(name, Unescape(value))
	}
	return out
}

// format builds a Set-Cookie value:
//
//	name=value;[max-age=N;|expires=DATE;]path=P;[domain=D;][Secure;][HttpOnly;]
//
// A nil value deletes the cookie: it is written empty with the 1970 expiry date.
func format(name string, value *string, a attributes) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	if value == nil {
		a.expires = ExpiresAt(DeletedExpires)
	} else {
		b.WriteString(Escape(*value))
	}
	b.WriteByte(';')

	b.WriteString(a.expires.attribute())

	path := a.path
	if path == "" {
		path = "/"
	}
	b.WriteString("path=" + path + ";")

	if a.domain != "" {
		b.WriteString("domain=" + a.domain + ";")
	}
	if a.secure {
		b.WriteString("Secure;")
	}
	if a.httpOnly {
		b.WriteString("HttpOnly;")
	}
	return b.String()
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// Escape percent-encodes s leaving A-Z a-z 0-9 and - _ . ! ~ * ' ( ) as is.
// Spaces become %20.
func Escape(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}

// Unescape reverses Escape. Plus signs are kept. Malformed escapes
// return s unchanged.
func Unescape(s string) string {
	v, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return v
}
