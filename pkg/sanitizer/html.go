package sanitizer

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// StripHTML removes every tag and returns plain text. Entities produced by
// the policy are unescaped so "a & b" stays "a & b".
func StripHTML(s string) string {
	initPolicies()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// SanitizeHTML keeps basic formatting (p, a, strong, em, lists, code) and
// drops scripts, event handlers and javascript: URLs.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// Func adapts a bluemonday policy to a string transform, the form accepted
// by params.WithSanitizer. A nil policy returns input unchanged.
//
//	params.FromRequest(r, params.WithSanitizer(sanitizer.Func(policy)))
func Func(policy *bluemonday.Policy) func(string) string {
	if policy == nil {
		return func(s string) string { return s }
	}
	return policy.Sanitize
}
