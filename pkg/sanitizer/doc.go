// Package sanitizer cleans user-supplied strings with bluemonday policies.
//
// The functions have the func(string) string shape, so they plug straight
// into request parameter extraction:
//
//	bag, err := params.FromRequest(r, params.WithSanitizer(sanitizer.StripHTML))
package sanitizer
