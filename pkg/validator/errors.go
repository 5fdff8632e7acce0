package validator

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSchema   = errors.New("validator: invalid schema")
	ErrCookieNotFound  = errors.New("validator: cookie not found")
	ErrSessionNotFound = errors.New("validator: session not found")
)

// Rule codes carried by ValidationError.
const (
	RuleWhitelist = "whitelist"
	RuleRequired  = "required"
	RuleType      = "type"
	RuleIn        = "in"
	RuleMissing   = "missing"
)

// ValidationError is the single failure kind of Validate.
// Message is the client-facing text and is returned verbatim by Error.
type ValidationError struct {
	Source Source
	// Path is the dotted key the failure refers to.
	// Whitelist failures list the offending keys in Keys instead.
	Path    string
	Keys    []string
	Rule    string
	Message string

	TranslationKey    string
	TranslationValues map[string]any

	err error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// TranslateFunc resolves a translation key with placeholder values.
type TranslateFunc func(key string, values map[string]any) string

// Translate replaces Message with the translated text.
// Nil fn or an empty TranslationKey leave the error unchanged.
func (e *ValidationError) Translate(fn TranslateFunc) {
	if e == nil || fn == nil || e.TranslationKey == "" {
		return
	}
	if msg := fn(e.TranslationKey, e.TranslationValues); msg != "" {
		e.Message = msg
	}
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidationError extracts the *ValidationError from err, or nil.
func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func newError(src Source, rule, path, msg string, values map[string]any) *ValidationError {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = path
	values["source"] = string(src)
	return &ValidationError{
		Source:            src,
		Path:              path,
		Rule:              rule,
		Message:           src.Tag() + msg,
		TranslationKey:    "validation." + rule,
		TranslationValues: values,
	}
}

func notFoundError(src Source, cause error) *ValidationError {
	return &ValidationError{
		Source:            src,
		Rule:              RuleMissing,
		Message:           fmt.Sprintf("%snot found.", src.Tag()),
		TranslationKey:    "validation." + RuleMissing,
		TranslationValues: map[string]any{"source": string(src)},
		err:               cause,
	}
}
