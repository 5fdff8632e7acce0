package validator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/fnhttp/pkg/logger"
	"github.com/dmitrymomot/fnhttp/pkg/params"
)

// Bag is a mutable set of named values.
// *params.Object implements it; cookie and session stores expose adapters.
type Bag interface {
	Get(key string) (any, bool)
	Set(key string, v any)
	Delete(key string)
	Keys() []string
}

// Config holds one optional schema per source.
type Config struct {
	Params  *Schema
	Cookie  *Schema
	Session *Schema
}

// Input is the request state validated in one call.
// A nil Cookie or Session means the request has none; a configured
// schema for that source then fails with a not found error.
type Input struct {
	Params  any
	Cookie  Bag
	Session Bag
}

// Warning is an advisory about a rule the source cannot enforce.
type Warning struct {
	Source  Source
	Path    string
	Rule    string
	Message string
}

// Report collects what a successful or failed Validate call did besides failing.
type Report struct {
	Warnings []Warning
	// Stripped lists the dotted keys removed by ignore whitelists.
	Stripped []string
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger that receives warnings.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// Validator checks request state against a Config.
// It is safe for concurrent use; schemas must not be modified after New.
type Validator struct {
	cfg      Config
	logger   *slog.Logger
	warnings []Warning
}

// New checks every configured schema and returns a Validator.
// Rules a source cannot enforce are reported by Warnings, not rejected.
func New(cfg Config, opts ...Option) (*Validator, error) {
	v := &Validator{
		cfg:    cfg,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(v)
	}

	for _, s := range v.schemas() {
		if err := s.schema.Check(); err != nil {
			return nil, fmt.Errorf("%s: %w", s.source, err)
		}
		v.warnings = append(v.warnings, staticWarnings(s.source, s.schema, "")...)
	}
	for _, w := range v.warnings {
		v.logger.Warn(w.Message, slog.String("source", string(w.Source)), slog.String("path", w.Path))
	}

	return v, nil
}

// Warnings returns the static warnings found by New.
func (v *Validator) Warnings() []Warning {
	return append([]Warning(nil), v.warnings...)
}

// Config returns the configured schemas.
func (v *Validator) Config() Config {
	return v.cfg
}

// Validate runs params, cookie and session validation in that order.
// The first violation aborts the call. Defaults applied before the failure stay.
func (v *Validator) Validate(in Input) (Report, error) {
	var rep Report

	if v.cfg.Params != nil {
		bag := asBag(in.Params)
		w := walker{source: SourceParams, caps: SourceParams.capabilities(), root: bag, report: &rep}
		if err := w.validate(bag, "", v.cfg.Params); err != nil {
			return v.finish(rep), err
		}
	}

	if v.cfg.Cookie != nil {
		if isNil(in.Cookie) {
			return v.finish(rep), notFoundError(SourceCookie, ErrCookieNotFound)
		}
		w := walker{source: SourceCookie, caps: SourceCookie.capabilities(), report: &rep}
		if err := w.validate(in.Cookie, "", v.cfg.Cookie); err != nil {
			return v.finish(rep), err
		}
	}

	if v.cfg.Session != nil {
		if isNil(in.Session) {
			return v.finish(rep), notFoundError(SourceSession, ErrSessionNotFound)
		}
		w := walker{source: SourceSession, caps: SourceSession.capabilities(), report: &rep}
		if err := w.validate(in.Session, "", v.cfg.Session); err != nil {
			return v.finish(rep), err
		}
	}

	return v.finish(rep), nil
}

func (v *Validator) finish(rep Report) Report {
	for _, w := range rep.Warnings {
		v.logger.Warn(w.Message, slog.String("source", string(w.Source)), slog.String("path", w.Path))
	}
	return rep
}

type sourceSchema struct {
	source Source
	schema *Schema
}

func (v *Validator) schemas() []sourceSchema {
	all := []sourceSchema{
		{SourceParams, v.cfg.Params},
		{SourceCookie, v.cfg.Cookie},
		{SourceSession, v.cfg.Session},
	}
	out := all[:0]
	for _, s := range all {
		if s.schema != nil {
			out = append(out, s)
		}
	}
	return out
}

// ValidateParams validates a params bag against a single schema.
// Messages are untagged.
func ValidateParams(schema *Schema, bag any) error {
	if schema == nil {
		return nil
	}
	if err := schema.Check(); err != nil {
		return err
	}
	b := asBag(bag)
	w := walker{source: SourceParams, caps: SourceParams.capabilities(), root: b, report: &Report{}}
	return w.validate(b, "", schema)
}

// walker performs one recursive validation pass over a single source.
// root is the top-level bag handed to default functions.
type walker struct {
	source Source
	caps   capabilities
	root   Bag
	report *Report
}

func (w *walker) validate(bag Bag, prefix string, s *Schema) error {
	if s.Whitelist != WhitelistNone {
		var extra []string
		for _, k := range bag.Keys() {
			if !s.Declares(k) {
				extra = append(extra, k)
			}
		}
		if len(extra) > 0 {
			qualified := make([]string, len(extra))
			for i, k := range extra {
				qualified[i] = prefix + k
			}
			if s.Whitelist == WhitelistError {
				e := newError(w.source, RuleWhitelist, strings.TrimSuffix(prefix, "."),
					"Unpermitted params: "+strings.Join(qualified, ", "),
					map[string]any{"keys": strings.Join(qualified, ", ")})
				e.Keys = qualified
				return e
			}
			for _, k := range extra {
				bag.Delete(k)
			}
			w.report.Stripped = append(w.report.Stripped, qualified...)
		}
	}

	for _, r := range s.Rules {
		if err := w.validateRule(bag, prefix, r); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) validateRule(bag Bag, prefix string, r Rule) error {
	path := prefix + r.Key
	value, present := bag.Get(r.Key)

	if !present && r.hasDefault() {
		if w.caps.defaults {
			var snapshot *params.Object
			if r.DefaultFunc != nil {
				snapshot = snapshotOf(w.root)
			}
			value = r.defaultValue(snapshot)
			bag.Set(r.Key, value)
			present = true
		} else {
			w.warn(path, "default", fmt.Sprintf("%s does not support default rules, %s left unset.", w.source, path))
		}
	}

	if r.Required && (!present || value == nil) {
		return newError(w.source, RuleRequired, path, path+" is required.", nil)
	}
	if !present {
		return nil
	}

	if r.Type != TypeAny && w.caps.types && !matchesType(value, r.Type) {
		return newError(w.source, RuleType, path, fmt.Sprintf("%s must be a %s.", path, r.Type),
			map[string]any{"type": string(r.Type)})
	}

	if r.In != nil && !contains(r.In, value) {
		list := formatList(r.In)
		return newError(w.source, RuleIn, path, fmt.Sprintf("%s must be in %s.", path, list),
			map[string]any{"values": list})
	}

	if r.Schema == nil {
		return nil
	}
	if !w.caps.nested {
		w.warn(path, "schema", fmt.Sprintf("%s does not support nested rules, %s not checked.", w.source, path))
		return nil
	}
	switch t := params.Normalize(value).(type) {
	case []any:
		for _, item := range t {
			if err := w.validate(asBag(item), path+".", r.Schema); err != nil {
				return err
			}
		}
	case *params.Object:
		return w.validate(t, path+".", r.Schema)
	}
	return nil
}

func (w *walker) warn(path, rule, msg string) {
	w.report.Warnings = append(w.report.Warnings, Warning{
		Source:  w.source,
		Path:    path,
		Rule:    rule,
		Message: msg,
	})
}

func matchesType(v any, t Type) bool {
	switch t {
	case TypeArray:
		_, ok := v.([]any)
		return ok
	case TypeObject:
		o, ok := v.(*params.Object)
		return ok && o != nil
	default:
		return params.TypeOf(v) == string(t)
	}
}

func contains(list []any, v any) bool {
	for _, item := range list {
		if params.Equal(item, v) {
			return true
		}
	}
	return false
}

func formatList(list []any) string {
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = params.Format(item)
	}
	return strings.Join(parts, ", ")
}

// asBag returns v as a Bag. Values that are not objects yield an empty
// bag that drops writes.
func asBag(v any) Bag {
	switch t := v.(type) {
	case *params.Object:
		if t != nil {
			return t
		}
	case Bag:
		if !isNil(t) {
			return t
		}
	}
	return (*params.Object)(nil)
}

func snapshotOf(b Bag) *params.Object {
	if o, ok := b.(*params.Object); ok {
		if o == nil {
			return params.NewObject()
		}
		return o.Clone()
	}
	o := params.NewObject()
	for _, k := range b.Keys() {
		v, _ := b.Get(k)
		o.Set(k, params.CloneValue(params.Normalize(v)))
	}
	return o
}

func isNil(b Bag) bool {
	if b == nil {
		return true
	}
	if o, ok := b.(*params.Object); ok && o == nil {
		return true
	}
	return false
}

func staticWarnings(src Source, s *Schema, prefix string) []Warning {
	if s == nil {
		return nil
	}
	caps := src.capabilities()
	var out []Warning
	for _, r := range s.Rules {
		path := prefix + r.Key
		if r.Type != TypeAny && !caps.types {
			out = append(out, Warning{Source: src, Path: path, Rule: "type",
				Message: fmt.Sprintf("%s does not support type rules, ignoring %s.", src, path)})
		}
		if r.hasDefault() && !caps.defaults {
			out = append(out, Warning{Source: src, Path: path, Rule: "default",
				Message: fmt.Sprintf("%s does not support default rules, ignoring %s.", src, path)})
		}
		if r.Schema != nil {
			if !caps.nested {
				out = append(out, Warning{Source: src, Path: path, Rule: "schema",
					Message: fmt.Sprintf("%s does not support nested rules, ignoring %s.", src, path)})
				continue
			}
			out = append(out, staticWarnings(src, r.Schema, path+".")...)
		}
	}
	return out
}
