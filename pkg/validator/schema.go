package validator

import (
	"fmt"

	"github.com/dmitrymomot/fnhttp/pkg/params"
)

// Whitelist selects how a schema treats keys it does not declare.
type Whitelist string

const (
	// WhitelistNone accepts undeclared keys.
	WhitelistNone Whitelist = ""
	// WhitelistError fails validation when undeclared keys are present.
	WhitelistError Whitelist = "error"
	// WhitelistIgnore removes undeclared keys from the bag.
	WhitelistIgnore Whitelist = "ignore"
)

// Type is a structural type a rule may require.
type Type string

const (
	TypeAny     Type = ""
	TypeString  Type = params.KindString
	TypeNumber  Type = params.KindNumber
	TypeBoolean Type = params.KindBoolean
	TypeObject  Type = params.KindObject
	TypeArray   Type = params.KindArray
)

// DefaultFunc computes a default from a copy of the top-level params as they
// stand when the default fires: earlier defaults applied, stripped keys gone.
type DefaultFunc func(params *params.Object) any

// Rule is the constraint set of one key.
type Rule struct {
	Key      string
	Required bool
	Type     Type
	// In lists the allowed values. Nil means any value.
	In []any
	// Default is used when the key is absent. Nil means no default.
	Default any
	// DefaultFunc takes precedence over Default when set.
	DefaultFunc DefaultFunc
	// Schema is applied to object values and to every element of array values.
	Schema *Schema
}

// Rules is an ordered list of rules. Keys are checked in declaration order.
type Rules []Rule

// Schema describes an acceptable bag.
type Schema struct {
	Whitelist Whitelist
	Rules     Rules
}

// hasDefault reports whether the rule injects a value for absent keys.
func (r Rule) hasDefault() bool {
	return r.DefaultFunc != nil || r.Default != nil
}

func (r Rule) defaultValue(snapshot *params.Object) any {
	if r.DefaultFunc != nil {
		return params.Normalize(r.DefaultFunc(snapshot))
	}
	return params.CloneValue(params.Normalize(r.Default))
}

// Declares reports whether key has a rule in the schema.
func (s *Schema) Declares(key string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Rules {
		if r.Key == key {
			return true
		}
	}
	return false
}

// Check validates the schema itself: known whitelist and type values,
// non-empty unique keys and at most one default form per rule.
// Nested schemas are checked recursively; errors carry the dotted path.
func (s *Schema) Check() error {
	return s.check("")
}

func (s *Schema) check(prefix string) error {
	if s == nil {
		return nil
	}
	switch s.Whitelist {
	case WhitelistNone, WhitelistError, WhitelistIgnore:
	default:
		return fmt.Errorf("%w: %sunknown whitelist %q", ErrInvalidSchema, prefix, s.Whitelist)
	}

	seen := make(map[string]struct{}, len(s.Rules))
	for _, r := range s.Rules {
		if r.Key == "" {
			return fmt.Errorf("%w: %srule with empty key", ErrInvalidSchema, prefix)
		}
		path := prefix + r.Key
		if _, dup := seen[r.Key]; dup {
			return fmt.Errorf("%w: %s: duplicate rule", ErrInvalidSchema, path)
		}
		seen[r.Key] = struct{}{}

		switch r.Type {
		case TypeAny, TypeString, TypeNumber, TypeBoolean, TypeObject, TypeArray:
		default:
			return fmt.Errorf("%w: %s: unknown type %q", ErrInvalidSchema, path, r.Type)
		}
		if r.Default != nil && r.DefaultFunc != nil {
			return fmt.Errorf("%w: %s: both default and default func set", ErrInvalidSchema, path)
		}
		if err := r.Schema.check(path + "."); err != nil {
			return err
		}
	}
	return nil
}

