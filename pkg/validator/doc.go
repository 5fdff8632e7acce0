// Package validator checks request parameters, cookies and session content
// against declarative, recursively nested schemas.
//
// A Schema lists rules in order. Each rule may require its key, fix its
// structural type, restrict it to a set of values, provide a default and
// apply a nested schema to object values or to every element of an array.
// Keys not declared by a schema are accepted, rejected or stripped depending
// on its Whitelist.
//
// For every declared key the checks run in a fixed order: default, required,
// type, in, nested schema. The first violation stops validation and is
// returned as a *ValidationError whose message is meant for the client:
//
//	key is required.
//	key must be a number.
//	key must be in 1, 2.
//	Unpermitted params: key.a, key.b
//	[cookie] token is required.
//
// Nested keys are reported as dotted paths; array indexes are not part of
// the path. Defaults applied before a failure are kept.
//
// Cookies only support required and in rules. Sessions support everything but
// defaults. Unsupported rules are skipped and reported as warnings through
// Validator.Warnings, Report.Warnings and the configured logger.
//
// Usage:
//
//	v, err := validator.New(validator.Config{
//		Params: &validator.Schema{
//			Whitelist: validator.WhitelistError,
//			Rules: validator.Rules{
//				{Key: "name", Required: true, Type: validator.TypeString},
//				{Key: "page", Type: validator.TypeNumber, Default: 1},
//			},
//		},
//	})
//	if err != nil {
//		return err
//	}
//	report, err := v.Validate(validator.Input{Params: bag})
//
// Schemas can also be loaded from YAML with LoadSchema and LoadConfig.
package validator
