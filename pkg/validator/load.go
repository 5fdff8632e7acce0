package validator

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/fnhttp/pkg/params"
)

// LoadSchema decodes a schema from YAML (or JSON) keeping rule order:
//
//	whitelist: error
//	rules:
//	  name:
//	    required: true
//	    type: string
//	  role:
//	    in: [admin, user]
//	    default: user
//	  tags:
//	    type: array
//	    schema:
//	      rules:
//	        label: {required: true}
//
// Function defaults cannot be expressed in a file; set Rule.DefaultFunc in code.
func LoadSchema(data []byte) (*Schema, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidSchema)
	}
	s, err := schemaFromNode(root, "")
	if err != nil {
		return nil, err
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadConfig decodes per-source schemas from a document with optional
// top-level params, cookie and session keys.
func LoadConfig(data []byte) (Config, error) {
	var cfg Config
	root, err := parseDocument(data)
	if err != nil || root == nil {
		return cfg, err
	}
	if root.Kind != yaml.MappingNode {
		return cfg, fmt.Errorf("%w: line %d: config must be a mapping", ErrInvalidSchema, root.Line)
	}

	for i := 0; i < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		s, err := schemaFromNode(val, key.Value+": ")
		if err != nil {
			return Config{}, err
		}
		switch Source(key.Value) {
		case SourceParams:
			cfg.Params = s
		case SourceCookie:
			cfg.Cookie = s
		case SourceSession:
			cfg.Session = s
		default:
			return Config{}, fmt.Errorf("%w: line %d: unknown source %q", ErrInvalidSchema, key.Line, key.Value)
		}
	}
	return cfg, nil
}

func parseDocument(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}

func schemaFromNode(n *yaml.Node, path string) (*Schema, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %sline %d: schema must be a mapping", ErrInvalidSchema, path, n.Line)
	}
	s := &Schema{}
	for i := 0; i < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "whitelist":
			s.Whitelist = Whitelist(val.Value)
		case "rules":
			if val.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("%w: %sline %d: rules must be a mapping", ErrInvalidSchema, path, val.Line)
			}
			for j := 0; j < len(val.Content); j += 2 {
				r, err := ruleFromNode(val.Content[j].Value, val.Content[j+1], path)
				if err != nil {
					return nil, err
				}
				s.Rules = append(s.Rules, r)
			}
		default:
			return nil, fmt.Errorf("%w: %sline %d: unknown schema field %q", ErrInvalidSchema, path, key.Line, key.Value)
		}
	}
	return s, nil
}

func ruleFromNode(key string, n *yaml.Node, path string) (Rule, error) {
	r := Rule{Key: key}
	// "key: {}" and "key:" both declare a rule without constraints.
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return r, nil
	}
	if n.Kind != yaml.MappingNode {
		return r, fmt.Errorf("%w: %s%s: line %d: rule must be a mapping", ErrInvalidSchema, path, key, n.Line)
	}

	for i := 0; i < len(n.Content); i += 2 {
		field, val := n.Content[i], n.Content[i+1]
		switch field.Value {
		case "required":
			b, err := strconv.ParseBool(val.Value)
			if err != nil {
				return r, fmt.Errorf("%w: %s%s: line %d: required must be a boolean", ErrInvalidSchema, path, key, val.Line)
			}
			r.Required = b
		case "type":
			r.Type = Type(val.Value)
		case "in":
			v, err := nodeValue(val)
			if err != nil {
				return r, err
			}
			list, ok := v.([]any)
			if !ok {
				return r, fmt.Errorf("%w: %s%s: line %d: in must be a list", ErrInvalidSchema, path, key, val.Line)
			}
			r.In = list
		case "default":
			v, err := nodeValue(val)
			if err != nil {
				return r, err
			}
			r.Default = v
		case "schema":
			nested, err := schemaFromNode(val, path+key+".")
			if err != nil {
				return r, err
			}
			r.Schema = nested
		default:
			return r, fmt.Errorf("%w: %s%s: line %d: unknown rule field %q", ErrInvalidSchema, path, key, field.Line, field.Value)
		}
	}
	return r, nil
}

// nodeValue converts a YAML node into a bag value. Mappings keep key order.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		o := params.NewObject()
		for i := 0; i < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			o.Set(n.Content[i].Value, v)
		}
		return o, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidSchema, n.Line, err)
		}
		return params.Normalize(v), nil
	default:
		return nil, fmt.Errorf("%w: line %d: unsupported value", ErrInvalidSchema, n.Line)
	}
}
