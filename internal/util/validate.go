package util

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
)

// draft202012 is the only JSON Schema dialect the validator understands.
const draft202012 = "https://json-schema.org/draft/2020-12/schema"

// ValidationError reports a JSON value that does not satisfy a schema.
type ValidationError struct {
	// Schema names the schema that rejected the value.
	Schema string `json:"schema"`
	// Err is the validator's report naming the failing keyword and location.
	Err error `json:"-"`
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s does not match schema: %v", e.Schema, e.Err)
}

// Unwrap returns the validator's report.
func (e *ValidationError) Unwrap() error { return e.Err }

// Validator checks decoded JSON values against a compiled JSON schema. It is
// immutable and safe for concurrent use.
type Validator struct {
	name     string
	resolved *jsonschema.Resolved
}

// CompileSchema compiles a JSON schema document for validation. Malformed
// schemas, unresolvable references and dialects other than draft 2020-12 fail
// here instead of at validation time.
func CompileSchema(name string, js map[string]any) (*Validator, error) {
	data, err := json.Marshal(js)
	if err != nil {
		return nil, fmt.Errorf("encode %s schema: %w", name, err)
	}

	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", name, err)
	}
	if s.Schema != "" && s.Schema != draft202012 {
		return nil, fmt.Errorf("%s schema: unsupported dialect %q", name, s.Schema)
	}

	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve %s schema: %w", name, err)
	}

	return &Validator{name: name, resolved: resolved}, nil
}

// Validate checks value, which must be a decoded JSON value (maps, slices,
// strings, numbers, bools or nil), against the schema.
func (v *Validator) Validate(value any) error {
	if err := v.resolved.Validate(value); err != nil {
		return &ValidationError{Schema: v.name, Err: err}
	}
	return nil
}

// StrictSchema returns a deep copy of js in the closed form required by
// strict structured output: every object schema forbids additional
// properties and requires all of its properties. Properties that were
// optional accept null instead.
func StrictSchema(js map[string]any) map[string]any {
	out, _ := strictValue(js).(map[string]any)
	return out
}

func strictValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return strictObject(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = strictValue(item)
		}
		return out
	case []string:
		return append([]string(nil), x...)
	default:
		return v
	}
}

func strictObject(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+2)
	for k, v := range m {
		out[k] = strictValue(v)
	}

	props, ok := out["properties"].(map[string]any)
	if !ok || out["type"] != "object" {
		return out
	}

	required := make(map[string]bool)
	for _, name := range requiredNames(m["required"]) {
		required[name] = true
	}

	names := make([]string, 0, len(props))
	for name, prop := range props {
		names = append(names, name)
		if !required[name] {
			props[name] = nullable(prop)
		}
	}
	sort.Strings(names)

	out["required"] = names
	out["additionalProperties"] = false
	return out
}

// nullable widens a property schema to also accept null.
func nullable(prop any) any {
	m, ok := prop.(map[string]any)
	if !ok {
		return prop
	}
	switch typ := m["type"].(type) {
	case string:
		if typ != "null" {
			m["type"] = []any{typ, "null"}
		}
	case []any:
		for _, t := range typ {
			if t == "null" {
				return m
			}
		}
		m["type"] = append(typ, "null")
	}
	return m
}

// requiredNames accepts both []string (reflection generated) and []any
// (JSON decoded) required lists.
func requiredNames(v any) []string {
	switch req := v.(type) {
	case []string:
		return req
	case []any:
		out := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
