// Package schema describes the structured output an agent may be asked to
// produce. A Schema carries a JSON schema (sent to model providers that
// support schema-constrained generation) and a decoder that validates a raw
// reply against that same schema and turns it into a typed Go value.
//
// Validation covers the full JSON Schema 2020-12 vocabulary (constraint
// keywords such as minimum, pattern, additionalProperties or oneOf included),
// so a reply the model was asked to conform to is never accepted unchecked.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/hupe1980/agentzero/internal/util"
)

// ValidationError is returned when a reply does not satisfy the schema.
type ValidationError = util.ValidationError

// ErrNotObject is returned when a reply is valid JSON but not an object.
var ErrNotObject = errors.New("structured output must be a JSON object")

// Options configures a Schema.
type Options struct {
	// Name identifies the schema towards providers (OpenAI requires one).
	Name string
	// Description is an optional hint forwarded to providers.
	Description string
	// Strict closes every object schema (no additional properties, all
	// properties required, formerly optional ones nullable) and asks
	// providers that support it for strict adherence.
	Strict bool
}

// Schema is an immutable description of a structured output.
type Schema struct {
	opts       Options
	jsonSchema map[string]any
	validator  *util.Validator
	decode     func(data []byte) (any, error)
}

// Of derives a Schema from the struct type T. Decoded values have type T.
// It panics when the derived schema cannot be compiled, which only happens
// for types the reflection rules cannot describe.
//
// Example:
//
//	type Person struct {
//	  Name string `json:"name" description:"Full name"`
//	  Age  int    `json:"age"`
//	}
//
//	s := schema.Of[Person]()
func Of[T any](optFns ...func(o *Options)) *Schema {
	var zero T
	opts := Options{Name: typeName(reflect.TypeOf(zero))}

	for _, fn := range optFns {
		fn(&opts)
	}

	s, err := build(opts, util.CreateSchema(zero))
	if err != nil {
		panic(err)
	}

	s.decode = func(data []byte) (any, error) {
		if _, err := s.validate(data); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", opts.Name, err)
		}
		return v, nil
	}

	return s
}

// FromMap builds a Schema from an explicit JSON schema (draft 2020-12).
// Decoded values are map[string]any. Schemas that cannot be compiled, e.g.
// because of malformed keywords, unresolvable references or another
// dialect, are rejected here.
func FromMap(name string, jsonSchema map[string]any, optFns ...func(o *Options)) (*Schema, error) {
	opts := Options{Name: name}

	for _, fn := range optFns {
		fn(&opts)
	}

	s, err := build(opts, jsonSchema)
	if err != nil {
		return nil, err
	}

	s.decode = s.validate

	return s, nil
}

// MustFromMap is like FromMap but panics on an invalid schema. It is intended
// for package level schema declarations.
func MustFromMap(name string, jsonSchema map[string]any, optFns ...func(o *Options)) *Schema {
	s, err := FromMap(name, jsonSchema, optFns...)
	if err != nil {
		panic(err)
	}
	return s
}

func build(opts Options, js map[string]any) (*Schema, error) {
	if js == nil {
		js = map[string]any{}
	}
	if opts.Strict {
		js = util.StrictSchema(js)
	}

	v, err := util.CompileSchema(opts.Name, js)
	if err != nil {
		return nil, err
	}

	return &Schema{opts: opts, jsonSchema: js, validator: v}, nil
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.opts.Name }

// Description returns the optional schema description.
func (s *Schema) Description() string { return s.opts.Description }

// Strict reports whether strict adherence was requested.
func (s *Schema) Strict() bool { return s.opts.Strict }

// JSONSchema returns the JSON schema document sent to providers and used for
// validation.
func (s *Schema) JSONSchema() map[string]any { return s.jsonSchema }

// Decode validates raw against the schema and returns the decoded value.
func (s *Schema) Decode(raw string) (any, error) {
	return s.decode([]byte(raw))
}

// validate checks that data is a JSON object satisfying the schema and
// returns the decoded object.
func (s *Schema) validate(data []byte) (any, error) {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrNotObject
	}
	if err := s.validator.Validate(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "output"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "output"
	}
	return t.Name()
}
