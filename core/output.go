package core

import "fmt"

// OutputKind discriminates the variants of Output.
type OutputKind int

const (
	// OutputText is a plain text answer.
	OutputText OutputKind = iota
	// OutputStructured is a value validated against the agent's output schema.
	OutputStructured
)

// String returns the string representation of the kind.
func (k OutputKind) String() string {
	switch k {
	case OutputText:
		return "text"
	case OutputStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// Output is the terminal value of one agent run. It is a closed union of
// PlainText(text) and Structured(value); which variant a run produces is
// decided by the agent's output schema, never by inspecting the value.
type Output struct {
	kind  OutputKind
	text  string
	value any
}

// PlainText creates a text output.
func PlainText(text string) Output { return Output{kind: OutputText, text: text} }

// Structured creates a structured output holding the decoded value and the
// raw reply it was decoded from.
func Structured(value any, raw string) Output {
	return Output{kind: OutputStructured, text: raw, value: value}
}

// Kind returns the variant of the output.
func (o Output) Kind() OutputKind { return o.kind }

// IsStructured reports whether the output carries a structured value.
func (o Output) IsStructured() bool { return o.kind == OutputStructured }

// Text returns the answer text. For structured outputs it is the raw reply.
func (o Output) Text() string { return o.text }

// Value returns the structured value, or nil for text outputs.
func (o Output) Value() any { return o.value }

// String implements fmt.Stringer.
func (o Output) String() string {
	if o.kind == OutputStructured {
		return fmt.Sprintf("%+v", o.value)
	}
	return o.text
}

// StructuredAs returns the structured value of o as T. It accepts both T and
// *T payloads.
func StructuredAs[T any](o Output) (T, bool) {
	var zero T
	if o.kind != OutputStructured {
		return zero, false
	}
	switch v := o.value.(type) {
	case T:
		return v, true
	case *T:
		if v == nil {
			return zero, false
		}
		return *v, true
	}
	return zero, false
}
