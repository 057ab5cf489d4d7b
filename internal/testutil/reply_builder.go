package testutil

import (
	"encoding/json"
	"fmt"
)

// ToolCallBuilder provides a fluent helper for constructing tool call replies
// in tests.
// Example:
//
//	reply := NewToolCall("add").Param("a", 1).Param("b", 2).String()
type ToolCallBuilder struct {
	name   string
	params map[string]any
	extra  map[string]any
}

// NewToolCall creates a builder for a call to the named tool.
func NewToolCall(name string) *ToolCallBuilder {
	return &ToolCallBuilder{name: name, params: map[string]any{}}
}

// Param sets a tool parameter (chainable).
func (b *ToolCallBuilder) Param(key string, val any) *ToolCallBuilder {
	b.params[key] = val
	return b
}

// Extra adds a top-level key next to tool_name and tool_parameters (chainable).
func (b *ToolCallBuilder) Extra(key string, val any) *ToolCallBuilder {
	if b.extra == nil {
		b.extra = map[string]any{}
	}
	b.extra[key] = val
	return b
}

// String renders the reply as the model would send it.
func (b *ToolCallBuilder) String() string {
	doc := map[string]any{
		"tool_name":       b.name,
		"tool_parameters": b.params,
	}
	for k, v := range b.extra {
		doc[k] = v
	}
	return MustJSON(doc)
}

// MustJSON encodes v or panics. Use only with values known to encode.
func MustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testutil: encode %T: %v", v, err))
	}
	return string(data)
}
