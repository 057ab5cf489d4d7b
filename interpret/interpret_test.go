package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/schema"
)

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

var constrainedPerson = schema.MustFromMap("person", map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"name": map[string]any{"type": "string", "minLength": 1},
		"age":  map[string]any{"type": "integer", "minimum": 0},
	},
	"required": []any{"name", "age"},
})

func TestClassify_ToolCall(t *testing.T) {
	reply := `{"tool_name": "add", "tool_parameters": {"a": 1, "b": 2}}`

	res := Classify(reply, nil)

	require.Equal(t, KindToolCall, res.Kind)
	assert.Equal(t, "add", res.ToolCall.ToolName)
	assert.Equal(t, map[string]any{"a": 1.0, "b": 2.0}, res.ToolCall.ToolParameters)

	_, terminal := res.Output()
	assert.False(t, terminal)
}

func TestClassify_ToolCallOutranksStructured(t *testing.T) {
	s := schema.MustFromMap("anything", map[string]any{"type": "object", "properties": map[string]any{}})
	reply := `{"tool_name": "add", "tool_parameters": {}}`

	res := Classify(reply, s)

	assert.Equal(t, KindToolCall, res.Kind)
	assert.Empty(t, res.ToolCall.ToolParameters)
}

func TestClassify_Structured(t *testing.T) {
	s := schema.Of[person]()
	reply := `{"name": "Ada", "age": 36}`

	res := Classify(reply, s)

	require.Equal(t, KindStructured, res.Kind)
	assert.Equal(t, person{Name: "Ada", Age: 36}, res.Value)

	out, terminal := res.Output()
	require.True(t, terminal)
	p, ok := core.StructuredAs[person](out)
	require.True(t, ok)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, reply, out.Text())
}

func TestClassify_FallsBackToText(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		schema *schema.Schema
	}{
		{"prose", "The answer is 3.", nil},
		{"empty", "", nil},
		{"invalid json", `{"tool_name": "add"`, nil},
		{"array", `[1, 2, 3]`, nil},
		{"tool name not a string", `{"tool_name": 7, "tool_parameters": {}}`, nil},
		{"parameters not an object", `{"tool_name": "add", "tool_parameters": [1, 2]}`, nil},
		{"missing parameters", `{"tool_name": "add"}`, nil},
		{"json without schema", `{"name": "Ada", "age": 36}`, nil},
		{"schema mismatch", `{"name": "Ada"}`, schema.Of[person]()},
		{"schema type mismatch", `{"name": "Ada", "age": "old"}`, schema.Of[person]()},
		{"prose with schema", "I could not find a person.", schema.Of[person]()},
		{"duplicate tool name ends as number", `{"tool_name": "add", "tool_parameters": {}, "tool_name": 5}`, nil},
		{"duplicate parameters end as array", `{"tool_name": "add", "tool_parameters": {}, "tool_parameters": [1]}`, nil},
		{"schema constraints broken", `{"name": "", "age": -5, "extra": true}`, constrainedPerson},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify(tt.reply, tt.schema)

			assert.Equal(t, KindText, res.Kind)
			out, terminal := res.Output()
			require.True(t, terminal)
			assert.Equal(t, core.OutputText, out.Kind())
			assert.Equal(t, tt.reply, out.Text())
		})
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	s := schema.Of[person]()
	replies := []string{
		`{"tool_name": "add", "tool_parameters": {"a": 1}}`,
		`{"name": "Ada", "age": 36}`,
		"plain",
	}

	for _, reply := range replies {
		first := Classify(reply, s)
		second := Classify(reply, s)
		assert.Equal(t, first, second, reply)
	}
}

func TestParseToolCall_IgnoresExtraKeys(t *testing.T) {
	call, ok := ParseToolCall(`{"thought": "need math", "tool_name": "add", "tool_parameters": {"nested": {"x": [1, "y"]}}}`)

	require.True(t, ok)
	assert.Equal(t, "add", call.ToolName)
	assert.Equal(t, map[string]any{"nested": map[string]any{"x": []any{1.0, "y"}}}, call.ToolParameters)
}

func TestParseToolCall_DuplicateKeysLastWins(t *testing.T) {
	call, ok := ParseToolCall(`{"tool_name": 5, "tool_parameters": {"a": 1}, "tool_name": "add"}`)
	require.True(t, ok)
	assert.Equal(t, "add", call.ToolName)
	assert.Equal(t, map[string]any{"a": 1.0}, call.ToolParameters)

	_, ok = ParseToolCall(`{"tool_name": "add", "tool_parameters": {}, "tool_name": 5}`)
	assert.False(t, ok)
}

func TestClassify_ConstrainedSchema(t *testing.T) {
	res := Classify(`{"name": "Ada", "age": 36}`, constrainedPerson)
	require.Equal(t, KindStructured, res.Kind)
	assert.Equal(t, map[string]any{"name": "Ada", "age": 36.0}, res.Value)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "tool_call", KindToolCall.String())
	assert.Equal(t, "structured", KindStructured.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
