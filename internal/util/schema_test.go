package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleSchema struct {
	A string `json:"a" description:"Field A"`
	B *int   `json:"b" description:"Optional pointer field"`
	C int    `json:"c,omitempty" description:"Omit empty field"`
	d int    // unexported, skipped
	E string `json:"-"`
}

type address struct {
	City string `json:"city"`
}

type nestedSchema struct {
	Tags    []string `json:"tags"`
	Address address  `json:"address"`
	Any     any      `json:"any,omitempty"`
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(sampleSchema{})
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)

	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
	assert.Contains(t, props, "c")
	assert.NotContains(t, props, "d")
	assert.NotContains(t, props, "E")
	assert.Equal(t, "Field A", props["a"].(map[string]any)["description"])

	// Required only includes non-pointer, non-omitempty exported fields
	assert.Equal(t, []string{"a"}, schema["required"])
}

func TestCreateSchema_Nested(t *testing.T) {
	schema := CreateSchema(&nestedSchema{})
	props := schema["properties"].(map[string]any)

	tags := props["tags"].(map[string]any)
	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, map[string]any{"type": "string"}, tags["items"])

	addr := props["address"].(map[string]any)
	assert.Equal(t, "object", addr["type"])
	assert.Equal(t, []string{"city"}, addr["required"])

	assert.Equal(t, map[string]any{}, props["any"])
}

func TestCreateSchema_NonStruct(t *testing.T) {
	assert.Equal(t, emptyObjectSchema(), CreateSchema(42))
	assert.Equal(t, emptyObjectSchema(), CreateSchema(nil))
}

func TestFieldOrder(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, FieldOrder(sampleSchema{}))
	assert.Nil(t, FieldOrder("x"))
}
