package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/model"
	"github.com/hupe1980/agentzero/schema"
)

type person struct {
	Name string `json:"name"`
}

func newTestModel(t *testing.T, parts []any, captured *map[string]any, optFns ...func(o *Options)) *Model {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "models/"+DefaultModel+":generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content":      map[string]any{"role": "model", "parts": parts},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     5,
				"candidatesTokenCount": 1,
				"totalTokenCount":      6,
			},
		})
	}))
	t.Cleanup(srv.Close)

	m, err := NewModel(context.Background(), func(o *Options) {
		o.APIKey = "test"
		o.BaseURL = srv.URL
		for _, fn := range optFns {
			fn(o)
		}
	})
	require.NoError(t, err)
	return m
}

func TestChat_TextReply(t *testing.T) {
	var body map[string]any
	m := newTestModel(t, []any{map[string]any{"text": "hello"}}, &body)

	resp, err := m.Chat(context.Background(), model.Request{Messages: []core.Message{
		core.SystemMessage("be brief"),
		core.UserMessage("hi"),
		core.AssistantMessage("earlier"),
	}})
	require.NoError(t, err)

	require.NotNil(t, resp.Content)
	assert.Equal(t, "hello", *resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 6, resp.Usage.TotalTokens)

	contents := body["contents"].([]any)
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].(map[string]any)["role"])
	assert.Equal(t, "model", contents[1].(map[string]any)["role"])
	assert.Contains(t, body, "systemInstruction")
}

func TestChat_NoTextIsAbsent(t *testing.T) {
	var body map[string]any
	m := newTestModel(t, []any{}, &body)

	resp, err := m.Chat(context.Background(), model.Request{Messages: []core.Message{core.UserMessage("hi")}})
	require.NoError(t, err)
	assert.Nil(t, resp.Content)
}

func TestChat_EmptyTextIsPresent(t *testing.T) {
	var body map[string]any
	m := newTestModel(t, []any{map[string]any{"text": ""}}, &body)

	resp, err := m.Chat(context.Background(), model.Request{Messages: []core.Message{core.UserMessage("hi")}})
	require.NoError(t, err)
	require.NotNil(t, resp.Content)
	assert.Equal(t, "", *resp.Content)
}

func TestChat_ThoughtsOnlyIsAbsent(t *testing.T) {
	var body map[string]any
	m := newTestModel(t, []any{map[string]any{"text": "thinking", "thought": true}}, &body)

	resp, err := m.Chat(context.Background(), model.Request{Messages: []core.Message{core.UserMessage("hi")}})
	require.NoError(t, err)
	assert.Nil(t, resp.Content)
}

func TestChat_Temperature(t *testing.T) {
	reply := []any{map[string]any{"text": "ok"}}

	var body map[string]any
	m := newTestModel(t, reply, &body)
	_, err := m.Chat(context.Background(), model.Request{Messages: []core.Message{core.UserMessage("hi")}})
	require.NoError(t, err)
	assert.NotContains(t, body["generationConfig"], "temperature")

	var withTemp map[string]any
	m = newTestModel(t, reply, &withTemp, func(o *Options) { o.Temperature = genai.Ptr[float32](0.5) })
	_, err = m.Chat(context.Background(), model.Request{Messages: []core.Message{core.UserMessage("hi")}})
	require.NoError(t, err)
	assert.Equal(t, 0.5, withTemp["generationConfig"].(map[string]any)["temperature"])
}

func TestChat_SchemaEnablesJSONMode(t *testing.T) {
	var body map[string]any
	m := newTestModel(t, []any{map[string]any{"text": `{"name":"Ada"}`}}, &body)

	_, err := m.Chat(context.Background(), model.Request{
		Messages: []core.Message{core.UserMessage("who?")},
		Schema:   schema.Of[person](),
	})
	require.NoError(t, err)

	cfg := body["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", cfg["responseMimeType"])
	assert.Contains(t, cfg, "responseJsonSchema")
}

func TestBuildContents(t *testing.T) {
	contents, system := buildContents([]core.Message{
		core.SystemMessage("a"),
		core.SystemMessage("b"),
		core.UserMessage("q"),
	})

	require.NotNil(t, system)
	assert.Len(t, system.Parts, 2)
	require.Len(t, contents, 1)
	assert.Equal(t, "user", contents[0].Role)
}
