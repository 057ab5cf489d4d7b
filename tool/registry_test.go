package tool

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hupe1980/agentzero/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEntry struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []recordedEntry
}

func (l *recordingLogger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, recordedEntry{level: level, msg: msg, args: args})
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.record("error", msg, args) }

func (l *recordingLogger) messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

func mustTool(t *testing.T, name, description string, fn func(*core.ToolContext, map[string]any) (any, error)) Tool {
	t.Helper()
	ft, err := NewFunctionTool(name, description, nil, fn)
	require.NoError(t, err)
	return ft
}

func TestRegistry_ExecuteSuccess(t *testing.T) {
	var seen *core.ToolContext
	echo := mustTool(t, "echo", "Echo", func(tc *core.ToolContext, args map[string]any) (any, error) {
		seen = tc
		return args["msg"], nil
	})
	reg, err := NewRegistry(echo)
	require.NoError(t, err)

	logger := &recordingLogger{}
	tc := core.NewToolContext(context.Background(), core.RunInfo{RunID: "r1"}, logger)

	res, err := reg.Execute(tc, "echo", map[string]any{"msg": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", res)
	assert.Equal(t, "echo", seen.ToolName())
	assert.Equal(t, "r1", seen.RunID())
	assert.Equal(t, []string{"tool.call.success"}, logger.messages("info"))
}

func TestRegistry_NotAvailable(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	_, err = reg.Execute(newToolContext(), "add", nil)
	var naErr *NotAvailableError
	require.True(t, errors.As(err, &naErr))
	assert.Equal(t, "add", naErr.Name)
}

func TestRegistry_ExecutionErrorIsNormalizedAndLogged(t *testing.T) {
	cause := errors.New("boom")
	fail := mustTool(t, "fail", "Fails", func(_ *core.ToolContext, _ map[string]any) (any, error) {
		return nil, cause
	})
	reg, err := NewRegistry(fail)
	require.NoError(t, err)

	logger := &recordingLogger{}
	tc := core.NewToolContext(context.Background(), core.RunInfo{}, logger)

	_, err = reg.Execute(tc, "fail", map[string]any{})
	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, "fail", execErr.Tool)
	assert.Equal(t, CodeExecution, execErr.Code)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, []string{"tool.call.error"}, logger.messages("error"))
}

func TestRegistry_PanicIsRecovered(t *testing.T) {
	boom := mustTool(t, "boom", "Panics", func(_ *core.ToolContext, _ map[string]any) (any, error) {
		panic("kaboom")
	})
	reg, err := NewRegistry(boom)
	require.NoError(t, err)

	logger := &recordingLogger{}
	tc := core.NewToolContext(context.Background(), core.RunInfo{}, logger)

	res, err := reg.Execute(tc, "boom", nil)
	assert.Nil(t, res)
	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, CodePanic, execErr.Code)
	assert.Contains(t, err.Error(), "kaboom")
	assert.Equal(t, []string{"tool.call.error"}, logger.messages("error"))
}

func TestRegistry_ValidationErrorKeepsCode(t *testing.T) {
	addTool, err := New(addNumbers)
	require.NoError(t, err)
	reg, err := NewRegistry(addTool)
	require.NoError(t, err)

	_, err = reg.Execute(newToolContext(), "add_numbers", map[string]any{"a": "one", "b": 2})
	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, CodeValidation, execErr.Code)
}

func TestNewRegistry_ConfigurationErrors(t *testing.T) {
	echo := mustTool(t, "echo", "Echo", func(_ *core.ToolContext, _ map[string]any) (any, error) { return nil, nil })

	_, err := NewRegistry(echo, echo)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "echo", cfgErr.Tool)

	_, err = NewRegistry(nil)
	assert.True(t, errors.As(err, &cfgErr))

	_, err = NewRegistry(&staticTool{name: "bare"})
	assert.True(t, errors.As(err, &cfgErr))
}

type staticTool struct {
	name, description string
	params            map[string]any
}

func (s *staticTool) Name() string               { return s.name }
func (s *staticTool) Description() string        { return s.description }
func (s *staticTool) Parameters() map[string]any { return s.params }
func (s *staticTool) Call(*core.ToolContext, map[string]any) (any, error) {
	return nil, nil
}

func TestRegistry_OrderAndLookup(t *testing.T) {
	b := &staticTool{name: "b", description: "B"}
	a := &staticTool{name: "a", description: "A"}
	reg, err := NewRegistry(b, a)
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"b", "a"}, reg.Names())
	assert.Equal(t, []Tool{b, a}, reg.Tools())

	got, ok := reg.Get("a")
	assert.True(t, ok)
	assert.Equal(t, a, got)
	_, ok = reg.Get("c")
	assert.False(t, ok)
}

func TestRender(t *testing.T) {
	addTool, err := New(addNumbers)
	require.NoError(t, err)

	assert.Equal(t,
		"Tool: add_numbers\nParameters: {a: number, b: number}\nDescription: Add two numbers together",
		Render(addTool),
	)

	mapTool := &staticTool{
		name:        "search",
		description: "  Search documents  ",
		params: map[string]any{
			"properties": map[string]any{
				"query": map[string]any{"type": "string"},
				"limit": map[string]any{"type": "integer"},
				"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"extra": map[string]any{},
			},
		},
	}
	assert.Equal(t,
		"Tool: search\nParameters: {extra: any, limit: integer, query: string, tags: array[string]}\nDescription: Search documents",
		Render(mapTool),
	)

	noParams := &staticTool{name: "ping", description: "Ping"}
	assert.Equal(t, "Tool: ping\nParameters: {}\nDescription: Ping", Render(noParams))
}

func TestRegistry_Prompt(t *testing.T) {
	b := &staticTool{name: "b", description: "B"}
	a := &staticTool{name: "a", description: "A"}
	reg, err := NewRegistry(b, a)
	require.NoError(t, err)

	assert.Equal(t,
		"Tool: b\nParameters: {}\nDescription: B\n\nTool: a\nParameters: {}\nDescription: A",
		reg.Prompt(),
	)

	empty, err := NewRegistry()
	require.NoError(t, err)
	assert.Equal(t, "", empty.Prompt())
}
