package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level LogLevel) (*ContextLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cfg := DefaultLoggerConfig()
	cfg.Level = level
	cfg.Output = buf
	return NewLogger(cfg), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestContextLogger_AttributesAndLevels(t *testing.T) {
	l, buf := newBufferLogger(LogLevelInfo)
	l = l.WithComponent("agent").WithRun("sess-1", "run-1").WithContext("agent", "calc")

	l.Debug("hidden")
	l.Info("agent.run.start", "query_len", 5)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "agent.run.start", lines[0]["msg"])
	assert.Equal(t, "agent", lines[0]["component"])
	assert.Equal(t, "sess-1", lines[0]["session_id"])
	assert.Equal(t, "run-1", lines[0]["run_id"])
	assert.Equal(t, "calc", lines[0]["agent"])
	assert.Equal(t, float64(5), lines[0]["query_len"])
}

func TestContextLogger_WithDoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(LogLevelDebug)
	_ = parent.WithContext("k", "v")
	parent.Info("plain")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.NotContains(t, lines[0], "k")
}

func TestContextLogger_LogToolCall(t *testing.T) {
	l, buf := newBufferLogger(LogLevelInfo)
	l.LogToolCall("add", 2*time.Millisecond, false, errors.New("boom"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "tool.call.failed", lines[0]["msg"])
	assert.Equal(t, "ERROR", lines[0]["level"])
	assert.Equal(t, "add", lines[0]["tool"])
	assert.Equal(t, float64(2), lines[0]["duration_ms"])
	assert.Equal(t, "boom", lines[0]["error"])
}

func TestContextLogger_LogModelCall(t *testing.T) {
	l, buf := newBufferLogger(LogLevelInfo)
	l.WithComponent("agent").LogModelCall("gpt-4o-mini", 42, time.Millisecond, true, nil)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "model.call.completed", lines[0]["msg"])
	assert.Equal(t, "agent", lines[0]["component"])
	assert.Equal(t, "gpt-4o-mini", lines[0]["model"])
	assert.Equal(t, float64(42), lines[0]["tokens"])
	assert.Equal(t, true, lines[0]["success"])
}

func TestContextLogger_LogModelCallRespectsLevel(t *testing.T) {
	l, buf := newBufferLogger(LogLevelError)
	l.LogModelCall("gpt-4o-mini", 10, time.Millisecond, true, nil)
	assert.Empty(t, buf.String())
}

func TestContextLogger_BadKey(t *testing.T) {
	l, buf := newBufferLogger(LogLevelInfo)
	l.Info("odd", "dangling")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "dangling", lines[0]["!BADKEY"])
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, lvl)

	lvl, err = ParseLevel(" Warning ")
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestOrNoOp(t *testing.T) {
	assert.IsType(t, NoOpLogger{}, OrNoOp(nil))
	l := NewDefaultSlogLogger()
	assert.Equal(t, l, OrNoOp(l))
}
