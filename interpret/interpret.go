// Package interpret classifies raw model replies.
//
// A reply is, in order of precedence:
//
//	KindToolCall   - a JSON object with a string "tool_name" and an object "tool_parameters"
//	KindStructured - JSON satisfying the agent's output schema (only when one is configured)
//	KindText       - anything else, taken verbatim
//
// Classification never fails: a reply that does not parse as one kind falls
// through to the next.
package interpret

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/schema"
)

// Kind discriminates classification results.
type Kind int

const (
	// KindText is a plain text final answer.
	KindText Kind = iota
	// KindToolCall is a request to invoke a registered tool.
	KindToolCall
	// KindStructured is a final answer matching the output schema.
	KindStructured
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindToolCall:
		return "tool_call"
	case KindStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// Result is the outcome of Classify. Exactly one of ToolCall or Value is
// meaningful depending on Kind; Text always holds the original reply.
type Result struct {
	Kind     Kind
	ToolCall core.ToolCall
	Value    any
	Text     string
}

// Output converts a terminal result into the agent's output. Tool calls are
// not terminal and yield false.
func (r Result) Output() (core.Output, bool) {
	switch r.Kind {
	case KindStructured:
		return core.Structured(r.Value, r.Text), true
	case KindText:
		return core.PlainText(r.Text), true
	default:
		return core.Output{}, false
	}
}

// Classify interprets reply. s may be nil when the agent has no output
// schema. The function is pure: equal inputs give equal results.
func Classify(reply string, s *schema.Schema) Result {
	if call, ok := ParseToolCall(reply); ok {
		return Result{Kind: KindToolCall, ToolCall: call, Text: reply}
	}

	if s != nil {
		if v, err := s.Decode(reply); err == nil {
			return Result{Kind: KindStructured, Value: v, Text: reply}
		}
	}

	return Result{Kind: KindText, Text: reply}
}

// ParseToolCall reports whether reply has the tool call shape and returns the
// decoded call. Extra top-level keys are ignored. Duplicate keys resolve to
// their last occurrence, as in encoding/json.
func ParseToolCall(reply string) (core.ToolCall, bool) {
	// Cheap rejection of prose and objects without both keys.
	if !gjson.Valid(reply) {
		return core.ToolCall{}, false
	}

	doc := gjson.Parse(reply)
	if !doc.IsObject() || !doc.Get("tool_name").Exists() || !doc.Get("tool_parameters").Exists() {
		return core.ToolCall{}, false
	}

	// gjson.Get returns the first of duplicate keys, so the shape check runs
	// on the fully decoded object.
	var obj map[string]any
	if err := json.Unmarshal([]byte(reply), &obj); err != nil {
		return core.ToolCall{}, false
	}

	name, ok := obj["tool_name"].(string)
	if !ok {
		return core.ToolCall{}, false
	}

	args, ok := obj["tool_parameters"].(map[string]any)
	if !ok {
		return core.ToolCall{}, false
	}

	return core.ToolCall{ToolName: name, ToolParameters: args}, true
}
