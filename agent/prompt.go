package agent

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/internal/util"
)

const systemPromptTemplate = `You are {{.Name}}. Your task is to adhere to the following instructions:
{{.Instructions}}
{{- if .ToolCatalog}}

You can use the following tools:

{{.ToolCatalog}}

{{.ToolCallFormat}}
{{- end}}`

const toolCallFormat = `If you need to call a tool, reply with only a JSON object of the form ` +
	`{"tool_name": "<tool name>", "tool_parameters": {"<parameter>": <value>}} and nothing else.`

type systemPromptData struct {
	Name           string
	Instructions   string
	ToolCatalog    string
	ToolCallFormat string
}

// buildSystemPrompt renders the first message of every agent's log. The tool
// section is omitted entirely when catalog is empty.
func buildSystemPrompt(name, instructions, catalog string) (string, error) {
	return util.RenderTemplate("system_prompt", systemPromptTemplate, systemPromptData{
		Name:           name,
		Instructions:   instructions,
		ToolCatalog:    catalog,
		ToolCallFormat: toolCallFormat,
	})
}

// toolSummary renders the assistant message appended after a tool call:
//
//	Tool add called with parameters {"a":1,"b":2} returned 3
func toolSummary(call core.ToolCall, result any) string {
	params := call.ToolParameters
	if params == nil {
		params = map[string]any{}
	}
	return fmt.Sprintf("Tool %s called with parameters %s returned %s",
		call.ToolName, stringify(params), stringify(result))
}

// stringify renders a tool value as text: strings verbatim, everything else
// as compact JSON, falling back to fmt for values JSON cannot encode.
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
