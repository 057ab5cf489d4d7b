package core

// ToolCall is a model reply interpreted as a request to invoke a tool.
// It is transient: the agent records a human readable summary of the call
// in the MessageLog, never the ToolCall itself.
type ToolCall struct {
	ToolName       string         `json:"tool_name"`
	ToolParameters map[string]any `json:"tool_parameters"`
}
