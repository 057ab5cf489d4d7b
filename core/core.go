package core

// Run-scoped logging helpers for tool implementations. Every record carries
// the agent name and run id, plus the tool name once the context has been
// scoped with ForTool.

// LogDebug logs a debug message tagged with the run identifiers.
func (tc *ToolContext) LogDebug(msg string, args ...any) {
	tc.logger.Debug(msg, tc.runFields(args)...)
}

// LogInfo logs an info message tagged with the run identifiers.
func (tc *ToolContext) LogInfo(msg string, args ...any) {
	tc.logger.Info(msg, tc.runFields(args)...)
}

// LogWarn logs a warning tagged with the run identifiers.
func (tc *ToolContext) LogWarn(msg string, args ...any) {
	tc.logger.Warn(msg, tc.runFields(args)...)
}

// LogError logs an error tagged with the run identifiers.
func (tc *ToolContext) LogError(msg string, args ...any) {
	tc.logger.Error(msg, tc.runFields(args)...)
}

func (tc *ToolContext) runFields(args []any) []any {
	fields := make([]any, 0, len(args)+6)
	fields = append(fields, "agent", tc.run.AgentName, "run_id", tc.run.RunID)
	if tc.toolName != "" {
		fields = append(fields, "tool", tc.toolName)
	}
	return append(fields, args...)
}
