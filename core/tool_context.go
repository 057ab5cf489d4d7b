package core

import (
	"context"

	"github.com/hupe1980/agentzero/logging"
)

// RunInfo identifies the agent run a tool is invoked from.
type RunInfo struct {
	AgentName string
	SessionID string
	RunID     string
}

// ToolContext provides a constrained surface for tool implementations
// invoked by an agent: the caller's context, run identifiers and a logger.
type ToolContext struct {
	ctx      context.Context
	run      RunInfo
	toolName string
	logger   logging.Logger
}

// NewToolContext constructs a tool context bound to ctx and a run. A nil
// logger is replaced by a NoOpLogger.
func NewToolContext(ctx context.Context, run RunInfo, logger logging.Logger) *ToolContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ToolContext{
		ctx:    ctx,
		run:    run,
		logger: logging.OrNoOp(logger),
	}
}

// ForTool returns a copy of the context scoped to the named tool.
func (tc *ToolContext) ForTool(name string) *ToolContext {
	c := *tc
	c.toolName = name
	return &c
}

// Context returns the context associated with the tool invocation.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// AgentName returns the name of the invoking agent.
func (tc *ToolContext) AgentName() string { return tc.run.AgentName }

// SessionID returns the session ID associated with the tool invocation.
func (tc *ToolContext) SessionID() string { return tc.run.SessionID }

// RunID returns the run ID associated with the tool invocation.
func (tc *ToolContext) RunID() string { return tc.run.RunID }

// ToolName returns the name of the tool being invoked.
func (tc *ToolContext) ToolName() string { return tc.toolName }

// Logger returns the logger associated with the tool invocation.
func (tc *ToolContext) Logger() logging.Logger { return tc.logger }
