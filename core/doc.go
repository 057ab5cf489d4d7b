// Package core provides the foundational domain types shared by agentzero's
// agent loop, tool registry, response interpreter and model adapters:
//
//   - Role / Message / MessageLog (the append-only conversation history)
//   - ToolCall (the parsed request of a model to invoke a tool)
//   - Output (the terminal value of a run: plain text or a structured value)
//   - IterationLimiter (the hard bound on model requests per run)
//   - ToolContext (the scoped surface handed to tool implementations)
//
// The package keeps implementation concerns (model transports, persistence,
// orchestration) out of scope so every other package can depend on it
// without import cycles.
package core
