// Package agent implements the bounded single-agent loop at the heart of
// agentzero.
//
// An Agent is constructed once with a name, a model client and static
// configuration (instructions, tools, output schema, iteration bound). New
// renders the system prompt, including the tool catalog when tools are
// registered, and seeds the agent's message log with it.
//
// Execution Model:
//   - Run appends the query as a user message
//   - Each iteration sends the full log to the model and classifies the reply
//   - Tool calls are executed through the tool registry and summarized into
//     the log as one assistant message; the loop then asks the model again
//   - A structured or plain text reply ends the run
//   - After MaxIterations model requests without a final answer Run fails
//     with *core.IterationLimitError
//
// The log persists across Run calls on the same Agent, so later runs see the
// history of earlier ones. When a session.Store is configured the log is
// mirrored into it under the agent's session id.
package agent
