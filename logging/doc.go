// Package logging provides a minimal logging interface and adapters for agentzero.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that agents, tools and the tool registry use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - ContextLogger with component / session / run attributes
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	a, err := agent.New("assistant", llm, func(o *agent.Options) { o.Logger = logger })
package logging
