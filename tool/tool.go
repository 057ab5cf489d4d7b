// Package tool implements the tool calling subsystem that lets an agent invoke
// developer supplied capabilities by name, with schema validated arguments,
// normalized error handling and a textual catalog for model prompts.
package tool

import (
	"fmt"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/internal/util"
)

// Tool defines the interface for extending agent capabilities with external functions.
//
// Tools are registered with an agent at construction time. Their name,
// parameter shape and description are rendered into the system prompt so the
// model can request them by replying with a tool call.
//
// Tool implementations should:
//   - Provide a unique name and a non-empty description
//   - Describe their parameters with a JSON schema
//   - Return errors instead of panicking (panics are recovered by the Registry)
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool does.
	// This description is provided to the LLM to help it understand when and how to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	Parameters() map[string]any

	// Call executes the tool with the parameters supplied by the model.
	Call(toolCtx *core.ToolContext, args map[string]any) (any, error)
}

// Describer is implemented by argument types that document the tool they
// belong to. New uses it to infer a description when none is given.
type Describer interface {
	Describe() string
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// Error codes carried by ExecutionError.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
	CodePanic      = "PANIC"
)

// ConfigurationError is returned when a tool cannot be constructed or
// registered, e.g. because no description can be determined.
type ConfigurationError struct {
	Tool    string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Tool == "" {
		return fmt.Sprintf("tool configuration error: %s", e.Message)
	}
	return fmt.Sprintf("tool configuration error in %s: %s", e.Tool, e.Message)
}

// NotAvailableError is returned when a tool call names a tool that is not
// registered.
type NotAvailableError struct {
	Name string
}

func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("tool %s is not available", e.Name)
}

// ExecutionError normalizes every failure raised by a tool's implementation.
// It unwraps to the original cause.
type ExecutionError struct {
	Tool  string `json:"tool"`
	Code  string `json:"code"`
	Cause error  `json:"-"`
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("error executing tool %s: %v", e.Tool, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ExecutionError) Unwrap() error { return e.Cause }
