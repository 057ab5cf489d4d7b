package tool

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/agentzero/core"
)

// Registry holds the tools available to one agent keyed by unique name.
// It is built once and read-only afterwards, so it is safe for concurrent
// lookups and executions.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry builds a registry preserving the insertion order of tools.
// Nil tools, empty names or descriptions and duplicate names fail with a
// *ConfigurationError.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]Tool, len(tools)),
		order: make([]string, 0, len(tools)),
	}

	for _, t := range tools {
		if t == nil {
			return nil, &ConfigurationError{Message: "nil tool"}
		}

		name := t.Name()
		if name == "" {
			return nil, &ConfigurationError{Message: "tool has no name"}
		}
		if strings.TrimSpace(t.Description()) == "" {
			return nil, &ConfigurationError{Tool: name, Message: fmt.Sprintf("tool %s has no description", name)}
		}
		if _, exists := r.tools[name]; exists {
			return nil, &ConfigurationError{Tool: name, Message: "duplicate tool name"}
		}

		r.tools[name] = t
		r.order = append(r.order, name)
	}

	return r, nil
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// Names returns the tool names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Tools returns the registered tools in insertion order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Execute looks up the named tool and invokes it.
//
// Error Semantics:
//
//	unknown name          -> *NotAvailableError
//	*ExecutionError       -> forwarded unchanged
//	any other error/panic -> *ExecutionError wrapping the cause
//
// Failures are logged through the tool context's logger before they are
// returned.
//
// Logging Fields:
//
//	tool: tool name
//	run_id: run identifier of the invoking agent
//	duration_ms: execution time in milliseconds
func (r *Registry) Execute(toolCtx *core.ToolContext, name string, params map[string]any) (result any, err error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, &NotAvailableError{Name: name}
	}

	tc := toolCtx.ForTool(name)
	logger := tc.Logger()
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = &ExecutionError{Tool: name, Code: CodePanic, Cause: fmt.Errorf("panic: %v", rec)}

			logger.Error("tool.call.error", "tool", name, "run_id", tc.RunID(), "error", err.Error())
		}
	}()

	logger.Debug("tool.call.start", "tool", name, "run_id", tc.RunID())

	result, err = t.Call(tc, params)
	if err != nil {
		var execErr *ExecutionError
		if !errors.As(err, &execErr) || execErr.Tool != name {
			execErr = &ExecutionError{Tool: name, Code: CodeExecution, Cause: err}
		}

		logger.Error(
			"tool.call.error",
			"tool", name,
			"run_id", tc.RunID(),
			"code", execErr.Code,
			"error", execErr.Cause.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)

		return nil, execErr
	}

	logger.Info("tool.call.success", "tool", name, "run_id", tc.RunID(), "duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

// Prompt renders the catalog of all tools, separated by blank lines, in
// insertion order.
func (r *Registry) Prompt() string {
	blocks := make([]string, 0, len(r.order))
	for _, name := range r.order {
		blocks = append(blocks, Render(r.tools[name]))
	}
	return strings.Join(blocks, "\n\n")
}

// Render describes a single tool for the system prompt:
//
//	Tool: add
//	Parameters: {a: number, b: number}
//	Description: Add two numbers together
func Render(t Tool) string {
	var b strings.Builder
	b.WriteString("Tool: ")
	b.WriteString(t.Name())
	b.WriteString("\nParameters: {")
	b.WriteString(strings.Join(parameterShape(t), ", "))
	b.WriteString("}\nDescription: ")
	b.WriteString(strings.TrimSpace(t.Description()))
	return b.String()
}

// parameterShape lists "name: type" pairs, in declaration order when the
// tool knows it and sorted otherwise.
func parameterShape(t Tool) []string {
	props, _ := t.Parameters()["properties"].(map[string]any)
	if len(props) == 0 {
		return nil
	}

	var names []string
	if o, ok := t.(interface{ ParameterOrder() []string }); ok {
		names = o.ParameterOrder()
	}
	if len(names) == 0 {
		names = make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		prop, ok := props[name]
		if !ok {
			continue
		}
		out = append(out, name+": "+typeOf(prop))
	}
	return out
}

func typeOf(prop any) string {
	m, ok := prop.(map[string]any)
	if !ok {
		return "any"
	}
	typ, _ := m["type"].(string)
	switch typ {
	case "":
		return "any"
	case "array":
		if items, ok := m["items"]; ok {
			return "array[" + typeOf(items) + "]"
		}
	}
	return typ
}
