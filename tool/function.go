package tool

import (
	"encoding/json"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"unicode"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/internal/util"
)

// FunctionTool is a generic adapter that exposes a plain Go function as a tool.
//
// Responsibilities:
//   - Holds the JSON schema (draft 2020-12) describing its parameters
//   - Validates model supplied arguments against that schema before execution
//   - Invokes the wrapped function with a *core.ToolContext
//
// A FunctionTool has no internal mutable state after construction and is safe
// for concurrent use by multiple goroutines.
type FunctionTool struct {
	// Tool identifier (snake_case recommended)
	name string
	// Human-readable description shown to models
	description string
	// JSON schema describing accepted arguments
	parameters map[string]any
	// Compiled form of parameters
	validator *util.Validator
	// Property names in declaration order, nil when unknown
	order []string
	// User supplied implementation
	fn func(toolCtx *core.ToolContext, args map[string]any) (any, error)
}

var _ Tool = (*FunctionTool)(nil)

// NewFunctionTool constructs a FunctionTool from explicit schema and function.
// It fails with a *ConfigurationError when name or description is empty or
// the parameter schema does not compile.
//
// Example:
//
//	sumTool, err := NewFunctionTool(
//	  "calculate_sum",
//	  "Calculate the sum of two numbers",
//	  map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	      "a": map[string]any{"type": "number"},
//	      "b": map[string]any{"type": "number"},
//	    },
//	    "required": []string{"a", "b"},
//	  },
//	  func(tc *core.ToolContext, args map[string]any) (any, error) {
//	    return args["a"].(float64) + args["b"].(float64), nil
//	  },
//	)
func NewFunctionTool(
	name, description string,
	parameters map[string]any,
	fn func(toolCtx *core.ToolContext, args map[string]any) (any, error),
) (*FunctionTool, error) {
	if name == "" {
		return nil, &ConfigurationError{Message: "tool has no name"}
	}
	if strings.TrimSpace(description) == "" {
		return nil, &ConfigurationError{Tool: name, Message: fmt.Sprintf("tool %s has no description", name)}
	}
	if fn == nil {
		return nil, &ConfigurationError{Tool: name, Message: "tool has no implementation"}
	}
	if parameters == nil {
		parameters = map[string]any{"type": "object", "properties": map[string]any{}}
	}
	validator, err := util.CompileSchema(name, parameters)
	if err != nil {
		return nil, &ConfigurationError{Tool: name, Message: fmt.Sprintf("invalid parameter schema: %v", err)}
	}
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		validator:   validator,
		fn:          fn,
	}, nil
}

// Options configures New.
type Options struct {
	// Name overrides the name inferred from the function identifier.
	Name string
	// Description overrides the description inferred from the argument type.
	Description string
}

// New builds a tool from a typed function. The parameter schema is derived
// from Args via reflection (json and description struct tags).
//
// Defaults:
//   - Name: the function's Go identifier in snake_case (addNumbers -> add_numbers)
//   - Description: Args.Describe() when Args implements Describer
//
// Construction fails with a *ConfigurationError when no name or description
// can be determined.
//
// Example:
//
//	type AddArgs struct {
//	  A float64 `json:"a"`
//	  B float64 `json:"b"`
//	}
//
//	func (AddArgs) Describe() string { return "Add two numbers together" }
//
//	func add(_ *core.ToolContext, args AddArgs) (string, error) {
//	  return strconv.FormatFloat(args.A+args.B, 'f', -1, 64), nil
//	}
//
//	addTool, err := tool.New(add)
func New[Args any, Result any](
	fn func(toolCtx *core.ToolContext, args Args) (Result, error),
	optFns ...func(o *Options),
) (*FunctionTool, error) {
	if fn == nil {
		return nil, &ConfigurationError{Message: "tool has no implementation"}
	}

	var zero Args
	opts := Options{
		Name:        inferName(fn),
		Description: inferDescription(zero),
	}

	for _, optFn := range optFns {
		optFn(&opts)
	}

	if opts.Name == "" {
		return nil, &ConfigurationError{Message: "cannot infer a tool name from an anonymous function"}
	}

	parameters := util.CreateSchema(zero)

	ft, err := NewFunctionTool(opts.Name, opts.Description, parameters, func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
		typed, err := decodeArgs[Args](args)
		if err != nil {
			return nil, err
		}
		return fn(toolCtx, typed)
	})
	if err != nil {
		return nil, err
	}
	ft.order = util.FieldOrder(zero)

	return ft, nil
}

// MustNew is like New but panics on a configuration error. It is intended for
// package level tool declarations.
func MustNew[Args any, Result any](
	fn func(toolCtx *core.ToolContext, args Args) (Result, error),
	optFns ...func(o *Options),
) *FunctionTool {
	t, err := New(fn, optFns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the unique tool name used in tool call routing.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the short natural language description exposed to models.
func (t *FunctionTool) Description() string { return t.description }

// Parameters returns the JSON schema describing expected arguments.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// ParameterOrder returns the parameter names in declaration order when known.
func (t *FunctionTool) ParameterOrder() []string { return t.order }

// Call validates the provided args against the declared schema then invokes
// the underlying function.
//
// Error Semantics:
//
//	validation failure -> *ExecutionError{Code: CodeValidation}
//	other error        -> returned unchanged (the Registry normalizes it)
func (t *FunctionTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	if args == nil {
		args = map[string]any{}
	}

	if err := t.validator.Validate(args); err != nil {
		toolCtx.Logger().Warn("tool.call.validation_failed", "tool", t.name, "error", err.Error())

		return nil, &ExecutionError{
			Tool:  t.name,
			Code:  CodeValidation,
			Cause: fmt.Errorf("parameter validation failed: %w", err),
		}
	}

	return t.fn(toolCtx, args)
}

// decodeArgs converts validated JSON-style arguments into Args.
func decodeArgs[Args any](args map[string]any) (Args, error) {
	var typed Args
	if m, ok := any(&typed).(*map[string]any); ok {
		*m = args
		return typed, nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return typed, fmt.Errorf("encode arguments: %w", err)
	}
	if err := json.Unmarshal(data, &typed); err != nil {
		return typed, fmt.Errorf("decode arguments: %w", err)
	}
	return typed, nil
}

func inferDescription(args any) string {
	if args == nil {
		return ""
	}
	t := reflect.TypeOf(args)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	// a non-nil *Args carries both value and pointer receiver methods
	if d, ok := reflect.New(t).Interface().(Describer); ok {
		return d.Describe()
	}
	return ""
}

// inferName derives a snake_case name from the function's symbol. Closures
// and other anonymous functions yield "".
func inferName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return ""
	}
	full := f.Name()
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	full = strings.TrimSuffix(full, "-fm")
	full = strings.TrimSuffix(full, "[...]")
	i := strings.LastIndex(full, ".")
	if i < 0 {
		return ""
	}
	name := full[i+1:]
	if isAnonymous(name) {
		return ""
	}
	return toSnakeCase(name)
}

func isAnonymous(name string) bool {
	if name == "" {
		return true
	}
	if strings.HasPrefix(name, "func") {
		rest := strings.TrimPrefix(name, "func")
		for _, r := range rest {
			if !unicode.IsDigit(r) {
				return false
			}
		}
		return true
	}
	return unicode.IsDigit(rune(name[0]))
}

func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
