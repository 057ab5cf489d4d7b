package agent

import "github.com/hupe1980/agentzero/internal/util"

// PromptData is available to instructions when the system prompt is built.
// Static instruction text may reference it with template syntax, e.g.
// "Answer as {{.AgentName}}".
type PromptData struct {
	AgentName string
	SessionID string
	Tools     []string
}

// Provider supplies instruction text at construction time.
type Provider interface {
	Instruction(data PromptData) (string, error)
}

// Func is a functional adapter to allow ordinary functions to be used as Providers.
type Func func(data PromptData) (string, error)

// Instruction implements Provider.
func (f Func) Instruction(data PromptData) (string, error) { return f(data) }

// Instruction represents either a static instruction string or a dynamic provider.
// This mirrors a union of string | provider in a Go-idiomatic way.
type Instruction struct {
	text     string
	provider Provider
}

// NewInstructionFromText creates an Instruction from a static string.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromProvider creates an Instruction from a dynamic provider.
func NewInstructionFromProvider(p Provider) Instruction { return Instruction{provider: p} }

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(f func(data PromptData) (string, error)) Instruction {
	return Instruction{provider: Func(f)}
}

// IsStatic returns true if the instruction is backed by a static string.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// Resolve returns the instruction text, invoking the provider if needed.
// Static text is rendered as a text/template against data.
func (i Instruction) Resolve(data PromptData) (string, error) {
	if i.provider != nil {
		return i.provider.Instruction(data)
	}
	return util.RenderTemplate("instructions", i.text, data)
}
