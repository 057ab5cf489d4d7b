package agent

import (
	"github.com/hupe1980/agentzero/logging"
	"github.com/hupe1980/agentzero/schema"
	"github.com/hupe1980/agentzero/session"
	"github.com/hupe1980/agentzero/tool"
)

// WithInstructions sets static instruction text.
func WithInstructions(text string) func(o *Options) {
	return func(o *Options) { o.Instructions = NewInstructionFromText(text) }
}

// WithTools appends tools to the agent's catalog.
func WithTools(tools ...tool.Tool) func(o *Options) {
	return func(o *Options) { o.Tools = append(o.Tools, tools...) }
}

// WithOutputSchema requests a structured final answer.
func WithOutputSchema(s *schema.Schema) func(o *Options) {
	return func(o *Options) { o.OutputSchema = s }
}

// WithMaxIterations sets the per-run bound on model requests.
func WithMaxIterations(n int) func(o *Options) {
	return func(o *Options) { o.MaxIterations = n }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// WithStore mirrors the transcript into store under sessionID. An empty
// sessionID selects a random one.
func WithStore(store session.Store, sessionID string) func(o *Options) {
	return func(o *Options) {
		o.Store = store
		o.SessionID = sessionID
	}
}
