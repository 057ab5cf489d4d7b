package testutil

import (
	"github.com/hupe1980/agentzero/core"
)

// TranscriptBuilder helps construct message sequences with fluent chaining
// for tests.
// Example:
//
//	msgs := NewTranscriptBuilder().System("sys").User("hi").Assistant("hello").Build()
type TranscriptBuilder struct {
	msgs []core.Message
}

// NewTranscriptBuilder creates an empty builder.
func NewTranscriptBuilder() *TranscriptBuilder { return &TranscriptBuilder{} }

// System appends a system message (chainable).
func (b *TranscriptBuilder) System(content string) *TranscriptBuilder {
	b.msgs = append(b.msgs, core.SystemMessage(content))
	return b
}

// User appends a user message (chainable).
func (b *TranscriptBuilder) User(content string) *TranscriptBuilder {
	b.msgs = append(b.msgs, core.UserMessage(content))
	return b
}

// Assistant appends an assistant message (chainable).
func (b *TranscriptBuilder) Assistant(content string) *TranscriptBuilder {
	b.msgs = append(b.msgs, core.AssistantMessage(content))
	return b
}

// Build returns a copy of the accumulated messages.
func (b *TranscriptBuilder) Build() []core.Message {
	out := make([]core.Message, len(b.msgs))
	copy(out, b.msgs)
	return out
}
