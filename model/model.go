package model

import (
	"context"
	"errors"
	"sync"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/schema"
)

// Request captures the normalized model input produced by an agent.
type Request struct {
	// Messages is the full conversation, starting with the system message.
	Messages []core.Message `json:"messages"`
	// Schema requests schema-constrained output when non-nil. Providers
	// without native support may ignore it or fall back to prompting.
	Schema *schema.Schema `json:"-"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a single, complete model reply.
type Response struct {
	ID string `json:"id"`
	// Content is the reply text. Nil means the provider returned no reply.
	Content      *string     `json:"content"`
	FinishReason string      `json:"finish_reason"` // "stop", "length", etc.
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Text is a convenience constructor for a response carrying s.
func Text(s string) *Response {
	return &Response{Content: &s, FinishReason: "stop"}
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "gemini", "ollama", ...
	// SupportsSchema reports native schema-constrained generation.
	SupportsSchema bool `json:"supports_schema"`
}

// Model is the minimal interface required by agents to drive generation.
//
// Chat sends the conversation and returns the model's reply. Implementations
// must not retain or mutate req.Messages.
type Model interface {
	Chat(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// ErrScriptExhausted is returned by ScriptedModel when it runs out of replies.
var ErrScriptExhausted = errors.New("scripted model: no replies left")

// Step is one scripted interaction: either a reply, an absent reply or an error.
type Step struct {
	Content *string
	Err     error
}

// Reply scripts a text reply.
func Reply(s string) Step { return Step{Content: &s} }

// NoReply scripts an absent reply.
func NoReply() Step { return Step{} }

// Fail scripts a transport error.
func Fail(err error) Step { return Step{Err: err} }

// ScriptedModel is a lightweight in-memory Model useful for tests & examples.
// It plays back steps in order and records every request it receives.
type ScriptedModel struct {
	info Info

	mu       sync.Mutex
	steps    []Step
	requests []Request
	fallback *Step
}

// NewScriptedModel constructs a ScriptedModel that plays back steps.
func NewScriptedModel(name string, steps ...Step) *ScriptedModel {
	return &ScriptedModel{
		info: Info{
			Name:           name,
			Provider:       "scripted",
			SupportsSchema: true,
		},
		steps: steps,
	}
}

// AddReply appends a text reply to the script.
func (m *ScriptedModel) AddReply(s string) *ScriptedModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, Reply(s))
	return m
}

// Repeat makes the model answer with step once the script is exhausted.
func (m *ScriptedModel) Repeat(step Step) *ScriptedModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &step
	return m
}

// Chat implements Model.
func (m *ScriptedModel) Chat(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := make([]core.Message, len(req.Messages))
	copy(msgs, req.Messages)
	m.requests = append(m.requests, Request{Messages: msgs, Schema: req.Schema})

	var step Step
	switch {
	case len(m.steps) > 0:
		step = m.steps[0]
		m.steps = m.steps[1:]
	case m.fallback != nil:
		step = *m.fallback
	default:
		return nil, ErrScriptExhausted
	}

	if step.Err != nil {
		return nil, step.Err
	}
	if step.Content == nil {
		return &Response{}, nil
	}
	return Text(*step.Content), nil
}

// Requests returns the requests received so far.
func (m *ScriptedModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Calls returns the number of Chat invocations.
func (m *ScriptedModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Info implements Model.
func (m *ScriptedModel) Info() Info { return m.info }
