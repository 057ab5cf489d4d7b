// Package anthropic provides a model wrapper for the Anthropic Claude API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/model"
	"github.com/hupe1980/agentzero/schema"
)

// continuePrompt closes a conversation that ends with an assistant turn so
// the Messages API does not treat that turn as a prefill.
const continuePrompt = "Continue."

// Options configures the Anthropic model adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model string
	// Temperature is only sent when set; nil leaves the provider default.
	Temperature *float64
	MaxTokens   int64
	APIKey      string
}

// Model wraps the Anthropic Messages API behind the generic model.Model interface.
type Model struct {
	client *anthropic.Client
	opts   Options
}

var _ model.Model = (*Model)(nil)

func defaultOptions() Options {
	return Options{
		Model:     string(anthropic.ModelClaude3_5Sonnet20241022),
		MaxTokens: 4096,
	}
}

// NewModel creates a new Anthropic model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	opts := defaultOptions()

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Model{
		client: &client,
		opts:   opts,
	}
}

// NewModelFromClient creates a new Anthropic model from an existing client
func NewModelFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Model {
	opts := defaultOptions()

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Model{
		client: client,
		opts:   opts,
	}
}

// Chat implements model.Model. The Messages API has no schema-constrained
// mode, so a requested schema is appended to the system prompt. Content is
// nil only when the reply has no text block.
func (m *Model) Chat(ctx context.Context, req model.Request) (*model.Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(m.opts.Model),
		Messages:  buildMessages(req.Messages),
		MaxTokens: m.opts.MaxTokens,
	}
	if m.opts.Temperature != nil {
		params.Temperature = anthropic.Float(*m.opts.Temperature)
	}

	system, err := buildSystem(req.Messages, req.Schema)
	if err != nil {
		return nil, err
	}
	if len(system) > 0 {
		params.System = system
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var (
		text    strings.Builder
		hasText bool
	)
	for _, block := range resp.Content {
		if block.Type == "text" {
			hasText = true
			text.WriteString(block.AsText().Text)
		}
	}

	finishReason := "stop"
	if resp.StopReason != "" {
		finishReason = string(resp.StopReason)
	}

	out := &model.Response{
		ID:           resp.ID,
		FinishReason: finishReason,
		Usage: &model.TokenUsage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		},
	}
	// No text block at all (e.g. a refusal) is an absent reply.
	if hasText {
		s := text.String()
		out.Content = &s
	}

	return out, nil
}

// buildMessages converts the non-system conversation to Anthropic message format.
func buildMessages(msgs []core.Message) []anthropic.MessageParam {
	var messages []anthropic.MessageParam

	for _, msg := range msgs {
		if msg.Role == core.RoleSystem || msg.Content == "" {
			continue // System messages handled separately
		}

		switch msg.Role {
		case core.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	if n := len(messages); n > 0 && messages[n-1].Role == anthropic.MessageParamRoleAssistant {
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(continuePrompt)))
	}

	return messages
}

// buildSystem collects system message blocks and, when s is set, an
// instruction describing the expected JSON reply.
func buildSystem(msgs []core.Message, s *schema.Schema) ([]anthropic.TextBlockParam, error) {
	var systemBlocks []anthropic.TextBlockParam

	for _, msg := range msgs {
		if msg.Role == core.RoleSystem && msg.Content != "" {
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: msg.Content})
		}
	}

	if s != nil {
		instruction, err := schemaInstruction(s)
		if err != nil {
			return nil, err
		}
		systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: instruction})
	}

	return systemBlocks, nil
}

func schemaInstruction(s *schema.Schema) (string, error) {
	js, err := json.Marshal(s.JSONSchema())
	if err != nil {
		return "", fmt.Errorf("encode schema %s: %w", s.Name(), err)
	}

	var b strings.Builder
	b.WriteString("When you give your final answer, reply with only a JSON object that conforms to this JSON schema")
	if s.Description() != "" {
		b.WriteString(" (")
		b.WriteString(s.Description())
		b.WriteString(")")
	}
	b.WriteString(":\n")
	b.Write(js)

	return b.String(), nil
}

// Info returns metadata describing this Anthropic model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:     m.opts.Model,
		Provider: "anthropic",
	}
}
