// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API. It adapts agentzero's normalized Request/Response
// structures into the SDK's message format and back, and maps an output
// schema onto the json_schema response format.
package openai

import (
	"context"
	"fmt"
	"regexp"

	"github.com/openai/openai-go"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/model"
	"github.com/hupe1980/agentzero/schema"
)

// Options configure the OpenAI model adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model string
	// Temperature is only sent when set; nil leaves the provider default.
	Temperature         *float64
	MaxCompletionTokens int64
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

var _ model.Model = (*Model)(nil)

// NewModel creates a new OpenAI model using the official client. Credentials
// are read from OPENAI_API_KEY.
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Chat implements model.Model. Content is nil only when the completion
// carries no content at all (no choice, or a null content as with refusals);
// an empty string is a present, empty reply.
func (m *Model) Chat(ctx context.Context, req model.Request) (*model.Response, error) {
	resp, err := m.client.Chat.Completions.New(ctx, m.buildParams(req))
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	out := &model.Response{
		ID: resp.ID,
		Usage: &model.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}

	if len(resp.Choices) == 0 {
		return out, nil
	}

	ch0 := resp.Choices[0]
	out.FinishReason = ch0.FinishReason
	if ch0.Message.JSON.Content.Valid() {
		text := ch0.Message.Content
		out.Content = &text
	}

	return out, nil
}

// buildMessages converts the conversation into OpenAI chat messages.
func buildMessages(msgs []core.Message) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case core.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case core.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	return messages
}

// buildParams assembles the OpenAI request parameters including the response format.
func (m *Model) buildParams(req model.Request) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req.Messages),
		Model:               m.opts.Model,
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}
	if m.opts.Temperature != nil {
		params.Temperature = openai.Float(*m.opts.Temperature)
	}
	if req.Schema != nil {
		params.ResponseFormat = responseFormat(req.Schema)
	}
	return params
}

var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// responseFormat maps a schema onto the json_schema response format. OpenAI
// restricts schema names to [a-zA-Z0-9_-]. Strict schemas are already in the
// closed form strict mode requires.
func responseFormat(s *schema.Schema) openai.ChatCompletionNewParamsResponseFormatUnion {
	jsonSchema := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   invalidNameChars.ReplaceAllString(s.Name(), "_"),
		Schema: s.JSONSchema(),
	}
	if s.Description() != "" {
		jsonSchema.Description = openai.String(s.Description())
	}
	if s.Strict() {
		jsonSchema.Strict = openai.Bool(true)
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: jsonSchema},
	}
}

// Info returns metadata describing this OpenAI model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:           m.opts.Model,
		Provider:       "openai",
		SupportsSchema: true,
	}
}
