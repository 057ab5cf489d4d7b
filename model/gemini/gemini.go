// Package gemini provides an implementation of model.Model using the Google
// Gen AI SDK (Gemini API). Output schemas map onto native JSON-mode
// generation via ResponseJsonSchema.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/model"
)

// DefaultModel is used when Options.Model is empty.
const DefaultModel = "gemini-2.0-flash"

// Options configures the Gemini model adapter.
type Options struct {
	Model string
	// Temperature is only sent when set; nil leaves the provider default.
	Temperature     *float32
	MaxOutputTokens int32
	// APIKey overrides GEMINI_API_KEY / GOOGLE_API_KEY.
	APIKey string
	// BaseURL overrides the API endpoint.
	BaseURL string
}

// Model wraps the Gemini GenerateContent API behind the generic model.Model interface.
type Model struct {
	client *genai.Client
	opts   Options
}

var _ model.Model = (*Model)(nil)

func defaultOptions() Options {
	return Options{
		Model:           DefaultModel,
		MaxOutputTokens: 4096,
	}
}

// NewModel creates a Gemini model backed by a new genai client.
func NewModel(ctx context.Context, optFns ...func(o *Options)) (*Model, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Model{client: client, opts: opts}, nil
}

// NewModelFromClient creates a Gemini model from an existing client.
func NewModelFromClient(client *genai.Client, optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Chat implements model.Model. Content is nil only when the first candidate
// carries no answer part (no candidate, no content, or thoughts only).
func (m *Model) Chat(ctx context.Context, req model.Request) (*model.Response, error) {
	contents, systemInstruction := buildContents(req.Messages)

	config := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
		Temperature:       m.opts.Temperature,
		MaxOutputTokens:   m.opts.MaxOutputTokens,
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseJsonSchema = req.Schema.JSONSchema()
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.opts.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini api error: %w", err)
	}

	out := &model.Response{ID: resp.ResponseID}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = &model.TokenUsage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out, nil
	}

	cand := resp.Candidates[0]
	out.FinishReason = strings.ToLower(string(cand.FinishReason))

	var (
		text    strings.Builder
		hasText bool
	)
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		hasText = true
		text.WriteString(part.Text)
	}
	if hasText {
		s := text.String()
		out.Content = &s
	}

	return out, nil
}

// buildContents converts the conversation to genai contents. System messages
// are merged into a single system instruction.
func buildContents(msgs []core.Message) ([]*genai.Content, *genai.Content) {
	var contents []*genai.Content
	var systemParts []*genai.Part

	for _, msg := range msgs {
		if msg.Content == "" {
			continue
		}

		switch msg.Role {
		case core.RoleSystem:
			systemParts = append(systemParts, &genai.Part{Text: msg.Content})
		case core.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		}
	}

	var systemInstruction *genai.Content
	if len(systemParts) > 0 {
		systemInstruction = &genai.Content{Parts: systemParts}
	}

	return contents, systemInstruction
}

// Info returns metadata describing this Gemini model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:           m.opts.Model,
		Provider:       "gemini",
		SupportsSchema: true,
	}
}
