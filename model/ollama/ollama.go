// Package ollama provides an implementation of model.Model backed by a local
// or remote Ollama server (/api/chat). Output schemas are passed through the
// request's format field, which Ollama uses for constrained decoding.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/model"
)

// DefaultHost is used when neither Options.Host nor OLLAMA_HOST is set.
const DefaultHost = "http://localhost:11434"

// Options configures the Ollama model adapter.
type Options struct {
	Model string
	// Temperature is only sent when set; nil leaves the model default.
	Temperature *float64
	// Host is the server base URL. Defaults to OLLAMA_HOST, then DefaultHost.
	Host    string
	Timeout time.Duration
}

// Model wraps the Ollama chat endpoint behind the generic model.Model interface.
type Model struct {
	client *ollama.Client
	opts   Options
}

var _ model.Model = (*Model)(nil)

// NewModel creates a new Ollama model.
func NewModel(optFns ...func(o *Options)) (*Model, error) {
	opts := Options{
		Model:   "llama3.2",
		Host:    os.Getenv("OLLAMA_HOST"),
		Timeout: 120 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Host == "" {
		opts.Host = DefaultHost
	}

	u, err := url.Parse(opts.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", opts.Host, err)
	}

	client := ollama.NewClient(u, &http.Client{Timeout: opts.Timeout})

	return &Model{client: client, opts: opts}, nil
}

// Chat implements model.Model with a single non-streaming chat request. A
// completed chat always carries a message, so Content is never nil.
func (m *Model) Chat(ctx context.Context, req model.Request) (*model.Response, error) {
	stream := false
	chatReq := &ollama.ChatRequest{
		Model:    m.opts.Model,
		Messages: buildMessages(req.Messages),
		Stream:   &stream,
	}
	if m.opts.Temperature != nil {
		chatReq.Options = map[string]any{"temperature": *m.opts.Temperature}
	}

	if req.Schema != nil {
		format, err := json.Marshal(req.Schema.JSONSchema())
		if err != nil {
			return nil, fmt.Errorf("encode schema %s: %w", req.Schema.Name(), err)
		}
		chatReq.Format = format
	}

	var (
		text strings.Builder
		last ollama.ChatResponse
	)

	if err := m.client.Chat(ctx, chatReq, func(cr ollama.ChatResponse) error {
		text.WriteString(cr.Message.Content)
		last = cr
		return nil
	}); err != nil {
		return nil, fmt.Errorf("ollama api error: %w", err)
	}

	out := &model.Response{
		FinishReason: last.DoneReason,
		Usage: &model.TokenUsage{
			PromptTokens:     last.PromptEvalCount,
			CompletionTokens: last.EvalCount,
			TotalTokens:      last.PromptEvalCount + last.EvalCount,
		},
	}
	s := text.String()
	out.Content = &s

	return out, nil
}

func buildMessages(msgs []core.Message) []ollama.Message {
	out := make([]ollama.Message, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, ollama.Message{Role: msg.Role.String(), Content: msg.Content})
	}
	return out
}

// Info returns metadata describing this Ollama model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:           m.opts.Model,
		Provider:       "ollama",
		SupportsSchema: true,
	}
}
