// Package agentzero provides a small facade for wiring an agent to a model
// provider chosen at runtime. Most applications interact with this package by:
//  1. Loading credentials from the environment or a .env file (LoadEnv)
//  2. Creating a provider-backed model (NewModel), configured by
//     AGENTZERO_PROVIDER and AGENTZERO_MODEL unless overridden
//  3. Building an agent.Agent around it (NewAgent)
//
// The agent loop itself lives in package agent; this package only removes
// setup boilerplate for programs that want to switch providers without code
// changes.
package agentzero

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hupe1980/agentzero/agent"
	"github.com/hupe1980/agentzero/model"
	"github.com/hupe1980/agentzero/model/anthropic"
	"github.com/hupe1980/agentzero/model/gemini"
	"github.com/hupe1980/agentzero/model/ollama"
	"github.com/hupe1980/agentzero/model/openai"
)

// Environment variables consulted by NewModel.
const (
	EnvProvider = "AGENTZERO_PROVIDER"
	EnvModel    = "AGENTZERO_MODEL"
)

// Supported providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

// ErrUnknownProvider is returned for unsupported provider names.
var ErrUnknownProvider = errors.New("unknown model provider")

// Options configures NewModel.
type Options struct {
	// Provider selects the backend. Defaults to AGENTZERO_PROVIDER, then openai.
	Provider string
	// Model overrides the provider's default model id. Defaults to AGENTZERO_MODEL.
	Model string
}

// LoadEnv loads variables from the given .env files (".env" when none are
// given) without overriding variables that are already set. Missing files
// are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// NewModel creates a model client for the configured provider. Credentials
// are read by each provider SDK from its usual environment variables.
func NewModel(ctx context.Context, optFns ...func(o *Options)) (model.Model, error) {
	opts := Options{
		Provider: os.Getenv(EnvProvider),
		Model:    os.Getenv(EnvModel),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = ProviderOpenAI
	}

	switch provider {
	case ProviderOpenAI:
		return openai.NewModel(func(o *openai.Options) {
			if opts.Model != "" {
				o.Model = opts.Model
			}
		}), nil
	case ProviderAnthropic:
		return anthropic.NewModel(func(o *anthropic.Options) {
			if opts.Model != "" {
				o.Model = opts.Model
			}
		}), nil
	case ProviderGemini:
		return gemini.NewModel(ctx, func(o *gemini.Options) {
			if opts.Model != "" {
				o.Model = opts.Model
			}
		})
	case ProviderOllama:
		return ollama.NewModel(func(o *ollama.Options) {
			if opts.Model != "" {
				o.Model = opts.Model
			}
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
}

// NewAgent creates an agent backed by NewModel's provider selection.
func NewAgent(ctx context.Context, name string, optFns ...func(o *agent.Options)) (*agent.Agent, error) {
	llm, err := NewModel(ctx)
	if err != nil {
		return nil, err
	}
	return agent.New(name, llm, optFns...)
}
