package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/interpret"
	"github.com/hupe1980/agentzero/logging"
	"github.com/hupe1980/agentzero/model"
	"github.com/hupe1980/agentzero/schema"
	"github.com/hupe1980/agentzero/session"
	"github.com/hupe1980/agentzero/tool"
)

// DefaultMaxIterations bounds the model requests of one Run unless overridden.
const DefaultMaxIterations = 10

var (
	// ErrInvalidConfig is returned by New when options are invalid.
	ErrInvalidConfig = errors.New("invalid agent configuration")
	// ErrNoReply is returned by Run when the model returns no reply.
	ErrNoReply = errors.New("model returned no reply")
)

// Options configures an Agent instance.
//
// Use functional options with New to override defaults.
type Options struct {
	// Instructions is the task description placed in the system prompt.
	Instructions Instruction
	// Tools the model may call, in catalog order. Names must be unique.
	Tools []tool.Tool
	// OutputSchema requests a structured final answer. Nil means plain text.
	OutputSchema *schema.Schema
	// MaxIterations bounds the model requests per Run. Must be positive.
	MaxIterations int
	// Logger receives run and tool events. Defaults to logging.NoOpLogger.
	Logger logging.Logger
	// Store mirrors every logged message when set.
	Store session.Store
	// SessionID keys the transcript in Store. A random UUID when empty.
	SessionID string
}

// Agent drives one model through a bounded tool calling loop.
//
// An Agent owns its message log; the log starts with the system prompt and
// grows across Run calls. Run is synchronous and the Agent performs no
// locking, so callers must serialize concurrent Runs on one instance.
type Agent struct {
	name          string
	llm           model.Model
	registry      *tool.Registry
	outputSchema  *schema.Schema
	maxIterations int
	logger        logging.Logger
	store         session.Store
	sessionID     string
	systemPrompt  string

	log *core.MessageLog
	// persisted counts log messages already mirrored to store.
	persisted int
}

// New creates an agent and synthesizes its system message.
//
// Parameters:
//   - name: identity used in the system prompt
//   - llm: model client used for every iteration
//
// Invalid options fail with an error matching ErrInvalidConfig; tool problems
// additionally match *tool.ConfigurationError.
func New(name string, llm model.Model, optFns ...func(o *Options)) (*Agent, error) {
	opts := Options{
		MaxIterations: DefaultMaxIterations,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidConfig)
	}
	if llm == nil {
		return nil, fmt.Errorf("%w: model must not be nil", ErrInvalidConfig)
	}
	if opts.MaxIterations <= 0 {
		return nil, fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConfig, opts.MaxIterations)
	}

	registry, err := tool.NewRegistry(opts.Tools...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}

	instructions, err := opts.Instructions.Resolve(PromptData{
		AgentName: name,
		SessionID: opts.SessionID,
		Tools:     registry.Names(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: resolve instructions: %w", ErrInvalidConfig, err)
	}

	systemPrompt, err := buildSystemPrompt(name, instructions, registry.Prompt())
	if err != nil {
		return nil, fmt.Errorf("%w: build system prompt: %w", ErrInvalidConfig, err)
	}

	return &Agent{
		name:          name,
		llm:           llm,
		registry:      registry,
		outputSchema:  opts.OutputSchema,
		maxIterations: opts.MaxIterations,
		logger:        logging.OrNoOp(opts.Logger),
		store:         opts.Store,
		sessionID:     opts.SessionID,
		systemPrompt:  systemPrompt,
		log:           core.NewMessageLog(core.SystemMessage(systemPrompt)),
	}, nil
}

// Run appends query to the log and iterates until the model produces a final
// answer.
//
// Each iteration sends the full log to the model and classifies the reply.
// A tool call executes the tool, appends one summary message and continues;
// a structured or plain text reply ends the run.
//
// Error Semantics:
//
//	model transport failure -> wrapped "model call failed"
//	absent reply            -> ErrNoReply
//	unknown tool            -> *tool.NotAvailableError (no further request)
//	tool failure            -> *tool.ExecutionError
//	bound exhausted         -> *core.IterationLimitError after MaxIterations requests
//
// ctx is forwarded to the model and to tools; the loop itself does not
// check it between iterations.
func (a *Agent) Run(ctx context.Context, query string) (core.Output, error) {
	runID := uuid.NewString()
	start := time.Now()

	a.logger.Info("agent.run.start", "agent", a.name, "session_id", a.sessionID, "run_id", runID)

	out, err := a.run(ctx, runID, query)
	if err != nil {
		a.logger.Error("agent.run.error",
			"agent", a.name,
			"run_id", runID,
			"error", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return core.Output{}, err
	}

	a.logger.Info("agent.run.complete",
		"agent", a.name,
		"run_id", runID,
		"output_kind", out.Kind().String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return out, nil
}

func (a *Agent) run(ctx context.Context, runID, query string) (core.Output, error) {
	if err := a.append(ctx, core.UserMessage(query)); err != nil {
		return core.Output{}, err
	}

	limiter := core.NewIterationLimiter(a.maxIterations)
	toolCtx := core.NewToolContext(ctx, core.RunInfo{
		AgentName: a.name,
		SessionID: a.sessionID,
		RunID:     runID,
	}, a.logger)

	for {
		if err := limiter.Increment(); err != nil {
			return core.Output{}, err
		}

		a.logger.Debug("agent.model.request",
			"agent", a.name,
			"run_id", runID,
			"iteration", limiter.Count(),
			"messages", a.log.Len(),
		)

		callStart := time.Now()
		resp, err := a.llm.Chat(ctx, model.Request{
			Messages: a.log.Snapshot(),
			Schema:   a.outputSchema,
		})
		a.logModelCall(resp, time.Since(callStart), err)
		if err != nil {
			return core.Output{}, fmt.Errorf("model call failed: %w", err)
		}
		if resp == nil || resp.Content == nil {
			return core.Output{}, ErrNoReply
		}

		result := interpret.Classify(*resp.Content, a.outputSchema)

		a.logger.Debug("agent.model.reply",
			"agent", a.name,
			"run_id", runID,
			"iteration", limiter.Count(),
			"kind", result.Kind.String(),
		)

		if out, terminal := result.Output(); terminal {
			return out, nil
		}

		call := result.ToolCall
		toolStart := time.Now()
		value, err := a.registry.Execute(toolCtx, call.ToolName, call.ToolParameters)
		if cl, ok := a.logger.(callLogger); ok {
			cl.LogToolCall(call.ToolName, time.Since(toolStart), err == nil, err)
		}
		if err != nil {
			return core.Output{}, err
		}

		if err := a.append(ctx, core.AssistantMessage(toolSummary(call, value))); err != nil {
			return core.Output{}, err
		}
	}
}

// callLogger is implemented by loggers with dedicated model and tool call
// records, such as *logging.ContextLogger.
type callLogger interface {
	LogModelCall(model string, tokens int, dur time.Duration, success bool, err error)
	LogToolCall(tool string, dur time.Duration, success bool, err error)
}

func (a *Agent) logModelCall(resp *model.Response, dur time.Duration, err error) {
	cl, ok := a.logger.(callLogger)
	if !ok {
		return
	}
	tokens := 0
	if resp != nil && resp.Usage != nil {
		tokens = resp.Usage.TotalTokens
	}
	cl.LogModelCall(a.llm.Info().Name, tokens, dur, err == nil, err)
}

// append adds msg to the log and mirrors all not yet persisted messages,
// including the system message on first use, to the store.
func (a *Agent) append(ctx context.Context, msg core.Message) error {
	if err := a.log.Append(msg); err != nil {
		return err
	}
	if a.store == nil {
		return nil
	}
	pending := a.log.Snapshot()[a.persisted:]
	for _, m := range pending {
		if err := a.store.Append(ctx, a.sessionID, m); err != nil {
			return fmt.Errorf("persist message: %w", err)
		}
		a.persisted++
	}
	return nil
}

// Name returns the agent's display name.
func (a *Agent) Name() string { return a.name }

// SessionID returns the id under which the transcript is stored.
func (a *Agent) SessionID() string { return a.sessionID }

// SystemPrompt returns the rendered system message.
func (a *Agent) SystemPrompt() string { return a.systemPrompt }

// MaxIterations returns the per-run bound on model requests.
func (a *Agent) MaxIterations() int { return a.maxIterations }

// Tools returns the names of the registered tools in catalog order.
func (a *Agent) Tools() []string { return a.registry.Names() }

// Messages returns a copy of the conversation so far.
func (a *Agent) Messages() []core.Message { return a.log.Snapshot() }

// Model returns the model client.
func (a *Agent) Model() model.Model { return a.llm }
