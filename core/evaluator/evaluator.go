package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/darielli/evochar/core/schemadoc"
	"github.com/darielli/evochar/internal/utils"
	"github.com/darielli/evochar/providers/ai"
)

var (
	// ErrNoUpdates is returned when a model reply contains no usable update
	// structure.
	ErrNoUpdates = errors.New("no updates in model reply")

	// ErrAttemptsExhausted is returned when every attempt within the budget
	// failed; it wraps the last underlying error.
	ErrAttemptsExhausted = errors.New("evaluation attempts exhausted")
)

// Evaluator drives the record-evolution loop against a single provider and
// schema. It is safe for concurrent use: every call operates only on its own
// input.
type Evaluator struct {
	provider ai.Provider
	schema   *schemadoc.Schema
	opts     options
}

type options struct {
	maxAttempts  int
	model        string
	logger       *slog.Logger
	generation   *ai.GenerationConfig
	thinkingTags []string
}

// Option customises an Evaluator at construction time.
type Option func(*options)

// WithMaxAttempts sets the total attempt budget per Evaluate call
// (default 3). Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxAttempts = n
		}
	}
}

// WithModel sets the model identifier passed through to the provider.
func WithModel(model string) Option {
	return func(o *options) { o.model = model }
}

// WithLogger enables diagnostic logging of failed attempts. Without it the
// evaluator is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithGenerationConfig passes sampling parameters through to the provider.
func WithGenerationConfig(config ai.GenerationConfig) Option {
	return func(o *options) { o.generation = &config }
}

// WithThinkingTags overrides the tag names whose blocks are stripped from
// replies before parsing (default "thinking" and "think").
func WithThinkingTags(tags ...string) Option {
	return func(o *options) { o.thinkingTags = tags }
}

// New builds an Evaluator for the given provider and record schema.
func New(provider ai.Provider, schema *schemadoc.Schema, opts ...Option) (*Evaluator, error) {
	if provider == nil {
		return nil, errors.New("provider is required")
	}
	o := options{
		maxAttempts:  3,
		thinkingTags: []string{"thinking", "think"},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Evaluator{provider: provider, schema: schema, opts: o}, nil
}

// Request carries everything one evaluation needs.
type Request struct {
	// CharacterName is the display name of the character being evolved.
	CharacterName string

	// Record holds the character's current field values.
	Record map[string]any

	// Transcript is the recent conversation the evaluation reasons over.
	Transcript []ai.Message

	// Guidance is an optional extra instruction appended to the prompt.
	Guidance string
}

// Result is a successful evaluation outcome. Updates may be empty when the
// model explicitly proposed no changes.
type Result struct {
	Updates  []FieldUpdate
	Raw      string // the reply the updates were extracted from
	Attempts int
}

// Evaluate runs the evolution loop: prompt, model call, parse, extract.
// Failed attempts (transport error, unparseable reply, no update structure)
// are retried until the budget runs out; context cancellation stops the
// loop immediately.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (*Result, error) {
	system, user := buildPrompt(e.schema, req)
	request := ai.ChatRequest{
		Model:            e.opts.model,
		SystemPrompt:     system,
		Messages:         []ai.Message{{Role: ai.RoleUser, Content: user}},
		GenerationConfig: e.opts.generation,
	}

	var lastErr error
	for attempt := 1; attempt <= e.opts.maxAttempts; attempt++ {
		response, err := e.provider.SendMessage(ctx, request)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			e.logAttempt(attempt, "model call failed", err, "")
			continue
		}

		content := utils.StripTagBlocks(response.Content, e.opts.thinkingTags...)
		updates, err := ExtractUpdates(content, e.schema)
		if err != nil {
			lastErr = err
			e.logAttempt(attempt, "reply not usable", err, response.Content)
			continue
		}

		return &Result{Updates: updates, Raw: response.Content, Attempts: attempt}, nil
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, e.opts.maxAttempts, lastErr)
}

func (e *Evaluator) logAttempt(attempt int, msg string, err error, reply string) {
	if e.opts.logger == nil {
		return
	}
	args := []any{"attempt", attempt, "max_attempts", e.opts.maxAttempts, "error", err}
	if reply != "" {
		args = append(args, "reply", utils.TruncateString(reply, 0))
	}
	e.opts.logger.Warn(msg, args...)
}
