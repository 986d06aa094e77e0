package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pagesmith/model"
)

var ErrPromptTooLarge = errors.New("prompt exceeds the token budget")

// Agent turns an edit instruction and the prior page into a new validated
// HTML document.
type Agent struct {
	generator model.Generator
	counter   model.TokenCounter
	maxTokens int
	logger    *slog.Logger
}

type Option func(*Agent)

// WithTokenBudget rejects prompts larger than limit tokens; limit <= 0 disables it.
func WithTokenBudget(counter model.TokenCounter, limit int) Option {
	return func(a *Agent) {
		a.counter = counter
		a.maxTokens = limit
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = l
	}
}

func New(g model.Generator, opts ...Option) *Agent {
	a := &Agent{
		generator: g,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Synthesize returns the validated document produced for instruction.
// label names the prior page in the prompt.
func (a *Agent) Synthesize(ctx context.Context, prior, instruction, label string) (string, error) {
	req := BuildPrompt(prior, instruction, label)

	if a.counter != nil && a.maxTokens > 0 {
		count, err := a.counter.Count(req.Instructions + "\n" + req.Input)
		if err != nil {
			// counting is advisory when the encoding cannot be loaded
			a.logger.Warn("token count failed", "error", err)
		} else {
			a.logger.Debug("prompt size", "tokens", count, "max", a.maxTokens)
			if count > a.maxTokens {
				return "", fmt.Errorf("%w: %d > %d", ErrPromptTooLarge, count, a.maxTokens)
			}
		}
	}

	start := time.Now()
	out, err := a.generator.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	a.logger.Info("model replied", "page", label, "took", time.Since(start), "bytes", len(out))

	return ValidateHTML(out)
}
