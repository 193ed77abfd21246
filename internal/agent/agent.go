// Package agent runs the two model stages for a task: the router picks a
// strategy and the worker produces the research content.
package agent

import (
	"context"
	"fmt"
)

// Generator is a single model invocation: system instruction and user prompt
// in, text out. An empty string with a nil error means the model produced
// nothing.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, userPrompt string) (string, error)
}

// Agent drives the router and worker stages over one Generator.
type Agent struct {
	gen Generator

	// onFallback is called when the router output could not be parsed.
	onFallback func(raw string)
}

// Option configures an Agent.
type Option func(*Agent)

// WithFallbackHook registers a callback for unparseable router output.
func WithFallbackHook(fn func(raw string)) Option {
	return func(a *Agent) {
		a.onFallback = fn
	}
}

// New returns an Agent backed by gen.
func New(gen Generator, opts ...Option) *Agent {
	a := &Agent{gen: gen}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Route asks the router model how to handle title. Model errors are
// returned; malformed output resolves to FallbackDecision.
func (a *Agent) Route(ctx context.Context, title string) (Decision, error) {
	system := fmt.Sprintf(RouterPromptTemplate, title)

	raw, err := a.gen.Generate(ctx, system, RouterUserPrompt)
	if err != nil {
		return Decision{}, fmt.Errorf("router: %w", err)
	}

	decision, ok := ParseDecision(raw)
	if !ok && a.onFallback != nil {
		a.onFallback(raw)
	}
	return decision, nil
}

// Work runs the worker stage and returns its Markdown output, which is empty
// when the model returned no content.
func (a *Agent) Work(ctx context.Context, title string, d Decision) (string, error) {
	system := fmt.Sprintf(WorkerPromptTemplate, d.WorkerInstructions)
	user := fmt.Sprintf(WorkerUserPromptTemplate, title)

	out, err := a.gen.Generate(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("worker: %w", err)
	}
	return out, nil
}
