package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type call struct {
	system string
	user   string
}

// fakeGenerator replays canned responses in order.
type fakeGenerator struct {
	responses []string
	errs      []error
	calls     []call
}

func (f *fakeGenerator) Generate(_ context.Context, system, user string) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, call{system: system, user: user})
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", nil
}

func TestRoute(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		"```json\n{\"action\":\"EXECUTE\",\"reasoning\":\"vague concept\",\"worker_role\":\"Creative Strategist\",\"worker_instructions\":\"List ideas\"}\n```",
	}}
	a := New(gen)

	d, err := a.Route(context.Background(), "ideas for a 50% discount campaign")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.WorkerRole != "Creative Strategist" || d.WorkerInstructions != "List ideas" {
		t.Errorf("unexpected decision %+v", d)
	}
	if len(gen.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(gen.calls))
	}
	if !strings.Contains(gen.calls[0].system, `"ideas for a 50% discount campaign"`) {
		t.Errorf("title missing from router prompt: %q", gen.calls[0].system)
	}
	if gen.calls[0].user != RouterUserPrompt {
		t.Errorf("unexpected user prompt %q", gen.calls[0].user)
	}
}

func TestRouteFallback(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"I think you should research this."}}
	var hooked string
	a := New(gen, WithFallbackHook(func(raw string) { hooked = raw }))

	d, err := a.Route(context.Background(), "something")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != FallbackDecision() {
		t.Errorf("expected fallback, got %+v", d)
	}
	if hooked != "I think you should research this." {
		t.Errorf("fallback hook got %q", hooked)
	}
}

func TestRouteError(t *testing.T) {
	boom := errors.New("quota exceeded")
	a := New(&fakeGenerator{errs: []error{boom}})

	_, err := a.Route(context.Background(), "x")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestWork(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"## Findings\n* one"}}
	a := New(gen)

	d := Decision{Action: ActionExecute, WorkerInstructions: "Summarize the paper."}
	out, err := a.Work(context.Background(), "attention is all you need", d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "## Findings\n* one" {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.HasPrefix(gen.calls[0].system, "Summarize the paper.") {
		t.Errorf("worker instructions not leading system prompt: %q", gen.calls[0].system)
	}
	if !strings.Contains(gen.calls[0].system, "3-5 Actionable Next Steps") {
		t.Error("worker constraints missing")
	}
	if gen.calls[0].user != `Topic: "attention is all you need"` {
		t.Errorf("unexpected user prompt %q", gen.calls[0].user)
	}
}

func TestWorkNoContent(t *testing.T) {
	a := New(&fakeGenerator{})
	out, err := a.Work(context.Background(), "topic", FallbackDecision())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
