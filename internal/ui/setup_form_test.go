package ui

import (
	"testing"
	"time"

	"github.com/mcao2/tasks-research/internal/config"
)

func TestSetupFormPrefill(t *testing.T) {
	cfg := config.Default()
	cfg.TaskListID = "list-1"

	r := NewSetupForm(&cfg).Result()
	if r.Provider != "gemini" || r.TaskListID != "list-1" || r.MaxTasks != "5" || r.TaskDelay != "2s" {
		t.Errorf("unexpected prefill %+v", r)
	}
}

func TestSetupFormApply(t *testing.T) {
	cfg := config.Default()
	form := NewSetupForm(&cfg)

	r := form.Result()
	r.Provider = "openai"
	r.APIKey = " sk-1 "
	r.Model = ""
	r.TaskListID = "list-2"
	r.MaxTasks = "3"
	r.TaskDelay = "500ms"
	r.RefreshToken = "rt"

	if err := form.Apply(); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.APIKey != "sk-1" || cfg.LLM.Model != "" {
		t.Errorf("unexpected llm config %+v", cfg.LLM)
	}
	if cfg.TaskListID != "list-2" || cfg.MaxTasks != 3 || cfg.TaskDelay != 500*time.Millisecond {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Google.RefreshToken != "rt" {
		t.Errorf("expected refresh token, got %q", cfg.Google.RefreshToken)
	}
}

func TestSetupFormApplyRejectsBadNumbers(t *testing.T) {
	for _, tc := range []struct{ maxTasks, delay string }{
		{"zero", "2s"},
		{"0", "2s"},
		{"5", "soon"},
		{"5", "-1s"},
	} {
		cfg := config.Default()
		form := NewSetupForm(&cfg)
		form.Result().MaxTasks = tc.maxTasks
		form.Result().TaskDelay = tc.delay
		if err := form.Apply(); err == nil {
			t.Errorf("expected error for max=%q delay=%q", tc.maxTasks, tc.delay)
		}
	}
}

func TestValidators(t *testing.T) {
	if required("x")("  ") == nil {
		t.Error("blank value should fail required")
	}
	if validatePositiveInt("4") != nil || validatePositiveInt("-1") == nil {
		t.Error("unexpected positive int validation")
	}
	if validateDuration("1m") != nil || validateDuration("later") == nil {
		t.Error("unexpected duration validation")
	}
}
