package agent

import (
	"testing"
)

func TestParseDecision(t *testing.T) {
	valid := `{"action": "EXECUTE", "reasoning": "Test reasoning", "worker_role": "Researcher", "worker_instructions": "Do research"}`
	want := Decision{
		Action:             ActionExecute,
		Reasoning:          "Test reasoning",
		WorkerRole:         "Researcher",
		WorkerInstructions: "Do research",
	}

	tests := []struct {
		name    string
		content string
		want    Decision
		wantOK  bool
	}{
		{
			name:    "valid json",
			content: valid,
			want:    want,
			wantOK:  true,
		},
		{
			name:    "json in code block",
			content: "```json\n" + valid + "\n```",
			want:    want,
			wantOK:  true,
		},
		{
			name:    "bare fence",
			content: "```\n" + valid + "\n```",
			want:    want,
			wantOK:  true,
		},
		{
			name:    "skip action",
			content: `{"action": "SKIP", "reasoning": "chore", "worker_role": "None", "worker_instructions": ""}`,
			want:    Decision{Action: ActionSkip, Reasoning: "chore", WorkerRole: "None"},
			wantOK:  true,
		},
		{
			name:    "extra fields ignored",
			content: `{"action": "EXECUTE", "reasoning": "r", "worker_role": "w", "worker_instructions": "i", "category": "SUMMARY"}`,
			want:    Decision{Action: ActionExecute, Reasoning: "r", WorkerRole: "w", WorkerInstructions: "i"},
			wantOK:  true,
		},
		{
			name:    "not json",
			content: "This is not JSON at all!",
			want:    FallbackDecision(),
		},
		{
			name:    "empty",
			content: "",
			want:    FallbackDecision(),
		},
		{
			name:    "missing field",
			content: `{"action": "EXECUTE", "reasoning": "r", "worker_role": "w"}`,
			want:    FallbackDecision(),
		},
		{
			name:    "null field",
			content: `{"action": "EXECUTE", "reasoning": null, "worker_role": "w", "worker_instructions": "i"}`,
			want:    FallbackDecision(),
		},
		{
			name:    "non-string field",
			content: `{"action": "EXECUTE", "reasoning": 42, "worker_role": "w", "worker_instructions": "i"}`,
			want:    FallbackDecision(),
		},
		{
			name:    "unknown action",
			content: `{"action": "SUMMARY", "reasoning": "r", "worker_role": "w", "worker_instructions": "i"}`,
			want:    FallbackDecision(),
		},
		{
			name:    "prose around json",
			content: "Here you go: " + valid,
			want:    FallbackDecision(),
		},
		{
			name:    "array",
			content: "[" + valid + "]",
			want:    FallbackDecision(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDecision(tt.content)
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFallbackDecisionComplete(t *testing.T) {
	d := FallbackDecision()
	if d.Action != ActionExecute {
		t.Errorf("expected EXECUTE, got %q", d.Action)
	}
	if d.WorkerRole != "General Researcher" {
		t.Errorf("unexpected role %q", d.WorkerRole)
	}
	if d.Reasoning == "" || d.WorkerInstructions == "" {
		t.Errorf("fallback has empty fields: %+v", d)
	}
}

func TestActionValid(t *testing.T) {
	if !ActionExecute.Valid() || !ActionSkip.Valid() {
		t.Error("known actions should be valid")
	}
	if Action("execute").Valid() || Action("").Valid() {
		t.Error("unknown actions should be invalid")
	}
}
