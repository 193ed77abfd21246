package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// codeFenceReplacer drops markdown fences the model wraps around JSON.
var codeFenceReplacer = strings.NewReplacer("```json", "", "```", "")

// ParseDecision extracts a Decision from raw router output. It never fails:
// unparseable output yields FallbackDecision and ok=false.
func ParseDecision(content string) (d Decision, ok bool) {
	d, err := decodeDecision(content)
	if err != nil {
		return FallbackDecision(), false
	}
	return d, true
}

// rawDecision uses pointers so absent fields can be told apart from empty ones.
type rawDecision struct {
	Action             *string `json:"action"`
	Reasoning          *string `json:"reasoning"`
	WorkerRole         *string `json:"worker_role"`
	WorkerInstructions *string `json:"worker_instructions"`
}

func decodeDecision(content string) (Decision, error) {
	cleaned := strings.TrimSpace(codeFenceReplacer.Replace(content))
	if cleaned == "" {
		return Decision{}, fmt.Errorf("empty router response")
	}

	var raw rawDecision
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return Decision{}, fmt.Errorf("failed to parse router response: %w", err)
	}

	// Validate required fields
	switch {
	case raw.Action == nil:
		return Decision{}, fmt.Errorf("missing action")
	case raw.Reasoning == nil:
		return Decision{}, fmt.Errorf("missing reasoning")
	case raw.WorkerRole == nil:
		return Decision{}, fmt.Errorf("missing worker_role")
	case raw.WorkerInstructions == nil:
		return Decision{}, fmt.Errorf("missing worker_instructions")
	}

	action := Action(*raw.Action)
	if !action.Valid() {
		return Decision{}, fmt.Errorf("unknown action %q", *raw.Action)
	}

	return Decision{
		Action:             action,
		Reasoning:          *raw.Reasoning,
		WorkerRole:         *raw.WorkerRole,
		WorkerInstructions: *raw.WorkerInstructions,
	}, nil
}
