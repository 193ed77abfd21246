package agent

// Action is the router's verdict on a task.
type Action string

const (
	ActionExecute Action = "EXECUTE"
	ActionSkip    Action = "SKIP"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	return a == ActionExecute || a == ActionSkip
}

// Decision is the router's strategy for a single task.
type Decision struct {
	Action             Action `json:"action"`
	Reasoning          string `json:"reasoning"`
	WorkerRole         string `json:"worker_role"`
	WorkerInstructions string `json:"worker_instructions"`
}

// FallbackDecision is used whenever the router output cannot be parsed.
func FallbackDecision() Decision {
	return Decision{
		Action:             ActionExecute,
		Reasoning:          "Router failed to output JSON. Fallback used.",
		WorkerRole:         "General Researcher",
		WorkerInstructions: "Analyze the topic creatively and suggest next steps.",
	}
}
