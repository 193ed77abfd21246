package workflow

import (
	"fmt"

	"github.com/mcao2/tasks-research/internal/agent"
)

// State is the terminal state of one task in a run.
type State string

const (
	StateCompleted State = "completed"
	StateFailed    State = "failed"
	StateSkipped   State = "skipped" // carried the failure sentinel; never re-entered
)

// Route records which path a task took through the pipeline.
type Route string

const (
	RouteNone     Route = ""
	RouteSimple   Route = "simple"
	RouteResearch Route = "research"
)

// Outcome is the record of one fetched task.
type Outcome struct {
	TaskID        string
	OriginalTitle string
	WorkingTitle  string // preprocessed title
	Route         Route
	State         State

	// Decision is set once the router ran.
	Decision *agent.Decision
	// Chars is the length of the worker output.
	Chars int
	// ReportSent is true once the report email went out.
	ReportSent bool
	// MessageID is the id the mail service gave the report.
	MessageID string

	// FinalTitle is the title written back to the task store.
	FinalTitle string
	// Reason explains a failure.
	Reason string
	// WriteErr is set when the status write itself failed.
	WriteErr error
}

// Summary tracks the result of a run.
type Summary struct {
	Fetched     int
	Skipped     int
	Simple      int
	Researched  int
	Completed   int
	Failed      int
	WriteErrors int
	Outcomes    []Outcome
}

func (s *Summary) add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)

	switch o.State {
	case StateSkipped:
		s.Skipped++
		return
	case StateCompleted:
		s.Completed++
	case StateFailed:
		s.Failed++
	}
	if o.Route == RouteSimple {
		s.Simple++
	}
	if o.ReportSent {
		s.Researched++
	}
	if o.WriteErr != nil {
		s.WriteErrors++
	}
}

// String renders a one-line summary for logs.
func (s Summary) String() string {
	return fmt.Sprintf("fetched=%d skipped=%d simple=%d researched=%d completed=%d failed=%d write_errors=%d",
		s.Fetched, s.Skipped, s.Simple, s.Researched, s.Completed, s.Failed, s.WriteErrors)
}
