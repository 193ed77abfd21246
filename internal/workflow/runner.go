// Package workflow runs the research pipeline over one batch of pending
// tasks: fetch, preprocess, classify, research, report and write back.
// Tasks are processed one at a time with a fixed pause between them.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mcao2/tasks-research/internal/agent"
	"github.com/mcao2/tasks-research/internal/logging"
	"github.com/mcao2/tasks-research/internal/mail"
	"github.com/mcao2/tasks-research/internal/report"
	"github.com/mcao2/tasks-research/internal/sanitize"
	"github.com/mcao2/tasks-research/internal/tasks"
)

// FailedTitle replaces the title of a task that failed. Tasks whose title
// starts with it are never processed again.
const FailedTitle = "FAILED_TASK"

// Failure reasons recorded on outcomes.
const (
	ReasonNoContent = "AI returned no content."
	ReasonNoTitle   = "task has no title"
)

// TaskStore reads pending tasks and writes their final state.
type TaskStore interface {
	ListTasks(ctx context.Context, listID string, opts tasks.ListOptions) ([]tasks.Task, error)
	UpdateTask(ctx context.Context, listID string, t tasks.Task) error
}

// Researcher runs the router and worker stages.
type Researcher interface {
	Route(ctx context.Context, title string) (agent.Decision, error)
	Work(ctx context.Context, title string, d agent.Decision) (string, error)
}

// Mailer sends a report email and returns its message id.
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) (string, error)
}

// Settings are the run parameters taken from the configuration.
type Settings struct {
	TaskListID   string
	MaxTasks     int
	Delay        time.Duration
	Recipient    string
	SkipKeywords []string
}

// Runner processes a batch of tasks.
type Runner struct {
	store      TaskStore
	researcher Researcher
	mailer     Mailer
	settings   Settings
	classifier sanitize.Classifier

	logger     *logging.Logger
	sleep      func(ctx context.Context, d time.Duration) error
	onProgress func(Progress)
}

// Progress is reported after each fetched task is resolved.
type Progress struct {
	Current int
	Total   int
	Outcome Outcome
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the run logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSleep replaces the pause between tasks. Used by tests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(r *Runner) {
		r.sleep = fn
	}
}

// WithProgress registers a callback invoked once per fetched task.
func WithProgress(fn func(Progress)) Option {
	return func(r *Runner) {
		r.onProgress = fn
	}
}

// NewRunner wires a Runner.
func NewRunner(store TaskStore, researcher Researcher, mailer Mailer, settings Settings, opts ...Option) (*Runner, error) {
	if store == nil || researcher == nil || mailer == nil {
		return nil, fmt.Errorf("task store, researcher and mailer are required")
	}
	if settings.TaskListID == "" {
		return nil, fmt.Errorf("task list ID is required")
	}
	if settings.MaxTasks <= 0 {
		return nil, fmt.Errorf("max tasks must be positive, got %d", settings.MaxTasks)
	}

	r := &Runner{
		store:      store,
		researcher: researcher,
		mailer:     mailer,
		settings:   settings,
		classifier: sanitize.NewClassifier(settings.SkipKeywords),
		logger:     logging.NopLogger(),
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run fetches up to MaxTasks pending tasks and resolves each one. The
// returned error is non-nil only when the batch could not be fetched or ctx
// was cancelled; per-task failures are recorded in the Summary.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	r.logger.Info("starting research run", "task_list", r.settings.TaskListID, "max_tasks", r.settings.MaxTasks)

	items, err := r.store.ListTasks(ctx, r.settings.TaskListID, tasks.ListOptions{
		ShowCompleted: false,
		MaxResults:    r.settings.MaxTasks,
	})
	if err != nil {
		r.logger.Error("critical system error", "error", err)
		return summary, fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(items) > r.settings.MaxTasks {
		items = items[:r.settings.MaxTasks]
	}
	summary.Fetched = len(items)

	if len(items) == 0 {
		r.logger.Info("no active tasks found")
		return summary, nil
	}

	entered := 0
	for i, task := range items {
		var outcome Outcome
		if strings.HasPrefix(task.Title, FailedTitle) {
			r.logger.Debug("skipping failed task", "task_id", task.ID)
			outcome = Outcome{TaskID: task.ID, OriginalTitle: task.Title, State: StateSkipped}
		} else {
			if entered > 0 {
				if err := r.sleep(ctx, r.settings.Delay); err != nil {
					return summary, err
				}
			}
			entered++
			outcome = r.process(ctx, task)
		}

		summary.add(outcome)
		if r.onProgress != nil {
			r.onProgress(Progress{Current: i + 1, Total: len(items), Outcome: outcome})
		}
	}

	r.logger.Info("research run finished", "summary", summary.String())
	return summary, nil
}

// process resolves one task. It works on its own copy of t.
func (r *Runner) process(ctx context.Context, t tasks.Task) Outcome {
	originalTitle := t.Title
	out := Outcome{TaskID: t.ID, OriginalTitle: originalTitle}
	log := r.logger.With("task_id", t.ID)

	if strings.TrimSpace(originalTitle) == "" {
		r.fail(ctx, log, t, &out, ReasonNoTitle)
		return out
	}

	working := sanitize.PreprocessTitle(originalTitle)
	out.WorkingTitle = working
	log = log.With("title", working)

	if r.classifier.IsSimple(working) {
		log.Info("skipping simple task")
		out.Route = RouteSimple
		r.complete(ctx, log, t, &out, working)
		return out
	}
	out.Route = RouteResearch

	raw, err := r.research(ctx, log, originalTitle, &out)
	if err != nil {
		r.fail(ctx, log, t, &out, "Processing error: "+err.Error())
		return out
	}
	if raw == "" {
		r.fail(ctx, log, t, &out, ReasonNoContent)
		return out
	}

	// The generic fallback title gives way to the original so the completed
	// task stays recognizable.
	titleToUse := working
	if working == sanitize.LongSummaryTitle {
		titleToUse = originalTitle
	}
	r.complete(ctx, log, t, &out, titleToUse)
	return out
}

// research routes the task, runs the worker and mails the report. An empty
// result with a nil error means the worker produced nothing.
func (r *Runner) research(ctx context.Context, log *logging.Logger, title string, out *Outcome) (string, error) {
	decision, err := r.researcher.Route(ctx, title)
	if err != nil {
		return "", err
	}
	out.Decision = &decision
	log.Info("routed task", "strategy", decision.Action, "role", decision.WorkerRole)

	raw, err := r.researcher.Work(ctx, title, decision)
	if err != nil {
		return "", err
	}
	out.Chars = len(raw)
	if raw == "" {
		log.Warn("worker returned no content")
		return "", nil
	}
	log.Info("worker output received", "chars", len(raw))

	msg, err := report.Build(r.settings.Recipient, title, raw, decision)
	if err != nil {
		return "", err
	}
	id, err := r.mailer.Send(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("send report: %w", err)
	}
	out.ReportSent = true
	out.MessageID = id
	log.Info("report sent", "subject", msg.Subject, "message_id", id)

	return raw, nil
}

// CompletionTitle is the title written to a completed task: cut to
// sanitize.TaskTitleLimit runes and reduced to ASCII. A title that cleans
// to nothing becomes sanitize.LongSummaryTitle.
func CompletionTitle(title string) string {
	final := sanitize.Clean(sanitize.Truncate(title, sanitize.TaskTitleLimit))
	if final == "" {
		return sanitize.LongSummaryTitle
	}
	return final
}

func (r *Runner) complete(ctx context.Context, log *logging.Logger, t tasks.Task, out *Outcome, title string) {
	final := CompletionTitle(title)

	out.State = StateCompleted
	out.FinalTitle = final

	t.Title = final
	t.Status = tasks.StatusCompleted
	if err := r.store.UpdateTask(ctx, r.settings.TaskListID, t); err != nil {
		out.WriteErr = err
		log.Warn("failed to complete task", "error", err)
		return
	}
	log.Info("task completed", "final_title", final)
}

func (r *Runner) fail(ctx context.Context, log *logging.Logger, t tasks.Task, out *Outcome, reason string) {
	out.State = StateFailed
	out.FinalTitle = FailedTitle
	out.Reason = reason

	t.Title = FailedTitle
	t.Status = tasks.StatusNeedsAction
	if err := r.store.UpdateTask(ctx, r.settings.TaskListID, t); err != nil {
		out.WriteErr = err
		log.Error("double fail: could not mark task as failed", "reason", reason, "error", err)
		return
	}
	log.Error("task failed", "reason", reason)
}
