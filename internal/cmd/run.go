package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mcao2/tasks-research/internal/agent"
	"github.com/mcao2/tasks-research/internal/logging"
	"github.com/mcao2/tasks-research/internal/ui"
	"github.com/mcao2/tasks-research/internal/workflow"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process one batch of pending tasks",
	Long: `Process up to max_tasks pending tasks from the configured list.

Simple chores (titles containing a skip keyword) are completed without any
model call. Every other task is classified by the router model, researched
by the worker model and mailed as a report. Failed tasks are renamed
FAILED_TASK and are never picked up again.`,
	RunE: runRun,
}

var runMaxTasks int

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&runMaxTasks, "max-tasks", "n", 0, "Override max_tasks for this run")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runMaxTasks > 0 {
		cfg.MaxTasks = runMaxTasks
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	log := logger.WithRun(uuid.NewString())
	ctx := context.Background()

	gen, err := newLLMClient(cfg)
	if err != nil {
		return err
	}
	taskClient, sender, err := newGoogleClients(ctx, cfg)
	if err != nil {
		return err
	}

	recipient := cfg.Recipient
	if recipient == "" {
		recipient, err = sender.Profile(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve report recipient: %w", err)
		}
	}

	researcher := agent.New(gen, agent.WithFallbackHook(func(raw string) {
		log.Warn("router output was not valid JSON, using fallback decision", "raw_chars", len(raw))
	}))

	styles := ui.DefaultStyles()
	out := cmd.OutOrStdout()

	runner, err := workflow.NewRunner(taskClient, researcher, sender, workflow.Settings{
		TaskListID:   cfg.TaskListID,
		MaxTasks:     cfg.MaxTasks,
		Delay:        cfg.TaskDelay,
		Recipient:    recipient,
		SkipKeywords: cfg.SkipKeywords,
	},
		workflow.WithLogger(log),
		workflow.WithProgress(func(p workflow.Progress) {
			fmt.Fprintln(out, ui.RenderProgress(p, styles))
		}),
	)
	if err != nil {
		return err
	}

	log.Info("using model", "provider", gen.Provider(), "model", gen.Model())

	summary, err := runner.Run(ctx)
	fmt.Fprintln(out, ui.RenderSummary(summary, styles))
	return err
}
