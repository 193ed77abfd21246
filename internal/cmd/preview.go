package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mcao2/tasks-research/internal/config"
	"github.com/mcao2/tasks-research/internal/sanitize"
	"github.com/mcao2/tasks-research/internal/tasks"
	"github.com/mcao2/tasks-research/internal/ui"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show what the next run would do, without changing anything",
	Long: `Open an interactive view of the next batch of pending tasks with the
route each one would take: simple, research, previously failed or empty.
No model is called and no task is modified.

Keys: j/k move, o opens a URL title, e copies the preview as JSON,
r reloads, q quits.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.TaskListID == "" {
		return fmt.Errorf("configuration error: %w", config.ErrMissingTaskList)
	}

	client, err := newTaskClient(context.Background(), cfg)
	if err != nil {
		return err
	}

	load := func(ctx context.Context) ([]tasks.Task, error) {
		return client.ListTasks(ctx, cfg.TaskListID, tasks.ListOptions{
			ShowCompleted: false,
			MaxResults:    cfg.MaxTasks,
		})
	}

	m := ui.NewModel(cfg.TaskListID, load, sanitize.NewClassifier(cfg.SkipKeywords))
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	return nil
}
