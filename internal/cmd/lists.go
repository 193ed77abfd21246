package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcao2/tasks-research/internal/ui"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Print your task lists and their IDs",
	Long: `Print every Google Tasks list of the account as "ID | Name".
Copy the ID of the list to process into task_list_id.`,
	RunE: runLists,
}

func init() {
	rootCmd.AddCommand(listsCmd)
}

func runLists(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newTaskClient(ctx, cfg)
	if err != nil {
		return err
	}

	lists, err := client.ListTaskLists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list task lists: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTaskLists(lists, ui.DefaultStyles()))
	return nil
}
