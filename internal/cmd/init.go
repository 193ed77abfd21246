package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcao2/tasks-research/internal/config"
	"github.com/mcao2/tasks-research/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or edit the config file",
	Long: `Walk through the settings interactively and write the config file.

With --example, write a commented example config instead (existing files
are left untouched).`,
	RunE: runInit,
}

var initExample bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initExample, "example", false, "Write a commented example config without prompting")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	out := cmd.OutOrStdout()

	if initExample {
		if err := config.SaveExample(path); err != nil {
			return fmt.Errorf("failed to write example config: %w", err)
		}
		fmt.Fprintf(out, "Example config at %s\n", path)
		return nil
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	if err := ui.NewSetupForm(&cfg).Run(); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintln(out, ui.DefaultStyles().Success.Render("✓ Saved "+path))
	return nil
}
