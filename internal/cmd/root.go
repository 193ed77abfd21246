// Package cmd wires the tasks-research command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mcao2/tasks-research/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tasks-research",
	Short: "Research pending Google Tasks and email the findings",
	Long: `tasks-research reads a batch of pending Google Tasks, completes simple
chores directly, and sends every other task through a router and a worker
model. Each report is emailed through Gmail and the task is marked completed,
or renamed FAILED_TASK so later runs leave it alone.

Run it from cron or a systemd timer:
  tasks-research run`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var cfgFile string

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.config/tasks-research/config.yaml)")
}

// loadConfig reads the config file named by --config, or the default one,
// with environment overrides applied.
func loadConfig() (config.Config, error) {
	return config.LoadFile(cfgFile)
}

// configPath is where init writes.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.Path()
}
