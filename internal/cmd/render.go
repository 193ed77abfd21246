package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcao2/tasks-research/internal/agent"
	"github.com/mcao2/tasks-research/internal/report"
)

var renderCmd = &cobra.Command{
	Use:   "render <file.md>",
	Short: "Render a Markdown file as a report email",
	Long: `Render a Markdown file through the report builder and print the result.
Use "-" to read from stdin. Prints the HTML part unless --text is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var (
	renderTitle     string
	renderRole      string
	renderReasoning string
	renderText      bool
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderTitle, "title", "t", "Preview", "Task title the report is for")
	renderCmd.Flags().StringVar(&renderRole, "role", agent.FallbackDecision().WorkerRole, "Worker role shown in the report")
	renderCmd.Flags().StringVar(&renderReasoning, "reasoning", "Rendered offline.", "Strategy line shown in the report")
	renderCmd.Flags().BoolVar(&renderText, "text", false, "Print the plain-text part instead of HTML")
}

func runRender(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read markdown: %w", err)
	}

	decision := agent.Decision{
		Action:     agent.ActionExecute,
		Reasoning:  renderReasoning,
		WorkerRole: renderRole,
	}
	msg, err := report.Build("", renderTitle, string(data), decision)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Subject: %s\n\n", msg.Subject)
	if renderText {
		fmt.Fprintln(out, msg.Text)
	} else {
		fmt.Fprintln(out, msg.HTML)
	}
	return nil
}
