package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mcao2/tasks-research/internal/tasks"
	"github.com/mcao2/tasks-research/internal/workflow"
)

const summaryTitleWidth = 50

// RenderProgress renders the one-line result of a resolved task.
func RenderProgress(p workflow.Progress, styles Styles) string {
	o := p.Outcome
	counter := styles.HelpDesc.Render(fmt.Sprintf("[%d/%d]", p.Current, p.Total))

	var badge string
	switch o.State {
	case workflow.StateCompleted:
		badge = styles.Success.Render("✓ done   ")
	case workflow.StateFailed:
		badge = styles.Error.Render("✗ failed ")
	default:
		badge = styles.Help.Render("· skipped")
	}

	title := o.FinalTitle
	if o.State == workflow.StateSkipped || title == workflow.FailedTitle {
		title = o.OriginalTitle
	}
	line := fmt.Sprintf("%s %s %s", counter, badge, runewidth.FillRight(Truncate(title, summaryTitleWidth), summaryTitleWidth))

	switch {
	case o.Reason != "":
		line += " " + styles.Error.Render(o.Reason)
	case o.Route == workflow.RouteSimple:
		line += " " + styles.Help.Render("simple")
	case o.Decision != nil:
		line += " " + styles.Help.Render(o.Decision.WorkerRole)
	}
	if o.WriteErr != nil {
		line += " " + styles.Warning.Render("(status write failed)")
	}
	return line
}

type summaryRow struct {
	label string
	value int
	style func(...string) string
}

// RenderSummary renders the end-of-run totals.
func RenderSummary(s workflow.Summary, styles Styles) string {
	if s.Fetched == 0 {
		return styles.Help.Render("No active tasks found.")
	}

	rows := []summaryRow{
		{"Fetched", s.Fetched, styles.Normal.Render},
		{"Researched", s.Researched, styles.Highlight.Render},
		{"Simple", s.Simple, styles.Normal.Render},
		{"Completed", s.Completed, styles.Success.Render},
		{"Failed", s.Failed, styles.Error.Render},
		{"Skipped", s.Skipped, styles.Help.Render},
	}
	if s.WriteErrors > 0 {
		rows = append(rows, summaryRow{"Write errors", s.WriteErrors, styles.Warning.Render})
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", runewidth.FillRight(r.label, 13), r.style(fmt.Sprint(r.value)))
	}
	return styles.Border.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderTaskLists renders task lists as an aligned "ID | Name" table.
func RenderTaskLists(lists []tasks.TaskList, styles Styles) string {
	if len(lists) == 0 {
		return styles.Help.Render("No task lists found.")
	}

	idWidth := runewidth.StringWidth("ID")
	for _, l := range lists {
		if w := runewidth.StringWidth(l.ID); w > idWidth {
			idWidth = w
		}
	}

	var b strings.Builder
	b.WriteString(styles.HelpKey.Render(runewidth.FillRight("ID", idWidth)) + " | " + styles.HelpKey.Render("Name") + "\n")
	for _, l := range lists {
		b.WriteString(runewidth.FillRight(l.ID, idWidth) + " | " + l.Title + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
