package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mcao2/tasks-research/internal/report"
	"github.com/mcao2/tasks-research/internal/sanitize"
	"github.com/mcao2/tasks-research/internal/workflow"
)

// column is a fixed-width table column.
type column struct {
	Title string
	Width int
}

// ListView renders the task table with its own scrolling window.
type ListView struct {
	items       []Item
	cursor      int
	width       int
	height      int
	visibleRows int
	columns     []column
	styles      Styles
}

func listColumns(width int) []column {
	// Each cell has Padding(0,1), 2 chars per column, plus a safety margin.
	fixedWidth := 12 + 24
	padding := 3*2 + 2
	titleWidth := width - fixedWidth - padding
	if titleWidth < 20 {
		titleWidth = 20
	}
	return []column{
		{Title: "Route", Width: 12},
		{Title: "ID", Width: 24},
		{Title: "Working title", Width: titleWidth},
	}
}

// NewListView creates a ListView for a terminal of the given size.
func NewListView(width, height int, styles Styles) ListView {
	lv := ListView{styles: styles}
	lv.SetWidthHeight(width, height)
	return lv
}

func (lv *ListView) SetItems(items []Item) {
	lv.items = items
	if lv.cursor >= len(items) {
		lv.cursor = 0
	}
}

func (lv ListView) Items() []Item {
	return lv.items
}

func (lv ListView) Cursor() int {
	return lv.cursor
}

func (lv *ListView) SetCursor(pos int) {
	if pos >= 0 && pos < len(lv.items) {
		lv.cursor = pos
	}
}

func (lv *ListView) MoveCursor(delta int) {
	lv.SetCursor(lv.cursor + delta)
}

func (lv ListView) GetItem(index int) *Item {
	if index >= 0 && index < len(lv.items) {
		return &lv.items[index]
	}
	return nil
}

func (lv *ListView) SetWidthHeight(width, height int) {
	lv.width = width
	lv.height = height
	lv.columns = listColumns(width)

	// Reserve space for: title(3) + detail pane(4) + status(1) + footer(2) + table header(2)
	visibleRows := height - 12
	if visibleRows < 3 {
		visibleRows = 3
	}
	lv.visibleRows = visibleRows
}

// Truncate shortens s to maxLen display cells.
func Truncate(s string, maxLen int) string {
	if runewidth.StringWidth(s) > maxLen {
		return runewidth.Truncate(s, maxLen, "…")
	}
	return s
}

func (lv ListView) renderCell(value string, width int) string {
	cell := runewidth.FillRight(runewidth.Truncate(value, width, "…"), width)
	return lipgloss.NewStyle().Padding(0, 1).Render(cell)
}

func (lv ListView) row(item Item) []string {
	title := item.WorkingTitle
	if title == "" {
		title = item.Title
	}
	return []string{routeText(item.Route), item.ID, title}
}

// View renders the header and the visible window of rows.
func (lv ListView) View() string {
	headerCells := make([]string, 0, len(lv.columns))
	for _, col := range lv.columns {
		headerCells = append(headerCells, lv.styles.Header.Render(lv.renderCell(col.Title, col.Width)))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)

	start := 0
	if lv.cursor >= lv.visibleRows {
		start = lv.cursor - lv.visibleRows + 1
	}
	end := start + lv.visibleRows
	if end > len(lv.items) {
		end = len(lv.items)
	}

	rows := make([]string, 0, lv.visibleRows)
	for i := start; i < end; i++ {
		values := lv.row(lv.items[i])
		cells := make([]string, len(values))
		for ci, v := range values {
			cells[ci] = lv.renderCell(v, lv.columns[ci].Width)
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		if i == lv.cursor {
			line = lv.styles.Selected.Render(line)
		}
		rows = append(rows, line)
	}
	for len(rows) < lv.visibleRows {
		rows = append(rows, "")
	}

	return header + "\n" + strings.Join(rows, "\n")
}

// detailPaneHeight is the fixed number of lines the detail pane always occupies.
const detailPaneHeight = 4

// DetailView renders the full title of the current item, padded to a fixed height.
func (lv ListView) DetailView() string {
	item := lv.GetItem(lv.cursor)
	if item == nil {
		return strings.Repeat("\n", detailPaneHeight-1)
	}

	maxWidth := lv.width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	lines := []string{lv.styles.Highlight.Render(Truncate(item.Title, maxWidth))}

	switch item.Route {
	case RouteSimple:
		lines = append(lines, lv.styles.Normal.Render(
			fmt.Sprintf("Completed without research as %q", workflow.CompletionTitle(item.WorkingTitle))))
	case RouteResearch:
		lines = append(lines, lv.styles.Normal.Render(
			fmt.Sprintf("Routed to the model, report subject %q", report.Subject(item.Title))))
	case RouteFailed:
		lines = append(lines, lv.styles.Warning.Render("Failed on an earlier run; never processed again"))
	case RouteNoTitle:
		lines = append(lines, lv.styles.Error.Render("Will be marked failed: task has no title"))
	}
	if sanitize.IsURL(item.Title) {
		lines = append(lines, lv.styles.Help.Render("o: open in browser"))
	}

	for len(lines) < detailPaneHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
