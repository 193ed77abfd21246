package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mcao2/tasks-research/internal/sanitize"
	"github.com/mcao2/tasks-research/internal/tasks"
)

type State int

const (
	StateLoading State = iota
	StateReviewing
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateReviewing:
		return "Reviewing"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Loader fetches the pending tasks shown by the preview.
type Loader func(ctx context.Context) ([]tasks.Task, error)

// ItemsLoadedMsg carries the classified tasks.
type ItemsLoadedMsg struct {
	Items []Item
}

// ErrorMsg reports a failed load.
type ErrorMsg struct {
	Error error
}

// ExportedMsg reports the result of an export.
type ExportedMsg struct {
	Count int
	Err   error
}

// Model is the read-only preview of the next run.
type Model struct {
	state  State
	width  int
	height int
	styles Styles
	keys   KeyMap
	help   help.Model

	listName   string
	load       Loader
	classifier sanitize.Classifier
	clipboard  func(string) error

	listView      ListView
	spinner       spinner.Model
	statusMessage string
	showHelp      bool
}

// NewModel creates a preview of the list named listName.
func NewModel(listName string, load Loader, classifier sanitize.Classifier) *Model {
	styles := DefaultStyles()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary))

	return &Model{
		state:      StateLoading,
		styles:     styles,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		listName:   listName,
		load:       load,
		classifier: classifier,
		clipboard:  writeClipboard,
		listView:   NewListView(80, 24, styles),
		spinner:    s,

		statusMessage: "Loading pending tasks...",
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startLoading())
}

func (m *Model) startLoading() tea.Cmd {
	m.state = StateLoading
	m.statusMessage = "Loading pending tasks..."

	load, classifier := m.load, m.classifier
	return func() tea.Msg {
		if load == nil {
			return ErrorMsg{Error: fmt.Errorf("no task source configured")}
		}
		list, err := load(context.Background())
		if err != nil {
			return ErrorMsg{Error: err}
		}
		return ItemsLoadedMsg{Items: BuildItems(list, classifier)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.listView.SetWidthHeight(msg.Width, msg.Height)
		m.help.Width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ItemsLoadedMsg:
		m.listView.SetItems(msg.Items)
		m.statusMessage = loadedMessage(msg.Items)
		m.state = StateReviewing

	case ErrorMsg:
		m.statusMessage = msg.Error.Error()
		m.state = StateError

	case ExportedMsg:
		if msg.Err != nil {
			m.statusMessage = fmt.Sprintf("Export failed: %v", msg.Err)
		} else {
			m.statusMessage = fmt.Sprintf("Copied %d tasks to the clipboard", msg.Count)
		}
	}

	return m, nil
}

func loadedMessage(items []Item) string {
	counts := map[Route]int{}
	for _, it := range items {
		counts[it.Route]++
	}
	return fmt.Sprintf("%d pending: %d research, %d simple, %d failed, %d empty",
		len(items), counts[RouteResearch], counts[RouteSimple], counts[RouteFailed], counts[RouteNoTitle])
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keyMatches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.state {
	case StateError:
		if keyMatches(msg, m.keys.Reload) {
			return m, tea.Batch(m.spinner.Tick, m.startLoading())
		}
		return m, nil
	case StateLoading:
		return m, nil
	}

	switch {
	case keyMatches(msg, m.keys.Up):
		m.listView.MoveCursor(-1)
	case keyMatches(msg, m.keys.Down):
		m.listView.MoveCursor(1)
	case keyMatches(msg, m.keys.Top):
		m.listView.SetCursor(0)
	case keyMatches(msg, m.keys.Bottom):
		m.listView.SetCursor(len(m.listView.Items()) - 1)
	case keyMatches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case keyMatches(msg, m.keys.Reload):
		return m, tea.Batch(m.spinner.Tick, m.startLoading())
	case keyMatches(msg, m.keys.Export):
		return m, m.exportCmd()
	case keyMatches(msg, m.keys.Open):
		if item := m.listView.GetItem(m.listView.Cursor()); item != nil && sanitize.IsURL(item.Title) {
			if err := openURL(item.Title); err != nil {
				m.statusMessage = fmt.Sprintf("Failed to open URL: %v", err)
			}
		}
	}
	return m, nil
}

func (m *Model) exportCmd() tea.Cmd {
	items := m.listView.Items()
	write := m.clipboard
	return func() tea.Msg {
		err := ExportItems(items, write)
		return ExportedMsg{Count: len(items), Err: err}
	}
}

func (m *Model) View() string {
	switch m.state {
	case StateLoading:
		return m.center(m.boxed("Loading", fmt.Sprintf("%s %s", m.spinner.View(), m.statusMessage)))
	case StateError:
		return m.center(m.boxed(m.styles.Error.Render("✗ Error"), m.statusMessage) +
			"\n\n" + m.styles.Help.Render("r: retry · q: quit"))
	}

	title := m.styles.Title.Render("Next run: " + m.listName)
	status := m.styles.HelpDesc.Render(m.statusMessage)
	if len(m.listView.Items()) > 0 {
		status = m.styles.HelpDesc.Render(fmt.Sprintf("%d/%d · ", m.listView.Cursor()+1, len(m.listView.Items()))) + status
	}

	return strings.Join([]string{
		title,
		m.listView.View(),
		"",
		m.listView.DetailView(),
		status,
		m.help.View(m.keys),
	}, "\n")
}

func (m *Model) boxed(title, body string) string {
	return m.styles.Border.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render(title),
		m.styles.Normal.Render(body),
	))
}

func (m *Model) center(content string) string {
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func openURL(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		cmd = "open"
		args = []string{url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}
	return exec.Command(cmd, args...).Start()
}
