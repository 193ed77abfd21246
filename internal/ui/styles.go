package ui

import "github.com/charmbracelet/lipgloss"

// Palette colors shared by the preview and the CLI output.
const (
	colorPrimary = "#7D56F4"
	colorSubtle  = "#737373"
	colorText    = "#FAFAFA"
	colorGreen   = "#04B575"
	colorYellow  = "#F2C94C"
	colorRed     = "#FF5F56"
)

// Styles holds all the UI styles
type Styles struct {
	Title     lipgloss.Style
	Normal    lipgloss.Style
	Help      lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
	HelpSep   lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	Header    lipgloss.Style
	Border    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
}

// DefaultStyles returns the default style set
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			PaddingTop(1).
			PaddingBottom(1),

		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorText)),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSubtle)).
			Italic(true),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)),

		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSubtle)),

		HelpSep: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		Highlight: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorGreen)),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(colorPrimary)).
			Foreground(lipgloss.Color("#FFFFFF")),

		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true),

		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorPrimary)).
			Padding(1, 3),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorRed)),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorYellow)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGreen)),
	}
}
