package ui

import "github.com/charmbracelet/lipgloss"

var (
	primary     = lipgloss.Color("#8BC34A")
	foreground  = lipgloss.Color("#f2f2f2")
	muted       = lipgloss.Color("#6b7a90")
	border      = lipgloss.Color("#2a3850")
	destructive = lipgloss.Color("#e53935")
	info        = lipgloss.Color("#2196F3")
)

// Styles holds the styled components used by the views.
type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Summary  lipgloss.Style
	Error    lipgloss.Style
	Notice   lipgloss.Style
	Label    lipgloss.Style
	Panel    lipgloss.Style
	Footer   lipgloss.Style
	Spinner  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color("#101F38")).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Selected: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Summary: lipgloss.NewStyle().
			Foreground(foreground).
			Italic(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(info).
			PaddingLeft(1),
		Error: lipgloss.NewStyle().
			Foreground(destructive).
			Bold(true),
		Notice: lipgloss.NewStyle().
			Foreground(info),
		Label: lipgloss.NewStyle().
			Foreground(muted).
			Bold(true),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),
		Spinner: lipgloss.NewStyle().
			Foreground(primary),
	}
}
