// Package styles provides the lipgloss styles and small bubbletea
// components shared by the CLI commands.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the CLI colors and the styles derived from them.
type Theme struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Border  lipgloss.Color
	Surface lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	Title        lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	Key          lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Box        lipgloss.Style
}

// NewTheme returns the dark CLI theme, using the same palette as the
// built-in GTK stylesheet.
func NewTheme() *Theme {
	t := &Theme{
		Text:    lipgloss.Color("#e6e6f0"),
		Muted:   lipgloss.Color("#a9abc0"),
		Accent:  lipgloss.Color("#7c6cf0"),
		Border:  lipgloss.Color("#3a3d55"),
		Surface: lipgloss.Color("#262838"),
		Error:   lipgloss.Color("#e06c75"),
		Warning: lipgloss.Color("#e5c07b"),
	}
	t.buildStyles()
	return t
}

func (t *Theme) buildStyles() {
	t.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	t.Normal = lipgloss.NewStyle().Foreground(t.Text)
	t.Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	t.Highlight = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	t.Key = lipgloss.NewStyle().Foreground(t.Accent)

	t.ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	t.WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	t.SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7fd18b"))

	t.Selected = lipgloss.NewStyle().
		Foreground(t.Surface).
		Background(t.Accent).
		Padding(0, 2).
		Bold(true)
	t.Unselected = lipgloss.NewStyle().
		Foreground(t.Muted).
		Background(t.Surface).
		Padding(0, 2)

	t.Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)
}
