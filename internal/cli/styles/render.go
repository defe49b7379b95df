package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Icons used in CLI output.
const (
	IconOK   = "✓"
	IconFail = "✗"
	IconWarn = "!"
)

// NewSpinner returns a themed dot spinner.
func NewSpinner(theme *Theme) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	return s
}

// Success renders a one-line success message.
func (t *Theme) Success(msg string) string {
	return t.SuccessStyle.Render(IconOK) + " " + t.Normal.Render(msg)
}

// Failure renders a one-line failure message.
func (t *Theme) Failure(msg string) string {
	return t.ErrorStyle.Render(IconFail) + " " + t.Normal.Render(msg)
}

// Warn renders a one-line warning.
func (t *Theme) Warn(msg string) string {
	return t.WarningStyle.Render(IconWarn) + " " + t.Normal.Render(msg)
}

// Pair is one row of a key/value listing.
type Pair struct {
	Key   string
	Value string
}

// KeyValues renders pairs with aligned keys under an optional title.
func (t *Theme) KeyValues(title string, pairs []Pair) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p.Key))
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(t.Title.Render(title))
		b.WriteString("\n")
	}
	keyStyle := t.Key.Width(width + 2)
	for _, p := range pairs {
		value := p.Value
		if value == "" {
			value = t.Subtle.Render("(empty)")
		}
		b.WriteString(keyStyle.Render(p.Key))
		b.WriteString(t.Normal.Render(value))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// HistoryRow is one visited link in `medusa history list`.
type HistoryRow struct {
	Title       string
	URL         string
	Visits      int64
	LastVisited time.Time
}

const (
	historyTitleWidth = 36
	historyURLWidth   = 48
)

// HistoryTable renders rows as fixed-width columns, newest first as given.
func (t *Theme) HistoryTable(rows []HistoryRow, now time.Time) string {
	if len(rows) == 0 {
		return t.Subtle.Render("No history recorded.")
	}

	header := fmt.Sprintf("%-*s  %-*s  %6s  %s", historyTitleWidth, "Title", historyURLWidth, "URL", "Visits", "Last visit")

	var b strings.Builder
	b.WriteString(t.Highlight.Render(header))
	b.WriteString("\n")
	for _, r := range rows {
		title := r.Title
		if title == "" {
			title = "-"
		}
		line := fmt.Sprintf("%-*s  %-*s  %6d  %s",
			historyTitleWidth, Truncate(title, historyTitleWidth),
			historyURLWidth, Truncate(r.URL, historyURLWidth),
			r.Visits, RelativeTime(r.LastVisited, now))
		b.WriteString(t.Normal.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Truncate shortens s to at most width runes, ending with an ellipsis.
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

// RelativeTime formats ts relative to now ("just now", "5m ago", "3d ago").
func RelativeTime(ts, now time.Time) string {
	d := now.Sub(ts)
	switch {
	case ts.IsZero():
		return "never"
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return ts.Format("2006-01-02")
	}
}
