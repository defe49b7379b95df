package styles

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exampl…", Truncate("example.com", 7))
	assert.Equal(t, "é", Truncate("éé", 1))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ts   time.Time
		want string
	}{
		{time.Time{}, "never"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-72 * time.Hour), "3d ago"},
		{now.AddDate(0, -3, 0), "2026-02-01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeTime(tt.ts, now))
	}
}

func TestHistoryTable(t *testing.T) {
	theme := NewTheme()
	now := time.Now()

	assert.Contains(t, theme.HistoryTable(nil, now), "No history recorded.")

	out := theme.HistoryTable([]HistoryRow{
		{Title: "DuckDuckGo", URL: "https://duckduckgo.com", Visits: 3, LastVisited: now},
		{URL: "https://example.com", Visits: 1, LastVisited: now.Add(-2 * time.Hour)},
	}, now)
	assert.Contains(t, out, "DuckDuckGo")
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "2h ago")
}

func TestKeyValues(t *testing.T) {
	out := NewTheme().KeyValues("Browser", []Pair{
		{Key: "home_page", Value: "https://duckduckgo.com"},
		{Key: "search_engine", Value: ""},
	})
	assert.Contains(t, out, "Browser")
	assert.Contains(t, out, "https://duckduckgo.com")
	assert.Contains(t, out, "(empty)")
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func runConfirm(keys ...string) ConfirmModel {
	var m tea.Model = NewConfirm(NewTheme(), "Clear history?")
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m.(ConfirmModel)
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		wantDone bool
		want     bool
	}{
		{name: "defaults to no", keys: []string{"enter"}, wantDone: true, want: false},
		{name: "y answers yes", keys: []string{"y"}, wantDone: true, want: true},
		{name: "n answers no", keys: []string{"n"}, wantDone: true, want: false},
		{name: "switch then enter", keys: []string{"right", "enter"}, wantDone: true, want: true},
		{name: "escape cancels", keys: []string{"right", "esc"}, wantDone: true, want: false},
		{name: "pending", keys: []string{"right"}, wantDone: false, want: false},
		{name: "answer is final", keys: []string{"n", "y"}, wantDone: true, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := runConfirm(tt.keys...)
			assert.Equal(t, tt.wantDone, m.Done())
			assert.Equal(t, tt.want, m.Result())
		})
	}
}

func TestConfirmModel_QuitsWhenAnswered(t *testing.T) {
	m := NewConfirm(NewTheme(), "Clear history?")
	_, cmd := m.Update(keyMsg("y"))
	assert.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
