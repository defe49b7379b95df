package styles

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmKeyMap defines keybindings for the confirm prompt.
type ConfirmKeyMap struct {
	Yes     key.Binding
	No      key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeyMap returns the default keybindings.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		Yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		No:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		Toggle:  key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab"), key.WithHelp("←/→", "switch")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("esc", "cancel")),
	}
}

// ConfirmModel is a yes/no prompt. It defaults to No and quits the program
// once answered.
type ConfirmModel struct {
	Message string

	yes       bool
	confirmed bool
	canceled  bool

	keys  ConfirmKeyMap
	theme *Theme
}

// NewConfirm creates a confirmation prompt.
func NewConfirm(theme *Theme, message string) ConfirmModel {
	return ConfirmModel{Message: message, keys: DefaultConfirmKeyMap(), theme: theme}
}

func (m ConfirmModel) Init() tea.Cmd { return nil }

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Done() {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.yes, m.confirmed = true, true
	case key.Matches(keyMsg, m.keys.No):
		m.yes, m.confirmed = false, true
	case key.Matches(keyMsg, m.keys.Toggle):
		m.yes = !m.yes
	case key.Matches(keyMsg, m.keys.Confirm):
		m.confirmed = true
	case key.Matches(keyMsg, m.keys.Cancel):
		m.canceled = true
	}

	if m.Done() {
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.Done() {
		return ""
	}
	t := m.theme

	yesStyle, noStyle := t.Unselected, t.Selected
	if m.yes {
		yesStyle, noStyle = t.Selected, t.Unselected
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, noStyle.Render("No"), "  ", yesStyle.Render("Yes"))

	return t.Box.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		t.Title.Render(m.Message),
		"",
		buttons,
		"",
		t.Subtle.Render("y/n • ←/→ to switch • enter to confirm • esc to cancel"),
	))
}

// Done reports whether the prompt was answered or dismissed.
func (m ConfirmModel) Done() bool {
	return m.confirmed || m.canceled
}

// Result reports whether the user confirmed Yes.
func (m ConfirmModel) Result() bool {
	return m.confirmed && m.yes
}
