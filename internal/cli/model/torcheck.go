// Package model contains the bubbletea models behind interactive commands.
package model

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/medusa/internal/cli/styles"
)

// TorLifecycle is the part of the proxy manager the check drives.
type TorLifecycle interface {
	CheckInstalled(ctx context.Context) bool
	SetupProxy(ctx context.Context) bool
	CheckConnection(ctx context.Context) bool
	SocksAddr() string
}

type torStep int

const (
	stepInstalled torStep = iota
	stepStart
	stepVerify
	stepDone
)

var stepLabels = map[torStep]string{
	stepInstalled: "Looking for Tor",
	stepStart:     "Starting proxy",
	stepVerify:    "Verifying exit through Tor",
}

type stepResultMsg struct {
	step torStep
	ok   bool
}

// TorCheckResult summarises a finished check.
type TorCheckResult struct {
	Installed bool
	Started   bool
	Verified  bool
	SocksAddr string
}

// TorCheckModel walks install check, start and verification with a spinner.
// A failed verification does not abort: the proxy is still usable.
type TorCheckModel struct {
	ctx     context.Context
	tor     TorLifecycle
	theme   *styles.Theme
	spinner spinner.Model

	step     torStep
	outcomes []stepResultMsg
	result   TorCheckResult
}

// NewTorCheckModel creates the check model.
func NewTorCheckModel(ctx context.Context, theme *styles.Theme, tor TorLifecycle) TorCheckModel {
	return TorCheckModel{
		ctx:     ctx,
		tor:     tor,
		theme:   theme,
		spinner: styles.NewSpinner(theme),
		step:    stepInstalled,
	}
}

func (m TorCheckModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run(stepInstalled))
}

func (m TorCheckModel) run(step torStep) tea.Cmd {
	return func() tea.Msg {
		var ok bool
		switch step {
		case stepInstalled:
			ok = m.tor.CheckInstalled(m.ctx)
		case stepStart:
			ok = m.tor.SetupProxy(m.ctx)
		case stepVerify:
			ok = m.tor.CheckConnection(m.ctx)
		}
		return stepResultMsg{step: step, ok: ok}
	}
}

func (m TorCheckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.step = stepDone
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepResultMsg:
		if msg.step != m.step {
			return m, nil
		}
		m.outcomes = append(m.outcomes, msg)

		switch msg.step {
		case stepInstalled:
			m.result.Installed = msg.ok
		case stepStart:
			m.result.Started = msg.ok
			if msg.ok {
				m.result.SocksAddr = m.tor.SocksAddr()
			}
		case stepVerify:
			m.result.Verified = msg.ok
		}

		if !msg.ok && msg.step != stepVerify {
			m.step = stepDone
			return m, tea.Quit
		}
		m.step++
		if m.step == stepDone {
			return m, tea.Quit
		}
		return m, m.run(m.step)
	}
	return m, nil
}

func (m TorCheckModel) View() string {
	t := m.theme
	var b strings.Builder

	for _, o := range m.outcomes {
		label := stepLabels[o.step]
		switch {
		case o.ok:
			b.WriteString(t.Success(label))
		case o.step == stepVerify:
			b.WriteString(t.Warn(label + " failed, proxy kept"))
		default:
			b.WriteString(t.Failure(label))
		}
		b.WriteString("\n")
	}
	if m.step != stepDone {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(t.Subtle.Render(stepLabels[m.step] + "..."))
		b.WriteString("\n")
	}
	return b.String()
}

// Result returns what the check established so far.
func (m TorCheckModel) Result() TorCheckResult {
	return m.result
}

// Done reports whether the check has finished.
func (m TorCheckModel) Done() bool {
	return m.step == stepDone
}
