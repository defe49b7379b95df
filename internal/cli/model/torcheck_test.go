package model

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/medusa/internal/cli/styles"
)

type fakeTor struct {
	installed, started, verified bool
	calls                        []string
}

func (f *fakeTor) CheckInstalled(context.Context) bool {
	f.calls = append(f.calls, "installed")
	return f.installed
}

func (f *fakeTor) SetupProxy(context.Context) bool {
	f.calls = append(f.calls, "setup")
	return f.started
}

func (f *fakeTor) CheckConnection(context.Context) bool {
	f.calls = append(f.calls, "verify")
	return f.verified
}

func (f *fakeTor) SocksAddr() string { return "socks5://127.0.0.1:9150" }

// drive runs the step commands synchronously until the model quits.
func drive(t *testing.T, tor *fakeTor) TorCheckModel {
	t.Helper()
	m := NewTorCheckModel(context.Background(), styles.NewTheme(), tor)

	cmd := m.run(stepInstalled)
	for range 4 {
		msg := cmd()
		if _, quit := msg.(tea.QuitMsg); quit {
			break
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(TorCheckModel)
		require.NotNil(t, cmd)
	}
	require.True(t, m.Done())
	return m
}

func TestTorCheckModel(t *testing.T) {
	tests := []struct {
		name      string
		tor       fakeTor
		want      TorCheckResult
		wantCalls []string
	}{
		{
			name:      "all steps pass",
			tor:       fakeTor{installed: true, started: true, verified: true},
			want:      TorCheckResult{Installed: true, Started: true, Verified: true, SocksAddr: "socks5://127.0.0.1:9150"},
			wantCalls: []string{"installed", "setup", "verify"},
		},
		{
			name:      "not installed stops early",
			tor:       fakeTor{},
			want:      TorCheckResult{},
			wantCalls: []string{"installed"},
		},
		{
			name:      "start failure stops before verify",
			tor:       fakeTor{installed: true},
			want:      TorCheckResult{Installed: true},
			wantCalls: []string{"installed", "setup"},
		},
		{
			name:      "verification failure keeps proxy",
			tor:       fakeTor{installed: true, started: true},
			want:      TorCheckResult{Installed: true, Started: true, SocksAddr: "socks5://127.0.0.1:9150"},
			wantCalls: []string{"installed", "setup", "verify"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tor := tt.tor
			m := drive(t, &tor)
			assert.Equal(t, tt.want, m.Result())
			assert.Equal(t, tt.wantCalls, tor.calls)
		})
	}
}

func TestTorCheckModel_IgnoresStaleStep(t *testing.T) {
	m := NewTorCheckModel(context.Background(), styles.NewTheme(), &fakeTor{})
	next, cmd := m.Update(stepResultMsg{step: stepVerify, ok: true})
	assert.Nil(t, cmd)
	assert.False(t, next.(TorCheckModel).Done())
}

func TestTorCheckModel_ViewShowsProgress(t *testing.T) {
	tor := &fakeTor{installed: true, started: true}
	m := drive(t, tor)
	view := m.View()
	assert.Contains(t, view, "Looking for Tor")
	assert.Contains(t, view, "Starting proxy")
	assert.Contains(t, view, "proxy kept")
}
