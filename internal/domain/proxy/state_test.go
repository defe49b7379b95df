package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{Disabled, Checking, true},
		{Checking, ProxyStarting, true},
		{ProxyStarting, Verifying, true},
		{Verifying, Enabled, true},
		{Enabled, Checking, true},
		{Checking, Disabled, true},
		{Enabled, Disabled, true},
		{Disabled, Enabled, false},
		{Checking, Enabled, false},
		{Disabled, Verifying, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "starting", ProxyStarting.String())
	assert.Equal(t, "state(42)", State(42).String())
}

func TestResultRouted(t *testing.T) {
	assert.True(t, Result{State: Enabled}.Routed())
	assert.False(t, Result{State: Disabled, Warning: &WarnNotInstalled}.Routed())
}
