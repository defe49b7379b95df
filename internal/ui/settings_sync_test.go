package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/medusa/internal/infrastructure/config"
)

func TestSettingsSync_AcceptAlwaysReapplies(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Security.EnableTor = true

	applies := 0
	sync := newSettingsSync(cfg, func(context.Context) { applies++ })

	sync.Accepted(context.Background(), cfg)
	sync.Accepted(context.Background(), cfg)
	assert.Equal(t, 2, applies, "unchanged accept still re-applies")

	// The save notification that follows an accept is a no-op.
	assert.False(t, sync.Changed(context.Background(), cfg))
	assert.Equal(t, 2, applies)
}

func TestSettingsSync_ChangedOnlyOnDifference(t *testing.T) {
	cfg := config.DefaultConfig()
	applies := 0
	sync := newSettingsSync(cfg, func(context.Context) { applies++ })

	assert.False(t, sync.Changed(context.Background(), cfg))
	assert.Zero(t, applies)

	edited := config.DefaultConfig()
	edited.Privacy.JavaScriptEnabled = !cfg.Privacy.JavaScriptEnabled
	assert.True(t, sync.Changed(context.Background(), edited))
	assert.Equal(t, 1, applies)

	assert.False(t, sync.Changed(context.Background(), edited))
	assert.Equal(t, 1, applies)
}
