package ui

import (
	"context"

	"github.com/bnema/medusa/internal/infrastructure/config"
	"github.com/bnema/medusa/internal/ui/dialog"
)

// settingsSync decides when a configuration change re-applies settings to
// the engine. A dialog accept always re-applies, so pressing OK retries a
// Tor start. Changes from the file watcher or UpdateSetting only re-apply
// when the dialog-editable state moved.
type settingsSync struct {
	applied dialog.Form
	apply   func(ctx context.Context)
}

func newSettingsSync(cfg *config.Config, apply func(ctx context.Context)) *settingsSync {
	return &settingsSync{applied: dialog.FromConfig(cfg), apply: apply}
}

// Accepted records cfg as applied and re-applies unconditionally.
func (s *settingsSync) Accepted(ctx context.Context, cfg *config.Config) {
	s.applied = dialog.FromConfig(cfg)
	s.apply(ctx)
}

// Changed re-applies when cfg differs from what was last applied.
func (s *settingsSync) Changed(ctx context.Context, cfg *config.Config) bool {
	next := dialog.FromConfig(cfg)
	if next == s.applied {
		return false
	}
	s.applied = next
	s.apply(ctx)
	return true
}
