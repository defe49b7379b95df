package usecase

import (
	"context"
	"errors"

	"github.com/bnema/medusa/internal/application/port"
	"github.com/bnema/medusa/internal/domain/proxy"
	"github.com/bnema/medusa/internal/logging"
)

type historyStore interface {
	Close()
	Clear(ctx context.Context) error
}

type proxyLifecycle interface {
	State() proxy.State
	Disable(ctx context.Context)
}

// ShutdownUseCase runs the window close sequence: flush history, purge
// browsing data when clear-on-exit is set, then tear Tor down.
type ShutdownUseCase struct {
	settings port.SettingsStore
	history  historyStore
	proxy    proxyLifecycle
}

// NewShutdownUseCase creates a new shutdown use case. history and proxy may be nil.
func NewShutdownUseCase(settings port.SettingsStore, history historyStore, proxy proxyLifecycle) *ShutdownUseCase {
	return &ShutdownUseCase{settings: settings, history: history, proxy: proxy}
}

// ShutdownOutput reports which steps ran.
type ShutdownOutput struct {
	DataCleared  bool
	ProxyStopped bool
}

// Execute runs the sequence. Every step is attempted; the returned error
// joins whatever failed.
func (uc *ShutdownUseCase) Execute(ctx context.Context, profile port.Profile) (*ShutdownOutput, error) {
	log := logging.FromContext(ctx)
	out := &ShutdownOutput{}
	var errs []error

	if uc.history != nil {
		uc.history.Close()
	}

	if uc.settings.Bool(port.SectionPrivacy, port.KeyClearOnExit) {
		log.Info().Msg("clearing browsing data on exit")
		if uc.history != nil {
			if err := uc.history.Clear(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		if profile != nil {
			if err := profile.ClearBrowsingData(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		out.DataCleared = true
	}

	if uc.proxy != nil &&
		(uc.settings.Bool(port.SectionSecurity, port.KeyEnableTor) || uc.proxy.State() != proxy.Disabled) {
		uc.proxy.Disable(ctx)
		out.ProxyStopped = true
	}

	err := errors.Join(errs...)
	if err != nil {
		log.Warn().Err(err).Msg("shutdown finished with errors")
	}
	return out, err
}
