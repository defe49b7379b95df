package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/medusa/internal/application/port"
	"github.com/bnema/medusa/internal/domain/proxy"
	"github.com/bnema/medusa/internal/logging"
)

var (
	// ErrProxyNotInstalled means no Tor proxy could be found or launched.
	ErrProxyNotInstalled = errors.New("tor is not available")
	// ErrProxyStartFailed means the proxy could not be brought up.
	ErrProxyStartFailed = errors.New("tor proxy failed to start")
	// ErrProxyUnverified means traffic is routed but the exit check failed.
	ErrProxyUnverified = errors.New("tor connection could not be verified")
	// ErrProxySuperseded means Disable was called while Enable was running.
	ErrProxySuperseded = errors.New("tor enable superseded")
)

// ManageProxyUseCase drives the Tor lifecycle: check, start, route, verify.
// Failures revert the enable_tor setting so the stored config reflects
// what is actually happening. UI side effects go through a dispatcher.
type ManageProxyUseCase struct {
	manager  port.ProxyManager
	engine   port.EngineProxy
	settings port.SettingsStore
	notifier port.Notifier
	ui       port.Dispatcher

	mu          sync.Mutex
	state       proxy.State
	verified    bool
	generation  uint64
	transitions []func(from, to proxy.State)
}

// NewManageProxyUseCase creates a new proxy use case. A nil dispatcher runs
// UI effects inline.
func NewManageProxyUseCase(
	manager port.ProxyManager,
	engine port.EngineProxy,
	settings port.SettingsStore,
	notifier port.Notifier,
	ui port.Dispatcher,
) *ManageProxyUseCase {
	if ui == nil {
		ui = port.Inline
	}
	return &ManageProxyUseCase{
		manager:  manager,
		engine:   engine,
		settings: settings,
		notifier: notifier,
		ui:       ui,
		state:    proxy.Disabled,
	}
}

// State returns the current lifecycle state.
func (uc *ManageProxyUseCase) State() proxy.State {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

// Verified reports whether the last enable passed the exit check.
func (uc *ManageProxyUseCase) Verified() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.verified
}

// OnTransition registers fn to be called, via the dispatcher used for the
// run, on every state change.
func (uc *ManageProxyUseCase) OnTransition(fn func(from, to proxy.State)) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.transitions = append(uc.transitions, fn)
}

// Enable runs the lifecycle on the calling goroutine.
func (uc *ManageProxyUseCase) Enable(ctx context.Context) proxy.Result {
	return uc.enable(ctx, port.Inline)
}

// EnableAsync runs the lifecycle on a worker goroutine. UI effects and done
// are delivered through the use case's dispatcher.
func (uc *ManageProxyUseCase) EnableAsync(ctx context.Context, done func(proxy.Result)) {
	go func() {
		result := uc.enable(ctx, uc.ui)
		if done != nil {
			uc.ui.Dispatch(func() { done(result) })
		}
	}()
}

// Disable tears the proxy down and routes the engine directly. It also
// supersedes any enable still in flight.
func (uc *ManageProxyUseCase) Disable(ctx context.Context) {
	logging.FromContext(ctx).Info().Msg("disabling tor")

	gen := uc.nextGeneration(false)

	uc.manager.DisableProxy(ctx)
	uc.engine.UseDirect()
	uc.transition(ctx, port.Inline, gen, proxy.Disabled)
}

func (uc *ManageProxyUseCase) enable(ctx context.Context, ui port.Dispatcher) proxy.Result {
	log := logging.FromContext(ctx).With().Str("component", "tor").Logger()

	gen := uc.nextGeneration(true)

	if !uc.transition(ctx, ui, gen, proxy.Checking) {
		return uc.superseded(ctx)
	}
	if !uc.manager.CheckInstalled(ctx) {
		log.Warn().Msg("tor not available")
		return uc.fail(ctx, ui, gen, proxy.WarnNotInstalled, ErrProxyNotInstalled)
	}

	if !uc.transition(ctx, ui, gen, proxy.ProxyStarting) {
		return uc.superseded(ctx)
	}
	if !uc.manager.SetupProxy(ctx) {
		log.Warn().Msg("tor proxy setup failed")
		uc.manager.DisableProxy(ctx)
		return uc.fail(ctx, ui, gen, proxy.WarnStartFailed, ErrProxyStartFailed)
	}
	if !uc.current(gen) {
		uc.manager.DisableProxy(ctx)
		return uc.superseded(ctx)
	}

	socks := uc.manager.SocksAddr()
	uc.effect(ui, gen, func() { uc.engine.UseProxy(socks) })

	if !uc.transition(ctx, ui, gen, proxy.Verifying) {
		return uc.superseded(ctx)
	}
	verified := uc.manager.CheckConnection(ctx)

	uc.mu.Lock()
	if uc.generation != gen {
		uc.mu.Unlock()
		return uc.superseded(ctx)
	}
	uc.verified = verified
	uc.mu.Unlock()

	result := proxy.Result{State: proxy.Enabled, Verified: verified}
	if !verified {
		// Traffic stays on the proxy; the user is only warned.
		log.Warn().Str("socks", socks).Msg("tor exit verification failed")
		warning := proxy.WarnUnverified
		result.Warning = &warning
		result.Err = ErrProxyUnverified
		uc.effect(ui, gen, func() { uc.notifier.Warn(warning.Title, warning.Message) })
	}

	if !uc.transition(ctx, ui, gen, proxy.Enabled) {
		return uc.superseded(ctx)
	}
	log.Info().Str("socks", socks).Bool("verified", verified).Msg("tor enabled")
	return result
}

func (uc *ManageProxyUseCase) fail(
	ctx context.Context,
	ui port.Dispatcher,
	gen uint64,
	warning proxy.Warning,
	err error,
) proxy.Result {
	uc.effect(ui, gen, func() {
		uc.engine.UseDirect()
		uc.notifier.Warn(warning.Title, warning.Message)
		if uerr := uc.settings.UpdateSetting(port.SectionSecurity, port.KeyEnableTor, false); uerr != nil {
			logging.FromContext(ctx).Error().Err(uerr).Msg("failed to revert enable_tor")
		}
	})
	if !uc.transition(ctx, ui, gen, proxy.Disabled) {
		return uc.superseded(ctx)
	}
	return proxy.Result{State: proxy.Disabled, Warning: &warning, Err: err}
}

func (uc *ManageProxyUseCase) superseded(ctx context.Context) proxy.Result {
	logging.FromContext(ctx).Debug().Msg("tor enable superseded by disable")
	return proxy.Result{State: proxy.Disabled, Err: ErrProxySuperseded}
}

// nextGeneration starts a new run and returns its generation.
func (uc *ManageProxyUseCase) nextGeneration(resetVerified bool) uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.generation++
	if resetVerified {
		uc.verified = false
	}
	return uc.generation
}

func (uc *ManageProxyUseCase) current(gen uint64) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.generation == gen
}

// effect dispatches fn unless a newer run has started by the time it executes.
func (uc *ManageProxyUseCase) effect(ui port.Dispatcher, gen uint64, fn func()) {
	ui.Dispatch(func() {
		if uc.current(gen) {
			fn()
		}
	})
}

// transition moves to state to on behalf of run gen. It reports false, and
// changes nothing, when a newer run has started.
func (uc *ManageProxyUseCase) transition(ctx context.Context, ui port.Dispatcher, gen uint64, to proxy.State) bool {
	uc.mu.Lock()
	if uc.generation != gen {
		uc.mu.Unlock()
		return false
	}
	from := uc.state
	if from == to {
		uc.mu.Unlock()
		return true
	}
	if !proxy.CanTransition(from, to) {
		logging.FromContext(ctx).Warn().
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("unexpected proxy transition")
	}
	uc.state = to
	observers := append([]func(from, to proxy.State){}, uc.transitions...)
	uc.mu.Unlock()

	if len(observers) == 0 {
		return true
	}
	ui.Dispatch(func() {
		for _, fn := range observers {
			fn(from, to)
		}
	})
	return true
}
