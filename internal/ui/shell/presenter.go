// Package shell holds the toolkit-free logic of the browser window: what
// the toolbar buttons do, what the status line says and how engine events
// feed history and the proxy lifecycle.
package shell

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/medusa/internal/application/port"
	"github.com/bnema/medusa/internal/application/usecase"
	"github.com/bnema/medusa/internal/domain/navigation"
	"github.com/bnema/medusa/internal/domain/proxy"
	"github.com/bnema/medusa/internal/logging"
)

// Status line texts.
const (
	StatusLoading = "Loading..."
	StatusReady   = "Ready"
	StatusFailed  = "Failed to load page"
	StatusTor     = "Connecting to Tor..."
)

// View is the window the presenter drives.
type View interface {
	SetAddress(text string)
	SetStatus(text string)
	SetNavigationState(canGoBack, canGoForward bool)
	SetProxyState(state proxy.State)
	ShowSettings()
}

type privacyApplier interface {
	Execute(ctx context.Context, profile port.Profile) (*usecase.ApplyPrivacyOutput, error)
}

type proxyController interface {
	State() proxy.State
	EnableAsync(ctx context.Context, done func(proxy.Result))
	Disable(ctx context.Context)
	OnTransition(fn func(from, to proxy.State))
}

type historyRecorder interface {
	RecordVisit(ctx context.Context, rawURL string)
	UpdateTitle(ctx context.Context, rawURL, title string) error
}

type shutdowner interface {
	Execute(ctx context.Context, profile port.Profile) (*usecase.ShutdownOutput, error)
}

// BrowsingState is what the window currently shows.
type BrowsingState struct {
	URL          string
	CanGoBack    bool
	CanGoForward bool
	Loading      bool
	Status       string
	Proxy        proxy.State
}

// Config wires a Presenter.
type Config struct {
	View     View
	Browser  port.Browser
	Profile  port.Profile
	Settings port.SettingsStore
	Navigate *usecase.NavigateUseCase
	Privacy  privacyApplier
	Proxy    proxyController
	History  historyRecorder
	Shutdown shutdowner
}

// Presenter implements the window behaviour. Handlers are called on the UI
// thread.
type Presenter struct {
	cfg Config

	mu     sync.Mutex
	state  BrowsingState
	closed bool
}

// New creates a Presenter and subscribes it to proxy transitions.
func New(cfg Config) (*Presenter, error) {
	switch {
	case cfg.View == nil:
		return nil, errors.New("shell: view is required")
	case cfg.Browser == nil:
		return nil, errors.New("shell: browser is required")
	case cfg.Profile == nil:
		return nil, errors.New("shell: profile is required")
	case cfg.Settings == nil:
		return nil, errors.New("shell: settings are required")
	case cfg.Navigate == nil || cfg.Privacy == nil || cfg.Proxy == nil:
		return nil, errors.New("shell: use cases are required")
	}

	p := &Presenter{cfg: cfg}
	cfg.Proxy.OnTransition(func(_, to proxy.State) {
		p.mu.Lock()
		p.state.Proxy = to
		p.mu.Unlock()
		cfg.View.SetProxyState(to)
	})
	return p, nil
}

// State returns a copy of the current browsing state.
func (p *Presenter) State() BrowsingState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start applies the privacy settings, starts Tor when enabled and loads the
// initial page: initialURL when given, the home page otherwise. With Tor
// enabled the first load waits until the lifecycle has finished, so it is
// never sent over the direct route while the proxy is still starting.
func (p *Presenter) Start(ctx context.Context, initialURL string) {
	p.applyPrivacy(ctx)

	load := func() {
		if initialURL != "" {
			p.NavigateTo(ctx, initialURL)
			return
		}
		p.Home(ctx)
	}
	if !p.cfg.Settings.Bool(port.SectionSecurity, port.KeyEnableTor) {
		load()
		return
	}

	p.setStatus(StatusTor, true)
	done := p.proxyDone(ctx)
	p.cfg.Proxy.EnableAsync(ctx, func(result proxy.Result) {
		done(result)
		if p.isClosed() {
			return
		}
		load()
	})
}

// NavigateTo loads address bar text. Blank input is ignored.
func (p *Presenter) NavigateTo(ctx context.Context, text string) {
	_, err := p.cfg.Navigate.Execute(ctx, usecase.NavigateInput{Text: text, Browser: p.cfg.Browser})
	if err != nil && !errors.Is(err, usecase.ErrEmptyAddress) {
		logging.FromContext(ctx).Warn().Err(err).Msg("navigation failed")
	}
}

func (p *Presenter) Back() {
	p.cfg.Browser.GoBack()
}

func (p *Presenter) Forward() {
	p.cfg.Browser.GoForward()
}

func (p *Presenter) Reload() {
	p.cfg.Browser.Reload()
}

// Home loads the configured home page.
func (p *Presenter) Home(ctx context.Context) {
	if _, err := p.cfg.Navigate.Home(ctx, p.cfg.Browser); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("no home page configured")
	}
}

// OpenSettings shows the settings dialog.
func (p *Presenter) OpenSettings() {
	p.cfg.View.ShowSettings()
}

// OnURIChanged mirrors the engine URL into the address bar and history.
func (p *Presenter) OnURIChanged(ctx context.Context, uri string) {
	p.mu.Lock()
	p.state.URL = uri
	p.mu.Unlock()

	p.cfg.View.SetAddress(uri)
	p.refreshNavigation()
	if p.cfg.History != nil && uri != "" {
		p.cfg.History.RecordVisit(ctx, uri)
	}
}

// OnTitleChanged stores the page title with the visit.
func (p *Presenter) OnTitleChanged(ctx context.Context, title string) {
	if p.cfg.History == nil || title == "" {
		return
	}
	uri := p.State().URL
	if uri == "" {
		return
	}
	if err := p.cfg.History.UpdateTitle(ctx, uri, title); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("failed to update history title")
	}
}

// OnLoadEvent dispatches an engine load event.
func (p *Presenter) OnLoadEvent(event port.LoadEvent) {
	switch event {
	case port.LoadStarted:
		p.OnLoadStarted()
	case port.LoadFinished:
		p.OnLoadFinished(true)
	case port.LoadFailed:
		p.OnLoadFinished(false)
	}
}

func (p *Presenter) OnLoadStarted() {
	p.setStatus(StatusLoading, true)
}

// OnLoadFinished sets the final status. A failure reported before the
// finish event sticks.
func (p *Presenter) OnLoadFinished(ok bool) {
	p.mu.Lock()
	failed := p.state.Status == StatusFailed && !p.state.Loading
	p.mu.Unlock()

	switch {
	case !ok:
		p.setStatus(StatusFailed, false)
	case !failed:
		p.setStatus(StatusReady, false)
	}
	p.refreshNavigation()
}

// OnDecidePolicy applies the navigation policy to a pending request.
func (p *Presenter) OnDecidePolicy(ctx context.Context, req navigation.Request) navigation.Decision {
	return p.cfg.Navigate.Decide(ctx, req)
}

// SettingsAccepted re-applies settings after the dialog saved them. Tor
// re-enters the lifecycle from Checking on every call.
func (p *Presenter) SettingsAccepted(ctx context.Context) {
	p.applyPrivacy(ctx)
	if p.cfg.Settings.Bool(port.SectionSecurity, port.KeyEnableTor) {
		p.cfg.Proxy.EnableAsync(ctx, p.proxyDone(ctx))
		return
	}
	p.cfg.Proxy.Disable(ctx)
}

// Close runs the shutdown sequence once.
func (p *Presenter) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	if p.cfg.Shutdown == nil {
		return nil
	}
	out, err := p.cfg.Shutdown.Execute(ctx, p.cfg.Profile)
	if out != nil {
		logging.FromContext(ctx).Info().
			Bool("data_cleared", out.DataCleared).
			Bool("proxy_stopped", out.ProxyStopped).
			Msg("shutdown complete")
	}
	return err
}

func (p *Presenter) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Presenter) applyPrivacy(ctx context.Context) {
	if _, err := p.cfg.Privacy.Execute(ctx, p.cfg.Profile); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to apply privacy settings")
	}
}

func (p *Presenter) proxyDone(ctx context.Context) func(proxy.Result) {
	return func(result proxy.Result) {
		log := logging.FromContext(ctx)
		if result.Err != nil {
			log.Warn().Err(result.Err).Str("state", result.State.String()).Msg("tor not fully enabled")
			return
		}
		log.Info().Bool("verified", result.Verified).Str("state", result.State.String()).Msg("tor lifecycle finished")
	}
}

func (p *Presenter) setStatus(text string, loading bool) {
	p.mu.Lock()
	p.state.Status = text
	p.state.Loading = loading
	p.mu.Unlock()
	p.cfg.View.SetStatus(text)
}

func (p *Presenter) refreshNavigation() {
	back, forward := p.cfg.Browser.CanGoBack(), p.cfg.Browser.CanGoForward()
	p.mu.Lock()
	p.state.CanGoBack = back
	p.state.CanGoForward = forward
	p.mu.Unlock()
	p.cfg.View.SetNavigationState(back, forward)
}
