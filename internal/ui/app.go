package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/medusa/internal/application/port"
	"github.com/bnema/medusa/internal/application/usecase"
	"github.com/bnema/medusa/internal/domain/navigation"
	"github.com/bnema/medusa/internal/infrastructure/config"
	"github.com/bnema/medusa/internal/infrastructure/filtering"
	"github.com/bnema/medusa/internal/infrastructure/webkit"
	"github.com/bnema/medusa/internal/logging"
	"github.com/bnema/medusa/internal/ui/dialog"
	"github.com/bnema/medusa/internal/ui/shell"
	"github.com/bnema/medusa/internal/ui/theme"
	"github.com/bnema/medusa/internal/ui/window"
)

const (
	// AppID is the application identifier for GTK.
	AppID = "io.github.bnema.medusa"
)

// App wraps the GTK Application and manages the browser lifecycle.
type App struct {
	deps   *Dependencies
	gtkApp *gtk.Application

	mainWindow *window.MainWindow
	theme      *theme.Manager
	presenter  *shell.Presenter

	wkCtx   *webkit.WebKitContext
	profile *webkit.Profile
	view    *webkit.WebView
	filters *filtering.Manager
	proxyUC *usecase.ManageProxyUseCase

	settings *settingsSync

	ctx    context.Context
	cancel context.CancelCauseFunc
}

// New creates a new App with the given dependencies.
func New(deps *Dependencies) (*App, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancelCause(deps.Ctx)
	return &App{deps: deps, ctx: ctx, cancel: cancel}, nil
}

// Run starts the GTK application and blocks until it exits.
// Returns the exit code.
func (a *App) Run(args []string) int {
	log := logging.FromContext(a.ctx)
	log.Debug().Msg("creating GTK application")

	a.gtkApp = gtk.NewApplication(AppID, gio.ApplicationNonUnique)
	a.gtkApp.ConnectActivate(func() { a.onActivate(a.ctx) })
	a.gtkApp.ConnectShutdown(func() { a.onShutdown(a.ctx) })

	log.Info().Msg("starting GTK main loop")
	return a.gtkApp.Run(args)
}

// onActivate builds the engine objects and the window.
func (a *App) onActivate(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("GTK application activated")

	if a.mainWindow != nil {
		a.mainWindow.Present()
		return
	}

	cfg := a.deps.ConfigManager.Get()

	a.theme = theme.NewManager(cfg.Appearance.Stylesheet)
	a.theme.ApplyToDisplay(ctx, gdk.DisplayGetDefault())

	if err := a.initEngine(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("failed to initialise web engine")
		a.gtkApp.Quit()
		return
	}

	if err := a.createMainWindow(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("failed to create main window")
		a.gtkApp.Quit()
		return
	}

	a.settings = newSettingsSync(cfg, a.presenter.SettingsAccepted)
	a.watchConfig(ctx)
	a.presenter.Start(ctx, a.deps.InitialURL)
	a.mainWindow.Present()
}

func (a *App) initEngine(ctx context.Context, cfg *config.Config) error {
	var err error
	a.wkCtx, err = webkit.NewWebKitContext(ctx, webkit.ContextOptions{
		DataDir:   a.deps.WebsiteDataDir,
		CacheDir:  a.deps.CacheDir,
		Ephemeral: cfg.Privacy.ClearOnExit,
	})
	if err != nil {
		return err
	}

	a.filters = a.initFilters(ctx)

	a.profile, err = webkit.NewProfile(ctx, a.wkCtx, a.filters)
	if err != nil {
		return err
	}

	a.view, err = webkit.NewWebView(a.wkCtx, a.profile, *logging.FromContext(ctx))
	if err != nil {
		return fmt.Errorf("create web view: %w", err)
	}
	return nil
}

// initFilters starts compiling the block lists. Filtering is skipped when
// the lists or the store are unavailable.
func (a *App) initFilters(ctx context.Context) *filtering.Manager {
	log := logging.FromContext(ctx)
	if a.deps.BlockLists == nil {
		log.Warn().Msg("block lists unavailable, content filtering disabled")
		return nil
	}
	if err := os.MkdirAll(a.deps.FilterStoreDir, 0o755); err != nil {
		log.Warn().Err(err).Msg("cannot create filter store, content filtering disabled")
		return nil
	}
	store, err := filtering.NewStore(a.deps.FilterStoreDir)
	if err != nil {
		log.Warn().Err(err).Msg("content filtering disabled")
		return nil
	}
	manager := filtering.NewManager(store, a.deps.BlockLists)
	manager.OnStateChange(func(kind filtering.ListKind, state filtering.FilterState) {
		log.Info().Str("list", string(kind)).Str("state", string(state)).Msg("content filter state")
	})
	manager.Compile(ctx)
	return manager
}

func (a *App) createMainWindow(ctx context.Context, cfg *config.Config) error {
	var p *shell.Presenter
	actions := window.Actions{
		Navigate: func(text string) { p.NavigateTo(ctx, text) },
		Back:     func() { p.Back() },
		Forward:  func() { p.Forward() },
		Reload:   func() { p.Reload() },
		Home:     func() { p.Home(ctx) },
		Settings: func() { p.OpenSettings() },
	}

	mw, err := window.New(ctx, a.gtkApp, cfg, a.view.Widget(), actions)
	if err != nil {
		return err
	}
	a.mainWindow = mw

	settings := a.deps.ConfigManager
	alerts := dialog.NewAlerts(mw.Window)
	engineProxy := webkit.NewEngineProxy(a.wkCtx, *logging.FromContext(ctx))
	a.proxyUC = usecase.NewManageProxyUseCase(a.deps.TorManager, engineProxy, settings, alerts, webkit.MainThread)

	var history interface {
		Close()
		Clear(ctx context.Context) error
	}
	var recorder interface {
		RecordVisit(ctx context.Context, rawURL string)
		UpdateTitle(ctx context.Context, rawURL, title string) error
	}
	if a.deps.HistoryUC != nil {
		history, recorder = a.deps.HistoryUC, a.deps.HistoryUC
	}

	p, err = shell.New(shell.Config{
		View:     mw,
		Browser:  a.view,
		Profile:  a.profile,
		Settings: settings,
		Navigate: a.deps.NavigateUC,
		Privacy:  a.deps.PrivacyUC,
		Proxy:    a.proxyUC,
		History:  recorder,
		Shutdown: usecase.NewShutdownUseCase(settings, history, a.proxyUC),
	})
	if err != nil {
		return err
	}
	a.presenter = p

	a.view.OnURIChanged = func(uri string) { p.OnURIChanged(ctx, uri) }
	a.view.OnTitleChanged = func(title string) { p.OnTitleChanged(ctx, title) }
	a.view.OnLoadChanged = func(event port.LoadEvent) { p.OnLoadEvent(event) }
	a.view.OnDecidePolicy = func(req navigation.Request) navigation.Decision {
		return p.OnDecidePolicy(ctx, req)
	}

	mw.OnShowSettings = func() { a.showSettings(ctx) }
	mw.OnCloseRequest = func() { a.closeBrowser(ctx) }
	return nil
}

func (a *App) showSettings(ctx context.Context) {
	current := a.deps.ConfigManager.Get()
	dialog.ShowSettings(a.mainWindow.Window(), dialog.FromConfig(current), func(form dialog.Form) error {
		next := a.deps.ConfigManager.Get()
		form.Apply(next)
		if err := a.deps.ConfigManager.Save(next); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("failed to save settings")
			return err
		}
		a.settings.Accepted(ctx, a.deps.ConfigManager.Get())
		return nil
	})
}

// watchConfig re-applies settings when the stored configuration changes
// outside the dialog: a failed Tor start or an edit on disk.
func (a *App) watchConfig(ctx context.Context) {
	log := logging.FromContext(ctx)

	a.deps.ConfigManager.OnConfigChange(func(cfg *config.Config) {
		webkit.MainThread.Dispatch(func() { a.onConfigChanged(ctx, cfg) })
	})
	if err := a.deps.ConfigManager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config hot-reload disabled")
	}
}

func (a *App) onConfigChanged(ctx context.Context, cfg *config.Config) {
	if a.presenter == nil || a.settings == nil {
		return
	}
	a.theme.SetStylesheet(ctx, cfg.Appearance.Stylesheet, gdk.DisplayGetDefault())

	if a.settings.Changed(ctx, cfg) {
		logging.FromContext(ctx).Debug().Msg("settings changed, re-applied")
	}
}

// closeBrowser runs the shutdown sequence while the engine is still alive.
func (a *App) closeBrowser(ctx context.Context) {
	if a.presenter == nil {
		return
	}
	if err := a.presenter.Close(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("shutdown finished with errors")
	}
}

// Quit runs the shutdown sequence and stops the main loop. Safe from any
// goroutine.
func (a *App) Quit() {
	webkit.MainThread.Dispatch(func() {
		a.closeBrowser(a.ctx)
		if a.gtkApp != nil {
			a.gtkApp.Quit()
		}
	})
}

// onShutdown is called when the GTK application shuts down.
func (a *App) onShutdown(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("GTK application shutting down")

	a.closeBrowser(ctx)
	a.cancel(errors.New("application shutdown"))

	log.Info().Msg("application shutdown complete")
}
