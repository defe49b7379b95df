// Package window provides the GTK browser window.
package window

import (
	"context"
	"errors"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"

	"github.com/bnema/medusa/internal/domain/proxy"
	"github.com/bnema/medusa/internal/infrastructure/config"
	"github.com/bnema/medusa/internal/logging"
	"github.com/bnema/medusa/internal/ui/shell"
)

const (
	windowTitle    = "Medusa Secure Browser"
	urlPlaceholder = "Enter URL or search terms..."
	toolbarSpacing = 6
)

// Toolbar button labels.
const (
	labelBack     = "←"
	labelForward  = "→"
	labelReload   = "↻"
	labelHome     = "🏠"
	labelSettings = "⚙"
)

var ErrWindowCreationFailed = errors.New("failed to create main window")

// Actions are the toolbar handlers.
type Actions struct {
	Navigate func(text string)
	Back     func()
	Forward  func()
	Reload   func()
	Home     func()
	Settings func()
}

// MainWindow is the browser window: toolbar, web view and status line.
type MainWindow struct {
	window  *gtk.ApplicationWindow
	rootBox *gtk.Box

	backBtn    *gtk.Button
	forwardBtn *gtk.Button
	urlEntry   *gtk.Entry
	status     *gtk.Label
	proxyLabel *gtk.Label

	actions Actions

	// OnShowSettings opens the settings dialog.
	OnShowSettings func()
	// OnCloseRequest runs before the window closes.
	OnCloseRequest func()

	logger zerolog.Logger
}

var _ shell.View = (*MainWindow)(nil)

// New creates the main window around content, the web view widget.
func New(ctx context.Context, app *gtk.Application, cfg *config.Config, content gtk.Widgetter, actions Actions) (*MainWindow, error) {
	log := logging.FromContext(ctx)

	mw := &MainWindow{
		actions: actions,
		logger:  log.With().Str("component", "main-window").Logger(),
	}

	mw.window = gtk.NewApplicationWindow(app)
	if mw.window == nil {
		return nil, ErrWindowCreationFailed
	}
	mw.window.SetTitle(windowTitle)
	width, height := config.DefaultWindowWidth, config.DefaultWindowHeight
	if cfg != nil && cfg.Appearance.Width > 0 && cfg.Appearance.Height > 0 {
		width, height = cfg.Appearance.Width, cfg.Appearance.Height
	}
	mw.window.SetDefaultSize(width, height)
	mw.window.AddCSSClass("medusa-main")

	mw.rootBox = gtk.NewBox(gtk.OrientationVertical, 0)
	mw.rootBox.SetHExpand(true)
	mw.rootBox.SetVExpand(true)

	mw.rootBox.Append(mw.buildToolbar())

	if content != nil {
		gtk.BaseWidget(content).SetHExpand(true)
		gtk.BaseWidget(content).SetVExpand(true)
		mw.rootBox.Append(content)
	}

	mw.rootBox.Append(mw.buildStatusBar())
	mw.window.SetChild(mw.rootBox)

	mw.window.ConnectCloseRequest(func() bool {
		if mw.OnCloseRequest != nil {
			mw.OnCloseRequest()
		}
		return false
	})

	mw.SetNavigationState(false, false)
	return mw, nil
}

func (mw *MainWindow) buildToolbar() *gtk.Box {
	toolbar := gtk.NewBox(gtk.OrientationHorizontal, toolbarSpacing)
	toolbar.AddCSSClass("medusa-toolbar")

	mw.backBtn = mw.toolbarButton(labelBack, "Back", mw.actions.Back)
	mw.forwardBtn = mw.toolbarButton(labelForward, "Forward", mw.actions.Forward)
	toolbar.Append(mw.backBtn)
	toolbar.Append(mw.forwardBtn)
	toolbar.Append(mw.toolbarButton(labelReload, "Reload", mw.actions.Reload))
	toolbar.Append(mw.toolbarButton(labelHome, "Home", mw.actions.Home))

	mw.urlEntry = gtk.NewEntry()
	mw.urlEntry.SetPlaceholderText(urlPlaceholder)
	mw.urlEntry.SetHExpand(true)
	mw.urlEntry.AddCSSClass("medusa-urlbar")
	mw.urlEntry.ConnectActivate(func() {
		if mw.actions.Navigate != nil {
			mw.actions.Navigate(mw.urlEntry.Text())
		}
	})
	toolbar.Append(mw.urlEntry)

	toolbar.Append(mw.toolbarButton(labelSettings, "Settings", mw.actions.Settings))
	return toolbar
}

func (mw *MainWindow) toolbarButton(label, tooltip string, action func()) *gtk.Button {
	btn := gtk.NewButtonWithLabel(label)
	btn.SetTooltipText(tooltip)
	btn.ConnectClicked(func() {
		if action != nil {
			action()
		}
	})
	return btn
}

func (mw *MainWindow) buildStatusBar() *gtk.Box {
	bar := gtk.NewBox(gtk.OrientationHorizontal, toolbarSpacing)
	bar.AddCSSClass("medusa-statusbar")

	mw.status = gtk.NewLabel("")
	mw.status.SetXAlign(0)
	mw.status.SetHExpand(true)
	bar.Append(mw.status)

	mw.proxyLabel = gtk.NewLabel("")
	mw.proxyLabel.AddCSSClass("medusa-proxy-indicator")
	mw.proxyLabel.SetVisible(false)
	bar.Append(mw.proxyLabel)
	return bar
}

// Window returns the GTK window for transient dialogs.
func (mw *MainWindow) Window() *gtk.Window {
	return &mw.window.Window
}

// Present shows the window.
func (mw *MainWindow) Present() {
	mw.window.Present()
}

func (mw *MainWindow) SetAddress(text string) {
	mw.urlEntry.SetText(text)
}

func (mw *MainWindow) SetStatus(text string) {
	mw.status.SetText(text)
}

func (mw *MainWindow) SetNavigationState(canGoBack, canGoForward bool) {
	mw.backBtn.SetSensitive(canGoBack)
	mw.forwardBtn.SetSensitive(canGoForward)
}

// SetProxyState shows the Tor indicator while the proxy is not disabled.
func (mw *MainWindow) SetProxyState(state proxy.State) {
	mw.proxyLabel.RemoveCSSClass("active")
	mw.proxyLabel.RemoveCSSClass("pending")

	switch state {
	case proxy.Disabled:
		mw.proxyLabel.SetVisible(false)
		return
	case proxy.Enabled:
		mw.proxyLabel.AddCSSClass("active")
	default:
		mw.proxyLabel.AddCSSClass("pending")
	}
	mw.proxyLabel.SetText(ProxyLabel(state))
	mw.proxyLabel.SetVisible(true)
}

func (mw *MainWindow) ShowSettings() {
	if mw.OnShowSettings != nil {
		mw.OnShowSettings()
	}
}

// ProxyLabel is the indicator text for state.
func ProxyLabel(state proxy.State) string {
	switch state {
	case proxy.Enabled:
		return "Tor"
	case proxy.Disabled:
		return ""
	default:
		return "Tor: " + state.String() + "..."
	}
}
