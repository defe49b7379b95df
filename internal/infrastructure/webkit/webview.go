package webkit

import (
	"sync/atomic"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/rs/zerolog"

	"github.com/bnema/medusa/internal/application/port"
	"github.com/bnema/medusa/internal/domain/navigation"
	"github.com/bnema/medusa/internal/logging"
)

const logURLMaxLen = 60

// WebView wraps webkit.WebView and forwards its signals to the callbacks
// set by the UI layer. All methods must run on the main thread.
type WebView struct {
	inner     *webkit.WebView
	destroyed atomic.Bool

	// upgradeTarget is the URL last loaded in place of an http request. Its
	// decision continues the redirect chain.
	upgradeTarget string

	// Callbacks (set by UI layer)
	OnURIChanged   func(uri string)
	OnTitleChanged func(title string)
	OnLoadChanged  func(event port.LoadEvent)
	// OnDecidePolicy returns the verdict for a navigation. Nil allows all.
	OnDecidePolicy func(req navigation.Request) navigation.Decision
	OnClose        func()

	logger zerolog.Logger
}

var _ port.Browser = (*WebView)(nil)

// NewWebView creates a view on wkCtx's network session and attaches it to
// profile.
func NewWebView(wkCtx *WebKitContext, profile *Profile, logger zerolog.Logger) (*WebView, error) {
	if wkCtx == nil || wkCtx.Session() == nil {
		return nil, ErrContextNotInitialized
	}

	inner := newSessionView(wkCtx.Session())
	if inner == nil {
		return nil, ErrContextNotInitialized
	}

	wv := &WebView{
		inner:  inner,
		logger: logger.With().Str("component", "webview").Logger(),
	}
	if profile != nil {
		profile.Attach(wv)
	}
	wv.connectSignals()

	wv.logger.Debug().Bool("ephemeral", wkCtx.IsEphemeral()).Msg("webview created")
	return wv, nil
}

// newSessionView builds a view bound to session. The network-session
// property is construct-only, so the view cannot be created with
// webkit.NewWebView when the session is not the default one.
func newSessionView(session *webkit.NetworkSession) *webkit.WebView {
	obj := coreglib.NewObjectWithProperties(webkit.GTypeWebView, map[string]any{
		"network-session": session,
	})
	if obj != nil {
		if view, ok := obj.Cast().(*webkit.WebView); ok {
			return view
		}
	}
	return webkit.NewWebView()
}

func (wv *WebView) connectSignals() {
	wv.inner.Connect("notify::uri", func() {
		if cb := wv.OnURIChanged; cb != nil {
			cb(wv.inner.URI())
		}
	})

	wv.inner.Connect("notify::title", func() {
		if cb := wv.OnTitleChanged; cb != nil {
			cb(wv.inner.Title())
		}
	})

	wv.inner.ConnectLoadChanged(func(event webkit.LoadEvent) {
		var mapped port.LoadEvent
		switch event {
		case webkit.LoadStarted:
			mapped = port.LoadStarted
		case webkit.LoadFinished:
			mapped = port.LoadFinished
		default:
			return
		}
		if cb := wv.OnLoadChanged; cb != nil {
			cb(mapped)
		}
	})

	wv.inner.ConnectLoadFailed(func(_ webkit.LoadEvent, failingURI string, err error) bool {
		if IsCancelledError(err) {
			return false
		}
		wv.logger.Warn().
			Err(err).
			Str("uri", logging.TruncateURL(failingURI, logURLMaxLen)).
			Msg("load failed")
		if cb := wv.OnLoadChanged; cb != nil {
			cb(port.LoadFailed)
		}
		// Let the engine render its error page.
		return false
	})

	wv.inner.ConnectDecidePolicy(wv.decidePolicy)

	wv.inner.ConnectClose(func() {
		wv.destroyed.Store(true)
		if cb := wv.OnClose; cb != nil {
			cb()
		}
	})
}

// decidePolicy maps engine policy decisions onto navigation requests.
// Navigation and new-window actions are top-level; sub-resources never
// reach this signal. The shell has a single view, so a new-window request
// opens in place when the user asked for it and is dropped otherwise.
func (wv *WebView) decidePolicy(decision webkit.PolicyDecisioner, typ webkit.PolicyDecisionType) bool {
	if typ != webkit.PolicyDecisionTypeNavigationAction && typ != webkit.PolicyDecisionTypeNewWindowAction {
		return false
	}
	nav, ok := decision.(*webkit.NavigationPolicyDecision)
	if !ok {
		return false
	}
	action := nav.NavigationAction()
	if action == nil || action.Request() == nil {
		return false
	}
	uri := action.Request().URI()
	newWindow := typ == webkit.PolicyDecisionTypeNewWindowAction

	redirect := action.IsRedirect() || (wv.upgradeTarget != "" && uri == wv.upgradeTarget)
	wv.upgradeTarget = ""

	verdict := navigation.Decision{Action: navigation.Allow}
	if cb := wv.OnDecidePolicy; cb != nil {
		verdict = cb(navigation.Request{URL: uri, MainFrame: true, Redirect: redirect})
	}

	out := policyOutcome(verdict, uri, newWindow, action.IsUserGesture())
	if !out.ignore {
		return false
	}
	nav.Ignore()
	switch {
	case out.failed:
		wv.logger.Warn().Str("uri", logging.TruncateURL(uri, logURLMaxLen)).Msg("navigation blocked")
		if cb := wv.OnLoadChanged; cb != nil {
			cb(port.LoadFailed)
		}
	case out.load == "":
		wv.logger.Debug().Str("uri", logging.TruncateURL(uri, logURLMaxLen)).Msg("popup dropped")
	default:
		if verdict.Action == navigation.Redirect {
			wv.logger.Debug().
				Str("from", logging.TruncateURL(uri, logURLMaxLen)).
				Str("to", logging.TruncateURL(out.load, logURLMaxLen)).
				Msg("navigation redirected")
			wv.upgradeTarget = out.load
		}
		wv.inner.LoadURI(out.load)
	}
	return true
}

// outcome is what the view does with a policy decision.
type outcome struct {
	// ignore cancels the engine's own handling.
	ignore bool
	// load is loaded in the view instead, when set.
	load string
	// failed reports the navigation as a failed load.
	failed bool
}

// policyOutcome maps a verdict onto the view. New-window requests open in
// place only when they come from a user gesture.
func policyOutcome(verdict navigation.Decision, uri string, newWindow, userGesture bool) outcome {
	switch verdict.Action {
	case navigation.Block:
		return outcome{ignore: true, failed: true}
	case navigation.Redirect:
		if newWindow && !userGesture {
			return outcome{ignore: true}
		}
		return outcome{ignore: true, load: verdict.URL}
	}
	if !newWindow {
		return outcome{}
	}
	if !userGesture {
		return outcome{ignore: true}
	}
	return outcome{ignore: true, load: uri}
}

// Widget exposes the GTK widget for packing into a window.
func (wv *WebView) Widget() *webkit.WebView {
	return wv.inner
}

func (wv *WebView) LoadURI(uri string) {
	if wv.destroyed.Load() {
		wv.logger.Debug().Err(ErrWebViewDestroyed).Msg("load ignored")
		return
	}
	wv.inner.LoadURI(uri)
}

func (wv *WebView) GoBack() {
	if wv.destroyed.Load() || !wv.inner.CanGoBack() {
		return
	}
	wv.inner.GoBack()
}

func (wv *WebView) GoForward() {
	if wv.destroyed.Load() || !wv.inner.CanGoForward() {
		return
	}
	wv.inner.GoForward()
}

func (wv *WebView) Reload() {
	if wv.destroyed.Load() {
		return
	}
	wv.inner.Reload()
}

func (wv *WebView) CanGoBack() bool {
	return !wv.destroyed.Load() && wv.inner.CanGoBack()
}

func (wv *WebView) CanGoForward() bool {
	return !wv.destroyed.Load() && wv.inner.CanGoForward()
}

func (wv *WebView) URI() string {
	if wv.destroyed.Load() {
		return ""
	}
	return wv.inner.URI()
}

// IsDestroyed reports whether the engine closed the view.
func (wv *WebView) IsDestroyed() bool {
	return wv.destroyed.Load()
}
