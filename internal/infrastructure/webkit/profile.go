package webkit

import (
	"context"
	"sync"
	"time"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/bnema/medusa/internal/application/port"
	"github.com/bnema/medusa/internal/infrastructure/filtering"
	"github.com/bnema/medusa/internal/logging"
)

const (
	clearTimeout  = 10 * time.Second
	clearPollStep = 5 * time.Millisecond
)

// Profile implements port.Profile over the shared network session and one
// Settings object applied to every attached view.
type Profile struct {
	wkCtx    *WebKitContext
	settings *webkit.Settings
	filters  *filtering.Manager

	mu      sync.Mutex
	baseUA  string
	content []*webkit.UserContentManager
	ads     bool
	tracker bool

	ctx context.Context
}

var _ port.Profile = (*Profile)(nil)

// NewProfile creates a profile for views built on wkCtx. filters may be nil,
// in which case content filtering is a no-op.
func NewProfile(ctx context.Context, wkCtx *WebKitContext, filters *filtering.Manager) (*Profile, error) {
	if wkCtx == nil || wkCtx.Session() == nil {
		return nil, ErrContextNotInitialized
	}
	settings := webkit.NewSettings()
	p := &Profile{
		wkCtx:    wkCtx,
		settings: settings,
		filters:  filters,
		baseUA:   settings.UserAgent(),
		ctx:      ctx,
	}
	logging.FromContext(ctx).Debug().Str("user_agent", p.baseUA).Msg("profile created")
	return p, nil
}

// Settings is the settings object views must use.
func (p *Profile) Settings() *webkit.Settings {
	return p.settings
}

// Attach binds a view to this profile: it takes the profile settings and
// the currently requested content filters.
func (p *Profile) Attach(view *WebView) {
	if view == nil || view.IsDestroyed() {
		return
	}
	view.inner.SetSettings(p.settings)

	ucm := view.inner.UserContentManager()
	p.mu.Lock()
	p.content = append(p.content, ucm)
	ads, trackers := p.ads, p.tracker
	p.mu.Unlock()

	p.install(ucm, ads, trackers)
}

func (p *Profile) SetCacheModel(model port.CacheModel) {
	wc := p.wkCtx.WebContext()
	if wc == nil {
		return
	}
	switch model {
	case port.CacheModelNoCache:
		wc.SetCacheModel(webkit.CacheModelDocumentViewer)
	default:
		wc.SetCacheModel(webkit.CacheModelWebBrowser)
	}
}

// SetPersistentCookies selects cookie storage. The session kind is fixed
// at startup: a persistent session cannot detach its cookie store, so
// disabling relies on clear-on-exit purging it at shutdown.
func (p *Profile) SetPersistentCookies(enabled bool) {
	log := logging.FromContext(p.ctx)
	if p.wkCtx.IsEphemeral() {
		if enabled {
			log.Debug().Msg("ephemeral session: persistent cookies apply on next launch")
		}
		return
	}
	if enabled {
		p.wkCtx.Session().CookieManager().SetPersistentStorage(p.wkCtx.CookiePath(), webkit.CookiePersistentStorageSqlite)
		return
	}
	log.Debug().Msg("persistent session: cookies are purged on exit")
}

func (p *Profile) SetCookieAcceptPolicy(policy port.CookieAcceptPolicy) {
	var wk webkit.CookieAcceptPolicy
	switch policy {
	case port.CookieAcceptAlways:
		wk = webkit.CookiePolicyAcceptAlways
	case port.CookieAcceptNever:
		wk = webkit.CookiePolicyAcceptNever
	default:
		wk = webkit.CookiePolicyAcceptNoThirdParty
	}
	p.wkCtx.Session().CookieManager().SetAcceptPolicy(wk)
}

func (p *Profile) BaseUserAgent() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.baseUA
}

func (p *Profile) SetUserAgent(ua string) {
	p.settings.SetUserAgent(ua)
}

func (p *Profile) SetJavaScriptEnabled(enabled bool) {
	p.settings.SetEnableJavascript(enabled)
}

func (p *Profile) SetPopupsBlocked(blocked bool) {
	p.settings.SetJavascriptCanOpenWindowsAutomatically(!blocked)
}

// SetContentFilters installs the requested lists on every attached view,
// and on views attached later.
func (p *Profile) SetContentFilters(ads, trackers bool) {
	p.mu.Lock()
	p.ads, p.tracker = ads, trackers
	targets := append([]*webkit.UserContentManager(nil), p.content...)
	p.mu.Unlock()

	for _, ucm := range targets {
		p.install(ucm, ads, trackers)
	}
}

func (p *Profile) install(ucm *webkit.UserContentManager, ads, trackers bool) {
	if p.filters == nil {
		return
	}
	var kinds []filtering.ListKind
	if ads {
		kinds = append(kinds, filtering.ListAds)
	}
	if trackers {
		kinds = append(kinds, filtering.ListTrackers)
	}
	p.filters.Install(ucm, kinds...)
}

// ClearBrowsingData removes every kind of website data from the session.
// It must run on the main thread: the main context is iterated until the
// engine reports completion.
func (p *Profile) ClearBrowsingData(ctx context.Context) error {
	log := logging.FromContext(ctx).With().Str("component", "profile").Logger()

	manager := p.wkCtx.Session().WebsiteDataManager()
	if manager == nil {
		return ErrContextNotInitialized
	}

	var (
		done     bool
		clearErr error
	)
	manager.Clear(ctx, webkit.WebsiteDataAll, 0, func(result gio.AsyncResulter) {
		clearErr = manager.ClearFinish(result)
		done = true
	})

	mainCtx := glib.MainContextDefault()
	deadline := time.Now().Add(clearTimeout)
	for !done {
		if time.Now().After(deadline) {
			log.Warn().Dur("timeout", clearTimeout).Msg("website data clear did not finish")
			return ErrClearTimeout
		}
		if !mainCtx.Iteration(false) {
			time.Sleep(clearPollStep)
		}
	}
	if clearErr != nil {
		return clearErr
	}
	log.Info().Msg("website data cleared")
	return nil
}
