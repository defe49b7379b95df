// Package webkit adapts WebKitGTK 6 to the application ports: the web view
// the shell drives, the browsing profile the privacy pass configures, and
// the network session proxy.
package webkit

import (
	"context"
	"fmt"
	"path/filepath"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/rs/zerolog"

	"github.com/bnema/medusa/internal/logging"
)

const cookieFileName = "cookies.db"

// ContextOptions configures the network session.
type ContextOptions struct {
	DataDir  string
	CacheDir string
	// Ephemeral keeps all website data in memory for the session.
	Ephemeral bool
}

// WebKitContext owns the shared WebContext and NetworkSession.
// It MUST be created before any WebView.
type WebKitContext struct {
	webContext     *webkit.WebContext
	networkSession *webkit.NetworkSession

	dataDir  string
	cacheDir string

	logger zerolog.Logger
}

// NewWebKitContext creates the network session every view of this process
// shares.
func NewWebKitContext(ctx context.Context, opts ContextOptions) (*WebKitContext, error) {
	log := logging.FromContext(ctx).With().Str("component", "webkit-context").Logger()

	if !opts.Ephemeral {
		if opts.DataDir == "" {
			return nil, fmt.Errorf("data directory cannot be empty")
		}
		if opts.CacheDir == "" {
			return nil, fmt.Errorf("cache directory cannot be empty")
		}
	}

	c := &WebKitContext{
		dataDir:  opts.DataDir,
		cacheDir: opts.CacheDir,
		logger:   log,
	}

	// The session comes first; it becomes the default for later views.
	if err := c.initNetworkSession(opts); err != nil {
		return nil, fmt.Errorf("failed to init network session: %w", err)
	}

	c.webContext = webkit.WebContextGetDefault()
	if c.webContext == nil {
		return nil, fmt.Errorf("failed to get WebContext")
	}
	c.webContext.SetCacheModel(webkit.CacheModelWebBrowser)

	log.Info().
		Bool("ephemeral", opts.Ephemeral).
		Str("data_dir", opts.DataDir).
		Str("cache_dir", opts.CacheDir).
		Msg("webkit context initialized")

	return c, nil
}

func (c *WebKitContext) initNetworkSession(opts ContextOptions) error {
	var session *webkit.NetworkSession
	if opts.Ephemeral {
		session = webkit.NewNetworkSessionEphemeral()
	} else {
		session = webkit.NewNetworkSession(c.dataDir, c.cacheDir)
	}
	if session == nil {
		return fmt.Errorf("failed to create network session")
	}

	dataManager := session.WebsiteDataManager()
	if dataManager == nil {
		return fmt.Errorf("failed to get website data manager")
	}
	if !opts.Ephemeral && dataManager.IsEphemeral() {
		return fmt.Errorf("website data manager is ephemeral despite data directories")
	}

	cookieManager := session.CookieManager()
	if cookieManager == nil {
		return fmt.Errorf("failed to get cookie manager")
	}
	cookieManager.SetAcceptPolicy(webkit.CookiePolicyAcceptNoThirdParty)

	if !opts.Ephemeral {
		cookieManager.SetPersistentStorage(c.CookiePath(), webkit.CookiePersistentStorageSqlite)
		session.SetPersistentCredentialStorageEnabled(true)
	}

	c.networkSession = session
	c.logger.Debug().
		Bool("ephemeral", session.IsEphemeral()).
		Str("cookies", c.CookiePath()).
		Msg("network session ready")
	return nil
}

// CookiePath is where persistent cookies are stored, or "" for an
// ephemeral session.
func (c *WebKitContext) CookiePath() string {
	if c.dataDir == "" {
		return ""
	}
	return filepath.Join(c.dataDir, cookieFileName)
}

// Session returns the shared network session.
func (c *WebKitContext) Session() *webkit.NetworkSession {
	return c.networkSession
}

// WebContext returns the shared web context.
func (c *WebKitContext) WebContext() *webkit.WebContext {
	return c.webContext
}

// IsEphemeral reports whether website data is kept in memory only.
func (c *WebKitContext) IsEphemeral() bool {
	return c.networkSession != nil && c.networkSession.IsEphemeral()
}
