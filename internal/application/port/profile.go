package port

import "context"

//go:generate mockgen -destination=mocks/mock_profile.go -package=mocks github.com/bnema/medusa/internal/application/port Profile

// CacheModel selects how aggressively the engine caches.
type CacheModel int

const (
	// CacheModelWebBrowser is the engine's normal disk and memory cache.
	CacheModelWebBrowser CacheModel = iota
	// CacheModelNoCache keeps as little as possible.
	CacheModelNoCache
)

// CookieAcceptPolicy selects which cookies the engine accepts.
type CookieAcceptPolicy int

const (
	CookieAcceptAlways CookieAcceptPolicy = iota
	CookieAcceptNoThirdParty
	CookieAcceptNever
)

// Profile is the browsing profile the privacy pass configures. Every
// setter is idempotent.
type Profile interface {
	SetCacheModel(model CacheModel)
	SetPersistentCookies(enabled bool)
	SetCookieAcceptPolicy(policy CookieAcceptPolicy)

	// BaseUserAgent is the engine's user agent before any privacy changes.
	BaseUserAgent() string
	SetUserAgent(ua string)

	SetJavaScriptEnabled(enabled bool)
	// SetPopupsBlocked stops scripts from opening windows on their own.
	SetPopupsBlocked(blocked bool)
	// SetContentFilters installs exactly the requested block lists.
	SetContentFilters(ads, trackers bool)

	// ClearBrowsingData drops caches, cookies and other website data.
	ClearBrowsingData(ctx context.Context) error
}
