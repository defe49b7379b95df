package port

//go:generate mockgen -destination=mocks/mock_settings.go -package=mocks github.com/bnema/medusa/internal/application/port SettingsStore

// Setting sections and keys read by the application layer.
const (
	SectionBrowser  = "browser"
	SectionPrivacy  = "privacy"
	SectionSecurity = "security"

	KeyHomePage     = "home_page"
	KeySearchEngine = "search_engine"

	KeyEnableAdBlocker   = "enable_ad_blocker"
	KeyClearOnExit       = "clear_on_exit"
	KeyDoNotTrack        = "do_not_track"
	KeyJavaScriptEnabled = "javascript_enabled"
	KeyBlockTrackers     = "block_trackers"
	KeyCookiePolicy      = "cookie_policy"

	KeyHTTPSOnly   = "https_only"
	KeyEnableTor   = "enable_tor"
	KeyBlockPopups = "block_popups"
)

// SettingsStore is the persistent section/key settings store.
type SettingsStore interface {
	Bool(section, key string) bool
	String(section, key string) string
	UpdateSetting(section, key string, value any) error
}
