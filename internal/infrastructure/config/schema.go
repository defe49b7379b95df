package config

// Config represents the complete configuration for medusa.
type Config struct {
	Browser  BrowserConfig  `mapstructure:"browser" toml:"browser" json:"browser"`
	Privacy  PrivacyConfig  `mapstructure:"privacy" toml:"privacy" json:"privacy"`
	Security SecurityConfig `mapstructure:"security" toml:"security" json:"security"`
	// Tor controls how the SOCKS proxy is obtained and verified.
	Tor TorConfig `mapstructure:"tor" toml:"tor" json:"tor"`
	// ContentFiltering adds user block lists on top of the embedded ones.
	ContentFiltering ContentFilteringConfig `mapstructure:"content_filtering" toml:"content_filtering" json:"content_filtering"`
	Appearance       AppearanceConfig       `mapstructure:"appearance" toml:"appearance" json:"appearance"`
	Logging          LoggingConfig          `mapstructure:"logging" toml:"logging" json:"logging"`
	Database         DatabaseConfig         `mapstructure:"database" toml:"database" json:"database"`
}

// BrowserConfig holds navigation defaults.
type BrowserConfig struct {
	HomePage string `mapstructure:"home_page" toml:"home_page" json:"home_page" jsonschema:"format=uri"`
	// SearchEngine is one of duckduckgo, google or bing.
	SearchEngine string `mapstructure:"search_engine" toml:"search_engine" json:"search_engine" jsonschema:"enum=duckduckgo,enum=google,enum=bing"`
}

// CookiePolicy selects which cookies the engine accepts.
type CookiePolicy string

const (
	CookiePolicyAlways       CookiePolicy = "always"
	CookiePolicyNoThirdParty CookiePolicy = "no_third_party"
	CookiePolicyNever        CookiePolicy = "never"
)

// PrivacyConfig holds the privacy toggles applied to the browsing profile.
type PrivacyConfig struct {
	EnableAdBlocker   bool         `mapstructure:"enable_ad_blocker" toml:"enable_ad_blocker" json:"enable_ad_blocker"`
	ClearOnExit       bool         `mapstructure:"clear_on_exit" toml:"clear_on_exit" json:"clear_on_exit"`
	DoNotTrack        bool         `mapstructure:"do_not_track" toml:"do_not_track" json:"do_not_track"`
	JavaScriptEnabled bool         `mapstructure:"javascript_enabled" toml:"javascript_enabled" json:"javascript_enabled"`
	BlockTrackers     bool         `mapstructure:"block_trackers" toml:"block_trackers" json:"block_trackers"`
	CookiePolicy      CookiePolicy `mapstructure:"cookie_policy" toml:"cookie_policy" json:"cookie_policy" jsonschema:"enum=always,enum=no_third_party,enum=never"`
}

// SecurityConfig holds transport and window policies.
type SecurityConfig struct {
	HTTPSOnly   bool `mapstructure:"https_only" toml:"https_only" json:"https_only"`
	EnableTor   bool `mapstructure:"enable_tor" toml:"enable_tor" json:"enable_tor"`
	BlockPopups bool `mapstructure:"block_popups" toml:"block_popups" json:"block_popups"`
}

// TorMode selects where the SOCKS proxy comes from.
type TorMode string

const (
	// TorModeEmbedded launches a private tor daemon for the session.
	TorModeEmbedded TorMode = "embedded"
	// TorModeSystem uses a daemon already listening on SocksAddr.
	TorModeSystem TorMode = "system"
)

// TorConfig configures the proxy manager. Timeouts are in seconds.
type TorConfig struct {
	Mode           TorMode `mapstructure:"mode" toml:"mode" json:"mode" jsonschema:"enum=embedded,enum=system"`
	BinaryPath     string  `mapstructure:"binary_path" toml:"binary_path" json:"binary_path"`
	SocksAddr      string  `mapstructure:"socks_addr" toml:"socks_addr" json:"socks_addr"`
	CheckURL       string  `mapstructure:"check_url" toml:"check_url" json:"check_url"`
	StartupTimeout int     `mapstructure:"startup_timeout" toml:"startup_timeout" json:"startup_timeout" jsonschema:"minimum=1"`
	VerifyTimeout  int     `mapstructure:"verify_timeout" toml:"verify_timeout" json:"verify_timeout" jsonschema:"minimum=1"`
}

// ContentFilteringConfig lists extra block list files.
type ContentFilteringConfig struct {
	ExtraLists []string `mapstructure:"extra_lists" toml:"extra_lists" json:"extra_lists"`
}

// AppearanceConfig controls the shell window.
type AppearanceConfig struct {
	// Stylesheet replaces the built-in GTK stylesheet when set.
	Stylesheet string `mapstructure:"stylesheet" toml:"stylesheet" json:"stylesheet"`
	Width      int    `mapstructure:"width" toml:"width" json:"width" jsonschema:"minimum=200"`
	Height     int    `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=200"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level         string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format        string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups"`
	MaxAgeDays    int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days"`
}

// DatabaseConfig holds the history database location.
type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/medusa/medusa.sqlite when empty.
	Path string `mapstructure:"path" toml:"path" json:"path"`
}
