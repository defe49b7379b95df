package config

// Default values shared with the settings dialog and CLI.
const (
	DefaultHomePage     = "https://duckduckgo.com"
	DefaultSearchEngine = "duckduckgo"
	DefaultTorSocksAddr = "127.0.0.1:9050"
	DefaultTorCheckURL  = "https://check.torproject.org/api/ip"
	DefaultWindowWidth  = 1200
	DefaultWindowHeight = 800
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			HomePage:     DefaultHomePage,
			SearchEngine: DefaultSearchEngine,
		},
		Privacy: PrivacyConfig{
			EnableAdBlocker:   true,
			ClearOnExit:       false,
			DoNotTrack:        true,
			JavaScriptEnabled: true,
			BlockTrackers:     true,
			CookiePolicy:      CookiePolicyNoThirdParty,
		},
		Security: SecurityConfig{
			HTTPSOnly:   true,
			EnableTor:   false,
			BlockPopups: true,
		},
		Tor: TorConfig{
			Mode:           TorModeEmbedded,
			BinaryPath:     "",
			SocksAddr:      DefaultTorSocksAddr,
			CheckURL:       DefaultTorCheckURL,
			StartupTimeout: 90,
			VerifyTimeout:  20,
		},
		ContentFiltering: ContentFilteringConfig{
			ExtraLists: []string{},
		},
		Appearance: AppearanceConfig{
			Stylesheet: "",
			Width:      DefaultWindowWidth,
			Height:     DefaultWindowHeight,
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			EnableFileLog: true,
			MaxSizeMB:     10,
			MaxBackups:    3,
			MaxAgeDays:    7,
		},
		Database: DatabaseConfig{
			// Path is filled in from XDG_DATA_HOME at load time.
			Path: "",
		},
	}
}

// settingValues flattens cfg into viper keys. It is the single list of
// recognised settings: defaults, Save and key validation all go through it.
func settingValues(cfg *Config) map[string]any {
	return map[string]any{
		"browser.home_page":     cfg.Browser.HomePage,
		"browser.search_engine": cfg.Browser.SearchEngine,

		"privacy.enable_ad_blocker":  cfg.Privacy.EnableAdBlocker,
		"privacy.clear_on_exit":      cfg.Privacy.ClearOnExit,
		"privacy.do_not_track":       cfg.Privacy.DoNotTrack,
		"privacy.javascript_enabled": cfg.Privacy.JavaScriptEnabled,
		"privacy.block_trackers":     cfg.Privacy.BlockTrackers,
		"privacy.cookie_policy":      string(cfg.Privacy.CookiePolicy),

		"security.https_only":   cfg.Security.HTTPSOnly,
		"security.enable_tor":   cfg.Security.EnableTor,
		"security.block_popups": cfg.Security.BlockPopups,

		"tor.mode":            string(cfg.Tor.Mode),
		"tor.binary_path":     cfg.Tor.BinaryPath,
		"tor.socks_addr":      cfg.Tor.SocksAddr,
		"tor.check_url":       cfg.Tor.CheckURL,
		"tor.startup_timeout": cfg.Tor.StartupTimeout,
		"tor.verify_timeout":  cfg.Tor.VerifyTimeout,

		"content_filtering.extra_lists": cfg.ContentFiltering.ExtraLists,

		"appearance.stylesheet": cfg.Appearance.Stylesheet,
		"appearance.width":      cfg.Appearance.Width,
		"appearance.height":     cfg.Appearance.Height,

		"logging.level":           cfg.Logging.Level,
		"logging.format":          cfg.Logging.Format,
		"logging.enable_file_log": cfg.Logging.EnableFileLog,
		"logging.max_size_mb":     cfg.Logging.MaxSizeMB,
		"logging.max_backups":     cfg.Logging.MaxBackups,
		"logging.max_age_days":    cfg.Logging.MaxAgeDays,

		"database.path": cfg.Database.Path,
	}
}
