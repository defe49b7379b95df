package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"strings"

	"github.com/bnema/medusa/internal/domain/url"
)

// validateConfig checks every section and reports all problems at once.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateBrowser(config)...)
	validationErrors = append(validationErrors, validateTor(config)...)
	validationErrors = append(validationErrors, validateAppearance(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

// ValidateHomePage reports why value cannot be used as a home page, or nil.
func ValidateHomePage(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("browser.home_page cannot be empty")
	}
	parsed, err := neturl.Parse(value)
	if err != nil {
		return fmt.Errorf("browser.home_page is not a valid URL: %w", err)
	}
	switch parsed.Scheme {
	case "http", "https", "file", "about":
		return nil
	default:
		return fmt.Errorf("browser.home_page must use http, https, file or about (got %q)", value)
	}
}

// ValidateSearchEngine reports whether name is a known search provider.
func ValidateSearchEngine(name string) error {
	if _, ok := url.ParseSearchEngine(name); !ok {
		names := make([]string, 0, len(url.SearchEngines()))
		for _, engine := range url.SearchEngines() {
			names = append(names, string(engine))
		}
		return fmt.Errorf("browser.search_engine must be one of %s (got %q)", strings.Join(names, ", "), name)
	}
	return nil
}

func validateBrowser(config *Config) []string {
	var validationErrors []string
	if err := ValidateHomePage(config.Browser.HomePage); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}
	if err := ValidateSearchEngine(config.Browser.SearchEngine); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}
	return validationErrors
}

func validateTor(config *Config) []string {
	var validationErrors []string
	if _, _, err := net.SplitHostPort(config.Tor.SocksAddr); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("tor.socks_addr must be host:port (got %q)", config.Tor.SocksAddr))
	}
	if parsed, err := neturl.Parse(config.Tor.CheckURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		validationErrors = append(validationErrors, "tor.check_url must be an http(s) URL")
	}
	if config.Tor.StartupTimeout <= 0 {
		validationErrors = append(validationErrors, "tor.startup_timeout must be positive")
	}
	if config.Tor.VerifyTimeout <= 0 {
		validationErrors = append(validationErrors, "tor.verify_timeout must be positive")
	}
	return validationErrors
}

func validateAppearance(config *Config) []string {
	var validationErrors []string
	if config.Appearance.Width < 200 {
		validationErrors = append(validationErrors, "appearance.width must be at least 200")
	}
	if config.Appearance.Height < 200 {
		validationErrors = append(validationErrors, "appearance.height must be at least 200")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string

	validLevels := []string{"trace", "debug", "info", "warn", "warning", "error", "disabled", "off"}
	isValid := false
	for _, level := range validLevels {
		if config.Logging.Level == level {
			isValid = true
			break
		}
	}
	if !isValid {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of: %s (got: %s)", strings.Join(validLevels, ", "), config.Logging.Level))
	}

	if config.Logging.Format != "console" && config.Logging.Format != "json" {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be console or json (got: %s)", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 0 || config.Logging.MaxBackups < 0 || config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb, max_backups and max_age_days must be non-negative")
	}
	return validationErrors
}
