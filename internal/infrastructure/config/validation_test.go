package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig_Defaults(t *testing.T) {
	assert.NoError(t, validateConfig(DefaultConfig()))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty home page", func(c *Config) { c.Browser.HomePage = "" }, "browser.home_page"},
		{"bad home scheme", func(c *Config) { c.Browser.HomePage = "javascript:alert(1)" }, "browser.home_page"},
		{"unknown engine", func(c *Config) { c.Browser.SearchEngine = "yahoo" }, "browser.search_engine"},
		{"bad socks addr", func(c *Config) { c.Tor.SocksAddr = "localhost" }, "tor.socks_addr"},
		{"bad check url", func(c *Config) { c.Tor.CheckURL = "ftp://x" }, "tor.check_url"},
		{"zero startup timeout", func(c *Config) { c.Tor.StartupTimeout = 0 }, "tor.startup_timeout"},
		{"tiny window", func(c *Config) { c.Appearance.Width = 10 }, "appearance.width"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
