package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/medusa/internal/infrastructure/config"
)

func TestFromConfigApply_RoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	form := FromConfig(cfg)

	form.HomePage = "  https://example.org  "
	form.SetSearchEngineIndex(2)
	form.EnableTor = true
	form.JavaScriptEnabled = false
	form.SetCookiePolicyIndex(2)
	require.NoError(t, form.Validate())

	form.Apply(cfg)
	assert.Equal(t, "https://example.org", cfg.Browser.HomePage)
	assert.Equal(t, "bing", cfg.Browser.SearchEngine)
	assert.True(t, cfg.Security.EnableTor)
	assert.False(t, cfg.Privacy.JavaScriptEnabled)
	assert.Equal(t, config.CookiePolicyNever, cfg.Privacy.CookiePolicy)
	// Sections the dialog does not edit stay put.
	assert.Equal(t, config.DefaultTorSocksAddr, cfg.Tor.SocksAddr)
}

func TestValidate(t *testing.T) {
	form := FromConfig(config.DefaultConfig())
	require.NoError(t, form.Validate())

	form.HomePage = ""
	form.SearchEngine = "altavista"
	err := form.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "home_page")
	assert.Contains(t, err.Error(), "search_engine")
}

func TestToggles_WriteThrough(t *testing.T) {
	form := FromConfig(config.DefaultConfig())

	for _, toggle := range form.PrivacyToggles() {
		*toggle.Value = false
	}
	for _, toggle := range form.SecurityToggles() {
		*toggle.Value = true
	}

	assert.False(t, form.EnableAdBlocker)
	assert.False(t, form.BlockTrackers)
	assert.False(t, form.DoNotTrack)
	assert.False(t, form.JavaScriptEnabled)
	assert.False(t, form.ClearOnExit)
	assert.True(t, form.HTTPSOnly)
	assert.True(t, form.EnableTor)
	assert.True(t, form.BlockPopups)
}

func TestIndexes(t *testing.T) {
	form := Form{SearchEngine: "google", CookiePolicy: config.CookiePolicyAlways}
	assert.Equal(t, 1, form.SearchEngineIndex())
	assert.Equal(t, 1, form.CookiePolicyIndex())

	form.SearchEngine = "unknown"
	assert.Equal(t, 0, form.SearchEngineIndex())

	form.SetSearchEngineIndex(7)
	assert.Equal(t, "unknown", form.SearchEngine)
}
