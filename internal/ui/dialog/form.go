// Package dialog provides the settings dialog: a toolkit-free form model
// and the GTK window that edits it.
package dialog

import (
	"errors"
	"strings"

	"github.com/bnema/medusa/internal/domain/url"
	"github.com/bnema/medusa/internal/infrastructure/config"
)

// Form holds the values the settings dialog edits.
type Form struct {
	HomePage     string
	SearchEngine string

	EnableAdBlocker   bool
	ClearOnExit       bool
	DoNotTrack        bool
	JavaScriptEnabled bool
	BlockTrackers     bool
	CookiePolicy      config.CookiePolicy

	HTTPSOnly   bool
	EnableTor   bool
	BlockPopups bool
}

// Toggle describes one check button of the dialog.
type Toggle struct {
	Label string
	Value *bool
}

// FromConfig copies the editable settings out of cfg.
func FromConfig(cfg *config.Config) Form {
	return Form{
		HomePage:          cfg.Browser.HomePage,
		SearchEngine:      cfg.Browser.SearchEngine,
		EnableAdBlocker:   cfg.Privacy.EnableAdBlocker,
		ClearOnExit:       cfg.Privacy.ClearOnExit,
		DoNotTrack:        cfg.Privacy.DoNotTrack,
		JavaScriptEnabled: cfg.Privacy.JavaScriptEnabled,
		BlockTrackers:     cfg.Privacy.BlockTrackers,
		CookiePolicy:      cfg.Privacy.CookiePolicy,
		HTTPSOnly:         cfg.Security.HTTPSOnly,
		EnableTor:         cfg.Security.EnableTor,
		BlockPopups:       cfg.Security.BlockPopups,
	}
}

// PrivacyToggles lists the privacy check buttons in display order.
func (f *Form) PrivacyToggles() []Toggle {
	return []Toggle{
		{Label: "Enable ad blocker", Value: &f.EnableAdBlocker},
		{Label: "Block trackers", Value: &f.BlockTrackers},
		{Label: "Send Do Not Track", Value: &f.DoNotTrack},
		{Label: "Enable JavaScript", Value: &f.JavaScriptEnabled},
		{Label: "Clear browsing data on exit", Value: &f.ClearOnExit},
	}
}

// SecurityToggles lists the security check buttons in display order.
func (f *Form) SecurityToggles() []Toggle {
	return []Toggle{
		{Label: "HTTPS only", Value: &f.HTTPSOnly},
		{Label: "Route traffic through Tor", Value: &f.EnableTor},
		{Label: "Block pop-ups", Value: &f.BlockPopups},
	}
}

// SearchEngineIndex is the position of the form's engine in
// url.SearchEngines, or 0 when unknown.
func (f *Form) SearchEngineIndex() int {
	for i, engine := range url.SearchEngines() {
		if string(engine) == f.SearchEngine {
			return i
		}
	}
	return 0
}

// SetSearchEngineIndex selects the engine at position i of url.SearchEngines.
func (f *Form) SetSearchEngineIndex(i int) {
	engines := url.SearchEngines()
	if i < 0 || i >= len(engines) {
		return
	}
	f.SearchEngine = string(engines[i])
}

// Validate reports every invalid field at once.
func (f *Form) Validate() error {
	var errs []error
	if err := config.ValidateHomePage(f.HomePage); err != nil {
		errs = append(errs, err)
	}
	if err := config.ValidateSearchEngine(f.SearchEngine); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Apply writes the form into cfg. The form must be valid.
func (f *Form) Apply(cfg *config.Config) {
	cfg.Browser.HomePage = strings.TrimSpace(f.HomePage)
	cfg.Browser.SearchEngine = f.SearchEngine
	cfg.Privacy.EnableAdBlocker = f.EnableAdBlocker
	cfg.Privacy.ClearOnExit = f.ClearOnExit
	cfg.Privacy.DoNotTrack = f.DoNotTrack
	cfg.Privacy.JavaScriptEnabled = f.JavaScriptEnabled
	cfg.Privacy.BlockTrackers = f.BlockTrackers
	if f.CookiePolicy != "" {
		cfg.Privacy.CookiePolicy = f.CookiePolicy
	}
	cfg.Security.HTTPSOnly = f.HTTPSOnly
	cfg.Security.EnableTor = f.EnableTor
	cfg.Security.BlockPopups = f.BlockPopups
}

// CookiePolicies lists the cookie policy choices in display order.
func CookiePolicies() []config.CookiePolicy {
	return []config.CookiePolicy{
		config.CookiePolicyNoThirdParty,
		config.CookiePolicyAlways,
		config.CookiePolicyNever,
	}
}

// CookiePolicyIndex is the position of the form's policy in CookiePolicies,
// or 0 when unknown.
func (f *Form) CookiePolicyIndex() int {
	for i, policy := range CookiePolicies() {
		if policy == f.CookiePolicy {
			return i
		}
	}
	return 0
}

// SetCookiePolicyIndex selects the policy at position i of CookiePolicies.
func (f *Form) SetCookiePolicyIndex(i int) {
	policies := CookiePolicies()
	if i < 0 || i >= len(policies) {
		return
	}
	f.CookiePolicy = policies[i]
}
