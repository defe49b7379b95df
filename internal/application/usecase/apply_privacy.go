package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/bnema/medusa/internal/application/port"
	"github.com/bnema/medusa/internal/logging"
)

// doNotTrackToken is appended to the user agent when Do Not Track is on.
const doNotTrackToken = "DNT:1"

// Cookie policy setting values.
const (
	CookiePolicyAlways       = "always"
	CookiePolicyNoThirdParty = "no_third_party"
	CookiePolicyNever        = "never"
)

// ApplyPrivacyUseCase pushes the privacy and security settings into the
// browsing profile. Running it twice with the same settings is a no-op.
type ApplyPrivacyUseCase struct {
	settings port.SettingsStore
}

// NewApplyPrivacyUseCase creates a new privacy use case.
func NewApplyPrivacyUseCase(settings port.SettingsStore) *ApplyPrivacyUseCase {
	return &ApplyPrivacyUseCase{settings: settings}
}

// ApplyPrivacyOutput reports what was applied.
type ApplyPrivacyOutput struct {
	UserAgent       string
	Ephemeral       bool
	CookiePolicy    port.CookieAcceptPolicy
	AdsBlocked      bool
	TrackersBlocked bool
}

// Execute applies every privacy setting to profile.
func (uc *ApplyPrivacyUseCase) Execute(ctx context.Context, profile port.Profile) (*ApplyPrivacyOutput, error) {
	if profile == nil {
		return nil, errors.New("profile is required")
	}
	log := logging.FromContext(ctx)

	out := &ApplyPrivacyOutput{
		Ephemeral:       uc.settings.Bool(port.SectionPrivacy, port.KeyClearOnExit),
		CookiePolicy:    ParseCookiePolicy(uc.settings.String(port.SectionPrivacy, port.KeyCookiePolicy)),
		AdsBlocked:      uc.settings.Bool(port.SectionPrivacy, port.KeyEnableAdBlocker),
		TrackersBlocked: uc.settings.Bool(port.SectionPrivacy, port.KeyBlockTrackers),
	}

	if out.Ephemeral {
		profile.SetCacheModel(port.CacheModelNoCache)
		profile.SetPersistentCookies(false)
	} else {
		profile.SetCacheModel(port.CacheModelWebBrowser)
		profile.SetPersistentCookies(true)
	}
	profile.SetCookieAcceptPolicy(out.CookiePolicy)

	// Always derived from the engine's base agent so toggling DNT off restores it.
	out.UserAgent = profile.BaseUserAgent()
	if uc.settings.Bool(port.SectionPrivacy, port.KeyDoNotTrack) {
		out.UserAgent = WithDoNotTrack(out.UserAgent)
	}
	profile.SetUserAgent(out.UserAgent)

	profile.SetJavaScriptEnabled(uc.settings.Bool(port.SectionPrivacy, port.KeyJavaScriptEnabled))
	profile.SetPopupsBlocked(uc.settings.Bool(port.SectionSecurity, port.KeyBlockPopups))
	profile.SetContentFilters(out.AdsBlocked, out.TrackersBlocked)

	log.Debug().
		Bool("ephemeral", out.Ephemeral).
		Bool("ads", out.AdsBlocked).
		Bool("trackers", out.TrackersBlocked).
		Str("user_agent", out.UserAgent).
		Msg("privacy settings applied")

	return out, nil
}

// WithDoNotTrack appends the DNT token to ua unless it is already present.
func WithDoNotTrack(ua string) string {
	if strings.Contains(ua, doNotTrackToken) {
		return ua
	}
	if ua == "" {
		return doNotTrackToken
	}
	return ua + " " + doNotTrackToken
}

// ParseCookiePolicy maps a setting value to an engine policy. Unknown values
// fall back to blocking third-party cookies.
func ParseCookiePolicy(value string) port.CookieAcceptPolicy {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case CookiePolicyAlways:
		return port.CookieAcceptAlways
	case CookiePolicyNever:
		return port.CookieAcceptNever
	default:
		return port.CookieAcceptNoThirdParty
	}
}
