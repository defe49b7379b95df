package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/bnema/medusa/internal/application/port"
	"github.com/bnema/medusa/internal/domain/navigation"
	urlutil "github.com/bnema/medusa/internal/domain/url"
	"github.com/bnema/medusa/internal/logging"
)

// logURLMaxLen is the max length for URLs in log messages.
const logURLMaxLen = 60

// ErrEmptyAddress is returned when the address bar holds nothing to load.
var ErrEmptyAddress = errors.New("empty address")

// NavigateUseCase turns address bar text into loads and enforces the
// HTTPS-only policy on outgoing navigations.
type NavigateUseCase struct {
	settings port.SettingsStore
	guard    *navigation.UpgradeGuard
}

// NewNavigateUseCase creates a new navigation use case.
func NewNavigateUseCase(settings port.SettingsStore) *NavigateUseCase {
	return &NavigateUseCase{
		settings: settings,
		guard:    navigation.NewUpgradeGuard(navigation.DefaultUpgradeLimit),
	}
}

// NavigateInput contains parameters for navigation.
type NavigateInput struct {
	Text    string
	Browser port.Browser
}

// NavigateOutput contains the result of navigation.
type NavigateOutput struct {
	URL string
}

// SearchEngine returns the configured engine, falling back to the default
// when the stored name is unknown.
func (uc *NavigateUseCase) SearchEngine() urlutil.SearchEngine {
	engine, ok := urlutil.ParseSearchEngine(uc.settings.String(port.SectionBrowser, port.KeySearchEngine))
	if !ok {
		return urlutil.DefaultSearchEngine
	}
	return engine
}

// Resolve maps address bar text to the URL that should be loaded.
func (uc *NavigateUseCase) Resolve(text string) string {
	return urlutil.Resolve(text, uc.SearchEngine())
}

// Execute resolves the input and loads it.
func (uc *NavigateUseCase) Execute(ctx context.Context, input NavigateInput) (*NavigateOutput, error) {
	log := logging.FromContext(ctx)

	target := uc.Resolve(input.Text)
	if target == "" {
		return nil, ErrEmptyAddress
	}

	log.Debug().
		Str("input", logging.TruncateURL(input.Text, logURLMaxLen)).
		Str("url", logging.TruncateURL(target, logURLMaxLen)).
		Msg("navigating")

	input.Browser.LoadURI(target)
	return &NavigateOutput{URL: target}, nil
}

// HomeURL is the configured home page.
func (uc *NavigateUseCase) HomeURL() string {
	return strings.TrimSpace(uc.settings.String(port.SectionBrowser, port.KeyHomePage))
}

// Home loads the configured home page.
func (uc *NavigateUseCase) Home(ctx context.Context, browser port.Browser) (*NavigateOutput, error) {
	home := uc.HomeURL()
	if home == "" {
		return nil, ErrEmptyAddress
	}
	logging.FromContext(ctx).Debug().Str("url", home).Msg("loading home page")
	browser.LoadURI(home)
	return &NavigateOutput{URL: home}, nil
}

// Decide applies the HTTPS-only setting to a pending navigation. A site
// that keeps redirecting its https URL back to http is blocked instead of
// being upgraded forever.
func (uc *NavigateUseCase) Decide(ctx context.Context, req navigation.Request) navigation.Decision {
	decision := navigation.Decide(req, uc.settings.Bool(port.SectionSecurity, port.KeyHTTPSOnly))
	decision = uc.guard.Check(req, decision)

	log := logging.FromContext(ctx)
	switch decision.Action {
	case navigation.Redirect:
		log.Debug().
			Str("from", logging.TruncateURL(req.URL, logURLMaxLen)).
			Str("to", logging.TruncateURL(decision.URL, logURLMaxLen)).
			Msg("upgrading navigation to https")
	case navigation.Block:
		log.Warn().
			Str("url", logging.TruncateURL(req.URL, logURLMaxLen)).
			Msg("site keeps redirecting to http, navigation blocked")
	}
	return decision
}
