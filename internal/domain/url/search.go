package url

import "strings"

// SearchEngine names a configured search provider.
type SearchEngine string

// Known search providers.
const (
	SearchDuckDuckGo SearchEngine = "duckduckgo"
	SearchGoogle     SearchEngine = "google"
	SearchBing       SearchEngine = "bing"
)

// DefaultSearchEngine is used whenever the configured provider is unknown.
const DefaultSearchEngine = SearchDuckDuckGo

// searchTemplates maps each provider to its query URL; %s receives the raw query.
var searchTemplates = map[SearchEngine]string{
	SearchDuckDuckGo: "https://duckduckgo.com/?q=%s",
	SearchGoogle:     "https://www.google.com/search?q=%s",
	SearchBing:       "https://www.bing.com/search?q=%s",
}

// SearchEngines returns the known providers in display order.
func SearchEngines() []SearchEngine {
	return []SearchEngine{SearchDuckDuckGo, SearchGoogle, SearchBing}
}

// ParseSearchEngine maps a config value to a provider.
func ParseSearchEngine(name string) (SearchEngine, bool) {
	engine := SearchEngine(strings.ToLower(strings.TrimSpace(name)))
	_, ok := searchTemplates[engine]
	return engine, ok
}

// Template returns the query URL template for the engine, falling back to
// DuckDuckGo for unknown providers.
func (e SearchEngine) Template() string {
	if tmpl, ok := searchTemplates[e]; ok {
		return tmpl
	}
	return searchTemplates[DefaultSearchEngine]
}

// SearchURL substitutes query verbatim into the engine template.
func (e SearchEngine) SearchURL(query string) string {
	return strings.Replace(e.Template(), "%s", query, 1)
}

// Resolve turns address-bar text into a navigable address.
//
//	"https://x.org"  → unchanged
//	"weather today"  → search URL (contains whitespace)
//	"localhost"      → search URL (no dot)
//	"github.com"     → "https://github.com"
//	""               → ""
func Resolve(input string, engine SearchEngine) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if HasScheme(input) {
		return input
	}
	if LooksLikeSearch(input) {
		return engine.SearchURL(input)
	}
	return "https://" + input
}
