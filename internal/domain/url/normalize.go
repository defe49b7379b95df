// Package url provides URL manipulation utilities for the browser.
package url

import (
	"net/url"
	"strings"
)

// recognizedSchemes are prefixes that mark input as an address already.
var recognizedSchemes = []string{
	"http://",
	"https://",
	"file://",
	"about:",
}

// HasScheme reports whether input starts with a scheme the shell navigates
// to verbatim.
func HasScheme(input string) bool {
	for _, prefix := range recognizedSchemes {
		if strings.HasPrefix(input, prefix) {
			return true
		}
	}
	return false
}

// LooksLikeSearch reports whether schemeless input should go to the search
// provider rather than be treated as a host name.
func LooksLikeSearch(input string) bool {
	return strings.ContainsAny(input, " \t\n") || !strings.Contains(input, ".")
}

// UpgradeScheme returns rawURL with an http scheme replaced by https.
// Anything else, including unparsable input, is returned unchanged.
func UpgradeScheme(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || !strings.EqualFold(parsed.Scheme, "http") {
		return rawURL
	}
	parsed.Scheme = "https"
	return parsed.String()
}

// Scheme returns the lower-cased scheme of rawURL, or "" when it has none.
func Scheme(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Scheme)
}
