package filtering

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustList(t *testing.T, src string) *Blocklist {
	t.Helper()
	rules, stats, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	return NewBlocklist(rules, stats)
}

func TestBlocklistMatch(t *testing.T) {
	list := mustList(t, `
||ads.example.com^
||tracker.net^
@@||safe.tracker.net^
`)

	tests := []struct {
		name       string
		requestURL string
		firstParty string
		want       bool
	}{
		{"exact host", "https://ads.example.com/banner.js", "news.org", true},
		{"subdomain", "https://cdn.ads.example.com/x.png", "news.org", true},
		{"parent not blocked", "https://example.com/", "news.org", false},
		{"lookalike suffix", "https://badads.example.com/", "news.org", false},
		{"exception wins", "https://safe.tracker.net/pixel", "news.org", false},
		{"exception subdomain", "https://eu.safe.tracker.net/pixel", "news.org", false},
		{"sibling of exception", "https://api.tracker.net/pixel", "news.org", true},
		{"case insensitive", "https://ADS.Example.COM/", "news.org", true},
		{"first party visit", "https://ads.example.com/", "ads.example.com", false},
		{"first party subdomain", "https://img.tracker.net/a.gif", "www.tracker.net", false},
		{"no first party", "https://tracker.net/", "", true},
		{"unparsable", "::::", "news.org", false},
		{"no host", "about:blank", "news.org", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, list.Match(tt.requestURL, tt.firstParty))
		})
	}
}

func TestBlocklistMerge(t *testing.T) {
	a := mustList(t, "||a.com^\n")
	b := mustList(t, "||b.com^\n@@||ok.a.com^\n")

	merged := a.Merge(b)

	assert.Equal(t, 2, merged.Len())
	assert.Equal(t, 1, a.Len(), "merge must not mutate the receiver")
	assert.True(t, merged.Match("https://b.com/", ""))
	assert.False(t, merged.Match("https://ok.a.com/", ""))
	assert.Equal(t, Stats{Blocked: 2, Exceptions: 1}, merged.Stats())
}

func TestWebKitRules(t *testing.T) {
	list := mustList(t, "||b.example^\n||a.example^\n@@||ok.a.example^\n")

	rules := list.WebKitRules()
	require.Len(t, rules, 3)

	assert.Equal(t, ActionBlock, rules[0].Action.Type)
	assert.Equal(t, []string{LoadThirdParty}, rules[0].Trigger.LoadType)
	assert.Equal(t, ActionBlock, rules[1].Action.Type)
	assert.Equal(t, ActionIgnorePreviousRule, rules[2].Action.Type, "exceptions come last")

	re := regexp.MustCompile(rules[0].Trigger.URLFilter)
	assert.True(t, re.MatchString("https://a.example/x"))
	assert.True(t, re.MatchString("http://cdn.a.example:8080/x"))
	assert.False(t, re.MatchString("https://aXexample/x"))
	assert.False(t, re.MatchString("https://a.example.org/"))
}

func TestCompileJSON(t *testing.T) {
	list := mustList(t, "||ads.example^\n")

	data, err := list.CompileJSON()
	require.NoError(t, err)

	var decoded []map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "block", decoded[0]["action"]["type"])
	assert.Contains(t, decoded[0]["trigger"]["url-filter"], `ads\.example`)
}

func TestLoadBuiltin(t *testing.T) {
	for _, kind := range []ListKind{ListAds, ListTrackers} {
		list, err := LoadBuiltin(kind)
		require.NoError(t, err)
		assert.Greater(t, list.Len(), 10, "list %s", kind)
		assert.Zero(t, list.Stats().Unsupported, "list %s", kind)
	}

	ads, err := LoadBuiltin(ListAds)
	require.NoError(t, err)
	assert.True(t, ads.Match("https://securepubads.doubleclick.net/tag.js", "news.example"))

	trackers, err := LoadBuiltin(ListTrackers)
	require.NoError(t, err)
	assert.True(t, trackers.Match("https://www.google-analytics.com/analytics.js", "news.example"))
}
