package filtering

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Blocklist is an immutable set of blocked and excepted domains.
// A domain entry covers the domain itself and all of its subdomains.
type Blocklist struct {
	blocked    map[string]struct{}
	exceptions map[string]struct{}
	stats      Stats
}

// NewBlocklist builds a Blocklist from parsed rules.
func NewBlocklist(rules []Rule, stats Stats) *Blocklist {
	b := &Blocklist{
		blocked:    make(map[string]struct{}, len(rules)),
		exceptions: make(map[string]struct{}),
		stats:      stats,
	}
	for _, r := range rules {
		if r.Exception {
			b.exceptions[r.Host] = struct{}{}
			continue
		}
		b.blocked[r.Host] = struct{}{}
	}
	return b
}

// Merge returns a new Blocklist containing the rules of b and others.
func (b *Blocklist) Merge(others ...*Blocklist) *Blocklist {
	merged := &Blocklist{
		blocked:    make(map[string]struct{}, len(b.blocked)),
		exceptions: make(map[string]struct{}, len(b.exceptions)),
		stats:      b.stats,
	}
	for _, list := range append([]*Blocklist{b}, others...) {
		for host := range list.blocked {
			merged.blocked[host] = struct{}{}
		}
		for host := range list.exceptions {
			merged.exceptions[host] = struct{}{}
		}
	}
	for _, other := range others {
		merged.stats.Add(other.stats)
	}
	return merged
}

// Len returns the number of distinct blocked domains.
func (b *Blocklist) Len() int {
	return len(b.blocked)
}

// Stats reports what the source lists contained.
func (b *Blocklist) Stats() Stats {
	return b.stats
}

// Match reports whether a request to requestURL should be blocked when
// made from a page on firstPartyHost. Requests to the page's own site are
// never blocked, so visiting a listed domain directly still works.
func (b *Blocklist) Match(requestURL, firstPartyHost string) bool {
	host := hostOf(requestURL)
	if host == "" {
		return false
	}
	if sameSite(host, normalizeHost(firstPartyHost)) {
		return false
	}
	if b.covers(b.exceptions, host) {
		return false
	}
	return b.covers(b.blocked, host)
}

// covers walks host and each parent domain looking for an entry in set.
func (b *Blocklist) covers(set map[string]struct{}, host string) bool {
	for candidate := host; candidate != ""; {
		if _, ok := set[candidate]; ok {
			return true
		}
		idx := strings.IndexByte(candidate, '.')
		if idx < 0 {
			break
		}
		candidate = candidate[idx+1:]
	}
	return false
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return normalizeHost(parsed.Hostname())
}

func sameSite(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	a = strings.TrimPrefix(a, "www.")
	b = strings.TrimPrefix(b, "www.")
	return a == b || strings.HasSuffix(a, "."+b) || strings.HasSuffix(b, "."+a)
}

// WebKitRules converts the list to content blocker rules: block rules
// first, then exceptions so they override earlier matches. Rules only
// fire on third-party loads, matching Match.
func (b *Blocklist) WebKitRules() []WebKitRule {
	rules := make([]WebKitRule, 0, len(b.blocked)+len(b.exceptions))
	for _, host := range sortedHosts(b.blocked) {
		rules = append(rules, WebKitRule{
			Trigger: WebKitTrigger{URLFilter: hostURLFilter(host), LoadType: []string{LoadThirdParty}},
			Action:  WebKitAction{Type: ActionBlock},
		})
	}
	for _, host := range sortedHosts(b.exceptions) {
		rules = append(rules, WebKitRule{
			Trigger: WebKitTrigger{URLFilter: hostURLFilter(host)},
			Action:  WebKitAction{Type: ActionIgnorePreviousRule},
		})
	}
	return rules
}

// CompileJSON returns the WebKit content blocker JSON for the list.
func (b *Blocklist) CompileJSON() ([]byte, error) {
	data, err := json.Marshal(b.WebKitRules())
	if err != nil {
		return nil, fmt.Errorf("encode content blocker rules: %w", err)
	}
	return data, nil
}

// hostURLFilter matches any scheme, the host and its subdomains.
func hostURLFilter(host string) string {
	return `^[^:]+://+([^:/]+\.)?` + regexp.QuoteMeta(host) + `[:/]`
}

func sortedHosts(set map[string]struct{}) []string {
	hosts := make([]string, 0, len(set))
	for host := range set {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}
