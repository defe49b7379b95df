package filtering

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Rule is a single parsed list entry.
type Rule struct {
	Host      string
	Exception bool
}

// sinkAddresses are the targets hosts files use to null-route a name.
var sinkAddresses = map[string]bool{
	"0.0.0.0":   true,
	"127.0.0.1": true,
	"::":        true,
	"::1":       true,
}

// reservedHosts appear in hosts files but must never be blocked.
var reservedHosts = map[string]bool{
	"localhost":             true,
	"localhost.localdomain": true,
	"local":                 true,
	"broadcasthost":         true,
	"ip6-localhost":         true,
	"ip6-loopback":          true,
	"0.0.0.0":               true,
}

// Parse reads a block list and returns the rules it understood.
// Comment lines start with '!', '#' or '['. Lines with ABP options,
// paths, wildcards or cosmetic selectors are counted as unsupported.
func Parse(r io.Reader) ([]Rule, Stats, error) {
	var (
		rules []Rule
		stats Stats
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if isComment(line) {
			stats.Comments++
			continue
		}

		rule, ok := parseLine(line)
		if !ok {
			stats.Unsupported++
			continue
		}
		if rule.Exception {
			stats.Exceptions++
		} else {
			stats.Blocked++
		}
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("read block list: %w", err)
	}
	return rules, stats, nil
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "!") || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "[")
}

func parseLine(line string) (Rule, bool) {
	if strings.HasPrefix(line, "@@") {
		host, ok := parseAnchor(line[2:])
		return Rule{Host: host, Exception: true}, ok
	}
	if strings.HasPrefix(line, "||") {
		host, ok := parseAnchor(line)
		return Rule{Host: host}, ok
	}

	if isCosmetic(line) {
		return Rule{}, false
	}

	// Inline comments in hosts files.
	if idx := strings.Index(line, "#"); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}

	fields := strings.Fields(line)
	switch {
	case len(fields) >= 2 && sinkAddresses[fields[0]]:
		host := normalizeHost(fields[1])
		if reservedHosts[host] || !isHostname(host) {
			return Rule{}, false
		}
		return Rule{Host: host}, true
	case len(fields) == 1:
		host := normalizeHost(fields[0])
		if reservedHosts[host] || !isHostname(host) || !strings.Contains(host, ".") {
			return Rule{}, false
		}
		return Rule{Host: host}, true
	default:
		return Rule{}, false
	}
}

func isCosmetic(line string) bool {
	for _, marker := range []string{"##", "#@#", "#?#", "#$#"} {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// parseAnchor handles "||host^" with nothing after the separator.
func parseAnchor(s string) (string, bool) {
	if !strings.HasPrefix(s, "||") {
		return "", false
	}
	s = strings.TrimPrefix(s, "||")
	s = strings.TrimSuffix(s, "^")
	host := normalizeHost(s)
	if !isHostname(host) || !strings.Contains(host, ".") {
		return "", false
	}
	return host, true
}

func normalizeHost(h string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(h)), ".")
}

func isHostname(h string) bool {
	if h == "" || len(h) > 253 {
		return false
	}
	for _, label := range strings.Split(h, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		for _, c := range label {
			switch {
			case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
			default:
				return false
			}
		}
	}
	return true
}
