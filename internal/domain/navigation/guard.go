package navigation

import "sync"

// DefaultUpgradeLimit is how many times one URL may be upgraded inside a
// single redirect chain.
const DefaultUpgradeLimit = 2

// UpgradeGuard stops https upgrades from looping when a server answers the
// https URL with a redirect back to http.
type UpgradeGuard struct {
	limit int

	mu     sync.Mutex
	counts map[string]int
}

// NewUpgradeGuard creates a guard. A limit below one uses DefaultUpgradeLimit.
func NewUpgradeGuard(limit int) *UpgradeGuard {
	if limit < 1 {
		limit = DefaultUpgradeLimit
	}
	return &UpgradeGuard{limit: limit, counts: make(map[string]int)}
}

// Check returns d, or a Block decision once req.URL has been upgraded limit
// times in the current chain. A main-frame request that is not a redirect
// starts a new chain.
func (g *UpgradeGuard) Check(req Request, d Decision) Decision {
	if !req.MainFrame {
		return d
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !req.Redirect {
		clear(g.counts)
	}
	if d.Action != Redirect {
		return d
	}
	if g.counts[req.URL] >= g.limit {
		return Decision{Action: Block}
	}
	g.counts[req.URL]++
	return d
}
