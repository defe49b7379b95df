// Package navigation decides what happens to navigation requests before the
// engine acts on them.
package navigation

import (
	"github.com/bnema/medusa/internal/domain/url"
)

// Action is the outcome of a policy decision.
type Action int

const (
	// Allow lets the engine proceed with the request unchanged.
	Allow Action = iota
	// Redirect cancels the request and loads Decision.URL instead.
	Redirect
	// Block cancels the request.
	Block
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// Request describes a navigation the engine is about to perform.
type Request struct {
	URL       string
	MainFrame bool
	// Redirect marks a request that continues a redirect chain, either a
	// server redirect or the load that follows an https upgrade.
	Redirect bool
}

// Decision is the verdict for a Request. URL is only set for Redirect.
type Decision struct {
	Action Action
	URL    string
}

// Decide applies the HTTPS-only rule. Sub-frame requests are never touched,
// and only a plain http scheme on a main frame is rewritten.
func Decide(req Request, httpsOnly bool) Decision {
	if !req.MainFrame || !httpsOnly {
		return Decision{Action: Allow}
	}
	if url.Scheme(req.URL) != "http" {
		return Decision{Action: Allow}
	}
	return Decision{Action: Redirect, URL: url.UpgradeScheme(req.URL)}
}
