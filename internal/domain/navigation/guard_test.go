package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// follow runs req through Decide and the guard, as the engine binding does.
func follow(g *UpgradeGuard, req Request) Decision {
	return g.Check(req, Decide(req, true))
}

func TestUpgradeGuard_BreaksHTTPSToHTTPLoop(t *testing.T) {
	g := NewUpgradeGuard(2)
	plain := "http://loop.example/"
	secure := "https://loop.example/"

	// Typed by the user.
	assert.Equal(t, Redirect, follow(g, Request{URL: plain, MainFrame: true}).Action)

	// The upgraded load, then the server bouncing back to http.
	assert.Equal(t, Allow, follow(g, Request{URL: secure, MainFrame: true, Redirect: true}).Action)
	assert.Equal(t, Redirect, follow(g, Request{URL: plain, MainFrame: true, Redirect: true}).Action)

	assert.Equal(t, Allow, follow(g, Request{URL: secure, MainFrame: true, Redirect: true}).Action)
	assert.Equal(t, Decision{Action: Block}, follow(g, Request{URL: plain, MainFrame: true, Redirect: true}))
}

func TestUpgradeGuard_NewNavigationResetsChain(t *testing.T) {
	g := NewUpgradeGuard(1)
	req := Request{URL: "http://example.com/", MainFrame: true}

	assert.Equal(t, Redirect, follow(g, req).Action)
	assert.Equal(t, Block, follow(g, Request{URL: req.URL, MainFrame: true, Redirect: true}).Action)

	// Clicking the link again is a fresh attempt.
	assert.Equal(t, Redirect, follow(g, req).Action)
}

func TestUpgradeGuard_IgnoresSubFrames(t *testing.T) {
	g := NewUpgradeGuard(1)
	sub := Request{URL: "http://ads.example/frame", MainFrame: false, Redirect: true}
	d := Decision{Action: Redirect, URL: "https://ads.example/frame"}

	assert.Equal(t, d, g.Check(sub, d))
	assert.Equal(t, d, g.Check(sub, d))
}

func TestUpgradeGuard_DefaultLimit(t *testing.T) {
	assert.Equal(t, DefaultUpgradeLimit, NewUpgradeGuard(0).limit)
}
