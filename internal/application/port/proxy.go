package port

import "context"

//go:generate mockgen -destination=mocks/mock_proxy.go -package=mocks github.com/bnema/medusa/internal/application/port ProxyManager,EngineProxy

// ProxyManager starts, verifies and stops the Tor SOCKS proxy. The boolean
// results mirror what the shell needs to decide; adapters log the cause.
type ProxyManager interface {
	// CheckInstalled reports whether a Tor proxy can be obtained at all.
	CheckInstalled(ctx context.Context) bool
	// SetupProxy makes a SOCKS proxy available. Idempotent while running.
	SetupProxy(ctx context.Context) bool
	// CheckConnection verifies that traffic through the proxy exits via Tor.
	CheckConnection(ctx context.Context) bool
	// DisableProxy releases the proxy. Safe in any state.
	DisableProxy(ctx context.Context)
	// SocksAddr is the proxy URI for the engine, e.g. socks5://127.0.0.1:9050.
	SocksAddr() string
}

// EngineProxy routes the engine's network session.
type EngineProxy interface {
	UseProxy(proxyURI string)
	UseDirect()
}
