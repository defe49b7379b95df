package webkit

import (
	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/rs/zerolog"

	"github.com/bnema/medusa/internal/application/port"
)

// EngineProxy routes the network session through a proxy. Calls must run
// on the main thread.
type EngineProxy struct {
	session *webkit.NetworkSession
	logger  zerolog.Logger
}

var _ port.EngineProxy = (*EngineProxy)(nil)

// NewEngineProxy creates an EngineProxy for wkCtx's session.
func NewEngineProxy(wkCtx *WebKitContext, logger zerolog.Logger) *EngineProxy {
	return &EngineProxy{
		session: wkCtx.Session(),
		logger:  logger.With().Str("component", "engine-proxy").Logger(),
	}
}

// UseProxy sends every request, DNS included, through proxyURI.
func (p *EngineProxy) UseProxy(proxyURI string) {
	if proxyURI == "" {
		p.UseDirect()
		return
	}
	p.session.SetProxySettings(webkit.NetworkProxyModeCustom, webkit.NewNetworkProxySettings(proxyURI, nil))
	p.logger.Info().Str("proxy", proxyURI).Msg("network session proxied")
}

// UseDirect removes any proxy from the session.
func (p *EngineProxy) UseDirect() {
	p.session.SetProxySettings(webkit.NetworkProxyModeNoProxy, nil)
	p.logger.Info().Msg("network session direct")
}
