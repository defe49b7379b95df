package tor

import "errors"

var (
	// ErrTorNotInstalled means no tor binary is available for embedded mode.
	ErrTorNotInstalled = errors.New("tor binary not found")

	// ErrNotRunning is returned when an operation needs a proxy that is not up.
	ErrNotRunning = errors.New("tor proxy is not running")

	// ErrProxyNotTor means the address answered but not as a SOCKS5 proxy.
	ErrProxyNotTor = errors.New("proxy is not a Tor SOCKS5 proxy")

	// ErrProxyCannotConnect means nothing accepted a TCP connection at the address.
	ErrProxyCannotConnect = errors.New("cannot connect to Tor proxy")

	// ErrProxyTimeout means the proxy did not answer in time.
	ErrProxyTimeout = errors.New("timeout connecting to Tor proxy")

	// ErrExitNotTor means the check service saw a non-Tor exit.
	ErrExitNotTor = errors.New("traffic does not exit through Tor")
)

// ProbeStatus is the outcome of a SOCKS5 handshake probe.
type ProbeStatus int

const (
	ProbeOK ProbeStatus = iota
	ProbeWrongType
	ProbeCannotConnect
	ProbeTimeout
)

func (s ProbeStatus) String() string {
	switch s {
	case ProbeOK:
		return "ok"
	case ProbeWrongType:
		return "not socks5"
	case ProbeCannotConnect:
		return "cannot connect"
	case ProbeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Err maps the status to a sentinel error, nil for ProbeOK.
func (s ProbeStatus) Err() error {
	switch s {
	case ProbeOK:
		return nil
	case ProbeWrongType:
		return ErrProxyNotTor
	case ProbeCannotConnect:
		return ErrProxyCannotConnect
	case ProbeTimeout:
		return ErrProxyTimeout
	default:
		return errors.New("unknown probe status")
	}
}
