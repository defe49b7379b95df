// Package tor provides the SOCKS proxy the browser routes through when Tor
// is enabled. Embedded mode launches a private daemon with tornago; system
// mode adopts one already listening on the configured address.
package tor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nao1215/tornago"
	"golang.org/x/net/proxy"

	"github.com/bnema/medusa/internal/infrastructure/config"
	"github.com/bnema/medusa/internal/logging"
)

const defaultBinary = "tor"

// maxCheckBody caps how much of the check service response is read.
const maxCheckBody = 64 << 10

// daemon is a running tor process.
type daemon interface {
	SocksAddr() string
	Stop() error
}

// httpClient is the subset of *http.Client used for verification.
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Manager implements the proxy manager port. All methods are safe for
// concurrent use.
type Manager struct {
	cfg config.TorConfig

	mu        sync.Mutex
	process   daemon
	socksAddr string
	starting  *startAttempt

	lookPath    func(file string) (string, error)
	startDaemon func(ctx context.Context, cfg config.TorConfig) (daemon, error)
	probe       func(ctx context.Context, addr string) ProbeStatus
	newClient   func(mode config.TorMode, socksAddr string, timeout time.Duration) (httpClient, func(), error)
}

// startAttempt is a bring-up in progress. The lock is not held while it
// runs; DisableProxy cancels it instead of waiting.
type startAttempt struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Option customises a Manager.
type Option func(*Manager)

// WithProbe replaces the SOCKS5 handshake probe.
func WithProbe(fn func(ctx context.Context, addr string) ProbeStatus) Option {
	return func(m *Manager) { m.probe = fn }
}

// NewManager creates a manager for cfg. Nothing is started until SetupProxy.
func NewManager(cfg config.TorConfig, opts ...Option) *Manager {
	if cfg.Mode == "" {
		cfg.Mode = config.TorModeEmbedded
	}
	if cfg.SocksAddr == "" {
		cfg.SocksAddr = config.DefaultTorSocksAddr
	}
	if cfg.CheckURL == "" {
		cfg.CheckURL = config.DefaultTorCheckURL
	}
	m := &Manager{
		cfg:         cfg,
		lookPath:    exec.LookPath,
		startDaemon: startEmbedded,
		probe:       Probe,
		newClient:   newCheckClient,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mode reports the configured mode.
func (m *Manager) Mode() config.TorMode {
	return m.cfg.Mode
}

func (m *Manager) binary() string {
	if m.cfg.BinaryPath != "" {
		return m.cfg.BinaryPath
	}
	return defaultBinary
}

// CheckInstalled reports whether a proxy can be obtained: the tor binary in
// embedded mode, a live SOCKS5 listener in system mode.
func (m *Manager) CheckInstalled(ctx context.Context) bool {
	log := logging.FromContext(ctx).With().Str("component", "tor").Str("mode", string(m.cfg.Mode)).Logger()

	if m.cfg.Mode == config.TorModeSystem {
		status := m.probe(ctx, m.cfg.SocksAddr)
		log.Debug().Str("addr", m.cfg.SocksAddr).Str("status", status.String()).Msg("probed system tor")
		return status == ProbeOK
	}

	path, err := m.lookPath(m.binary())
	if err != nil {
		log.Debug().Err(err).Str("binary", m.binary()).Msg("tor binary not found")
		return false
	}
	log.Debug().Str("path", path).Msg("tor binary found")
	return true
}

// SetupProxy brings the proxy up. It returns true immediately when a proxy
// is already available. A concurrent caller waits for the start in progress.
func (m *Manager) SetupProxy(ctx context.Context) bool {
	log := logging.FromContext(ctx).With().Str("component", "tor").Logger()

	m.mu.Lock()
	if m.socksAddr != "" {
		m.mu.Unlock()
		return true
	}
	if pending := m.starting; pending != nil {
		m.mu.Unlock()
		select {
		case <-pending.done:
		case <-ctx.Done():
			return false
		}
		return m.Running()
	}
	startCtx, cancel := context.WithCancel(ctx)
	attempt := &startAttempt{cancel: cancel, done: make(chan struct{})}
	m.starting = attempt
	m.mu.Unlock()

	defer close(attempt.done)
	defer cancel()

	start := time.Now()
	addr, process, err := m.bringUp(startCtx)

	m.mu.Lock()
	canceled := m.starting != attempt || startCtx.Err() != nil
	if m.starting == attempt {
		m.starting = nil
	}
	if err == nil && !canceled {
		m.process = process
		m.socksAddr = addr
	}
	m.mu.Unlock()

	switch {
	case err != nil:
		log.Error().Err(err).Msg("failed to start tor")
		return false
	case canceled:
		log.Info().Msg("tor start canceled")
		if process != nil {
			if stopErr := process.Stop(); stopErr != nil {
				log.Warn().Err(stopErr).Msg("failed to stop canceled tor")
			}
		}
		return false
	}

	if process == nil {
		log.Info().Str("socks", addr).Msg("using system tor")
	} else {
		log.Info().Str("socks", addr).Dur("bootstrap", time.Since(start)).Msg("embedded tor started")
	}
	return true
}

// bringUp adopts the system daemon or launches the embedded one. process is
// nil in system mode.
func (m *Manager) bringUp(ctx context.Context) (string, daemon, error) {
	if m.cfg.Mode == config.TorModeSystem {
		if status := m.probe(ctx, m.cfg.SocksAddr); status != ProbeOK {
			return "", nil, fmt.Errorf("system tor at %s: %w", m.cfg.SocksAddr, status.Err())
		}
		return m.cfg.SocksAddr, nil, nil
	}

	process, err := m.startDaemon(ctx, m.cfg)
	if err != nil {
		return "", nil, err
	}
	return process.SocksAddr(), process, nil
}

// CheckConnection asks the check service whether requests exit via Tor.
func (m *Manager) CheckConnection(ctx context.Context) bool {
	log := logging.FromContext(ctx).With().Str("component", "tor").Logger()

	m.mu.Lock()
	addr := m.socksAddr
	m.mu.Unlock()
	if addr == "" {
		log.Warn().Err(ErrNotRunning).Msg("cannot verify tor")
		return false
	}

	err := m.verify(ctx, addr)
	if err == nil {
		log.Info().Msg("tor connection verified")
		return true
	}

	log.Warn().Err(err).Str("check_url", m.cfg.CheckURL).Msg("tor verification failed")
	if m.cfg.Mode == config.TorModeSystem {
		status := m.probe(ctx, addr)
		log.Info().Str("status", status.String()).Msg("socks5 probe after failed verification")
	}
	return false
}

func (m *Manager) verify(ctx context.Context, addr string) error {
	timeout := time.Duration(m.cfg.VerifyTimeout) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, closeClient, err := m.newClient(m.cfg.Mode, addr, timeout)
	if err != nil {
		return fmt.Errorf("create check client: %w", err)
	}
	defer closeClient()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.cfg.CheckURL, nil)
	if err != nil {
		return fmt.Errorf("build check request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("check service returned %s", resp.Status)
	}

	var body struct {
		IsTor bool `json:"IsTor"`
		IP    string
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxCheckBody)).Decode(&body); err != nil {
		return fmt.Errorf("decode check response: %w", err)
	}
	if !body.IsTor {
		return fmt.Errorf("%w (exit %s)", ErrExitNotTor, body.IP)
	}
	return nil
}

// DisableProxy stops the embedded daemon if one is running and forgets the
// proxy address. A start in progress is canceled without waiting for it; its
// daemon is stopped when the bootstrap returns.
func (m *Manager) DisableProxy(ctx context.Context) {
	m.mu.Lock()
	if m.starting != nil {
		m.starting.cancel()
		m.starting = nil
	}
	process := m.process
	m.process = nil
	m.socksAddr = ""
	m.mu.Unlock()

	if process == nil {
		return
	}
	if err := process.Stop(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("component", "tor").Msg("failed to stop embedded tor")
		return
	}
	logging.FromContext(ctx).Info().Str("component", "tor").Msg("embedded tor stopped")
}

// SocksAddr returns the proxy URI for the engine, or "" when not running.
func (m *Manager) SocksAddr() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.socksAddr == "" {
		return ""
	}
	return "socks5://" + m.socksAddr
}

// Running reports whether a proxy address is held.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.socksAddr != ""
}

func startEmbedded(ctx context.Context, cfg config.TorConfig) (daemon, error) {
	if cfg.BinaryPath != "" {
		prependPath(filepath.Dir(cfg.BinaryPath))
	}

	timeout := time.Duration(cfg.StartupTimeout) * time.Second
	launchCfg, err := tornago.NewTorLaunchConfig(
		tornago.WithTorSocksAddr(":0"),
		tornago.WithTorControlAddr(":0"),
		tornago.WithTorStartupTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("tor launch config: %w", err)
	}

	// Blocks until bootstrap completes or the startup timeout expires.
	process, err := tornago.StartTorDaemon(launchCfg)
	if err != nil {
		return nil, fmt.Errorf("start tor daemon: %w", err)
	}

	if ctx.Err() != nil {
		_ = process.Stop()
		return nil, ctx.Err()
	}
	return process, nil
}

// prependPath puts dir first on PATH so tornago resolves the configured binary.
func prependPath(dir string) {
	current := os.Getenv("PATH")
	for _, entry := range filepath.SplitList(current) {
		if entry == dir {
			return
		}
	}
	_ = os.Setenv("PATH", dir+string(os.PathListSeparator)+current)
}

// newCheckClient builds an HTTP client that dials through the proxy. The
// embedded daemon is reached with tornago's client, a system daemon with a
// plain SOCKS5 dialer.
func newCheckClient(mode config.TorMode, socksAddr string, timeout time.Duration) (httpClient, func(), error) {
	if mode == config.TorModeEmbedded {
		cfg, err := tornago.NewClientConfig(
			tornago.WithClientSocksAddr(socksAddr),
			tornago.WithClientRequestTimeout(timeout),
		)
		if err != nil {
			return nil, nil, err
		}
		client, err := tornago.NewClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		return client.HTTP(), func() { client.Close() }, nil
	}

	dialer, err := proxy.SOCKS5("tcp", socksAddr, nil, proxy.Direct)
	if err != nil {
		return nil, nil, fmt.Errorf("socks5 dialer: %w", err)
	}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		},
		DisableCompression: true,
		IdleConnTimeout:    30 * time.Second,
	}
	return &http.Client{Transport: transport, Timeout: timeout}, transport.CloseIdleConnections, nil
}

// TrimScheme strips a socks5:// prefix, for display.
func TrimScheme(uri string) string {
	return strings.TrimPrefix(uri, "socks5://")
}
