package tor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/medusa/internal/infrastructure/config"
)

type fakeDaemon struct {
	addr    string
	stopped int
	stopErr error
}

func (d *fakeDaemon) SocksAddr() string { return d.addr }

func (d *fakeDaemon) Stop() error {
	d.stopped++
	return d.stopErr
}

func plainClient(config.TorMode, string, time.Duration) (httpClient, func(), error) {
	return http.DefaultClient, func() {}, nil
}

func checkServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func embeddedManager(t *testing.T, d *fakeDaemon, checkURL string) *Manager {
	t.Helper()
	m := NewManager(config.TorConfig{Mode: config.TorModeEmbedded, CheckURL: checkURL, VerifyTimeout: 5})
	m.lookPath = func(string) (string, error) { return "/usr/bin/tor", nil }
	m.startDaemon = func(context.Context, config.TorConfig) (daemon, error) { return d, nil }
	m.newClient = plainClient
	return m
}

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager(config.TorConfig{})
	assert.Equal(t, config.TorModeEmbedded, m.Mode())
	assert.Equal(t, config.DefaultTorSocksAddr, m.cfg.SocksAddr)
	assert.Equal(t, config.DefaultTorCheckURL, m.cfg.CheckURL)
	assert.Empty(t, m.SocksAddr())
	assert.False(t, m.Running())
}

func TestCheckInstalled_Embedded(t *testing.T) {
	m := NewManager(config.TorConfig{BinaryPath: "/opt/tor/bin/tor"})

	var looked string
	m.lookPath = func(file string) (string, error) {
		looked = file
		return "", errors.New("not found")
	}
	assert.False(t, m.CheckInstalled(context.Background()))
	assert.Equal(t, "/opt/tor/bin/tor", looked)

	m.lookPath = func(file string) (string, error) { return file, nil }
	assert.True(t, m.CheckInstalled(context.Background()))
}

func TestCheckInstalled_SystemUsesProbe(t *testing.T) {
	status := ProbeCannotConnect
	m := NewManager(config.TorConfig{Mode: config.TorModeSystem, SocksAddr: "127.0.0.1:9150"},
		WithProbe(func(_ context.Context, addr string) ProbeStatus {
			assert.Equal(t, "127.0.0.1:9150", addr)
			return status
		}))

	assert.False(t, m.CheckInstalled(context.Background()))
	status = ProbeOK
	assert.True(t, m.CheckInstalled(context.Background()))
}

func TestSetupProxy_EmbeddedIsIdempotent(t *testing.T) {
	d := &fakeDaemon{addr: "127.0.0.1:40123"}
	m := embeddedManager(t, d, "")

	starts := 0
	m.startDaemon = func(context.Context, config.TorConfig) (daemon, error) {
		starts++
		return d, nil
	}

	require.True(t, m.SetupProxy(context.Background()))
	require.True(t, m.SetupProxy(context.Background()))
	assert.Equal(t, 1, starts)
	assert.Equal(t, "socks5://127.0.0.1:40123", m.SocksAddr())
}

func TestSetupProxy_EmbeddedFailure(t *testing.T) {
	m := NewManager(config.TorConfig{})
	m.startDaemon = func(context.Context, config.TorConfig) (daemon, error) {
		return nil, errors.New("bootstrap timed out")
	}
	assert.False(t, m.SetupProxy(context.Background()))
	assert.Empty(t, m.SocksAddr())
}

func TestSetupProxy_System(t *testing.T) {
	m := NewManager(config.TorConfig{Mode: config.TorModeSystem},
		WithProbe(func(context.Context, string) ProbeStatus { return ProbeOK }))
	require.True(t, m.SetupProxy(context.Background()))
	assert.Equal(t, "socks5://"+config.DefaultTorSocksAddr, m.SocksAddr())

	m.DisableProxy(context.Background())
	assert.Empty(t, m.SocksAddr())
}

func TestCheckConnection(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{name: "tor exit", status: http.StatusOK, body: `{"IsTor":true,"IP":"185.220.101.1"}`, want: true},
		{name: "clear exit", status: http.StatusOK, body: `{"IsTor":false,"IP":"203.0.113.9"}`, want: false},
		{name: "server error", status: http.StatusBadGateway, body: "", want: false},
		{name: "garbage", status: http.StatusOK, body: "<html>", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := checkServer(t, tt.status, tt.body)
			m := embeddedManager(t, &fakeDaemon{addr: "127.0.0.1:40123"}, srv.URL)
			require.True(t, m.SetupProxy(context.Background()))
			assert.Equal(t, tt.want, m.CheckConnection(context.Background()))
		})
	}
}

func TestCheckConnection_NotRunning(t *testing.T) {
	m := NewManager(config.TorConfig{})
	assert.False(t, m.CheckConnection(context.Background()))
}

func TestCheckConnection_SystemFallsBackToProbe(t *testing.T) {
	probes := 0
	m := NewManager(config.TorConfig{Mode: config.TorModeSystem, CheckURL: "http://127.0.0.1:1/unreachable", VerifyTimeout: 1},
		WithProbe(func(context.Context, string) ProbeStatus {
			probes++
			return ProbeOK
		}))
	m.newClient = plainClient

	require.True(t, m.SetupProxy(context.Background()))
	assert.False(t, m.CheckConnection(context.Background()))
	assert.Equal(t, 2, probes)
}

func TestDisableProxy_StopsDaemonOnce(t *testing.T) {
	d := &fakeDaemon{addr: "127.0.0.1:40123"}
	m := embeddedManager(t, d, "")

	m.DisableProxy(context.Background())
	require.True(t, m.SetupProxy(context.Background()))
	m.DisableProxy(context.Background())
	m.DisableProxy(context.Background())

	assert.Equal(t, 1, d.stopped)
	assert.False(t, m.Running())
}

// gatedStart returns a startDaemon that blocks until release is closed.
func gatedStart(d *fakeDaemon) (start func(context.Context, config.TorConfig) (daemon, error), started, release chan struct{}) {
	started = make(chan struct{})
	release = make(chan struct{})
	start = func(context.Context, config.TorConfig) (daemon, error) {
		close(started)
		<-release
		return d, nil
	}
	return start, started, release
}

func TestDisableProxy_DoesNotWaitForBootstrap(t *testing.T) {
	d := &fakeDaemon{addr: "127.0.0.1:40123"}
	m := embeddedManager(t, d, "")
	var started, release chan struct{}
	m.startDaemon, started, release = gatedStart(d)

	result := make(chan bool, 1)
	go func() { result <- m.SetupProxy(context.Background()) }()
	<-started

	disabled := make(chan struct{})
	go func() {
		m.DisableProxy(context.Background())
		close(disabled)
	}()
	select {
	case <-disabled:
	case <-time.After(time.Second):
		t.Fatal("DisableProxy blocked on the bootstrap in progress")
	}

	close(release)
	assert.False(t, <-result)
	assert.Equal(t, 1, d.stopped, "daemon arriving after cancel is stopped")
	assert.False(t, m.Running())
	assert.Empty(t, m.SocksAddr())
}

func TestSetupProxy_ConcurrentCallerWaitsForStart(t *testing.T) {
	d := &fakeDaemon{addr: "127.0.0.1:40123"}
	m := embeddedManager(t, d, "")
	starts := 0
	var started, release chan struct{}
	var gated func(context.Context, config.TorConfig) (daemon, error)
	gated, started, release = gatedStart(d)
	m.startDaemon = func(ctx context.Context, cfg config.TorConfig) (daemon, error) {
		starts++
		return gated(ctx, cfg)
	}

	first := make(chan bool, 1)
	go func() { first <- m.SetupProxy(context.Background()) }()
	<-started

	second := make(chan bool, 1)
	go func() { second <- m.SetupProxy(context.Background()) }()

	close(release)
	assert.True(t, <-first)
	assert.True(t, <-second)
	assert.Equal(t, 1, starts)
	assert.Equal(t, 0, d.stopped)
}

func TestTrimScheme(t *testing.T) {
	assert.Equal(t, "127.0.0.1:9050", TrimScheme("socks5://127.0.0.1:9050"))
	assert.Equal(t, "127.0.0.1:9050", TrimScheme("127.0.0.1:9050"))
}
