package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/medusa/internal/application/port"
	"github.com/bnema/medusa/internal/application/port/mocks"
	"github.com/bnema/medusa/internal/domain/proxy"
)

const testSocks = "socks5://127.0.0.1:9050"

type proxyFixture struct {
	manager  *mocks.MockProxyManager
	engine   *mocks.MockEngineProxy
	notifier *mocks.MockNotifier
	settings *memSettings
	uc       *ManageProxyUseCase

	mu     sync.Mutex
	states []proxy.State
}

func newProxyFixture(t *testing.T, ui port.Dispatcher) *proxyFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &proxyFixture{
		manager:  mocks.NewMockProxyManager(ctrl),
		engine:   mocks.NewMockEngineProxy(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
		settings: settingsWith(map[string]any{"security.enable_tor": true}),
	}
	f.uc = NewManageProxyUseCase(f.manager, f.engine, f.settings, f.notifier, ui)
	f.uc.OnTransition(func(_, to proxy.State) {
		f.mu.Lock()
		f.states = append(f.states, to)
		f.mu.Unlock()
	})
	return f
}

func (f *proxyFixture) observed() []proxy.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]proxy.State(nil), f.states...)
}

func TestManageProxy_EnableSuccess(t *testing.T) {
	f := newProxyFixture(t, nil)
	ctx := context.Background()

	gomock.InOrder(
		f.manager.EXPECT().CheckInstalled(gomock.Any()).Return(true),
		f.manager.EXPECT().SetupProxy(gomock.Any()).Return(true),
		f.manager.EXPECT().SocksAddr().Return(testSocks),
		f.engine.EXPECT().UseProxy(testSocks),
		f.manager.EXPECT().CheckConnection(gomock.Any()).Return(true),
	)

	res := f.uc.Enable(ctx)
	assert.Equal(t, proxy.Enabled, res.State)
	assert.True(t, res.Verified)
	assert.True(t, res.Routed())
	assert.Nil(t, res.Warning)
	require.NoError(t, res.Err)
	assert.True(t, f.uc.Verified())
	assert.True(t, f.settings.Bool(port.SectionSecurity, port.KeyEnableTor))
	assert.Equal(t, []proxy.State{proxy.Checking, proxy.ProxyStarting, proxy.Verifying, proxy.Enabled}, f.observed())
}

func TestManageProxy_NotInstalledRevertsSetting(t *testing.T) {
	f := newProxyFixture(t, nil)

	f.manager.EXPECT().CheckInstalled(gomock.Any()).Return(false)
	f.engine.EXPECT().UseDirect()
	f.notifier.EXPECT().Warn("Tor Not Found", proxy.WarnNotInstalled.Message)

	res := f.uc.Enable(context.Background())
	assert.Equal(t, proxy.Disabled, res.State)
	require.ErrorIs(t, res.Err, ErrProxyNotInstalled)
	require.NotNil(t, res.Warning)
	assert.Equal(t, proxy.WarnNotInstalled, *res.Warning)
	assert.False(t, f.settings.Bool(port.SectionSecurity, port.KeyEnableTor))
	assert.Equal(t, proxy.Disabled, f.uc.State())
	assert.Equal(t, []proxy.State{proxy.Checking, proxy.Disabled}, f.observed())
}

func TestManageProxy_SetupFailureRevertsSetting(t *testing.T) {
	f := newProxyFixture(t, nil)

	f.manager.EXPECT().CheckInstalled(gomock.Any()).Return(true)
	f.manager.EXPECT().SetupProxy(gomock.Any()).Return(false)
	f.manager.EXPECT().DisableProxy(gomock.Any())
	f.engine.EXPECT().UseDirect()
	f.notifier.EXPECT().Warn(proxy.WarnStartFailed.Title, proxy.WarnStartFailed.Message)

	res := f.uc.Enable(context.Background())
	assert.Equal(t, proxy.Disabled, res.State)
	require.ErrorIs(t, res.Err, ErrProxyStartFailed)
	assert.False(t, f.settings.Bool(port.SectionSecurity, port.KeyEnableTor))
}

func TestManageProxy_VerifyFailureStaysEnabled(t *testing.T) {
	f := newProxyFixture(t, nil)

	f.manager.EXPECT().CheckInstalled(gomock.Any()).Return(true)
	f.manager.EXPECT().SetupProxy(gomock.Any()).Return(true)
	f.manager.EXPECT().SocksAddr().Return(testSocks)
	f.engine.EXPECT().UseProxy(testSocks)
	f.manager.EXPECT().CheckConnection(gomock.Any()).Return(false)
	f.notifier.EXPECT().Warn(proxy.WarnUnverified.Title, proxy.WarnUnverified.Message)

	res := f.uc.Enable(context.Background())
	assert.Equal(t, proxy.Enabled, res.State)
	assert.True(t, res.Routed())
	assert.False(t, res.Verified)
	require.ErrorIs(t, res.Err, ErrProxyUnverified)
	assert.True(t, f.settings.Bool(port.SectionSecurity, port.KeyEnableTor))
	assert.Empty(t, f.settings.updates)
}

func TestManageProxy_DisableAlwaysTearsDown(t *testing.T) {
	f := newProxyFixture(t, nil)

	f.manager.EXPECT().DisableProxy(gomock.Any()).Times(2)
	f.engine.EXPECT().UseDirect().Times(2)

	f.uc.Disable(context.Background())
	f.uc.Disable(context.Background())
	assert.Equal(t, proxy.Disabled, f.uc.State())
	assert.Empty(t, f.observed())
}

func TestManageProxy_EnableAsyncDeliversThroughDispatcher(t *testing.T) {
	var dispatched int
	var dmu sync.Mutex
	ui := port.DispatchFunc(func(fn func()) {
		dmu.Lock()
		dispatched++
		dmu.Unlock()
		fn()
	})
	f := newProxyFixture(t, ui)

	f.manager.EXPECT().CheckInstalled(gomock.Any()).Return(true)
	f.manager.EXPECT().SetupProxy(gomock.Any()).Return(true)
	f.manager.EXPECT().SocksAddr().Return(testSocks)
	f.engine.EXPECT().UseProxy(testSocks)
	f.manager.EXPECT().CheckConnection(gomock.Any()).Return(true)

	done := make(chan proxy.Result, 1)
	f.uc.EnableAsync(context.Background(), func(r proxy.Result) { done <- r })

	select {
	case res := <-done:
		assert.Equal(t, proxy.Enabled, res.State)
	case <-time.After(5 * time.Second):
		t.Fatal("enable did not finish")
	}

	dmu.Lock()
	defer dmu.Unlock()
	assert.Greater(t, dispatched, 1)
}

func TestManageProxy_DisableSupersedesPendingEnable(t *testing.T) {
	f := newProxyFixture(t, nil)

	release := make(chan struct{})
	started := make(chan struct{})

	f.manager.EXPECT().CheckInstalled(gomock.Any()).Return(true)
	f.manager.EXPECT().SetupProxy(gomock.Any()).DoAndReturn(func(context.Context) bool {
		close(started)
		<-release
		return true
	})
	// Once from Disable, once from the superseded run cleaning up.
	f.manager.EXPECT().DisableProxy(gomock.Any()).Times(2)
	f.engine.EXPECT().UseDirect()

	done := make(chan proxy.Result, 1)
	f.uc.EnableAsync(context.Background(), func(r proxy.Result) { done <- r })

	<-started
	f.uc.Disable(context.Background())
	close(release)

	select {
	case res := <-done:
		assert.Equal(t, proxy.Disabled, res.State)
		require.ErrorIs(t, res.Err, ErrProxySuperseded)
	case <-time.After(5 * time.Second):
		t.Fatal("enable did not finish")
	}
	assert.Equal(t, proxy.Disabled, f.uc.State())
}

func TestManageProxy_DisableDuringVerifyKeepsDisabled(t *testing.T) {
	f := newProxyFixture(t, nil)
	ctx := context.Background()

	f.manager.EXPECT().CheckInstalled(gomock.Any()).Return(true)
	f.manager.EXPECT().SetupProxy(gomock.Any()).Return(true)
	f.manager.EXPECT().SocksAddr().Return(testSocks)
	f.engine.EXPECT().UseProxy(testSocks)
	f.manager.EXPECT().CheckConnection(gomock.Any()).DoAndReturn(func(context.Context) bool {
		f.uc.Disable(ctx)
		return true
	})
	f.manager.EXPECT().DisableProxy(gomock.Any())
	f.engine.EXPECT().UseDirect()

	res := f.uc.Enable(ctx)

	require.ErrorIs(t, res.Err, ErrProxySuperseded)
	assert.Equal(t, proxy.Disabled, f.uc.State())
	assert.False(t, f.uc.Verified())
	assert.Equal(t, []proxy.State{proxy.Checking, proxy.ProxyStarting, proxy.Verifying, proxy.Disabled}, f.observed())
}

func TestManageProxy_StaleTransitionIsIgnored(t *testing.T) {
	f := newProxyFixture(t, nil)
	ctx := context.Background()

	stale := f.uc.nextGeneration(true)
	f.manager.EXPECT().DisableProxy(gomock.Any())
	f.engine.EXPECT().UseDirect()
	f.uc.Disable(ctx)

	assert.False(t, f.uc.transition(ctx, port.Inline, stale, proxy.Verifying))
	assert.Equal(t, proxy.Disabled, f.uc.State())
	assert.Empty(t, f.observed())
}
