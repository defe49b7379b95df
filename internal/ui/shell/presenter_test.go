package shell

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/medusa/internal/application/port"
	"github.com/bnema/medusa/internal/application/port/mocks"
	"github.com/bnema/medusa/internal/application/usecase"
	"github.com/bnema/medusa/internal/domain/navigation"
	"github.com/bnema/medusa/internal/domain/proxy"
)

type fakeView struct {
	address     string
	statuses    []string
	back, fwd   bool
	proxyStates []proxy.State
	settings    int
}

func (v *fakeView) SetAddress(text string)                { v.address = text }
func (v *fakeView) SetStatus(text string)                 { v.statuses = append(v.statuses, text) }
func (v *fakeView) SetNavigationState(back, forward bool) { v.back, v.fwd = back, forward }
func (v *fakeView) SetProxyState(state proxy.State)       { v.proxyStates = append(v.proxyStates, state) }
func (v *fakeView) ShowSettings()                         { v.settings++ }
func (v *fakeView) lastStatus() string                    { return v.statuses[len(v.statuses)-1] }

type fakePrivacy struct{ runs int }

func (f *fakePrivacy) Execute(context.Context, port.Profile) (*usecase.ApplyPrivacyOutput, error) {
	f.runs++
	return &usecase.ApplyPrivacyOutput{}, nil
}

type fakeProxy struct {
	enables  int
	disables int
	observer func(from, to proxy.State)

	// hold keeps the enable in flight until release is called.
	hold    bool
	pending func(proxy.Result)
}

func (f *fakeProxy) State() proxy.State { return proxy.Disabled }

func (f *fakeProxy) EnableAsync(_ context.Context, done func(proxy.Result)) {
	f.enables++
	if f.hold {
		f.pending = done
		return
	}
	done(proxy.Result{State: proxy.Enabled, Verified: true})
}

func (f *fakeProxy) release(result proxy.Result) {
	done := f.pending
	f.pending = nil
	done(result)
}

func (f *fakeProxy) Disable(context.Context) { f.disables++ }

func (f *fakeProxy) OnTransition(fn func(from, to proxy.State)) { f.observer = fn }

type fakeHistory struct {
	visits []string
	titles map[string]string
}

func (f *fakeHistory) RecordVisit(_ context.Context, rawURL string) {
	f.visits = append(f.visits, rawURL)
}

func (f *fakeHistory) UpdateTitle(_ context.Context, rawURL, title string) error {
	if f.titles == nil {
		f.titles = map[string]string{}
	}
	f.titles[rawURL] = title
	return nil
}

type fakeShutdown struct {
	runs int
	err  error
}

func (f *fakeShutdown) Execute(context.Context, port.Profile) (*usecase.ShutdownOutput, error) {
	f.runs++
	return &usecase.ShutdownOutput{}, f.err
}

type fixture struct {
	presenter *Presenter
	view      *fakeView
	browser   *mocks.MockBrowser
	settings  *mocks.MockSettingsStore
	privacy   *fakePrivacy
	proxy     *fakeProxy
	history   *fakeHistory
	shutdown  *fakeShutdown
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		view:     &fakeView{},
		browser:  mocks.NewMockBrowser(ctrl),
		settings: mocks.NewMockSettingsStore(ctrl),
		privacy:  &fakePrivacy{},
		proxy:    &fakeProxy{},
		history:  &fakeHistory{},
		shutdown: &fakeShutdown{},
	}
	f.settings.EXPECT().String(port.SectionBrowser, port.KeySearchEngine).Return("duckduckgo").AnyTimes()
	f.settings.EXPECT().String(port.SectionBrowser, port.KeyHomePage).Return("https://duckduckgo.com").AnyTimes()

	p, err := New(Config{
		View:     f.view,
		Browser:  f.browser,
		Profile:  mocks.NewMockProfile(ctrl),
		Settings: f.settings,
		Navigate: usecase.NewNavigateUseCase(f.settings),
		Privacy:  f.privacy,
		Proxy:    f.proxy,
		History:  f.history,
		Shutdown: f.shutdown,
	})
	require.NoError(t, err)
	f.presenter = p
	return f
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestStart_LoadsHomeAndEnablesTor(t *testing.T) {
	f := newFixture(t)
	f.settings.EXPECT().Bool(port.SectionSecurity, port.KeyEnableTor).Return(true)
	f.browser.EXPECT().LoadURI("https://duckduckgo.com")

	f.presenter.Start(context.Background(), "")

	assert.Equal(t, 1, f.privacy.runs)
	assert.Equal(t, 1, f.proxy.enables)
}

func TestStart_FirstLoadWaitsForTor(t *testing.T) {
	f := newFixture(t)
	f.proxy.hold = true
	f.settings.EXPECT().Bool(port.SectionSecurity, port.KeyEnableTor).Return(true)

	f.presenter.Start(context.Background(), "example.com")

	// No LoadURI expectation yet: gomock fails the test if one is issued.
	assert.Equal(t, StatusTor, f.view.lastStatus())
	require.NotNil(t, f.proxy.pending)

	f.browser.EXPECT().LoadURI("https://example.com")
	f.proxy.release(proxy.Result{State: proxy.Enabled, Verified: true})
}

func TestStart_FailedTorStillLoads(t *testing.T) {
	f := newFixture(t)
	f.proxy.hold = true
	f.settings.EXPECT().Bool(port.SectionSecurity, port.KeyEnableTor).Return(true)

	f.presenter.Start(context.Background(), "")

	f.browser.EXPECT().LoadURI("https://duckduckgo.com")
	warning := proxy.WarnNotInstalled
	f.proxy.release(proxy.Result{State: proxy.Disabled, Warning: &warning, Err: errors.New("tor is not available")})
}

func TestStart_ClosedBeforeTorSkipsLoad(t *testing.T) {
	f := newFixture(t)
	f.proxy.hold = true
	f.settings.EXPECT().Bool(port.SectionSecurity, port.KeyEnableTor).Return(true)

	f.presenter.Start(context.Background(), "")
	require.NoError(t, f.presenter.Close(context.Background()))
	f.proxy.release(proxy.Result{State: proxy.Disabled})
}

func TestStart_InitialURLWins(t *testing.T) {
	f := newFixture(t)
	f.settings.EXPECT().Bool(port.SectionSecurity, port.KeyEnableTor).Return(false)
	f.browser.EXPECT().LoadURI("https://example.org")

	f.presenter.Start(context.Background(), "example.org")

	assert.Zero(t, f.proxy.enables)
}

func TestNavigateTo(t *testing.T) {
	f := newFixture(t)
	f.browser.EXPECT().LoadURI("https://duckduckgo.com/?q=privacy tools")

	f.presenter.NavigateTo(context.Background(), "privacy tools")
	f.presenter.NavigateTo(context.Background(), "   ")
}

func TestToolbarButtons(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.browser.EXPECT().GoBack(),
		f.browser.EXPECT().GoForward(),
		f.browser.EXPECT().Reload(),
		f.browser.EXPECT().LoadURI("https://duckduckgo.com"),
	)

	f.presenter.Back()
	f.presenter.Forward()
	f.presenter.Reload()
	f.presenter.Home(context.Background())
	f.presenter.OpenSettings()

	assert.Equal(t, 1, f.view.settings)
}

func TestOnURIChanged_UpdatesAddressAndHistory(t *testing.T) {
	f := newFixture(t)
	f.browser.EXPECT().CanGoBack().Return(true)
	f.browser.EXPECT().CanGoForward().Return(false)

	f.presenter.OnURIChanged(context.Background(), "https://example.com/a")
	f.presenter.OnTitleChanged(context.Background(), "Example A")

	state := f.presenter.State()
	assert.Equal(t, "https://example.com/a", state.URL)
	assert.True(t, state.CanGoBack)
	assert.False(t, state.CanGoForward)
	assert.Equal(t, "https://example.com/a", f.view.address)
	assert.True(t, f.view.back)
	assert.Equal(t, []string{"https://example.com/a"}, f.history.visits)
	assert.Equal(t, "Example A", f.history.titles["https://example.com/a"])
}

func TestLoadStatus(t *testing.T) {
	f := newFixture(t)
	f.browser.EXPECT().CanGoBack().Return(false).AnyTimes()
	f.browser.EXPECT().CanGoForward().Return(false).AnyTimes()

	f.presenter.OnLoadEvent(port.LoadStarted)
	assert.Equal(t, StatusLoading, f.view.lastStatus())
	assert.True(t, f.presenter.State().Loading)

	f.presenter.OnLoadEvent(port.LoadFinished)
	assert.Equal(t, StatusReady, f.view.lastStatus())
	assert.False(t, f.presenter.State().Loading)
}

func TestLoadStatus_FailureSticksThroughFinish(t *testing.T) {
	f := newFixture(t)
	f.browser.EXPECT().CanGoBack().Return(false).AnyTimes()
	f.browser.EXPECT().CanGoForward().Return(false).AnyTimes()

	f.presenter.OnLoadEvent(port.LoadStarted)
	f.presenter.OnLoadEvent(port.LoadFailed)
	f.presenter.OnLoadEvent(port.LoadFinished)
	assert.Equal(t, StatusFailed, f.presenter.State().Status)

	f.presenter.OnLoadEvent(port.LoadStarted)
	f.presenter.OnLoadEvent(port.LoadFinished)
	assert.Equal(t, StatusReady, f.presenter.State().Status)
}

func TestOnDecidePolicy(t *testing.T) {
	f := newFixture(t)
	f.settings.EXPECT().Bool(port.SectionSecurity, port.KeyHTTPSOnly).Return(true).Times(2)

	got := f.presenter.OnDecidePolicy(context.Background(), navigation.Request{URL: "http://example.com", MainFrame: true})
	assert.Equal(t, navigation.Decision{Action: navigation.Redirect, URL: "https://example.com"}, got)

	got = f.presenter.OnDecidePolicy(context.Background(), navigation.Request{URL: "http://example.com", MainFrame: false})
	assert.Equal(t, navigation.Allow, got.Action)
}

func TestSettingsAccepted(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.settings.EXPECT().Bool(port.SectionSecurity, port.KeyEnableTor).Return(true),
		f.settings.EXPECT().Bool(port.SectionSecurity, port.KeyEnableTor).Return(false),
	)

	f.presenter.SettingsAccepted(context.Background())
	assert.Equal(t, 1, f.privacy.runs)
	assert.Equal(t, 1, f.proxy.enables)
	assert.Zero(t, f.proxy.disables)

	f.presenter.SettingsAccepted(context.Background())
	assert.Equal(t, 2, f.privacy.runs)
	assert.Equal(t, 1, f.proxy.disables)
}

func TestSettingsAccepted_UnchangedAcceptRetriesTor(t *testing.T) {
	f := newFixture(t)
	f.settings.EXPECT().Bool(port.SectionSecurity, port.KeyEnableTor).Return(true).Times(2)

	f.presenter.SettingsAccepted(context.Background())
	f.presenter.SettingsAccepted(context.Background())

	assert.Equal(t, 2, f.privacy.runs)
	assert.Equal(t, 2, f.proxy.enables)
	assert.Zero(t, f.proxy.disables)
}

func TestProxyTransitionsReachView(t *testing.T) {
	f := newFixture(t)
	require.NotNil(t, f.proxy.observer)

	f.proxy.observer(proxy.Disabled, proxy.Checking)
	f.proxy.observer(proxy.Checking, proxy.ProxyStarting)

	assert.Equal(t, []proxy.State{proxy.Checking, proxy.ProxyStarting}, f.view.proxyStates)
	assert.Equal(t, proxy.ProxyStarting, f.presenter.State().Proxy)
}

func TestClose_RunsOnce(t *testing.T) {
	f := newFixture(t)
	f.shutdown.err = errors.New("purge failed")

	err := f.presenter.Close(context.Background())
	assert.EqualError(t, err, "purge failed")
	assert.NoError(t, f.presenter.Close(context.Background()))
	assert.Equal(t, 1, f.shutdown.runs)
}
