package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/medusa/internal/application/port/mocks"
	"github.com/bnema/medusa/internal/domain/proxy"
)

type recorder struct {
	calls    []string
	clearErr error
	state    proxy.State
}

func (r *recorder) Close() { r.calls = append(r.calls, "history.close") }

func (r *recorder) Clear(context.Context) error {
	r.calls = append(r.calls, "history.clear")
	return r.clearErr
}

func (r *recorder) State() proxy.State { return r.state }

func (r *recorder) Disable(context.Context) { r.calls = append(r.calls, "proxy.disable") }

func TestShutdown_ClearOnExitThenProxyTeardown(t *testing.T) {
	ctrl := gomock.NewController(t)
	profile := mocks.NewMockProfile(ctrl)
	rec := &recorder{state: proxy.Enabled}
	profile.EXPECT().ClearBrowsingData(gomock.Any()).DoAndReturn(func(context.Context) error {
		rec.calls = append(rec.calls, "profile.clear")
		return nil
	})

	uc := NewShutdownUseCase(settingsWith(map[string]any{
		"privacy.clear_on_exit": true,
		"security.enable_tor":   true,
	}), rec, rec)

	out, err := uc.Execute(context.Background(), profile)
	require.NoError(t, err)
	assert.True(t, out.DataCleared)
	assert.True(t, out.ProxyStopped)
	assert.Equal(t, []string{"history.close", "history.clear", "profile.clear", "proxy.disable"}, rec.calls)
}

func TestShutdown_DefaultsKeepData(t *testing.T) {
	ctrl := gomock.NewController(t)
	profile := mocks.NewMockProfile(ctrl)
	rec := &recorder{state: proxy.Disabled}

	uc := NewShutdownUseCase(settingsWith(nil), rec, rec)
	out, err := uc.Execute(context.Background(), profile)
	require.NoError(t, err)
	assert.False(t, out.DataCleared)
	assert.False(t, out.ProxyStopped)
	assert.Equal(t, []string{"history.close"}, rec.calls)
}

func TestShutdown_StopsProxyStillRunning(t *testing.T) {
	rec := &recorder{state: proxy.Verifying}

	uc := NewShutdownUseCase(settingsWith(nil), rec, rec)
	out, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, out.ProxyStopped)
}

func TestShutdown_ContinuesAfterErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	profile := mocks.NewMockProfile(ctrl)
	rec := &recorder{state: proxy.Enabled, clearErr: errors.New("locked")}
	profile.EXPECT().ClearBrowsingData(gomock.Any()).Return(errors.New("busy"))

	uc := NewShutdownUseCase(settingsWith(map[string]any{
		"privacy.clear_on_exit": true,
		"security.enable_tor":   true,
	}), rec, rec)

	out, err := uc.Execute(context.Background(), profile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
	assert.Contains(t, err.Error(), "busy")
	assert.True(t, out.ProxyStopped)
}
