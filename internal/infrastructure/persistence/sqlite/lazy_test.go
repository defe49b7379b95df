package sqlite_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/medusa/internal/domain/entity"
	"github.com/bnema/medusa/internal/infrastructure/persistence/sqlite"
)

func TestLazyDB_NotInitializedByDefault(t *testing.T) {
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "test.db"))
	assert.False(t, lazy.IsInitialized())
	assert.NoError(t, lazy.Close())
}

func TestLazyDB_ConcurrentAccessSharesConnection(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	const goroutines = 8
	var wg sync.WaitGroup
	results := make([]any, goroutines)
	errs := make([]error, goroutines)
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = lazy.DB(ctx)
		}()
	}
	wg.Wait()

	for i := range goroutines {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
	assert.True(t, lazy.IsInitialized())
}

func TestLazyHistoryRepository_OpensOnFirstCall(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	repo := sqlite.NewLazyHistoryRepository(lazy)
	assert.False(t, lazy.IsInitialized())

	require.NoError(t, repo.Save(ctx, entity.NewHistoryEntry("https://example.com", "")))
	assert.True(t, lazy.IsInitialized())

	entries, err := repo.GetRecent(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLazyHistoryRepository_PropagatesOpenError(t *testing.T) {
	repo := sqlite.NewLazyHistoryRepository(sqlite.NewLazyDB(""))
	_, err := repo.GetStats(testCtx())
	require.Error(t, err)
}
