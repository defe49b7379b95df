package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), logFileName) {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestFileSink_RollsOverWhenFull(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileSink(FileConfig{Dir: dir, MaxBackups: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	s.limit = 16

	_, err = s.Write([]byte("0123456789\n"))
	require.NoError(t, err)
	_, err = s.Write([]byte("abcdefghij\n"))
	require.NoError(t, err)

	assert.Len(t, logFiles(t, dir), 2)
	current, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij\n", string(current))
}

func TestFileSink_CompressesAndKeepsMaxBackups(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileSink(FileConfig{Dir: dir, MaxBackups: 1, Compress: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	s.limit = 4

	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	for _, line := range []string{"one\n", "two\n", "three\n"} {
		_, err = s.Write([]byte(line))
		require.NoError(t, err)
	}

	names := logFiles(t, dir)
	require.Len(t, names, 2)
	assert.Contains(t, names, logFileName)
	for _, name := range names {
		if name != logFileName {
			assert.True(t, strings.HasSuffix(name, ".gz"), name)
		}
	}
}

func TestFileSink_EphemeralCloseRemovesEverything(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, logFileName+".20260101-000000.000.gz"), []byte("old"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("keep"), 0o600))

	s, err := OpenFileSink(FileConfig{Dir: dir, Ephemeral: true})
	require.NoError(t, err)
	_, err = s.Write([]byte(`{"url":"https://example.com/private"}` + "\n"))
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.Empty(t, logFiles(t, dir))
	assert.FileExists(t, filepath.Join(dir, "unrelated.txt"))

	_, err = s.Write([]byte("late\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestFileSink_PersistentCloseKeepsFile(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileSink(FileConfig{Dir: dir})
	require.NoError(t, err)
	_, err = s.Write([]byte("kept\n"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.FileExists(t, filepath.Join(dir, logFileName))
}

func TestFileSink_PrunesByAge(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, logFileName+".20250101-000000.000")
	require.NoError(t, os.WriteFile(old, []byte("x"), 0o600))
	stale := time.Now().Add(-10 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(old, stale, stale))

	s, err := OpenFileSink(FileConfig{Dir: dir, MaxAgeDays: 7})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.NoFileExists(t, old)
}

func TestPurgeLogs_MissingDir(t *testing.T) {
	assert.NoError(t, PurgeLogs(filepath.Join(t.TempDir(), "absent")))
}
