package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConfigOrdered(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, WriteConfigOrdered(DefaultConfig(), configPath))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var sections []string
	for _, line := range strings.Split(string(content), "\n") {
		if h, ok := sectionHeader(line); ok {
			sections = append(sections, h)
		}
	}

	assert.Equal(t, []string{
		"appearance", "browser", "content_filtering", "database",
		"logging", "privacy", "security", "tor",
	}, sections)
	assert.True(t, strings.HasPrefix(string(content), "# medusa configuration"))
	assert.Contains(t, string(content), "home_page = 'https://duckduckgo.com'")
}

func TestWriteConfigOrdered_NilConfig(t *testing.T) {
	err := WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "config.toml"))
	assert.Error(t, err)
}

func TestSortTOMLSections(t *testing.T) {
	input := `title = 'x'

[zeta]
  a = 1

[alpha]
  b = 2
`
	want := `title = 'x'

[alpha]
  b = 2

[zeta]
  a = 1
`
	assert.Equal(t, want, sortTOMLSections(input))
}
