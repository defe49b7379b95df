package url

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpgradeScheme(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://example.com", "https://example.com"},
		{"http://example.com/path?q=1#frag", "https://example.com/path?q=1#frag"},
		{"HTTP://example.com", "https://example.com"},
		{"https://example.com", "https://example.com"},
		{"ftp://example.com", "ftp://example.com"},
		{"about:blank", "about:blank"},
		{"%zz", "%zz"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, UpgradeScheme(tt.in))
		})
	}
}

func TestScheme(t *testing.T) {
	assert.Equal(t, "http", Scheme("HTTP://example.com"))
	assert.Equal(t, "about", Scheme("about:blank"))
	assert.Equal(t, "", Scheme("example.com"))
}
