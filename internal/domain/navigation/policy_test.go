package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		httpsOnly bool
		want      Decision
	}{
		{
			name:      "main frame http upgraded",
			req:       Request{URL: "http://example.com/page?x=1", MainFrame: true},
			httpsOnly: true,
			want:      Decision{Action: Redirect, URL: "https://example.com/page?x=1"},
		},
		{
			name:      "main frame https allowed",
			req:       Request{URL: "https://example.com", MainFrame: true},
			httpsOnly: true,
			want:      Decision{Action: Allow},
		},
		{
			name:      "sub frame http allowed",
			req:       Request{URL: "http://ads.example.com/frame", MainFrame: false},
			httpsOnly: true,
			want:      Decision{Action: Allow},
		},
		{
			name:      "https only disabled",
			req:       Request{URL: "http://example.com", MainFrame: true},
			httpsOnly: false,
			want:      Decision{Action: Allow},
		},
		{
			name:      "about scheme allowed",
			req:       Request{URL: "about:blank", MainFrame: true},
			httpsOnly: true,
			want:      Decision{Action: Allow},
		},
		{
			name:      "file scheme allowed",
			req:       Request{URL: "file:///tmp/a.html", MainFrame: true},
			httpsOnly: true,
			want:      Decision{Action: Allow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.req, tt.httpsOnly))
		})
	}
}

func TestDecide_RedirectTargetIsStable(t *testing.T) {
	first := Decide(Request{URL: "http://example.com", MainFrame: true}, true)
	second := Decide(Request{URL: first.URL, MainFrame: true}, true)

	assert.Equal(t, Redirect, first.Action)
	assert.Equal(t, Allow, second.Action)
}
