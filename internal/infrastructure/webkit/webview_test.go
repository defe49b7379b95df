package webkit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/medusa/internal/domain/navigation"
)

func TestPolicyOutcome(t *testing.T) {
	const plain = "http://example.com/"
	allow := navigation.Decision{Action: navigation.Allow}
	upgrade := navigation.Decision{Action: navigation.Redirect, URL: "https://example.com/"}
	block := navigation.Decision{Action: navigation.Block}

	tests := []struct {
		name        string
		verdict     navigation.Decision
		newWindow   bool
		userGesture bool
		want        outcome
	}{
		{name: "navigation allowed", verdict: allow, want: outcome{}},
		{name: "navigation upgraded", verdict: upgrade, want: outcome{ignore: true, load: "https://example.com/"}},
		{name: "navigation blocked", verdict: block, want: outcome{ignore: true, failed: true}},
		{name: "clicked popup opens in place", verdict: allow, newWindow: true, userGesture: true, want: outcome{ignore: true, load: plain}},
		{name: "clicked http popup is upgraded", verdict: upgrade, newWindow: true, userGesture: true, want: outcome{ignore: true, load: "https://example.com/"}},
		{name: "scripted popup dropped", verdict: allow, newWindow: true, want: outcome{ignore: true}},
		{name: "scripted http popup dropped", verdict: upgrade, newWindow: true, want: outcome{ignore: true}},
		{name: "blocked popup fails", verdict: block, newWindow: true, userGesture: true, want: outcome{ignore: true, failed: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policyOutcome(tt.verdict, plain, tt.newWindow, tt.userGesture))
		})
	}
}
