// Package proxy models the Tor routing lifecycle.
package proxy

import "fmt"

// State is a step of the proxy lifecycle.
type State int

const (
	Disabled State = iota
	Checking
	ProxyStarting
	Verifying
	Enabled
)

var stateNames = map[State]string{
	Disabled:      "disabled",
	Checking:      "checking",
	ProxyStarting: "starting",
	Verifying:     "verifying",
	Enabled:       "enabled",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// allowed lists legal transitions. Any state may fall back to Disabled.
var allowed = map[State][]State{
	Disabled:      {Checking},
	Checking:      {ProxyStarting},
	ProxyStarting: {Verifying},
	Verifying:     {Enabled},
	Enabled:       {Checking},
}

// CanTransition reports whether moving from one state to another is legal.
func CanTransition(from, to State) bool {
	if to == Disabled {
		return true
	}
	for _, next := range allowed[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Warning is a user-facing message raised during the lifecycle.
type Warning struct {
	Title   string
	Message string
}

// Warnings shown when enabling fails.
var (
	WarnNotInstalled = Warning{
		Title:   "Tor Not Found",
		Message: "Tor is not installed or not running. Please install Tor and try again.",
	}
	WarnStartFailed = Warning{
		Title:   "Tor Connection Failed",
		Message: "Failed to connect to Tor network. Please check your Tor installation.",
	}
	WarnUnverified = Warning{
		Title:   "Tor Connection Failed",
		Message: "Connected to Tor but verification failed. Your connection may not be anonymous.",
	}
)

// Result summarises an Enable run.
type Result struct {
	State    State
	Verified bool
	Warning  *Warning
	Err      error
}

// Routed reports whether traffic now goes through the proxy.
func (r Result) Routed() bool {
	return r.State == Enabled
}
