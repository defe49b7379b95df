// Package port defines application-layer interfaces for external capabilities.
// Ports abstract infrastructure concerns, allowing the application layer to
// remain independent of specific implementations (WebKit, GTK, Tor, etc.).
package port

//go:generate mockgen -destination=mocks/mock_browser.go -package=mocks github.com/bnema/medusa/internal/application/port Browser

// LoadEvent represents page load state transitions.
type LoadEvent int

const (
	// LoadStarted indicates navigation has begun.
	LoadStarted LoadEvent = iota
	// LoadFinished indicates the page has fully loaded.
	LoadFinished
	// LoadFailed indicates the engine gave up on the page.
	LoadFailed
)

// String returns a human-readable representation of the load event.
func (e LoadEvent) String() string {
	switch e {
	case LoadStarted:
		return "started"
	case LoadFinished:
		return "finished"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Browser is the engine view the shell drives.
type Browser interface {
	LoadURI(uri string)
	GoBack()
	GoForward()
	Reload()
	CanGoBack() bool
	CanGoForward() bool
	URI() string
}
