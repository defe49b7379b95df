// Package theme loads the shell stylesheet into the GTK display.
package theme

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/medusa/internal/logging"
)

//go:embed medusa.css
var defaultCSS string

// SourceBuiltin names the embedded stylesheet in logs.
const SourceBuiltin = "builtin"

// DefaultCSS returns the embedded stylesheet.
func DefaultCSS() string {
	return defaultCSS
}

// LoadStylesheet returns the CSS to apply and where it came from. An empty
// path selects the embedded stylesheet; an unreadable or empty file falls
// back to it and returns the reason.
func LoadStylesheet(path string) (css, source string, err error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return defaultCSS, SourceBuiltin, nil
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return defaultCSS, SourceBuiltin, fmt.Errorf("read stylesheet: %w", readErr)
	}
	if strings.TrimSpace(string(data)) == "" {
		return defaultCSS, SourceBuiltin, fmt.Errorf("stylesheet %s is empty", path)
	}
	return string(data), path, nil
}

// Manager owns the CSS provider installed on the display.
type Manager struct {
	stylesheet string
	provider   *gtk.CSSProvider
}

// NewManager creates a manager for the stylesheet at path, or the embedded
// one when path is empty.
func NewManager(path string) *Manager {
	return &Manager{stylesheet: path}
}

// ApplyToDisplay loads the stylesheet into display. Load failures are
// logged and the embedded stylesheet is used.
func (m *Manager) ApplyToDisplay(ctx context.Context, display *gdk.Display) {
	log := logging.FromContext(ctx).With().Str("component", "theme").Logger()

	if display == nil {
		log.Warn().Msg("cannot apply theme: display is nil")
		return
	}

	css, source, err := LoadStylesheet(m.stylesheet)
	if err != nil {
		log.Warn().Err(err).Msg("using built-in stylesheet")
	}

	if m.provider == nil {
		m.provider = gtk.NewCSSProvider()
		m.provider.ConnectParsingError(func(_ *gtk.CSSSection, parseErr error) {
			log.Warn().Err(parseErr).Msg("stylesheet parse error")
		})
		gtk.StyleContextAddProviderForDisplay(display, m.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	}
	m.provider.LoadFromString(css)

	log.Debug().Str("source", source).Msg("stylesheet applied")
}

// SetStylesheet switches to another stylesheet and reapplies it.
func (m *Manager) SetStylesheet(ctx context.Context, path string, display *gdk.Display) {
	if path == m.stylesheet && m.provider != nil {
		return
	}
	m.stylesheet = path
	m.ApplyToDisplay(ctx, display)
}
