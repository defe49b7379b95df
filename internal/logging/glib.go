package logging

import (
	stdlog "log"

	"github.com/rs/zerolog"
)

// RouteStandardLog sends output of the standard library logger, which
// gotk4 uses for GLib, GTK and WebKit warnings, to logger.
func RouteStandardLog(logger zerolog.Logger) {
	stdlog.SetFlags(0)
	stdlog.SetPrefix("")
	stdlog.SetOutput(logger.With().Str("component", "glib").Logger())
}
