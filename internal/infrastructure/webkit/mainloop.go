package webkit

import (
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/bnema/medusa/internal/application/port"
)

// MainThread dispatches work to the GTK main loop. Safe from any goroutine.
var MainThread port.Dispatcher = port.DispatchFunc(func(fn func()) {
	glib.IdleAdd(func() bool {
		fn()
		return false
	})
})
