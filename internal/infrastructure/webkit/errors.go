package webkit

import (
	"errors"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/core/gerror"
)

var (
	ErrContextNotInitialized = errors.New("webkit: context not initialized")
	ErrWebViewDestroyed      = errors.New("webkit: web view destroyed")
	ErrClearTimeout          = errors.New("webkit: clearing website data timed out")
)

// cancelledMessage is what the engine reports when a load is superseded.
const cancelledMessage = "Load request cancelled"

// IsCancelledError reports whether err only says the load was cancelled,
// which happens on every redirect and every new navigation mid-load.
func IsCancelledError(err error) bool {
	if err == nil {
		return false
	}
	if err.Error() == cancelledMessage {
		return true
	}
	var gErr *gerror.GError
	if errors.As(err, &gErr) {
		return gErr.ErrorCode() == int(webkit.NetworkErrorCancelled)
	}
	return false
}
