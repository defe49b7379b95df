package dialog

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/medusa/internal/application/port"
)

const alertWidth = 380

// Alerts shows modal warnings over a parent window. Warn must be called on
// the main thread.
type Alerts struct {
	parent func() *gtk.Window
}

var _ port.Notifier = (*Alerts)(nil)

// NewAlerts creates a notifier whose dialogs are transient for parent().
func NewAlerts(parent func() *gtk.Window) *Alerts {
	return &Alerts{parent: parent}
}

func (a *Alerts) Warn(title, message string) {
	win := gtk.NewWindow()
	win.SetTitle(title)
	win.SetModal(true)
	win.SetResizable(false)
	win.SetDefaultSize(alertWidth, -1)
	if a.parent != nil {
		if parent := a.parent(); parent != nil {
			win.SetTransientFor(parent)
		}
	}
	win.AddCSSClass("medusa-alert")

	box := gtk.NewBox(gtk.OrientationVertical, spacing)
	box.SetMarginTop(16)
	box.SetMarginBottom(16)
	box.SetMarginStart(16)
	box.SetMarginEnd(16)

	heading := gtk.NewLabel(title)
	heading.AddCSSClass("title-4")
	box.Append(heading)

	body := gtk.NewLabel(message)
	body.SetWrap(true)
	box.Append(body)

	ok := gtk.NewButtonWithLabel("OK")
	ok.SetHAlign(gtk.AlignEnd)
	ok.ConnectClicked(func() { win.Close() })
	box.Append(ok)

	win.SetChild(box)
	win.Present()
}
