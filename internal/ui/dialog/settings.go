package dialog

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/medusa/internal/domain/url"
)

const (
	settingsTitle  = "Settings"
	settingsWidth  = 420
	settingsHeight = 520
	spacing        = 8
)

// SettingsDialog is the modal settings window.
type SettingsDialog struct {
	window *gtk.Window
	form   Form

	homePage *gtk.Entry
	engine   *gtk.DropDown
	cookies  *gtk.DropDown
	checks   []*gtk.CheckButton
	errLabel *gtk.Label

	onAccept func(Form) error
}

// ShowSettings opens the dialog over parent with form's values. onAccept
// runs with the edited form after validation; an error it returns keeps
// the dialog open and is shown inline.
func ShowSettings(parent *gtk.Window, form Form, onAccept func(Form) error) *SettingsDialog {
	d := &SettingsDialog{form: form, onAccept: onAccept}
	d.build(parent)
	d.window.Present()
	return d
}

func (d *SettingsDialog) build(parent *gtk.Window) {
	d.window = gtk.NewWindow()
	d.window.SetTitle(settingsTitle)
	d.window.SetModal(true)
	d.window.SetDefaultSize(settingsWidth, settingsHeight)
	if parent != nil {
		d.window.SetTransientFor(parent)
	}
	d.window.AddCSSClass("medusa-settings")

	root := gtk.NewBox(gtk.OrientationVertical, spacing)
	root.SetMarginTop(12)
	root.SetMarginBottom(12)
	root.SetMarginStart(12)
	root.SetMarginEnd(12)

	general := gtk.NewBox(gtk.OrientationVertical, spacing)
	general.Append(gtk.NewLabel("Home page"))
	d.homePage = gtk.NewEntry()
	d.homePage.SetText(d.form.HomePage)
	general.Append(d.homePage)

	general.Append(gtk.NewLabel("Search engine"))
	engines := make([]string, 0, len(url.SearchEngines()))
	for _, engine := range url.SearchEngines() {
		engines = append(engines, string(engine))
	}
	d.engine = gtk.NewDropDownFromStrings(engines)
	d.engine.SetSelected(uint(d.form.SearchEngineIndex()))
	general.Append(d.engine)
	root.Append(section("General", general))

	privacy := gtk.NewBox(gtk.OrientationVertical, spacing)
	d.appendToggles(privacy, d.form.PrivacyToggles())
	privacy.Append(gtk.NewLabel("Cookies"))
	policies := make([]string, 0, len(CookiePolicies()))
	for _, policy := range CookiePolicies() {
		policies = append(policies, string(policy))
	}
	d.cookies = gtk.NewDropDownFromStrings(policies)
	d.cookies.SetSelected(uint(d.form.CookiePolicyIndex()))
	privacy.Append(d.cookies)
	root.Append(section("Privacy", privacy))

	security := gtk.NewBox(gtk.OrientationVertical, spacing)
	d.appendToggles(security, d.form.SecurityToggles())
	root.Append(section("Security", security))

	d.errLabel = gtk.NewLabel("")
	d.errLabel.AddCSSClass("error")
	d.errLabel.SetWrap(true)
	d.errLabel.SetVisible(false)
	root.Append(d.errLabel)

	buttons := gtk.NewBox(gtk.OrientationHorizontal, spacing)
	buttons.SetHAlign(gtk.AlignEnd)
	cancel := gtk.NewButtonWithLabel("Cancel")
	cancel.ConnectClicked(func() { d.window.Close() })
	ok := gtk.NewButtonWithLabel("OK")
	ok.AddCSSClass("suggested-action")
	ok.ConnectClicked(d.accept)
	buttons.Append(cancel)
	buttons.Append(ok)
	root.Append(buttons)

	d.window.SetChild(root)
}

// appendToggles adds one check button per toggle. Check buttons are kept in
// the order of PrivacyToggles followed by SecurityToggles.
func (d *SettingsDialog) appendToggles(box *gtk.Box, toggles []Toggle) {
	for _, toggle := range toggles {
		check := gtk.NewCheckButtonWithLabel(toggle.Label)
		check.SetActive(*toggle.Value)
		box.Append(check)
		d.checks = append(d.checks, check)
	}
}

func (d *SettingsDialog) accept() {
	form := d.form
	form.HomePage = d.homePage.Text()
	form.SetSearchEngineIndex(int(d.engine.Selected()))
	form.SetCookiePolicyIndex(int(d.cookies.Selected()))

	toggles := append(form.PrivacyToggles(), form.SecurityToggles()...)
	for i, toggle := range toggles {
		if i < len(d.checks) {
			*toggle.Value = d.checks[i].Active()
		}
	}

	if err := form.Validate(); err != nil {
		d.showError(err)
		return
	}
	if d.onAccept != nil {
		if err := d.onAccept(form); err != nil {
			d.showError(err)
			return
		}
	}
	d.window.Close()
}

func (d *SettingsDialog) showError(err error) {
	d.errLabel.SetText(err.Error())
	d.errLabel.SetVisible(true)
}

func section(title string, child gtk.Widgetter) *gtk.Frame {
	frame := gtk.NewFrame(title)
	frame.SetChild(child)
	return frame
}
