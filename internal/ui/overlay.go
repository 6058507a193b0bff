package ui

import (
	"errors"

	"secretsui/internal/keys"
	"secretsui/internal/ui/render"
)

var (
	// ErrPopupActive is returned by Show while another popup is shown.
	// Only one popup can be shown at a time.
	ErrPopupActive = errors.New("ui: a popup is already shown")
	// ErrNoPopup is returned by Close when no popup is shown.
	ErrNoPopup = errors.New("ui: no popup is shown")
	// ErrNoScreen is returned by Show when there is no screen to cover.
	ErrNoScreen = errors.New("ui: no screen to show the popup over")
)

// Popup is a modal view composited over the current screen. While shown it
// receives every key that is not a global binding.
type Popup interface {
	HandleKey(c *Context, ev keys.Event) bool
	View(size render.Size) string
}

// Closer is implemented by popups that can dismiss themselves. The overlay
// closes the popup after a key leaves Done reporting true.
type Closer interface {
	Done() bool
}

// Overlay shows a single popup over a screen. Showing a popup takes the
// screen's handler chain aside and installs a router that forwards keys to
// the popup; closing puts the original chain back exactly.
type Overlay struct {
	app     App
	popup   Popup
	base    Screen
	saved   []Handler
	onClose func()
}

// NewOverlay creates an overlay. app may be nil in tests.
func NewOverlay(app App) *Overlay {
	return &Overlay{app: app}
}

// Active reports whether a popup is shown.
func (o *Overlay) Active() bool { return o.popup != nil }

// Popup returns the shown popup, or nil.
func (o *Overlay) Popup() Popup { return o.popup }

// Show displays p over base. onClose, if set, runs after the popup closes.
func (o *Overlay) Show(p Popup, base Screen, onClose func()) error {
	if o.popup != nil {
		return ErrPopupActive
	}
	if base == nil {
		return ErrNoScreen
	}
	chain := base.Core().Handlers()
	o.saved = chain.Take()
	chain.Add(Handler{
		Name:   "popup",
		Match:  func(keys.Event) bool { return true },
		Action: o.route,
	})
	o.popup, o.base, o.onClose = p, base, onClose
	o.requestRender()
	return nil
}

// Close hides the popup and restores the screen's handlers.
func (o *Overlay) Close() error {
	if o.popup == nil {
		return ErrNoPopup
	}
	b := o.base.Core()
	if b.Active() {
		b.Handlers().Restore(o.saved)
	}
	onClose := o.onClose
	o.popup, o.base, o.saved, o.onClose = nil, nil, nil, nil
	if onClose != nil {
		onClose()
	}
	o.requestRender()
	return nil
}

func (o *Overlay) route(c *Context, ev keys.Event) bool {
	p := o.popup
	if p == nil {
		return false
	}
	p.HandleKey(c, ev)
	// The popup may have closed itself (or been replaced) from HandleKey.
	if cl, ok := p.(Closer); ok && cl.Done() && o.popup == p {
		_ = o.Close()
	}
	o.requestRender()
	return true
}

// Render composites the popup, if any, over frame.
func (o *Overlay) Render(frame string, size render.Size) string {
	if o.popup == nil {
		return frame
	}
	return Composite(frame, o.popup.View(size), size)
}

func (o *Overlay) requestRender() {
	if o.app != nil {
		o.app.RequestRender()
	}
}
