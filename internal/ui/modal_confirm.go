package ui

import (
	"secretsui/internal/keys"
	"secretsui/internal/ui/component"
	"secretsui/internal/ui/render"
)

// ConfirmPopup asks a yes/no question. Enter or y confirms; n or esc cancels.
type ConfirmPopup struct {
	Title     string
	Label     string
	Details   string // optional warning shown below the label
	Danger    bool
	OnConfirm func(c *Context)
	OnCancel  func(c *Context)

	renderer  *render.Renderer
	done      bool
	confirmed bool
}

var _ Closer = (*ConfirmPopup)(nil)

// NewConfirmPopup creates a confirmation popup.
func NewConfirmPopup(r *render.Renderer, title, label string, onConfirm func(c *Context)) *ConfirmPopup {
	return &ConfirmPopup{
		Title:     title,
		Label:     label,
		OnConfirm: onConfirm,
		renderer:  r,
	}
}

// WithDetails adds warning details and marks the popup as destructive.
func (m *ConfirmPopup) WithDetails(details string) *ConfirmPopup {
	m.Details = details
	m.Danger = true
	return m
}

// Confirmed reports whether the user accepted.
func (m *ConfirmPopup) Confirmed() bool { return m.confirmed }

// Done implements Closer.
func (m *ConfirmPopup) Done() bool { return m.done }

// HandleKey implements Popup.
func (m *ConfirmPopup) HandleKey(c *Context, ev keys.Event) bool {
	switch ev.String() {
	case "enter", "y", "Y":
		m.done, m.confirmed = true, true
		if m.OnConfirm != nil {
			m.OnConfirm(c)
		}
	case "esc", "n", "N":
		m.done = true
		if m.OnCancel != nil {
			m.OnCancel(c)
		}
	default:
		return false
	}
	return true
}

// View implements Popup.
func (m *ConfirmPopup) View(size render.Size) string {
	width := min(56, size.Cols-4)
	body := []component.Node{component.Text(m.Label, component.StyleBold).With(component.Attrs{"wrap": true})}
	if m.Details != "" {
		body = append(body, component.Text(m.Details, component.StyleDanger).With(component.Attrs{"wrap": true}))
	}
	body = append(body,
		component.Spacer(1),
		component.KeyHints(
			component.Hint{Key: "y/enter", Desc: "confirm"},
			component.Hint{Key: "esc", Desc: "cancel"},
		),
	)
	box := component.Modal(m.Title, width, m.Danger, body...)
	return joinLines(m.renderer.Lines(box, render.Layout{AvailableHeight: size.Rows, AvailableWidth: size.Cols}))
}
