package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"secretsui/internal/keys"
	"secretsui/internal/ui/render"
)

// TextPopup shows scrollable read-only text. q or esc closes it.
type TextPopup struct {
	Title string

	theme render.Theme
	vp    viewport.Model
	done  bool
}

var _ Closer = (*TextPopup)(nil)

// NewTextPopup creates a popup with a width x height content area.
func NewTextPopup(theme render.Theme, title, content string, width, height int) *TextPopup {
	vp := viewport.New(width, height)
	vp.SetContent(content)
	return &TextPopup{Title: title, theme: theme, vp: vp}
}

// Done implements Closer.
func (p *TextPopup) Done() bool { return p.done }

// HandleKey implements Popup. Scrolling keys go to the viewport.
func (p *TextPopup) HandleKey(_ *Context, ev keys.Event) bool {
	switch ev.String() {
	case "esc", "q":
		p.done = true
		return true
	}
	before := p.vp.YOffset
	p.vp, _ = p.vp.Update(ev.Msg())
	return p.vp.YOffset != before
}

// View implements Popup.
func (p *TextPopup) View(size render.Size) string {
	vp := p.vp
	if w := size.Cols - 6; vp.Width > w {
		vp.Width = max(w, 1)
	}
	if h := size.Rows - 6; vp.Height > h {
		vp.Height = max(h, 1)
	}
	footer := p.theme.HintDesc.Render(fmt.Sprintf("↑/↓ scroll  esc close  %3.0f%%", vp.ScrollPercent()*100))
	content := lipgloss.JoinVertical(lipgloss.Left,
		p.theme.Title.Render(p.Title),
		"",
		vp.View(),
		"",
		footer,
	)
	return p.theme.Box.Render(content)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
