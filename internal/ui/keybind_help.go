package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"secretsui/internal/ui/render"
)

// RenderKeybindHelp renders the transient hint box shown while a leader
// sequence is being typed. It returns "" outside leader mode.
func RenderKeybindHelp(h *KeyHandler, theme render.Theme, width int) string {
	if h == nil || !h.LeaderWaiting {
		return ""
	}
	seq := h.Sequence()
	bindings := Bindings(h.Registry.LeaderHints(seq))
	if len(bindings) == 0 {
		return ""
	}
	bindings = append(bindings, key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	))

	hm := help.New()
	hm.Width = max(width-4-len(seq)-1, 0)
	hm.Styles.ShortKey = theme.HintKey
	hm.Styles.ShortDesc = theme.HintDesc
	hm.Styles.ShortSeparator = theme.HintDesc

	content := theme.Muted.Render(seq) + " " + hm.ShortHelpView(bindings)
	return theme.Box.BorderForeground(theme.Title.GetForeground()).Render(content)
}
