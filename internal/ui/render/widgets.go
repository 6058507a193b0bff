package render

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"secretsui/internal/ui/component"
	"secretsui/internal/ui/textutil"
)

func (r *Renderer) renderText(n component.Node, width int) []string {
	style := r.theme.TextStyle(n.String("style"))
	content := n.String("content")
	var raw []string
	if n.Bool("wrap") {
		raw = textutil.Wrap(content, width)
	} else {
		raw = strings.Split(content, "\n")
	}
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = style.Render(l)
	}
	return lines
}

func (r *Renderer) renderTitledText(n component.Node, width int) []string {
	lines := []string{r.theme.Highlight.Bold(true).Render(n.String("title"))}
	for _, l := range textutil.Wrap(n.String("content"), width-2) {
		lines = append(lines, "  "+r.theme.Normal.Render(l))
	}
	return lines
}

func (r *Renderer) renderKeyValue(n component.Node) []string {
	label := n.String("label") + ":"
	if w := n.Int("labelWidth"); w > 0 {
		label = textutil.PadRight(label, w)
	} else {
		label += " "
	}
	value := n.String("value")
	if value == "" {
		return []string{r.theme.Label.Render(label) + r.theme.Empty.Render("(empty)")}
	}
	return []string{r.theme.Label.Render(label) + r.theme.Normal.Render(value)}
}

func (r *Renderer) input(value, placeholder string, focused bool, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.PlaceholderStyle = r.theme.Muted
	ti.TextStyle = r.theme.Normal
	ti.SetValue(value)
	if width > 0 {
		ti.Width = width
	}
	if focused {
		ti.Focus()
	} else {
		ti.Blur()
	}
	return ti
}

func (r *Renderer) renderSearchField(n component.Node, width int) []string {
	active := n.Bool("active")
	query := n.String("query")
	prompt := r.theme.Muted.Render("/ ")
	if active {
		prompt = r.theme.Selected.Render("/ ")
	}
	if !active && query == "" {
		return []string{prompt + r.theme.Muted.Render(n.String("placeholder"))}
	}
	ti := r.input(query, n.String("placeholder"), active, width-4)
	return []string{prompt + ti.View()}
}

func (r *Renderer) renderTextField(n component.Node, width int) []string {
	w := n.Int("width")
	if w <= 0 || w > width {
		w = width
	}
	inner := w - 2
	if inner < 1 {
		inner = 1
	}
	ti := r.input(n.String("value"), "", n.Bool("focused"), inner-1)
	style := r.theme.Field.Width(inner)
	if n.Bool("focused") {
		style = style.BorderForeground(lipgloss.Color(r.theme.Palette.Highlight))
	}
	var lines []string
	if label := n.String("label"); label != "" {
		lines = append(lines, r.theme.Label.Render(label))
	}
	return append(lines, textutil.Lines(style.Render(ti.View()))...)
}

func (r *Renderer) renderTabs(n component.Node) []string {
	labels := n.Strings("labels")
	if len(labels) == 0 {
		return nil
	}
	active := n.Int("active")
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = r.theme.TabActive.Render(" " + l + " ")
		} else {
			parts[i] = r.theme.TabIdle.Render(" " + l + " ")
		}
	}
	return []string{strings.Join(parts, r.theme.Muted.Render("│"))}
}

func (r *Renderer) renderBox(n component.Node, layout Layout) []string {
	style := r.theme.Box
	if n.String("tone") == "danger" {
		style = r.theme.BoxDanger
	}
	frame := style.GetHorizontalFrameSize()

	outer := n.Int("width")
	if outer <= 0 || outer > layout.AvailableWidth {
		outer = layout.AvailableWidth
	}
	inner := Layout{
		AvailableHeight: layout.AvailableHeight - style.GetVerticalFrameSize(),
		AvailableWidth:  outer - frame,
	}
	if inner.AvailableWidth < 1 {
		inner.AvailableWidth = 1
	}

	var content []string
	if title := n.String("title"); title != "" {
		ts := r.theme.Title
		if n.String("tone") == "danger" {
			ts = r.theme.Danger
		}
		content = append(content, ts.Render(title), "")
	}
	for _, c := range component.Flatten(n.Children()...) {
		content = append(content, r.Lines(c, inner)...)
	}

	if n.Int("width") <= 0 {
		// Shrink to content when no width was requested.
		if w := textutil.MaxWidth(content); w < inner.AvailableWidth {
			inner.AvailableWidth = w
		}
	}
	// lipgloss widths include padding but not the border.
	style = style.Width(inner.AvailableWidth + style.GetHorizontalPadding())
	return textutil.Lines(style.Render(strings.Join(content, "\n")))
}

func (r *Renderer) renderTable(n component.Node) []string {
	headers := n.Strings("headers")
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.theme.Muted).
		Headers(headers...).
		Rows(n.Rows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.theme.Accent.Padding(0, 1)
			}
			return r.theme.Normal.Padding(0, 1)
		})
	return textutil.Lines(t.Render())
}

func (r *Renderer) renderLoading(n component.Node) string {
	frames := spinner.Dot.Frames
	frame := frames[n.Int("frame")%len(frames)]
	return r.theme.Accent.Render(frame) + " " + r.theme.Muted.Render(n.String("message"))
}

// hintLine renders key hints with bubbles/help, truncated to width.
func (r *Renderer) hintLine(hints []component.Hint, width int) string {
	if len(hints) == 0 {
		return ""
	}
	bindings := make([]key.Binding, 0, len(hints))
	for _, h := range hints {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(h.Key),
			key.WithHelp(h.Key, h.Desc),
		))
	}
	hm := help.New()
	hm.Width = width
	hm.ShortSeparator = "  "
	hm.Styles.ShortKey = r.theme.HintKey
	hm.Styles.ShortDesc = r.theme.HintDesc
	hm.Styles.ShortSeparator = r.theme.HintDesc
	return hm.ShortHelpView(bindings)
}
