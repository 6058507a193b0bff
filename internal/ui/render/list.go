package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"secretsui/internal/ui/component"
	"secretsui/internal/ui/textutil"
)

const selectionMarker = "▸ "

// Window returns the half-open range [start, end) of a list of n items that
// should be visible when at most height rows fit. The window is centered on
// selected, clamped to the list, and always contains selected.
func Window(n, selected, height int) (start, end int) {
	if n <= 0 {
		return 0, 0
	}
	if height <= 0 {
		height = 1
	}
	if height >= n {
		return 0, n
	}
	if selected < 0 {
		selected = 0
	}
	if selected >= n {
		selected = n - 1
	}
	start = selected - height/2
	if start < 0 {
		start = 0
	}
	end = start + height
	if end > n {
		end = n
		start = n - height
	}
	return start, end
}

// fitWindow is Window for a list drawn in height rows including its
// more-above and more-below indicator lines.
func fitWindow(n, selected, height int) (start, end int) {
	if n <= height {
		return 0, n
	}
	start, end = Window(n, selected, max(height-1, 1))
	if start > 0 && end < n {
		start, end = Window(n, selected, max(height-2, 1))
	}
	return start, end
}

func (r *Renderer) renderList(n component.Node, layout Layout) []string {
	items := n.Items()
	if len(items) == 0 {
		return []string{r.theme.Empty.Render("  " + n.String("emptyText"))}
	}
	selected := n.Int("selected")
	start, end := 0, len(items)
	if n.Bool("paginate") {
		h := n.Int("height")
		if h <= 0 {
			h = layout.AvailableHeight
		}
		start, end = fitWindow(len(items), selected, h)
	}

	query := n.String("query")
	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, r.theme.Muted.Render(fmt.Sprintf("  ↑ %d more above", start)))
	}
	for i := start; i < end; i++ {
		it := items[i]
		base := r.theme.Normal
		marker := "  "
		if it.Muted {
			base = r.theme.Muted
		}
		if i == selected {
			base = r.theme.Selected
			marker = selectionMarker
		}
		line := base.Render(marker) + highlight(it.Label, query, base, r.theme.Match)
		if it.Detail != "" {
			line += "  " + r.theme.Muted.Render(it.Detail)
		}
		lines = append(lines, line)
	}
	if end < len(items) {
		lines = append(lines, r.theme.Muted.Render(fmt.Sprintf("  ↓ %d more below", len(items)-end)))
	}
	return lines
}

// highlight renders s in base with every case-insensitive occurrence of
// query rendered in match.
func highlight(s, query string, base, match lipgloss.Style) string {
	if query == "" {
		return base.Render(s)
	}
	src := []rune(s)
	lower := []rune(strings.Map(unicode.ToLower, s))
	q := []rune(strings.Map(unicode.ToLower, query))
	if len(lower) != len(src) || len(q) == 0 {
		return base.Render(s)
	}

	var b strings.Builder
	last := 0
	for i := 0; i+len(q) <= len(lower); {
		if string(lower[i:i+len(q)]) != string(q) {
			i++
			continue
		}
		if i > last {
			b.WriteString(base.Render(string(src[last:i])))
		}
		b.WriteString(match.Render(string(src[i : i+len(q)])))
		i += len(q)
		last = i
	}
	if last < len(src) {
		b.WriteString(base.Render(string(src[last:])))
	}
	return b.String()
}

func (r *Renderer) renderGrid(n component.Node, layout Layout) []string {
	items := n.Strings("items")
	if len(items) == 0 {
		return []string{r.theme.Empty.Render("  No items")}
	}
	cellWidth := n.Int("cellWidth")
	cols := layout.AvailableWidth / cellWidth
	if cols < 1 {
		cols = 1
	}
	rows := (len(items) + cols - 1) / cols

	perPage := layout.AvailableHeight - 1
	if perPage < 1 {
		perPage = 1
	}
	pages := (rows + perPage - 1) / perPage
	selected := n.Int("selected")
	page := (selected / cols) / perPage

	var lines []string
	for row := page * perPage; row < rows && row < (page+1)*perPage; row++ {
		var b strings.Builder
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(items) {
				break
			}
			cell := textutil.PadRight(" "+items[i], cellWidth-1)
			if i == selected {
				b.WriteString(r.theme.Selected.Reverse(true).Render(cell))
			} else {
				b.WriteString(r.theme.Normal.Render(cell))
			}
			b.WriteString(" ")
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	if pages > 1 {
		lines = append(lines, r.theme.Muted.Render(fmt.Sprintf("  page %d/%d", page+1, pages)))
	}
	return lines
}
