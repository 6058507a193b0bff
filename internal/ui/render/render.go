// Package render turns component trees into fixed-width terminal text.
//
// A frame is split into three zones: the header (the first header node),
// the footer (footer and instruction nodes) and the body (everything else).
// Header and footer take whatever height they need; the body gets the rest,
// and paginating lists size their window to it.
package render

import (
	"strings"

	"secretsui/internal/ui/component"
	"secretsui/internal/ui/textutil"
)

const (
	// DefaultMinBodyHeight is the smallest height the body zone is given.
	DefaultMinBodyHeight = 3
	// DefaultReservedRows are rows kept free below the footer.
	DefaultReservedRows = 1
)

// Size is the terminal size in character cells.
type Size struct {
	Rows int
	Cols int
}

// Layout is passed to body renderers so lists can paginate.
type Layout struct {
	AvailableHeight int
	AvailableWidth  int
}

// Zones holds the rendered lines of each zone of one frame.
type Zones struct {
	Header []string
	Body   []string
	Footer []string
}

// Lines concatenates header, body and footer.
func (z Zones) Lines() []string {
	out := make([]string, 0, len(z.Header)+len(z.Body)+len(z.Footer))
	out = append(out, z.Header...)
	out = append(out, z.Body...)
	return append(out, z.Footer...)
}

// Context is the per-engine state a render pass reads and updates: the
// terminal size and the rendered-header cache. One engine owns one Context.
type Context struct {
	Size Size

	headerKey   string
	headerLines []string
}

// NewContext returns a context for a terminal of the given size.
func NewContext(size Size) *Context {
	return &Context{Size: size}
}

// Resize updates the size and drops cached output that depends on it.
func (c *Context) Resize(size Size) {
	if c.Size != size {
		c.Size = size
		c.headerKey = ""
		c.headerLines = nil
	}
}

// Options configures a Renderer.
type Options struct {
	MinBodyHeight int
	ReservedRows  int
	Theme         Theme
}

// Renderer renders component trees.
type Renderer struct {
	minBody  int
	reserved int
	theme    Theme
}

// New creates a renderer. A zero MinBodyHeight or Theme and a negative
// ReservedRows fall back to the package defaults.
func New(opts Options) *Renderer {
	if opts.MinBodyHeight <= 0 {
		opts.MinBodyHeight = DefaultMinBodyHeight
	}
	if opts.ReservedRows < 0 {
		opts.ReservedRows = DefaultReservedRows
	}
	if opts.Theme.Palette == (Palette{}) {
		opts.Theme = NewTheme(DefaultPalette())
	}
	return &Renderer{
		minBody:  opts.MinBodyHeight,
		reserved: opts.ReservedRows,
		theme:    opts.Theme,
	}
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Render renders nodes into one newline-joined frame.
func (r *Renderer) Render(nodes []component.Node, ctx *Context) string {
	return strings.Join(r.Zones(nodes, ctx).Lines(), "\n")
}

// Zones renders nodes and returns each zone separately.
func (r *Renderer) Zones(nodes []component.Node, ctx *Context) Zones {
	if ctx == nil {
		ctx = NewContext(Size{Rows: 24, Cols: 80})
	}
	width := ctx.Size.Cols
	if width <= 0 {
		width = 80
	}

	var header *component.Node
	var body, footer []component.Node
	for _, n := range component.Flatten(nodes...) {
		switch n.Kind() {
		case component.KindHeader:
			if header == nil {
				header = &n
				continue
			}
			body = append(body, n)
		case component.KindFooter, component.KindInstructions:
			footer = append(footer, n)
		default:
			body = append(body, n)
		}
	}

	var z Zones
	if header != nil {
		z.Header = r.cachedHeader(*header, ctx, width)
	}
	full := Layout{AvailableHeight: ctx.Size.Rows, AvailableWidth: width}
	for _, n := range footer {
		z.Footer = append(z.Footer, r.Lines(n, full)...)
	}

	avail := ctx.Size.Rows - len(z.Header) - len(z.Footer) - r.reserved
	if avail < r.minBody {
		avail = r.minBody
	}
	// Each body node gets the height its predecessors left over, so a list
	// below a search field sizes its window to the rows that remain.
	for _, n := range body {
		left := avail - len(z.Body)
		if left < 1 {
			left = 1
		}
		z.Body = append(z.Body, r.Lines(n, Layout{AvailableHeight: left, AvailableWidth: width})...)
	}
	return z
}

// AvailableHeight returns the body height for a frame with the given header
// and footer heights.
func (r *Renderer) AvailableHeight(rows, headerHeight, footerHeight int) int {
	avail := rows - headerHeight - footerHeight - r.reserved
	if avail < r.minBody {
		return r.minBody
	}
	return avail
}

func (r *Renderer) cachedHeader(n component.Node, ctx *Context, width int) []string {
	key := n.String("title") + "\x00" + strings.Join(n.Strings("breadcrumbs"), "\x00")
	if ctx.headerKey == key && ctx.headerLines != nil {
		return ctx.headerLines
	}
	lines := r.renderHeader(n, width)
	ctx.headerKey = key
	ctx.headerLines = lines
	return lines
}

// Lines renders a single node within layout. Every returned line fits
// layout.AvailableWidth visible columns.
func (r *Renderer) Lines(n component.Node, layout Layout) []string {
	width := layout.AvailableWidth
	var lines []string
	switch n.Kind() {
	case component.KindFragment:
		for _, c := range component.Flatten(n) {
			lines = append(lines, r.Lines(c, layout)...)
		}
	case component.KindHeader:
		lines = r.renderHeader(n, width)
	case component.KindFooter:
		lines = r.renderFooter(n, width)
	case component.KindInstructions:
		for _, l := range n.Strings("lines") {
			lines = append(lines, r.theme.Muted.Render(l))
		}
	case component.KindContainer:
		lines = r.renderContainer(n, layout)
	case component.KindText:
		lines = r.renderText(n, width)
	case component.KindTitledText:
		lines = r.renderTitledText(n, width)
	case component.KindKeyValue:
		lines = r.renderKeyValue(n)
	case component.KindSearchField:
		lines = r.renderSearchField(n, width)
	case component.KindTextField:
		lines = r.renderTextField(n, width)
	case component.KindList:
		lines = r.renderList(n, layout)
	case component.KindGrid:
		lines = r.renderGrid(n, layout)
	case component.KindTabs:
		lines = r.renderTabs(n)
	case component.KindBox:
		lines = r.renderBox(n, layout)
	case component.KindKeyHints:
		lines = []string{r.hintLine(n.Hints(), width)}
	case component.KindTable:
		lines = r.renderTable(n)
	case component.KindSpacer:
		lines = make([]string, n.Int("lines"))
	case component.KindDivider:
		lines = []string{r.theme.Muted.Render(strings.Repeat("─", width))}
	case component.KindLoading:
		lines = []string{r.renderLoading(n)}
	}
	for i, l := range lines {
		if textutil.VisualWidth(l) > width {
			lines[i] = textutil.Truncate(l, width)
		}
	}
	return lines
}

func (r *Renderer) renderHeader(n component.Node, width int) []string {
	line := r.theme.Title.Render(n.String("title"))
	if crumbs := n.Strings("breadcrumbs"); len(crumbs) > 0 {
		sep := r.theme.Crumb.Render(" › ")
		parts := make([]string, len(crumbs))
		for i, c := range crumbs {
			if i == len(crumbs)-1 {
				parts[i] = r.theme.Normal.Render(c)
			} else {
				parts[i] = r.theme.Crumb.Render(c)
			}
		}
		if line != "" {
			line += "  "
		}
		line += strings.Join(parts, sep)
	}
	return []string{
		textutil.Truncate(line, width),
		r.theme.Muted.Render(strings.Repeat("─", width)),
	}
}

func (r *Renderer) renderFooter(n component.Node, width int) []string {
	hints := n.Hints()
	if len(hints) == 0 {
		return nil
	}
	return []string{
		r.theme.Muted.Render(strings.Repeat("─", width)),
		r.hintLine(hints, width),
	}
}

func (r *Renderer) renderContainer(n component.Node, layout Layout) []string {
	pad := n.Int("padding")
	inner := layout
	if pad > 0 {
		inner.AvailableWidth -= pad
	}
	var lines []string
	for _, c := range component.Flatten(n.Children()...) {
		for _, l := range r.Lines(c, inner) {
			if pad > 0 && l != "" {
				l = strings.Repeat(" ", pad) + l
			}
			lines = append(lines, l)
		}
	}
	return lines
}
