package component

// TextStyle names one of the theme's text styles.
type TextStyle string

const (
	StyleNormal    TextStyle = "normal"
	StyleMuted     TextStyle = "muted"
	StyleAccent    TextStyle = "accent"
	StyleHighlight TextStyle = "highlight"
	StyleDanger    TextStyle = "danger"
	StyleSuccess   TextStyle = "success"
	StyleBold      TextStyle = "bold"
)

func validStyle(s TextStyle) TextStyle {
	switch s {
	case StyleNormal, StyleMuted, StyleAccent, StyleHighlight, StyleDanger, StyleSuccess, StyleBold:
		return s
	default:
		return StyleNormal
	}
}

// Hint is one key-binding hint, e.g. {"esc", "back"}.
type Hint struct {
	Key  string
	Desc string
}

// Item is one row of a selectable list.
type Item struct {
	Label  string
	Detail string // rendered muted after the label
	Muted  bool
}

// ListOptions configures a selectable list.
type ListOptions struct {
	Query      string // highlighted case-insensitively in labels
	NoPaginate bool   // render every item regardless of available height
	Height     int    // explicit window size; 0 uses the available body height
	EmptyText  string
}

// Fragment groups nodes without adding structure; the renderer flattens it.
func Fragment(nodes ...Node) Node {
	return newNode(KindFragment, nil, copyNodes(nodes)...)
}

// Header is the title bar with the breadcrumb path.
func Header(title string, breadcrumbs []string) Node {
	return newNode(KindHeader, Attrs{
		"title":       title,
		"breadcrumbs": copyStrings(breadcrumbs),
	})
}

// Footer renders key hints below the body.
func Footer(hints ...Hint) Node {
	return newNode(KindFooter, Attrs{"hints": copyHints(hints)})
}

// Instructions is muted footer text.
func Instructions(lines ...string) Node {
	return newNode(KindInstructions, Attrs{"lines": copyStrings(lines)})
}

// Container stacks its children vertically.
func Container(children ...Node) Node {
	return newNode(KindContainer, Attrs{"padding": 0}, copyNodes(children)...)
}

// Text is a block of text in one style. Newlines split lines.
func Text(content string, style TextStyle) Node {
	return newNode(KindText, Attrs{"content": content, "style": string(validStyle(style))})
}

// TitledText is a title line followed by content.
func TitledText(title, content string) Node {
	return newNode(KindTitledText, Attrs{"title": title, "content": content})
}

// KeyValue renders "label: value".
func KeyValue(label, value string) Node {
	return newNode(KindKeyValue, Attrs{"label": label, "value": value, "labelWidth": 0})
}

// SearchField renders the search input line.
func SearchField(query string, active bool, placeholder string) Node {
	if placeholder == "" {
		placeholder = "type to search"
	}
	return newNode(KindSearchField, Attrs{"query": query, "active": active, "placeholder": placeholder})
}

// TextField is a bordered single-line input.
func TextField(label, value string, focused bool, width int) Node {
	if width < 0 {
		width = 0
	}
	return newNode(KindTextField, Attrs{"label": label, "value": value, "focused": focused, "width": width})
}

// List is a selectable, paginated list.
func List(items []Item, selected int, opts ListOptions) Node {
	items = append([]Item(nil), items...)
	selected = clampIndex(selected, len(items))
	if opts.EmptyText == "" {
		opts.EmptyText = "No items"
	}
	if opts.Height < 0 {
		opts.Height = 0
	}
	return newNode(KindList, Attrs{
		"items":     items,
		"selected":  selected,
		"query":     opts.Query,
		"paginate":  !opts.NoPaginate,
		"height":    opts.Height,
		"emptyText": opts.EmptyText,
	})
}

// Grid is a compact multi-column grid paginated by rows.
func Grid(items []string, selected, cellWidth int) Node {
	items = copyStrings(items)
	if cellWidth <= 0 {
		cellWidth = 16
	}
	return newNode(KindGrid, Attrs{
		"items":     items,
		"selected":  clampIndex(selected, len(items)),
		"cellWidth": cellWidth,
	})
}

// Tabs is a horizontal tab strip.
func Tabs(labels []string, active int) Node {
	labels = copyStrings(labels)
	return newNode(KindTabs, Attrs{"labels": labels, "active": clampIndex(active, len(labels))})
}

// Box draws a border around its children. Tone "danger" uses the danger color.
func Box(title string, children ...Node) Node {
	return newNode(KindBox, Attrs{"title": title, "width": 0, "tone": "default"}, copyNodes(children)...)
}

// KeyHints renders a single key-binding hint line.
func KeyHints(hints ...Hint) Node {
	return newNode(KindKeyHints, Attrs{"hints": copyHints(hints)})
}

// Table renders rows under a header row.
func Table(headers []string, rows [][]string) Node {
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = copyStrings(r)
	}
	return newNode(KindTable, Attrs{"headers": copyStrings(headers), "rows": cp})
}

// Spacer inserts n blank lines (at least one).
func Spacer(n int) Node {
	if n < 1 {
		n = 1
	}
	return newNode(KindSpacer, Attrs{"lines": n})
}

// Divider is a horizontal rule across the available width.
func Divider() Node {
	return newNode(KindDivider, Attrs{})
}

// Loading shows a spinner frame next to message.
func Loading(message string, frame int) Node {
	if frame < 0 {
		frame = 0
	}
	return newNode(KindLoading, Attrs{"message": message, "frame": frame})
}

// Items returns a list node's items.
func (n Node) Items() []Item {
	items, _ := n.attrs["items"].([]Item)
	return items
}

// Hints returns the hints of a footer or key-hints node.
func (n Node) Hints() []Hint {
	hints, _ := n.attrs["hints"].([]Hint)
	return hints
}

// Rows returns a table node's rows.
func (n Node) Rows() [][]string {
	rows, _ := n.attrs["rows"].([][]string)
	return rows
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func copyStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}

func copyHints(h []Hint) []Hint {
	return append([]Hint{}, h...)
}

func copyNodes(n []Node) []Node {
	if len(n) == 0 {
		return nil
	}
	return append([]Node(nil), n...)
}
