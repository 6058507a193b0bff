package component

// TitledList is a bold title above a selectable list.
func TitledList(title string, items []Item, selected int, opts ListOptions) Node {
	return Container(
		Text(title, StyleAccent),
		List(items, selected, opts),
	)
}

// LabeledValue is a key-value pair with the label padded to labelWidth.
func LabeledValue(label, value string, labelWidth int) Node {
	if labelWidth < 0 {
		labelWidth = 0
	}
	return KeyValue(label, value).With(Attrs{"labelWidth": labelWidth})
}

// Section is a titled group of children separated from what follows by a
// blank line.
func Section(title string, children ...Node) Node {
	nodes := append([]Node{Text(title, StyleHighlight)}, children...)
	nodes = append(nodes, Spacer(1))
	return Container(nodes...)
}

// Modal is a danger- or default-toned box of fixed width.
func Modal(title string, width int, danger bool, children ...Node) Node {
	tone := "default"
	if danger {
		tone = "danger"
	}
	return Box(title, children...).With(Attrs{"width": width, "tone": tone})
}
