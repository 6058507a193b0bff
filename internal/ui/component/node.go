// Package component describes UI declaratively. Nodes are passive values
// built by the constructors in this package; the render package turns a
// tree of them into terminal text. Nothing here performs I/O.
package component

import "maps"

// Kind identifies a visual primitive.
type Kind string

const (
	KindFragment     Kind = "fragment"
	KindHeader       Kind = "header"
	KindFooter       Kind = "footer"
	KindInstructions Kind = "instructions"
	KindContainer    Kind = "container"
	KindText         Kind = "text"
	KindTitledText   Kind = "titled-text"
	KindKeyValue     Kind = "key-value"
	KindSearchField  Kind = "search-field"
	KindTextField    Kind = "text-field"
	KindList         Kind = "list"
	KindGrid         Kind = "grid"
	KindTabs         Kind = "tabs"
	KindBox          Kind = "box"
	KindKeyHints     Kind = "key-hints"
	KindTable        Kind = "table"
	KindSpacer       Kind = "spacer"
	KindDivider      Kind = "divider"
	KindLoading      Kind = "loading"
)

// Attrs is the attribute map of a node.
type Attrs map[string]any

// Node is one element of a UI tree. The zero value is an empty fragment.
type Node struct {
	kind     Kind
	attrs    Attrs
	children []Node
}

func newNode(kind Kind, attrs Attrs, children ...Node) Node {
	return Node{kind: kind, attrs: attrs, children: children}
}

// Kind returns the node kind.
func (n Node) Kind() Kind {
	if n.kind == "" {
		return KindFragment
	}
	return n.kind
}

// Children returns a copy of the node's children.
func (n Node) Children() []Node {
	if len(n.children) == 0 {
		return nil
	}
	return append([]Node(nil), n.children...)
}

// Attr returns the raw attribute value.
func (n Node) Attr(key string) (any, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// String returns a string attribute or "".
func (n Node) String(key string) string {
	s, _ := n.attrs[key].(string)
	return s
}

// Int returns an int attribute or 0.
func (n Node) Int(key string) int {
	i, _ := n.attrs[key].(int)
	return i
}

// Bool returns a bool attribute or false.
func (n Node) Bool(key string) bool {
	b, _ := n.attrs[key].(bool)
	return b
}

// Strings returns a []string attribute.
func (n Node) Strings(key string) []string {
	s, _ := n.attrs[key].([]string)
	return s
}

// With returns a copy of n with overrides applied. n itself is unchanged.
func (n Node) With(overrides Attrs) Node {
	attrs := maps.Clone(n.attrs)
	if attrs == nil {
		attrs = Attrs{}
	}
	maps.Copy(attrs, overrides)
	return Node{kind: n.kind, attrs: attrs, children: n.Children()}
}

// Flatten expands fragments recursively into one ordered sequence.
func Flatten(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind() == KindFragment {
			out = append(out, Flatten(n.children...)...)
			continue
		}
		out = append(out, n)
	}
	return out
}
