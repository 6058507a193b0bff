package ui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"

	"secretsui/internal/keys"
)

// StateFocus is the state key the focus handlers keep the current target in.
const StateFocus = "focus"

// Focus rotates through a fixed order of named targets such as tabs.
type Focus struct {
	order    []string
	index    int
	OnChange func(from, to string)
}

// NewFocus creates a focus ring starting at the first target.
func NewFocus(order ...string) *Focus {
	return &Focus{order: order}
}

// Current returns the focused target, or "" for an empty ring.
func (f *Focus) Current() string {
	if len(f.order) == 0 {
		return ""
	}
	return f.order[f.index]
}

// Index returns the position of the focused target.
func (f *Focus) Index() int { return f.index }

// Order returns the targets.
func (f *Focus) Order() []string { return slices.Clone(f.order) }

// Next focuses the following target, wrapping around.
func (f *Focus) Next() string { return f.move(1) }

// Prev focuses the preceding target, wrapping around.
func (f *Focus) Prev() string { return f.move(-1) }

// Set focuses id and reports whether it is part of the order.
func (f *Focus) Set(id string) bool {
	i := slices.Index(f.order, id)
	if i < 0 {
		return false
	}
	f.change(i)
	return true
}

func (f *Focus) move(delta int) string {
	if len(f.order) == 0 {
		return ""
	}
	n := len(f.order)
	f.change(((f.index+delta)%n + n) % n)
	return f.Current()
}

func (f *Focus) change(i int) {
	from := f.Current()
	f.index = i
	if to := f.Current(); f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}

// Handlers returns tab and shift+tab handlers that rotate f and record the
// focused target in the screen state.
func (f *Focus) Handlers() []Handler {
	rotate := func(step func() string) func(*Context, keys.Event) bool {
		return func(c *Context, _ keys.Event) bool {
			cur := step()
			if c.State != nil {
				c.State.Set(StateFocus, cur)
			}
			return true
		}
	}
	return []Handler{
		{
			Name:   "focus.next",
			Keys:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
			Action: rotate(f.Next),
		},
		{
			Name:   "focus.prev",
			Keys:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
			Action: rotate(f.Prev),
		},
	}
}
