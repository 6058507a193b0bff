package ui

import "slices"

// Navigator is the screen stack. At most one screen, the current one, is
// active; suspended screens keep their state but have no handlers installed.
type Navigator struct {
	app     App
	current Screen
	stack   []Screen
}

// NewNavigator creates an empty navigator. app is passed to activation hooks
// and handlers; it may be nil in tests.
func NewNavigator(app App) *Navigator {
	return &Navigator{app: app}
}

// Current returns the active screen, or nil.
func (n *Navigator) Current() Screen {
	return n.current
}

// Depth returns the number of suspended screens below the current one.
func (n *Navigator) Depth() int {
	return len(n.stack)
}

// Suspended returns the suspended screens, bottom first.
func (n *Navigator) Suspended() []Screen {
	return append([]Screen(nil), n.stack...)
}

// Push suspends the current screen and activates s. A screen may be on the
// stack only once: pushing one that is current or suspended does nothing
// and reports false.
func (n *Navigator) Push(s Screen) bool {
	if s == nil || n.holds(s) {
		return false
	}
	if n.current != nil {
		n.deactivate(n.current)
		n.stack = append(n.stack, n.current)
	}
	n.current = s
	n.activate(s)
	return true
}

// Pop removes the current screen and reactivates the one beneath it, which
// is returned. It returns nil when nothing is left.
func (n *Navigator) Pop() Screen {
	if n.current != nil {
		n.deactivate(n.current)
		n.cleanup(n.current)
		n.current = nil
	}
	if len(n.stack) == 0 {
		return nil
	}
	top := n.stack[len(n.stack)-1]
	n.stack = n.stack[:len(n.stack)-1]
	n.current = top
	n.activate(top)
	return top
}

// Replace swaps the current screen for s without touching the stack. Like
// Push it refuses a screen that is already on the stack.
func (n *Navigator) Replace(s Screen) bool {
	if s == nil || n.holds(s) {
		return false
	}
	if n.current != nil {
		n.deactivate(n.current)
		n.cleanup(n.current)
	}
	n.current = s
	n.activate(s)
	return true
}

// holds reports whether s is the current screen or a suspended one.
func (n *Navigator) holds(s Screen) bool {
	return n.current == s || slices.Contains(n.stack, s)
}

// Reset removes every screen and activates s as the only one.
func (n *Navigator) Reset(s Screen) {
	if n.current != nil {
		n.deactivate(n.current)
		n.cleanup(n.current)
	}
	for i := len(n.stack) - 1; i >= 0; i-- {
		n.cleanup(n.stack[i])
	}
	n.stack = nil
	n.current = s
	n.activate(s)
}

// Clear cleans up every screen and leaves the navigator empty.
func (n *Navigator) Clear() {
	if n.current != nil {
		n.deactivate(n.current)
		n.cleanup(n.current)
		n.current = nil
	}
	for i := len(n.stack) - 1; i >= 0; i-- {
		n.cleanup(n.stack[i])
	}
	n.stack = nil
}

// Breadcrumbs returns the titles of the stack, bottom first, followed by
// the current screen's own breadcrumbs.
func (n *Navigator) Breadcrumbs() []string {
	var out []string
	for _, s := range n.stack {
		if t := s.Config().Title; t != "" {
			out = append(out, t)
		}
	}
	if n.current != nil {
		cfg := n.current.Config()
		if cfg.Title != "" {
			out = append(out, cfg.Title)
		}
		out = append(out, cfg.Breadcrumbs...)
	}
	return out
}

// Context returns a handler context for the current screen.
func (n *Navigator) Context() *Context {
	return n.contextFor(n.current)
}

func (n *Navigator) contextFor(s Screen) *Context {
	return ContextFor(n.app, s)
}

func (n *Navigator) activate(s Screen) {
	if s == nil {
		return
	}
	b := s.Core()
	cfg := s.Config()
	b.chain.Clear()
	if cfg.HasSearch {
		b.chain.Add(searchHandlers()...)
	}
	s.SetupKeyHandlers(&b.chain)
	if cfg.HasBackNavigation {
		b.chain.Add(backHandler())
	}
	b.active = true
	if a, ok := s.(Activator); ok {
		a.OnActivate(n.contextFor(s))
	}
	if n.app != nil {
		n.app.RequestRender()
	}
}

func (n *Navigator) deactivate(s Screen) {
	b := s.Core()
	b.chain.Clear()
	b.active = false
	if d, ok := s.(Deactivator); ok {
		d.OnDeactivate()
	}
}

func (n *Navigator) cleanup(s Screen) {
	b := s.Core()
	b.CancelWork()
	b.Resolve(nil)
	if c, ok := s.(Cleaner); ok {
		c.OnCleanup()
	}
}
