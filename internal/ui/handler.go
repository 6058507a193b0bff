package ui

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/charmbracelet/bubbles/key"

	"secretsui/internal/keys"
)

// App is the controller handlers and popups use to drive the engine.
type App interface {
	Push(s Screen)
	Pop() Screen
	Replace(s Screen)
	Reset(s Screen)
	ShowPopup(p Popup, onClose func()) error
	ClosePopup() error
	RequestRender()
	Quit()
	// Go runs work off the input path and hands its result to apply on it.
	// Starting new work for s supersedes (and cancels) the previous one.
	Go(s Screen, work func(ctx context.Context) (any, error), apply func(c *Context, v any, err error))
	// Exec hands the terminal to cmd and calls done once it exits.
	Exec(cmd *exec.Cmd, done func(c *Context, err error))
}

// Context is the explicit handle a handler may mutate: the active screen's
// state, the screen itself and the engine controller.
type Context struct {
	App    App
	Screen Screen
	State  *State
}

// ContextFor returns a handler context for s.
func ContextFor(app App, s Screen) *Context {
	c := &Context{App: app, Screen: s}
	if s != nil {
		c.State = s.Core().State()
	}
	return c
}

// Handler is one (predicate, action) pair of a key handler chain.
// The predicate is Match when set, otherwise Keys.
type Handler struct {
	Name   string
	Keys   key.Binding
	Match  func(ev keys.Event) bool
	Action func(c *Context, ev keys.Event) bool
}

// Matches reports whether h wants ev.
func (h Handler) Matches(ev keys.Event) bool {
	if h.Match != nil {
		return h.Match(ev)
	}
	return h.Keys.Enabled() && key.Matches(ev, h.Keys)
}

// HandlerError reports a handler that panicked.
type HandlerError struct {
	Handler string
	Key     string
	Value   any
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %q panicked on key %q: %v", e.Handler, e.Key, e.Value)
}

// HandlerChain is an ordered first-match-wins list of handlers.
type HandlerChain struct {
	handlers []Handler
}

// Add appends handlers.
func (c *HandlerChain) Add(hs ...Handler) {
	c.handlers = append(c.handlers, hs...)
}

// Len returns the number of installed handlers.
func (c *HandlerChain) Len() int {
	return len(c.handlers)
}

// Clear removes every handler.
func (c *HandlerChain) Clear() {
	c.handlers = nil
}

// Take removes and returns the installed handlers.
func (c *HandlerChain) Take() []Handler {
	hs := c.handlers
	c.handlers = nil
	return hs
}

// Restore replaces the chain with hs exactly.
func (c *HandlerChain) Restore(hs []Handler) {
	c.handlers = hs
}

// Handlers returns a copy of the installed handlers.
func (c *HandlerChain) Handlers() []Handler {
	return append([]Handler(nil), c.handlers...)
}

// Bindings returns the enabled bindings that carry help text.
func (c *HandlerChain) Bindings() []key.Binding {
	var out []key.Binding
	for _, h := range c.handlers {
		if h.Keys.Enabled() && h.Keys.Help().Key != "" {
			out = append(out, h.Keys)
		}
	}
	return out
}

// Dispatch offers ev to each matching handler in order until one reports it
// handled. A panicking handler stops dispatch and is returned as a
// *HandlerError.
func (c *HandlerChain) Dispatch(ctx *Context, ev keys.Event) (handled bool, err error) {
	// Actions may rewrite the chain (e.g. showing a popup); iterate a snapshot.
	for _, h := range c.Handlers() {
		if !h.Matches(ev) || h.Action == nil {
			continue
		}
		ok, err := invoke(h, ctx, ev)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func invoke(h Handler, ctx *Context, ev keys.Event) (handled bool, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &HandlerError{Handler: h.Name, Key: ev.String(), Value: v}
		}
	}()
	return h.Action(ctx, ev), nil
}
