package ui

import (
	"context"
	"sync"

	"secretsui/internal/ui/component"
)

// ScreenConfig declares a screen's capabilities. The navigator installs the
// matching standard key handlers when the screen is activated.
type ScreenConfig struct {
	Title       string
	Breadcrumbs []string

	HasBackNavigation bool // esc pops the screen
	HasSearch         bool // "/" enters search mode
	HasEdit           bool
}

// Screen is one navigable view.
type Screen interface {
	ID() string
	Config() ScreenConfig
	// SetupKeyHandlers installs the screen's own handlers on activation.
	SetupKeyHandlers(chain *HandlerChain)
	// Components describes the frame for the current state.
	Components(state *State) []component.Node
	Core() *Base
}

// Activator is implemented by screens that need to run code each time they
// become the current screen.
type Activator interface {
	OnActivate(c *Context)
}

// Deactivator is implemented by screens notified when they stop being current.
type Deactivator interface {
	OnDeactivate()
}

// Cleaner is implemented by screens that release resources when removed.
type Cleaner interface {
	OnCleanup()
}

// Base carries the bookkeeping every screen needs. Embed it by value and
// return its address from Core. The zero value is ready to use.
type Base struct {
	state  *State
	chain  HandlerChain
	active bool

	once     sync.Once
	result   chan any
	resolved bool

	work   uint64
	cancel context.CancelFunc
}

// Core returns b; it satisfies the Screen method for embedders.
func (b *Base) Core() *Base { return b }

// State returns the screen state.
func (b *Base) State() *State {
	if b.state == nil {
		b.state = NewState(nil)
	}
	return b.state
}

// Handlers returns the screen's handler chain.
func (b *Base) Handlers() *HandlerChain { return &b.chain }

// Active reports whether the screen currently receives input.
func (b *Base) Active() bool { return b.active }

func (b *Base) results() chan any {
	b.once.Do(func() { b.result = make(chan any, 1) })
	return b.result
}

// Await returns a channel that receives the screen's result exactly once:
// the value passed to Resolve, or nil when the screen is cleaned up first.
func (b *Base) Await() <-chan any {
	return b.results()
}

// Resolve completes the screen's result. Only the first call has effect.
func (b *Base) Resolve(v any) bool {
	ch := b.results()
	if b.resolved {
		return false
	}
	b.resolved = true
	ch <- v
	return true
}

// BeginWork cancels any in-flight background work and returns the
// generation for the new one.
func (b *Base) BeginWork(cancel context.CancelFunc) uint64 {
	if b.cancel != nil {
		b.cancel()
	}
	b.work++
	b.cancel = cancel
	return b.work
}

// CurrentWork reports whether gen is still the latest background work.
func (b *Base) CurrentWork(gen uint64) bool {
	return b.work == gen
}

// CancelWork cancels in-flight work and invalidates its generation.
func (b *Base) CancelWork() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.work++
}
