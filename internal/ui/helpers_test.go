package ui

import (
	"context"
	"os/exec"

	"secretsui/internal/keys"
	"secretsui/internal/ui/component"
)

type testScreen struct {
	Base
	id       string
	cfg      ScreenConfig
	handlers []Handler

	activations   int
	deactivations int
	cleanups      int
}

func newTestScreen(id string, cfg ScreenConfig, hs ...Handler) *testScreen {
	if cfg.Title == "" {
		cfg.Title = id
	}
	return &testScreen{id: id, cfg: cfg, handlers: hs}
}

func (s *testScreen) ID() string                         { return s.id }
func (s *testScreen) Config() ScreenConfig               { return s.cfg }
func (s *testScreen) SetupKeyHandlers(c *HandlerChain)   { c.Add(s.handlers...) }
func (s *testScreen) OnActivate(*Context)                { s.activations++ }
func (s *testScreen) OnDeactivate()                      { s.deactivations++ }
func (s *testScreen) OnCleanup()                         { s.cleanups++ }
func (s *testScreen) Components(*State) []component.Node { return []component.Node{component.Text(s.id, component.StyleNormal)} }

// fakeApp wires a navigator and overlay together without a terminal.
type fakeApp struct {
	nav     *Navigator
	overlay *Overlay
	renders int
	quit    bool
}

func newFakeApp() *fakeApp {
	a := &fakeApp{}
	a.nav = NewNavigator(a)
	a.overlay = NewOverlay(a)
	return a
}

func (a *fakeApp) Push(s Screen)    { a.nav.Push(s) }
func (a *fakeApp) Pop() Screen      { return a.nav.Pop() }
func (a *fakeApp) Replace(s Screen) { a.nav.Replace(s) }
func (a *fakeApp) Reset(s Screen)   { a.nav.Reset(s) }
func (a *fakeApp) RequestRender()   { a.renders++ }
func (a *fakeApp) Quit()            { a.quit = true }

func (a *fakeApp) ShowPopup(p Popup, onClose func()) error {
	return a.overlay.Show(p, a.nav.Current(), onClose)
}

func (a *fakeApp) ClosePopup() error { return a.overlay.Close() }

func (a *fakeApp) Go(s Screen, work func(context.Context) (any, error), apply func(*Context, any, error)) {
	v, err := work(context.Background())
	apply(a.nav.contextFor(s), v, err)
}

func (a *fakeApp) Exec(_ *exec.Cmd, done func(*Context, error)) {
	done(a.nav.Context(), nil)
}

// press dispatches ev to the current screen's chain.
func (a *fakeApp) press(ev keys.Event) bool {
	cur := a.nav.Current()
	if cur == nil {
		return false
	}
	ok, err := cur.Core().Handlers().Dispatch(a.nav.Context(), ev)
	if err != nil {
		panic(err)
	}
	return ok
}

func names(c *HandlerChain) []string {
	var out []string
	for _, h := range c.Handlers() {
		out = append(out, h.Name)
	}
	return out
}
