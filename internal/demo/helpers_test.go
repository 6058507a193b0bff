package demo

import (
	"context"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"

	"secretsui/internal/keys"
	"secretsui/internal/ui"
	"secretsui/internal/ui/render"
)

// testApp drives screens without a terminal. Async work runs inline and
// Exec hands the command to runCmd.
type testApp struct {
	nav     *ui.Navigator
	overlay *ui.Overlay
	quit    bool
	runCmd  func(cmd *exec.Cmd) error
	ran     []*exec.Cmd
}

func newTestApp() *testApp {
	a := &testApp{}
	a.nav = ui.NewNavigator(a)
	a.overlay = ui.NewOverlay(a)
	return a
}

func (a *testApp) closePopup() {
	if a.overlay.Active() {
		_ = a.overlay.Close()
	}
}

func (a *testApp) Push(s ui.Screen) { a.closePopup(); a.nav.Push(s) }

func (a *testApp) Pop() ui.Screen {
	a.closePopup()
	top := a.nav.Pop()
	if a.nav.Current() == nil {
		a.quit = true
	}
	return top
}

func (a *testApp) Replace(s ui.Screen) { a.closePopup(); a.nav.Replace(s) }
func (a *testApp) Reset(s ui.Screen)   { a.closePopup(); a.nav.Reset(s) }
func (a *testApp) RequestRender()      {}
func (a *testApp) Quit()               { a.quit = true }

func (a *testApp) ShowPopup(p ui.Popup, onClose func()) error {
	return a.overlay.Show(p, a.nav.Current(), onClose)
}

func (a *testApp) ClosePopup() error { return a.overlay.Close() }

func (a *testApp) Go(s ui.Screen, work func(context.Context) (any, error), apply func(*ui.Context, any, error)) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := s.Core().BeginWork(cancel)
	v, err := work(ctx)
	if s.Core().CurrentWork(gen) {
		apply(ui.ContextFor(a, s), v, err)
	}
}

func (a *testApp) Exec(cmd *exec.Cmd, done func(*ui.Context, error)) {
	a.ran = append(a.ran, cmd)
	var err error
	if a.runCmd != nil {
		err = a.runCmd(cmd)
	}
	done(a.nav.Context(), err)
}

func (a *testApp) press(ev keys.Event) {
	cur := a.nav.Current()
	if cur == nil {
		return
	}
	if _, err := cur.Core().Handlers().Dispatch(a.nav.Context(), ev); err != nil {
		panic(err)
	}
}

func (a *testApp) typeText(s string) {
	for _, r := range s {
		a.press(keys.Runes(string(r)))
	}
}

func (a *testApp) state() *ui.State {
	return a.nav.Current().Core().State()
}

func (a *testApp) frame(r *render.Renderer) string {
	cur := a.nav.Current()
	frame := r.Render(cur.Components(cur.Core().State()), render.NewContext(render.Size{Rows: 24, Cols: 80}))
	return a.overlay.Render(frame, render.Size{Rows: 24, Cols: 80})
}

var (
	keyEnter = keys.New(tea.KeyEnter)
	keyDown  = keys.New(tea.KeyDown)
	keyTab   = keys.New(tea.KeyTab)
)
