// Package engine runs the terminal UI: it reads and decodes keys, routes
// them to global bindings, the active popup or the current screen, and
// redraws the frame when something changed.
//
// Everything the engine owns (the screen stack, the popup, the render
// context) is touched only from the goroutine running Run. Background work
// started with Go reports back through the same loop.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"

	"secretsui/internal/keys"
	"secretsui/internal/logging"
	"secretsui/internal/telemetry"
	"secretsui/internal/terminal"
	"secretsui/internal/ui"
	"secretsui/internal/ui/component"
	"secretsui/internal/ui/render"
)

const subsystem = "engine"

// ErrSuspended is returned by Suspend when the engine is already suspended.
var ErrSuspended = errors.New("engine: already suspended")

// Options configures an Engine.
type Options struct {
	Terminal terminal.Terminal
	Renderer *render.Renderer
	// Title heads every frame, followed by the navigation breadcrumbs.
	Title         string
	EscapeTimeout time.Duration
	NoAltScreen   bool
	// Registry holds global bindings. ctrl+c is bound to Quit unless the
	// registry already binds it.
	Registry  *ui.KeybindRegistry
	LeaderKey string
	Tracer    oteltrace.Tracer
	// Signals installs handlers for termination and resize signals.
	Signals bool
	// RunCommand runs Exec commands; it defaults to (*exec.Cmd).Run.
	RunCommand func(cmd *exec.Cmd) error
}

// Engine is the event loop. Create it with New and start it with Run.
type Engine struct {
	term     terminal.Terminal
	renderer *render.Renderer
	rctx     *render.Context
	decoder  *keys.Decoder
	nav      *ui.Navigator
	overlay  *ui.Overlay
	keyh     *ui.KeyHandler
	tracer   oteltrace.Tracer
	title    string
	alt      bool
	signals  bool
	runCmd   func(*exec.Cmd) error

	runCtx    context.Context
	pump      *terminal.Pump
	posted    chan func()
	done      chan struct{}
	dirty     bool
	quit      bool
	suspended bool
	lastFrame string
	lastHints []component.Hint
	// typeahead holds keys read but not yet dispatched when input was
	// suspended. Resume replays them.
	typeahead []byte
}

var _ ui.App = (*Engine)(nil)

// New creates an engine.
func New(opts Options) *Engine {
	if opts.Renderer == nil {
		opts.Renderer = render.New(render.Options{ReservedRows: -1})
	}
	if opts.EscapeTimeout <= 0 {
		opts.EscapeTimeout = keys.DefaultTimeout
	}
	if opts.Registry == nil {
		opts.Registry = ui.NewKeybindRegistry()
	}
	if opts.Tracer == nil {
		opts.Tracer = telemetry.Disabled().Tracer()
	}
	if opts.RunCommand == nil {
		opts.RunCommand = (*exec.Cmd).Run
	}
	e := &Engine{
		term:     opts.Terminal,
		renderer: opts.Renderer,
		rctx:     render.NewContext(render.Size{Rows: 24, Cols: 80}),
		decoder:  keys.NewDecoder(opts.EscapeTimeout),
		tracer:   opts.Tracer,
		title:    opts.Title,
		alt:      !opts.NoAltScreen,
		signals:  opts.Signals,
		runCmd:   opts.RunCommand,
		runCtx:   context.Background(),
		posted:   make(chan func(), 64),
		done:     make(chan struct{}),
	}
	if opts.Registry.Lookup("ctrl+c") == nil {
		opts.Registry.Bind("ctrl+c", "quit", func(*ui.Context) { e.Quit() })
	}
	e.keyh = ui.NewKeyHandler(opts.Registry, opts.LeaderKey)
	e.nav = ui.NewNavigator(e)
	e.overlay = ui.NewOverlay(e)
	return e
}

// Navigator returns the screen stack.
func (e *Engine) Navigator() *ui.Navigator { return e.nav }

// Overlay returns the popup overlay.
func (e *Engine) Overlay() *ui.Overlay { return e.overlay }

// Renderer returns the renderer.
func (e *Engine) Renderer() *render.Renderer { return e.renderer }

// Size returns the terminal size last seen by the engine.
func (e *Engine) Size() render.Size { return e.rctx.Size }

// Run shows root and processes events until Quit, a termination signal,
// the end of input or ctx is done. The terminal is restored and every
// screen cleaned up on all of these paths.
func (e *Engine) Run(ctx context.Context, root ui.Screen) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	e.runCtx = ctx
	defer close(e.done)

	if err := e.setup(); err != nil {
		e.teardown()
		return err
	}
	defer func() {
		e.nav.Clear()
		e.teardown()
		logging.Info(subsystem, "stopped")
	}()

	var sigs chan os.Signal
	if e.signals {
		sigs = make(chan os.Signal, 4)
		signal.Notify(sigs, append(terminationSignals, resizeSignals...)...)
		defer signal.Stop(sigs)
	}

	e.refreshSize()
	e.nav.Push(root)
	e.flush()

	for !e.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunk, ok := <-e.input():
			if !ok {
				err := e.pump.Err()
				e.pump = nil
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				logging.Info(subsystem, "input closed")
				return nil
			}
			for _, ev := range e.decoder.Feed(chunk) {
				e.dispatch(ev)
			}
		case <-e.decoder.Expired():
			for _, ev := range e.decoder.Flush() {
				e.dispatch(ev)
			}
		case fn := <-e.posted:
			fn()
		case sig := <-sigs:
			if isResize(sig) {
				e.refreshSize()
				break
			}
			logging.Info(subsystem, "received %s", sig)
			return nil
		}
		e.flush()
	}
	return nil
}

func (e *Engine) setup() error {
	if err := e.term.EnableRaw(); err != nil {
		return err
	}
	if e.alt {
		if err := e.term.EnterAltScreen(); err != nil {
			return err
		}
	}
	pump, err := terminal.StartPump(e.term.Input())
	if err != nil {
		return fmt.Errorf("start input: %w", err)
	}
	e.pump = pump
	return nil
}

// teardown restores the terminal. It is safe to call repeatedly.
func (e *Engine) teardown() {
	if e.pump != nil {
		e.pump.Stop()
		e.pump = nil
	}
	e.decoder.Reset()
	if e.alt {
		if err := e.term.ExitAltScreen(); err != nil {
			logging.Error(subsystem, err, "exit alternate screen")
		}
	} else if _, err := e.term.Write([]byte("\x1b[0m\x1b[?25h\r\n")); err != nil {
		logging.Error(subsystem, err, "reset terminal")
	}
	if err := e.term.DisableRaw(); err != nil {
		logging.Error(subsystem, err, "restore terminal mode")
	}
}

func (e *Engine) input() <-chan []byte {
	if e.pump == nil {
		return nil
	}
	return e.pump.Chunks()
}

// post queues fn to run on the event loop. It is safe from any goroutine
// and drops fn once the loop has exited.
func (e *Engine) post(fn func()) {
	select {
	case e.posted <- fn:
	case <-e.done:
	}
}

// Resized makes the engine re-query the terminal size. It is safe to call
// from any goroutine.
func (e *Engine) Resized() {
	e.post(e.refreshSize)
}

func (e *Engine) refreshSize() {
	cols, rows, err := e.term.Size()
	if err != nil {
		logging.Warn(subsystem, "query terminal size: %v", err)
		return
	}
	size := render.Size{Rows: rows, Cols: cols}
	if size != e.rctx.Size {
		e.rctx.Resize(size)
		e.lastFrame = ""
		e.dirty = true
	}
}
