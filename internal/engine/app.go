package engine

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"secretsui/internal/logging"
	"secretsui/internal/terminal"
	"secretsui/internal/ui"
)

// Push implements ui.App. A shown popup is closed first.
func (e *Engine) Push(s ui.Screen) {
	e.dropPopup()
	if !e.nav.Push(s) {
		logging.Warn(subsystem, "refused screen %s: nil or already on the stack", screenID(s))
	}
}

// Pop implements ui.App. Popping the last screen quits.
func (e *Engine) Pop() ui.Screen {
	e.dropPopup()
	top := e.nav.Pop()
	if e.nav.Current() == nil {
		e.Quit()
	}
	return top
}

// Replace implements ui.App.
func (e *Engine) Replace(s ui.Screen) {
	e.dropPopup()
	if !e.nav.Replace(s) {
		logging.Warn(subsystem, "refused screen %s: nil or already on the stack", screenID(s))
	}
}

// Reset implements ui.App.
func (e *Engine) Reset(s ui.Screen) {
	e.dropPopup()
	e.nav.Reset(s)
}

func screenID(s ui.Screen) string {
	if s == nil {
		return "nil screen"
	}
	return s.ID()
}

func (e *Engine) dropPopup() {
	if e.overlay.Active() {
		_ = e.overlay.Close()
	}
}

// ShowPopup implements ui.App.
func (e *Engine) ShowPopup(p ui.Popup, onClose func()) error {
	if err := e.overlay.Show(p, e.nav.Current(), onClose); err != nil {
		logging.Error(subsystem, err, "show popup %T", p)
		return err
	}
	return nil
}

// ClosePopup implements ui.App.
func (e *Engine) ClosePopup() error {
	return e.overlay.Close()
}

// RequestRender implements ui.App.
func (e *Engine) RequestRender() { e.dirty = true }

// Quit implements ui.App. The loop exits after the current event.
func (e *Engine) Quit() { e.quit = true }

// Go implements ui.App. work runs on its own goroutine with a context that
// is canceled when newer work is started for s, when s is cleaned up or
// when the engine stops. apply runs on the event loop, and only for the
// latest work of a screen that is still on the stack.
func (e *Engine) Go(s ui.Screen, work func(ctx context.Context) (any, error), apply func(c *ui.Context, v any, err error)) {
	ctx, cancel := context.WithCancel(e.runCtx)
	b := s.Core()
	gen := b.BeginWork(cancel)
	go func() {
		v, err := work(ctx)
		e.post(func() {
			cancel()
			if !b.CurrentWork(gen) {
				logging.Debug(subsystem, "dropped stale result for %s", s.ID())
				return
			}
			if apply == nil {
				return
			}
			defer e.recoverPanic("async result for " + s.ID())
			apply(ui.ContextFor(e, s), v, err)
			e.dirty = true
		})
	}()
}

// Exec implements ui.App. The engine suspends, runs cmd in the foreground
// wired to the process's standard streams, resumes and calls done. Nothing
// is redrawn until done (or later work) changes state or asks for it.
func (e *Engine) Exec(cmd *exec.Cmd, done func(c *ui.Context, err error)) {
	err := e.Suspend()
	if err == nil {
		if cmd.Stdin == nil {
			cmd.Stdin = os.Stdin
		}
		if cmd.Stdout == nil {
			cmd.Stdout = os.Stdout
		}
		if cmd.Stderr == nil {
			cmd.Stderr = os.Stderr
		}
		err = e.runCmd(cmd)
		if rerr := e.Resume(); rerr != nil && err == nil {
			err = rerr
		}
	}
	if err != nil {
		logging.Error(subsystem, err, "exec %s", cmd.Path)
	}
	if done != nil {
		defer e.recoverPanic("exec callback")
		done(e.nav.Context(), err)
	}
}

// Suspend hands the terminal back: input reading stops and raw mode and
// the alternate screen are left.
func (e *Engine) Suspend() error {
	if e.suspended {
		return ErrSuspended
	}
	if e.pump != nil {
		e.typeahead = append(e.typeahead, e.pump.Stop()...)
		e.pump = nil
	}
	e.decoder.Reset()
	if e.alt {
		if err := e.term.ExitAltScreen(); err != nil {
			return fmt.Errorf("suspend: %w", err)
		}
	}
	if err := e.term.DisableRaw(); err != nil {
		return fmt.Errorf("suspend: %w", err)
	}
	e.suspended = true
	return nil
}

// Resume takes the terminal back and re-arms input. It does not redraw;
// callers request a render once they have something to show.
func (e *Engine) Resume() error {
	if !e.suspended {
		return nil
	}
	if err := e.term.EnableRaw(); err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	if e.alt {
		if err := e.term.EnterAltScreen(); err != nil {
			return fmt.Errorf("resume: %w", err)
		}
	}
	pump, err := terminal.ResumePump(e.term.Input(), e.typeahead)
	if err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	e.pump = pump
	e.typeahead = nil
	e.suspended = false
	e.lastFrame = ""
	e.dirty = false
	if cur := e.nav.Current(); cur != nil {
		cur.Core().State().TakeDirty()
	}
	return nil
}

// Suspended reports whether the engine has handed the terminal back.
func (e *Engine) Suspended() bool { return e.suspended }

func (e *Engine) recoverPanic(what string) {
	if r := recover(); r != nil {
		logging.Error(subsystem, fmt.Errorf("panic: %v", r), "%s", what)
	}
}
