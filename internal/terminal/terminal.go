// Package terminal owns the controlling terminal: raw mode, the alternate
// screen, the window size and the input byte stream.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	enterAltSeq = "\x1b[?1049h\x1b[?25l\x1b[2J\x1b[H"
	exitAltSeq  = "\x1b[0m\x1b[?25h\x1b[?1049l"
)

// ErrNotTerminal is returned when the input is not a terminal.
var ErrNotTerminal = errors.New("terminal: input is not a terminal")

// Terminal is what the engine draws on and reads keys from. Every toggle is
// idempotent so cleanup can run unconditionally.
type Terminal interface {
	io.Writer
	// Input is the raw byte stream of key presses.
	Input() io.Reader
	// Size returns the window size in cells.
	Size() (cols, rows int, err error)
	EnableRaw() error
	DisableRaw() error
	// EnterAltScreen switches to the alternate screen and hides the cursor.
	EnterAltScreen() error
	ExitAltScreen() error
}

// TTY is a Terminal backed by real terminal devices.
type TTY struct {
	in  *os.File
	out *os.File

	mu    sync.Mutex
	state *term.State
	alt   bool
}

var _ Terminal = (*TTY)(nil)

// Open returns the process's terminal on stdin and stdout.
func Open() (*TTY, error) {
	return New(os.Stdin, os.Stdout)
}

// New returns a TTY reading in and drawing on out.
func New(in, out *os.File) (*TTY, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return nil, ErrNotTerminal
	}
	return &TTY{in: in, out: out}, nil
}

// Input implements Terminal.
func (t *TTY) Input() io.Reader { return t.in }

// Write implements io.Writer.
func (t *TTY) Write(p []byte) (int, error) { return t.out.Write(p) }

// Size implements Terminal.
func (t *TTY) Size() (cols, rows int, err error) {
	cols, rows, err = term.GetSize(int(t.out.Fd()))
	if err != nil {
		cols, rows, err = term.GetSize(int(t.in.Fd()))
	}
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	return cols, rows, nil
}

// EnableRaw implements Terminal.
func (t *TTY) EnableRaw() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != nil {
		return nil
	}
	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.state = state
	return nil
}

// DisableRaw implements Terminal.
func (t *TTY) DisableRaw() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.state)
	t.state = nil
	if err != nil {
		return fmt.Errorf("failed to restore terminal mode: %w", err)
	}
	return nil
}

// EnterAltScreen implements Terminal.
func (t *TTY) EnterAltScreen() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.alt {
		return nil
	}
	if _, err := io.WriteString(t.out, enterAltSeq); err != nil {
		return fmt.Errorf("enter alternate screen: %w", err)
	}
	t.alt = true
	return nil
}

// ExitAltScreen implements Terminal.
func (t *TTY) ExitAltScreen() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.alt {
		return nil
	}
	t.alt = false
	if _, err := io.WriteString(t.out, exitAltSeq); err != nil {
		return fmt.Errorf("exit alternate screen: %w", err)
	}
	return nil
}
