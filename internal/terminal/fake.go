package terminal

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
)

// Fake is an in-memory Terminal for tests. Keys written with Type are read
// by the engine; everything it draws is kept in Output. Input is a real
// pipe so it can be canceled like a terminal.
type Fake struct {
	mu         sync.Mutex
	out        bytes.Buffer
	cols, rows int
	raw, alt   bool
	toggles    []string

	inR *os.File
	inW *os.File
}

var _ Terminal = (*Fake)(nil)

// NewFake returns a fake terminal of the given size. It panics if the
// input pipe cannot be created.
func NewFake(cols, rows int) *Fake {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	return &Fake{cols: cols, rows: rows, inR: r, inW: w}
}

// Type sends raw input bytes.
func (f *Fake) Type(s string) error {
	_, err := io.WriteString(f.inW, s)
	return err
}

// CloseInput ends the input stream, as when stdin is closed.
func (f *Fake) CloseInput() error {
	return f.inW.Close()
}

// Close releases the input pipe.
func (f *Fake) Close() error {
	_ = f.inW.Close()
	return f.inR.Close()
}

// SetSize changes the reported window size.
func (f *Fake) SetSize(cols, rows int) {
	f.mu.Lock()
	f.cols, f.rows = cols, rows
	f.mu.Unlock()
}

// Input implements Terminal.
func (f *Fake) Input() io.Reader { return f.inR }

// Write implements io.Writer.
func (f *Fake) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Write(p)
}

// Size implements Terminal.
func (f *Fake) Size() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cols, f.rows, nil
}

func (f *Fake) toggle(flag *bool, on bool, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if *flag != on {
		*flag = on
		f.toggles = append(f.toggles, name)
	}
	return nil
}

// EnableRaw implements Terminal.
func (f *Fake) EnableRaw() error { return f.toggle(&f.raw, true, "raw") }

// DisableRaw implements Terminal.
func (f *Fake) DisableRaw() error { return f.toggle(&f.raw, false, "cooked") }

// EnterAltScreen implements Terminal.
func (f *Fake) EnterAltScreen() error { return f.toggle(&f.alt, true, "alt") }

// ExitAltScreen implements Terminal.
func (f *Fake) ExitAltScreen() error { return f.toggle(&f.alt, false, "main") }

// Raw reports whether raw mode is on.
func (f *Fake) Raw() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raw
}

// AltScreen reports whether the alternate screen is shown.
func (f *Fake) AltScreen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alt
}

// Toggles lists the mode changes that took effect, in order: "raw",
// "cooked", "alt" and "main".
func (f *Fake) Toggles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.toggles...)
}

// Output returns everything written so far.
func (f *Fake) Output() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.String()
}

// LastFrame returns the text of the most recent frame, the bytes written
// after the last cursor-home sequence.
func (f *Fake) LastFrame() string {
	out := f.Output()
	if i := strings.LastIndex(out, "\x1b[H"); i >= 0 {
		return out[i+len("\x1b[H"):]
	}
	return out
}
