package keys

import (
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	byteESC = 0x1b
	byteBS  = 0x08
	byteDEL = 0x7f

	// MaxSequenceLen is the longest escape sequence the decoder buffers.
	// Anything longer that has not matched flushes its leading ESC.
	MaxSequenceLen = 3

	// DefaultTimeout is how long a lone ESC waits for the rest of a sequence.
	DefaultTimeout = 100 * time.Millisecond
)

// sequences maps the escape sequences the decoder recognizes to key types.
var sequences = map[string]tea.KeyType{
	"\x1b[A": tea.KeyUp,
	"\x1b[B": tea.KeyDown,
	"\x1b[C": tea.KeyRight,
	"\x1b[D": tea.KeyLeft,
	"\x1bOA": tea.KeyUp,
	"\x1bOB": tea.KeyDown,
	"\x1bOC": tea.KeyRight,
	"\x1bOD": tea.KeyLeft,
	"\x1b[H": tea.KeyHome,
	"\x1b[F": tea.KeyEnd,
	"\x1b[Z": tea.KeyShiftTab,
}

// Decoder turns raw input chunks into key events.
//
// A chunk starting an escape sequence leaves the decoder pending with a
// running timer. The owner selects on Expired and calls Flush when it fires;
// the decoder itself never polls or spawns goroutines.
type Decoder struct {
	timeout time.Duration
	pending []byte
	timer   *time.Timer
}

// NewDecoder creates a decoder. A non-positive timeout uses DefaultTimeout.
func NewDecoder(timeout time.Duration) *Decoder {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Decoder{timeout: timeout}
}

// Feed decodes chunk. An empty result means the input is pending.
func (d *Decoder) Feed(chunk []byte) []Event {
	out := d.decode(nil, chunk)
	d.syncTimer()
	return out
}

// Pending reports whether an escape sequence is buffered.
func (d *Decoder) Pending() bool {
	return len(d.pending) > 0
}

// Expired returns the channel that fires when the pending sequence times out,
// or nil when nothing is pending.
func (d *Decoder) Expired() <-chan time.Time {
	if d.timer == nil {
		return nil
	}
	return d.timer.C
}

// Flush resolves a timed-out sequence: the leading ESC becomes a bare escape
// event and any bytes buffered after it are decoded afresh.
func (d *Decoder) Flush() []Event {
	d.stopTimer()
	if len(d.pending) == 0 {
		return nil
	}
	rest := append([]byte(nil), d.pending[1:]...)
	d.pending = d.pending[:0]
	out := d.decode([]Event{Escape()}, rest)
	d.syncTimer()
	return out
}

// Reset drops any buffered bytes and stops the timer.
func (d *Decoder) Reset() {
	d.pending = d.pending[:0]
	d.stopTimer()
}

func (d *Decoder) decode(out []Event, data []byte) []Event {
	for len(data) > 0 {
		if len(d.pending) > 0 {
			d.pending = append(d.pending, data[0])
			data = data[1:]
			var rest []byte
			out, rest = d.resolve(out)
			if len(rest) > 0 {
				data = append(rest, data...)
			}
			continue
		}
		b := data[0]
		switch {
		case b == byteESC:
			d.pending = append(d.pending, b)
			data = data[1:]
		case b == byteDEL || b == byteBS:
			// DEL is erase-backward no matter how the host would print it.
			out = append(out, Backspace())
			data = data[1:]
		case b < 0x20:
			out = append(out, New(tea.KeyType(b)))
			data = data[1:]
		default:
			n := printableRun(data)
			out = append(out, classify(data[:n]))
			data = data[n:]
		}
	}
	return out
}

// resolve inspects the pending buffer after a byte was appended. It returns
// bytes that must be decoded again when the buffer cannot be a sequence.
func (d *Decoder) resolve(out []Event) ([]Event, []byte) {
	seq := string(d.pending)
	if t, ok := sequences[seq]; ok {
		d.pending = d.pending[:0]
		return append(out, New(t)), nil
	}
	if len(d.pending) <= MaxSequenceLen && isPrefix(seq) {
		return out, nil
	}
	rest := append([]byte(nil), d.pending[1:]...)
	d.pending = d.pending[:0]
	return append(out, Escape()), rest
}

func (d *Decoder) syncTimer() {
	if len(d.pending) == 0 {
		d.stopTimer()
		return
	}
	if d.timer == nil {
		d.timer = time.NewTimer(d.timeout)
	}
}

func (d *Decoder) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func isPrefix(s string) bool {
	for seq := range sequences {
		if len(s) < len(seq) && seq[:len(s)] == s {
			return true
		}
	}
	return false
}

// printableRun returns the length of the leading run of non-control bytes.
func printableRun(data []byte) int {
	n := 0
	for n < len(data) {
		b := data[n]
		if b < 0x20 || b == byteDEL {
			break
		}
		n++
	}
	return n
}

func classify(b []byte) Event {
	if !utf8.Valid(b) {
		return Event{Key: tea.Key{Type: tea.KeyRunes}, Raw: append([]byte(nil), b...)}
	}
	return Runes(string(b))
}
