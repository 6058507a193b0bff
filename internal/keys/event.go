// Package keys decodes the raw byte stream read from a terminal in raw mode
// into discrete key events.
package keys

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind classifies a decoded Event.
type Kind int

const (
	KindControl Kind = iota
	KindDirection
	KindRune
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindControl:
		return "control"
	case KindDirection:
		return "direction"
	case KindRune:
		return "rune"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Event is the decoded result of one logical keystroke.
// The embedded tea.Key gives every event Bubble Tea's canonical key name
// ("up", "esc", "backspace", "ctrl+c", "a", ...), so bindings written with
// bubbles/key match events produced here.
type Event struct {
	tea.Key
	// Raw holds bytes that could not be classified (e.g. invalid UTF-8).
	Raw []byte
}

// New returns an event for a non-rune key type such as tea.KeyUp.
func New(t tea.KeyType) Event {
	return Event{Key: tea.Key{Type: t}}
}

// Runes returns a printable-character event for s.
func Runes(s string) Event {
	if s == " " {
		return Event{Key: tea.Key{Type: tea.KeySpace, Runes: []rune{' '}}}
	}
	return Event{Key: tea.Key{Type: tea.KeyRunes, Runes: []rune(s)}}
}

// Escape is the bare escape key event.
func Escape() Event { return New(tea.KeyEsc) }

// Backspace is the canonical erase-backward event.
func Backspace() Event { return New(tea.KeyBackspace) }

// Kind reports the event class.
func (e Event) Kind() Kind {
	if e.Raw != nil {
		return KindRaw
	}
	switch e.Type {
	case tea.KeyRunes, tea.KeySpace:
		return KindRune
	case tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
		return KindDirection
	default:
		return KindControl
	}
}

// String returns the key name used for binding lookups.
func (e Event) String() string {
	if e.Raw != nil {
		return fmt.Sprintf("raw(% x)", e.Raw)
	}
	return e.Key.String()
}

// Text returns the typed characters for rune events and "" otherwise.
func (e Event) Text() string {
	if e.Kind() != KindRune {
		return ""
	}
	return string(e.Runes)
}

// Msg converts the event into a tea.KeyMsg so bubbles models can consume it.
func (e Event) Msg() tea.KeyMsg {
	return tea.KeyMsg(e.Key)
}
