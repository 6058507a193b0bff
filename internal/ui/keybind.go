package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"secretsui/internal/keys"
)

// Action is the command a global binding runs.
type Action func(c *Context)

// KeybindRegistry maps global key sequences to actions. Global bindings are
// consulted before the current screen's handlers, so they should use keys
// that screens and search mode never need (control keys, the leader).
//
// A sequence is one key ("ctrl+c") or the leader followed by keys
// ("ctrl+g h"). Key names are those of keys.Event.String; "space" and " "
// are written "SPC".
type KeybindRegistry struct {
	bindings     map[string]Action
	descriptions map[string]string
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]Action),
		descriptions: make(map[string]string),
	}
}

// Bind registers seq, replacing any earlier binding.
func (r *KeybindRegistry) Bind(seq, desc string, a Action) {
	n := normalizeSeq(seq)
	r.bindings[n] = a
	if desc != "" {
		r.descriptions[n] = desc
	} else {
		delete(r.descriptions, n)
	}
}

// Lookup returns the action bound to seq, or nil.
func (r *KeybindRegistry) Lookup(seq string) Action {
	return r.bindings[normalizeSeq(seq)]
}

// HasPrefix reports whether a longer binding starts with seq.
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for k := range r.bindings {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// Hints returns the single-key bindings and their descriptions.
func (r *KeybindRegistry) Hints() map[string]string {
	out := make(map[string]string)
	for seq, a := range r.bindings {
		if a == nil || strings.Contains(seq, " ") {
			continue
		}
		out[seq] = r.describe(seq)
	}
	return out
}

// LeaderHints returns the next keys available after seq, mapped to their
// descriptions. Keys that open a further level are shown as "key…".
func (r *KeybindRegistry) LeaderHints(seq string) map[string]string {
	out := make(map[string]string)
	prefix := normalizeSeq(seq) + " "
	for s, a := range r.bindings {
		if a == nil || !strings.HasPrefix(s, prefix) {
			continue
		}
		next := strings.Fields(strings.TrimPrefix(s, prefix))[0]
		if r.HasPrefix(prefix + next) {
			out[next] = next + "…"
			continue
		}
		out[next] = r.describe(s)
	}
	return out
}

// Bindings returns help bindings for the given hints, sorted by key.
func Bindings(hints map[string]string) []key.Binding {
	names := make([]string, 0, len(hints))
	for k := range hints {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]key.Binding, 0, len(names))
	for _, k := range names {
		out = append(out, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return out
}

func (r *KeybindRegistry) describe(seq string) string {
	if d := r.descriptions[seq]; d != "" {
		return d
	}
	return seq
}

func normalizeSeq(seq string) string {
	if seq == " " {
		return "SPC"
	}
	parts := strings.Fields(seq)
	for i, p := range parts {
		if p == "space" {
			parts[i] = "SPC"
		}
	}
	return strings.Join(parts, " ")
}

func seqPart(ev keys.Event) string {
	s := ev.String()
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}

// KeyHandler resolves global bindings, tracking leader sequences.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderKey     string // key name that starts a sequence; "" disables it
	LeaderWaiting bool
	Buffer        []string
}

// NewKeyHandler creates a handler for reg with the given leader key.
func NewKeyHandler(reg *KeybindRegistry, leader string) *KeyHandler {
	return &KeyHandler{Registry: reg, LeaderKey: normalizeSeq(leader)}
}

// Handle processes one key. consumed reports that the key belongs to the
// global bindings and must not reach the screen; a is the action to run.
func (h *KeyHandler) Handle(ev keys.Event) (consumed bool, a Action) {
	part := seqPart(ev)

	if part == "esc" && h.LeaderWaiting {
		h.reset()
		return true, nil
	}

	if h.LeaderWaiting {
		h.Buffer = append(h.Buffer, part)
		seq := strings.Join(h.Buffer, " ")
		if a := h.Registry.Lookup(seq); a != nil {
			h.reset()
			return true, a
		}
		if !h.Registry.HasPrefix(seq) {
			h.reset()
		}
		return true, nil
	}

	if h.LeaderKey != "" && part == h.LeaderKey && h.Registry.HasPrefix(part) {
		h.LeaderWaiting = true
		h.Buffer = []string{part}
		return true, nil
	}

	if a := h.Registry.Lookup(part); a != nil {
		return true, a
	}
	return false, nil
}

// Sequence returns the keys typed so far in leader mode.
func (h *KeyHandler) Sequence() string {
	return strings.Join(h.Buffer, " ")
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}
