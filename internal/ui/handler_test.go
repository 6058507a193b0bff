package ui

import (
	"errors"
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/key"

	"secretsui/internal/keys"
)

func TestHandlerChain_FirstMatchWins(t *testing.T) {
	var calls []string
	record := func(name string, handled bool) Handler {
		return Handler{
			Name: name,
			Keys: key.NewBinding(key.WithKeys("j", "down")),
			Action: func(*Context, keys.Event) bool {
				calls = append(calls, name)
				return handled
			},
		}
	}
	var c HandlerChain
	c.Add(
		Handler{Name: "other", Keys: key.NewBinding(key.WithKeys("k")), Action: func(*Context, keys.Event) bool { t.Error("k handler ran"); return true }},
		record("declines", false),
		record("takes", true),
		record("never", true),
	)

	ok, err := c.Dispatch(&Context{}, keys.Runes("j"))
	if err != nil || !ok {
		t.Fatalf("dispatch = %v, %v", ok, err)
	}
	if want := []string{"declines", "takes"}; !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}

	ok, _ = c.Dispatch(&Context{}, keys.Runes("x"))
	if ok {
		t.Error("unmatched key reported handled")
	}
}

func TestHandlerChain_PredicateAndDisabledBinding(t *testing.T) {
	var c HandlerChain
	disabled := key.NewBinding(key.WithKeys("d"))
	disabled.SetEnabled(false)
	c.Add(
		Handler{Name: "disabled", Keys: disabled, Action: func(*Context, keys.Event) bool { return true }},
		Handler{
			Name:   "direction",
			Match:  func(ev keys.Event) bool { return ev.Kind() == keys.KindDirection },
			Action: func(*Context, keys.Event) bool { return true },
		},
	)
	if ok, _ := c.Dispatch(&Context{}, keys.Runes("d")); ok {
		t.Error("disabled binding must not match")
	}
	if ok, _ := c.Dispatch(&Context{}, keys.Escape()); ok {
		t.Error("esc is not a direction")
	}
	up := keys.NewDecoder(keys.DefaultTimeout).Feed([]byte("\x1b[A"))
	if len(up) != 1 {
		t.Fatalf("decoded %v", up)
	}
	if ok, _ := c.Dispatch(&Context{}, up[0]); !ok {
		t.Error("predicate handler should take the up arrow")
	}
}

func TestHandlerChain_PanicBecomesError(t *testing.T) {
	var c HandlerChain
	c.Add(Handler{
		Name:   "boom",
		Match:  func(keys.Event) bool { return true },
		Action: func(*Context, keys.Event) bool { panic("kaboom") },
	})
	ok, err := c.Dispatch(&Context{}, keys.Runes("z"))
	if ok {
		t.Error("panicking handler must not report handled")
	}
	var he *HandlerError
	if !errors.As(err, &he) || he.Handler != "boom" || he.Value != "kaboom" {
		t.Fatalf("err = %v", err)
	}
}

func TestHandlerChain_TakeRestore(t *testing.T) {
	var c HandlerChain
	c.Add(Handler{Name: "a"}, Handler{Name: "b"})
	saved := c.Take()
	if c.Len() != 0 {
		t.Fatal("take must empty the chain")
	}
	c.Add(Handler{Name: "popup"})
	c.Restore(saved)
	if got := names(&c); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("restored = %v", got)
	}
}

func TestHandlerChain_Bindings(t *testing.T) {
	var c HandlerChain
	c.Add(
		Handler{Name: "help", Keys: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy"))},
		Handler{Name: "nohelp", Keys: key.NewBinding(key.WithKeys("x"))},
		Handler{Name: "pred", Match: func(keys.Event) bool { return true }},
	)
	b := c.Bindings()
	if len(b) != 1 || b[0].Help().Desc != "copy" {
		t.Errorf("bindings = %+v", b)
	}
}

func TestState_Dirty(t *testing.T) {
	s := NewState(map[string]any{"n": 1})
	if s.Dirty() {
		t.Error("fresh state is clean")
	}
	if s.Int("n") != 1 || s.String("n") != "" || s.Bool("missing") {
		t.Error("typed getters")
	}
	s.Set("name", "db")
	if !s.TakeDirty() || s.Dirty() {
		t.Error("TakeDirty returns and clears the flag")
	}
	s.Update(map[string]any{"a": true})
	s.Delete("name")
	if !s.Bool("a") || s.Get("name") != nil || !s.Dirty() {
		t.Error("update and delete")
	}
}
