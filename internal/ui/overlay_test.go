package ui

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"

	"secretsui/internal/keys"
	"secretsui/internal/ui/render"
)

type stubPopup struct {
	keys []string
	done bool
	view string
}

func (p *stubPopup) HandleKey(_ *Context, ev keys.Event) bool {
	p.keys = append(p.keys, ev.String())
	if ev.String() == "q" {
		p.done = true
	}
	return true
}

func (p *stubPopup) View(render.Size) string { return p.view }
func (p *stubPopup) Done() bool              { return p.done }

func TestOverlay_ShowRoutesKeysAndRestoresChain(t *testing.T) {
	app := newFakeApp()
	var screenKeys int
	s := newTestScreen("detail", ScreenConfig{HasBackNavigation: true}, Handler{
		Name:   "copy",
		Keys:   key.NewBinding(key.WithKeys("c")),
		Action: func(*Context, keys.Event) bool { screenKeys++; return true },
	})
	app.Push(s)
	before := names(s.Handlers())

	p := &stubPopup{view: "popup"}
	closed := 0
	if err := app.ShowPopup(p, func() { closed++ }); err != nil {
		t.Fatal(err)
	}
	if !app.overlay.Active() || app.overlay.Popup() != p {
		t.Fatal("popup should be active")
	}

	app.press(keys.Runes("c"))
	app.press(keys.Escape())
	if screenKeys != 0 {
		t.Error("screen handlers must not run while a popup is shown")
	}
	if app.nav.Current() != s {
		t.Error("esc went to the popup, not the back handler")
	}
	if want := []string{"c", "esc"}; !slices.Equal(p.keys, want) {
		t.Errorf("popup keys = %v, want %v", p.keys, want)
	}

	app.press(keys.Runes("q"))
	if app.overlay.Active() {
		t.Fatal("popup reporting Done must be closed")
	}
	if closed != 1 {
		t.Errorf("onClose ran %d times", closed)
	}
	if got := names(s.Handlers()); !slices.Equal(got, before) {
		t.Errorf("restored chain = %v, want %v", got, before)
	}
	app.press(keys.Runes("c"))
	if screenKeys != 1 {
		t.Error("screen handlers work again after close")
	}
}

func TestOverlay_Errors(t *testing.T) {
	app := newFakeApp()
	if err := app.ShowPopup(&stubPopup{}, nil); !errors.Is(err, ErrNoScreen) {
		t.Errorf("show without screen: %v", err)
	}
	if err := app.ClosePopup(); !errors.Is(err, ErrNoPopup) {
		t.Errorf("close without popup: %v", err)
	}
	app.Push(newTestScreen("s", ScreenConfig{}))
	if err := app.ShowPopup(&stubPopup{}, nil); err != nil {
		t.Fatal(err)
	}
	if err := app.ShowPopup(&stubPopup{}, nil); !errors.Is(err, ErrPopupActive) {
		t.Errorf("second popup: %v", err)
	}
	if err := app.ClosePopup(); err != nil {
		t.Error(err)
	}
}

func TestConfirmPopup(t *testing.T) {
	r := render.New(render.Options{})
	for _, tc := range []struct {
		key       keys.Event
		confirmed bool
	}{
		{keys.Runes("y"), true},
		{keys.New(13), true},
		{keys.Runes("n"), false},
		{keys.Escape(), false},
	} {
		app := newFakeApp()
		app.Push(newTestScreen("s", ScreenConfig{}))
		var confirmed, cancelled bool
		p := NewConfirmPopup(r, "Delete secret?", "db-password", func(*Context) { confirmed = true })
		p.OnCancel = func(*Context) { cancelled = true }
		if err := app.ShowPopup(p, nil); err != nil {
			t.Fatal(err)
		}
		app.press(keys.Runes("x"))
		if app.overlay.Active() != true {
			t.Fatal("unrelated key must not close the popup")
		}
		app.press(tc.key)
		if confirmed != tc.confirmed || cancelled == tc.confirmed || p.Confirmed() != tc.confirmed {
			t.Errorf("%s: confirmed=%v cancelled=%v", tc.key, confirmed, cancelled)
		}
		if app.overlay.Active() {
			t.Errorf("%s: popup still shown", tc.key)
		}
	}
}

func TestConfirmPopup_View(t *testing.T) {
	p := NewConfirmPopup(render.New(render.Options{}), "Delete secret?", "db-password", nil).
		WithDetails("This cannot be undone")
	view := ansi.Strip(p.View(render.Size{Rows: 24, Cols: 80}))
	for _, want := range []string{"Delete secret?", "db-password", "cannot be undone", "confirm", "cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTextPopup_ScrollAndClose(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	p := NewTextPopup(render.NewTheme(render.DefaultPalette()), "Value", strings.Join(lines, "\n"), 20, 5)
	if !p.HandleKey(nil, keys.Runes("j")) {
		t.Error("j scrolls the viewport")
	}
	if p.Done() {
		t.Error("scrolling must not close")
	}
	if !strings.Contains(ansi.Strip(p.View(render.Size{Rows: 24, Cols: 80})), "Value") {
		t.Error("view shows the title")
	}
	p.HandleKey(nil, keys.Runes("q"))
	if !p.Done() {
		t.Error("q closes")
	}
}

func repeatLines(line string, n int) string {
	return strings.Join(slices.Repeat([]string{line}, n), "\n")
}

func TestComposite_BaseStyleSurvivesAroundPopup(t *testing.T) {
	const cyan = "\x1b[36m"
	row := cyan + strings.Repeat("x", 80) + "\x1b[0m"
	base := repeatLines(row, 24)
	popup := repeatLines(strings.Repeat("p", 20), 4)

	out := strings.Split(Composite(base, popup, render.Size{Rows: 24, Cols: 80}), "\n")
	if len(out) != 24 {
		t.Fatalf("rows = %d, want 24", len(out))
	}
	if out[0] != row {
		t.Errorf("uncovered row changed: %q", out[0])
	}

	cells := parseCells(out[10])
	if len(cells) != 80 {
		t.Fatalf("cells = %d, want 80", len(cells))
	}
	for col, c := range cells {
		inPopup := col >= 30 && col < 50
		switch {
		case inPopup && (c.text != "p" || c.style != ""):
			t.Errorf("col %d = %q style %q, want unstyled popup text", col, c.text, c.style)
		case !inPopup && (c.text != "x" || c.style != cyan):
			t.Errorf("col %d = %q style %q, want cyan base", col, c.text, c.style)
		}
	}
}

func TestComposite_NoBleedIntoPopup(t *testing.T) {
	// Unterminated background color on the base line.
	base := repeatLines("\x1b[41m"+strings.Repeat(" ", 40), 10)
	popupLine := "\x1b[1mbold\x1b[0mplain"
	out := strings.Split(Composite(base, popupLine, render.Size{Rows: 10, Cols: 40}), "\n")

	// A one-line popup lands on row (10-1)/2.
	x := (40 - 9) / 2
	cells := parseCells(out[4])
	want := parseCells(popupLine)
	for i, w := range want {
		got := cells[x+i]
		if got.text != w.text || got.style != w.style {
			t.Errorf("popup col %d = %q/%q, want %q/%q", i, got.text, got.style, w.text, w.style)
		}
	}
	if cells[x+9].style != "\x1b[41m" {
		t.Errorf("right side lost its style: %q", cells[x+9].style)
	}
}

func TestComposite_PadsAndClips(t *testing.T) {
	out := strings.Split(Composite("short", "", render.Size{Rows: 3, Cols: 12}), "\n")
	if len(out) != 3 {
		t.Fatalf("rows = %d", len(out))
	}
	for _, l := range out {
		if w := ansi.StringWidth(l); w != 12 {
			t.Errorf("width %d for %q", w, l)
		}
	}

	wide := repeatLines(strings.Repeat("あ", 40), 3)
	out = strings.Split(Composite(wide, strings.Repeat("#", 21), render.Size{Rows: 3, Cols: 80}), "\n")
	if w := ansi.StringWidth(out[1]); w != 80 {
		t.Errorf("row with a split wide rune has width %d", w)
	}
	if !strings.Contains(out[1], strings.Repeat("#", 21)) {
		t.Error("popup text missing")
	}

	huge := repeatLines(strings.Repeat("#", 100), 50)
	out = strings.Split(Composite("", huge, render.Size{Rows: 5, Cols: 20}), "\n")
	if len(out) != 5 || ansi.StringWidth(out[0]) != 20 {
		t.Errorf("oversized popup must be clipped to the terminal: %d rows, width %d", len(out), ansi.StringWidth(out[0]))
	}
}
