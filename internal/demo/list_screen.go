package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"

	"secretsui/internal/keys"
	"secretsui/internal/logging"
	"secretsui/internal/ui"
	"secretsui/internal/ui/component"
	"secretsui/internal/ui/render"
)

const subsystem = "demo"

const (
	stateSecrets  = "secrets"
	stateSelected = "selected"
	stateLoading  = "loading"
	stateError    = "error"
	stateFrame    = "spinner_frame"
)

// spinEvery is how often the loading spinner advances.
var spinEvery = spinner.Dot.FPS

// ListScreen lists the secrets of a store.
type ListScreen struct {
	ui.Base
	store    *Store
	renderer *render.Renderer
	stopLoad context.CancelFunc
}

// NewListScreen creates the secret list. The renderer styles the popups
// opened from detail screens.
func NewListScreen(store *Store, r *render.Renderer) *ListScreen {
	return &ListScreen{store: store, renderer: r}
}

func (s *ListScreen) ID() string { return "secrets" }

func (s *ListScreen) Config() ui.ScreenConfig {
	return ui.ScreenConfig{Title: "Secrets", HasSearch: true}
}

// OnActivate reloads the list, which picks up edits and deletions made on
// a detail screen.
func (s *ListScreen) OnActivate(c *ui.Context) {
	s.refresh(c)
}

func (s *ListScreen) refresh(c *ui.Context) {
	if s.stopLoad != nil {
		s.stopLoad()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stopLoad = cancel
	done := make(chan loadResult, 1)
	go func() {
		secrets, err := s.store.List(ctx)
		done <- loadResult{secrets: secrets, err: err}
	}()
	c.State.Set(stateLoading, true)
	c.State.Set(stateFrame, 0)
	s.awaitLoad(c, done, cancel)
}

type loadResult struct {
	secrets []Secret
	err     error
}

// spinnerTick is the result of a wait that ended before the store answered.
type spinnerTick struct{}

// awaitLoad waits one spinner interval for the pending List call. Each tick
// advances the spinner frame and waits again, so only one piece of work per
// screen is in flight at a time.
func (s *ListScreen) awaitLoad(c *ui.Context, done <-chan loadResult, stop context.CancelFunc) {
	c.App.Go(s, func(ctx context.Context) (any, error) {
		t := time.NewTimer(spinEvery)
		defer t.Stop()
		select {
		case r := <-done:
			return r.secrets, r.err
		case <-t.C:
			return spinnerTick{}, nil
		case <-ctx.Done():
			stop()
			return nil, ctx.Err()
		}
	}, func(c *ui.Context, v any, err error) {
		if _, ok := v.(spinnerTick); ok {
			c.State.Set(stateFrame, c.State.Int(stateFrame)+1)
			s.awaitLoad(c, done, stop)
			return
		}
		stop()
		c.State.Set(stateLoading, false)
		if err != nil {
			logging.Error(subsystem, err, "list secrets")
			c.State.Set(stateError, err.Error())
			return
		}
		c.State.Delete(stateError)
		c.State.Set(stateSecrets, v.([]Secret))
	})
}

// visible returns the secrets matching the current search query.
func (s *ListScreen) visible(st *ui.State) []Secret {
	all, _ := st.Get(stateSecrets).([]Secret)
	query, _ := ui.SearchQuery(st)
	return Filter(all, query)
}

func (s *ListScreen) selected(st *ui.State) (Secret, bool) {
	vis := s.visible(st)
	if len(vis) == 0 {
		return Secret{}, false
	}
	i := min(max(st.Int(stateSelected), 0), len(vis)-1)
	return vis[i], true
}

func (s *ListScreen) move(delta int) func(*ui.Context, keys.Event) bool {
	return func(c *ui.Context, _ keys.Event) bool {
		n := len(s.visible(c.State))
		if n == 0 {
			return true
		}
		i := min(max(c.State.Int(stateSelected)+delta, 0), n-1)
		c.State.Set(stateSelected, i)
		return true
	}
}

func (s *ListScreen) SetupKeyHandlers(chain *ui.HandlerChain) {
	chain.Add(
		ui.Handler{
			Name:   "list.up",
			Keys:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Action: s.move(-1),
		},
		ui.Handler{
			Name:   "list.down",
			Keys:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			Action: s.move(1),
		},
		ui.Handler{
			Name: "list.open",
			Keys: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
			Action: func(c *ui.Context, _ keys.Event) bool {
				sec, ok := s.selected(c.State)
				if !ok {
					return true
				}
				c.App.Push(NewDetailScreen(s.store, s.renderer, sec))
				return true
			},
		},
		ui.Handler{
			Name: "list.refresh",
			Keys: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
			Action: func(c *ui.Context, _ keys.Event) bool {
				s.refresh(c)
				return true
			},
		},
		ui.Handler{
			Name: "list.quit",
			Keys: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
			Action: func(c *ui.Context, _ keys.Event) bool {
				c.App.Quit()
				return true
			},
		},
	)
}

func (s *ListScreen) Components(st *ui.State) []component.Node {
	query, active := ui.SearchQuery(st)
	nodes := []component.Node{component.SearchField(query, active, "type / to search")}
	if msg := st.String(stateError); msg != "" {
		nodes = append(nodes, component.Text("error: "+msg, component.StyleDanger))
	}
	if st.Bool(stateLoading) && st.Get(stateSecrets) == nil {
		return append(nodes, component.Loading("Loading secrets", st.Int(stateFrame)))
	}

	vis := s.visible(st)
	items := make([]component.Item, len(vis))
	for i, sec := range vis {
		items[i] = component.Item{Label: sec.Name, Detail: sec.Provider}
	}
	empty := "No secrets"
	if query != "" {
		empty = fmt.Sprintf("No secrets match %q", query)
	}
	return append(nodes, component.List(items, st.Int(stateSelected), component.ListOptions{Query: query, EmptyText: empty}))
}
