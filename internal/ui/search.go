package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"secretsui/internal/keys"
)

// State keys maintained by the standard search handlers.
const (
	StateSearchActive = "search.active"
	StateSearchQuery  = "search.query"
)

// SearchQuery returns the query typed so far, and whether search mode is on.
func SearchQuery(s *State) (string, bool) {
	return s.String(StateSearchQuery), s.Bool(StateSearchActive)
}

func searching(c *Context) bool {
	return c.State != nil && c.State.Bool(StateSearchActive)
}

// searchHandlers are installed ahead of a searchable screen's own handlers.
// While search mode is on they consume text editing keys; navigation keys
// fall through so the screen can move its selection.
func searchHandlers() []Handler {
	return []Handler{
		{
			Name: "search.start",
			Keys: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
			Action: func(c *Context, _ keys.Event) bool {
				if searching(c) {
					return false
				}
				c.State.Set(StateSearchActive, true)
				return true
			},
		},
		{
			Name: "search.edit",
			Match: func(ev keys.Event) bool {
				switch ev.Type {
				case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyEsc, tea.KeyEnter, tea.KeyCtrlU:
					return true
				}
				return false
			},
			Action: func(c *Context, ev keys.Event) bool {
				if !searching(c) {
					return false
				}
				q := []rune(c.State.String(StateSearchQuery))
				switch ev.Type {
				case tea.KeyEsc:
					c.State.Set(StateSearchActive, false)
					c.State.Set(StateSearchQuery, "")
				case tea.KeyEnter:
					c.State.Set(StateSearchActive, false)
				case tea.KeyBackspace:
					if len(q) > 0 {
						c.State.Set(StateSearchQuery, string(q[:len(q)-1]))
					}
				case tea.KeyCtrlU:
					c.State.Set(StateSearchQuery, "")
				default:
					c.State.Set(StateSearchQuery, string(q)+ev.Text())
				}
				return true
			},
		},
	}
}

// backHandler pops the current screen on esc. It is installed after the
// screen's own handlers so screens can claim esc first.
func backHandler() Handler {
	return Handler{
		Name: "back",
		Keys: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Action: func(c *Context, _ keys.Event) bool {
			if c.App == nil {
				return false
			}
			c.App.Pop()
			return true
		},
	}
}
