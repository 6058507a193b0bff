package demo

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"

	"secretsui/internal/keys"
	"secretsui/internal/logging"
	"secretsui/internal/ui"
	"secretsui/internal/ui/component"
	"secretsui/internal/ui/render"
)

const (
	tabOverview = "Overview"
	tabTags     = "Tags"

	stateStatus = "status"
)

// Seams for tests.
var (
	writeClipboard = clipboard.WriteAll
	lookupEnv      = os.LookupEnv
)

// DetailScreen shows one secret. The value stays masked unless revealed in
// a popup.
type DetailScreen struct {
	ui.Base
	store    *Store
	renderer *render.Renderer
	secret   Secret
	tabs     *ui.Focus
}

// NewDetailScreen creates the detail screen for sec.
func NewDetailScreen(store *Store, r *render.Renderer, sec Secret) *DetailScreen {
	return &DetailScreen{
		store:    store,
		renderer: r,
		secret:   sec,
		tabs:     ui.NewFocus(tabOverview, tabTags),
	}
}

func (s *DetailScreen) ID() string { return "secret:" + s.secret.Name }

func (s *DetailScreen) Config() ui.ScreenConfig {
	return ui.ScreenConfig{Title: s.secret.Name, HasBackNavigation: true, HasEdit: true}
}

// Secret returns the secret as last loaded.
func (s *DetailScreen) Secret() Secret { return s.secret }

func binding(k, help, desc string, action func(c *ui.Context)) ui.Handler {
	return ui.Handler{
		Name: "detail." + desc,
		Keys: key.NewBinding(key.WithKeys(k), key.WithHelp(help, desc)),
		Action: func(c *ui.Context, _ keys.Event) bool {
			action(c)
			return true
		},
	}
}

func (s *DetailScreen) SetupKeyHandlers(chain *ui.HandlerChain) {
	chain.Add(s.tabs.Handlers()...)
	chain.Add(
		binding("v", "v", "reveal", s.reveal),
		binding("c", "c", "copy", s.copyValue),
		binding("e", "e", "edit", s.edit),
		binding("d", "d", "delete", s.confirmDelete),
	)
}

func (s *DetailScreen) reveal(c *ui.Context) {
	p := ui.NewTextPopup(s.renderer.Theme(), s.secret.Name, s.secret.Value, 56, 8)
	if err := c.App.ShowPopup(p, nil); err != nil {
		c.State.Set(stateStatus, err.Error())
	}
}

func (s *DetailScreen) copyValue(c *ui.Context) {
	if err := writeClipboard(s.secret.Value); err != nil {
		logging.Error(subsystem, err, "copy %s", s.secret.Name)
		c.State.Set(stateStatus, "copy failed: "+err.Error())
		return
	}
	c.State.Set(stateStatus, "copied to clipboard")
}

func (s *DetailScreen) confirmDelete(c *ui.Context) {
	name := s.secret.Name
	p := ui.NewConfirmPopup(s.renderer, "Delete secret?", name, func(c *ui.Context) {
		if err := s.store.Delete(name); err != nil {
			logging.Error(subsystem, err, "delete %s", name)
			c.State.Set(stateStatus, err.Error())
			return
		}
		logging.Info(subsystem, "deleted %s", name)
		s.Resolve(name)
		c.App.Pop()
	}).WithDetails("This cannot be undone.")
	if err := c.App.ShowPopup(p, nil); err != nil {
		c.State.Set(stateStatus, err.Error())
	}
}

// edit writes the value to a temporary file, opens it in the user's editor
// and stores whatever the editor saved.
func (s *DetailScreen) edit(c *ui.Context) {
	f, err := os.CreateTemp("", "secretsui-*.txt")
	if err != nil {
		c.State.Set(stateStatus, fmt.Sprintf("edit: %v", err))
		return
	}
	path := f.Name()
	_, werr := f.WriteString(s.secret.Value)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(path)
		c.State.Set(stateStatus, fmt.Sprintf("edit: %v", werr))
		return
	}

	c.App.Exec(editorCommand(path), func(c *ui.Context, err error) {
		defer os.Remove(path)
		if err == nil {
			err = s.applyEdit(path)
		}
		if err != nil {
			logging.Error(subsystem, err, "edit %s", s.secret.Name)
			c.State.Set(stateStatus, fmt.Sprintf("edit: %v", err))
			return
		}
		c.State.Set(stateStatus, "saved")
	})
}

func (s *DetailScreen) applyEdit(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	value := strings.TrimSuffix(string(data), "\n")
	if value == s.secret.Value {
		return nil
	}
	if value == "" {
		return errors.New("refusing to store an empty value")
	}
	sec, err := s.store.SetValue(s.secret.Name, value)
	if err != nil {
		return err
	}
	s.secret = sec
	return nil
}

// editorCommand opens path in $VISUAL, $EDITOR or vi.
func editorCommand(path string) *exec.Cmd {
	editor := "vi"
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if v, ok := lookupEnv(name); ok && strings.TrimSpace(v) != "" {
			editor = v
			break
		}
	}
	args := strings.Fields(editor)
	return exec.Command(args[0], append(args[1:], path)...)
}

func (s *DetailScreen) Components(st *ui.State) []component.Node {
	sec := s.secret
	nodes := []component.Node{component.Tabs(s.tabs.Order(), s.tabs.Index()), component.Spacer(1)}

	switch s.tabs.Current() {
	case tabTags:
		if len(sec.Tags) == 0 {
			nodes = append(nodes, component.Text("No tags", component.StyleMuted))
			break
		}
		names := slices.Sorted(maps.Keys(sec.Tags))
		rows := make([][]string, len(names))
		for i, k := range names {
			rows[i] = []string{k, sec.Tags[k]}
		}
		nodes = append(nodes, component.Table([]string{"Key", "Value"}, rows))
	default:
		nodes = append(nodes,
			component.LabeledValue("Name", sec.Name, 10),
			component.LabeledValue("Provider", sec.Provider, 10),
			component.LabeledValue("Value", mask(sec.Value), 10),
			component.LabeledValue("Updated", sec.UpdatedAt.Format("2006-01-02 15:04"), 10),
		)
	}
	if msg := st.String(stateStatus); msg != "" {
		nodes = append(nodes, component.Spacer(1), component.Text(msg, component.StyleSuccess))
	}
	return nodes
}

func mask(v string) string {
	if v == "" {
		return ""
	}
	return strings.Repeat("•", min(len([]rune(v)), 12))
}
