package render

import "github.com/charmbracelet/lipgloss"

// Palette holds the ANSI-256 color numbers (or hex strings) of a theme.
type Palette struct {
	Accent    string `yaml:"accent"`
	Highlight string `yaml:"highlight"`
	Danger    string `yaml:"danger"`
	Muted     string `yaml:"muted"`
	Text      string `yaml:"text"`
	Success   string `yaml:"success"`
	Warning   string `yaml:"warning"`
}

// DefaultPalette is the built-in color scheme.
func DefaultPalette() Palette {
	return Palette{
		Accent:    "86",  // cyan/green: titles, highlights
		Highlight: "205", // magenta: selection, borders
		Danger:    "196",
		Muted:     "241",
		Text:      "252",
		Success:   "42",
		Warning:   "208",
	}
}

// Merge returns p with every empty field taken from base.
func (p Palette) Merge(base Palette) Palette {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Palette{
		Accent:    pick(p.Accent, base.Accent),
		Highlight: pick(p.Highlight, base.Highlight),
		Danger:    pick(p.Danger, base.Danger),
		Muted:     pick(p.Muted, base.Muted),
		Text:      pick(p.Text, base.Text),
		Success:   pick(p.Success, base.Success),
		Warning:   pick(p.Warning, base.Warning),
	}
}

// Theme contains the styles used by every renderer and popup.
type Theme struct {
	Palette Palette

	Title     lipgloss.Style
	Crumb     lipgloss.Style
	Selected  lipgloss.Style
	Match     lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Highlight lipgloss.Style
	Danger    lipgloss.Style
	Success   lipgloss.Style
	Bold      lipgloss.Style
	Empty     lipgloss.Style
	Label     lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	HintKey   lipgloss.Style
	HintDesc  lipgloss.Style

	Box       lipgloss.Style
	BoxDanger lipgloss.Style
	Field     lipgloss.Style
}

// NewTheme builds styles from p; empty palette fields use the defaults.
func NewTheme(p Palette) Theme {
	p = p.Merge(DefaultPalette())
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return Theme{
		Palette:   p,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(c(p.Accent)),
		Crumb:     lipgloss.NewStyle().Foreground(c(p.Muted)),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(c(p.Highlight)),
		Match:     lipgloss.NewStyle().Underline(true).Foreground(c(p.Warning)),
		Normal:    lipgloss.NewStyle().Foreground(c(p.Text)),
		Muted:     lipgloss.NewStyle().Foreground(c(p.Muted)),
		Accent:    lipgloss.NewStyle().Bold(true).Foreground(c(p.Accent)),
		Highlight: lipgloss.NewStyle().Foreground(c(p.Highlight)),
		Danger:    lipgloss.NewStyle().Bold(true).Foreground(c(p.Danger)),
		Success:   lipgloss.NewStyle().Foreground(c(p.Success)),
		Bold:      lipgloss.NewStyle().Bold(true),
		Empty:     lipgloss.NewStyle().Italic(true).Foreground(c(p.Muted)),
		Label:     lipgloss.NewStyle().Foreground(c(p.Muted)),
		TabActive: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(c(p.Highlight)),
		TabIdle:   lipgloss.NewStyle().Foreground(c(p.Muted)),
		HintKey:   lipgloss.NewStyle().Bold(true).Foreground(c(p.Highlight)),
		HintDesc:  lipgloss.NewStyle().Foreground(c(p.Muted)),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.Highlight)).
			Padding(0, 1),
		BoxDanger: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.Danger)).
			Padding(0, 1),
		Field: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.Muted)),
	}
}

// TextStyle maps a component text style name to a lipgloss style.
func (t Theme) TextStyle(name string) lipgloss.Style {
	switch name {
	case "muted":
		return t.Muted
	case "accent":
		return t.Accent
	case "highlight":
		return t.Highlight
	case "danger":
		return t.Danger
	case "success":
		return t.Success
	case "bold":
		return t.Bold
	default:
		return t.Normal
	}
}
