package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/dialcal/internal/config"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds resolved lipgloss colors for TUI rendering.
type Theme struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Background    lipgloss.Color
	MarkdownStyle string
}

// Built-in presets.
var presets = map[string]Theme{
	"default-dark": {
		Primary:       lipgloss.Color("#E4E4E4"),
		Secondary:     lipgloss.Color("#767676"),
		Accent:        lipgloss.Color("#0087FF"),
		Muted:         lipgloss.Color("#626262"),
		Background:    lipgloss.Color("#262626"),
		MarkdownStyle: "dark",
	},
	"default-light": {
		Primary:       lipgloss.Color("#1C1C1C"),
		Secondary:     lipgloss.Color("#585858"),
		Accent:        lipgloss.Color("#005FFF"),
		Muted:         lipgloss.Color("#8A8A8A"),
		Background:    lipgloss.Color("#E4E4E4"),
		MarkdownStyle: "light",
	},
	"dracula": {
		Primary:       lipgloss.Color("#F8F8F2"),
		Secondary:     lipgloss.Color("#6272A4"),
		Accent:        lipgloss.Color("#BD93F9"),
		Muted:         lipgloss.Color("#6272A4"),
		Background:    lipgloss.Color("#282A36"),
		MarkdownStyle: "dark",
	},
	"catppuccin-mocha": {
		Primary:       lipgloss.Color("#CDD6F4"),
		Secondary:     lipgloss.Color("#585B70"),
		Accent:        lipgloss.Color("#CBA6F7"),
		Muted:         lipgloss.Color("#6C7086"),
		Background:    lipgloss.Color("#1E1E2E"),
		MarkdownStyle: "dark",
	},
	"catppuccin-latte": {
		Primary:       lipgloss.Color("#4C4F69"),
		Secondary:     lipgloss.Color("#9CA0B0"),
		Accent:        lipgloss.Color("#8839EF"),
		Muted:         lipgloss.Color("#9CA0B0"),
		Background:    lipgloss.Color("#EFF1F5"),
		MarkdownStyle: "light",
	},
	"gruvbox-dark": {
		Primary:       lipgloss.Color("#EBDBB2"),
		Secondary:     lipgloss.Color("#665C54"),
		Accent:        lipgloss.Color("#FABD2F"),
		Muted:         lipgloss.Color("#928374"),
		Background:    lipgloss.Color("#282828"),
		MarkdownStyle: "dark",
	},
}

// ResolveTheme builds a Theme from config, starting with a preset
// and applying any explicit overrides.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	preset := cfg.Preset
	if preset == "" {
		preset = "default-dark"
	}

	theme, ok := presets[preset]
	if !ok {
		theme = presets["default-dark"]
	}

	if cfg.Primary != "" {
		theme.Primary = lipgloss.Color(cfg.Primary)
	}
	if cfg.Secondary != "" {
		theme.Secondary = lipgloss.Color(cfg.Secondary)
	}
	if cfg.Accent != "" {
		theme.Accent = lipgloss.Color(cfg.Accent)
	}
	if cfg.Muted != "" {
		theme.Muted = lipgloss.Color(cfg.Muted)
	}
	if cfg.Background != "" {
		theme.Background = lipgloss.Color(cfg.Background)
	}
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}

	return theme
}

// WithBackground returns a copy of the theme painted on bg.
func (t Theme) WithBackground(bg string) Theme {
	t.Background = lipgloss.Color(bg)
	return t
}

// Fade returns the primary color blended toward the background by opacity,
// where 1 is fully primary. Colors that are not hex fall back to Primary or
// Muted.
func (t Theme) Fade(opacity float64) lipgloss.Color {
	fg, errFg := colorful.Hex(string(t.Primary))
	bg, errBg := colorful.Hex(string(t.Background))
	if errFg != nil || errBg != nil {
		if opacity >= 0.5 {
			return t.Primary
		}
		return t.Muted
	}
	return lipgloss.Color(bg.BlendRgb(fg, opacity).Clamped().Hex())
}

// BaseStyle returns the plain style every widget cell is painted with.
func (t Theme) BaseStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Primary).Background(t.Background)
}

// HelpStyle returns a lipgloss style for help/footer text.
func (t Theme) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted).Background(t.Background)
}

// HeaderStyle returns a lipgloss style for headers.
func (t Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Background(t.Background)
}

// AccentStyle returns a lipgloss style for accented/focused elements.
func (t Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background)
}

// SelectedStyle returns a lipgloss style for the selected cell or segment.
func (t Theme) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Background).Background(t.Accent)
}

// FrameStyle returns the rounded frame around a widget instance.
func (t Theme) FrameStyle(focused bool) lipgloss.Style {
	border := t.Secondary
	if focused {
		border = t.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		BorderBackground(t.Background).
		Background(t.Background).
		Foreground(t.Primary).
		Padding(frameTop-1, frameLeft-1)
}
