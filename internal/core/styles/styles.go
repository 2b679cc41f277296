// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"ketchup": {
		Primary:    lipgloss.Color("#e63946"),
		Secondary:  lipgloss.Color("#f4a261"),
		Foreground: lipgloss.Color("#f1faee"),
		Muted:      lipgloss.Color("#8d99ae"),
		Background: lipgloss.Color("#1d1d1d"),
		Surface:    lipgloss.Color("#3a3a3a"),
		Success:    lipgloss.Color("#2a9d8f"),
		Warning:    lipgloss.Color("#e9c46a"),
		Error:      lipgloss.Color("#ff4d6d"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	HeaderStyle  lipgloss.Style
	MutedStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	// Board styles.
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style
	CursorRowStyle   lipgloss.Style
	RowStyle         lipgloss.Style
	UnreadStyle      lipgloss.Style
	CountBadgeStyle  lipgloss.Style
	TimeStyle        lipgloss.Style
	StatusBarStyle   lipgloss.Style
	ConfirmStyle     lipgloss.Style

	// Toast styles.
	ToastInfoStyle    lipgloss.Style
	ToastSuccessStyle lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	TabActiveStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)
	TabInactiveStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)
	CursorRowStyle = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Foreground)
	RowStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	UnreadStyle = lipgloss.NewStyle().Foreground(p.Secondary).Bold(true)
	CountBadgeStyle = lipgloss.NewStyle().Foreground(p.Warning)
	TimeStyle = lipgloss.NewStyle().Foreground(p.Muted)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
	ConfirmStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Warning).
		Padding(0, 1)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toast.BorderForeground(p.Primary)
	ToastSuccessStyle = toast.BorderForeground(p.Success)
	ToastWarningStyle = toast.BorderForeground(p.Warning)
	ToastErrorStyle = toast.BorderForeground(p.Error)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func hexPtr(c lipgloss.Color) *string {
	s := string(c)
	if s == "" {
		return nil
	}
	return &s
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	p := CurrentPalette

	cfg.Document.Color = hexPtr(p.Foreground)
	cfg.Paragraph.Color = hexPtr(p.Foreground)

	cfg.Heading.Color = hexPtr(p.Primary)
	cfg.H1.Color = hexPtr(p.Foreground)
	cfg.H1.BackgroundColor = hexPtr(p.Surface)
	cfg.H2.Color = hexPtr(p.Primary)
	cfg.H3.Color = hexPtr(p.Primary)

	cfg.BlockQuote.Color = hexPtr(p.Muted)
	cfg.HorizontalRule.Color = hexPtr(p.Muted)

	cfg.Link.Color = hexPtr(p.Secondary)
	cfg.LinkText.Color = hexPtr(p.Secondary)
	cfg.Code.Color = hexPtr(p.Secondary)

	return cfg
}

// FormTheme returns a huh theme matching the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()
	p := CurrentPalette

	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p.Secondary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p.Secondary)
	t.Blurred.Title = t.Blurred.Title.Foreground(p.Muted)

	return t
}
