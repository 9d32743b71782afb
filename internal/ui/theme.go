// Package ui provides terminal presentation for stackinit: color theme,
// headless detection, an animated spinner and rendered cards.
package ui

import "github.com/charmbracelet/lipgloss"

// Brand colors (dark variants).
const (
	ColorPrimary   = "#DA7756"
	ColorSecondary = "#7C3AED"
	ColorSuccess   = "#10B981"
	ColorWarning   = "#F59E0B"
	ColorError     = "#EF4444"
	ColorText      = "#E5E7EB"
	ColorMuted     = "#9CA3AF"
	ColorBorder    = "#4B5563"
)

// ThemeConfig selects how a Theme is built.
type ThemeConfig struct {
	NoColor bool
	Mode    string // "dark", "light" or "" for adaptive
}

// Colors holds resolved color values for the active mode.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
	Border    string
}

// Theme holds the styles used by every renderer.
type Theme struct {
	NoColor bool
	Colors  Colors

	Title   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Card    lipgloss.Style
}

var lightColors = Colors{
	Primary:   "#C45A3C",
	Secondary: "#5B21B6",
	Success:   "#059669",
	Warning:   "#D97706",
	Error:     "#DC2626",
	Muted:     "#6B7280",
	Border:    "#D1D5DB",
}

var darkColors = Colors{
	Primary:   ColorPrimary,
	Secondary: ColorSecondary,
	Success:   ColorSuccess,
	Warning:   ColorWarning,
	Error:     ColorError,
	Muted:     ColorMuted,
	Border:    ColorBorder,
}

// NewTheme builds a Theme. With NoColor set every style is plain.
func NewTheme(cfg ThemeConfig) *Theme {
	t := &Theme{NoColor: cfg.NoColor}
	switch cfg.Mode {
	case "light":
		t.Colors = lightColors
	default:
		t.Colors = darkColors
	}

	card := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	if cfg.NoColor {
		t.Title = lipgloss.NewStyle().Bold(true)
		t.Success = lipgloss.NewStyle()
		t.Warning = lipgloss.NewStyle()
		t.Error = lipgloss.NewStyle()
		t.Muted = lipgloss.NewStyle()
		t.Card = card
		return t
	}

	color := func(light, dark string) lipgloss.TerminalColor {
		switch cfg.Mode {
		case "light":
			return lipgloss.Color(light)
		case "dark":
			return lipgloss.Color(dark)
		default:
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
	}

	t.Title = lipgloss.NewStyle().Foreground(color(lightColors.Primary, darkColors.Primary)).Bold(true)
	t.Success = lipgloss.NewStyle().Foreground(color(lightColors.Success, darkColors.Success))
	t.Warning = lipgloss.NewStyle().Foreground(color(lightColors.Warning, darkColors.Warning))
	t.Error = lipgloss.NewStyle().Foreground(color(lightColors.Error, darkColors.Error))
	t.Muted = lipgloss.NewStyle().Foreground(color(lightColors.Muted, darkColors.Muted))
	t.Card = card.BorderForeground(color(lightColors.Border, darkColors.Border))
	return t
}
