package tui

import (
	"github.com/charmbracelet/lipgloss"

	"allweather.app/internal/adapters/preferences"
	"allweather.app/internal/core/forecast"
)

type palette struct {
	primary lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	border  lipgloss.Color
	danger  lipgloss.Color
	warning lipgloss.Color
	success lipgloss.Color
	accent  lipgloss.Color
}

var palettes = map[preferences.Theme]palette{
	preferences.ThemeDark: {
		primary: lipgloss.Color("#06B6D4"),
		text:    lipgloss.Color("#FFFFFF"),
		muted:   lipgloss.Color("#6C757D"),
		border:  lipgloss.Color("#4A90E2"),
		danger:  lipgloss.Color("#FF6B6B"),
		warning: lipgloss.Color("#FFD93D"),
		success: lipgloss.Color("#6BCF7F"),
		accent:  lipgloss.Color("#164E63"),
	},
	preferences.ThemeLight: {
		primary: lipgloss.Color("#0E7490"),
		text:    lipgloss.Color("#1F2937"),
		muted:   lipgloss.Color("#9CA3AF"),
		border:  lipgloss.Color("#06B6D4"),
		danger:  lipgloss.Color("#DC2626"),
		warning: lipgloss.Color("#B45309"),
		success: lipgloss.Color("#15803D"),
		accent:  lipgloss.Color("#CFFAFE"),
	},
}

type styles struct {
	title    lipgloss.Style
	muted    lipgloss.Style
	help     lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	errText  lipgloss.Style
	success  lipgloss.Style
	pane     lipgloss.Style
	active   lipgloss.Style
	day      lipgloss.Style
	past     lipgloss.Style
	today    lipgloss.Style
	selected lipgloss.Style
	cursor   lipgloss.Style
	risk     map[forecast.WindRisk]lipgloss.Style
}

func newStyles(theme preferences.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[preferences.ThemeLight]
	}

	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(1, 2).
		MarginRight(1)

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		muted:    lipgloss.NewStyle().Foreground(p.muted),
		help:     lipgloss.NewStyle().Foreground(p.muted).Padding(1, 0),
		label:    lipgloss.NewStyle().Foreground(p.muted).Bold(true),
		value:    lipgloss.NewStyle().Foreground(p.text),
		errText:  lipgloss.NewStyle().Foreground(p.danger).Bold(true),
		success:  lipgloss.NewStyle().Foreground(p.success).Bold(true),
		pane:     pane,
		active:   pane.Border(lipgloss.ThickBorder()).BorderForeground(p.primary),
		day:      lipgloss.NewStyle().Foreground(p.text).Width(3).Align(lipgloss.Right),
		past:     lipgloss.NewStyle().Foreground(p.muted).Width(3).Align(lipgloss.Right),
		today:    lipgloss.NewStyle().Foreground(p.primary).Bold(true).Underline(true).Width(3).Align(lipgloss.Right),
		selected: lipgloss.NewStyle().Foreground(p.text).Background(p.accent).Bold(true).Width(3).Align(lipgloss.Right),
		cursor:   lipgloss.NewStyle().Reverse(true).Width(3).Align(lipgloss.Right),
		risk: map[forecast.WindRisk]lipgloss.Style{
			forecast.WindSafe:    lipgloss.NewStyle().Foreground(p.success),
			forecast.WindCaution: lipgloss.NewStyle().Foreground(p.warning),
			forecast.WindDanger:  lipgloss.NewStyle().Foreground(p.danger),
		},
	}
}
