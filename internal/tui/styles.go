package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/brew-math/internal/theme"
)

// styles are rebuilt whenever the theme changes.
type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	panel    lipgloss.Style
	heading  lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	focused  lipgloss.Style
	selected lipgloss.Style
	warning  lipgloss.Style
	key      lipgloss.Style
	big      lipgloss.Style
	border   lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		subtitle: lipgloss.NewStyle().Foreground(p.Muted),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1).
			Width(panelWidth),
		heading:  lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		text:     lipgloss.NewStyle().Foreground(p.Text),
		muted:    lipgloss.NewStyle().Foreground(p.Muted),
		focused:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		selected: lipgloss.NewStyle().Bold(true).Foreground(p.Selected),
		warning:  lipgloss.NewStyle().Foreground(p.Warning),
		key:      lipgloss.NewStyle().Foreground(p.Accent),
		big:      lipgloss.NewStyle().Bold(true).Foreground(p.Text).Padding(0, 2),
		border:   lipgloss.NewStyle().Foreground(p.Border),
	}
}
