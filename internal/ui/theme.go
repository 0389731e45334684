package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/fixity/internal/config"
)

// Catppuccin Mocha defaults, overridable from config.
const (
	defaultGreen  = "#a6e3a1"
	defaultRed    = "#f38ba8"
	defaultYellow = "#f9e2af"
	defaultMuted  = "#5a6278"
)

// Theme holds the styles presenters render with. Styles are bound to a
// renderer for the output writer, so they degrade to plain text when the
// writer is not a color terminal.
type Theme struct {
	OK      lipgloss.Style
	Failed  lipgloss.Style
	Warning lipgloss.Style
	Label   lipgloss.Style
	Digest  lipgloss.Style
}

// NewTheme builds a Theme for w, applying any color overrides from tc.
func NewTheme(w io.Writer, tc config.ThemeConfig) Theme {
	r := lipgloss.NewRenderer(w)
	green := lipgloss.Color(pick(tc.Green, defaultGreen))
	red := lipgloss.Color(pick(tc.Red, defaultRed))
	yellow := lipgloss.Color(pick(tc.Yellow, defaultYellow))
	muted := lipgloss.Color(pick(tc.Muted, defaultMuted))

	return Theme{
		OK:      r.NewStyle().Bold(true).Foreground(green),
		Failed:  r.NewStyle().Bold(true).Foreground(red),
		Warning: r.NewStyle().Foreground(yellow),
		Label:   r.NewStyle().Foreground(muted),
		Digest:  r.NewStyle(),
	}
}

func pick(override *string, def string) string {
	if override != nil && *override != "" {
		return *override
	}
	return def
}
