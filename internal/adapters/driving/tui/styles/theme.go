// Package styles holds the lipgloss palette shared by the TUI views.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// Palette maps report verdicts and chrome to colours.
type Palette struct {
	Accent lipgloss.Color
	Label  lipgloss.Color
	Text   lipgloss.Color
	Dim    lipgloss.Color
	Bar    lipgloss.Color

	// Verdict colours for clean entries and each violation kind.
	Clean      lipgloss.Color
	Schema     lipgloss.Color
	Structural lipgloss.Color
}

// DefaultPalette is tuned for dark terminals.
func DefaultPalette() Palette {
	return Palette{
		Accent:     "#89B4FA",
		Label:      "#94E2D5",
		Text:       "#CDD6F4",
		Dim:        "#7F849C",
		Bar:        "#181825",
		Clean:      "#A6E3A1",
		Schema:     "#FAB387",
		Structural: "#F38BA8",
	}
}

// Styles are the rendered styles the views draw with.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Code      lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds styles from p. The zero Palette means DefaultPalette.
func NewStyles(p Palette) *Styles {
	if p == (Palette{}) {
		p = DefaultPalette()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		Title:     fg(p.Accent).Bold(true),
		Subtitle:  fg(p.Label).Bold(true),
		Normal:    fg(p.Text),
		Muted:     fg(p.Dim),
		Selected:  fg(p.Bar).Background(p.Accent).Bold(true),
		Code:      fg(p.Label).Italic(true),
		StatusBar: fg(p.Dim).Background(p.Bar).Padding(0, 1),
		Help:      fg(p.Dim),

		Success: fg(p.Clean),
		Warning: fg(p.Schema),
		Error:   fg(p.Structural).Bold(true),
	}
}

// DefaultStyles returns NewStyles(DefaultPalette()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}

// ForKind picks the verdict style for a violation kind.
func (s *Styles) ForKind(kind domain.ViolationKind) lipgloss.Style {
	if kind == domain.KindStructural {
		return s.Error
	}
	return s.Warning
}
