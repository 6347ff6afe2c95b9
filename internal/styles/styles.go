// Package styles maps color themes onto Lip Gloss styles for terminal output.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// NewRenderer returns a Lip Gloss renderer for w. When color is false every
// style renders as plain text; when true a color profile is forced even if w
// is not a terminal.
func NewRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch {
	case !color:
		r.SetColorProfile(termenv.Ascii)
	case r.ColorProfile() == termenv.Ascii:
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}

// Styler decorates report pieces with a theme's colors. It satisfies
// render.Styler.
type Styler struct {
	number   lipgloss.Style
	divisor  lipgloss.Style
	exponent lipgloss.Style
	rule     lipgloss.Style
	heading  lipgloss.Style
	prompt   lipgloss.Style
	err      lipgloss.Style
}

// NewStyler builds the styles for a theme bound to renderer r.
func NewStyler(theme ThemeName, r *lipgloss.Renderer) *Styler {
	p := GetPalette(theme)

	fg := func(c lipgloss.Color) lipgloss.Style {
		s := r.NewStyle()
		if c != "" {
			s = s.Foreground(c)
		}
		return s
	}

	return &Styler{
		number:   fg(p.Primary),
		divisor:  fg(p.Secondary).Bold(true),
		exponent: fg(p.Warning),
		rule:     fg(p.Muted),
		heading:  fg(p.Text).Bold(true),
		prompt:   fg(p.Muted),
		err:      fg(p.Error).Bold(true),
	}
}

func (s *Styler) Number(v string) string   { return s.number.Render(v) }
func (s *Styler) Divisor(v string) string  { return s.divisor.Render(v) }
func (s *Styler) Exponent(v string) string { return s.exponent.Render(v) }
func (s *Styler) Rule(v string) string     { return s.rule.Render(v) }
func (s *Styler) Heading(v string) string  { return s.heading.Render(v) }
func (s *Styler) Prompt(v string) string   { return s.prompt.Render(v) }

// Error renders an error message.
func (s *Styler) Error(v string) string { return s.err.Render(v) }
