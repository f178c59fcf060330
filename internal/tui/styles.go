package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/xonecas/tabulon/internal/highlight"
	"github.com/xonecas/tabulon/internal/tui/modal"
)

// Styles holds pre-built lipgloss styles derived from the theme palette.
type Styles struct {
	Palette highlight.Palette

	Text       lipgloss.Style // document text
	Border     lipgloss.Style // table borders, dividers
	Handle     lipgloss.Style // resize handle columns
	HandleHot  lipgloss.Style // handle under an active drag
	Tooltip    lipgloss.Style // width feedback readout
	Dim        lipgloss.Style
	StatusText lipgloss.Style
	Error      lipgloss.Style
	BgFill     lipgloss.Style // background-only padding
}

func newStyles(p highlight.Palette) Styles {
	bg := lipgloss.Color(p.Bg)
	return Styles{
		Palette:    p,
		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Fg)).Background(bg),
		Border:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Border)).Background(bg),
		Handle:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)).Background(bg),
		HandleHot:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Background(bg).Bold(true),
		Tooltip:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Bg)).Background(lipgloss.Color(p.Accent)),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dim)).Background(bg),
		StatusText: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)).Background(bg),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Background(bg),
		BgFill:     lipgloss.NewStyle().Background(bg),
	}
}

// modalColors adapts the palette to the modal package's color set.
func (s Styles) modalColors() modal.Colors {
	return modal.Colors{
		Fg:     s.Palette.Fg,
		Bg:     s.Palette.Bg,
		Dim:    s.Palette.Dim,
		SelFg:  s.Palette.Bg,
		SelBg:  s.Palette.Fg,
		Border: s.Palette.Border,
		Error:  s.Palette.Error,
	}
}
