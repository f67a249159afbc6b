package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/moviemaze/internal/theme"
)

var (
	lightPalette = NewPalette("#5A3FC0", "#0A7F4F", "#C0392B", "#B9770E", "#7F8C8D")
	darkPalette  = NewPalette("#B39DFF", "#04B575", "#FF6B6B", "#FFA500", "#8A8A8A")
)

// paletteFor returns the stylesheet matching the theme mode.
func paletteFor(mode theme.Mode) *Palette {
	if mode == theme.Dark {
		return darkPalette
	}
	return lightPalette
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
