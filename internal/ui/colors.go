package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#B26CFF", "#04B575", "#FF4D6D", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
	help   lipgloss.Style
	muted  lipgloss.Style
	accent lipgloss.Style

	navActive lipgloss.Style
	card      lipgloss.Style
	cardFocus lipgloss.Style
	hero      lipgloss.Style
	tab       lipgloss.Style
	tabActive lipgloss.Style
	button    lipgloss.Style
	profile   lipgloss.Style
	panel     lipgloss.Style
	toast     map[string]lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	base := lipgloss.NewStyle().Padding(0, 1)
	return &Palette{
		title:  NewBold(t).MarginBottom(1),
		ok:     NewBold(s),
		err:    NewBold(e),
		warn:   NewStyle(w),
		help:   NewEm(h),
		muted:  NewStyle(h),
		accent: NewBold(t),

		navActive: NewBold(t).Underline(true),
		card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(h)).Padding(0, 1),
		cardFocus: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(t)).Padding(0, 1),
		hero:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(t)).Padding(1, 2),
		tab:       base.Foreground(lipgloss.Color(h)),
		tabActive: base.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(t)),
		button:    base.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(t)),
		profile:   base.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(t)),
		panel:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(t)).Padding(0, 1),
		toast: map[string]lipgloss.Style{
			"success": base.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(s)),
			"danger":  base.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(e)),
			"primary": base.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(t)),
		},
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
