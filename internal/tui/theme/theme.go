package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/pulse/internal/hrv"
)

type Theme struct {
	background color.Color
	foreground color.Color
	base       lipgloss.Style
	muted      lipgloss.Style
}

func New() Theme {
	var t Theme

	t.background = ColorBgDark
	t.foreground = ColorWhite
	t.base = lipgloss.NewStyle().Foreground(t.foreground)
	t.muted = lipgloss.NewStyle().Foreground(ColorDim)

	return t
}

func (t Theme) Base() lipgloss.Style {
	return t.base
}

func (t Theme) Muted() lipgloss.Style {
	return t.muted
}

func (t Theme) Title() lipgloss.Style {
	return t.base.Bold(true)
}

func (t Theme) Zone(z hrv.Zone) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ZoneColor(z)).Bold(true)
}

func (t Theme) Background() color.Color {
	return t.background
}
