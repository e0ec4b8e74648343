//go:build !release

package footer

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/pulse/internal/tui/theme"
	"github.com/garrettladley/pulse/internal/version"
)

var (
	devBadgeStyle   = lipgloss.NewStyle().Foreground(theme.ColorBlack).Background(theme.ColorHeartRate).Bold(true)
	devVersionStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)
)

// leftContent shows a DEV badge and the build version.
func (f Footer) leftContent() string {
	return devBadgeStyle.Render(" DEV ") + " " + devVersionStyle.Render(version.Get())
}
