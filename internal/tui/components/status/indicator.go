package status

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/pulse/internal/sensor"
	"github.com/garrettladley/pulse/internal/tui/theme"
)

const statusDot = "●"

// Indicator shows the sensor connection state.
type Indicator struct {
	State sensor.State
	// Source names where packets come from, e.g. "sim" or "redis".
	Source string
}

func (i Indicator) Render() string {
	label, c := i.describe()
	if i.Source != "" {
		label += " (" + i.Source + ")"
	}
	return lipgloss.NewStyle().
		Foreground(c).
		Render(statusDot + " " + label)
}

func (i Indicator) describe() (string, color.Color) {
	switch i.State {
	case sensor.StateStreaming:
		return "streaming", theme.ColorOK
	case sensor.StateStopped:
		return "stopped", theme.ColorDim
	case sensor.StateError:
		return "sensor error", theme.ColorError
	default:
		return "connecting...", theme.ColorWarn
	}
}
