package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/pulse/internal/hrv"
)

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorTeal      = lipgloss.Color("#00F19F") // highlights, live values
	ColorHeartRate = lipgloss.Color("#FF3B5C") // heart rate gauge and trace
	ColorHRV       = lipgloss.Color("#67AEE6") // RMSSD and other variability data
	ColorOK        = lipgloss.Color("#16EC06")
	ColorWarn      = lipgloss.Color("#FFDE00")
	ColorError     = lipgloss.Color("#FF0026")
)

var (
	ColorBgDark  = lipgloss.Color("#101518") // Darker end of gradient
	ColorBgLight = lipgloss.Color("#283339") // Lighter end of gradient
)

var zoneColors = map[hrv.Zone]color.Color{
	hrv.ZoneTransition: lipgloss.Color("#7BA1BB"),
	hrv.ZoneActiveHigh: lipgloss.Color("#6C9FD6"),
	hrv.ZoneActiveLow:  lipgloss.Color("#5B8FE8"),
	hrv.ZoneRest:       lipgloss.Color("#4A7FF5"),
	hrv.ZoneRelaxed:    lipgloss.Color("#3B6BFF"),

	hrv.ZoneResting:    lipgloss.Color("#8A939A"),
	hrv.ZoneWarmup:     lipgloss.Color("#A6E3A1"),
	hrv.ZoneCooldown:   lipgloss.Color("#94E2D5"),
	hrv.ZoneEndurance1: lipgloss.Color("#16EC06"),
	hrv.ZoneEndurance2: lipgloss.Color("#B5E61D"),
	hrv.ZoneEndurance3: lipgloss.Color("#FFDE00"),
	hrv.ZoneIntensive1: lipgloss.Color("#FF8C00"),
	hrv.ZoneIntensive2: lipgloss.Color("#FF0026"),
}

// ZoneColor returns the display color of z, dim for unknown zones.
func ZoneColor(z hrv.Zone) color.Color {
	if c, ok := zoneColors[z]; ok {
		return c
	}
	return ColorDim
}
