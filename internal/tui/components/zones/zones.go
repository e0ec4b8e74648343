package zones

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/pulse/internal/hrv"
	"github.com/garrettladley/pulse/internal/tui/theme"
)

const (
	nameWidth = 16
	barWidth  = 20
)

// Table lists the accumulated seconds per zone with a proportional bar.
// The zone in Current is marked.
type Table struct {
	Seconds map[hrv.Zone]int
	Current hrv.Zone
	// RestZones selects which zone family is listed.
	RestZones bool
}

func (t Table) Render() string {
	var (
		rows  []string
		total int
		shown []hrv.Zone
	)
	for _, z := range hrv.Zones() {
		if z.IsRestZone() != t.RestZones {
			continue
		}
		shown = append(shown, z)
		total += t.Seconds[z]
	}

	for _, z := range shown {
		secs := t.Seconds[z]
		marker := "  "
		if z == t.Current {
			marker = "▶ "
		}
		name := lipgloss.NewStyle().Width(nameWidth).Render(z.String())
		bar := lipgloss.NewStyle().Foreground(theme.ZoneColor(z)).Render(Bar(secs, total, barWidth))
		rows = append(rows, marker+name+" "+bar+" "+FormatSeconds(secs))
	}
	return strings.Join(rows, "\n")
}

// Bar renders secs as a share of total across width cells.
func Bar(secs, total, width int) string {
	filled := 0
	if total > 0 {
		filled = secs * width / total
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatSeconds renders secs as m:ss, or h:mm:ss from one hour.
func FormatSeconds(secs int) string {
	h, m, s := secs/3600, secs/60%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
