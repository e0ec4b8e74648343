package trace

import (
	"fmt"
	"image/color"
	"strings"

	drawille "github.com/exrook/drawille-go"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/pulse/internal/tui/theme"
)

// minSpan keeps a flat trace from filling the whole plot height, in bpm.
const minSpan = 10.0

// Trace plots the most recent heart rate samples as a braille line chart.
type Trace struct {
	Samples []float64
	Width   int // chars
	Height  int // chars
	Color   color.Color
}

func New(samples []float64, width, height int, c color.Color) Trace {
	return Trace{Samples: samples, Width: width, Height: height, Color: c}
}

func (t Trace) Render() string {
	if t.Width <= 0 || t.Height <= 0 {
		return ""
	}
	dotsW, dotsH := t.Width*2, t.Height*4

	samples := t.Samples
	if len(samples) > dotsW {
		samples = samples[len(samples)-dotsW:]
	}
	if len(samples) == 0 {
		return lipgloss.Place(t.Width, t.Height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.ColorDim).Render("waiting for heart rate"))
	}

	lo, hi := bounds(samples)
	pts := plot(samples, lo, hi, dotsH)

	canvas := drawille.NewCanvas()
	canvas.Set(pts[0][0], pts[0][1])
	for i := 1; i < len(pts); i++ {
		line(&canvas, pts[i-1], pts[i])
	}

	rows := canvas.Rows(0, 0, dotsW, dotsH)
	lines := make([]string, t.Height)
	for i := range lines {
		var row string
		if i < len(rows) {
			row = rows[i]
		}
		lines[i] = padRunes(row, t.Width)
	}

	chart := lipgloss.NewStyle().Foreground(t.Color).Render(strings.Join(lines, "\n"))
	axis := axisLabels(lo, hi, t.Height)
	return lipgloss.JoinHorizontal(lipgloss.Top, axis, " ", chart)
}

// bounds returns the plotted value range, widened to at least minSpan.
func bounds(samples []float64) (lo, hi float64) {
	lo, hi = samples[0], samples[0]
	for _, v := range samples[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if span := hi - lo; span < minSpan {
		pad := (minSpan - span) / 2
		lo -= pad
		hi += pad
	}
	return lo, hi
}

// plot maps samples to dot coordinates, one column per sample, with hi at
// the top row and lo at the bottom.
func plot(samples []float64, lo, hi float64, dotsH int) [][2]int {
	pts := make([][2]int, len(samples))
	last := float64(dotsH - 1)
	for i, v := range samples {
		y := int((hi-v)/(hi-lo)*last + 0.5)
		pts[i] = [2]int{i, min(max(y, 0), dotsH-1)}
	}
	return pts
}

// line draws a segment with Bresenham's algorithm.
func line(canvas *drawille.Canvas, from, to [2]int) {
	x0, y0 := from[0], from[1]
	x1, y1 := to[0], to[1]
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		canvas.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func axisLabels(lo, hi float64, height int) string {
	labels := make([]string, height)
	for i := range labels {
		labels[i] = "   "
	}
	labels[0] = fmt.Sprintf("%3.0f", hi)
	if height > 1 {
		labels[height-1] = fmt.Sprintf("%3.0f", lo)
	}
	return lipgloss.NewStyle().Foreground(theme.ColorDim).Render(strings.Join(labels, "\n"))
}

func padRunes(s string, width int) string {
	n := len([]rune(s))
	switch {
	case n < width:
		return s + strings.Repeat(" ", width-n)
	case n > width:
		return string([]rune(s)[:width])
	default:
		return s
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
