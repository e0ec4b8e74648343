package gauge

import (
	"math"

	drawille "github.com/exrook/drawille-go"
)

const (
	ringThickness = 4.0
	fullSweep     = 360.0
)

// sweep returns the clockwise angle in degrees from 12 o'clock to the
// offset (dx, dy). Screen y grows downward.
func sweep(dx, dy float64) float64 {
	deg := math.Atan2(dy, dx)*180/math.Pi + 90
	if deg < 0 {
		deg += fullSweep
	}
	return deg
}

// drawRing sets every dot of the ring band whose sweep is within the first
// fraction of a full turn. Scanning the band instead of tracing circles
// leaves no gaps between the inner and outer edge.
func drawRing(canvas *drawille.Canvas, fraction float64) {
	if fraction <= 0 {
		return
	}
	var (
		limit = min(fraction, 1) * fullSweep
		cx    = float64(dotsWidth) / 2
		cy    = float64(dotsHeight) / 2
		outer = float64(dotsWidth)/2 - 1
		inner = outer - ringThickness
	)
	for y := range dotsHeight {
		for x := range dotsWidth {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			d := math.Hypot(dx, dy)
			if d > outer || d <= inner {
				continue
			}
			if sweep(dx, dy) <= limit {
				canvas.Set(x, y)
			}
		}
	}
}
