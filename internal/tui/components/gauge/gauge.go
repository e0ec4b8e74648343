package gauge

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	drawille "github.com/exrook/drawille-go"

	"github.com/garrettladley/pulse/internal/tui/theme"
)

// ring size in braille dots; a cell is 2 dots wide and 4 tall, so the
// gauge is 22 columns by 11 rows with a hollow center for the value.
const (
	dotsWidth  = 44
	dotsHeight = 44
	cols       = dotsWidth / 2
	rows       = dotsHeight / 4
)

const blankBraille rune = '⠀'

// Gauge is a circular meter for one live reading. The ring fills clockwise
// from the top in proportion to where Value sits between Min and Max.
type Gauge struct {
	Value     *float64 // nil until the first reading
	Min       float64
	Max       float64
	Label     string
	Unit      string
	Format    func(float64) string
	Color     color.Color
	BgColor   color.Color
	TextColor color.Color
}

type Option func(*Gauge)

// WithRange sets the values mapped to an empty and a full ring.
func WithRange(lo, hi float64) Option {
	return func(g *Gauge) {
		g.Min = lo
		g.Max = hi
	}
}

func WithUnit(unit string) Option {
	return func(g *Gauge) { g.Unit = unit }
}

func WithFormat(format func(float64) string) Option {
	return func(g *Gauge) { g.Format = format }
}

func New(value *float64, label string, c color.Color, opts ...Option) Gauge {
	g := Gauge{
		Value:     value,
		Max:       100,
		Label:     label,
		Color:     c,
		BgColor:   theme.ColorBgLight,
		TextColor: theme.ColorWhite,
		Format:    func(v float64) string { return fmt.Sprintf("%.0f", v) },
	}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

// Fraction reports how much of the ring is filled, clamped to [0, 1].
func (g Gauge) Fraction() float64 {
	if g.Value == nil || g.Max <= g.Min {
		return 0
	}
	f := (*g.Value - g.Min) / (g.Max - g.Min)
	return min(max(f, 0), 1)
}

func (g Gauge) valueText() string {
	if g.Value == nil {
		return "--"
	}
	text := g.Format(*g.Value)
	if g.Unit != "" {
		text += " " + g.Unit
	}
	return text
}

func (g Gauge) Render() string {
	track := layer(1)
	fill := layer(g.Fraction())

	lines := compose(track, fill,
		lipgloss.NewStyle().Foreground(g.BgColor),
		lipgloss.NewStyle().Foreground(g.Color),
	)

	value := lipgloss.NewStyle().Foreground(g.TextColor).Bold(true).Render(g.valueText())
	mid := len(lines) / 2
	lines[mid] = splice(lines[mid], value, cols)

	label := lipgloss.NewStyle().
		Foreground(g.TextColor).
		Bold(true).
		Width(cols).
		Align(lipgloss.Center).
		Render(g.Label)

	return lipgloss.JoinVertical(lipgloss.Center, strings.Join(lines, "\n"), label)
}

// layer rasterizes the ring filled to fraction into a rows x cols grid of
// braille cells.
func layer(fraction float64) [][]rune {
	canvas := drawille.NewCanvas()
	drawRing(&canvas, fraction)
	drawn := canvas.Rows(0, 0, dotsWidth, dotsHeight)

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = make([]rune, cols)
		var src []rune
		if i < len(drawn) {
			src = []rune(drawn[i])
		}
		for j := range grid[i] {
			grid[i][j] = blankBraille
			if j < len(src) && hasDots(src[j]) {
				grid[i][j] = src[j]
			}
		}
	}
	return grid
}

// compose merges the filled ring over the track. A cell with any filled dot
// takes the fill color and the union of both cells' dots.
func compose(track, fill [][]rune, trackStyle, fillStyle lipgloss.Style) []string {
	lines := make([]string, len(track))
	for i := range track {
		var (
			b       strings.Builder
			run     strings.Builder
			current *lipgloss.Style
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == nil {
				b.WriteString(run.String())
			} else {
				b.WriteString(current.Render(run.String()))
			}
			run.Reset()
		}

		for j := range track[i] {
			t, f := track[i][j], fill[i][j]
			var (
				style *lipgloss.Style
				r     = ' '
			)
			switch {
			case hasDots(f):
				style, r = &fillStyle, blankBraille+((t-blankBraille)|(f-blankBraille))
			case hasDots(t):
				style, r = &trackStyle, t
			}
			if style != current {
				flush()
				current = style
			}
			run.WriteRune(r)
		}
		flush()
		lines[i] = b.String()
	}
	return lines
}

// splice centers styled text over a line of the given cell width, keeping
// the styled cells on either side.
func splice(line, text string, width int) string {
	w := ansi.StringWidth(text)
	start := max((width-w)/2, 0)
	end := min(start+w, width)
	return ansi.Cut(line, 0, start) + text + ansi.Cut(line, end, width)
}

func hasDots(r rune) bool {
	return r > blankBraille && r <= '⣿'
}
