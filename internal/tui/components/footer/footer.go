package footer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/pulse/internal/tui/theme"
)

var (
	keyStyle  = lipgloss.NewStyle().Foreground(theme.ColorWhite).Bold(true)
	hintStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)
)

type Hint struct {
	Key  string
	Desc string
}

type Footer struct {
	hints        []Hint
	rightContent string
	width        int
	padding      int
}

func New(rightContent string, width int, hints ...Hint) Footer {
	return Footer{
		hints:        hints,
		rightContent: rightContent,
		width:        width,
		padding:      2,
	}
}

func (f Footer) Render() string {
	leftContent := f.leftContent()
	if hints := f.renderHints(); hints != "" {
		if leftContent != "" {
			leftContent += "  "
		}
		leftContent += hints
	}

	leftWidth := lipgloss.Width(leftContent)
	rightWidth := lipgloss.Width(f.rightContent)
	spacerWidth := max(f.width-leftWidth-rightWidth-(f.padding*2), 0)

	return lipgloss.NewStyle().
		PaddingLeft(f.padding).
		PaddingRight(f.padding).
		Render(leftContent + strings.Repeat(" ", spacerWidth) + f.rightContent)
}

func (f Footer) renderHints() string {
	parts := make([]string, len(f.hints))
	for i, h := range f.hints {
		parts[i] = keyStyle.Render(h.Key) + " " + hintStyle.Render(h.Desc)
	}
	return strings.Join(parts, hintStyle.Render(" • "))
}
