package footer

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestFooter_Render(t *testing.T) {
	t.Parallel()

	f := New("● streaming", 80, Hint{Key: "q", Desc: "stop"}, Hint{Key: "tab", Desc: "zones"})
	out := f.Render()

	if got := lipgloss.Width(out); got != 80 {
		t.Errorf("Render() width = %d, want 80", got)
	}
	for _, want := range []string{"q", "stop", "tab", "zones", "● streaming"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q: %q", want, out)
		}
	}
}
