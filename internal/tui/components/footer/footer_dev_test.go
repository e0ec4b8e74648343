//go:build !release

package footer

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/garrettladley/pulse/internal/version"
)

func TestFooter_DevBadge(t *testing.T) {
	t.Parallel()

	out := ansi.Strip(New("", 80).Render())
	for _, want := range []string{"DEV", version.Get()} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q: %q", want, out)
		}
	}
}
