package sensor

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTee_CapturesFeed(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(SimulatorConfig{Duration: 5 * time.Second})

	var buf bytes.Buffer
	start := time.Unix(0, 0)
	w := NewCaptureWriter(&buf, start)
	var n int
	tee := Tee(sim, func(e Event) {
		n++
		if err := w.Write(e, start.Add(time.Duration(n)*time.Millisecond)); err != nil {
			t.Errorf("Write() error = %v", err)
		}
	})

	direct := collect(t, sim)
	teed := collect(t, tee)

	if diff := cmp.Diff(direct, teed); diff != "" {
		t.Errorf("Tee changed the feed (-want +got):\n%s", diff)
	}
	if n != len(direct) {
		t.Errorf("fn called %d times, want %d", n, len(direct))
	}

	path := writeCapture(t, buf.String())
	replayed := collect(t, NewReplay(path, 0))
	if diff := cmp.Diff(direct, replayed); diff != "" {
		t.Errorf("captured feed does not replay (-want +got):\n%s", diff)
	}
}
