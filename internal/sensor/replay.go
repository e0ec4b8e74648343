package sensor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"
)

// CaptureLine is one line of a JSON-lines packet capture. Lines carrying a
// state are connection events; all others are packets.
type CaptureLine struct {
	OffsetMS    int64     `json:"offset_ms"`
	State       State     `json:"state,omitempty"`
	HeartRate   float64   `json:"heart_rate,omitempty"`
	RRIntervals []float64 `json:"rr_intervals,omitempty"`
}

func (l CaptureLine) event() Event {
	if l.State != "" {
		return StateEvent(l.State)
	}
	return PacketEvent(Packet{HeartRate: l.HeartRate, RRIntervals: l.RRIntervals})
}

// Replay streams a capture file back as a sensor feed.
type Replay struct {
	path string
	// speed multiplies playback; zero replays without waiting between lines.
	speed float64
}

var _ Source = (*Replay)(nil)

func NewReplay(path string, speed float64) *Replay {
	return &Replay{path: path, speed: speed}
}

func (r *Replay) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open capture: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan Event)

	go func() {
		defer close(ch)
		defer func() { _ = f.Close() }()
		r.play(ctx, f, ch)
	}()

	var once sync.Once
	return ch, func() { once.Do(cancel) }, nil
}

func (r *Replay) play(ctx context.Context, rd io.Reader, ch chan<- Event) {
	if !send(ctx, ch, StateEvent(StateConnecting)) || !send(ctx, ch, StateEvent(StateStreaming)) {
		return
	}

	var (
		start   = time.Now()
		scanner = bufio.NewScanner(rd)
		stopped bool
	)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var line CaptureLine
		if err := go_json.Unmarshal(scanner.Bytes(), &line); err != nil {
			send(ctx, ch, ErrorEvent(fmt.Errorf("decode capture line: %w", err)))
			return
		}

		if r.speed > 0 {
			due := start.Add(time.Duration(float64(line.OffsetMS)/r.speed) * time.Millisecond)
			if wait := time.Until(due); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
			}
		}

		e := line.event()
		if !send(ctx, ch, e) {
			return
		}
		if e.State.IsTerminal() {
			stopped = true
			break
		}
	}

	if err := scanner.Err(); err != nil {
		send(ctx, ch, ErrorEvent(fmt.Errorf("read capture: %w", err)))
		return
	}
	if !stopped {
		send(ctx, ch, StateEvent(StateStopped))
	}
}

// CaptureWriter records a live feed in the format Replay reads.
type CaptureWriter struct {
	enc   *go_json.Encoder
	start time.Time
}

func NewCaptureWriter(w io.Writer, start time.Time) *CaptureWriter {
	return &CaptureWriter{enc: go_json.NewEncoder(w), start: start}
}

func (c *CaptureWriter) Write(e Event, at time.Time) error {
	line := CaptureLine{OffsetMS: at.Sub(c.start).Milliseconds()}
	if e.Packet != nil {
		line.HeartRate = e.Packet.HeartRate
		line.RRIntervals = e.Packet.RRIntervals
	} else {
		line.State = e.State
	}
	if err := c.enc.Encode(line); err != nil {
		return fmt.Errorf("encode capture line: %w", err)
	}
	return nil
}
