package training

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/pulse/internal/hrv"
	"github.com/garrettladley/pulse/internal/sensor"
	"github.com/garrettladley/pulse/internal/xerrors"
)

type fakeSource struct {
	events   chan sensor.Event
	err      error
	released chan struct{}
	once     sync.Once
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		events:   make(chan sensor.Event),
		released: make(chan struct{}),
	}
}

func (f *fakeSource) Subscribe(context.Context) (<-chan sensor.Event, func(), error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.events, func() { f.once.Do(func() { close(f.released) }) }, nil
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type runResult struct {
	rec Record
	err error
}

func startRun(ctx context.Context, c *Controller, src sensor.Source) <-chan runResult {
	done := make(chan runResult, 1)
	go func() {
		rec, err := c.Run(ctx, src)
		done <- runResult{rec: rec, err: err}
	}()
	return done
}

func waitFor(t *testing.T, snaps <-chan Snapshot, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s, ok := <-snaps:
			if !ok {
				t.Fatal("snapshot channel closed before condition was met")
			}
			if cond(s) {
				return s
			}
		case <-timeout:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}

func waitResult(t *testing.T, done <-chan runResult) runResult {
	t.Helper()
	select {
	case res := <-done:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for Run to return")
		return runResult{}
	}
}

func newTestController(cfg ControllerConfig, clock *fakeClock, ticks <-chan time.Time) *Controller {
	return NewController(cfg,
		WithTicks(ticks),
		WithClock(clock.Now),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
}

func TestController_Run(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 5, 2, 7, 30, 0, 0, time.UTC)
	clock := &fakeClock{t: t0}
	ticks := make(chan time.Time)
	src := newFakeSource()
	c := newTestController(ControllerConfig{UserID: "athlete-1", AnaerobicThreshold: 100}, clock, ticks)

	snaps, unsubscribe := c.Subscribe()
	defer unsubscribe()

	done := startRun(t.Context(), c, src)

	src.events <- sensor.StateEvent(sensor.StateStreaming)
	waitFor(t, snaps, func(s Snapshot) bool { return s.State == sensor.StateStreaming })

	for i, hr := range []float64{120, 125, 130} {
		clock.Set(t0.Add(time.Duration(i+1) * time.Second))
		p := sensor.Packet{HeartRate: hr}
		if i == 2 {
			p.RRIntervals = []float64{800, 790, 810}
		}
		src.events <- sensor.PacketEvent(p)
		waitFor(t, snaps, func(s Snapshot) bool { return s.Samples == i+1 })
	}

	for want := 1; want <= 2; want++ {
		ticks <- clock.Now()
		snap := waitFor(t, snaps, func(s Snapshot) bool {
			return s.Record.HRZonesTime[hrv.ZoneIntensive2] == want
		})
		if snap.Zone != hrv.ZoneIntensive2 {
			t.Errorf("Zone = %q, want %q", snap.Zone, hrv.ZoneIntensive2)
		}
	}

	clock.Set(t0.Add(30 * time.Second))
	src.events <- sensor.StateEvent(sensor.StateStopped)

	final := waitFor(t, snaps, func(s Snapshot) bool { return s.Final })
	if final.Reason != ReasonSensorStopped || final.State != sensor.StateStopped {
		t.Errorf("final snapshot = %q/%q, want %q/%q", final.Reason, final.State, ReasonSensorStopped, sensor.StateStopped)
	}
	if final.Record.Duration != 30 {
		t.Errorf("final snapshot duration = %d, want 30", final.Record.Duration)
	}
	if _, ok := <-snaps; ok {
		t.Error("snapshot channel still open after the final snapshot")
	}

	res := waitResult(t, done)
	if res.err != nil {
		t.Fatalf("Run() error = %v", res.err)
	}

	got := res.rec
	if diff := cmp.Diff([]float64{120, 125, 130}, got.RawHRData); diff != "" {
		t.Errorf("RawHRData mismatch (-want +got):\n%s", diff)
	}
	wantTimestamps := []time.Time{t0.Add(time.Second), t0.Add(2 * time.Second), t0.Add(3 * time.Second)}
	if diff := cmp.Diff(wantTimestamps, got.Timestamps); diff != "" {
		t.Errorf("Timestamps mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(zoneTimes(map[hrv.Zone]int{hrv.ZoneIntensive2: 2}), got.HRZonesTime); diff != "" {
		t.Errorf("HRZonesTime mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ptr(125.0), got.AvgHR); diff != "" {
		t.Errorf("AvgHR mismatch (-want +got):\n%s", diff)
	}
	if got.Duration != 30 {
		t.Errorf("Duration = %d, want 30", got.Duration)
	}
	if !got.Date.Equal(t0) {
		t.Errorf("Date = %v, want %v", got.Date, t0)
	}

	select {
	case <-src.released:
	default:
		t.Error("sensor subscription was not released")
	}
}

func TestController_EndsSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		end        func(cancel context.CancelFunc, src *fakeSource)
		wantReason string
		wantState  sensor.State
	}{
		{
			name: "sensor error",
			end: func(_ context.CancelFunc, src *fakeSource) {
				src.events <- sensor.ErrorEvent(errors.New("strap lost"))
			},
			wantReason: ReasonSensorError + ": strap lost",
			wantState:  sensor.StateError,
		},
		{
			name:       "stream closed",
			end:        func(_ context.CancelFunc, src *fakeSource) { close(src.events) },
			wantReason: ReasonStreamClosed,
			wantState:  sensor.StateStreaming,
		},
		{
			name:       "context canceled",
			end:        func(cancel context.CancelFunc, _ *fakeSource) { cancel() },
			wantReason: ReasonCanceled,
			wantState:  sensor.StateStreaming,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			t0 := time.Unix(1_750_000_000, 0)
			clock := &fakeClock{t: t0}
			src := newFakeSource()
			c := newTestController(ControllerConfig{UserID: "u", AnaerobicThreshold: 170}, clock, make(chan time.Time))

			snaps, unsubscribe := c.Subscribe()
			defer unsubscribe()

			done := startRun(ctx, c, src)
			src.events <- sensor.StateEvent(sensor.StateStreaming)
			src.events <- sensor.PacketEvent(sensor.Packet{HeartRate: 95, RRIntervals: []float64{640, 650}})
			waitFor(t, snaps, func(s Snapshot) bool { return s.Samples == 1 })

			clock.Set(t0.Add(12 * time.Second))
			tt.end(cancel, src)

			final := waitFor(t, snaps, func(s Snapshot) bool { return s.Final })
			if final.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", final.Reason, tt.wantReason)
			}
			if final.State != tt.wantState {
				t.Errorf("State = %q, want %q", final.State, tt.wantState)
			}

			res := waitResult(t, done)
			if res.err != nil {
				t.Fatalf("Run() error = %v, want partial record", res.err)
			}
			if diff := cmp.Diff([]float64{95}, res.rec.RawHRData); diff != "" {
				t.Errorf("partial data mismatch (-want +got):\n%s", diff)
			}
			if res.rec.Duration != 12 {
				t.Errorf("Duration = %d, want 12", res.rec.Duration)
			}
		})
	}
}

func TestController_SubscribeFailure(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.err = errors.New("no such device")
	c := newTestController(ControllerConfig{UserID: "u"}, &fakeClock{}, nil)

	snaps, unsubscribe := c.Subscribe()
	defer unsubscribe()

	_, err := c.Run(t.Context(), src)
	if !xerrors.IsKind(err, xerrors.KindSensor) {
		t.Fatalf("Run() error = %v, want sensor error", err)
	}
	if !errors.Is(err, src.err) {
		t.Errorf("Run() error does not wrap the subscribe failure: %v", err)
	}
	if _, ok := <-snaps; ok {
		t.Error("snapshot channel open after failed run")
	}
}

func TestController_SlowSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Unix(0, 0)}
	ticks := make(chan time.Time)
	src := newFakeSource()
	c := newTestController(ControllerConfig{UserID: "u", AnaerobicThreshold: 180}, clock, ticks)

	// never read until the session is over
	stalled, unsubscribeStalled := c.Subscribe()
	defer unsubscribeStalled()

	done := startRun(t.Context(), c, src)
	for i := range 50 {
		src.events <- sensor.PacketEvent(sensor.Packet{HeartRate: float64(100 + i)})
		ticks <- clock.Now()
	}
	src.events <- sensor.StateEvent(sensor.StateStopped)

	res := waitResult(t, done)
	if got := len(res.rec.RawHRData); got != 50 {
		t.Errorf("len(RawHRData) = %d, want 50", got)
	}

	final, ok := <-stalled
	if !ok || !final.Final {
		t.Fatalf("stalled subscriber got %+v (ok=%v), want the final snapshot", final, ok)
	}
	if final.Samples != 50 {
		t.Errorf("final Samples = %d, want 50", final.Samples)
	}
}

func TestController_SubscribeAfterRun(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	c := newTestController(ControllerConfig{UserID: "u"}, &fakeClock{t: time.Unix(0, 0)}, make(chan time.Time))

	done := startRun(t.Context(), c, src)
	close(src.events)
	waitResult(t, done)

	snaps, unsubscribe := c.Subscribe()
	defer unsubscribe()

	last, ok := <-snaps
	if !ok || !last.Final {
		t.Fatalf("late subscriber got %+v (ok=%v), want the final snapshot", last, ok)
	}
	if _, ok := <-snaps; ok {
		t.Error("late subscriber channel not closed")
	}
}

func TestController_Unsubscribe(t *testing.T) {
	t.Parallel()

	c := newTestController(ControllerConfig{UserID: "u"}, &fakeClock{}, nil)
	snaps, unsubscribe := c.Subscribe()
	unsubscribe()
	unsubscribe()

	if _, ok := <-snaps; ok {
		t.Error("channel open after unsubscribe")
	}
}
