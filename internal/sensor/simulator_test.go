package sensor

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSimulator_Subscribe(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(SimulatorConfig{
		RestingHR: 60,
		TargetHR:  140,
		Duration:  10 * time.Second,
	})

	events, unsubscribe, err := sim.Subscribe(t.Context())
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer unsubscribe()

	var (
		states  []State
		packets []Packet
	)
	for e := range events {
		if e.Packet != nil {
			packets = append(packets, *e.Packet)
			continue
		}
		states = append(states, e.State)
	}

	if diff := cmp.Diff([]State{StateConnecting, StateStreaming, StateStopped}, states); diff != "" {
		t.Errorf("states mismatch (-want +got):\n%s", diff)
	}
	if len(packets) != 10 {
		t.Fatalf("got %d packets, want 10", len(packets))
	}
	if packets[0].HeartRate != 60 {
		t.Errorf("first packet heart rate = %v, want resting 60", packets[0].HeartRate)
	}
	for i, p := range packets {
		if len(p.RRIntervals) == 0 {
			t.Errorf("packet %d has no RR intervals", i)
		}
		for _, rr := range p.RRIntervals {
			if rr <= 0 {
				t.Errorf("packet %d has non-positive RR interval %v", i, rr)
			}
		}
	}
}

func TestSimulator_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := SimulatorConfig{TargetHR: 150, Duration: time.Minute}
	a := NewSimulator(cfg)
	b := NewSimulator(cfg)

	for i := range 30 {
		elapsed := time.Duration(i) * time.Second
		if diff := cmp.Diff(a.Packet(i, elapsed), b.Packet(i, elapsed)); diff != "" {
			t.Fatalf("packet %d differs (-a +b):\n%s", i, diff)
		}
	}
}

func TestSimulator_UnsubscribeStopsStream(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(SimulatorConfig{})
	events, unsubscribe, err := sim.Subscribe(t.Context())
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	<-events
	unsubscribe()
	unsubscribe()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("event channel not closed after unsubscribe")
		}
	}
}
