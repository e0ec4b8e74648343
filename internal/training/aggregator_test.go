package training

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/garrettladley/pulse/internal/hrv"
	"github.com/garrettladley/pulse/internal/sensor"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func zoneTimes(overrides map[hrv.Zone]int) map[hrv.Zone]int {
	out := make(map[hrv.Zone]int, len(hrv.Zones()))
	for _, z := range hrv.Zones() {
		out[z] = overrides[z]
	}
	return out
}

func TestAggregator_Session(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)
	a := NewAggregator("athlete-1")
	a.Start(t0)

	a.AddPacket(sensor.Packet{HeartRate: 120}, t0.Add(1*time.Second))
	a.AddPacket(sensor.Packet{HeartRate: 125}, t0.Add(2*time.Second))
	a.AddPacket(sensor.Packet{HeartRate: 130, RRIntervals: []float64{800, 790, 810}}, t0.Add(3*time.Second))

	got := a.Stop(t0.Add(65*time.Second + 900*time.Millisecond))

	want := Record{
		UserID:         "athlete-1",
		Type:           TypeLive,
		Date:           t0,
		Duration:       65,
		AvgHR:          ptr(125.0),
		MaxHR:          ptr(130.0),
		MinHR:          ptr(120.0),
		RMSSD:          math.Sqrt(250),
		SDNN:           10,
		PNN50:          0,
		LFHFRatio:      ptr(3.0),
		VLFPower:       20,
		LFPower:        60,
		HFPower:        20,
		CaloriesBurned: 125.0 * 65 / 60 / 10,
		HRZonesTime:    zoneTimes(nil),
		RawHRData:      []float64{120, 125, 130},
		RawRRData:      []float64{800, 790, 810},
		Timestamps: []time.Time{
			t0.Add(1 * time.Second),
			t0.Add(2 * time.Second),
			t0.Add(3 * time.Second),
		},
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Stop() mismatch (-want +got):\n%s", diff)
	}
	if errs := got.Validate(); errs != nil {
		t.Errorf("Validate() = %v, want nil", errs)
	}
}

func TestAggregator_EmptySession(t *testing.T) {
	t.Parallel()

	t0 := time.Unix(1_700_000_000, 0)
	a := NewAggregator("athlete-1")
	a.Start(t0)

	got := a.Stop(t0.Add(10 * time.Second))

	if got.AvgHR != nil || got.MaxHR != nil || got.MinHR != nil {
		t.Errorf("summary = %v/%v/%v, want unavailable", got.AvgHR, got.MaxHR, got.MinHR)
	}
	if got.CaloriesBurned != 0 {
		t.Errorf("CaloriesBurned = %v, want 0", got.CaloriesBurned)
	}
	if got.RawHRData == nil || len(got.RawHRData) != 0 {
		t.Errorf("RawHRData = %#v, want empty non-nil", got.RawHRData)
	}
	if got.Duration != 10 {
		t.Errorf("Duration = %d, want 10", got.Duration)
	}
}

func TestAggregator_IgnoresInvalidHeartRate(t *testing.T) {
	t.Parallel()

	t0 := time.Unix(0, 0)
	a := NewAggregator("u")
	a.Start(t0)

	a.AddPacket(sensor.Packet{HeartRate: 0, RRIntervals: []float64{900}}, t0)
	a.AddPacket(sensor.Packet{HeartRate: math.NaN(), RRIntervals: []float64{950}}, t0)
	a.AddPacket(sensor.Packet{HeartRate: 88}, t0)

	snap := a.Snapshot(t0)
	if snap.Samples != 1 {
		t.Errorf("Samples = %d, want 1", snap.Samples)
	}
	if diff := cmp.Diff(ptr(88.0), snap.Summary.Current); diff != "" {
		t.Errorf("Current mismatch (-want +got):\n%s", diff)
	}
	if got, want := snap.Record.RMSSD, 50.0; got != want {
		t.Errorf("RMSSD = %v, want %v (RR batches kept)", got, want)
	}
}

func TestAggregator_Tick(t *testing.T) {
	t.Parallel()

	t0 := time.Unix(0, 0)

	tests := []struct {
		name    string
		at      float64
		packets []sensor.Packet
		ticks   int
		want    hrv.Zone
	}{
		{
			name:  "no sample yet",
			at:    100,
			ticks: 1,
			want:  hrv.ZoneResting,
		},
		{
			name:    "no threshold configured",
			at:      0,
			packets: []sensor.Packet{{HeartRate: 160}},
			ticks:   2,
			want:    hrv.ZoneResting,
		},
		{
			name:    "above threshold",
			at:      100,
			packets: []sensor.Packet{{HeartRate: 130}},
			ticks:   3,
			want:    hrv.ZoneIntensive2,
		},
		{
			name: "low heart rate uses rmssd",
			at:   100,
			packets: []sensor.Packet{
				{HeartRate: 60, RRIntervals: []float64{1000, 1060, 1000, 1060}},
			},
			ticks: 1,
			want:  hrv.ZoneRest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := NewAggregator("u")
			a.Start(t0)
			for _, p := range tt.packets {
				a.AddPacket(p, t0)
			}
			var got hrv.Zone
			for range tt.ticks {
				got = a.Tick(tt.at)
			}
			if got != tt.want {
				t.Errorf("Tick() = %q, want %q", got, tt.want)
			}
			snap := a.Snapshot(t0)
			if diff := cmp.Diff(zoneTimes(map[hrv.Zone]int{tt.want: tt.ticks}), snap.Record.HRZonesTime); diff != "" {
				t.Errorf("zone time mismatch (-want +got):\n%s", diff)
			}
			if snap.Zone != tt.want {
				t.Errorf("Snapshot().Zone = %q, want %q", snap.Zone, tt.want)
			}
		})
	}
}

func TestAggregator_SnapshotIsolated(t *testing.T) {
	t.Parallel()

	t0 := time.Unix(0, 0)
	a := NewAggregator("u")
	a.Start(t0)
	a.AddPacket(sensor.Packet{HeartRate: 140}, t0)
	a.Tick(100)

	snap := a.Snapshot(t0.Add(time.Second))
	snap.Record.HRZonesTime[hrv.ZoneEndurance3] = 99
	*snap.Summary.Current = 0
	snap.Trace[0] = 0

	again := a.Snapshot(t0.Add(time.Second))
	if got := again.Record.HRZonesTime[hrv.ZoneEndurance3]; got != 0 {
		t.Errorf("zone time leaked from snapshot: %d", got)
	}
	if got := *again.Summary.Current; got != 140 {
		t.Errorf("current hr leaked from snapshot: %v", got)
	}
	if got := again.Trace[0]; got != 140 {
		t.Errorf("trace leaked from snapshot: %v", got)
	}
	if again.Elapsed != time.Second {
		t.Errorf("Elapsed = %v, want 1s", again.Elapsed)
	}
}

func TestAggregator_StartResets(t *testing.T) {
	t.Parallel()

	t0 := time.Unix(0, 0)
	a := NewAggregator("u")
	a.Start(t0)
	a.AddPacket(sensor.Packet{HeartRate: 150, RRIntervals: []float64{400, 410}}, t0)
	a.Tick(160)

	t1 := t0.Add(time.Hour)
	a.Start(t1)
	got := a.Stop(t1)

	want := newRecord("u", t1)
	want.RawHRData = []float64{}
	want.RawRRData = []float64{}
	want.Timestamps = []time.Time{}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record after restart mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregator_TickBeforeStart(t *testing.T) {
	t.Parallel()

	a := NewAggregator("u")
	if got := a.Tick(100); got != hrv.ZoneResting {
		t.Errorf("Tick() = %q, want %q", got, hrv.ZoneResting)
	}

	snap := a.Snapshot(time.Time{})
	want := zoneTimes(map[hrv.Zone]int{hrv.ZoneResting: 1})
	if diff := cmp.Diff(want, snap.Record.HRZonesTime); diff != "" {
		t.Errorf("zone times mismatch (-want +got):\n%s", diff)
	}
	if snap.Record.UserID != "u" {
		t.Errorf("UserID = %q, want %q", snap.Record.UserID, "u")
	}
}
