package training

import (
	"maps"
	"math"
	"time"

	"github.com/garrettladley/pulse/internal/hrv"
	"github.com/garrettladley/pulse/internal/sensor"
)

// traceLen is how many recent heart rate samples a Snapshot carries.
const traceLen = 180

// Aggregator folds sensor packets and zone ticks into a session Record.
// It is owned by a single goroutine and is not safe for concurrent use.
type Aggregator struct {
	userID  string
	buf     Buffer
	rec     Record
	summary Summary
	metrics hrv.Metrics
	bands   hrv.Bands
	zone    hrv.Zone
	started time.Time
}

// NewAggregator returns an aggregator with an empty record, so Tick and
// Snapshot are safe before Start.
func NewAggregator(userID string) *Aggregator {
	return &Aggregator{userID: userID, rec: newRecord(userID, time.Time{})}
}

// Start discards any previous session state and begins a new record at now.
func (a *Aggregator) Start(now time.Time) {
	a.buf.Reset()
	a.rec = newRecord(a.userID, now)
	a.summary = Summary{}
	a.metrics = hrv.Metrics{}
	a.bands = hrv.Bands{}
	a.zone = ""
	a.started = now
}

// AddPacket records one sensor packet received at now. A heart rate that is
// not a finite positive number is dropped; its RR batch is still kept.
func (a *Aggregator) AddPacket(p sensor.Packet, now time.Time) {
	if p.HeartRate > 0 && !math.IsInf(p.HeartRate, 0) && !math.IsNaN(p.HeartRate) {
		a.buf.AddHeartRate(p.HeartRate, now)
		a.summary = a.buf.Summary()
		a.rec.AvgHR = a.summary.Avg
		a.rec.MaxHR = a.summary.Max
		a.rec.MinHR = a.summary.Min
	}

	if len(p.RRIntervals) == 0 {
		return
	}
	a.buf.AddRR(p.RRIntervals)
	a.metrics = hrv.ComputeMetrics(a.buf.RR())
	a.bands = hrv.EstimateBands(a.metrics.RMSSD)

	a.rec.RMSSD = a.metrics.RMSSD
	a.rec.SDNN = a.metrics.SDNN
	a.rec.PNN50 = a.metrics.PNN50
	a.rec.VLFPower = a.bands.VLF
	a.rec.LFPower = a.bands.LF
	a.rec.HFPower = a.bands.HF
	a.rec.LFHFRatio = a.bands.LFHFRatio
}

// Tick classifies the current second against the anaerobic threshold at and
// credits one second to the resulting zone.
func (a *Aggregator) Tick(at float64) hrv.Zone {
	a.zone = hrv.DispatchZone(a.summary.Current, at, a.metrics.RMSSD)
	a.rec.HRZonesTime[a.zone]++
	return a.zone
}

// Snapshot is a read-only view of a running session.
type Snapshot struct {
	Record  Record        `json:"record"`
	Summary Summary       `json:"summary"`
	Zone    hrv.Zone      `json:"zone,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
	Samples int           `json:"samples"`
	Trace   []float64     `json:"trace,omitempty"`

	State  sensor.State `json:"state,omitempty"`
	Final  bool         `json:"final,omitempty"`
	Reason string       `json:"reason,omitempty"`
}

// Snapshot copies the running state. Raw sample arrays are only attached by
// Stop; Trace carries the most recent heart rate samples instead.
func (a *Aggregator) Snapshot(now time.Time) Snapshot {
	rec := a.rec
	rec.HRZonesTime = maps.Clone(a.rec.HRZonesTime)
	rec.AvgHR = clonePtr(a.rec.AvgHR)
	rec.MaxHR = clonePtr(a.rec.MaxHR)
	rec.MinHR = clonePtr(a.rec.MinHR)
	rec.LFHFRatio = clonePtr(a.rec.LFHFRatio)
	rec.RawHRData, rec.RawRRData, rec.Timestamps = nil, nil, nil

	return Snapshot{
		Record: rec,
		Summary: Summary{
			Avg:     clonePtr(a.summary.Avg),
			Max:     clonePtr(a.summary.Max),
			Min:     clonePtr(a.summary.Min),
			Current: clonePtr(a.summary.Current),
		},
		Zone:    a.zone,
		Elapsed: now.Sub(a.started),
		Samples: a.buf.Len(),
		Trace:   a.buf.Tail(traceLen),
	}
}

// Stop finalizes the record at now: duration in whole elapsed seconds,
// estimated calories and copies of the raw buffers.
func (a *Aggregator) Stop(now time.Time) Record {
	elapsed := max(now.Sub(a.started), 0)
	a.rec.Duration = int(elapsed / time.Second)
	a.rec.CaloriesBurned = hrv.EstimateCalories(a.rec.AvgHR, elapsed)

	rec := a.rec.Clone()
	rec.RawHRData = cloneOrEmpty(a.buf.HeartRates())
	rec.RawRRData = cloneOrEmpty(a.buf.RR())
	rec.Timestamps = cloneOrEmpty(a.buf.Timestamps())
	return rec
}

func cloneOrEmpty[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
