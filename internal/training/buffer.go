package training

import (
	"slices"
	"time"
)

// Buffer holds the raw samples of one session in arrival order. Heart rate
// samples are stamped on arrival; RR intervals are appended batch by batch.
type Buffer struct {
	hr         []float64
	timestamps []time.Time
	rr         []float64
}

func (b *Buffer) AddHeartRate(bpm float64, at time.Time) {
	b.hr = append(b.hr, bpm)
	b.timestamps = append(b.timestamps, at)
}

func (b *Buffer) AddRR(batch []float64) {
	b.rr = append(b.rr, batch...)
}

// HeartRates returns the buffered samples. The slice is shared with b.
func (b *Buffer) HeartRates() []float64 { return b.hr }

// RR returns the buffered intervals. The slice is shared with b.
func (b *Buffer) RR() []float64 { return b.rr }

func (b *Buffer) Timestamps() []time.Time { return b.timestamps }

func (b *Buffer) Len() int { return len(b.hr) }

// Tail copies the last n heart rate samples.
func (b *Buffer) Tail(n int) []float64 {
	if n <= 0 {
		return nil
	}
	start := max(len(b.hr)-n, 0)
	return slices.Clone(b.hr[start:])
}

func (b *Buffer) Reset() {
	b.hr = nil
	b.timestamps = nil
	b.rr = nil
}

// Summary describes the heart rate buffer. A nil field means no sample has
// been recorded yet, which is distinct from a reading of zero.
type Summary struct {
	Avg     *float64 `json:"avg_hr"`
	Max     *float64 `json:"max_hr"`
	Min     *float64 `json:"min_hr"`
	Current *float64 `json:"current_hr"`
}

func (b *Buffer) Summary() Summary {
	if len(b.hr) == 0 {
		return Summary{}
	}
	var (
		sum = 0.0
		hi  = b.hr[0]
		lo  = b.hr[0]
	)
	for _, v := range b.hr {
		sum += v
		hi = max(hi, v)
		lo = min(lo, v)
	}
	avg := sum / float64(len(b.hr))
	cur := b.hr[len(b.hr)-1]
	return Summary{Avg: &avg, Max: &hi, Min: &lo, Current: &cur}
}
