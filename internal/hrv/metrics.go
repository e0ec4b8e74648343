package hrv

import "math"

// pnn50Threshold is the successive-difference cutoff in milliseconds.
const pnn50Threshold = 50.0

type Metrics struct {
	RMSSD float64 `json:"rmssd"`
	SDNN  float64 `json:"sdnn"`
	PNN50 float64 `json:"pnn50"`
}

// ComputeMetrics derives RMSSD, SDNN and pNN50 from an ordered RR sequence in
// milliseconds. Non-finite and non-positive intervals are skipped. Fewer than
// two usable intervals yields the zero Metrics.
func ComputeMetrics(rr []float64) Metrics {
	valid := Clean(rr)
	n := len(valid)
	if n < 2 {
		return Metrics{}
	}

	var (
		sumSq  float64
		over50 int
		sum    float64
	)
	for i, v := range valid {
		sum += v
		if i == 0 {
			continue
		}
		d := v - valid[i-1]
		sumSq += d * d
		if math.Abs(d) > pnn50Threshold {
			over50++
		}
	}

	pairs := float64(n - 1)
	mean := sum / float64(n)

	var variance float64
	for _, v := range valid {
		variance += (v - mean) * (v - mean)
	}

	return Metrics{
		RMSSD: math.Sqrt(sumSq / pairs),
		SDNN:  math.Sqrt(variance / pairs),
		PNN50: 100 * float64(over50) / pairs,
	}
}

// Clean returns the finite, positive intervals of rr in their original order.
// rr is returned as-is when nothing needs to be dropped.
func Clean(rr []float64) []float64 {
	for i, v := range rr {
		if isValid(v) {
			continue
		}
		out := make([]float64, i, len(rr))
		copy(out, rr[:i])
		for _, w := range rr[i+1:] {
			if isValid(w) {
				out = append(out, w)
			}
		}
		return out
	}
	return rr
}

func isValid(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
