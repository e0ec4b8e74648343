package hrv

import "time"

// Bands holds relative VLF/LF/HF power in percent.
//
// The values come from a fixed lookup keyed on RMSSD and are a coarse proxy,
// not a spectral decomposition of the RR series. Consumers rely on the
// lookup's output range, so keep it in place of a real PSD.
type Bands struct {
	VLF       float64  `json:"vlf_power"`
	LF        float64  `json:"lf_power"`
	HF        float64  `json:"hf_power"`
	LFHFRatio *float64 `json:"lf_hf_ratio"`
}

var (
	highVariabilityBands = Bands{VLF: 10, LF: 30, HF: 60}
	lowVariabilityBands  = Bands{VLF: 20, LF: 60, HF: 20}
	midVariabilityBands  = Bands{VLF: 15, LF: 40, HF: 45}
)

func EstimateBands(rmssd float64) Bands {
	var b Bands
	switch {
	case rmssd > 40:
		b = highVariabilityBands
	case rmssd < 20:
		b = lowVariabilityBands
	default:
		b = midVariabilityBands
	}
	if b.HF != 0 {
		ratio := b.LF / b.HF
		b.LFHFRatio = &ratio
	}
	return b
}

// EstimateCalories is a placeholder heuristic with no physiological basis:
// avgHR * seconds / 60 / 10. An unavailable average yields zero.
func EstimateCalories(avgHR *float64, duration time.Duration) float64 {
	if avgHR == nil || duration <= 0 {
		return 0
	}
	seconds := float64(int64(duration / time.Second))
	return *avgHR * seconds / 60 / 10
}
