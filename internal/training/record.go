package training

import (
	"maps"
	"slices"
	"time"

	"github.com/garrettladley/pulse/internal/hrv"
	"github.com/garrettladley/pulse/internal/validator"
)

const TypeLive = "live"

const (
	minRPE = 1
	maxRPE = 10
)

// Record is the persisted summary of one training session. Duration and the
// values in HRZonesTime are whole seconds.
type Record struct {
	ID             string           `json:"id,omitempty"`
	UserID         string           `json:"user_id"`
	Type           string           `json:"type"`
	Date           time.Time        `json:"date"`
	Duration       int              `json:"duration"`
	AvgHR          *float64         `json:"avg_hr"`
	MaxHR          *float64         `json:"max_hr"`
	MinHR          *float64         `json:"min_hr"`
	RMSSD          float64          `json:"rmssd"`
	SDNN           float64          `json:"sdnn"`
	PNN50          float64          `json:"pnn50"`
	LFHFRatio      *float64         `json:"lf_hf_ratio"`
	VLFPower       float64          `json:"vlf_power"`
	LFPower        float64          `json:"lf_power"`
	HFPower        float64          `json:"hf_power"`
	CaloriesBurned float64          `json:"calories_burned"`
	HRZonesTime    map[hrv.Zone]int `json:"hr_zones_time"`
	RPE            *int             `json:"rpe,omitempty"`
	RawHRData      []float64        `json:"raw_hr_data"`
	RawRRData      []float64        `json:"raw_rr_data"`
	Timestamps     []time.Time      `json:"timestamps"`
}

var _ validator.Validator = (*Record)(nil)

func newRecord(userID string, start time.Time) Record {
	zones := make(map[hrv.Zone]int, len(hrv.Zones()))
	for _, z := range hrv.Zones() {
		zones[z] = 0
	}
	return Record{
		UserID:      userID,
		Type:        TypeLive,
		Date:        start,
		HRZonesTime: zones,
	}
}

func (r Record) Validate() map[string]string {
	var f validator.Fields
	f.Check(r.UserID != "", "user_id", "required")
	f.Check(r.Type != "", "type", "required")
	f.Check(!r.Date.IsZero(), "date", "required")
	f.Check(r.Duration >= 0, "duration", "must not be negative")
	if r.RPE != nil {
		f.Check(*r.RPE >= minRPE && *r.RPE <= maxRPE, "rpe", "must be between 1 and 10")
	}
	for _, secs := range r.HRZonesTime {
		f.Check(secs >= 0, "hr_zones_time", "must not be negative")
	}
	f.Check(len(r.RawHRData) == len(r.Timestamps), "timestamps", "must have one entry per heart rate sample")
	return f.Result()
}

// WithRPE returns a copy of r rated at rpe.
func (r Record) WithRPE(rpe int) Record {
	r.RPE = &rpe
	return r
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.AvgHR = clonePtr(r.AvgHR)
	out.MaxHR = clonePtr(r.MaxHR)
	out.MinHR = clonePtr(r.MinHR)
	out.LFHFRatio = clonePtr(r.LFHFRatio)
	out.RPE = clonePtr(r.RPE)
	out.HRZonesTime = maps.Clone(r.HRZonesTime)
	out.RawHRData = slices.Clone(r.RawHRData)
	out.RawRRData = slices.Clone(r.RawRRData)
	out.Timestamps = slices.Clone(r.Timestamps)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
