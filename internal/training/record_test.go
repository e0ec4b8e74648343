package training

import (
	"testing"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/pulse/internal/hrv"
)

func validRecord() Record {
	r := newRecord("athlete-1", time.Date(2026, 1, 4, 6, 0, 0, 0, time.UTC))
	r.Duration = 1800
	r.RawHRData = []float64{140}
	r.Timestamps = []time.Time{r.Date}
	return r
}

func TestRecord_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Record)
		want   map[string]string
	}{
		{
			name:   "valid",
			modify: func(*Record) {},
		},
		{
			name:   "missing user",
			modify: func(r *Record) { r.UserID = "" },
			want:   map[string]string{"user_id": "required"},
		},
		{
			name:   "rpe out of range",
			modify: func(r *Record) { *r = r.WithRPE(11) },
			want:   map[string]string{"rpe": "must be between 1 and 10"},
		},
		{
			name:   "rpe in range",
			modify: func(r *Record) { *r = r.WithRPE(7) },
		},
		{
			name:   "negative zone time",
			modify: func(r *Record) { r.HRZonesTime[hrv.ZoneWarmup] = -1 },
			want:   map[string]string{"hr_zones_time": "must not be negative"},
		},
		{
			name:   "timestamps out of step",
			modify: func(r *Record) { r.Timestamps = nil },
			want:   map[string]string{"timestamps": "must have one entry per heart rate sample"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := validRecord()
			tt.modify(&r)
			if diff := cmp.Diff(tt.want, r.Validate()); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecord_JSONFieldNames(t *testing.T) {
	t.Parallel()

	r := validRecord().WithRPE(6)
	data, err := go_json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]any
	if err := go_json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{
		"user_id", "type", "date", "duration", "avg_hr", "max_hr", "min_hr",
		"rmssd", "sdnn", "pnn50", "lf_hf_ratio", "vlf_power", "lf_power", "hf_power",
		"calories_burned", "hr_zones_time", "rpe", "raw_hr_data", "raw_rr_data", "timestamps",
	} {
		if _, ok := fields[key]; !ok {
			t.Errorf("encoded record missing %q", key)
		}
	}
	if fields["avg_hr"] != nil {
		t.Errorf("avg_hr = %v, want null when unavailable", fields["avg_hr"])
	}
}

func TestRecord_Clone(t *testing.T) {
	t.Parallel()

	orig := validRecord().WithRPE(5)
	clone := orig.Clone()
	clone.RawHRData[0] = 0
	clone.HRZonesTime[hrv.ZoneRest] = 42
	*clone.RPE = 1

	if orig.RawHRData[0] != 140 || orig.HRZonesTime[hrv.ZoneRest] != 0 || *orig.RPE != 5 {
		t.Errorf("Clone() shares state with the original: %+v", orig)
	}
}
