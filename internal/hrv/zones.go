package hrv

// Zone is either an anaerobic-threshold relative HR zone or an RMSSD rest zone.
type Zone string

const (
	ZoneResting    Zone = "Resting"
	ZoneWarmup     Zone = "Warmup"
	ZoneEndurance1 Zone = "Endurance 1"
	ZoneEndurance2 Zone = "Endurance 2"
	ZoneEndurance3 Zone = "Endurance 3"
	ZoneIntensive1 Zone = "Intensive 1"
	ZoneIntensive2 Zone = "Intensive 2"
	ZoneCooldown   Zone = "Cooldown"
)

const (
	ZoneRelaxed    Zone = "Relaxed"
	ZoneRest       Zone = "Rest"
	ZoneActiveLow  Zone = "Active Low"
	ZoneActiveHigh Zone = "Active High"
	ZoneTransition Zone = "Transition Zone"
)

// restDispatchRatio is the fraction of AT below which the rest classifier applies.
const restDispatchRatio = 0.65

var hrZones = []Zone{
	ZoneResting,
	ZoneWarmup,
	ZoneCooldown,
	ZoneEndurance1,
	ZoneEndurance2,
	ZoneEndurance3,
	ZoneIntensive1,
	ZoneIntensive2,
}

var restZones = []Zone{
	ZoneTransition,
	ZoneActiveHigh,
	ZoneActiveLow,
	ZoneRest,
	ZoneRelaxed,
}

// Zones lists every zone in display order: rest zones from Transition Zone up
// to Relaxed, then heart rate zones.
func Zones() []Zone {
	all := make([]Zone, 0, len(hrZones)+len(restZones))
	all = append(all, restZones...)
	all = append(all, hrZones...)
	return all
}

func (z Zone) IsRestZone() bool {
	for _, r := range restZones {
		if z == r {
			return true
		}
	}
	return false
}

func (z Zone) String() string { return string(z) }

type hrThreshold struct {
	ratio  float64
	offset float64
	zone   Zone
}

// evaluated top to bottom, first match wins
var hrThresholds = []hrThreshold{
	{ratio: 1.10, zone: ZoneIntensive2},
	{ratio: 1.05, zone: ZoneIntensive1},
	{ratio: 0.95, zone: ZoneEndurance3},
	{ratio: 0.85, zone: ZoneEndurance2},
	{ratio: 0.75, zone: ZoneEndurance1},
	{ratio: 0.70, offset: 5, zone: ZoneCooldown},
	{ratio: 0.70, zone: ZoneWarmup},
}

// ClassifyHRZone maps hr onto the zone table relative to the anaerobic
// threshold at. Boundaries are inclusive. at <= 0 yields ZoneResting.
func ClassifyHRZone(hr, at float64) Zone {
	if at <= 0 {
		return ZoneResting
	}
	for _, t := range hrThresholds {
		// compare as a quotient so that hr == at*ratio lands on the boundary
		// instead of missing it by a rounding error in at*ratio
		if (hr-t.offset)/at >= t.ratio {
			return t.zone
		}
	}
	return ZoneResting
}

type restThreshold struct {
	min  float64
	zone Zone
}

var restThresholds = []restThreshold{
	{min: 70, zone: ZoneRelaxed},
	{min: 50, zone: ZoneRest},
	{min: 25, zone: ZoneActiveLow},
	{min: 10, zone: ZoneActiveHigh},
}

// ClassifyRestZone maps an RMSSD value in milliseconds onto a rest zone.
func ClassifyRestZone(rmssd float64) Zone {
	for _, t := range restThresholds {
		if rmssd >= t.min {
			return t.zone
		}
	}
	return ZoneTransition
}

// DispatchZone picks the classifier for one zone tick. hr is the latest heart
// rate sample, nil when none has arrived yet.
func DispatchZone(hr *float64, at, rmssd float64) Zone {
	if hr == nil || at <= 0 {
		return ZoneResting
	}
	if *hr/at < restDispatchRatio {
		return ClassifyRestZone(rmssd)
	}
	return ClassifyHRZone(*hr, at)
}

// HRZoneFloor returns the lowest heart rate classified as z for the given
// threshold. ok is false for Resting, rest zones and at <= 0.
func HRZoneFloor(z Zone, at float64) (bpm float64, ok bool) {
	if at <= 0 {
		return 0, false
	}
	for _, t := range hrThresholds {
		if t.zone == z {
			return at*t.ratio + t.offset, true
		}
	}
	return 0, false
}

// RestDispatchFloor is the heart rate below which zone ticks follow RMSSD.
func RestDispatchFloor(at float64) float64 {
	return at * restDispatchRatio
}

// HRZonesDescending lists the heart rate zones that have a floor, highest
// first, in the order ClassifyHRZone checks them.
func HRZonesDescending() []Zone {
	out := make([]Zone, len(hrThresholds))
	for i, t := range hrThresholds {
		out[i] = t.zone
	}
	return out
}
