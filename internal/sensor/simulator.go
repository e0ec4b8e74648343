package sensor

import (
	"context"
	"math"
	"sync"
	"time"
)

// Simulator produces a synthetic training session: a warm-up ramp, a steady
// block around the target heart rate and a cooldown. Output is deterministic
// for a given configuration so it doubles as a test fixture.
type Simulator struct {
	cfg SimulatorConfig
}

type SimulatorConfig struct {
	RestingHR float64
	TargetHR  float64
	// Duration is the simulated session length; zero streams until ctx ends.
	Duration time.Duration
	// Interval between packets in wall-clock time; zero sends as fast as the
	// consumer reads.
	Interval time.Duration
	// Variability scales the beat-to-beat jitter in milliseconds.
	Variability float64
}

var _ Source = (*Simulator)(nil)

func NewSimulator(cfg SimulatorConfig) *Simulator {
	if cfg.RestingHR <= 0 {
		cfg.RestingHR = 62
	}
	if cfg.TargetHR <= 0 {
		cfg.TargetHR = 150
	}
	if cfg.Variability <= 0 {
		cfg.Variability = 35
	}
	return &Simulator{cfg: cfg}
}

func (s *Simulator) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan Event)

	go func() {
		defer close(ch)
		s.run(ctx, ch)
	}()

	var once sync.Once
	return ch, func() { once.Do(cancel) }, nil
}

func (s *Simulator) run(ctx context.Context, ch chan<- Event) {
	if !send(ctx, ch, StateEvent(StateConnecting)) || !send(ctx, ch, StateEvent(StateStreaming)) {
		return
	}

	var tick <-chan time.Time
	if s.cfg.Interval > 0 {
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	step := s.cfg.Interval
	if step <= 0 {
		step = time.Second
	}

	for i := 0; ; i++ {
		elapsed := time.Duration(i) * step
		if s.cfg.Duration > 0 && elapsed >= s.cfg.Duration {
			send(ctx, ch, StateEvent(StateStopped))
			return
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return
			case <-tick:
			}
		}

		if !send(ctx, ch, PacketEvent(s.Packet(i, elapsed))) {
			return
		}
	}
}

// Packet returns the i-th simulated packet at the given session offset.
func (s *Simulator) Packet(i int, elapsed time.Duration) Packet {
	hr := s.heartRate(elapsed)

	// two beats per packet at rest, more under load, like a real strap
	beats := 1 + int(hr/60)
	rr := make([]float64, 0, beats)
	base := 60000 / hr
	for b := range beats {
		phase := float64(i*beats + b)
		// respiratory sinus arrhythmia shrinks as intensity rises
		damping := s.cfg.RestingHR / hr
		jitter := s.cfg.Variability * damping * (0.7*math.Sin(phase*0.9) + 0.3*(2*fract(math.Sin(phase*12.9898)*43758.5453)-1))
		rr = append(rr, math.Round(base+jitter))
	}

	return Packet{
		HeartRate:   math.Round(hr),
		RRIntervals: rr,
	}
}

func (s *Simulator) heartRate(elapsed time.Duration) float64 {
	if s.cfg.Duration <= 0 {
		return s.cfg.TargetHR
	}

	progress := elapsed.Seconds() / s.cfg.Duration.Seconds()
	span := s.cfg.TargetHR - s.cfg.RestingHR
	switch {
	case progress < 0.2:
		return s.cfg.RestingHR + span*(progress/0.2)
	case progress < 0.8:
		return s.cfg.TargetHR + 4*math.Sin(progress*40)
	default:
		return s.cfg.TargetHR - span*((progress-0.8)/0.2)
	}
}

func fract(x float64) float64 { return x - math.Floor(x) }
