package training

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/garrettladley/pulse/internal/sensor"
	"github.com/garrettladley/pulse/internal/session"
	"github.com/garrettladley/pulse/internal/xerrors"
	"github.com/garrettladley/pulse/internal/xslog"
)

const DefaultTickInterval = time.Second

const (
	ReasonSensorStopped = "sensor stopped"
	ReasonSensorError   = "sensor error"
	ReasonStreamClosed  = "stream closed"
	ReasonCanceled      = "canceled"
)

type ControllerConfig struct {
	UserID string
	// AnaerobicThreshold is the athlete's AT heart rate. Zero or less
	// classifies every tick as Resting.
	AnaerobicThreshold float64
}

type Option func(*Controller)

func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTicks drives zone accounting from ticks instead of an internal ticker.
func WithTicks(ticks <-chan time.Time) Option {
	return func(c *Controller) { c.ticks = ticks }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// Controller runs one training session. Packets, state changes and zone
// ticks are handled on the goroutine that calls Run, one at a time.
type Controller struct {
	id       string
	at       float64
	agg      *Aggregator
	interval time.Duration
	ticks    <-chan time.Time
	now      func() time.Time
	logger   *slog.Logger

	mu     sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
	done   bool
	last   *Snapshot
}

func NewController(cfg ControllerConfig, opts ...Option) *Controller {
	c := &Controller{
		id:       session.NewID(),
		at:       cfg.AnaerobicThreshold,
		agg:      NewAggregator(cfg.UserID),
		interval: DefaultTickInterval,
		now:      time.Now,
		logger:   slog.Default(),
		subs:     make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(xslog.SessionID(c.id), xslog.UserID(cfg.UserID))
	return c
}

func (c *Controller) ID() string { return c.id }

// Run streams src until the sensor stops or errors, the stream closes or ctx
// is canceled, and returns the finalized record. Data collected before the
// end is always kept. The only error is a failure to subscribe.
func (c *Controller) Run(ctx context.Context, src sensor.Source) (Record, error) {
	ctx = xslog.WithLogger(ctx, c.logger)
	events, unsubscribe, err := src.Subscribe(ctx)
	if err != nil {
		c.close()
		return Record{}, xerrors.Sensor(xerrors.WithCause(err))
	}
	defer unsubscribe()

	ticks := c.ticks
	if ticks == nil {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	state := sensor.StateConnecting
	c.agg.Start(c.now())
	c.logger.InfoContext(ctx, "session started", slog.Float64("anaerobic_threshold", c.at))
	c.publish(state)

	for {
		select {
		case <-ctx.Done():
			return c.finish(ctx, state, ReasonCanceled), nil
		case e, ok := <-events:
			if !ok {
				return c.finish(ctx, state, ReasonStreamClosed), nil
			}
			if e.Packet != nil {
				c.agg.AddPacket(*e.Packet, c.now())
				c.publish(state)
				continue
			}
			if e.State == "" {
				continue
			}
			if e.State != state {
				c.logger.DebugContext(ctx, "sensor state changed", xslog.SensorState(string(e.State)))
			}
			state = e.State
			switch state {
			case sensor.StateStopped:
				return c.finish(ctx, state, ReasonSensorStopped), nil
			case sensor.StateError:
				reason := ReasonSensorError
				if e.Err != nil {
					c.logger.WarnContext(ctx, "sensor failed", xslog.Error(e.Err))
					reason += ": " + e.Err.Error()
				}
				return c.finish(ctx, state, reason), nil
			}
			c.publish(state)
		case <-ticks:
			zone := c.agg.Tick(c.at)
			c.logger.DebugContext(ctx, "zone tick", xslog.Zone(zone.String()))
			c.publish(state)
		}
	}
}

func (c *Controller) finish(ctx context.Context, state sensor.State, reason string) Record {
	now := c.now()
	rec := c.agg.Stop(now)
	c.logger.InfoContext(ctx, "session stopped",
		slog.String("reason", reason),
		xslog.Duration(time.Duration(rec.Duration)*time.Second),
		xslog.Count(len(rec.RawHRData)),
	)

	snap := c.agg.Snapshot(now)
	snap.Record.Duration = rec.Duration
	snap.Record.CaloriesBurned = rec.CaloriesBurned
	snap.State = state
	snap.Final = true
	snap.Reason = reason
	c.broadcast(snap)
	c.close()
	return rec
}

func (c *Controller) publish(state sensor.State) {
	snap := c.agg.Snapshot(c.now())
	snap.State = state
	c.broadcast(snap)
}

// broadcast hands snap to every subscriber without blocking. A subscriber
// that has not consumed its previous snapshot gets it replaced by snap.
func (c *Controller) broadcast(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = &snap
	for _, ch := range c.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (c *Controller) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	c.done = true
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
}

// Subscribe returns a channel of session snapshots, primed with the latest
// one if the session has started. The channel is closed after the final
// snapshot. The returned function unsubscribes and is safe to call twice.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if c.last != nil {
		ch <- *c.last
	}
	if c.done {
		close(ch)
		return ch, func() {}
	}

	id := c.nextID
	c.nextID++
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				close(sub)
				delete(c.subs, id)
			}
		})
	}
}
