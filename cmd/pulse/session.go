package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/garrettladley/pulse/internal/paths"
	xredis "github.com/garrettladley/pulse/internal/redis"
	"github.com/garrettladley/pulse/internal/sensor"
	"github.com/garrettladley/pulse/internal/training"
	"github.com/garrettladley/pulse/internal/xerrors"
	"github.com/garrettladley/pulse/internal/xslog"
)

const (
	sourceSim    = "sim"
	sourceReplay = "replay"
	sourceRedis  = "redis"
	sourceNATS   = "nats"
	sourceKafka  = "kafka"
)

const (
	saveAttempts = 3
	saveBackoff  = 500 * time.Millisecond
)

type sessionFlags struct {
	source   string
	file     string
	speed    float64
	device   string
	user     string
	at       float64
	duration time.Duration
	rpe      int
	noSave   bool
	capture  string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.source, "source", sourceSim, "sensor feed: sim, replay, redis, nats or kafka")
	fl.StringVar(&f.file, "file", "", "capture file for --source replay")
	fl.Float64Var(&f.speed, "speed", 1, "replay speed multiplier, 0 replays without pauses")
	fl.StringVar(&f.device, "device", "", "sensor device id for relayed feeds (default $SENSOR_DEVICE)")
	fl.StringVar(&f.user, "user", "default", "athlete id the session belongs to")
	fl.Float64Var(&f.at, "at", 0, "anaerobic threshold heart rate, overrides the athlete profile")
	fl.DurationVar(&f.duration, "duration", 0, "stop the session after this long, 0 runs until stopped")
	fl.IntVar(&f.rpe, "rpe", 0, "rate of perceived exertion (1-10) stored with the session")
	fl.BoolVar(&f.noSave, "no-save", false, "do not store the finished session")
	fl.StringVar(&f.capture, "capture", "", "also write the sensor feed to this JSON-lines file")
}

func (f *sessionFlags) validate() error {
	switch f.source {
	case sourceSim, sourceRedis, sourceNATS, sourceKafka:
	case sourceReplay:
		if f.file == "" {
			return errors.New("--file is required with --source replay")
		}
	default:
		return fmt.Errorf("unknown --source %q (valid: sim, replay, redis, nats, kafka)", f.source)
	}
	if f.rpe != 0 && (f.rpe < 1 || f.rpe > 10) {
		return fmt.Errorf("--rpe must be between 1 and 10, got %d", f.rpe)
	}
	if f.at < 0 {
		return errors.New("--at must not be negative")
	}
	return nil
}

// openSource builds the sensor feed picked by --source. The returned
// function releases any connection the feed holds.
func (a *app) openSource(ctx context.Context, f *sessionFlags) (sensor.Source, func(), error) {
	device := f.device
	if device == "" {
		device = a.cfg.SensorDevice
	}

	var (
		src     sensor.Source
		release = func() {}
	)
	switch f.source {
	case sourceSim:
		src = sensor.NewSimulator(sensor.SimulatorConfig{
			Duration: f.duration,
			Interval: time.Second,
		})
	case sourceReplay:
		src = sensor.NewReplay(f.file, f.speed)
	case sourceRedis:
		client, err := xredis.New(ctx, xredis.Config{URL: a.cfg.RedisURL, Role: xredis.RoleSensor})
		if err != nil {
			return nil, nil, xerrors.Sensor(xerrors.WithCause(err))
		}
		src = sensor.NewRedisSource(client, device)
		release = func() { _ = client.Close() }
	case sourceNATS:
		conn, err := sensor.Connect(a.cfg.NATSURL)
		if err != nil {
			return nil, nil, xerrors.Sensor(xerrors.WithCause(err))
		}
		src = sensor.NewNATSSource(conn, device)
		release = conn.Close
	case sourceKafka:
		src = sensor.NewKafkaSource(a.cfg.KafkaBrokers, device)
	}

	if f.capture == "" {
		return src, release, nil
	}

	out, err := os.Create(f.capture)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("failed to create capture file: %w", err)
	}
	w := sensor.NewCaptureWriter(out, time.Now())
	src = sensor.Tee(src, func(e sensor.Event) {
		if err := w.Write(e, time.Now()); err != nil {
			a.logger.WarnContext(ctx, "failed to write capture", xslog.Error(err))
		}
	})
	return src, func() {
		release()
		_ = out.Close()
	}, nil
}

// threshold picks the AT for the session: --at, the athlete profile, then
// ANAEROBIC_THRESHOLD_HR.
func (a *app) threshold(ctx context.Context, f *sessionFlags) (float64, error) {
	if f.at > 0 {
		return f.at, nil
	}
	return a.repo.Athletes.Threshold(ctx, f.user, a.cfg.AnaerobicThresholdHR)
}

func (a *app) newController(f *sessionFlags, at float64) *training.Controller {
	return training.NewController(
		training.ControllerConfig{UserID: f.user, AnaerobicThreshold: at},
		training.WithTickInterval(a.cfg.ZoneTickInterval),
		training.WithLogger(a.logger),
	)
}

// sessionContext bounds ctx by --duration when set.
func sessionContext(ctx context.Context, f *sessionFlags) (context.Context, context.CancelFunc) {
	if f.duration > 0 && f.source != sourceSim {
		return context.WithTimeout(ctx, f.duration)
	}
	return context.WithCancel(ctx)
}

// save stores rec unless --no-save is set. The write is not tied to ctx's
// cancellation so an interrupted session is still kept. If every attempt
// fails the record is written to a file in the config directory.
func (a *app) save(ctx context.Context, f *sessionFlags, rec training.Record) (string, error) {
	if f.noSave {
		return "", nil
	}
	if f.rpe > 0 {
		rec = rec.WithRPE(f.rpe)
	}

	ctx = context.WithoutCancel(ctx)
	logger := a.logger.With(xslog.UserID(rec.UserID))

	var err error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		var id string
		id, err = a.repo.Sessions.Save(ctx, &rec)
		if err == nil {
			logger.InfoContext(ctx, "session saved", xslog.RecordID(id))
			return id, nil
		}
		if !xerrors.IsRetryable(err) {
			return "", err
		}
		logger.WarnContext(ctx, "failed to save session", xslog.Error(err), xslog.Count(attempt))
		time.Sleep(time.Duration(attempt) * saveBackoff)
	}

	path, dumpErr := dumpRecord(rec)
	if dumpErr != nil {
		return "", errors.Join(err, dumpErr)
	}
	return "", fmt.Errorf("%w (session written to %s)", err, path)
}

func dumpRecord(rec training.Record) (string, error) {
	dir, err := paths.EnsureDir()
	if err != nil {
		return "", err
	}
	data, err := go_json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	path := filepath.Join(dir, "unsaved-"+rec.Date.Format("20060102-150405")+".json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write session: %w", err)
	}
	return path, nil
}

func printSummary(w io.Writer, rec training.Record, id string) {
	fmt.Fprintf(w, "session %s\n", valueOr(id, "(not saved)"))
	fmt.Fprintf(w, "  duration  %s\n", time.Duration(rec.Duration)*time.Second)
	fmt.Fprintf(w, "  heart     avg %s  max %s  min %s\n", bpm(rec.AvgHR), bpm(rec.MaxHR), bpm(rec.MinHR))
	fmt.Fprintf(w, "  hrv       rmssd %.1f ms  sdnn %.1f ms  pnn50 %.1f%%\n", rec.RMSSD, rec.SDNN, rec.PNN50)
	fmt.Fprintf(w, "  calories  %.1f\n", rec.CaloriesBurned)
}

func bpm(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.0f", *v)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
