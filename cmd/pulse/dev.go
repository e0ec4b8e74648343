//go:build !release

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/garrettladley/pulse/internal/config"
	xredis "github.com/garrettladley/pulse/internal/redis"
	"github.com/garrettladley/pulse/internal/sensor"
	"github.com/garrettladley/pulse/internal/xslog"
)

func addDevCommands(rootCmd *cobra.Command) {
	dev := &cobra.Command{
		Use:   "dev",
		Short: "Development helpers",
	}
	dev.AddCommand(publishCmd())
	dev.AddCommand(newMigrationCmd())
	rootCmd.AddCommand(dev)
}

func publishCmd() *cobra.Command {
	var (
		transport string
		device    string
		duration  time.Duration
		interval  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish simulated sensor packets",
		Long:  "Streams simulator packets to redis, nats, kafka or all three so `pulse live --source redis|nats|kafka` has something to read.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			if device == "" {
				device = cfg.SensorDevice
			}

			var pubs []sensor.Publisher
			if transport == sourceRedis || transport == "all" {
				client, err := xredis.New(ctx, xredis.Config{URL: cfg.RedisURL, Role: xredis.RolePublisher})
				if err != nil {
					return err
				}
				defer func() { _ = client.Close() }()
				pubs = append(pubs, sensor.NewRedisPublisher(client, device))
			}
			if transport == sourceNATS || transport == "all" {
				conn, err := sensor.Connect(cfg.NATSURL)
				if err != nil {
					return err
				}
				defer conn.Close()
				pubs = append(pubs, sensor.NewNATSPublisher(conn, device))
			}
			if transport == sourceKafka || transport == "all" {
				kp := sensor.NewKafkaPublisher(cfg.KafkaBrokers, device)
				defer func() { _ = kp.Close() }()
				pubs = append(pubs, kp)
			}
			if len(pubs) == 0 {
				return fmt.Errorf("unknown --transport %q (valid: redis, nats, kafka, all)", transport)
			}
			if interval <= 0 {
				return errors.New("--interval must be positive")
			}

			// each packet is one simulated second; the limiter paces them in wall time
			sim := sensor.NewSimulator(sensor.SimulatorConfig{Duration: duration})
			limiter := rate.NewLimiter(rate.Every(interval), 1)
			events, unsubscribe, err := sim.Subscribe(ctx)
			if err != nil {
				return err
			}
			defer unsubscribe()

			logger := xslog.NewLogger(os.Stderr, cfg.Level()).With(xslog.Source(transport), slog.String("device", device))
			logger.InfoContext(ctx, "publishing simulated packets")

			var sent int
			for e := range events {
				if e.Packet != nil {
					if err := limiter.Wait(ctx); err != nil {
						break
					}
				}
				if err := publishAll(ctx, pubs, e); err != nil {
					return err
				}
				sent++
			}
			logger.InfoContext(ctx, "publisher stopped", xslog.Count(sent))
			return nil
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "all", "relay to publish on: redis, nats, kafka or all")
	cmd.Flags().StringVar(&device, "device", "", "sensor device id (default $SENSOR_DEVICE)")
	cmd.Flags().DurationVar(&duration, "duration", 10*time.Minute, "simulated session length, 0 streams until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "wall-clock time between packets, below 1s speeds the session up")
	return cmd
}

func publishAll(ctx context.Context, pubs []sensor.Publisher, e sensor.Event) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range pubs {
		g.Go(func() error {
			return p.Publish(gctx, e)
		})
	}
	return g.Wait()
}
