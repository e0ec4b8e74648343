package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/pulse/internal/hrv"
	"github.com/garrettladley/pulse/internal/training"
	"github.com/garrettladley/pulse/internal/xslog"
)

func recordCmd() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Run a training session without the monitor",
		Long:  "Streams a training session headlessly, logging zone changes to stderr, and prints the finished record as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, os.Stderr)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			rec, err := a.runHeadless(ctx, &flags)
			if err != nil {
				return err
			}

			id, saveErr := a.save(ctx, &flags, rec)
			if id != "" {
				rec.ID = id
			}

			data, err := go_json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return saveErr
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) runHeadless(ctx context.Context, flags *sessionFlags) (training.Record, error) {
	at, err := a.threshold(ctx, flags)
	if err != nil {
		return training.Record{}, err
	}

	src, release, err := a.openSource(ctx, flags)
	if err != nil {
		return training.Record{}, err
	}
	defer release()

	ctrl := a.newController(flags, at)
	snapshots, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()

	sessionCtx, stop := sessionContext(ctx, flags)
	defer stop()

	logger := a.logger.With(xslog.SessionID(ctrl.ID()))

	var rec training.Record
	g, gctx := errgroup.WithContext(sessionCtx)
	g.Go(func() error {
		var runErr error
		rec, runErr = ctrl.Run(gctx, src)
		return runErr
	})
	g.Go(func() error {
		var current hrv.Zone
		for snap := range snapshots {
			if snap.Zone != "" && snap.Zone != current {
				current = snap.Zone
				attrs := []any{xslog.Zone(current.String()), xslog.Duration(snap.Elapsed)}
				if snap.Summary.Current != nil {
					attrs = append(attrs, xslog.HeartRate(*snap.Summary.Current))
				}
				logger.InfoContext(ctx, "zone changed", attrs...)
			}
			if snap.Final {
				logger.InfoContext(ctx, "session ended", slog.String("reason", snap.Reason))
			}
		}
		return nil
	})

	err = g.Wait()
	return rec, err
}
