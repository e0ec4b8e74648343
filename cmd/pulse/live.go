package main

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/pulse/internal/paths"
	"github.com/garrettladley/pulse/internal/training"
	"github.com/garrettladley/pulse/internal/tui"
	"github.com/garrettladley/pulse/internal/xslog"
)

func liveCmd() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Run a training session with the live monitor",
		Long:  "Opens the full-screen monitor for a training session. Press q to stop; the session is saved when it ends.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}

			logPath, err := paths.Log()
			if err != nil {
				return err
			}
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer func() { _ = logFile.Close() }()

			ctx := cmd.Context()
			a, err := newApp(ctx, logFile)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			rec, err := a.runLive(ctx, &flags)
			if err != nil {
				return err
			}

			id, err := a.save(ctx, &flags, rec)
			printSummary(cmd.OutOrStdout(), rec, id)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) runLive(ctx context.Context, flags *sessionFlags) (training.Record, error) {
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

	model := tui.New(tui.Deps{
		Logger:             a.logger.With(xslog.SessionID(ctrl.ID())),
		Snapshots:          snapshots,
		Stop:               stop,
		UserID:             flags.user,
		Source:             flags.source,
		AnaerobicThreshold: at,
	})
	p := tea.NewProgram(&model)

	var rec training.Record
	g, gctx := errgroup.WithContext(sessionCtx)
	g.Go(func() error {
		var runErr error
		rec, runErr = ctrl.Run(gctx, src)
		return runErr
	})
	g.Go(func() error {
		// the monitor exits on its own once the session ends; closing it
		// early stops the session
		defer stop()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("monitor failed: %w", err)
		}
		return nil
	})

	err = g.Wait()
	return rec, err
}
