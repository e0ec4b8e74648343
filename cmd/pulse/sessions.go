package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/garrettladley/pulse/internal/hrv"
	"github.com/garrettladley/pulse/internal/repository"
	"github.com/garrettladley/pulse/internal/tui/components/zones"
	"github.com/garrettladley/pulse/internal/xerrors"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Browse stored training sessions",
	}
	cmd.AddCommand(sessionsListCmd())
	cmd.AddCommand(sessionsShowCmd())
	cmd.AddCommand(sessionsDeleteCmd())
	return cmd
}

func sessionsListCmd() *cobra.Command {
	var (
		user   string
		limit  int
		before string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := repository.ListParams{
				UserID: user,
				Cursor: &repository.CursorParams{Limit: limit},
			}
			if before != "" {
				c, err := repository.ParseCursor(before)
				if err != nil {
					return fmt.Errorf("--before must be an RFC 3339 time or a cursor from a previous page: %w", err)
				}
				params.Cursor.Cursor = &c
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			page, err := a.repo.Sessions.List(ctx, params)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSER\tDATE\tDURATION\tAVG HR\tRMSSD\tKCAL")
			for _, rec := range page.Records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f\t%.1f\n",
					rec.ID,
					rec.UserID,
					rec.Date.Local().Format("2006-01-02 15:04"),
					zones.FormatSeconds(rec.Duration),
					bpm(rec.AvgHR),
					rec.RMSSD,
					rec.CaloriesBurned,
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if page.NextCursor != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\nmore: --before %s\n", page.NextCursor.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "only list sessions for this athlete")
	cmd.Flags().IntVar(&limit, "limit", repository.DefaultPageSize, "page size")
	cmd.Flags().StringVar(&before, "before", "", "list sessions before this time (RFC 3339) or cursor")
	return cmd
}

func sessionsShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			rec, err := a.repo.Sessions.Get(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := go_json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode session: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			printSummary(out, *rec, rec.ID)
			fmt.Fprintf(out, "  bands     vlf %.0f  lf %.0f  hf %.0f  lf/hf %s\n",
				rec.VLFPower, rec.LFPower, rec.HFPower, ratio(rec.LFHFRatio))
			if rec.RPE != nil {
				fmt.Fprintf(out, "  rpe       %d\n", *rec.RPE)
			}

			fmt.Fprintln(out, "  zones")
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, z := range hrv.Zones() {
				secs := rec.HRZonesTime[z]
				if secs == 0 {
					continue
				}
				fmt.Fprintf(w, "    %s\t%s\n", z, zones.FormatSeconds(secs))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored record as JSON")
	return cmd
}

func sessionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if _, err := a.repo.Sessions.Get(ctx, args[0]); err != nil {
				if xerrors.IsKind(err, xerrors.KindNotFound) {
					return errors.New("no session with id " + args[0])
				}
				return err
			}
			if err := a.repo.Sessions.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func ratio(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.2f", *v)
}
