package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/garrettladley/pulse/internal/repository"
)

func athletesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "athletes",
		Short: "Manage athlete profiles",
	}
	cmd.AddCommand(athletesSetCmd())
	cmd.AddCommand(athletesListCmd())
	return cmd
}

func athletesSetCmd() *cobra.Command {
	var (
		name string
		at   float64
	)

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Create or update an athlete profile",
		Long:  "Stores the athlete's anaerobic threshold heart rate, used to pick training zones during sessions.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			athlete := repository.Athlete{ID: args[0]}
			if existing, err := a.repo.Athletes.Get(ctx, args[0]); err == nil {
				athlete = *existing
			}
			if cmd.Flags().Changed("name") {
				athlete.Name = name
			}
			if cmd.Flags().Changed("at") {
				athlete.AnaerobicThresholdHR = at
			}

			if err := a.repo.Athletes.Put(ctx, &athlete); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (at %.0f bpm)\n", athlete.ID, athlete.AnaerobicThresholdHR)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().Float64Var(&at, "at", 0, "anaerobic threshold heart rate in bpm")
	return cmd
}

func athletesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List athlete profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			athletes, err := a.repo.Athletes.List(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tAT")
			for _, athlete := range athletes {
				fmt.Fprintf(w, "%s\t%s\t%.0f\n", athlete.ID, valueOr(athlete.Name, "-"), athlete.AnaerobicThresholdHR)
			}
			return w.Flush()
		},
	}
}
