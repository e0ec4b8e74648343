package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garrettladley/pulse/internal/config"
	"github.com/garrettladley/pulse/internal/db"
	"github.com/garrettladley/pulse/internal/migrations"
	"github.com/garrettladley/pulse/internal/paths"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long:  "Applies migrations for the sqlite or postgres store selected by STORE_BACKEND. Stores are also migrated when opened.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			switch cfg.StoreBackend {
			case config.BackendSQLite:
				if _, err := paths.EnsureDir(); err != nil {
					return err
				}
				sqlDB, err := db.Open(ctx, cfg.SQLitePath)
				if err != nil {
					return err
				}
				defer func() { _ = sqlDB.Close() }()

				status, err := migrations.Status(ctx, sqlDB)
				if err != nil {
					return err
				}
				for _, m := range status {
					mark := "pending"
					if m.Applied {
						mark = "applied"
					}
					fmt.Fprintf(out, "%-8s %s\n", mark, m.Name)
				}

			case config.BackendPostgres:
				// openStore applies postgres migrations and logs each one.
				a, err := newApp(ctx, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				_ = a.Close()

			default:
				fmt.Fprintf(out, "%s store has no migrations\n", cfg.StoreBackend)
				return nil
			}

			fmt.Fprintln(out, "Migrations applied successfully")
			return nil
		},
	}
}
