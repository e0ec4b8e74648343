//go:build !release

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

const (
	sqliteMigrationsDir   = "internal/migrations/sql"
	postgresMigrationsDir = "internal/migrations/postgres/sql"
)

var migrationName = regexp.MustCompile(`^[a-z0-9_]+$`)

func newMigrationCmd() *cobra.Command {
	var postgres bool

	cmd := &cobra.Command{
		Use:   "migration <name>",
		Short: "Create a new migration file",
		Long:  "Creates the next numbered migration for the sqlite store, or the postgres store with --postgres. Run from the repository root.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !migrationName.MatchString(name) {
				return fmt.Errorf("migration name must be snake_case, got %q", name)
			}

			dir := sqliteMigrationsDir
			if postgres {
				dir = postgresMigrationsDir
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("failed to read migrations directory: %w", err)
			}

			filename := filepath.Join(dir, fmt.Sprintf("%06d_%s.sql", nextMigrationNum(entries), name))
			if _, err := os.Stat(filename); err == nil {
				return fmt.Errorf("migration file already exists: %s", filename)
			}

			content := fmt.Sprintf("-- Migration: %s\n\n", name)
			if err := os.WriteFile(filename, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to create migration file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created migration: %s\n", filename)
			return nil
		},
	}

	cmd.Flags().BoolVar(&postgres, "postgres", false, "create a postgres migration")
	return cmd
}

func nextMigrationNum(entries []os.DirEntry) int {
	var last int
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		num, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		last = max(last, num)
	}
	return last + 1
}
