package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

const migrationsDir = "sql"

//go:embed sql/*.sql
var migrationsFS embed.FS

type Migration struct {
	Name    string
	Applied bool
}

// Apply runs every embedded migration not yet recorded in migrations_history,
// each inside its own transaction, and returns the names it applied.
func Apply(ctx context.Context, db *sql.DB) ([]string, error) {
	status, err := Status(ctx, db)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, m := range status {
		if m.Applied {
			continue
		}
		if err := applyOne(ctx, db, m.Name); err != nil {
			return applied, err
		}
		applied = append(applied, m.Name)
	}

	return applied, nil
}

// Status lists embedded migrations in order with their applied flag.
func Status(ctx context.Context, db *sql.DB) ([]Migration, error) {
	if err := createHistoryTable(ctx, db); err != nil {
		return nil, err
	}

	names, err := fileNames()
	if err != nil {
		return nil, err
	}

	done, err := appliedNames(ctx, db)
	if err != nil {
		return nil, err
	}

	status := make([]Migration, 0, len(names))
	for _, name := range names {
		_, ok := done[name]
		status = append(status, Migration{Name: name, Applied: ok})
	}
	return status, nil
}

func fileNames() ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func applyOne(ctx context.Context, db *sql.DB, name string) error {
	content, err := fs.ReadFile(migrationsFS, migrationsDir+"/"+name)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", name, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	for stmt := range strings.SplitSeq(string(content), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO migrations_history (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}

	return tx.Commit()
}

func createHistoryTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS migrations_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating migrations history table: %w", err)
	}
	return nil
}

func appliedNames(ctx context.Context, db *sql.DB) (map[string]struct{}, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM migrations_history")
	if err != nil {
		return nil, fmt.Errorf("reading migrations history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	done := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("reading migrations history: %w", err)
		}
		done[name] = struct{}{}
	}
	return done, rows.Err()
}
