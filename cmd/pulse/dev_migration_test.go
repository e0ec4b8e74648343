//go:build !release

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNextMigrationNum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		want  int
	}{
		{name: "empty", want: 1},
		{name: "one", files: []string{"000001_documents.sql"}, want: 2},
		{name: "gap", files: []string{"000001_documents.sql", "000007_index.sql"}, want: 8},
		{name: "ignores other files", files: []string{"000003_a.sql", "README.md", "notes_x.txt", "draft.sql"}, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for _, f := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, f), nil, 0o600); err != nil {
					t.Fatal(err)
				}
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}

			if got := nextMigrationNum(entries); got != tt.want {
				t.Errorf("nextMigrationNum() = %d, want %d", got, tt.want)
			}
		})
	}
}
