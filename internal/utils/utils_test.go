package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMigrationsFromDir(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"20240101120000_create_users.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY);",
		"20240102120000_add_notes.sql":    "CREATE TABLE notes (id INTEGER PRIMARY KEY);",
		"20240102120000_add_notes" + DownSuffix: "DROP TABLE notes;",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	f := &FileUtils{}
	migrations, err := f.LoadMigrationsFromDir(dir)
	if err != nil {
		t.Fatalf("Failed to load migrations: %v", err)
	}

	if len(migrations) != 2 {
		t.Fatalf("Expected 2 migrations (down files ignored), got %d", len(migrations))
	}

	// Sorted by ID
	if migrations[0].ID != "20240101120000_create_users" {
		t.Errorf("Expected oldest migration first, got %s", migrations[0].ID)
	}

	for _, m := range migrations {
		if m.Checksum == "" {
			t.Errorf("Migration %s has empty checksum", m.ID)
		}
	}
}

func TestGenerateMigrationFilename(t *testing.T) {
	f := &FileUtils{}
	name := f.GenerateMigrationFilename("Add User Table")

	if !strings.HasSuffix(name, "_add_user_table.sql") {
		t.Errorf("Unexpected filename: %s", name)
	}
	if len(name) != len("20060102150405")+len("_add_user_table.sql") {
		t.Errorf("Expected timestamp prefix, got: %s", name)
	}
}

func TestChecksumIsStable(t *testing.T) {
	a := Checksum("CREATE TABLE t (id INTEGER);")
	b := Checksum("CREATE TABLE t (id INTEGER);")
	c := Checksum("CREATE TABLE t (id TEXT);")

	if a != b {
		t.Error("Checksum is not deterministic")
	}
	if a == c {
		t.Error("Different content produced the same checksum")
	}
	if len(a) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(a))
	}
}
