package backup

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/quillhq/quill/internal/database/common"
	"github.com/quillhq/quill/internal/types"
)

type fakeAdapter struct {
	tables map[string][]map[string]interface{}
}

func (f *fakeAdapter) Connect(ctx context.Context, url string) error { return nil }
func (f *fakeAdapter) Close() error                                  { return nil }
func (f *fakeAdapter) Ping(ctx context.Context) error                { return nil }
func (f *fakeAdapter) DialectName() string                           { return "fake" }

func (f *fakeAdapter) CreateMigrationsTable(ctx context.Context) error { return nil }

func (f *fakeAdapter) GetAppliedMigrations(ctx context.Context) (map[string]*time.Time, error) {
	now := time.Now()
	return map[string]*time.Time{"20240101000000_first": &now}, nil
}

func (f *fakeAdapter) RecordMigration(ctx context.Context, id, name, checksum string) error {
	return nil
}
func (f *fakeAdapter) RemoveMigrationRecord(ctx context.Context, id string) error { return nil }
func (f *fakeAdapter) ExecuteAndRecordMigration(ctx context.Context, id, name, checksum, sql string) error {
	return nil
}
func (f *fakeAdapter) ExecuteMigration(ctx context.Context, sql string) error { return nil }

func (f *fakeAdapter) ExecuteQuery(ctx context.Context, query string) (*common.QueryResult, error) {
	return &common.QueryResult{}, nil
}

func (f *fakeAdapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	names := []string{migrationsTable}
	for name := range f.tables {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeAdapter) GetTableData(ctx context.Context, tableName string) ([]map[string]interface{}, error) {
	return f.tables[tableName], nil
}

func TestCreateBackup(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeAdapter{
		tables: map[string][]map[string]interface{}{
			"users": {{"id": float64(1), "name": "ada"}},
		},
	}

	m := NewManager(fake, dir)
	path, err := m.CreateBackup(context.Background(), "pre-release")
	if err != nil {
		t.Fatalf("Failed to create backup: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read backup file: %v", err)
	}

	var backup types.BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		t.Fatalf("Backup file is not valid JSON: %v", err)
	}

	if backup.Comment != "pre-release" {
		t.Errorf("Expected comment to round-trip, got %q", backup.Comment)
	}
	if backup.Version != "1_migrations" {
		t.Errorf("Unexpected version: %q", backup.Version)
	}
	if _, ok := backup.Tables["users"]; !ok {
		t.Error("Expected users table in backup")
	}
	if _, ok := backup.Tables[migrationsTable]; ok {
		t.Error("Migrations table must not be backed up")
	}
}

func TestListBackups(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(&fakeAdapter{}, dir)

	// Empty directory is fine
	backups, err := m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("Expected no backups, got %d", len(backups))
	}

	for _, name := range []string{"backup_2024-01-01_00-00-00.json", "backup_2024-02-01_00-00-00.json", "notes.txt"} {
		if err := os.WriteFile(dir+"/"+name, []byte("{}"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	backups, err = m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("Expected 2 backups, got %d", len(backups))
	}
	// Newest first
	if backups[0] < backups[1] {
		t.Errorf("Expected newest backup first, got %v", backups)
	}
}
