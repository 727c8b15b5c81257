package migrator

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quillhq/quill/internal/database"
	"github.com/quillhq/quill/internal/types"
	"github.com/quillhq/quill/internal/utils"
)

// Migrator runs migration files against whichever adapter the provider
// selected. It never cares which backend it is talking to.
type Migrator struct {
	adapter        database.Adapter
	migrationsPath string
	files          utils.FileUtils
}

func NewMigrator(adapter database.Adapter, migrationsPath string) *Migrator {
	return &Migrator{
		adapter:        adapter,
		migrationsPath: migrationsPath,
	}
}

const upTemplate = `-- Migration: %s
-- Add your SQL statements here

-- Example:
-- CREATE TABLE example (
--     id INTEGER PRIMARY KEY,
--     name VARCHAR(255) NOT NULL
-- );
`

const downTemplate = `-- Rollback for: %s
-- Add statements that reverse the migration

-- Example:
-- DROP TABLE IF EXISTS example;
`

// Create writes a new empty migration file and its rollback companion,
// returning the path of the up file.
func (m *Migrator) Create(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("migration name cannot be empty")
	}

	if err := os.MkdirAll(m.migrationsPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create migrations directory: %w", err)
	}

	filename := m.files.GenerateMigrationFilename(name)
	upPath := filepath.Join(m.migrationsPath, filename)
	downPath := strings.TrimSuffix(upPath, ".sql") + utils.DownSuffix

	if err := os.WriteFile(upPath, []byte(fmt.Sprintf(upTemplate, name)), 0644); err != nil {
		return "", fmt.Errorf("failed to create migration file: %w", err)
	}
	if err := os.WriteFile(downPath, []byte(fmt.Sprintf(downTemplate, name)), 0644); err != nil {
		return "", fmt.Errorf("failed to create rollback file: %w", err)
	}

	return upPath, nil
}

// Pending returns migrations on disk that have not been applied yet.
func (m *Migrator) Pending(ctx context.Context) ([]types.Migration, error) {
	if err := m.adapter.CreateMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := m.files.LoadMigrationsFromDir(m.migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := m.adapter.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	var pending []types.Migration
	for _, migration := range migrations {
		if _, exists := applied[migration.ID]; !exists {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

// Apply runs all pending migrations in ID order, each inside its own
// transaction with its checksum recorded.
func (m *Migrator) Apply(ctx context.Context) error {
	pending, err := m.Pending(ctx)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		log.Println("No pending migrations")
		return nil
	}

	log.Printf("Found %d pending migrations", len(pending))

	for _, migration := range pending {
		content, err := os.ReadFile(migration.FilePath)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", migration.ID, err)
		}

		log.Printf("Applying migration: %s", migration.ID)
		err = m.adapter.ExecuteAndRecordMigration(ctx, migration.ID, migration.Name, migration.Checksum, string(content))
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.ID, err)
		}
	}

	log.Println("All migrations applied successfully")
	return nil
}

// Rollback reverses the most recently applied migration using its rollback
// companion file.
func (m *Migrator) Rollback(ctx context.Context) error {
	if err := m.adapter.CreateMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.adapter.GetAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}
	if len(applied) == 0 {
		return fmt.Errorf("no applied migrations to roll back")
	}

	ids := make([]string, 0, len(applied))
	for id := range applied {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	last := ids[len(ids)-1]

	downPath := filepath.Join(m.migrationsPath, last+utils.DownSuffix)
	content, err := os.ReadFile(downPath)
	if err != nil {
		return fmt.Errorf("no rollback file for migration %s: %w", last, err)
	}

	log.Printf("Rolling back migration: %s", last)
	if err := m.adapter.ExecuteMigration(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to roll back migration %s: %w", last, err)
	}

	if err := m.adapter.RemoveMigrationRecord(ctx, last); err != nil {
		return fmt.Errorf("failed to remove migration record %s: %w", last, err)
	}

	log.Printf("Rolled back migration: %s", last)
	return nil
}

// Status reports every migration on disk with its applied state.
func (m *Migrator) Status(ctx context.Context) (*types.MigrationStatus, error) {
	if err := m.adapter.CreateMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := m.files.LoadMigrationsFromDir(m.migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := m.adapter.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	status := &types.MigrationStatus{
		TotalMigrations: len(migrations),
	}

	for _, migration := range migrations {
		item := types.MigrationStatusItem{
			ID:     migration.ID,
			Name:   migration.Name,
			Status: "pending",
		}
		if appliedAt, exists := applied[migration.ID]; exists {
			item.Status = "applied"
			item.AppliedAt = appliedAt
			status.AppliedMigrations++
		} else {
			status.PendingMigrations++
		}
		status.Migrations = append(status.Migrations, item)
	}

	return status, nil
}
