package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/quillhq/quill/internal/database"
	"github.com/quillhq/quill/internal/types"
)

// migrationsTable is excluded from backups; it is rebuilt by quill itself.
const migrationsTable = "_quill_migrations"

type Manager struct {
	adapter    database.Adapter
	backupPath string
}

func NewManager(adapter database.Adapter, backupPath string) *Manager {
	return &Manager{
		adapter:    adapter,
		backupPath: backupPath,
	}
}

// CreateBackup dumps every user table to a timestamped JSON file and returns
// the file path.
func (m *Manager) CreateBackup(ctx context.Context, comment string) (string, error) {
	applied, err := m.adapter.GetAppliedMigrations(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get applied migrations: %w", err)
	}

	backup := types.BackupData{
		Timestamp: time.Now().Format("2006-01-02_15-04-05"),
		Version:   fmt.Sprintf("%d_migrations", len(applied)),
		Tables:    make(map[string]interface{}),
		Comment:   comment,
	}

	tables, err := m.adapter.GetAllTableNames(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get table names: %w", err)
	}

	for _, table := range tables {
		if table == migrationsTable {
			continue
		}

		data, err := m.adapter.GetTableData(ctx, table)
		if err != nil {
			return "", fmt.Errorf("failed to dump table %s: %w", table, err)
		}
		backup.Tables[table] = data
	}

	return m.writeBackupFile(backup)
}

func (m *Manager) writeBackupFile(backup types.BackupData) (string, error) {
	if err := os.MkdirAll(m.backupPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	filename := fmt.Sprintf("backup_%s.json", backup.Timestamp)
	backupPath := filepath.Join(m.backupPath, filename)

	file, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return backupPath, nil
}

// ListBackups returns existing backup files, newest first.
func (m *Manager) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(m.backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "backup_") && strings.HasSuffix(name, ".json") {
			backups = append(backups, filepath.Join(m.backupPath, name))
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups, nil
}
