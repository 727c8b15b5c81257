package database

import (
	"context"
	"time"

	"github.com/quillhq/quill/internal/database/common"
)

// Adapter is the storage backend contract. Quill supports exactly two
// implementations, PostgreSQL and SQLite, selected by the configured provider.
type Adapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// DialectName identifies the backend ("postgres" or "sqlite").
	DialectName() string

	// Migration tracking
	CreateMigrationsTable(ctx context.Context) error
	GetAppliedMigrations(ctx context.Context) (map[string]*time.Time, error)
	RecordMigration(ctx context.Context, migrationID, name, checksum string) error
	RemoveMigrationRecord(ctx context.Context, migrationID string) error

	// Migration execution
	ExecuteAndRecordMigration(ctx context.Context, migrationID, name, checksum, migrationSQL string) error
	ExecuteMigration(ctx context.Context, migrationSQL string) error

	// Introspection and raw access
	ExecuteQuery(ctx context.Context, query string) (*common.QueryResult, error)
	GetAllTableNames(ctx context.Context) ([]string, error)
	GetTableData(ctx context.Context, tableName string) ([]map[string]interface{}, error)
}
