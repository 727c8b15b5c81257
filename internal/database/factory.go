package database

import (
	"github.com/quillhq/quill/internal/database/postgres"
	"github.com/quillhq/quill/internal/database/sqlite"
)

// NewAdapter selects the adapter implementation for the given provider value.
// Unrecognized or empty values select SQLite.
func NewAdapter(provider string) Adapter {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New()
	case "sqlite", "sqlite3":
		return sqlite.New()
	default:
		return sqlite.New()
	}
}
