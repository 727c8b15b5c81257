package utils

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/quillhq/quill/internal/types"
)

// DownSuffix marks companion rollback files next to a migration.
const DownSuffix = ".down.sql"

type FileUtils struct{}

// LoadMigrationsFromDir loads migration files from a directory, ignoring
// rollback companions. Results are sorted by ID so timestamped filenames
// apply in creation order.
func (f *FileUtils) LoadMigrationsFromDir(migrationsDir string) ([]types.Migration, error) {
	var migrations []types.Migration

	err := filepath.WalkDir(migrationsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".sql") {
			return err
		}
		if strings.HasSuffix(d.Name(), DownSuffix) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", path, err)
		}

		migrationID := strings.TrimSuffix(d.Name(), ".sql")
		migrations = append(migrations, types.Migration{
			ID:       migrationID,
			Name:     migrationID,
			FilePath: path,
			Checksum: Checksum(string(content)),
		})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk migrations directory: %w", err)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].ID < migrations[j].ID
	})

	return migrations, nil
}

// GenerateMigrationFilename creates a timestamped migration filename.
func (f *FileUtils) GenerateMigrationFilename(name string) string {
	timestamp := time.Now().Format("20060102150405")
	cleanName := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	return fmt.Sprintf("%s_%s.sql", timestamp, cleanName)
}

// Checksum returns the hex-encoded SHA-256 of a migration's contents.
func Checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

type InputUtils struct{}

// AskConfirmation asks user for yes/no confirmation.
func (i *InputUtils) AskConfirmation(message string, force bool) bool {
	if force {
		return true
	}
	fmt.Printf("%s (y/N): ", message)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
