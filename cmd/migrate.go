package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/quillhq/quill/internal/migrator"
	"github.com/spf13/cobra"
)

// migrateCmd creates migration files; it never touches the database, so it
// builds a Migrator without an adapter.
var migrateCmd = &cobra.Command{
	Use:   "migrate [migration_name]",
	Short: "Create a new migration",
	Long: `Create a new migration file and its rollback companion in the
migrations directory. If no name is provided, you will be prompted for one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireInitialized(); err != nil {
			return err
		}

		cfg, err := loadProjectConfig()
		if err != nil {
			return err
		}

		var name string
		if len(args) > 0 {
			name = strings.Join(args, " ")
		} else {
			fmt.Print("Enter migration name: ")
			reader := bufio.NewReader(os.Stdin)
			name, err = reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read migration name: %w", err)
			}
			name = strings.TrimSpace(name)
		}

		m := migrator.NewMigrator(nil, cfg.MigrationsPath)
		path, err := m.Create(name)
		if err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}

		color.Green("✨ Created migration: %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
