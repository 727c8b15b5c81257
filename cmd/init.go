package cmd

import (
	"github.com/fatih/color"
	"github.com/quillhq/quill/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new quill project",
	Long: `Create quill.config.json and the migration and backup directories
in the current directory. The default project uses a local SQLite database;
edit database.provider to "postgres" and set DATABASE_URL to use PostgreSQL.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return err
		}

		color.Green("✅ Initialized quill project")
		color.White("   Config:     %s", config.ConfigFileName)
		color.White("   Migrations: db/migrations")
		color.White("   Backups:    db_backup")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
