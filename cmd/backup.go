package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/quillhq/quill/internal/backup"
	"github.com/spf13/cobra"
)

var backupComment string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Dump all tables to a JSON backup file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireInitialized(); err != nil {
			return err
		}

		cfg, err := loadProjectConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		adapter, err := dbProvider.Adapter(ctx)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbProvider.Reset()

		manager := backup.NewManager(adapter, cfg.BackupPath)
		path, err := manager.CreateBackup(ctx, backupComment)
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}

		color.Green("✅ Backup written to %s", path)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireInitialized(); err != nil {
			return err
		}

		cfg, err := loadProjectConfig()
		if err != nil {
			return err
		}

		manager := backup.NewManager(nil, cfg.BackupPath)
		backups, err := manager.ListBackups()
		if err != nil {
			return err
		}

		if len(backups) == 0 {
			color.Yellow("No backups found in %s", cfg.BackupPath)
			return nil
		}

		for _, path := range backups {
			fmt.Println(path)
		}
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupComment, "comment", "Manual backup", "Comment stored in the backup file")
	backupCmd.AddCommand(backupListCmd)
	rootCmd.AddCommand(backupCmd)
}
