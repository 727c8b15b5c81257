package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/quillhq/quill/internal/migrator"
	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long: `Show the current status of all migrations: totals plus a
per-migration list with applied timestamps.`,
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

		m := migrator.NewMigrator(adapter, cfg.MigrationsPath)
		status, err := m.Status(ctx)
		if err != nil {
			return err
		}

		if statusJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(status)
		}

		color.Cyan("Migrations: %d total, %d applied, %d pending",
			status.TotalMigrations, status.AppliedMigrations, status.PendingMigrations)
		fmt.Println()

		for _, item := range status.Migrations {
			if item.Status == "applied" {
				color.Green("  ✅ %s (applied %s)", item.ID, item.AppliedAt.Format("2006-01-02 15:04:05"))
			} else {
				color.Yellow("  ⏳ %s (pending)", item.ID)
			}
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output status as JSON")
	rootCmd.AddCommand(statusCmd)
}
