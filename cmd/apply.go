package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/quillhq/quill/internal/migrator"
	"github.com/quillhq/quill/internal/utils"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply all pending migrations",
	Long: `Apply all migration files that have not been applied yet, each in
its own transaction, oldest first.`,
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

		pending, err := m.Pending(ctx)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			color.Green("✅ No pending migrations")
			return nil
		}

		color.Cyan("📋 Found %d pending migration(s):", len(pending))
		for _, migration := range pending {
			fmt.Printf("  - %s\n", migration.ID)
		}

		force, _ := cmd.Flags().GetBool("force")
		input := &utils.InputUtils{}
		if !input.AskConfirmation("\nApply these migrations?", force) {
			color.Yellow("Migration cancelled")
			return nil
		}

		if err := m.Apply(ctx); err != nil {
			return err
		}

		color.Green("✅ Applied %d migration(s)", len(pending))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
