package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/quillhq/quill/internal/migrator"
	"github.com/quillhq/quill/internal/utils"
	"github.com/spf13/cobra"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last applied migration",
	Long: `Reverse the most recently applied migration using its .down.sql
companion file and remove its record from the migrations table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireInitialized(); err != nil {
			return err
		}

		cfg, err := loadProjectConfig()
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		input := &utils.InputUtils{}
		if !input.AskConfirmation("Roll back the last applied migration?", force) {
			color.Yellow("Rollback cancelled")
			return nil
		}

		ctx := context.Background()
		adapter, err := dbProvider.Adapter(ctx)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbProvider.Reset()

		m := migrator.NewMigrator(adapter, cfg.MigrationsPath)
		if err := m.Rollback(ctx); err != nil {
			return err
		}

		color.Green("✅ Rollback complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downCmd)
}
