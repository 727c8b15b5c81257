package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check database connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireInitialized(); err != nil {
			return err
		}

		if _, err := loadProjectConfig(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		adapter, err := dbProvider.Adapter(ctx)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbProvider.Reset()

		start := time.Now()
		if err := adapter.Ping(ctx); err != nil {
			return fmt.Errorf("ping failed: %w", err)
		}

		color.Green("✅ %s database reachable (%s)", adapter.DialectName(), time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
