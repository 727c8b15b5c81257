package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rawFile string

var rawCmd = &cobra.Command{
	Use:   "raw [sql]",
	Short: "Run a raw SQL query against the configured database",
	Long: `Execute a SQL query and print the result rows. The query can be
passed as an argument or read from a file with --file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireInitialized(); err != nil {
			return err
		}

		if _, err := loadProjectConfig(); err != nil {
			return err
		}

		var query string
		switch {
		case rawFile != "":
			content, err := os.ReadFile(rawFile)
			if err != nil {
				return fmt.Errorf("failed to read query file: %w", err)
			}
			query = string(content)
		case len(args) > 0:
			query = strings.Join(args, " ")
		default:
			return fmt.Errorf("provide a query argument or --file")
		}

		ctx := context.Background()
		adapter, err := dbProvider.Adapter(ctx)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbProvider.Reset()

		result, err := adapter.ExecuteQuery(ctx, query)
		if err != nil {
			return err
		}

		if len(result.Rows) == 0 {
			color.Yellow("No rows returned")
			return nil
		}

		color.Cyan(strings.Join(result.Columns, " | "))
		for _, row := range result.Rows {
			values := make([]string, len(result.Columns))
			for i, col := range result.Columns {
				values[i] = fmt.Sprintf("%v", row[col])
			}
			fmt.Println(strings.Join(values, " | "))
		}

		color.Green("%d row(s)", len(result.Rows))
		return nil
	},
}

func init() {
	rawCmd.Flags().StringVar(&rawFile, "file", "", "Read the query from a file")
	rootCmd.AddCommand(rawCmd)
}
