package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/database"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.0"

	// One adapter provider shared by every command in the process. Commands
	// reach the database only through it, so a single process holds a single
	// live adapter regardless of how the command is wired.
	dbProvider = database.NewProvider()
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Schema migrations for PostgreSQL and SQLite",
	Long: `Quill manages schema migrations and data backups for PostgreSQL
and SQLite databases.

The backend is selected by the "database.provider" value in
quill.config.json; anything other than postgres falls back to a local
SQLite database, so a fresh project works with zero configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("quill version %s\n", Version)
			return
		}

		color.New(color.FgGreen, color.Bold).Println("quill ⚡ schema migrations for PostgreSQL and SQLite")
		fmt.Println()
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./quill.config.json)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("quill.config")
		viper.SetConfigType("json")
	}

	// A missing config file is fine; defaults apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			color.Red("Failed to read config file %s: %v", cfgFile, err)
			os.Exit(1)
		}
	}
}

// loadProjectConfig loads and validates the config and makes sure the project
// directories exist.
func loadProjectConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}
	return cfg, nil
}

func requireInitialized() error {
	if !config.IsInitialized() {
		return fmt.Errorf("quill is not initialized. Run 'quill init' first")
	}
	return nil
}
