package cmd

import (
	"github.com/simonvc/ratedash/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	configErr error

	flagServer   string
	flagDB       string
	flagLogFile  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "ratedash",
	Short: "Currency exchange rate dashboard",
	Long:  "A currency exchange rate API backed by SQLite, with a terminal dashboard, calculator and historical charts.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configErr
	},
	SilenceUsage: true,
}

func init() {
	cfg, configErr = config.Load()
	if cfg == nil {
		cfg = &config.Config{
			Server:   "http://localhost:8000",
			Addr:     ":8000",
			DB:       "ratedash.db",
			LogFile:  "ratedash.log",
			LogLevel: "info",
		}
	}

	rootCmd.PersistentFlags().StringVar(&flagServer, "server", cfg.Server, "Server address")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", cfg.DB, "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", cfg.LogFile, "Log file for the terminal UI")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

func Execute() error {
	return rootCmd.Execute()
}
