package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/guifav/iris-api/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "1.0.0"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "iris-api",
	Short: "Iris classification API server",
	Long: `iris-api serves token-guarded iris species predictions over HTTP,
with an in-process prediction cache and a best-effort prediction ledger.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// Flags override the environment when set explicitly.
		flags := cmd.Flags()
		if flags.Changed("db-url") {
			cfg.DatabaseURL, _ = flags.GetString("db-url")
		}
		if flags.Changed("server-addr") {
			cfg.ServerAddr, _ = flags.GetString("server-addr")
		}
		if flags.Changed("debug") {
			cfg.Debug, _ = flags.GetBool("debug")
		}

		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("db-url", "", "Database connection URL (env: DATABASE_URL)")
	rootCmd.PersistentFlags().String("server-addr", "", "Server bind address (env: SERVER_ADDR)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (env: DEBUG)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
