package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trade-journal-go/internal/cli"
	"trade-journal-go/internal/client"
	"trade-journal-go/internal/config"
	"trade-journal-go/internal/logger"
)

var (
	configDir string
	serverURL string

	api *client.Client
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "Record and review manual trades",
	Long: `Journal is a command-line client for the trade journal server.

It records closed trades, shows the filtered trade table with summary
statistics and an equity curve, and exports the journal as CSV.

Examples:
  journal add --date 2024-01-15 --direction long --symbol AAPL \
      --entry 100 --stop 95 --target 110 --exit 108 --qty 10
  journal list --result win --start 2024-01-01
  journal stats
  journal export -o trades.csv`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Requests are cancelled on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./configs", "directory containing config.yml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "journal server URL (overrides client.base_url)")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if serverURL != "" {
		cfg.Client.BaseURL = serverURL
	}

	log, err = logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		return fmt.Errorf("could not initialize logger: %w", err)
	}

	api = client.New(cfg.Client, log)
	return nil
}

func printWarning(cmd *cobra.Command, warning string) {
	if warning != "" {
		fmt.Fprint(cmd.ErrOrStderr(), cli.RenderWarning(warning))
	}
}
