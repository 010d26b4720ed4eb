package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zachdehooge/fireguard-dashboard/internal/config"
	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
	"github.com/Zachdehooge/fireguard-dashboard/internal/log"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath string
	verbose    bool
	apiURL     string
)

// app is the state shared by every subcommand once the root has loaded
// the configuration.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	client *fetcher.Client
}

var current app

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fireguard",
		Short: "Wildfire risk dashboard and CLI",
		Long: `FireGuard talks to a wildfire-risk prediction API. It serves an
interactive dashboard (manual prediction, live hotspot map, analytics) and
offers the same actions from the command line.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default .fireguard or $XDG_CONFIG_HOME/fireguard/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Prediction API base URL (overrides config)")

	addServeCmd(rootCmd)
	addPredictCmd(rootCmd)
	addHotspotsCmd(rootCmd)
	addStatsCmd(rootCmd)
	addReportCmd(rootCmd)
	addGenerateCmd(rootCmd)

	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the
// logger and API client.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogFormat == config.LogFormatJSON)
	slog.SetDefault(logger)

	opts := []fetcher.Option{
		fetcher.WithTimeout(cfg.RequestTimeout),
		fetcher.WithLogger(logger),
		fetcher.WithUserAgent(fmt.Sprintf("fireguard/%s (+%s)", version, "github.com/Zachdehooge/fireguard-dashboard")),
	}
	if cfg.APIKey != "" {
		opts = append(opts, fetcher.WithAPIKey(cfg.APIKey))
	}

	client, err := fetcher.NewClient(cfg.APIBaseURL, opts...)
	if err != nil {
		return err
	}

	current = app{
		cfg:    cfg,
		logger: logger,
		client: client,
	}
	logger.Debug("configuration loaded", "api", cfg.APIBaseURL, "api_key", cfg.APIKey, "timeout", cfg.RequestTimeout)
	return nil
}
