package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachdehooge/fireguard-dashboard/internal/config"
	"github.com/Zachdehooge/fireguard-dashboard/internal/generator"
)

var (
	outputFile string
	regenerate bool
)

// addGenerateCmd adds the 'generate' subcommand writing a static dashboard
// page with the map and analytics tabs filled in.
func addGenerateCmd(rootCmd *cobra.Command) {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a static dashboard HTML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days == 0 {
				days = current.cfg.DefaultDays
			}

			if err := generateDashboardHTML(cmd); err != nil {
				return fmt.Errorf("failed to generate dashboard: %w", err)
			}
			if !regenerate {
				return nil
			}

			if interval < config.MinWatchInterval {
				interval = config.MinWatchInterval
			}
			cmd.Println(fmt.Sprintf("Watch mode activated. Updating every %s. Press Ctrl+C to stop.", interval))
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case <-ticker.C:
					if err := generateDashboardHTML(cmd); err != nil {
						cmd.PrintErrln(fmt.Errorf("update failed: %w", err))
					}
				}
			}
		},
	}

	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "dashboard.html", "Output HTML file path")
	generateCmd.Flags().IntVarP(&days, "days", "d", 0, "Hotspot window in days, 1-30 (default from config)")
	generateCmd.Flags().BoolVar(&regenerate, "watch", false, "Continuously regenerate the page")
	generateCmd.Flags().DurationVarP(&interval, "interval", "i", config.DefaultWatchInterval, "Regeneration interval (minimum 30s)")
	rootCmd.AddCommand(generateCmd)
}

func generateDashboardHTML(cmd *cobra.Command) error {
	if verbose {
		cmd.Println("Fetching stats and hotspots...")
	}
	ov, err := fetchOverview(cmd.Context(), current.client, days)
	if err != nil {
		return err
	}

	page := generator.NewPage(generator.TabMap, nil)
	page.Days = days
	page.Layer = &ov.layer
	if err := page.SetAnalytics(ov.analytics); err != nil {
		current.logger.Warn("failed to render charts", "error", err)
	}

	if verbose {
		cmd.Println(fmt.Sprintf("Generating HTML to %s...", outputFile))
	}
	if err := generator.GenerateDashboardHTML(page, outputFile); err != nil {
		return err
	}

	cmd.Println(fmt.Sprintf("Dashboard saved to %s", outputFile))
	return nil
}
