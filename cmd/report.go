package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachdehooge/fireguard-dashboard/internal/generator"
)

var reportFile string

// addReportCmd adds the 'report' subcommand writing the Markdown analytics
// report.
func addReportCmd(rootCmd *cobra.Command) {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Write a Markdown analytics report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days == 0 {
				days = current.cfg.DefaultDays
			}

			if verbose {
				cmd.Println("Fetching stats and hotspots...")
			}
			ov, err := fetchOverview(cmd.Context(), current.client, days)
			if err != nil {
				return err
			}

			err = generator.WriteReportFile(generator.ReportData{
				Analytics:   ov.analytics,
				Layer:       &ov.layer,
				APIBaseURL:  current.client.BaseURL(),
				GeneratedAt: time.Now(),
			}, reportFile)
			if err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			cmd.Println(fmt.Sprintf("Report saved to %s", reportFile))
			return nil
		},
	}

	reportCmd.Flags().StringVarP(&reportFile, "output", "o", "fire-report.md", "Output Markdown file path")
	reportCmd.Flags().IntVarP(&days, "days", "d", 0, "Hotspot window in days, 1-30 (default from config)")
	rootCmd.AddCommand(reportCmd)
}
