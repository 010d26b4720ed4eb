package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Zachdehooge/fireguard-dashboard/internal/generator"
)

// addStatsCmd adds the 'stats' subcommand printing the analytics summary.
func addStatsCmd(rootCmd *cobra.Command) {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print fire statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := current.client.Stats(cmd.Context())
			if err != nil {
				current.logger.Error("failed to load stats", "error", err)
				fmt.Fprintln(cmd.ErrOrStderr(), generator.MsgStatsFailed)
				return err
			}
			printAnalytics(cmd.OutOrStdout(), generator.NewAnalyticsView(stats))
			return nil
		},
	}

	rootCmd.AddCommand(statsCmd)
}

func printAnalytics(w io.Writer, v generator.AnalyticsView) {
	peak := v.PeakMonth
	if peak == "" {
		peak = "-"
	}
	fmt.Fprintf(w, "Tổng số vụ cháy: %s\n", v.TotalFires)
	fmt.Fprintf(w, "Số tỉnh:         %d\n", v.ProvinceCount)
	fmt.Fprintf(w, "Tháng cao điểm:  %s\n", peak)

	if len(v.Provinces) > 0 {
		fmt.Fprintln(w, "\nĐiểm nóng theo tỉnh:")
		for _, b := range v.Provinces {
			fmt.Fprintf(w, "  %-20s %s\n", b.Label, generator.FormatCount(b.Count))
		}
	}
	if len(v.Monthly) > 0 {
		fmt.Fprintln(w, "\nTheo tháng:")
		for _, p := range v.Monthly {
			fmt.Fprintf(w, "  %-10s %s\n", p.Label, generator.FormatCount(p.Count))
		}
	}
}
