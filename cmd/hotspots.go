package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachdehooge/fireguard-dashboard/internal/config"
	"github.com/Zachdehooge/fireguard-dashboard/internal/generator"
)

var (
	days      int
	watchMode bool
	interval  time.Duration
)

// addHotspotsCmd adds the 'hotspots' subcommand listing satellite hotspots.
func addHotspotsCmd(rootCmd *cobra.Command) {
	hotspotsCmd := &cobra.Command{
		Use:   "hotspots",
		Short: "List satellite hotspots of the last days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days == 0 {
				days = current.cfg.DefaultDays
			}

			if err := listHotspots(cmd.Context(), cmd.OutOrStdout()); err != nil {
				return err
			}
			if watchMode {
				return runWatchMode(cmd)
			}
			return nil
		},
	}

	hotspotsCmd.Flags().IntVarP(&days, "days", "d", 0, "Window in days, 1-30 (default from config)")
	hotspotsCmd.Flags().BoolVar(&watchMode, "watch", false, "Keep refreshing the list")
	hotspotsCmd.Flags().DurationVarP(&interval, "interval", "i", config.DefaultWatchInterval, "Refresh interval in watch mode (minimum 30s)")

	rootCmd.AddCommand(hotspotsCmd)
}

func listHotspots(ctx context.Context, w io.Writer) error {
	list, err := current.client.Hotspots(ctx, days)
	if err != nil {
		current.logger.Error("failed to load hotspots", "days", days, "error", err)
		return fmt.Errorf("failed to fetch hotspots: %w", err)
	}

	layer, notice := generator.NewHotspotLayer(list, days)
	fmt.Fprintln(w, notice.Message)
	if len(layer.Markers) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TỈNH\tNGÀY\tGIỜ\tVĨ ĐỘ\tKINH ĐỘ\tFRP (MW)")
	for _, m := range layer.Markers {
		h := m.Hotspot
		date := h.AcqDate
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.4f\t%.4f\t%.2f\n",
			h.Province, date, generator.FormatAcqTime(h.AcqTime), h.Lat, h.Lon, h.FRP)
	}
	return tw.Flush()
}

// runWatchMode refreshes the hotspot list on a ticker until interrupted.
func runWatchMode(cmd *cobra.Command) error {
	if interval < config.MinWatchInterval {
		interval = config.MinWatchInterval
	}

	cmd.Println(fmt.Sprintf("Watch mode activated. Updating every %s. Press Ctrl+C to stop.", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Fprintf(cmd.OutOrStdout(), "\n--- %s ---\n", generator.FormatTimestamp(time.Now()))
			if err := listHotspots(ctx, cmd.OutOrStdout()); err != nil {
				cmd.PrintErrln(fmt.Errorf("update failed: %w", err))
			}
		}
	}
}
