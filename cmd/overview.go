package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
	"github.com/Zachdehooge/fireguard-dashboard/internal/generator"
)

// overview is the stats and hotspot layer shown by exported pages.
type overview struct {
	analytics generator.AnalyticsView
	layer     generator.HotspotLayer
}

// fetchOverview loads stats and hotspots concurrently. Either failure
// aborts both.
func fetchOverview(ctx context.Context, client *fetcher.Client, days int) (*overview, error) {
	var (
		stats *fetcher.Stats
		list  *fetcher.HotspotList
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if stats, err = client.Stats(ctx); err != nil {
			return fmt.Errorf("failed to fetch stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if list, err = client.Hotspots(ctx, days); err != nil {
			return fmt.Errorf("failed to fetch hotspots: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	layer, _ := generator.NewHotspotLayer(list, days)
	return &overview{
		analytics: generator.NewAnalyticsView(stats),
		layer:     layer,
	}, nil
}
