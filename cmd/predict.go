package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
	"github.com/Zachdehooge/fireguard-dashboard/internal/generator"
	"github.com/Zachdehooge/fireguard-dashboard/internal/history"
	"github.com/Zachdehooge/fireguard-dashboard/internal/risk"
	"github.com/Zachdehooge/fireguard-dashboard/internal/synth"
)

var (
	manual      fetcher.ManualInput
	randomInput bool
	normalized  bool
	seed        uint64
)

var tierColors = map[risk.Tier]*color.Color{
	risk.TierHigh:   color.New(color.FgRed, color.Bold),
	risk.TierMedium: color.New(color.FgYellow, color.Bold),
	risk.TierLow:    color.New(color.FgGreen, color.Bold),
}

// addPredictCmd adds the 'predict' subcommand: one prediction from flags,
// a random scenario or a random normalized vector.
func addPredictCmd(rootCmd *cobra.Command) {
	predictCmd := &cobra.Command{
		Use:   "predict",
		Short: "Run one fire-risk prediction",
		Example: `  fireguard predict --province "Gia Lai" --lat 13.98 --lon 108.0 --tmax 38 --rh 35 --wind 20
  fireguard predict --random
  fireguard predict --normalized --seed 42`,
		RunE: runPredict,
	}

	f := predictCmd.Flags()
	f.StringVar(&manual.Province, "province", "", "Province name")
	f.Float64Var(&manual.Latitude, "lat", 0, "Latitude")
	f.Float64Var(&manual.Longitude, "lon", 0, "Longitude")
	f.Float64Var(&manual.TmaxC, "tmax", 0, "Maximum temperature (°C)")
	f.Float64Var(&manual.RHmaxPct, "rh", 0, "Maximum relative humidity (%)")
	f.Float64Var(&manual.WindMaxKmh, "wind", 0, "Maximum wind speed (km/h)")
	f.Float64Var(&manual.PrecipSumMM, "rain", 0, "Rain today (mm)")
	f.Float64Var(&manual.PrecipSum7d, "rain-7d", 0, "Rain over 7 days (mm)")
	f.Float64Var(&manual.PrecipSum30d, "rain-30d", 0, "Rain over 30 days (mm)")
	f.Float64Var(&manual.SolarRadJM2, "solar", 0, "Solar radiation (J/m²)")
	f.Float64Var(&manual.BrightTI5, "bright-ti5", fetcher.DefaultBrightTI5, "TI5 brightness (K)")
	f.Float64Var(&manual.FRP, "frp", fetcher.DefaultFRP, "Fire radiative power (MW)")
	f.BoolVar(&randomInput, "random", false, "Use a random dangerous or safe scenario")
	f.BoolVar(&normalized, "normalized", false, "Send a random vector of the normalized schema")
	f.Uint64Var(&seed, "seed", 0, "Seed for --random and --normalized (0 uses the clock)")

	predictCmd.MarkFlagsMutuallyExclusive("random", "normalized")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var features fetcher.Features = manual
	switch {
	case normalized:
		features = synth.RandomNormalized(synth.NewRand(seed))
	case randomInput:
		in, scenario := synth.RandomScenario(synth.NewRand(seed))
		features = in
		fmt.Fprintln(out, scenario.Notice())
	case manual.Province == "":
		return fmt.Errorf("--province is required unless --random or --normalized is set")
	}

	res, err := current.client.Predict(ctx, features)
	if err != nil {
		current.logger.Error("prediction failed", "schema", features.Schema(), "error", err)
		fmt.Fprintln(cmd.ErrOrStderr(), generator.PredictFailed(err).Message)
		return err
	}

	printResult(out, res)

	if in, ok := features.(fetcher.ManualInput); ok && current.cfg.HistoryDir != "" {
		if err := recordPrediction(cmd, in, res); err != nil {
			current.logger.Warn("failed to record prediction", "error", err)
		}
	}
	return nil
}

func recordPrediction(cmd *cobra.Command, in fetcher.ManualInput, res *fetcher.PredictResult) error {
	store, err := history.Open(current.cfg.HistoryDir)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(cmd.Context(), in, res)
	return err
}

func printResult(w io.Writer, res *fetcher.PredictResult) {
	view := generator.NewResultView(res, time.Now())
	tier := res.Tier()
	c := tierColors[tier]

	verdict := "✅ AN TOÀN"
	if view.State == risk.StateDanger {
		verdict = "🔥 CÓ NGUY CƠ CHÁY"
	}

	fmt.Fprintln(w, c.Sprint(verdict))
	fmt.Fprintf(w, "Mức độ:    %s\n", c.Sprint(view.RiskLevel))
	fmt.Fprintf(w, "Xác suất:  %s\n", view.Percent)
	fmt.Fprintf(w, "Khuyến nghị: %s\n", view.Recommendation)
	if view.Message != "" {
		fmt.Fprintf(w, "Ghi chú:   %s\n", view.Message)
	}
	fmt.Fprintf(w, "Thời gian: %s\n", view.Timestamp)
}
