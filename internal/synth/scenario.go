package synth

import (
	"math/rand/v2"

	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
)

// Scenario names the weather regime a random manual input was drawn from.
type Scenario string

const (
	ScenarioDangerous Scenario = "dangerous"
	ScenarioSafe      Scenario = "safe"
)

// Notice returns the message shown after the form has been filled.
func (s Scenario) Notice() string {
	if s == ScenarioDangerous {
		return "Đã tạo dữ liệu kịch bản NGUY HIỂM"
	}
	return "Đã tạo dữ liệu kịch bản AN TOÀN"
}

// Provinces offered by the demo generator.
var Provinces = []string{
	"Gia Lai",
	"Kon Tum",
	"Đắk Lắk",
	"Lâm Đồng",
	"Nghệ An",
	"Hà Tĩnh",
}

var (
	latitudeRange  = FieldRange{Name: "latitude", Min: 13, Max: 15, Decimals: 4}
	longitudeRange = FieldRange{Name: "longitude", Min: 107, Max: 109, Decimals: 4}
)

// weatherRanges holds one range per weather field of ManualInput.
type weatherRanges struct {
	tmax, rh, wind, precip, precip7d, precip30d, solar, bright, frp FieldRange
}

var dangerousRanges = weatherRanges{
	tmax:      FieldRange{Name: "Tmax_C", Min: 33, Max: 38, Decimals: 1},
	rh:        FieldRange{Name: "RHmax_pct", Min: 40, Max: 55, Truncate: true},
	wind:      FieldRange{Name: "Wind_max_kmh", Min: 10, Max: 30, Decimals: 1},
	precip:    FieldRange{Name: "Precip_sum_mm", Min: 0, Max: 0},
	precip7d:  FieldRange{Name: "Precip_sum_7d", Min: 0, Max: 5, Decimals: 1},
	precip30d: FieldRange{Name: "Precip_sum_30d", Min: 0, Max: 10, Decimals: 1},
	solar:     FieldRange{Name: "Solar_rad_J_m2", Min: 20, Max: 30, Decimals: 1},
	bright:    FieldRange{Name: "bright_ti5", Min: 330, Max: 350, Decimals: 1},
	frp:       FieldRange{Name: "frp", Min: 10, Max: 30, Decimals: 1},
}

var safeRanges = weatherRanges{
	tmax:      FieldRange{Name: "Tmax_C", Min: 20, Max: 28, Decimals: 1},
	rh:        FieldRange{Name: "RHmax_pct", Min: 80, Max: 100, Truncate: true},
	wind:      FieldRange{Name: "Wind_max_kmh", Min: 5, Max: 15, Decimals: 1},
	precip:    FieldRange{Name: "Precip_sum_mm", Min: 5, Max: 25, Decimals: 1},
	precip7d:  FieldRange{Name: "Precip_sum_7d", Min: 30, Max: 80, Decimals: 1},
	precip30d: FieldRange{Name: "Precip_sum_30d", Min: 100, Max: 200, Decimals: 1},
	solar:     FieldRange{Name: "Solar_rad_J_m2", Min: 5, Max: 15, Decimals: 1},
	bright:    FieldRange{Name: "bright_ti5", Min: 280, Max: 300, Decimals: 1},
	frp:       FieldRange{Name: "frp", Min: 0, Max: 2, Decimals: 1},
}

// ScenarioRanges returns the declared weather ranges of a scenario.
func ScenarioRanges(s Scenario) []FieldRange {
	w := safeRanges
	if s == ScenarioDangerous {
		w = dangerousRanges
	}
	return []FieldRange{w.tmax, w.rh, w.wind, w.precip, w.precip7d, w.precip30d, w.solar, w.bright, w.frp}
}

// RandomScenario flips a coin between the dangerous and safe regimes and
// fills a manual input from it.
func RandomScenario(r *rand.Rand) (fetcher.ManualInput, Scenario) {
	scenario := ScenarioSafe
	if r.Float64() > 0.5 {
		scenario = ScenarioDangerous
	}
	return ScenarioInput(r, scenario), scenario
}

// ScenarioInput fills a manual input from the given regime.
func ScenarioInput(r *rand.Rand, s Scenario) fetcher.ManualInput {
	w := safeRanges
	if s == ScenarioDangerous {
		w = dangerousRanges
	}

	return fetcher.ManualInput{
		Province:     Provinces[r.IntN(len(Provinces))],
		Latitude:     latitudeRange.Sample(r),
		Longitude:    longitudeRange.Sample(r),
		TmaxC:        w.tmax.Sample(r),
		RHmaxPct:     w.rh.Sample(r),
		WindMaxKmh:   w.wind.Sample(r),
		PrecipSumMM:  w.precip.Sample(r),
		PrecipSum7d:  w.precip7d.Sample(r),
		PrecipSum30d: w.precip30d.Sample(r),
		SolarRadJM2:  w.solar.Sample(r),
		BrightTI5:    w.bright.Sample(r),
		FRP:          w.frp.Sample(r),
	}
}
