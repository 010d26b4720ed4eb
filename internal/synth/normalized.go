package synth

import (
	"math/rand/v2"

	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
)

// NormalizedRanges are the declared ranges of every NormalizedInput field.
var NormalizedRanges = []FieldRange{
	{Name: "track", Min: 0.3, Max: 1.5, Decimals: 2},
	{Name: "bright_ti5", Min: 270, Max: 360, Decimals: 1},
	{Name: "Solar_rad_J_m2", Min: 0, Max: 30, Decimals: 1},
	{Name: "latitude_x", Min: 8.61, Max: 23.39, Decimals: 4},
	{Name: "fire_risk_score", Min: 0, Max: 1, Decimals: 3},
	{Name: "Precip_sum_30d", Min: 0, Max: 300, Decimals: 1},
	{Name: "GID_1", Min: 1, Max: 63, Decimals: 0},
	{Name: "Wind_max_kmh", Min: 0, Max: 40, Decimals: 1},
	{Name: "daynight_N", Min: 0, Max: 1, Decimals: 0},
	{Name: "longitude_x", Min: 102.14, Max: 109.47, Decimals: 4},
	{Name: "Precip_sum_7d", Min: 0, Max: 100, Decimals: 1},
	{Name: "acq_time", Min: 0, Max: 2359, Decimals: 0},
	{Name: "no_rain_7d", Min: 0, Max: 1, Decimals: 0},
}

// RandomNormalized samples every field of the numeric schema from its
// declared range.
func RandomNormalized(r *rand.Rand) fetcher.NormalizedInput {
	v := make(map[string]float64, len(NormalizedRanges))
	for _, f := range NormalizedRanges {
		v[f.Name] = f.Sample(r)
	}

	return fetcher.NormalizedInput{
		Track:         v["track"],
		BrightTI5:     v["bright_ti5"],
		SolarRadJM2:   v["Solar_rad_J_m2"],
		LatitudeX:     v["latitude_x"],
		FireRiskScore: v["fire_risk_score"],
		PrecipSum30d:  v["Precip_sum_30d"],
		GID1:          v["GID_1"],
		WindMaxKmh:    v["Wind_max_kmh"],
		DaynightN:     v["daynight_N"],
		LongitudeX:    v["longitude_x"],
		PrecipSum7d:   v["Precip_sum_7d"],
		AcqTime:       v["acq_time"],
		NoRain7d:      v["no_rain_7d"],
	}
}
