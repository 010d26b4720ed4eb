// Package synth generates plausible feature vectors for demos and manual
// testing when no live observation is at hand.
package synth

import (
	"math"
	"math/rand/v2"
	"time"
)

// FieldRange declares the plausible range of one numeric field.
type FieldRange struct {
	Name     string
	Min      float64
	Max      float64
	Decimals int
	// Truncate drops extra digits instead of rounding them.
	Truncate bool
}

// Sample draws a uniform value in [Min, Max] with at most Decimals
// fractional digits.
func (f FieldRange) Sample(r *rand.Rand) float64 {
	scale := math.Pow(10, float64(f.Decimals))
	v := f.Min + r.Float64()*(f.Max-f.Min)

	if f.Truncate {
		v = math.Floor(v*scale) / scale
	} else {
		v = math.Round(v*scale) / scale
	}

	// Rounding can step past a bound that has more digits than Decimals.
	if v > f.Max {
		v = math.Floor(f.Max*scale) / scale
	}
	if v < f.Min {
		v = math.Ceil(f.Min*scale) / scale
	}
	return v
}

// NewRand returns a generator seeded with seed, or from the clock and the
// runtime's random source when seed is zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
