package speech

import (
	"math"
	"math/rand"
)

// sines returns n samples of unit-amplitude sinusoids at the given frequencies.
func sines(n int, sampleRate float64, freqs ...float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		for k, f := range freqs {
			out[i] += math.Sin(2*math.Pi*f*float64(i)/sampleRate + 0.3*float64(k))
		}
	}
	return out
}

// noise returns deterministic uniform noise in [-1, 1).
func noise(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = 2*rng.Float64() - 1
	}
	return out
}

// nearest returns the value in vals closest to target.
func nearest(vals []float64, target float64) float64 {
	best := math.Inf(1)
	bestVal := math.NaN()
	for _, v := range vals {
		if d := math.Abs(v - target); d < best {
			best = d
			bestVal = v
		}
	}
	return bestVal
}
