package filters

// PreEmphasis is the first-order high-pass difference filter applied ahead
// of LPC analysis:
//
//	y[0] = x[0]
//	y[n] = A*x[n] + B*x[n-1]
//
// with A = 1.0 and B = -0.68. The coefficients are fixed; formant analysis
// does not expose them as configuration.
//
// References:
//   - L.R. Rabiner, R.W. Schafer, "Digital Processing of Speech Signals",
//     Prentice-Hall, 1978, Chapter 4
type PreEmphasis struct{}

const (
	// PreEmphasisA is the weight of the current sample.
	PreEmphasisA = 1.0
	// PreEmphasisB is the weight of the previous (unfiltered) sample.
	PreEmphasisB = -0.68
)

// NewPreEmphasis creates a pre-emphasis filter with the fixed formant-analysis coefficients.
func NewPreEmphasis() *PreEmphasis {
	return &PreEmphasis{}
}

// ApplyInPlace filters a whole block left to right. Each output uses the
// original value of the previous sample, not its filtered replacement.
// The first sample passes through untouched.
func (pe *PreEmphasis) ApplyInPlace(signal []float64) {
	if len(signal) == 0 {
		return
	}

	prev := signal[0]
	for i := 1; i < len(signal); i++ {
		current := signal[i]
		signal[i] = PreEmphasisA*current + PreEmphasisB*prev
		prev = current
	}
}
