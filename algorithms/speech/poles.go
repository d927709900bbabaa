package speech

import (
	"math"
	"math/cmplx"
)

// rootThreshold rejects roots lying on (or numerically next to) the real or
// imaginary axis. The value is fixed, not derived from the model.
const rootThreshold = 1e-4

// IsResonantRoot reports whether a polynomial root is kept as a pole: both
// parts must be at least rootThreshold in magnitude and, of each conjugate
// pair, only the member with non-negative imaginary part survives.
func IsResonantRoot(root complex128) bool {
	if math.Abs(imag(root)) < rootThreshold || math.Abs(real(root)) < rootThreshold {
		return false
	}
	return imag(root) >= 0
}

// PoleFrequencyBandwidth converts a root to its resonant frequency and
// bandwidth in Hz:
//
//	frequency = fs/(2π) · arg(r)
//	bandwidth = fs/π · |ln(1/|r|)|
func PoleFrequencyBandwidth(root complex128, sampleRate float64) (frequency, bandwidth float64) {
	angle := cmplx.Phase(root)
	magnitude := cmplx.Abs(root)

	frequency = (sampleRate / (2 * math.Pi)) * angle
	bandwidth = (sampleRate / math.Pi) * math.Abs(math.Log(1/magnitude))
	return frequency, bandwidth
}

// extractPoles treats the coefficients as a polynomial with coefficients[0]
// as the leading term and keeps the resonant roots in the root finder's order.
// If root finding fails the pole set is left empty.
func (b *AnalysisBlock) extractPoles() {
	b.poleCount = 0

	roots, err := b.findRoots(b.coefficients)
	if err != nil {
		return
	}

	fs := float64(b.sampleRate)
	for _, root := range roots {
		if !IsResonantRoot(root) || b.poleCount == b.modelOrder {
			continue
		}

		j := b.poleCount
		b.poleRealValues[j] = real(root)
		b.poleImagValues[j] = imag(root)
		b.poleFrequencies[j], b.poleBandwidths[j] = PoleFrequencyBandwidth(root, fs)
		b.poleCount++
	}
}
