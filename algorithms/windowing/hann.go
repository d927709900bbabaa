package windowing

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Hann represents a periodic Hann window function.
//
// The denominator is the window size, w[i] = 0.5*(1 - cos(2πi/N)), which
// leaves w[N-1] non-zero.
type Hann struct {
	size         int
	coefficients []float64
}

// NewPeriodicHann creates the Hann window used for LPC analysis blocks.
func NewPeriodicHann(size int) *Hann {
	h := &Hann{size: size}
	h.generate()
	return h
}

func (h *Hann) generate() {
	h.coefficients = make([]float64, h.size)

	denominator := float64(h.size)
	for i := range h.size {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
	}
}

// ApplyInPlace multiplies signal by the window coefficients.
// Applying it twice squares the window; it never assigns.
func (h *Hann) ApplyInPlace(signal []float64) error {
	if len(signal) != h.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), h.size)
	}

	vecmath.MulBlockInPlace(signal, h.coefficients)
	return nil
}

// GetCoefficients returns a copy of the window coefficients
func (h *Hann) GetCoefficients() []float64 {
	coeffs := make([]float64, len(h.coefficients))
	copy(coeffs, h.coefficients)
	return coeffs
}
