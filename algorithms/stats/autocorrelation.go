package stats

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// AutoCorrelation computes the biased (unnormalized) autocorrelation of a
// signal for lags 0..maxLag:
//
//	r[i] = Σ_{k=0}^{N-1-i} x[k]*x[k+i]
//
// No division by the overlap length is applied.
type AutoCorrelation struct {
	maxLag int
}

// NewAutoCorrelation creates a new auto-correlation calculator
func NewAutoCorrelation(maxLag int) *AutoCorrelation {
	return &AutoCorrelation{maxLag: maxLag}
}

// ComputeInto writes lags 0..maxLag into dst without allocating.
// Lags at or beyond len(signal) have no overlap and are zero.
func (ac *AutoCorrelation) ComputeInto(dst, signal []float64) error {
	if len(dst) != ac.maxLag+1 {
		return fmt.Errorf("destination length (%d) must be maxLag+1 (%d)", len(dst), ac.maxLag+1)
	}

	n := len(signal)
	for lag := range dst {
		if lag >= n {
			dst[lag] = 0
			continue
		}
		dst[lag] = floats.Dot(signal[:n-lag], signal[lag:])
	}

	return nil
}
