// Package linalg builds and solves the symmetric Toeplitz systems that arise
// from autocorrelation-method linear prediction.
package linalg

import "fmt"

// ToeplitzIndices returns the n×n row-major table mapping each matrix cell to
// the lag |row-col| it holds. It is computed once per analysis configuration.
func ToeplitzIndices(n int) []int {
	indices := make([]int, n*n)
	for r := range n {
		for c := range n {
			lag := r - c
			if lag < 0 {
				lag = -lag
			}
			indices[r*n+c] = lag
		}
	}
	return indices
}

// FillToeplitz writes dst[k] = lags[indices[k]] for every cell.
func FillToeplitz(dst []float64, indices []int, lags []float64) error {
	if len(dst) != len(indices) {
		return fmt.Errorf("toeplitz has %d cells, index table has %d: %w", len(dst), len(indices), ErrDimensionMismatch)
	}

	for k, lag := range indices {
		if lag >= len(lags) {
			return fmt.Errorf("lag %d outside input of length %d: %w", lag, len(lags), ErrDimensionMismatch)
		}
		dst[k] = lags[lag]
	}

	return nil
}

// Toeplitz allocates the n×n symmetric Toeplitz matrix of lags in row-major order.
func Toeplitz(lags []float64) []float64 {
	n := len(lags)
	dst := make([]float64, n*n)
	// The index table is always consistent with dst, so the fill cannot fail.
	_ = FillToeplitz(dst, ToeplitzIndices(n), lags)
	return dst
}
