package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matVec(a []float64, n int, x []float64) []float64 {
	out := make([]float64, n)
	for r := range n {
		for c := range n {
			out[r] += a[r*n+c] * x[c]
		}
	}
	return out
}

func TestSolveLUKnownSystem(t *testing.T) {
	// 2x + y = 5, x + 3y = 10 → x = 1, y = 3
	a := []float64{2, 1, 1, 3}
	dst := make([]float64, 2)
	require.NoError(t, SolveLU(a, 2, []float64{5, 10}, dst))
	assert.InDeltaSlice(t, []float64{1, 3}, dst, 1e-12)
}

func TestSolveLURequiresPivoting(t *testing.T) {
	a := []float64{0, 1, 1, 0}
	dst := make([]float64, 2)
	require.NoError(t, SolveLU(a, 2, []float64{2, 7}, dst))
	assert.InDeltaSlice(t, []float64{7, 2}, dst, 1e-12)
}

func TestSolversRejectSingular(t *testing.T) {
	tests := []struct {
		name string
		lags []float64
	}{
		{name: "zero", lags: []float64{0, 0, 0}},
		{name: "rank one", lags: []float64{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.lags)
			dst := []float64{7, 7, 7}
			b := []float64{1, 2, 3}

			err := SolveLU(Toeplitz(tt.lags), n, b, dst)
			assert.ErrorIs(t, err, ErrSingular)
			assert.Equal(t, []float64{7, 7, 7}, dst, "dst must be untouched on failure")

			err = SolveToeplitz(tt.lags, b, dst)
			assert.ErrorIs(t, err, ErrSingular)
			assert.Equal(t, []float64{7, 7, 7}, dst, "dst must be untouched on failure")
		})
	}
}

func TestSolveLUAcceptsIllConditioned(t *testing.T) {
	// Condition number 1e20 is far above mat.ConditionTolerance, yet the
	// matrix is invertible and the solution exact.
	a := []float64{1, 0, 0, 1e-20}
	dst := make([]float64, 2)
	require.NoError(t, SolveLU(a, 2, []float64{2, 3e-20}, dst))
	assert.InDeltaSlice(t, []float64{2, 3}, dst, 1e-12)
}

func TestSolveLUZeroPivotIsSingular(t *testing.T) {
	// Rows are multiples of each other: elimination leaves an exact zero pivot.
	a := []float64{
		1, 2, 3,
		2, 4, 6,
		0, 1, 1,
	}
	dst := []float64{5, 5, 5}
	err := SolveLU(a, 3, []float64{1, 2, 3}, dst)
	assert.ErrorIs(t, err, ErrSingular)
	assert.Equal(t, []float64{5, 5, 5}, dst)
}

func TestSolveLURejectsNaN(t *testing.T) {
	dst := make([]float64, 2)
	err := SolveLU([]float64{1, math.NaN(), 0, 1}, 2, []float64{1, 1}, dst)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestSolveDimensionMismatch(t *testing.T) {
	assert.ErrorIs(t, SolveLU([]float64{1, 2, 3}, 2, []float64{1, 1}, make([]float64, 2)), ErrDimensionMismatch)
	assert.ErrorIs(t, SolveToeplitz([]float64{1, 0.5}, []float64{1}, make([]float64, 2)), ErrDimensionMismatch)
	assert.ErrorIs(t, SolveToeplitz(nil, nil, nil), ErrDimensionMismatch)
}

func TestLevinsonMatchesLU(t *testing.T) {
	// Autocorrelation of a decaying AR process is positive definite.
	for _, n := range []int{1, 2, 3, 6, 12} {
		lags := make([]float64, n)
		b := make([]float64, n)
		for i := range n {
			lags[i] = math.Pow(0.8, float64(i)) * math.Cos(0.4*float64(i))
			b[i] = math.Sin(float64(i) + 0.5)
		}
		lags[0] += 0.1

		lu := make([]float64, n)
		lev := make([]float64, n)
		require.NoError(t, SolveLU(Toeplitz(lags), n, b, lu))
		require.NoError(t, SolveToeplitz(lags, b, lev))

		assert.InDeltaSlice(t, lu, lev, 1e-9, "order %d", n)
		assert.InDeltaSlice(t, b, matVec(Toeplitz(lags), n, lev), 1e-9, "order %d residual", n)
	}
}

func TestLevinsonYuleWalkerOrderTwo(t *testing.T) {
	// r = [1, c, cos 2ω] with c = cos ω gives a(z) = 1 - 2c z^-1 + z^-2.
	omega := math.Pi / 4
	c := math.Cos(omega)
	r := []float64{1, c}
	target := []float64{-c, -math.Cos(2 * omega)}

	dst := make([]float64, 2)
	require.NoError(t, SolveToeplitz(r, target, dst))
	assert.InDeltaSlice(t, []float64{-2 * c, 1}, dst, 1e-12)
}
