package polyroot

import (
	"math"
	"math/cmplx"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortRoots(roots []complex128) {
	sort.Slice(roots, func(i, j int) bool {
		if math.Abs(real(roots[i])-real(roots[j])) > 1e-9 {
			return real(roots[i]) < real(roots[j])
		}
		return imag(roots[i]) < imag(roots[j])
	})
}

func assertRootsClose(t *testing.T, expected, got []complex128, tol float64) {
	t.Helper()
	require.Len(t, got, len(expected))
	exp := append([]complex128(nil), expected...)
	act := append([]complex128(nil), got...)
	sortRoots(exp)
	sortRoots(act)
	for i := range exp {
		assert.Less(t, cmplx.Abs(exp[i]-act[i]), tol, "root %d: expected %v got %v", i, exp[i], act[i])
	}
}

var finders = map[string]Finder{
	"eigen":         Roots,
	"durand-kerner": DurandKerner,
}

func TestFindersClosedForm(t *testing.T) {
	rho := 0.9
	theta := math.Pi / 3
	pole := cmplx.Rect(rho, theta)

	tests := []struct {
		name     string
		coeffs   []float64
		expected []complex128
	}{
		{
			name:     "quadratic real",
			coeffs:   []float64{1, -3, 2},
			expected: []complex128{1, 2},
		},
		{
			name:     "quartic real",
			coeffs:   []float64{1, 0, -5, 0, 4},
			expected: []complex128{-2, -1, 1, 2},
		},
		{
			name:     "conjugate pair",
			coeffs:   []float64{1, -2 * rho * math.Cos(theta), rho * rho},
			expected: []complex128{pole, cmplx.Conj(pole)},
		},
		{
			name:     "cubic with pair",
			coeffs:   []float64{1, 1, 1, 1}, // (z+1)(z²+1)
			expected: []complex128{-1, complex(0, 1), complex(0, -1)},
		},
		{
			name:     "non-monic",
			coeffs:   []float64{2, -6, 4},
			expected: []complex128{1, 2},
		},
		{
			name:     "linear",
			coeffs:   []float64{1, 0.5},
			expected: []complex128{-0.5},
		},
	}

	for finderName, find := range finders {
		for _, tt := range tests {
			t.Run(finderName+"/"+tt.name, func(t *testing.T) {
				roots, err := find(tt.coeffs)
				require.NoError(t, err)
				assertRootsClose(t, tt.expected, roots, 1e-8)
			})
		}
	}
}

func TestFindersRejectDegenerate(t *testing.T) {
	for name, find := range finders {
		t.Run(name, func(t *testing.T) {
			_, err := find([]float64{1})
			assert.ErrorIs(t, err, ErrDegeneratePolynomial)

			_, err = find([]float64{0, 1, 2})
			assert.ErrorIs(t, err, ErrDegeneratePolynomial)
		})
	}
}

func TestDurandKernerOverflowFails(t *testing.T) {
	// The starting circle overflows, so every iterate is NaN.
	_, err := DurandKerner([]float64{1, 0, 0, 0, 1e300})
	assert.ErrorIs(t, err, ErrNoConvergence)
}

func TestRootsConjugateOrdering(t *testing.T) {
	roots, err := Roots([]float64{1, -1, 0.5})
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Greater(t, imag(roots[0]), 0.0)
	assert.InDelta(t, imag(roots[0]), -imag(roots[1]), 1e-12)
}

func TestCompanion(t *testing.T) {
	c, err := Companion([]float64{2, 4, 6, 8})
	require.NoError(t, err)

	r, cols := c.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []float64{-2, -3, -4}, c.RawRowView(0))
	assert.Equal(t, 1.0, c.At(1, 0))
	assert.Equal(t, 1.0, c.At(2, 1))
	assert.Equal(t, 0.0, c.At(2, 2))
}

func TestEval(t *testing.T) {
	// z² + 1 at i is zero, at 2 is 5.
	coeffs := []complex128{1, 0, 1}
	assert.Equal(t, complex(0, 0), Eval(coeffs, complex(0, 1)))
	assert.Equal(t, complex(5, 0), Eval(coeffs, 2))
}
