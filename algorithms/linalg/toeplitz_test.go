package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToeplitzIndicesOrderFour(t *testing.T) {
	expected := []int{
		0, 1, 2, 3,
		1, 0, 1, 2,
		2, 1, 0, 1,
		3, 2, 1, 0,
	}
	assert.Equal(t, expected, ToeplitzIndices(4))
}

func TestToeplitzIndicesSymmetric(t *testing.T) {
	for _, n := range []int{1, 2, 5, 13} {
		idx := ToeplitzIndices(n)
		require.Len(t, idx, n*n)
		for r := range n {
			for c := range n {
				assert.Equal(t, idx[r*n+c], idx[c*n+r])
			}
			assert.Equal(t, 0, idx[r*n+r])
		}
	}
}

func TestFillToeplitz(t *testing.T) {
	lags := []float64{4, 2, 1}
	dst := make([]float64, 9)
	require.NoError(t, FillToeplitz(dst, ToeplitzIndices(3), lags))
	assert.Equal(t, []float64{
		4, 2, 1,
		2, 4, 2,
		1, 2, 4,
	}, dst)
	assert.Equal(t, dst, Toeplitz(lags))
}

func TestFillToeplitzDimensionErrors(t *testing.T) {
	err := FillToeplitz(make([]float64, 3), ToeplitzIndices(2), []float64{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	err = FillToeplitz(make([]float64, 9), ToeplitzIndices(3), []float64{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
