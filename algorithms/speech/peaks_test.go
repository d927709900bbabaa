package speech

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickPeaks(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name      string
		magnitude []float64
		expected  []int
	}{
		{"separated maxima", []float64{0, 1, 0, 3, 0}, []int{1, 3}},
		{"constant keeps every interior bin", []float64{2, 2, 2, 2, 2}, []int{1, 2, 3}},
		{"plateau", []float64{0, 1, 1, 0}, []int{1, 2}},
		{"edges never qualify", []float64{5, 1, 5}, []int{}},
		{"monotone", []float64{1, 2, 3, 4}, []int{}},
		{"too short", []float64{1, 2}, []int{}},
		{"empty", nil, []int{}},
		{"NaN candidate", []float64{0, nan, 0}, []int{}},
		{"NaN neighbour", []float64{nan, 1, 0, 2, 1}, []int{3}},
		{"infinite peak", []float64{1, math.Inf(1), 1}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickPeaks(tt.magnitude, nil)
			if len(tt.expected) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPickPeaksReusesDst(t *testing.T) {
	dst := make([]int, 0, 8)
	dst = append(dst, 42, 43)

	got := PickPeaks([]float64{0, 1, 0, 1, 0}, dst)
	assert.Equal(t, []int{1, 3}, got)
	assert.Same(t, &dst[0], &got[0])
}

func TestExtractMaximaCount(t *testing.T) {
	b := MustNewAnalysisBlock(16, 2, 6, 8000)
	copy(b.filterMagnitude, []float64{0, 3, 1, 1, 1, 0})

	b.extractMaxima()

	assert.Equal(t, 3, b.FormantCount())
	assert.Equal(t, []int{1, 3, 4}, b.FormantIndices())
}
