package speech

// peakRadius is the neighbourhood checked on each side of a candidate bin.
const peakRadius = 1

// PickPeaks appends to dst[:0] every interior index i whose magnitude is
// greater than or equal to both neighbours, in ascending order. The
// comparison is non-strict: a flat run reports every interior
// bin. NaN magnitudes never qualify. dst is reused when its capacity allows.
func PickPeaks(magnitude []float64, dst []int) []int {
	dst = dst[:0]

	for i := peakRadius; i < len(magnitude)-peakRadius; i++ {
		candidate := magnitude[i]
		isMaximum := true
		for j := i - peakRadius; j <= i+peakRadius; j++ {
			if !(magnitude[j] <= candidate) {
				isMaximum = false
				break
			}
		}
		if isMaximum {
			dst = append(dst, i)
		}
	}

	return dst
}

func (b *AnalysisBlock) extractMaxima() {
	b.formantIndices = PickPeaks(b.filterMagnitude, b.formantIndices)
	b.formantCount = len(b.formantIndices)
}
