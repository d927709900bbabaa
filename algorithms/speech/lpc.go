package speech

import "github.com/RyanBlaney/sonido-formants/algorithms/linalg"

// Run executes the full analysis pipeline over the current signal buffer:
// Hann window, pre-emphasis, autocorrelation, normal equations, Toeplitz
// fill and solve. Only when the solve succeeds does it go on to evaluate the
// spectral envelope, pick envelope maxima and extract poles. It reports
// whether the solve succeeded and never panics on singular input.
func Run(b *AnalysisBlock) bool {
	return b.Run()
}

// Run is the method form of the package-level Run.
func (b *AnalysisBlock) Run() bool {
	b.applyWindow()
	b.applyPreEmphasis()
	b.autocorrelate()
	b.buildNormalEquations()
	b.buildToeplitz()

	if !b.solveCoefficients() {
		b.solved = false
		return false
	}
	b.solved = true

	b.evaluateEnvelope()
	b.extractMaxima()
	b.extractPoles()

	return true
}

// Buffer lengths are fixed at construction, so the length checks inside the
// stage helpers below cannot fail.

func (b *AnalysisBlock) applyWindow() {
	_ = b.window.ApplyInPlace(b.signal)
}

func (b *AnalysisBlock) applyPreEmphasis() {
	b.preEmphasis.ApplyInPlace(b.signal)
}

func (b *AnalysisBlock) autocorrelate() {
	_ = b.autocorr.ComputeInto(b.correlation, b.signal)
}

// buildNormalEquations sets up the Yule-Walker system Toeplitz(input)·a = target.
func (b *AnalysisBlock) buildNormalEquations() {
	for i := range b.modelOrder {
		b.input[i] = b.correlation[i]
		b.target[i] = -b.correlation[i+1]
	}
}

func (b *AnalysisBlock) buildToeplitz() {
	_ = linalg.FillToeplitz(b.toeplitz, b.toeplitzIndices, b.input)
}

// solveCoefficients writes coefficients[1:] only when the solver succeeds.
func (b *AnalysisBlock) solveCoefficients() bool {
	if err := b.solve(b, b.solution); err != nil {
		return false
	}
	copy(b.coefficients[1:], b.solution)
	return true
}
