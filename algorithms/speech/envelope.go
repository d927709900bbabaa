package speech

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/fft"
)

// evaluateEnvelope computes H(z) = 1 / Σ_j coefficients[j]·z^j at every
// unit-circle point and its magnitude.
func (b *AnalysisBlock) evaluateEnvelope() {
	if b.methods.Envelope == EnvelopeFFT {
		b.envelopeFFT()
	} else {
		b.envelopeDirect()
	}

	for i, y := range b.filterOutputs {
		b.outputReal[i] = real(y)
		b.outputImag[i] = imag(y)
	}
	vecmath.Magnitude(b.filterMagnitude, b.outputReal, b.outputImag)
}

func (b *AnalysisBlock) envelopeDirect() {
	for i, z := range b.filterInputs {
		b.filterOutputs[i] = allPoleResponse(EvaluateLPCPolynomial(b.coefficients, z))
	}
}

// envelopeFFT uses the fact that bin k of a 2N-point FFT of the coefficients
// sits at ω = πk/N, the same grid as filterInputs, with e^{-iω} in place of
// e^{iω}. Real coefficients make the two sums complex conjugates.
func (b *AnalysisBlock) envelopeFFT() {
	if len(b.fftInput) != 2*b.frequencyBins {
		// Fewer than model_order+1 FFT points would alias the polynomial.
		b.envelopeDirect()
		return
	}

	clear(b.fftInput)
	copy(b.fftInput, b.coefficients)
	spectrum := fft.FFTReal(b.fftInput)

	for i := range b.filterOutputs {
		b.filterOutputs[i] = allPoleResponse(cmplx.Conj(spectrum[i]))
	}
}

// EvaluateLPCPolynomial returns Σ_j coeffs[j]·z^j.
func EvaluateLPCPolynomial(coeffs []float64, z complex128) complex128 {
	if len(coeffs) == 0 {
		return 0
	}

	sum := complex(coeffs[0], 0)
	power := complex(1, 0)
	for _, c := range coeffs[1:] {
		power *= z
		sum += complex(c, 0) * power
	}
	return sum
}

// allPoleResponse inverts the denominator. A zero denominator maps to +Inf
// on the real axis rather than a NaN-producing division.
func allPoleResponse(denominator complex128) complex128 {
	if denominator == 0 {
		return complex(math.Inf(1), 0)
	}
	return 1 / denominator
}
