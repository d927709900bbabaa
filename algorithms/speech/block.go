package speech

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/RyanBlaney/sonido-formants/algorithms/filters"
	"github.com/RyanBlaney/sonido-formants/algorithms/linalg"
	"github.com/RyanBlaney/sonido-formants/algorithms/polyroot"
	"github.com/RyanBlaney/sonido-formants/algorithms/stats"
	"github.com/RyanBlaney/sonido-formants/algorithms/windowing"
)

// AnalysisBlock owns every buffer used by one LPC formant analysis
// configuration. It is allocated once and mutated in place by Run; each
// audio stream needs its own block since a block is not safe for
// concurrent use.
//
// Results are read back through accessors that return copies. Downstream
// results (envelope, formants, poles) only describe the latest signal when
// Solved reports true; a failed solve leaves them at their previous values.
type AnalysisBlock struct {
	blockSize     int
	modelOrder    int
	frequencyBins int
	sampleRate    uint32
	methods       Methods

	solved bool

	signal      []float64
	correlation []float64 // lags 0..modelOrder
	input       []float64 // correlation[0:modelOrder]
	target      []float64 // -correlation[1:modelOrder+1]

	toeplitzIndices []int
	toeplitz        []float64 // modelOrder×modelOrder, row-major
	coefficients    []float64 // coefficients[0] is always 1
	solution        []float64

	filterInputs      []complex128 // e^{iω}, ω in [0, π)
	filterFrequencies []float64
	filterOutputs     []complex128
	filterMagnitude   []float64
	outputReal        []float64
	outputImag        []float64
	fftInput          []float64

	formantIndices []int
	formantCount   int

	poleRealValues  []float64
	poleImagValues  []float64
	poleFrequencies []float64
	poleBandwidths  []float64
	poleCount       int

	window      *windowing.Hann
	preEmphasis *filters.PreEmphasis
	autocorr    *stats.AutoCorrelation
	solve       solverFunc
	findRoots   polyroot.Finder
}

// NewAnalysisBlock allocates a block with the default numeric methods.
func NewAnalysisBlock(blockSize, modelOrder, frequencyBins int, sampleRate uint32) (*AnalysisBlock, error) {
	return NewAnalysisBlockWithMethods(blockSize, modelOrder, frequencyBins, sampleRate, DefaultMethods())
}

// MustNewAnalysisBlock is like NewAnalysisBlock but panics on an invalid configuration.
func MustNewAnalysisBlock(blockSize, modelOrder, frequencyBins int, sampleRate uint32) *AnalysisBlock {
	b, err := NewAnalysisBlock(blockSize, modelOrder, frequencyBins, sampleRate)
	if err != nil {
		panic(err)
	}
	return b
}

// NewAnalysisBlockWithMethods allocates a block using the given solver, root
// finder and envelope evaluator. Empty method fields take their defaults.
func NewAnalysisBlockWithMethods(blockSize, modelOrder, frequencyBins int, sampleRate uint32, methods Methods) (*AnalysisBlock, error) {
	switch {
	case modelOrder < 1:
		return nil, fmt.Errorf("model order %d must be at least 1: %w", modelOrder, ErrInvalidConfig)
	case frequencyBins < 1:
		return nil, fmt.Errorf("frequency bins %d must be at least 1: %w", frequencyBins, ErrInvalidConfig)
	case blockSize <= modelOrder:
		return nil, fmt.Errorf("block size %d must exceed model order %d: %w", blockSize, modelOrder, ErrInvalidConfig)
	case sampleRate == 0:
		return nil, fmt.Errorf("sample rate must be positive: %w", ErrInvalidConfig)
	}

	methods = methods.withDefaults()
	solve, findRoots, err := methods.resolve()
	if err != nil {
		return nil, err
	}

	p := modelOrder + 1
	interior := max(frequencyBins-2, 0)

	b := &AnalysisBlock{
		blockSize:     blockSize,
		modelOrder:    modelOrder,
		frequencyBins: frequencyBins,
		sampleRate:    sampleRate,
		methods:       methods,

		signal:      make([]float64, blockSize),
		correlation: make([]float64, p),
		input:       make([]float64, modelOrder),
		target:      make([]float64, modelOrder),

		toeplitzIndices: linalg.ToeplitzIndices(modelOrder),
		toeplitz:        make([]float64, modelOrder*modelOrder),
		coefficients:    make([]float64, p),
		solution:        make([]float64, modelOrder),

		filterInputs:      make([]complex128, frequencyBins),
		filterFrequencies: make([]float64, frequencyBins),
		filterOutputs:     make([]complex128, frequencyBins),
		filterMagnitude:   make([]float64, frequencyBins),
		outputReal:        make([]float64, frequencyBins),
		outputImag:        make([]float64, frequencyBins),

		formantIndices: make([]int, 0, interior),

		poleRealValues:  make([]float64, modelOrder),
		poleImagValues:  make([]float64, modelOrder),
		poleFrequencies: make([]float64, modelOrder),
		poleBandwidths:  make([]float64, modelOrder),

		window:      windowing.NewPeriodicHann(blockSize),
		preEmphasis: filters.NewPreEmphasis(),
		autocorr:    stats.NewAutoCorrelation(modelOrder),
		solve:       solve,
		findRoots:   findRoots,
	}
	b.coefficients[0] = 1.0

	if methods.Envelope == EnvelopeFFT {
		b.fftInput = make([]float64, max(2*frequencyBins, p))
	}

	fs := float64(sampleRate)
	n := float64(frequencyBins)
	for i := range frequencyBins {
		omega := (math.Pi / n) * float64(i)
		b.filterInputs[i] = cmplx.Rect(1, omega)
		b.filterFrequencies[i] = omega * fs / (2 * math.Pi)
	}

	return b, nil
}

// Reset zeroes every per-run buffer and clears the solved state. The
// precomputed index table and frequency grid are kept.
func (b *AnalysisBlock) Reset() {
	clear(b.signal)
	clear(b.correlation)
	clear(b.input)
	clear(b.target)
	clear(b.toeplitz)
	clear(b.coefficients)
	b.coefficients[0] = 1.0
	clear(b.filterOutputs)
	clear(b.filterMagnitude)
	b.formantIndices = b.formantIndices[:0]
	b.formantCount = 0
	clear(b.poleRealValues)
	clear(b.poleImagValues)
	clear(b.poleFrequencies)
	clear(b.poleBandwidths)
	b.poleCount = 0
	b.solved = false
}

// SetSignal copies exactly BlockSize raw samples into the working buffer.
func (b *AnalysisBlock) SetSignal(samples []float64) error {
	if len(samples) != b.blockSize {
		return fmt.Errorf("got %d samples, block holds %d: %w", len(samples), b.blockSize, ErrInputLength)
	}
	copy(b.signal, samples)
	return nil
}

// SetSample writes one raw sample into the working buffer.
func (b *AnalysisBlock) SetSample(i int, v float64) error {
	if i < 0 || i >= b.blockSize {
		return fmt.Errorf("index %d outside [0, %d): %w", i, b.blockSize, ErrIndexOutOfRange)
	}
	b.signal[i] = v
	return nil
}

// Configuration accessors.
func (b *AnalysisBlock) BlockSize() int     { return b.blockSize }
func (b *AnalysisBlock) ModelOrder() int    { return b.modelOrder }
func (b *AnalysisBlock) FrequencyBins() int { return b.frequencyBins }
func (b *AnalysisBlock) SampleRate() uint32 { return b.sampleRate }
func (b *AnalysisBlock) Methods() Methods   { return b.methods }

// Solved reports whether the most recent run solved the normal equations.
func (b *AnalysisBlock) Solved() bool { return b.solved }

// FormantCount is the number of envelope maxima found by the latest successful run.
func (b *AnalysisBlock) FormantCount() int { return b.formantCount }

// PoleCount is the number of resonant poles retained by the latest successful run.
func (b *AnalysisBlock) PoleCount() int { return b.poleCount }

// Signal returns the working buffer: raw samples before Run, windowed and
// pre-emphasized samples after.
func (b *AnalysisBlock) Signal() []float64 { return cloneFloats(b.signal) }

// Stage buffers, copied.
func (b *AnalysisBlock) Correlation() []float64     { return cloneFloats(b.correlation) }
func (b *AnalysisBlock) Input() []float64           { return cloneFloats(b.input) }
func (b *AnalysisBlock) Target() []float64          { return cloneFloats(b.target) }
func (b *AnalysisBlock) Toeplitz() []float64        { return cloneFloats(b.toeplitz) }
func (b *AnalysisBlock) Coefficients() []float64    { return cloneFloats(b.coefficients) }
func (b *AnalysisBlock) FilterMagnitude() []float64 { return cloneFloats(b.filterMagnitude) }

// FilterFrequencies returns the Hz value of each envelope bin.
func (b *AnalysisBlock) FilterFrequencies() []float64 { return cloneFloats(b.filterFrequencies) }

// ToeplitzIndices returns the lag held by each Toeplitz cell.
func (b *AnalysisBlock) ToeplitzIndices() []int {
	out := make([]int, len(b.toeplitzIndices))
	copy(out, b.toeplitzIndices)
	return out
}

// FilterInputs returns the unit-circle evaluation points.
func (b *AnalysisBlock) FilterInputs() []complex128 { return cloneComplex(b.filterInputs) }

// FilterOutputs returns the complex all-pole response at each bin.
func (b *AnalysisBlock) FilterOutputs() []complex128 { return cloneComplex(b.filterOutputs) }

// FormantIndices returns the envelope bins picked as maxima, ascending.
func (b *AnalysisBlock) FormantIndices() []int {
	out := make([]int, b.formantCount)
	copy(out, b.formantIndices[:b.formantCount])
	return out
}

// PoleRealValues returns the real parts of the retained poles.
func (b *AnalysisBlock) PoleRealValues() []float64 {
	return cloneFloats(b.poleRealValues[:b.poleCount])
}

// PoleImagValues returns the imaginary parts of the retained poles.
func (b *AnalysisBlock) PoleImagValues() []float64 {
	return cloneFloats(b.poleImagValues[:b.poleCount])
}

// PoleFrequencies returns the resonant frequency of each retained pole in Hz.
func (b *AnalysisBlock) PoleFrequencies() []float64 {
	return cloneFloats(b.poleFrequencies[:b.poleCount])
}

// PoleBandwidths returns the bandwidth of each retained pole in Hz.
func (b *AnalysisBlock) PoleBandwidths() []float64 {
	return cloneFloats(b.poleBandwidths[:b.poleCount])
}

func cloneFloats(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

func cloneComplex(src []complex128) []complex128 {
	out := make([]complex128, len(src))
	copy(out, src)
	return out
}
