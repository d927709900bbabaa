package speech

import (
	"fmt"
	"sort"

	"github.com/go-audio/audio"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-formants/config"
	"github.com/RyanBlaney/sonido-formants/logging"
)

// FormantAnalyzer wraps an AnalysisBlock behind a slice-in, records-out API.
// Like the block it owns, it must not be shared between goroutines.
type FormantAnalyzer struct {
	cfg    config.AnalysisConfig
	block  *AnalysisBlock
	logger logging.Logger
}

// Formant is an envelope maximum.
type Formant struct {
	TimeStep  int     `json:"time_step"`
	BinIndex  int     `json:"bin_index"`
	Frequency float64 `json:"frequency"` // Hz
	Amplitude float64 `json:"amplitude"` // envelope magnitude at the bin
}

// Pole is a resonant root of the LPC polynomial.
type Pole struct {
	TimeStep  int     `json:"time_step"`
	Real      float64 `json:"real"`
	Imag      float64 `json:"imag"`
	Frequency float64 `json:"frequency"` // Hz
	Bandwidth float64 `json:"bandwidth"` // Hz
}

// AnalysisResult is the outcome of one analyzed block.
type AnalysisResult struct {
	ValidInput bool      `json:"valid_input"`
	Success    bool      `json:"success"`
	Formants   []Formant `json:"formants"` // ascending bin order
	Poles      []Pole    `json:"poles"`    // ascending frequency
}

// ResultSummary condenses a result for display and logging.
type ResultSummary struct {
	FormantCount      int     `json:"formant_count"`
	PoleCount         int     `json:"pole_count"`
	MeanPoleBandwidth float64 `json:"mean_pole_bandwidth"`
}

// NewFormantAnalyzer validates cfg and allocates the analysis block.
func NewFormantAnalyzer(cfg config.AnalysisConfig) (*FormantAnalyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	methods := Methods{
		Solver:   SolverMethod(cfg.Solver),
		Roots:    RootMethod(cfg.RootFinder),
		Envelope: EnvelopeMethod(cfg.Envelope),
	}

	block, err := NewAnalysisBlockWithMethods(cfg.BlockSize(), cfg.ModelOrder(), cfg.FrequencyBins, cfg.SampleRate, methods)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis block: %w", err)
	}

	logger := logging.WithFields(logging.Fields{
		"component":   "formant_analyzer",
		"sample_rate": cfg.SampleRate,
		"model_order": block.ModelOrder(),
	})

	logger.Debug("Formant analyzer created", logging.Fields{
		"block_size":     block.BlockSize(),
		"frequency_bins": block.FrequencyBins(),
		"solver":         block.Methods().Solver,
		"root_finder":    block.Methods().Roots,
		"envelope":       block.Methods().Envelope,
	})

	return &FormantAnalyzer{
		cfg:    cfg,
		block:  block,
		logger: logger,
	}, nil
}

// Analyze runs one block of exactly BlockLength samples. A wrong-length
// input yields a result with ValidInput false together with an
// ErrInputLength error. A singular system is not an error: the result has
// Success false and no formants or poles.
func (f *FormantAnalyzer) Analyze(samples []float64, timeStep int) (*AnalysisResult, error) {
	if err := f.block.SetSignal(samples); err != nil {
		f.logger.Warn("Rejected analysis input", logging.Fields{
			"expected": f.block.BlockSize(),
			"got":      len(samples),
		})
		return &AnalysisResult{ValidInput: false}, err
	}

	if !f.block.Run() {
		f.logger.Debug("LPC solve failed", logging.Fields{"time_step": timeStep})
		return &AnalysisResult{
			ValidInput: true,
			Success:    false,
			Formants:   []Formant{},
			Poles:      []Pole{},
		}, nil
	}

	return &AnalysisResult{
		ValidInput: true,
		Success:    true,
		Formants:   f.formants(timeStep),
		Poles:      f.poles(timeStep),
	}, nil
}

// AnalyzeBuffer analyzes a mono PCM buffer recorded at the configured sample
// rate. Integer buffers with a known source bit depth are scaled to [-1, 1).
func (f *FormantAnalyzer) AnalyzeBuffer(buf audio.Buffer, timeStep int) (*AnalysisResult, error) {
	if buf == nil {
		return nil, fmt.Errorf("nil PCM buffer: %w", ErrUnsupportedFormat)
	}

	if format := buf.PCMFormat(); format != nil {
		if format.NumChannels > 1 {
			return nil, fmt.Errorf("%d channels, analysis needs mono: %w", format.NumChannels, ErrUnsupportedFormat)
		}
		if format.SampleRate > 0 && uint32(format.SampleRate) != f.cfg.SampleRate {
			return nil, fmt.Errorf("buffer sample rate %d Hz, analyzer expects %d Hz: %w",
				format.SampleRate, f.cfg.SampleRate, ErrUnsupportedFormat)
		}
	}

	return f.Analyze(pcmToFloat(buf), timeStep)
}

// maxScaledBitDepth is the widest integer PCM scaled to [-1, 1); wider or
// unknown depths go through AsFloatBuffer unscaled.
const maxScaledBitDepth = 32

func pcmToFloat(buf audio.Buffer) []float64 {
	if ib, ok := buf.(*audio.IntBuffer); ok && ib.SourceBitDepth >= 1 && ib.SourceBitDepth <= maxScaledBitDepth {
		scale := 1.0 / float64(int64(1)<<(ib.SourceBitDepth-1))
		out := make([]float64, len(ib.Data))
		for i, v := range ib.Data {
			out[i] = float64(v) * scale
		}
		return out
	}
	return buf.AsFloatBuffer().Data
}

func (f *FormantAnalyzer) formants(timeStep int) []Formant {
	b := f.block
	formants := make([]Formant, b.formantCount)
	for i, idx := range b.formantIndices[:b.formantCount] {
		formants[i] = Formant{
			TimeStep:  timeStep,
			BinIndex:  idx,
			Frequency: b.filterFrequencies[idx],
			Amplitude: b.filterMagnitude[idx],
		}
	}
	return formants
}

func (f *FormantAnalyzer) poles(timeStep int) []Pole {
	b := f.block
	poles := make([]Pole, b.poleCount)
	for i := range poles {
		poles[i] = Pole{
			TimeStep:  timeStep,
			Real:      b.poleRealValues[i],
			Imag:      b.poleImagValues[i],
			Frequency: b.poleFrequencies[i],
			Bandwidth: b.poleBandwidths[i],
		}
	}

	sort.SliceStable(poles, func(i, j int) bool {
		return poles[i].Frequency < poles[j].Frequency
	})

	return poles
}

// Summary reports counts and the mean pole bandwidth (0 without poles).
func (r *AnalysisResult) Summary() ResultSummary {
	s := ResultSummary{
		FormantCount: len(r.Formants),
		PoleCount:    len(r.Poles),
	}
	if len(r.Poles) > 0 {
		bandwidths := make([]float64, len(r.Poles))
		for i, p := range r.Poles {
			bandwidths[i] = p.Bandwidth
		}
		s.MeanPoleBandwidth = stat.Mean(bandwidths, nil)
	}
	return s
}

// Envelope returns the latest spectral envelope magnitude.
func (f *FormantAnalyzer) Envelope() []float64 { return f.block.FilterMagnitude() }

// Frequencies returns the Hz value of each envelope bin.
func (f *FormantAnalyzer) Frequencies() []float64 { return f.block.FilterFrequencies() }

// Signal returns the block's working buffer after the latest run.
func (f *FormantAnalyzer) Signal() []float64 { return f.block.Signal() }

// BlockLength is the number of samples Analyze expects.
func (f *FormantAnalyzer) BlockLength() int { return f.block.BlockSize() }

// Config returns the configuration the analyzer was built from.
func (f *FormantAnalyzer) Config() config.AnalysisConfig { return f.cfg }
