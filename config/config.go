// Package config holds the JSON-serializable settings of a formant analyzer.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid analysis configuration")

// AnalysisConfig configures one formant analysis context.
type AnalysisConfig struct {
	SampleRate    uint32  `json:"sample_rate_hz"`
	WindowLength  float64 `json:"window_length_s"`      // seconds of audio per block
	BlockSamples  int     `json:"block_size,omitempty"` // overrides WindowLength when > 0
	Order         int     `json:"model_order"`          // 0 derives sample_rate/1000 + 2
	FrequencyBins int     `json:"frequency_bins"`

	// Numeric methods
	Solver     string `json:"solver"`      // "lu", "levinson"
	RootFinder string `json:"root_finder"` // "eigen", "durand-kerner"
	Envelope   string `json:"envelope"`    // "direct", "fft"
}

var (
	validSolvers     = []string{"lu", "levinson"}
	validRootFinders = []string{"eigen", "durand-kerner"}
	validEnvelopes   = []string{"direct", "fft"}
)

// DefaultAnalysisConfig returns a 40 ms window at 44.1 kHz with a derived
// model order, 512 envelope bins and the reference numeric methods.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		SampleRate:    44100,
		WindowLength:  0.04,
		FrequencyBins: 512,
		Solver:        "lu",
		RootFinder:    "eigen",
		Envelope:      "direct",
	}
}

// BlockSize returns the number of samples per analysis block.
func (c AnalysisConfig) BlockSize() int {
	if c.BlockSamples > 0 {
		return c.BlockSamples
	}
	return int(math.Floor(c.WindowLength * float64(c.SampleRate)))
}

// ModelOrder returns the LPC order, deriving the conventional
// sample_rate/1000 + 2 when none is set.
func (c AnalysisConfig) ModelOrder() int {
	if c.Order > 0 {
		return c.Order
	}
	return int(c.SampleRate/1000) + 2
}

// Validate checks the configuration against the analysis block contract.
func (c AnalysisConfig) Validate() error {
	if c.SampleRate == 0 {
		return fmt.Errorf("sample_rate_hz must be positive: %w", ErrInvalid)
	}
	if c.BlockSamples < 0 {
		return fmt.Errorf("block_size %d is negative: %w", c.BlockSamples, ErrInvalid)
	}
	if c.BlockSamples == 0 && (c.WindowLength <= 0 || math.IsNaN(c.WindowLength) || math.IsInf(c.WindowLength, 0)) {
		return fmt.Errorf("window_length_s %v must be positive: %w", c.WindowLength, ErrInvalid)
	}
	if c.Order < 0 {
		return fmt.Errorf("model_order %d is negative: %w", c.Order, ErrInvalid)
	}
	if c.FrequencyBins < 1 {
		return fmt.Errorf("frequency_bins %d must be at least 1: %w", c.FrequencyBins, ErrInvalid)
	}
	if c.BlockSize() <= c.ModelOrder() {
		return fmt.Errorf("block size %d must exceed model order %d: %w", c.BlockSize(), c.ModelOrder(), ErrInvalid)
	}

	if err := oneOf("solver", c.Solver, validSolvers); err != nil {
		return err
	}
	if err := oneOf("root_finder", c.RootFinder, validRootFinders); err != nil {
		return err
	}
	return oneOf("envelope", c.Envelope, validEnvelopes)
}

func oneOf(field, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s %q not one of %v: %w", field, value, allowed, ErrInvalid)
}

// Parse overlays JSON onto DefaultAnalysisConfig and validates the result.
func Parse(data []byte) (AnalysisConfig, error) {
	cfg := DefaultAnalysisConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return AnalysisConfig{}, fmt.Errorf("failed to decode analysis config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return AnalysisConfig{}, err
	}
	return cfg, nil
}

// Load reads and parses a JSON configuration file.
func Load(path string) (AnalysisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AnalysisConfig{}, fmt.Errorf("failed to read analysis config %s: %w", path, err)
	}
	return Parse(data)
}
