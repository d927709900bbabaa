package speech

import (
	"fmt"

	"github.com/RyanBlaney/sonido-formants/algorithms/linalg"
	"github.com/RyanBlaney/sonido-formants/algorithms/polyroot"
)

// SolverMethod selects how the normal equations are solved.
type SolverMethod string

// RootMethod selects how LPC polynomial roots are found.
type RootMethod string

// EnvelopeMethod selects how the spectral envelope is evaluated.
type EnvelopeMethod string

const (
	SolverLU       SolverMethod = "lu"       // dense LU with partial pivoting
	SolverLevinson SolverMethod = "levinson" // Levinson recursion on the Toeplitz structure

	RootsEigen        RootMethod = "eigen"         // companion-matrix eigenvalues
	RootsDurandKerner RootMethod = "durand-kerner" // simultaneous iteration

	EnvelopeDirect EnvelopeMethod = "direct" // per-bin polynomial evaluation
	EnvelopeFFT    EnvelopeMethod = "fft"    // zero-padded FFT of the coefficients
)

// Methods bundles the numeric method choices of an AnalysisBlock.
type Methods struct {
	Solver   SolverMethod   `json:"solver"`
	Roots    RootMethod     `json:"root_finder"`
	Envelope EnvelopeMethod `json:"envelope"`
}

// DefaultMethods returns LU solving, eigenvalue roots and direct envelope evaluation.
func DefaultMethods() Methods {
	return Methods{
		Solver:   SolverLU,
		Roots:    RootsEigen,
		Envelope: EnvelopeDirect,
	}
}

// withDefaults fills empty choices from DefaultMethods.
func (m Methods) withDefaults() Methods {
	def := DefaultMethods()
	if m.Solver == "" {
		m.Solver = def.Solver
	}
	if m.Roots == "" {
		m.Roots = def.Roots
	}
	if m.Envelope == "" {
		m.Envelope = def.Envelope
	}
	return m
}

// solverFunc solves the order-n system held by the block into dst.
type solverFunc func(b *AnalysisBlock, dst []float64) error

func solveWithLU(b *AnalysisBlock, dst []float64) error {
	return linalg.SolveLU(b.toeplitz, b.modelOrder, b.target, dst)
}

func solveWithLevinson(b *AnalysisBlock, dst []float64) error {
	return linalg.SolveToeplitz(b.input, b.target, dst)
}

func (m Methods) resolve() (solverFunc, polyroot.Finder, error) {
	var solve solverFunc
	switch m.Solver {
	case SolverLU:
		solve = solveWithLU
	case SolverLevinson:
		solve = solveWithLevinson
	default:
		return nil, nil, fmt.Errorf("unknown solver %q: %w", m.Solver, ErrInvalidConfig)
	}

	var find polyroot.Finder
	switch m.Roots {
	case RootsEigen:
		find = polyroot.Roots
	case RootsDurandKerner:
		find = polyroot.DurandKerner
	default:
		return nil, nil, fmt.Errorf("unknown root finder %q: %w", m.Roots, ErrInvalidConfig)
	}

	switch m.Envelope {
	case EnvelopeDirect, EnvelopeFFT:
	default:
		return nil, nil, fmt.Errorf("unknown envelope method %q: %w", m.Envelope, ErrInvalidConfig)
	}

	return solve, find, nil
}
