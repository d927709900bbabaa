package linalg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SolveLU solves a·x = b for the n×n row-major matrix a using LU
// decomposition with partial pivoting. Only matrices that cannot be inverted
// at all return ErrSingular: a zero pivot, NaN input, an all-zero matrix or
// a non-finite solution. A large but finite condition number is accepted.
// dst is written only on success.
func SolveLU(a []float64, n int, b, dst []float64) error {
	if n < 1 || len(a) != n*n || len(b) != n || len(dst) != n {
		return fmt.Errorf("order %d with matrix %d, rhs %d, dst %d: %w", n, len(a), len(b), len(dst), ErrDimensionMismatch)
	}
	if floats.HasNaN(a) || floats.HasNaN(b) {
		return fmt.Errorf("system contains NaN: %w", ErrSingular)
	}
	if floats.Norm(a, math.Inf(1)) == 0 {
		return fmt.Errorf("zero matrix: %w", ErrSingular)
	}

	// mat.NewDense takes ownership of its backing slice.
	m := mat.NewDense(n, n, append([]float64(nil), a...))

	var lu mat.LU
	lu.Factorize(m)

	var x mat.VecDense
	err := lu.SolveVecTo(&x, false, mat.NewVecDense(n, append([]float64(nil), b...)))
	if err != nil && !solvedDespite(err) {
		return fmt.Errorf("LU solve failed: %v: %w", err, ErrSingular)
	}

	solution := x.RawVector().Data
	if !isFinite(solution) {
		return fmt.Errorf("LU solution is not finite: %w", ErrSingular)
	}

	copy(dst, solution)
	return nil
}

// SolveToeplitz solves T·x = b where T is the symmetric Toeplitz matrix whose
// first row is r, using Levinson recursion in O(n²). A vanishing leading
// principal minor returns ErrSingular. dst is written only on success.
func SolveToeplitz(r, b, dst []float64) error {
	n := len(r)
	if n < 1 || len(b) != n || len(dst) != n {
		return fmt.Errorf("order %d with rhs %d, dst %d: %w", n, len(b), len(dst), ErrDimensionMismatch)
	}
	if r[0] == 0 {
		return fmt.Errorf("zero diagonal: %w", ErrSingular)
	}

	// f solves T_k·f = e_1; by symmetry reverse(f) solves T_k·g = e_k.
	f := make([]float64, n)
	next := make([]float64, n)
	x := make([]float64, n)

	f[0] = 1 / r[0]
	x[0] = b[0] / r[0]

	for k := 1; k < n; k++ {
		ef := 0.0
		ex := 0.0
		for i := range k {
			ef += r[k-i] * f[i]
			ex += r[k-i] * x[i]
		}

		denom := 1 - ef*ef
		if denom == 0 {
			return fmt.Errorf("leading minor %d vanished: %w", k+1, ErrSingular)
		}

		alpha := 1 / denom
		beta := -ef / denom
		for i := 0; i <= k; i++ {
			v := 0.0
			if i < k {
				v += alpha * f[i]
			}
			if i > 0 {
				v += beta * f[k-i]
			}
			next[i] = v
		}
		copy(f[:k+1], next[:k+1])

		scale := b[k] - ex
		for i := 0; i <= k; i++ {
			x[i] += scale * f[k-i]
		}
	}

	if !isFinite(x) {
		return fmt.Errorf("Levinson solution is not finite: %w", ErrSingular)
	}

	copy(dst, x)
	return nil
}

// solvedDespite reports whether a gonum solve error is only a conditioning
// warning. gonum still writes the solution in that case; a zero pivot is
// reported as an infinite condition number and leaves nothing to use.
func solvedDespite(err error) bool {
	var cond mat.Condition
	if errors.As(err, &cond) {
		return !math.IsInf(float64(cond), 1)
	}
	return false
}

func isFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
