// Package polyroot finds the complex roots of real polynomials.
//
// Coefficients are always given in descending power order, so
// c[0]*z^n + c[1]*z^(n-1) + ... + c[n]. For an LPC polynomial the leading
// coefficient is the fixed 1.0 term and the roots are the filter poles.
package polyroot

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDegeneratePolynomial is returned for polynomials with no roots to
	// find (degree zero) or a zero leading coefficient.
	ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")
	// ErrNoConvergence is returned when an iterative method does not settle.
	ErrNoConvergence = errors.New("polyroot: root finder did not converge")
)

// Finder computes all roots of a polynomial in descending power order.
type Finder func(coeffs []float64) ([]complex128, error)

// Companion returns the n×n companion matrix of the polynomial, normalized
// by the leading coefficient, whose eigenvalues are its roots.
func Companion(coeffs []float64) (*mat.Dense, error) {
	if len(coeffs) < 2 || coeffs[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeffs) - 1
	c := mat.NewDense(n, n, nil)
	for j := range n {
		c.Set(0, j, -coeffs[j+1]/coeffs[0])
	}
	for i := 1; i < n; i++ {
		c.Set(i, i-1, 1)
	}

	return c, nil
}

// Roots finds all roots as the eigenvalues of the companion matrix.
// Complex roots come out in conjugate pairs, positive imaginary part first.
func Roots(coeffs []float64) ([]complex128, error) {
	c, err := Companion(coeffs)
	if err != nil {
		return nil, err
	}

	var eig mat.Eigen
	if ok := eig.Factorize(c, mat.EigenNone); !ok {
		return nil, fmt.Errorf("companion eigen decomposition failed: %w", ErrNoConvergence)
	}

	return eig.Values(nil), nil
}

// DurandKerner finds all roots by Weierstrass simultaneous iteration.
func DurandKerner(coeffs []float64) ([]complex128, error) {
	if len(coeffs) < 2 || coeffs[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeffs) - 1
	norm := make([]complex128, len(coeffs))
	for i, c := range coeffs {
		norm[i] = complex(c/coeffs[0], 0)
	}

	// Cauchy bound keeps the starting circle around every root.
	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}
	radius++

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.4
		roots[i] = cmplx.Rect(radius, angle)
	}

	const (
		maxIter = 1000
		tol     = 1e-13
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)
			for j := range n {
				if i != j {
					den *= roots[i] - roots[j]
				}
			}

			if den == 0 {
				roots[i] += complex(1e-10, 1e-10)
				maxDelta = math.Inf(1)
				continue
			}

			delta := Eval(norm, roots[i]) / den
			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		// A NaN step never raises maxDelta, so settling alone is not enough.
		if maxDelta < tol {
			if !allFinite(roots) {
				return roots, ErrNoConvergence
			}
			return roots, nil
		}
	}

	// Multiple roots converge linearly; accept them when the residual is small.
	for _, r := range roots {
		if !(cmplx.Abs(Eval(norm, r)) <= 1e-8) {
			return roots, ErrNoConvergence
		}
	}

	return roots, nil
}

func allFinite(roots []complex128) bool {
	for _, r := range roots {
		if cmplx.IsNaN(r) || cmplx.IsInf(r) {
			return false
		}
	}
	return true
}

// Eval evaluates the polynomial at z with Horner's scheme.
func Eval(coeffs []complex128, z complex128) complex128 {
	var acc complex128
	for _, c := range coeffs {
		acc = acc*z + c
	}
	return acc
}
