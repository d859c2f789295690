// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package solve

import (
	"fmt"

	"github.com/mshafiee/numkit/bigcomplex"
	"github.com/mshafiee/numkit/bigfloat"
)

// DurandKernerOptions configures Roots.
type DurandKernerOptions struct {
	Precision uint
	MaxIter   int     // default 100
	Tolerance float64 // default 1e-14, measured on the max coordinate shift per iteration
}

func (o DurandKernerOptions) withDefaults() DurandKernerOptions {
	if o.MaxIter == 0 {
		o.MaxIter = 100
	}
	if o.Tolerance == 0 {
		o.Tolerance = 1e-14
	}
	return o
}

// Roots finds all roots of a monic-normalized polynomial given its
// coefficients in ascending order (coeffs[0] is the constant term,
// coeffs[len-1] the leading term), using the Durand-Kerner
// simultaneous-iteration method: each of the degree's
// roots is refined in parallel against the current estimates of all
// the others, converging without needing derivatives or deflation.
func Roots(coeffs []*bigfloat.BigFloat, opts DurandKernerOptions) ([]bigcomplex.Complex, error) {
	opts = opts.withDefaults()
	prec := opts.Precision
	if prec == 0 {
		prec = bigfloat.DefaultPrecision
	}

	n := len(coeffs) - 1
	for n > 0 && coeffs[n].IsExactZero() {
		n--
	}
	if n <= 0 {
		return nil, fmt.Errorf("solve: Roots needs a polynomial of degree >= 1")
	}
	if coeffs[0].IsExactZero() {
		// x == 0 is always a root; peel it off and recurse on the
		// remaining degree-(n-1) polynomial.
		rest, err := Roots(coeffs[1:n+1], opts)
		if err != nil {
			return nil, err
		}
		return append(rest, bigcomplex.FromFloat64(0, 0, prec)), nil
	}

	lead := coeffs[n]
	norm := make([]*bigfloat.BigFloat, n+1)
	for i := 0; i <= n; i++ {
		norm[i] = coeffs[i].Div(lead, prec)
	}

	// Initial guesses: evenly spaced points on a circle whose radius
	// bounds the roots (Cauchy's bound), a standard Durand-Kerner
	// starting configuration.
	radius := cauchyBound(norm, prec)
	z := make([]bigcomplex.Complex, n)
	two := bigfloat.Two(prec)
	pi := bigfloat.Pi(prec)
	for k := 0; k < n; k++ {
		theta := pi.Mul(two, prec).Mul(bigfloat.NewFromFloat64(float64(k)/float64(n), prec), prec)
		theta = theta.Add(bigfloat.NewFromFloat64(0.7, prec), prec) // nudge off any real-axis symmetry
		z[k] = bigcomplex.FromPolar(radius, theta)
	}

	for iter := 0; iter < opts.MaxIter; iter++ {
		maxShift := 0.0
		for k := 0; k < n; k++ {
			fz := evalMonic(norm, z[k])
			denom := bigcomplex.FromFloat64(1, 0, prec)
			for j := 0; j < n; j++ {
				if j == k {
					continue
				}
				diff := z[k].Sub(z[j])
				denom = denom.Mul(diff)
			}
			delta, err := fz.Quo(denom)
			if err != nil {
				continue // a coincident pair of estimates; skip this refinement this round
			}
			z[k] = z[k].Sub(delta)
			shift := delta.Abs().Float64()
			if shift > maxShift {
				maxShift = shift
			}
		}
		if maxShift < opts.Tolerance {
			break
		}
	}
	return z, nil
}

func evalMonic(coeffs []*bigfloat.BigFloat, x bigcomplex.Complex) bigcomplex.Complex {
	n := len(coeffs) - 1
	result := bigcomplex.Real(coeffs[n])
	for i := n - 1; i >= 0; i-- {
		result = result.Mul(x).Add(bigcomplex.Real(coeffs[i]))
	}
	return result
}

// cauchyBound returns 1 + max(|a_0|,...,|a_{n-1}|) for a monic
// polynomial x^n + a_{n-1}x^{n-1} + ... + a_0, an upper bound on the
// modulus of every root.
func cauchyBound(monic []*bigfloat.BigFloat, prec uint) *bigfloat.BigFloat {
	n := len(monic) - 1
	maxAbs := bigfloat.Zero(prec)
	for i := 0; i < n; i++ {
		abs := monic[i].Abs(prec)
		if abs.Gt(maxAbs) {
			maxAbs = abs
		}
	}
	return bigfloat.One(prec).Add(maxAbs, prec)
}
