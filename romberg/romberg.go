// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

// Package romberg implements Romberg quadrature: the composite
// trapezoid rule refined by Richardson extrapolation.
package romberg

import (
	"math"

	"github.com/mshafiee/numkit/bigfloat"
)

// Func is the integrand f(x).
type Func func(x *bigfloat.BigFloat, prec uint) *bigfloat.BigFloat

// Options configures an Integrate call.
type Options struct {
	Precision uint
	// MaxLevels bounds the trapezoid-table refinement depth (default
	// 20, i.e. up to 2^20 subintervals).
	MaxLevels int
	// Tolerance stops refinement once successive diagonal estimates
	// agree to within this absolute difference (default 1e-12).
	Tolerance float64
	// RelTolerance stops refinement once successive diagonal estimates
	// agree to within this fraction of the latest estimate's magnitude
	// (default 1e-12). Convergence requires either Tolerance or
	// RelTolerance to be satisfied, since an absolute-only check is
	// too strict for large-magnitude integrals and a relative-only
	// check never fires near zero.
	RelTolerance float64
}

func (o Options) withDefaults() Options {
	if o.MaxLevels == 0 {
		o.MaxLevels = 20
	}
	if o.Tolerance == 0 {
		o.Tolerance = 1e-12
	}
	if o.RelTolerance == 0 {
		o.RelTolerance = 1e-12
	}
	return o
}

// Result reports the estimate, how many trapezoid refinements were
// actually performed, and the precision Romberg's own convergence
// check could certify (distinct from the caller's working precision:
// an integrand that doesn't converge smoothly won't earn every
// requested bit).
type Result struct {
	Value             *bigfloat.BigFloat
	Levels            int
	EffectivePrecBits int
	Converged         bool
}

// Integrate estimates the definite integral of f over [a, b]. b < a is
// handled by swapping the bounds and negating the result, matching ∫_a^b f = -∫_b^a f.
func Integrate(f Func, a, b *bigfloat.BigFloat, opts Options) (Result, error) {
	opts = opts.withDefaults()
	prec := opts.Precision
	if prec == 0 {
		prec = bigfloat.DefaultPrecision
	}

	if a.Eq(b) {
		return Result{Value: bigfloat.Zero(prec), Levels: 0, Converged: true}, nil
	}

	negate := false
	lo, hi := a, b
	if a.Gt(b) {
		lo, hi = b, a
		negate = true
	}

	workPrec := prec + 32
	half := bigfloat.Half(workPrec)
	h := hi.Sub(lo, workPrec)

	fa := f(lo, workPrec)
	fb := f(hi, workPrec)

	// R[0][0]: trapezoid rule with a single panel.
	r00 := h.Mul(fa.Add(fb, workPrec), workPrec).Mul(half, workPrec)
	table := [][]*bigfloat.BigFloat{{r00}}

	converged := false
	level := 0
	for level = 1; level <= opts.MaxLevels; level++ {
		n := int64(1) << uint(level-1)
		stepPrev := h.Div(bigfloat.NewFromFloat64(float64(n), workPrec), workPrec)
		stepNew := stepPrev.Mul(half, workPrec)

		midSum := bigfloat.Zero(workPrec)
		for k := int64(0); k < n; k++ {
			offset := bigfloat.NewFromFloat64(float64(2*k+1), workPrec).Mul(stepNew, workPrec)
			x := lo.Add(offset, workPrec)
			midSum = midSum.Add(f(x, workPrec), workPrec)
		}

		trap := table[level-1][0].Mul(half, workPrec)
		trap = trap.Add(stepNew.Mul(midSum, workPrec), workPrec)

		row := []*bigfloat.BigFloat{trap}
		prevRow := table[level-1]
		for m := 1; m <= level; m++ {
			fourM := bigfloat.NewFromFloat64(pow4(m), workPrec)
			num := fourM.Mul(row[m-1], workPrec).Sub(prevRow[m-1], workPrec)
			den := fourM.Sub(bigfloat.One(workPrec), workPrec)
			row = append(row, num.Div(den, workPrec))
		}
		table = append(table, row)

		diff := row[level].Sub(prevRow[level-1], workPrec).Abs(workPrec).Float64()
		scale := row[level].Abs(workPrec).Float64()
		// Require a handful of refinements before trusting agreement
		// between successive diagonal entries; a smooth integrand can
		// spuriously satisfy either tolerance after only one or two
		// levels, well before the extrapolation has actually settled.
		if level > 5 && (diff < opts.Tolerance || diff < opts.RelTolerance*scale) {
			converged = true
			break
		}
	}
	if level > opts.MaxLevels {
		level = opts.MaxLevels
	}

	best := table[len(table)-1]
	value := best[len(best)-1]
	if negate {
		value = value.Neg(workPrec)
	}

	return Result{
		Value:             value.Add(bigfloat.Zero(prec), prec),
		Levels:            level,
		EffectivePrecBits: effectivePrecision(table, prec),
		Converged:         converged,
	}, nil
}

// pow4 returns 4^m as a float64; m is always small (<= MaxLevels).
func pow4(m int) float64 {
	r := 1.0
	for i := 0; i < m; i++ {
		r *= 4
	}
	return r
}

// effectivePrecision reports how many bits of the final diagonal
// entries actually agree, capped at the caller's requested precision
// — Romberg can claim arbitrary precision in principle, but an
// integrand evaluated only to workPrec and refined only MaxLevels
// times really only earns what its last two diagonal differences show.
func effectivePrecision(table [][]*bigfloat.BigFloat, prec uint) int {
	n := len(table)
	if n < 2 {
		return 0
	}
	last := table[n-1]
	prev := table[n-2]
	a := last[len(last)-1]
	b := prev[len(prev)-1]
	diff := a.Sub(b, a.Precision()).Abs(a.Precision()).Float64()
	if diff == 0 {
		return int(prec)
	}
	bits := int(-math.Log2(diff))
	if bits > int(prec) {
		bits = int(prec)
	}
	if bits < 0 {
		bits = 0
	}
	return bits
}
