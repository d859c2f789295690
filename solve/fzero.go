// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package solve

import (
	"errors"
	"fmt"

	"github.com/mshafiee/numkit/bigfloat"
)

// ErrNotBracketed is returned when f(a) and f(b) share a sign, so no
// root is guaranteed to exist between them.
var ErrNotBracketed = errors.New("solve: interval does not bracket a sign change")

// ScalarFunc evaluates f(x) at the given precision.
type ScalarFunc func(x *bigfloat.BigFloat, prec uint) *bigfloat.BigFloat

// FzeroOptions configures Fzero.
type FzeroOptions struct {
	Precision uint
	MaxIter   int     // default 100
	Tolerance float64 // default 1e-15, on the bracket width
}

func (o FzeroOptions) withDefaults() FzeroOptions {
	if o.MaxIter == 0 {
		o.MaxIter = 100
	}
	if o.Tolerance == 0 {
		o.Tolerance = 1e-15
	}
	return o
}

// Fzero finds a root of f within [a, b] using Brent's method: inverse
// quadratic interpolation when safe, secant otherwise, bisection as
// the guaranteed fallback whenever the fast step would leave the
// bracket or fail to shrink it enough.
func Fzero(f ScalarFunc, a, b *bigfloat.BigFloat, opts FzeroOptions) (*bigfloat.BigFloat, error) {
	opts = opts.withDefaults()
	prec := opts.Precision
	if prec == 0 {
		prec = bigfloat.DefaultPrecision
	}

	fa := f(a, prec)
	fb := f(b, prec)
	if fa.Sign() == 0 {
		return a.Clone(), nil
	}
	if fb.Sign() == 0 {
		return b.Clone(), nil
	}
	if fa.Sign() == fb.Sign() {
		return nil, fmt.Errorf("%w: f(%s) and f(%s) have the same sign", ErrNotBracketed, a.String(), b.String())
	}

	if fa.Abs(prec).Lt(fb.Abs(prec)) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	mflag := true
	var d *bigfloat.BigFloat

	tol := bigfloat.NewFromFloat64(opts.Tolerance, prec)

	for iter := 0; iter < opts.MaxIter; iter++ {
		if fb.Sign() == 0 || b.Sub(a, prec).Abs(prec).Lt(tol) {
			return b.Clone(), nil
		}

		var s *bigfloat.BigFloat
		if !fa.Eq(fc) && !fb.Eq(fc) {
			s = inverseQuadratic(a, fa, b, fb, c, fc, prec)
		} else {
			s = secant(a, fa, b, fb, prec)
		}

		bisectMid := a.Add(b, prec).Div(bigfloat.Two(prec), prec)
		needBisect := false
		lo, hi := orderedBounds(bisectMid, b, prec)
		if s.Lt(lo) || s.Gt(hi) {
			needBisect = true
		}
		if mflag && s.Sub(b, prec).Abs(prec).Ge(c.Sub(b, prec).Abs(prec).Div(bigfloat.Two(prec), prec)) {
			needBisect = true
		}
		if !mflag && d != nil && s.Sub(b, prec).Abs(prec).Ge(c.Sub(d, prec).Abs(prec).Div(bigfloat.Two(prec), prec)) {
			needBisect = true
		}
		if mflag && c.Sub(b, prec).Abs(prec).Lt(tol) {
			needBisect = true
		}
		if !mflag && d != nil && c.Sub(d, prec).Abs(prec).Lt(tol) {
			needBisect = true
		}

		if needBisect {
			s = bisectMid
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s, prec)
		d = c
		c, fc = b, fb
		if fa.Sign() != fs.Sign() {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if fa.Abs(prec).Lt(fb.Abs(prec)) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	return b.Clone(), nil
}

func inverseQuadratic(a, fa, b, fb, c, fc *bigfloat.BigFloat, prec uint) *bigfloat.BigFloat {
	t1 := a.Mul(fb, prec).Mul(fc, prec).Div(fa.Sub(fb, prec).Mul(fa.Sub(fc, prec), prec), prec)
	t2 := b.Mul(fa, prec).Mul(fc, prec).Div(fb.Sub(fa, prec).Mul(fb.Sub(fc, prec), prec), prec)
	t3 := c.Mul(fa, prec).Mul(fb, prec).Div(fc.Sub(fa, prec).Mul(fc.Sub(fb, prec), prec), prec)
	return t1.Add(t2, prec).Add(t3, prec)
}

func secant(a, fa, b, fb *bigfloat.BigFloat, prec uint) *bigfloat.BigFloat {
	return b.Sub(fb.Mul(b.Sub(a, prec), prec).Div(fb.Sub(fa, prec), prec), prec)
}

func orderedBounds(x, y *bigfloat.BigFloat, prec uint) (lo, hi *bigfloat.BigFloat) {
	if x.Lt(y) {
		return x, y
	}
	return y, x
}
