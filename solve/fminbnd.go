// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package solve

import (
	"github.com/mshafiee/numkit/bigfloat"
)

// FminbndOptions configures Fminbnd.
type FminbndOptions struct {
	Precision uint
	MaxIter   int     // default 100
	Tolerance float64 // default 1e-12, on the bracket width
}

func (o FminbndOptions) withDefaults() FminbndOptions {
	if o.MaxIter == 0 {
		o.MaxIter = 100
	}
	if o.Tolerance == 0 {
		o.Tolerance = 1e-12
	}
	return o
}

// invPhi is 1/golden ratio, the standard golden-section step fraction.
const invPhi = 0.6180339887498949

// Fminbnd finds a local minimizer of f on [a, b] via golden-section
// search: the bracket [lo, hi] shrinks by a constant factor each
// round by discarding whichever of two interior probes scores worse,
// reusing the surviving probe's point and value next round so only
// one new f evaluation is needed per iteration.
func Fminbnd(f ScalarFunc, a, b *bigfloat.BigFloat, opts FminbndOptions) (*bigfloat.BigFloat, error) {
	opts = opts.withDefaults()
	prec := opts.Precision
	if prec == 0 {
		prec = bigfloat.DefaultPrecision
	}

	lo, hi := a, b
	invPhiBF := bigfloat.NewFromFloat64(invPhi, prec)
	span := hi.Sub(lo, prec)
	x1 := hi.Sub(span.Mul(invPhiBF, prec), prec)
	x2 := lo.Add(span.Mul(invPhiBF, prec), prec)
	f1 := f(x1, prec)
	f2 := f(x2, prec)

	tol := bigfloat.NewFromFloat64(opts.Tolerance, prec)

	for iter := 0; iter < opts.MaxIter; iter++ {
		if hi.Sub(lo, prec).Abs(prec).Lt(tol) {
			break
		}
		if f1.Lt(f2) {
			hi = x2
			x2, f2 = x1, f1
			span = hi.Sub(lo, prec)
			x1 = hi.Sub(span.Mul(invPhiBF, prec), prec)
			f1 = f(x1, prec)
		} else {
			lo = x1
			x1, f1 = x2, f2
			span = hi.Sub(lo, prec)
			x2 = lo.Add(span.Mul(invPhiBF, prec), prec)
			f2 = f(x2, prec)
		}
	}

	if f1.Lt(f2) {
		return x1, nil
	}
	return x2, nil
}
