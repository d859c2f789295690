// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package poly

import (
	"math"
	"testing"

	"github.com/mshafiee/numkit/bigfloat"
)

func realZero(prec uint) Coef { return RealCoef{bigfloat.Zero(prec), prec} }

func realCoef(v float64, prec uint) Coef { return RealCoef{bigfloat.NewFromFloat64(v, prec), prec} }

// TestExpSeriesMatchesEvalAtPoint checks that exp(p)(x) approximates
// exp(p(x)) for a small series truncation, a basic sanity check on the
// Taylor-composition implementation rather than an exact identity
// (series truncation means this only holds approximately).
func TestExpSeriesMatchesEvalAtPoint(t *testing.T) {
	prec := uint(128)
	zero := realZero(prec)
	// p(x) = x, truncated at order 20
	p := NewSeries(map[int]Coef{1: realCoef(1, prec)}, 20, zero)
	expP, err := p.Exp()
	if err != nil {
		t.Fatalf("Exp: %v", err)
	}
	x := realCoef(0.1, prec)
	got := expP.Eval(x).(RealCoef).V.Float64()
	want := math.Exp(0.1)
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("exp(series)(0.1) = %v, want ~%v", got, want)
	}
}

func TestSinSeriesMatchesEvalAtPoint(t *testing.T) {
	prec := uint(128)
	zero := realZero(prec)
	p := NewSeries(map[int]Coef{1: realCoef(1, prec)}, 16, zero)
	sinP, err := p.Sin()
	if err != nil {
		t.Fatalf("Sin: %v", err)
	}
	x := realCoef(0.3, prec)
	got := sinP.Eval(x).(RealCoef).V.Float64()
	want := math.Sin(0.3)
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("sin(series)(0.3) = %v, want ~%v", got, want)
	}
}
