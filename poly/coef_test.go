// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package poly

import (
	"math"
	"testing"

	"github.com/mshafiee/numkit/bigfloat"
)

func TestRealCoefArithmetic(t *testing.T) {
	a := RealCoef{bigfloat.NewFromFloat64(2, 128), 128}
	b := RealCoef{bigfloat.NewFromFloat64(3, 128), 128}
	sum := a.Add(b).(RealCoef)
	if sum.V.Float64() != 5 {
		t.Fatalf("Add = %v, want 5", sum.V.Float64())
	}
}

func TestRealCoefTranscendentals(t *testing.T) {
	zero := RealCoef{bigfloat.Zero(128), 128}
	if got := zero.Sin().(RealCoef).V.Float64(); math.Abs(got) > 1e-12 {
		t.Fatalf("sin(0) = %v, want 0", got)
	}
	one := RealCoef{bigfloat.One(128), 128}
	exp1 := one.Exp().(RealCoef).V.Float64()
	if math.Abs(exp1-math.E) > 1e-9 {
		t.Fatalf("exp(1) = %v, want e", exp1)
	}
}

func TestRealCoefPowRat(t *testing.T) {
	four := RealCoef{bigfloat.NewFromFloat64(4, 128), 128}
	root, err := four.PowRat(1, 2)
	if err != nil {
		t.Fatalf("PowRat: %v", err)
	}
	if got := root.(RealCoef).V.Float64(); math.Abs(got-2) > 1e-9 {
		t.Fatalf("4^(1/2) = %v, want 2", got)
	}
}
