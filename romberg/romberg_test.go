// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package romberg

import (
	"math"
	"testing"

	"github.com/mshafiee/numkit/bigfloat"
)

func TestIntegrateSquare(t *testing.T) {
	// ∫_0^1 x^2 dx = 1/3
	f := func(x *bigfloat.BigFloat, prec uint) *bigfloat.BigFloat {
		return x.Mul(x, prec)
	}
	a := bigfloat.Zero(128)
	b := bigfloat.One(128)
	res, err := Integrate(f, a, b, Options{Precision: 128})
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	got := res.Value.Float64()
	if math.Abs(got-1.0/3.0) > 1e-9 {
		t.Fatalf("got %v, want ~1/3", got)
	}
	if !res.Converged {
		t.Fatalf("expected convergence for a smooth polynomial integrand")
	}
}

func TestIntegrateSwapsReversedBounds(t *testing.T) {
	f := func(x *bigfloat.BigFloat, prec uint) *bigfloat.BigFloat {
		return x.Clone()
	}
	a := bigfloat.Zero(128)
	b := bigfloat.One(128)
	forward, err := Integrate(f, a, b, Options{Precision: 128})
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	reversed, err := Integrate(f, b, a, Options{Precision: 128})
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if math.Abs(forward.Value.Float64()+reversed.Value.Float64()) > 1e-9 {
		t.Fatalf("forward=%v reversed=%v, want negatives of each other", forward.Value.Float64(), reversed.Value.Float64())
	}
}

func TestIntegrateEqualBoundsIsZero(t *testing.T) {
	f := func(x *bigfloat.BigFloat, prec uint) *bigfloat.BigFloat {
		return x.Clone()
	}
	a := bigfloat.One(128)
	res, err := Integrate(f, a, a, Options{Precision: 128})
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if !res.Value.IsExactZero() {
		t.Fatalf("expected exact zero for a degenerate interval")
	}
}
