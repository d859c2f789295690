// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package bigfloat

import (
	"math"
	"testing"
)

func TestAddSubMulDiv(t *testing.T) {
	a := NewFromFloat64(3, 128)
	b := NewFromFloat64(4, 128)
	if got := a.Add(b, 128).Float64(); got != 7 {
		t.Fatalf("Add: got %v, want 7", got)
	}
	if got := a.Mul(b, 128).Float64(); got != 12 {
		t.Fatalf("Mul: got %v, want 12", got)
	}
	if got := b.Sub(a, 128).Float64(); got != 1 {
		t.Fatalf("Sub: got %v, want 1", got)
	}
	if got := b.Div(a, 128).Float64(); math.Abs(got-4.0/3.0) > 1e-12 {
		t.Fatalf("Div: got %v, want 4/3", got)
	}
}

func TestNaNPropagation(t *testing.T) {
	n := NaN(128)
	x := NewFromFloat64(1, 128)
	if !n.Add(x, 128).IsNaN() {
		t.Fatalf("NaN + x should be NaN")
	}
	if !n.IsNaN() || n.Sign() != 0 {
		t.Fatalf("NaN sign should report 0")
	}
}

func TestConstantIsImmutable(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic mutating a constant")
		}
	}()
	// Pi() hands out a mutable copy; the shared singleton is the constant.
	initConstants()
	p := piConst
	p.SetAdd(p, p, 128, ToNearestEven)
}

func TestDisposeThenAccessRehydrates(t *testing.T) {
	x := NewFromFloat64(2.5, 128)
	x.Dispose()
	if got := x.Float64(); got != 2.5 {
		t.Fatalf("value after Dispose+access = %v, want 2.5", got)
	}
}

func TestDivisionResultIsFinite(t *testing.T) {
	a := NewFromFloat64(1, 128)
	b := NewFromFloat64(3, 128)
	q := a.Div(b, 128)
	if !q.IsFinite() {
		t.Fatalf("1/3 should be finite")
	}
}

func TestTranscendentals(t *testing.T) {
	x := NewFromFloat64(0, 256)
	if got := x.Sin(256).Float64(); math.Abs(got) > 1e-15 {
		t.Fatalf("sin(0) = %v, want 0", got)
	}
	if got := x.Cos(256).Float64(); math.Abs(got-1) > 1e-15 {
		t.Fatalf("cos(0) = %v, want 1", got)
	}
	one := NewFromFloat64(1, 256)
	if got := one.Exp(256).Float64(); math.Abs(got-math.E) > 1e-12 {
		t.Fatalf("exp(1) = %v, want e", got)
	}
}

func TestConstants(t *testing.T) {
	if got := Pi(256).Float64(); math.Abs(got-math.Pi) > 1e-12 {
		t.Fatalf("Pi = %v", got)
	}
	if got := E(256).Float64(); math.Abs(got-math.E) > 1e-12 {
		t.Fatalf("E = %v", got)
	}
}
