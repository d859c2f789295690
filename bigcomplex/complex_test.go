// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package bigcomplex

import (
	"math"
	"testing"
)

func TestArithmetic(t *testing.T) {
	a := FromFloat64(1, 2, 128)
	b := FromFloat64(3, -1, 128)
	sum := a.Add(b)
	if sum.Re.Float64() != 4 || sum.Im.Float64() != 1 {
		t.Fatalf("sum = %s, want 4+1i", sum.String())
	}
	prod := a.Mul(b)
	// (1+2i)(3-i) = 3 - i + 6i - 2i^2 = 5 + 5i
	if prod.Re.Float64() != 5 || prod.Im.Float64() != 5 {
		t.Fatalf("product = %s, want 5+5i", prod.String())
	}
}

func TestDivideByZero(t *testing.T) {
	a := FromFloat64(1, 1, 128)
	zero := FromFloat64(0, 0, 128)
	if _, err := a.Quo(zero); err == nil {
		t.Fatalf("expected ErrDivideByZero")
	}
}

func TestPolarRoundTrip(t *testing.T) {
	c := FromFloat64(3, 4, 128)
	r, theta := c.Polar()
	back := FromPolar(r, theta)
	if math.Abs(back.Re.Float64()-3) > 1e-9 || math.Abs(back.Im.Float64()-4) > 1e-9 {
		t.Fatalf("polar round trip = %s, want 3+4i", back.String())
	}
	if math.Abs(r.Float64()-5) > 1e-9 {
		t.Fatalf("|3+4i| = %v, want 5", r.Float64())
	}
}

func TestSqrtOfNegativeOne(t *testing.T) {
	negOne := FromFloat64(-1, 0, 128)
	root := negOne.Sqrt()
	if math.Abs(root.Re.Float64()) > 1e-9 || math.Abs(root.Im.Float64()-1) > 1e-9 {
		t.Fatalf("sqrt(-1) = %s, want i", root.String())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := FromFloat64(3, -4, 128)
	data, err := c.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var got Complex
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got.Re.Float64() != 3 || got.Im.Float64() != -4 {
		t.Fatalf("round trip = %s, want 3-4i", got.String())
	}
}
