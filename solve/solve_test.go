// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package solve

import (
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mshafiee/numkit/bigfloat"
)

func TestSolveLinear(t *testing.T) {
	prec := uint(128)
	// [2 1][x]   [5]
	// [1 3][y] = [10]  -> x=1, y=3
	a := [][]*bigfloat.BigFloat{
		{bigfloat.NewFromFloat64(2, prec), bigfloat.NewFromFloat64(1, prec)},
		{bigfloat.NewFromFloat64(1, prec), bigfloat.NewFromFloat64(3, prec)},
	}
	b := []*bigfloat.BigFloat{bigfloat.NewFromFloat64(5, prec), bigfloat.NewFromFloat64(10, prec)}
	x, err := SolveLinear(a, b, prec)
	if err != nil {
		t.Fatalf("SolveLinear: %v", err)
	}
	if math.Abs(x[0].Float64()-1) > 1e-9 || math.Abs(x[1].Float64()-3) > 1e-9 {
		t.Fatalf("x = [%v %v], want [1 3]", x[0].Float64(), x[1].Float64())
	}
}

func TestPolyfitLinear(t *testing.T) {
	prec := uint(128)
	xs := make([]*bigfloat.BigFloat, 5)
	ys := make([]*bigfloat.BigFloat, 5)
	for i := 0; i < 5; i++ {
		xv := float64(i)
		xs[i] = bigfloat.NewFromFloat64(xv, prec)
		ys[i] = bigfloat.NewFromFloat64(2*xv+1, prec)
	}
	res, err := Polyfit(xs, ys, 1, prec)
	if err != nil {
		t.Fatalf("Polyfit: %v", err)
	}
	if math.Abs(res.Coeffs[0].Float64()-1) > 1e-6 || math.Abs(res.Coeffs[1].Float64()-2) > 1e-6 {
		t.Fatalf("coeffs = %v %v, want [1 2]", res.Coeffs[0].Float64(), res.Coeffs[1].Float64())
	}
	if res.SSR.Float64() > 1e-9 {
		t.Fatalf("SSR = %v, want ~0 for an exact linear fit", res.SSR.Float64())
	}
}

func TestRootsQuadratic(t *testing.T) {
	prec := uint(128)
	// x^2 - 3x + 2 = (x-1)(x-2)
	coeffs := []*bigfloat.BigFloat{
		bigfloat.NewFromFloat64(2, prec),
		bigfloat.NewFromFloat64(-3, prec),
		bigfloat.NewFromFloat64(1, prec),
	}
	roots, err := Roots(coeffs, DurandKernerOptions{Precision: prec})
	if err != nil {
		t.Fatalf("Roots: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}
	found1, found2 := false, false
	for _, r := range roots {
		re := r.Re.Float64()
		if math.Abs(re-1) < 1e-6 {
			found1 = true
		}
		if math.Abs(re-2) < 1e-6 {
			found2 = true
		}
	}
	if !found1 || !found2 {
		t.Fatalf("roots = %v, want {1, 2}", roots)
	}

	gotRe := make([]float64, len(roots))
	for i, r := range roots {
		gotRe[i] = r.Re.Float64()
	}
	sort.Float64s(gotRe)
	want := []float64{1, 2}
	if diff := cmp.Diff(want, gotRe, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Fatalf("root real parts mismatch (-want +got):\n%s", diff)
	}
}

func TestFzeroSqrtTwo(t *testing.T) {
	prec := uint(128)
	f := func(x *bigfloat.BigFloat, prec uint) *bigfloat.BigFloat {
		return x.Mul(x, prec).Sub(bigfloat.NewFromFloat64(2, prec), prec)
	}
	root, err := Fzero(f, bigfloat.NewFromFloat64(0, prec), bigfloat.NewFromFloat64(2, prec), FzeroOptions{Precision: prec})
	if err != nil {
		t.Fatalf("Fzero: %v", err)
	}
	if math.Abs(root.Float64()-math.Sqrt2) > 1e-9 {
		t.Fatalf("root = %v, want sqrt(2)", root.Float64())
	}
}

func TestFminbndParabola(t *testing.T) {
	prec := uint(128)
	f := func(x *bigfloat.BigFloat, prec uint) *bigfloat.BigFloat {
		shifted := x.Sub(bigfloat.NewFromFloat64(3, prec), prec)
		return shifted.Mul(shifted, prec)
	}
	x, err := Fminbnd(f, bigfloat.NewFromFloat64(0, prec), bigfloat.NewFromFloat64(10, prec), FminbndOptions{Precision: prec})
	if err != nil {
		t.Fatalf("Fminbnd: %v", err)
	}
	if math.Abs(x.Float64()-3) > 1e-5 {
		t.Fatalf("x = %v, want ~3", x.Float64())
	}
}
