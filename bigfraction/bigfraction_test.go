// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package bigfraction

import (
	"math/big"
	"testing"
)

func TestReduction(t *testing.T) {
	f := FromInts(big.NewInt(6), big.NewInt(4))
	if f.Num().Int64() != 3 || f.Den().Int64() != 2 {
		t.Fatalf("6/4 reduced = %s, want 3/2", f.String())
	}
}

func TestArithmetic(t *testing.T) {
	half := FromInts(big.NewInt(1), big.NewInt(2))
	third := FromInts(big.NewInt(1), big.NewInt(3))
	sum := half.Add(third)
	if sum.Num().Int64() != 5 || sum.Den().Int64() != 6 {
		t.Fatalf("1/2+1/3 = %s, want 5/6", sum.String())
	}
	prod := half.Mul(third)
	if prod.Num().Int64() != 1 || prod.Den().Int64() != 6 {
		t.Fatalf("1/2*1/3 = %s, want 1/6", prod.String())
	}
}

func TestFromFloat64BitExact(t *testing.T) {
	f := FromFloat64(0.5)
	if f.Num().Int64() != 1 || f.Den().Int64() != 2 {
		t.Fatalf("0.5 -> %s, want 1/2", f.String())
	}
}

func TestFromStringVariants(t *testing.T) {
	cases := map[string]struct{ n, d int64 }{
		"3":     {3, 1},
		"3/4":   {3, 4},
		"1.25":  {5, 4},
		"-1.5":  {-3, 2},
	}
	for s, want := range cases {
		f, err := FromString(s)
		if err != nil {
			t.Fatalf("FromString(%q): %v", s, err)
		}
		if f.Num().Int64() != want.n || f.Den().Int64() != want.d {
			t.Fatalf("FromString(%q) = %s, want %d/%d", s, f.String(), want.n, want.d)
		}
	}
}

func TestDivisionByZeroIsNaN(t *testing.T) {
	zero := FromInt64(0)
	one := FromInt64(1)
	if !one.Quo(zero).IsNaN() {
		t.Fatalf("division by zero should yield NaN")
	}
}
