// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package scalar

import (
	"math/big"
	"testing"

	"github.com/mshafiee/numkit/bigfraction"
)

func TestRationalStaysRational(t *testing.T) {
	a := FromRational(bigfraction.FromInts(big.NewInt(1), big.NewInt(2)))
	b := FromRational(bigfraction.FromInts(big.NewInt(1), big.NewInt(3)))
	sum := a.Add(b, 0)
	if sum.Level() != LevelRational {
		t.Fatalf("Level() = %v, want rational", sum.Level())
	}
}

func TestDivisionByZeroPromotesToError(t *testing.T) {
	a := FromRational(bigfraction.FromInt64(1))
	zero := FromRational(bigfraction.FromInt64(0))
	if _, err := a.Div(zero, 0); err == nil {
		t.Fatalf("expected an error dividing by zero")
	}
}

func TestSqrtPromotesNegativeToComplex(t *testing.T) {
	neg := FromRational(bigfraction.FromInt64(-4))
	root := neg.Sqrt(128)
	if root.Level() != LevelComplex {
		t.Fatalf("Level() = %v, want complex for sqrt(-4)", root.Level())
	}
}

func TestSqrtOfPositiveRationalIsReal(t *testing.T) {
	four := FromRational(bigfraction.FromInt64(4))
	root := four.Sqrt(128)
	if root.Level() != LevelReal {
		t.Fatalf("Level() = %v, want real for sqrt(4)", root.Level())
	}
	if got := root.ToReal(128).Float64(); got != 2 {
		t.Fatalf("sqrt(4) = %v, want 2", got)
	}
}
