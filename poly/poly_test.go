// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package poly

import (
	"testing"

	"github.com/mshafiee/numkit/bigfraction"
)

func rc(n int64) Coef { return RationalCoef{bigfraction.FromInt64(n)} }

func ratZero() Coef { return rc(0) }

func TestNormalizeDropsZeroAndTruncated(t *testing.T) {
	p := NewExact(map[int]Coef{0: rc(1), 2: rc(0), 5: rc(3)}, ratZero())
	if p.Degree() != 5 {
		t.Fatalf("Degree() = %d, want 5", p.Degree())
	}
	if !p.Coeff(2).IsZero() {
		t.Fatalf("expected coeff at degree 2 to be zero")
	}

	s := NewSeries(map[int]Coef{0: rc(1), 4: rc(9)}, 3, ratZero())
	if s.Order() != 3 {
		t.Fatalf("Order() = %d, want 3", s.Order())
	}
	if !s.Coeff(4).IsZero() {
		t.Fatalf("expected term beyond the truncation order to be dropped")
	}
}

func TestValuationAndDegree(t *testing.T) {
	p := NewExact(map[int]Coef{-2: rc(1), 3: rc(1)}, ratZero())
	if p.Valuation() != -2 {
		t.Fatalf("Valuation() = %d, want -2", p.Valuation())
	}
	if p.Degree() != 3 {
		t.Fatalf("Degree() = %d, want 3", p.Degree())
	}
}

func TestAddSub(t *testing.T) {
	a := NewExact(map[int]Coef{0: rc(1), 1: rc(2)}, ratZero())
	b := NewExact(map[int]Coef{1: rc(3), 2: rc(4)}, ratZero())
	sum := a.Add(b)
	if !sum.Coeff(1).Equals(rc(5)) {
		t.Fatalf("coeff(1) = %v, want 5", sum.Coeff(1))
	}
	diff := a.Sub(b)
	if !diff.Coeff(2).Equals(rc(-4)) {
		t.Fatalf("coeff(2) = %v, want -4", diff.Coeff(2))
	}
}

func TestMul(t *testing.T) {
	// (x+1)(x-1) = x^2 - 1
	a := NewExact(map[int]Coef{0: rc(1), 1: rc(1)}, ratZero())
	b := NewExact(map[int]Coef{0: rc(-1), 1: rc(1)}, ratZero())
	prod := a.Mul(b)
	if !prod.Coeff(0).Equals(rc(-1)) || !prod.Coeff(2).Equals(rc(1)) || !prod.Coeff(1).IsZero() {
		t.Fatalf("unexpected product terms: %v", prod.Terms())
	}
}

func TestDivExact(t *testing.T) {
	// (x^2 - 1) / (x - 1) == x + 1
	num := NewExact(map[int]Coef{0: rc(-1), 2: rc(1)}, ratZero())
	den := NewExact(map[int]Coef{0: rc(-1), 1: rc(1)}, ratZero())
	q, err := num.Div(den)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if !q.Coeff(0).Equals(rc(1)) || !q.Coeff(1).Equals(rc(1)) {
		t.Fatalf("quotient = %v, want x+1", q.Terms())
	}
}

func TestPowInt(t *testing.T) {
	// (x+1)^2 = x^2 + 2x + 1
	base := NewExact(map[int]Coef{0: rc(1), 1: rc(1)}, ratZero())
	sq, err := base.PowInt(2)
	if err != nil {
		t.Fatalf("PowInt: %v", err)
	}
	if !sq.Coeff(0).Equals(rc(1)) || !sq.Coeff(1).Equals(rc(2)) || !sq.Coeff(2).Equals(rc(1)) {
		t.Fatalf("square = %v", sq.Terms())
	}
}

func TestEvalHorner(t *testing.T) {
	// p = x^2 + 2x + 1, evaluated at x=3 -> 16
	p := NewExact(map[int]Coef{0: rc(1), 1: rc(2), 2: rc(1)}, ratZero())
	got := p.Eval(rc(3))
	if !got.Equals(rc(16)) {
		t.Fatalf("Eval(3) = %v, want 16", got)
	}
}

func TestEqualsStrictAndApprox(t *testing.T) {
	a := NewExact(map[int]Coef{0: rc(1)}, ratZero())
	b := NewExact(map[int]Coef{0: rc(1)}, ratZero())
	if !a.EqualsStrict(b) {
		t.Fatalf("expected strict equality")
	}
	if !a.EqualsApprox(b) {
		t.Fatalf("expected approximate equality")
	}
	c := NewExact(map[int]Coef{0: rc(1), 1: rc(0)}, ratZero())
	if !a.EqualsStrict(c) {
		t.Fatalf("normalize should have dropped the zero term, making a and c strictly equal")
	}
}

func TestDerivativeAndIntegrate(t *testing.T) {
	// p = x^3, p' = 3x^2
	p := NewExact(map[int]Coef{3: rc(1)}, ratZero())
	d := p.Derivative()
	if !d.Coeff(2).Equals(rc(3)) {
		t.Fatalf("derivative coeff(2) = %v, want 3", d.Coeff(2))
	}
	ip := d.Integrate()
	if !ip.Coeff(3).Equals(rc(1)) {
		t.Fatalf("integral coeff(3) = %v, want 1", ip.Coeff(3))
	}
}

func TestParseLiteral(t *testing.T) {
	mk := func(f *bigfraction.BigFraction) (Coef, error) { return RationalCoef{f}, nil }
	p, err := Parse("3x^2 - x + 1/2", MaxOrder, ratZero(), mk)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.Coeff(2).Equals(rc(3)) {
		t.Fatalf("coeff(2) = %v, want 3", p.Coeff(2))
	}
	if !p.Coeff(1).Equals(rc(-1)) {
		t.Fatalf("coeff(1) = %v, want -1", p.Coeff(1))
	}
	halfLit, err := bigfraction.FromString("1/2")
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	half := RationalCoef{halfLit}
	if !p.Coeff(0).Equals(half) {
		t.Fatalf("coeff(0) = %v, want 1/2", p.Coeff(0))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p := NewExact(map[int]Coef{0: rc(1), 2: rc(-3)}, ratZero())
	data, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	decode := func(s string) (Coef, error) {
		f, err := bigfraction.FromString(s)
		if err != nil {
			return nil, err
		}
		return RationalCoef{f}, nil
	}
	got, err := DecodeJSON(data, ratZero(), decode)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if !got.EqualsStrict(p) {
		t.Fatalf("round trip = %v, want %v", got, p)
	}
}
