// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

// Package poly implements a sparse, coefficient-polymorphic Laurent
// series polynomial: a finite sum of c_i * x^i over possibly-negative
// integer exponents i, truncated at a known order beyond which terms
// are simply unknown rather than zero. This mirrors how a computer-algebra system
// tracks a power series: every result carries along how far it can be
// trusted, the same way bigfloat.Status tracks how a scalar result
// lost precision.
package poly

import (
	"math"
	"sort"
)

// MaxOrder marks a Poly as an exact (non-series) polynomial: every
// coefficient beyond its highest term is exactly zero, not merely
// unknown.
const MaxOrder = math.MaxInt32

// term is one nonzero coefficient at a given exponent.
type term struct {
	deg  int
	coef Coef
}

// Poly is a sparse Laurent series: terms sorted ascending by exponent,
// each with a nonzero coefficient, plus a truncation order beyond which
// the series is not known. zero is the
// additive identity of the coefficient ring in use, kept around so
// Eval and arithmetic can materialize a coefficient at a missing
// degree without the caller supplying one.
type Poly struct {
	terms []term
	order int
	zero  Coef

	// droppedSignificant marks a quotient from an exact-mode division
	// (DivWithLimit) that never detected its own termination within the
	// iteration limit: the series was truncated, and terms beyond it may
	// be nonzero even though Order() reports MaxOrder-style exactness
	// was hoped for.
	droppedSignificant bool
}

// DroppedSignificant reports whether p came from a bounded series
// division that hit its iteration limit before confirming the
// quotient terminates, meaning coefficients beyond Order() may be
// nonzero despite not being tracked.
func (p *Poly) DroppedSignificant() bool { return p.droppedSignificant }

// NewExact builds an exact polynomial (order == MaxOrder) from a
// degree->coefficient map. zero must be the additive identity for the
// concrete Coef type in use (e.g. RealCoef{bigfloat.Zero(prec), prec}).
func NewExact(coeffs map[int]Coef, zero Coef) *Poly {
	return newPoly(coeffs, MaxOrder, zero)
}

// NewSeries builds a truncated Laurent series known up to (but not
// including) degree order.
func NewSeries(coeffs map[int]Coef, order int, zero Coef) *Poly {
	return newPoly(coeffs, order, zero)
}

func newPoly(coeffs map[int]Coef, order int, zero Coef) *Poly {
	p := &Poly{order: order, zero: zero}
	for d, c := range coeffs {
		if d >= order {
			continue
		}
		if c == nil || c.IsZero() {
			continue
		}
		p.terms = append(p.terms, term{d, c})
	}
	p.normalize()
	return p
}

// normalize restores the invariants: terms sorted ascending by
// exponent, no zero coefficients, no duplicate exponents, and no term
// at or beyond the truncation order.
func (p *Poly) normalize() {
	sort.Slice(p.terms, func(i, j int) bool { return p.terms[i].deg < p.terms[j].deg })
	out := p.terms[:0]
	var lastDeg int
	haveLast := false
	for _, t := range p.terms {
		if t.deg >= p.order {
			continue
		}
		if t.coef == nil || t.coef.IsZero() {
			continue
		}
		if haveLast && t.deg == lastDeg {
			// Later entry wins; callers are expected not to hand in
			// duplicate exponents, but merging defensively keeps the
			// invariant even if they do.
			out[len(out)-1] = t
			continue
		}
		out = append(out, t)
		lastDeg = t.deg
		haveLast = true
	}
	p.terms = out
}

// zeroPoly returns the empty series "0" known to order, sharing zero's
// coefficient type.
func zeroPoly(order int, zero Coef) *Poly {
	return &Poly{order: order, zero: zero}
}

// IsZeroExact reports whether p has no terms at all (the exact zero
// polynomial, or a series with nothing known to be nonzero yet).
func (p *Poly) IsZeroExact() bool { return len(p.terms) == 0 }

// Order returns the truncation order: terms at degree >= Order() are
// unknown, not zero. MaxOrder denotes an exact polynomial.
func (p *Poly) Order() int { return p.order }

// Valuation returns v(P), the lowest exponent with a nonzero
// coefficient. For the zero series, Valuation returns Order() (nothing
// is known to be nonzero below the truncation point).
func (p *Poly) Valuation() int {
	if len(p.terms) == 0 {
		return p.order
	}
	return p.terms[0].deg
}

// Degree returns the highest exponent with a nonzero coefficient, or
// -1 for the exact zero polynomial. A truncated series with no known
// terms reports -1 as well; callers needing "unknown above Order()"
// should check Order() directly.
func (p *Poly) Degree() int {
	if len(p.terms) == 0 {
		return -1
	}
	return p.terms[len(p.terms)-1].deg
}

// Coeff returns the coefficient at degree d, or the ring's zero if d
// has no term (whether because it is genuinely zero or because it
// lies at/beyond the truncation order — callers working with series
// results should consult Order() to tell the two apart).
func (p *Poly) Coeff(d int) Coef {
	i := sort.Search(len(p.terms), func(i int) bool { return p.terms[i].deg >= d })
	if i < len(p.terms) && p.terms[i].deg == d {
		return p.terms[i].coef
	}
	return p.zero
}

// Terms returns the sparse (degree, coefficient) pairs in ascending
// order; callers must not mutate the returned slice.
func (p *Poly) Terms() []struct {
	Deg  int
	Coef Coef
} {
	out := make([]struct {
		Deg  int
		Coef Coef
	}, len(p.terms))
	for i, t := range p.terms {
		out[i] = struct {
			Deg  int
			Coef Coef
		}{t.deg, t.coef}
	}
	return out
}

// Clone returns an independent copy (coefficients are shared, since
// every Coef implementation here is an immutable value type).
func (p *Poly) Clone() *Poly {
	out := &Poly{order: p.order, zero: p.zero, terms: make([]term, len(p.terms))}
	copy(out.terms, p.terms)
	return out
}

func minOrder(a, b int) int {
	if a < b {
		return a
	}
	return b
}
