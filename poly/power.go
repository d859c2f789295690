// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package poly

import "fmt"

// PowInt returns p^n for a non-negative integer n by repeated squaring.
// Negative n is handled by inverting through Div.
func (p *Poly) PowInt(n int) (*Poly, error) {
	if n == 0 {
		one := p.zero.FromInt64(1)
		return NewExact(map[int]Coef{0: one}, p.zero), nil
	}
	if n < 0 {
		base, err := p.PowInt(-n)
		if err != nil {
			return nil, err
		}
		one := NewExact(map[int]Coef{0: p.zero.FromInt64(1)}, p.zero)
		return one.Div(base)
	}
	result := NewExact(map[int]Coef{0: p.zero.FromInt64(1)}, p.zero)
	base := p
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result, nil
}

// PowSeriesRat computes p^(num/den) as a Laurent series using the
// J.C.P. Miller recurrence, the standard way to raise a power series
// to a non-integer power without ever dividing degree by degree: write p = c*x^v*(1+u) with u(0)=0, so p^alpha =
// c^alpha*x^(v*alpha)*(1+u)^alpha, and the coefficients b_k of
// (1+u)^alpha satisfy
//
//	k*b_k = sum_{j=1}^{k} (alpha*j - (k-j)) * u_j * b_{k-j}
//
// which needs no division by u's own coefficients — only by k. This
// only type-checks when v*alpha is an integer exponent (coefficient
// polynomial powers of fractional x are not representable here), and
// the coefficient ring must support PowRat for c^alpha.
func (p *Poly) PowSeriesRat(num, den int64) (*Poly, error) {
	if _, ok := p.zero.(Transcendental); !ok {
		return nil, fmt.Errorf("%w: coefficient ring has no transcendentals for fractional power", ErrDomain)
	}
	if p.IsZeroExact() {
		if num <= 0 {
			return nil, fmt.Errorf("%w: non-positive power of the zero series", ErrDomain)
		}
		return zeroPoly(p.order, p.zero), nil
	}

	v := p.Valuation()
	vAlphaNum := int64(v) * num
	if vAlphaNum%den != 0 {
		return nil, fmt.Errorf("%w: fractional power shifts valuation to a non-integer exponent", ErrDomain)
	}
	newV := int(vAlphaNum / den)

	lead, ok := p.Coeff(v).(Transcendental)
	if !ok {
		return nil, fmt.Errorf("%w: leading coefficient has no transcendentals", ErrDomain)
	}
	leadPow, err := lead.PowRat(num, den)
	if err != nil {
		return nil, err
	}

	// u_j = coefficient of x^(v+j) in p, divided by the leading term,
	// for j=1..n-1 (u_0 == 0 by construction).
	order := p.order
	if order == MaxOrder {
		order = v + 64 // a generous default span for an exact polynomial's series power
	}
	n := order - v
	if n < 1 {
		return zeroPoly(p.order, p.zero), nil
	}
	u := make([]Coef, n)
	for j := 1; j < n; j++ {
		c := p.Coeff(v + j)
		if c.IsZero() {
			u[j] = p.zero
			continue
		}
		d, err := c.Div(lead.(Coef))
		if err != nil {
			return nil, err
		}
		u[j] = d
	}

	b := make([]Coef, n)
	b[0] = p.zero.FromInt64(1)
	alphaNum := p.zero.FromInt64(num)
	alphaDen := p.zero.FromInt64(den)
	for k := 1; k < n; k++ {
		acc := p.zero
		for j := 1; j <= k; j++ {
			if u[j].IsZero() || b[k-j].IsZero() {
				continue
			}
			// weight = alpha*j - (k-j) = (num*j)/den - (k-j)
			numTerm := alphaNum.Mul(p.zero.FromInt64(int64(j)))
			weightFrac, err := numTerm.Div(alphaDen)
			if err != nil {
				return nil, err
			}
			weight := weightFrac.Sub(p.zero.FromInt64(int64(k - j)))
			acc = acc.Add(weight.Mul(u[j]).Mul(b[k-j]))
		}
		bk, err := acc.Div(p.zero.FromInt64(int64(k)))
		if err != nil {
			return nil, err
		}
		b[k] = bk
	}

	out := map[int]Coef{}
	for j, bj := range b {
		if bj == nil || bj.IsZero() {
			continue
		}
		out[newV+j] = leadPow.Mul(bj)
	}
	resultOrder := newV + n
	return newPoly(out, resultOrder, p.zero), nil
}
